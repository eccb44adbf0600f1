package ports

import "context"

// SequenceStore issues monotonically increasing request numbers per client session.
type SequenceStore interface {
	// Next issues and returns a new sequence number for session.
	Next(ctx context.Context, session string) (uint64, error)
	// Latest returns the most recently issued number, or 0 when none was issued.
	Latest(ctx context.Context, session string) (uint64, error)
}
