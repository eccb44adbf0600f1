package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

// Ticket identifies one request within a client session.
type Ticket struct {
	Session string
	Seq     uint64

	cancel context.CancelFunc
}

type inflight struct {
	seq    uint64
	cancel context.CancelFunc
}

// Sequencer tags requests of a session with increasing numbers so that results of
// superseded requests can be dropped. Numbers come from a shared SequenceStore; the
// cancellation of superseded work is local to this process.
type Sequencer struct {
	store ports.SequenceStore

	mu       sync.Mutex
	inflight map[string]inflight
}

func NewSequencer(store ports.SequenceStore) *Sequencer {
	return &Sequencer{store: store, inflight: map[string]inflight{}}
}

// Begin issues a new ticket for session and returns a context that is cancelled as
// soon as a newer request of the same session begins. Callers must call Done.
func (s *Sequencer) Begin(ctx context.Context, session string) (Ticket, context.Context, error) {
	session = strings.TrimSpace(session)
	if session == "" {
		return Ticket{}, nil, fmt.Errorf("sequencer: %w: empty session", domain.ErrInvalidInput)
	}

	seq, err := s.store.Next(ctx, session)
	if err != nil {
		return Ticket{}, nil, fmt.Errorf("sequencer: issue ticket: %w", err)
	}

	rctx, cancel := context.WithCancel(ctx)
	t := Ticket{Session: session, Seq: seq, cancel: cancel}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.inflight[session]
	switch {
	case ok && prev.seq > seq:
		// A newer request registered first; this one is already stale.
		cancel()
	default:
		if ok {
			prev.cancel()
		}
		s.inflight[session] = inflight{seq: seq, cancel: cancel}
	}

	return t, rctx, nil
}

// Current reports whether t is still the latest ticket issued for its session.
func (s *Sequencer) Current(ctx context.Context, t Ticket) (bool, error) {
	latest, err := s.store.Latest(ctx, t.Session)
	if err != nil {
		return false, fmt.Errorf("sequencer: latest ticket: %w", err)
	}
	return latest == t.Seq, nil
}

// Done releases the resources held for t.
func (s *Sequencer) Done(t Ticket) {
	if t.cancel != nil {
		t.cancel()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.inflight[t.Session]; ok && cur.seq == t.Seq {
		delete(s.inflight, t.Session)
	}
}
