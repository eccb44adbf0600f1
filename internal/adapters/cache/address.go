package cache

import "strings"

// NormalizeAddress folds case and collapses runs of whitespace so that
// "12 Main  St" and "12 main st" share one cache row.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}

// uniqueKeys normalizes addresses and drops blanks and duplicates, keeping first-seen order.
func uniqueKeys(addresses []string) []string {
	seen := make(map[string]struct{}, len(addresses))
	out := make([]string, 0, len(addresses))
	for _, a := range addresses {
		a = NormalizeAddress(a)
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}
