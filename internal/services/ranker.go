package services

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"route-optimizer-service/internal/domain"
)

// Route color palette, cycled by provider index.
var routePalette = [...]string{"#007AFF", "#34C759", "#FF9500", "#AF52DE"}

// ColorForIndex returns the display color for the i-th route.
func ColorForIndex(i int) string {
	n := len(routePalette)
	return routePalette[((i%n)+n)%n]
}

// ParsePreference maps a user-facing preference onto domain.Preference.
// An empty string means "keep provider order".
func ParsePreference(s string) (domain.Preference, error) {
	switch p := domain.Preference(strings.ToLower(strings.TrimSpace(s))); p {
	case domain.PreferenceNone, domain.PreferenceFastest, domain.PreferenceShortest, domain.PreferenceScenic:
		return p, nil
	default:
		return "", fmt.Errorf("parse preference %q: %w", s, domain.ErrInvalidInput)
	}
}

// Spoken phrases that ask for alternative routes.
var rerouteCommands = []string{
	"find alternative route",
	"reroute",
	"show me another way",
	"find different route",
	"get alternative route",
	"show alternatives",
	"other route",
	"different way",
}

// Keywords that may follow a reroute phrase, checked in this order.
var preferenceKeywords = []struct {
	pref     domain.Preference
	keywords []string
}{
	{domain.PreferenceFastest, []string{"fastest", "quickest", "speed", "quick"}},
	{domain.PreferenceShortest, []string{"shortest", "short", "nearest", "closest"}},
	{domain.PreferenceScenic, []string{"scenic", "beautiful", "nice", "pretty"}},
}

// PreferenceFromCommand maps a voice transcript such as "reroute quickest" to a
// ranking preference. ok is false when the transcript is not a reroute request;
// a reroute without a recognized keyword yields PreferenceNone.
func PreferenceFromCommand(transcript string) (pref domain.Preference, ok bool) {
	cmd := strings.Join(strings.Fields(strings.ToLower(transcript)), " ")

	for _, p := range preferenceKeywords {
		for _, kw := range p.keywords {
			for _, rc := range rerouteCommands {
				if strings.HasPrefix(cmd, rc+" "+kw) {
					return p.pref, true
				}
			}
		}
	}

	for _, rc := range rerouteCommands {
		if strings.HasPrefix(cmd, rc) {
			return domain.PreferenceNone, true
		}
	}
	return domain.PreferenceNone, false
}

// RankRoutes returns a sorted copy of routes; the input slice is left untouched.
//
// fastest sorts ascending by duration in traffic, shortest ascending by distance,
// scenic descending by step count (more instructions as a proxy for a more local
// route). Ties keep their input order.
func RankRoutes(routes []domain.AlternativeRoute, pref domain.Preference) []domain.AlternativeRoute {
	out := slices.Clone(routes)

	switch pref {
	case domain.PreferenceFastest:
		slices.SortStableFunc(out, func(a, b domain.AlternativeRoute) int {
			return cmp.Compare(a.TotalDurationInTrafficSeconds, b.TotalDurationInTrafficSeconds)
		})
	case domain.PreferenceShortest:
		slices.SortStableFunc(out, func(a, b domain.AlternativeRoute) int {
			return cmp.Compare(a.TotalDistanceMeters, b.TotalDistanceMeters)
		})
	case domain.PreferenceScenic:
		slices.SortStableFunc(out, func(a, b domain.AlternativeRoute) int {
			return cmp.Compare(len(b.Steps), len(a.Steps))
		})
	}

	return out
}
