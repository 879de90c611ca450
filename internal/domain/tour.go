package domain

import (
	"strings"
	"unicode/utf8"
)

// Tour is an ordered sequence of location identifiers, implicitly closed by
// the depot at both ends. Operators never mutate a Tour they receive.
type Tour []string

// Clone returns an independent copy of the tour.
func (t Tour) Clone() Tour {
	if t == nil {
		return nil
	}
	out := make(Tour, len(t))
	copy(out, t)
	return out
}

// Key is the canonical string form used for caching and display.
func (t Tour) Key() string { return strings.Join(t, ",") }

func (t Tour) String() string { return t.Key() }

// ParseTour reads a tour from text.
//
// A comma separated list is split on commas. Without a comma every character
// is one identifier, which keeps the single-letter tours used in class working.
func ParseTour(s string) Tour {
	s = strings.TrimSpace(s)
	if s == "" {
		return Tour{}
	}

	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		out := make(Tour, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
		return out
	}

	out := make(Tour, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
