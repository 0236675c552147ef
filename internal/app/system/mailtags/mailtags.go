// Package mailtags validates mailing-list tag names against the configured
// tag set. Edit forms show the configured tags as choices; a submitted tag
// that is not configured is rejected before any vendor API call is made.
package mailtags

import "strings"

// Set is the configured collection of mailing-list tags. Lookup is
// case-insensitive but the canonical spelling from configuration is what gets
// sent to the vendor.
type Set struct {
	tags  []string
	index map[string]string // lowercase -> canonical
}

// New builds a Set from the configured tag names. Blank entries and
// duplicates (case-insensitive) are dropped, first spelling wins.
func New(tags []string) Set {
	s := Set{index: make(map[string]string, len(tags))}
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, dup := s.index[key]; dup {
			continue
		}
		s.index[key] = t
		s.tags = append(s.tags, t)
	}
	return s
}

// All returns the configured tags in configuration order.
func (s Set) All() []string {
	out := make([]string, len(s.tags))
	copy(out, s.tags)
	return out
}

// Len reports the number of configured tags.
func (s Set) Len() int { return len(s.tags) }

// Canonical resolves a submitted tag to its configured spelling.
func (s Set) Canonical(tag string) (string, bool) {
	c, ok := s.index[strings.ToLower(strings.TrimSpace(tag))]
	return c, ok
}

// Valid reports whether a submitted tag is configured.
func (s Set) Valid(tag string) bool {
	_, ok := s.Canonical(tag)
	return ok
}

// Overwrite partitions the configured tags for a tag-overwrite call: the
// submitted tags become active and every other configured tag becomes
// inactive. Unknown submitted tags are returned separately and excluded from
// the active set.
func (s Set) Overwrite(submitted []string) (active, inactive, unknown []string) {
	want := make(map[string]bool, len(submitted))
	for _, t := range submitted {
		if c, ok := s.Canonical(t); ok {
			if !want[c] {
				want[c] = true
				active = append(active, c)
			}
		} else if strings.TrimSpace(t) != "" {
			unknown = append(unknown, t)
		}
	}
	for _, t := range s.tags {
		if !want[t] {
			inactive = append(inactive, t)
		}
	}
	return active, inactive, unknown
}
