// Package htmlsanitize wraps bluemonday for user-supplied rich text.
// Note bodies pass through Sanitize before they are stored.
package htmlsanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	once   sync.Once
	policy *bluemonday.Policy
)

func ugc() *bluemonday.Policy {
	once.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowTables()
		policy = p
	})
	return policy
}

// Sanitize strips unsafe markup from user-supplied HTML, keeping the usual
// formatting tags, links, and tables.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return ugc().Sanitize(s)
}
