// Package timeouts provides centralized timeout values for handler operations.
//
// These are used with context.WithTimeout for database and outbound calls in
// HTTP handlers.
//
// Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads, form renders
//   - Medium: list queries, moderate writes
//   - Long: multi-collection writes, bulk actions, report aggregation
//   - Mail: outbound mailing-list calls (vendor API latency included)
package timeouts

import "time"

const (
	ping   = 2 * time.Second
	short  = 5 * time.Second
	medium = 10 * time.Second
	long   = 30 * time.Second
	mail   = 15 * time.Second
)

// Ping returns the timeout for health checks.
func Ping() time.Duration { return ping }

// Short returns the timeout for simple single-document operations.
func Short() time.Duration { return short }

// Medium returns the timeout for list queries and moderate writes.
func Medium() time.Duration { return medium }

// Long returns the timeout for bulk actions and report aggregation.
func Long() time.Duration { return long }

// Mail returns the timeout for outbound mailing-list calls.
func Mail() time.Duration { return mail }
