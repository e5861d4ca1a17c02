// Package query filters session directory snapshots for the directory
// view. All functions are pure.
package query

import (
	"strings"

	"github.com/jmorelli/confab/internal/domain"
)

// Filter returns the sessions matching the given query, in the order they
// were given. Matching is a case-insensitive substring test against title
// or preview; an empty query matches everything. Archived sessions never
// appear in the result. When starredOnly is set, only starred sessions
// are returned.
func Filter(sessions []domain.ConversationSession, q string, starredOnly bool) []domain.ConversationSession {
	q = strings.ToLower(q)

	out := make([]domain.ConversationSession, 0, len(sessions))
	for _, s := range sessions {
		if s.Archived {
			continue
		}
		if starredOnly && !s.Starred {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(s.Title), q) &&
			!strings.Contains(strings.ToLower(s.Preview), q) {
			continue
		}
		out = append(out, s)
	}
	return out
}
