// Package trigger decides whether a ticket's comment history authorizes an
// automated contract review.
package trigger

import (
	"strings"

	"github.com/dt-fin-tools/lawhelper/internal/jira"
)

// ShouldTrigger reports whether the most recent comment authorizes a
// review: its body's first text run must contain the exact trigger token.
//
// Only the last comment counts; a mention in an earlier comment is not
// honored retroactively. A malformed or unexpected body shape means "no
// trigger", never an error: trigger absence must not abort ticket
// processing.
func ShouldTrigger(comments []jira.Comment, token string) bool {
	if len(comments) == 0 || token == "" {
		return false
	}

	last := comments[len(comments)-1]
	text, ok := jira.FirstTextRun(last.Body)
	if !ok {
		return false
	}

	return strings.Contains(text, token)
}
