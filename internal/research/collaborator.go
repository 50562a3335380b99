// Package research answers free-form questions through third-party
// search and wiki endpoints. Best-effort by contract: an empty answer with
// a nil error means "no answer", and callers degrade to filler text.
package research

import (
	"context"
	"strings"
)

// Collaborator is the external question-answering contract the dispatcher
// depends on.
type Collaborator interface {
	Query(ctx context.Context, text string) (string, error)
}

func trimAnswer(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 1800 {
		s = s[:1800] + "\n\n[truncated]"
	}
	return s
}
