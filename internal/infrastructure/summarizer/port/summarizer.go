package port

import "context"

// Summarizer condenses a chat transcript into a short digest, optionally
// answering a reader question alongside. Implementations call an external
// model; callers must degrade to a placeholder on any error.
type Summarizer interface {
	Summarize(ctx context.Context, messages []string, question string) (string, error)
}
