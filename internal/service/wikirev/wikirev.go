// Package wikirev decides whether a wiki update warrants a new revision
// snapshot. Kept separate from the repository so the decision is testable on
// its own.
package wikirev

const DefaultSummary = "Content updated"

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// ShouldSnapshot reports whether the change from the stored title/content to
// the incoming pair is significant. Identical input never produces a revision.
func (s *Service) ShouldSnapshot(oldTitle, oldContent, newTitle, newContent string) bool {
	return oldTitle != newTitle || oldContent != newContent
}

// Summary returns the explicit revision summary, or the default when none was
// given.
func (s *Service) Summary(explicit string) string {
	if explicit == "" {
		return DefaultSummary
	}
	return explicit
}
