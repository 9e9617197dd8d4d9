package feed

import (
	"fmt"
	"log/slog"

	"github.com/mmcdole/gofeed"
)

// Verifier parses a generated feed back to confirm consumers will be able
// to read it.
type Verifier struct {
	parser *gofeed.Parser
}

func NewVerifier() *Verifier {
	return &Verifier{parser: gofeed.NewParser()}
}

func (v *Verifier) Run(text string) error {
	parsed, err := v.parser.ParseString(text)
	if err != nil {
		return fmt.Errorf("generated feed is not parseable: %w", err)
	}

	if parsed.Title == "" {
		return fmt.Errorf("generated feed has no title")
	}

	slog.Debug("Feed verified", "title", parsed.Title, "items", len(parsed.Items))
	return nil
}
