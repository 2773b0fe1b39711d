package generation

import (
	"context"
	"fmt"
	"strings"
)

// Simplify re-runs the provider with a rewrite-only instruction and returns
// the rewritten content as plain trimmed text. No shape validation applies,
// and no quota is consumed: simplify only operates on already-generated
// content.
func (s *Service) Simplify(ctx context.Context, input SimplifyInput) (string, error) {
	if err := input.normalize(); err != nil {
		return "", err
	}

	prompt := buildSimplifyPrompt(input)

	raw, err := s.llm.GenerateText(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("simplify %q: %w", input.Title, err)
	}

	simplified := strings.TrimSpace(stripCodeFences(raw))

	s.log.Info("content simplified",
		"title", input.Title,
		"output_len", len(simplified),
	)

	return simplified, nil
}
