package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/conceptdost/conceptdost-backend/internal/domain"
)

// stripCodeFences removes markdown code-fence tokens the provider sometimes
// wraps around the JSON body, despite being told not to. This is the only
// repair applied; anything else must already be valid JSON.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// parseCardSet repairs and parses raw provider output into a CardSet of
// exactly want cards. Any contract violation (invalid JSON, wrong key count,
// non-contiguous keys, empty fields) is domain.ErrMalformedOutput.
func parseCardSet(raw string, want int) (domain.CardSet, error) {
	cleaned := stripCodeFences(raw)

	var cards domain.CardSet
	if err := json.Unmarshal([]byte(cleaned), &cards); err != nil {
		return nil, fmt.Errorf("parse provider output: %w: %v", domain.ErrMalformedOutput, err)
	}

	if len(cards) != want {
		return nil, fmt.Errorf("provider returned %d cards, want %d: %w", len(cards), want, domain.ErrMalformedOutput)
	}

	if err := cards.Validate(); err != nil {
		return nil, fmt.Errorf("provider card set invalid: %w: %v", domain.ErrMalformedOutput, err)
	}

	return cards, nil
}
