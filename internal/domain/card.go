package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Card is a single generated flashcard. Content may contain **double
// asterisk** emphasis markers that consumers render specially.
type Card struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CardSet is an ordered set of cards produced by one generation call.
// Its wire form is an object with contiguous positional keys
// {"card1": {...}, ..., "cardN": {...}}, N in {4, 6}.
type CardSet []Card

// Valid card set sizes.
const (
	CardCountBasic = 4
	CardCountFull  = 6
)

// NormalizeCardCount maps any requested count to a valid size.
// Only 6 selects the full set; everything else falls back to 4.
func NormalizeCardCount(n int) int {
	if n == CardCountFull {
		return CardCountFull
	}
	return CardCountBasic
}

// Validate checks the set has a valid size and no empty titles or contents.
func (cs CardSet) Validate() error {
	if len(cs) != CardCountBasic && len(cs) != CardCountFull {
		return NewValidationError("cards", fmt.Sprintf("expected %d or %d cards, got %d", CardCountBasic, CardCountFull, len(cs)))
	}
	for i, c := range cs {
		if c.Title == "" {
			return NewValidationError(cardKey(i+1), "empty title")
		}
		if c.Content == "" {
			return NewValidationError(cardKey(i+1), "empty content")
		}
	}
	return nil
}

// MarshalJSON encodes the set as {"card1": {...}, ...} preserving order.
func (cs CardSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range cs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cardKey(i + 1))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes {"card1": {...}, ...} requiring keys to be
// contiguous from card1. Extra or missing keys are a contract violation.
func (cs *CardSet) UnmarshalJSON(data []byte) error {
	var raw map[string]Card
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(CardSet, 0, len(raw))
	for i := 1; i <= len(raw); i++ {
		card, ok := raw[cardKey(i)]
		if !ok {
			return fmt.Errorf("card set keys are not contiguous: missing %q among %d keys", cardKey(i), len(raw))
		}
		out = append(out, card)
	}

	*cs = out
	return nil
}

func cardKey(n int) string {
	return fmt.Sprintf("card%d", n)
}

// HistoryEntry is one successful generation recorded for its owner.
type HistoryEntry struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Topic     string
	Cards     CardSet
	Settings  GenerationSettings
	CreatedAt time.Time
}

// SavedCard is a single card pinned by a user from a generation result.
type SavedCard struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Title      string
	Content    string
	Topic      string
	ColorClass string
	SavedAt    time.Time
}

// Signature returns the identity key used for "is this already saved"
// checks. Saved cards are deduplicated by (title, content), not by ID.
func (c SavedCard) Signature() string {
	return CardSignature(c.Title, c.Content)
}

// CardSignature builds the (title, content) dedup key.
func CardSignature(title, content string) string {
	return title + "|" + content
}
