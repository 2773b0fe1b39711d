package generation

import (
	"strings"

	"github.com/conceptdost/conceptdost-backend/internal/domain"
)

// GenerateInput carries one card-generation request.
type GenerateInput struct {
	Topic       string
	Settings    domain.GenerationSettings
	DetailLevel domain.DetailLevel
	CardCount   int
}

func (in *GenerateInput) normalize() error {
	in.Topic = strings.TrimSpace(in.Topic)
	if in.Topic == "" {
		return domain.NewValidationError("topic", "must not be empty")
	}

	in.Settings = in.Settings.WithDefaults()
	in.CardCount = domain.NormalizeCardCount(in.CardCount)
	if in.DetailLevel == "" {
		in.DetailLevel = domain.DetailDefault
	}

	return nil
}

// SimplifyInput carries one rewrite request for a single card's content.
type SimplifyInput struct {
	Title       string
	Content     string
	Topic       string
	Style       string
	Language    string
	DetailLevel domain.DetailLevel
}

func (in *SimplifyInput) normalize() error {
	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		return domain.NewValidationError("content", "must not be empty")
	}

	if in.Style == "" {
		in.Style = "Friendly"
	}
	if in.Language == "" {
		in.Language = "English"
	}
	if in.DetailLevel == "" {
		in.DetailLevel = domain.DetailDefault
	}

	return nil
}
