package domain

import "strings"

// DetailLevel controls the target explanation length of generated content.
type DetailLevel string

const (
	DetailShort    DetailLevel = "short"
	DetailMedium   DetailLevel = "medium"
	DetailDetailed DetailLevel = "detailed"
	DetailDefault  DetailLevel = "default"
)

// ParseDetailLevel maps a client-provided string to a DetailLevel.
// "long" is accepted as an alias of "detailed"; anything unknown
// falls back to the default tier.
func ParseDetailLevel(s string) DetailLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "short":
		return DetailShort
	case "medium":
		return DetailMedium
	case "detailed", "long":
		return DetailDetailed
	default:
		return DetailDefault
	}
}

// GenerationSettings is the snapshot of presentation preferences applied to
// one generation. Stored alongside each history entry.
type GenerationSettings struct {
	Language string `json:"language"`
	Style    string `json:"style"`
	Persona  string `json:"persona"`
}

// WithDefaults fills empty fields with the values the prompt falls back to.
func (s GenerationSettings) WithDefaults() GenerationSettings {
	if s.Language == "" {
		s.Language = "English"
	}
	if s.Style == "" {
		s.Style = "Friendly"
	}
	if s.Persona == "" {
		s.Persona = "a friendly tutor"
	}
	return s
}
