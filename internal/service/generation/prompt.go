package generation

import (
	"fmt"
	"strings"

	"github.com/conceptdost/conceptdost-backend/internal/domain"
)

// generateWordInstruction maps a detail level to the explanation length
// directive used by full card generation. The default and detailed tiers
// share the long form.
func generateWordInstruction(level domain.DetailLevel) string {
	switch level {
	case domain.DetailShort:
		return "Keep explanations extremely concise (approx 20-30 words)."
	case domain.DetailMedium:
		return "Provide balanced explanations (approx 50-60 words)."
	default:
		return "Provide detailed explanations (approx 80-100 words)."
	}
}

// simplifyLengthInstruction maps a detail level to the rewrite length
// directive. Unlike generation, the fallback here is a short form.
func simplifyLengthInstruction(level domain.DetailLevel) string {
	switch level {
	case domain.DetailShort:
		return "Keep it extremely short and punchy (20-30 words max). Focus only on the main point."
	case domain.DetailMedium:
		return "Keep it balanced (50-60 words). Explain clearly but simply."
	case domain.DetailDetailed:
		return "Keep the explanation detailed (60-80 words). Do NOT shorten the content, just make the language simpler and easier to understand."
	default:
		return "Keep it concise (around 40 words)."
	}
}

// cardCountInstruction returns the structural directive for the requested
// set size. The pedagogical arc differs between the basic and full sets.
func cardCountInstruction(count int) string {
	if count == domain.CardCountFull {
		return "You MUST generate exactly 6 cards. Cover the topic comprehensively (e.g., Definition, Analogy, Application/Context, How It Works, Important Details, Common Confusion)."
	}
	return "You MUST generate exactly 4 cards. Cover the basics (e.g., Definition, Analogy, Application/Context, Common Confusion)."
}

// jsonStructure renders the example object the provider must mirror.
func jsonStructure(count int) string {
	var b strings.Builder
	b.WriteString("{\n")
	for i := 1; i <= count; i++ {
		fmt.Fprintf(&b, "  \"card%d\": { \"title\": \"Short Creative Title\", \"content\": \"...\" }", i)
		if i < count {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

// buildGeneratePrompt assembles the full card-generation prompt.
func buildGeneratePrompt(in GenerateInput) string {
	return fmt.Sprintf(`You are an expert AI Tutor acting as: %s.
Your goal is to explain the topic: %q.

SETTINGS:
- Output Language: %s (Mix English and Hindi naturally if Hinglish is selected).
- Analogy Style: %s.
- Detail Level: %s (%s).

INSTRUCTIONS:
- Use the specific tone of the persona selected.
- %s
- **DYNAMIC TITLES:** Generate creative, short (2-5 words), and relevant titles.
- **ADAPTIVE CONTENT:** Follow a logical teaching flow.
- **HIGHLIGHTING:** Use **double asterisks** to highlight **important sentences, key phrases, and complete definitions**.

- Return the response in this strict JSON structure:
%s
- STRICTLY return only valid JSON. Do not add markdown code blocks like `+"```json"+`.`,
		in.Settings.Persona,
		in.Topic,
		in.Settings.Language,
		in.Settings.Style,
		in.DetailLevel,
		generateWordInstruction(in.DetailLevel),
		cardCountInstruction(in.CardCount),
		jsonStructure(in.CardCount),
	)
}

// buildSimplifyPrompt assembles the rewrite-only prompt for a single card.
func buildSimplifyPrompt(in SimplifyInput) string {
	return fmt.Sprintf(`Context: The user is learning about %q.
Card Title: %q
Current Explanation: %q

Task: Rewrite the explanation to be:
1. Much simpler and easier to understand (Like explaining to a 10-year-old).
2. Use a very simple analogy if possible.
3. Keep the tone %q.
4. Answer in %q.
5. **Length Requirement:** %s
6. KEY REQUIREMENT: Use **double asterisks** to highlight **important sentences, key phrases, and complete definitions**.

Output: Just the new simplified explanation text. No intro/outro.`,
		in.Topic,
		in.Title,
		in.Content,
		in.Style,
		in.Language,
		simplifyLengthInstruction(in.DetailLevel),
	)
}
