package composeresponse

import (
	"fmt"
	"strings"
)

var languageNames = map[string]string{
	"fr": "French",
	"en": "English",
	"de": "German",
	"es": "Spanish",
	"pt": "Portuguese",
	"nl": "Dutch",
	"it": "Italian",
}

// LanguageName returns the English name of an ISO 639-1 code, or the code
// itself when unknown.
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

// BuildPrompt renders the generation prompt. The reply language is stated
// both before and after the content.
func BuildPrompt(question, facts, language string, maxChars int) string {
	lang := fmt.Sprintf("%s (%s)", LanguageName(language), language)

	var parts []string
	parts = append(parts, "You are Archibald, the wise and slightly grumpy keeper of the Cap Ferret Lighthouse.")
	parts = append(parts, fmt.Sprintf("Respond in the detected language: %s.", lang))
	parts = append(parts, fmt.Sprintf(
		"Speak warmly but concisely (no more than %d characters), using maritime metaphors and your deep passion for the lighthouse.",
		maxChars))
	parts = append(parts, fmt.Sprintf("Here is the user's question: %q", question))
	if facts != "" {
		parts = append(parts, fmt.Sprintf("Use this information to craft your response: %q", facts))
		parts = append(parts, "Keep every price, date, opening hour and link exactly as given.")
	}
	parts = append(parts, fmt.Sprintf("Answer only in %s.", lang))

	return strings.Join(parts, "\n\n")
}
