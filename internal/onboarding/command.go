package onboarding

import (
	"strconv"
	"strings"

	"github.com/m3rciful/shopbot/internal/language"
)

// Command tokens recognised in message text. Matching is a case-insensitive prefix match.
const (
	TokenSetLanguage    = "set_language_"
	TokenSetContact     = "set_contact"
	TokenChooseLanguage = "choose_language"
	TokenChangePhone    = "change_phone_number"
)

// SetLanguageToken returns the command text that selects id.
func SetLanguageToken(id language.ID) string {
	return TokenSetLanguage + id.String()
}

func hasToken(text, token string) bool {
	return len(text) >= len(token) && strings.EqualFold(text[:len(token)], token)
}

// parseLanguageID reads the id from the last "_" segment of a set_language_ command,
// so both "set_language_1" and "set_language_x_1" select language 1.
func parseLanguageID(text string) (language.ID, bool) {
	if !hasToken(text, TokenSetLanguage) {
		return language.Unset, false
	}
	rest := text[len(TokenSetLanguage):]
	if i := strings.LastIndexByte(rest, '_'); i >= 0 {
		rest = rest[i+1:]
	}
	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return language.Unset, false
	}
	return language.ID(n), true
}
