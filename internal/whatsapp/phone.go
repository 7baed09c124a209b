package whatsapp

import (
	"strings"
	"unicode"
)

const channelPrefix = "whatsapp:"

// NormalizePhone reduces any accepted phone form to bare E.164 digits:
// whitespace stripped, the "whatsapp:" channel prefix removed, at most one
// leading "+" removed. Numbers are stored and compared in this form.
func NormalizePhone(number string) string {
	number = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, number)
	number = strings.TrimPrefix(number, channelPrefix)
	return strings.TrimPrefix(number, "+")
}

// WirePhone wraps a number back into the provider's wire form.
func WirePhone(number string) string {
	return channelPrefix + "+" + NormalizePhone(number)
}
