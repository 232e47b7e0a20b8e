package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent lowercases an identifier and drops word separators:
// "OrderID", "order_id" and "order-id" all become "orderid".
func NormalizeIdent(s string) string {
	return strings.ToLower(strings.Join(Tokens(s), ""))
}

// TokenizeIdent splits an identifier into lowercase words.
func TokenizeIdent(s string) []string {
	tokens := Tokens(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

// Tokens splits an identifier into words, keeping their case.
// Separators (_ - space) and case transitions both end a word:
//   - "OrderID" -> ["Order", "ID"]
//   - "super_description" -> ["super", "description"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "getHTTPResponse" -> ["get", "HTTP", "Response"]
func Tokens(s string) []string {
	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// startsToken reports whether runes[i] begins a new word.
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	// "orderID": lower to upper
	if !unicode.IsUpper(prev) {
		return true
	}

	// "XMLParser": last upper of an acronym followed by lower
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
