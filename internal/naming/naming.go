// Package naming converts Go field names into result column names.
package naming

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"fromrow-generator/internal/match"
)

// Convention is a column naming rule selected per record type.
type Convention string

const (
	// Same uses the field name verbatim: "super_description" -> "super_description".
	Same Convention = "same"
	// Pascal capitalizes every word and drops separators:
	// "super_description" -> "SuperDescription", "userID" -> "UserID".
	// Unlike UpperCamelCase libraries it keeps the rest of each word as
	// written, so acronyms survive: "UserID" stays "UserID", not "UserId".
	Pascal Convention = "pascal"
	// Snake lowercases every word and joins with underscores: "UserID" -> "user_id".
	Snake Convention = "snake"
	// Lower lowercases the name: "FieldName" -> "fieldname".
	Lower Convention = "lower"
)

// Conventions lists the accepted values, in documentation order.
var Conventions = []Convention{Same, Pascal, Snake, Lower}

// Parse resolves a convention name. The empty string is Same.
func Parse(s string) (Convention, error) {
	switch c := Convention(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return Same, nil
	case Same, Pascal, Snake, Lower:
		return c, nil
	default:
		return "", fmt.Errorf("unknown naming convention %q, expected one of %v", s, Conventions)
	}
}

// Convert applies the convention to a field name.
func (c Convention) Convert(field string) string {
	switch c {
	case Pascal:
		return pascal(field)
	case Snake:
		return strings.Join(match.TokenizeIdent(field), "_")
	case Lower:
		return strings.ToLower(field)
	default:
		return field
	}
}

func (c Convention) String() string {
	if c == "" {
		return string(Same)
	}

	return string(c)
}

// pascal upper-cases the first letter of every word; the remaining letters
// keep their case so acronyms survive.
func pascal(name string) string {
	title := cases.Title(language.Und, cases.NoLower)

	var b strings.Builder

	for _, token := range match.Tokens(name) {
		b.WriteString(title.String(token))
	}

	return b.String()
}
