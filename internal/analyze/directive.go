package analyze

import (
	"fmt"
	"go/ast"
	"strings"
)

// DirectivePrefix marks a type for generation when it starts a line of the
// type's doc comment.
const DirectivePrefix = "//fromrow:generate"

// Directive is a parsed //fromrow:generate marker:
//
//	//fromrow:generate naming=pascal
type Directive struct {
	// Naming is the raw value of the naming option; it is validated when planning.
	Naming string
}

// directiveOptions are the keys accepted after the prefix.
var directiveOptions = map[string]func(d *Directive, value string){
	"naming": func(d *Directive, value string) { d.Naming = value },
}

// ParseDirective parses a single comment line. ok is false when the line is
// not a directive.
func ParseDirective(line string) (d *Directive, ok bool, err error) {
	line = strings.TrimSpace(line)

	rest, found := strings.CutPrefix(line, DirectivePrefix)
	if !found {
		return nil, false, nil
	}

	// "//fromrow:generated" is not the directive
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return nil, false, nil
	}

	d = &Directive{}

	for _, opt := range strings.Fields(rest) {
		key, value, hasValue := strings.Cut(opt, "=")
		if !hasValue || value == "" {
			return nil, true, fmt.Errorf("malformed option %q, expected key=value", opt)
		}

		apply, known := directiveOptions[key]
		if !known {
			return nil, true, fmt.Errorf("unknown option %q", key)
		}

		apply(d, value)
	}

	return d, true, nil
}

// directiveOf looks for the directive in a comment group. Later lines win.
func directiveOf(doc *ast.CommentGroup) (d *Directive, err error) {
	if doc == nil {
		return nil, nil
	}

	for _, c := range doc.List {
		parsed, ok, perr := ParseDirective(c.Text)
		if !ok {
			continue
		}

		d, err = parsed, perr
	}

	return d, err
}
