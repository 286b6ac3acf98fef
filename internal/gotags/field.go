package gotags

import (
	"fmt"
	"regexp"
	"strings"
)

// fieldExpr matches a field declaration: indentation, name, type and an
// optional raw-string tag. The type is a run of identifier, dot, star and
// bracket characters, where interface{} and struct{} count as single tokens.
// That covers package qualified names, pointers, slices, arrays and maps of
// such types. The tag may follow the type directly, which is how rewritten
// lines are emitted.
const fieldExpr = `[\t ]*(\w+)[\t ]+((?:interface\{\}|struct\{\}|[\w.*\[\]])+)(?:[\t ]*` + "`" + `(.*?)` + "`" + `)?`

var (
	// fieldLinePattern finds the next field declaration at a line start.
	fieldLinePattern = regexp.MustCompile(`(?ms)` + lineStart + fieldExpr)
	// fieldPattern matches a field declaration at the start of its input.
	fieldPattern = regexp.MustCompile(`(?s)\A` + fieldExpr)
)

// FieldDecl is a parsed field declaration.
type FieldDecl struct {
	Name string
	Type string
	Tag  string // content between the backticks, without them
}

// ParseField parses the field declaration at the start of raw. The second
// result is false when raw does not start with a field declaration. The
// returned length is how many bytes of raw the declaration covers.
func ParseField(raw string) (FieldDecl, int, bool) {
	m := fieldPattern.FindStringSubmatchIndex(raw)
	if m == nil {
		return FieldDecl{}, 0, false
	}
	decl := FieldDecl{
		Name: raw[m[2]:m[3]],
		Type: raw[m[4]:m[5]],
	}
	if m[6] >= 0 {
		decl.Tag = strings.TrimSpace(raw[m[6]:m[7]])
	}
	return decl, m[1], true
}

// String emits the declaration tab separated, with the tag always wrapped in
// backticks. An empty tag is written as “.
func (f FieldDecl) String() string {
	return fmt.Sprintf("\t%s\t%s`%s`", f.Name, f.Type, f.Tag)
}

// RewriteField applies action to the field declared at the start of raw and
// returns the re-serialized text. Anything after the declaration is kept.
// raw is returned unchanged when it does not hold a field declaration.
func RewriteField(raw string, action Action) string {
	decl, n, ok := ParseField(raw)
	if !ok {
		return raw
	}
	decl.Tag = strings.TrimSpace(action.Apply(decl.Name, decl.Type, decl.Tag))
	return decl.String() + raw[n:]
}
