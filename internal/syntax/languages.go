package syntax

import (
	"sync"

	gosrc "github.com/smacker/go-tree-sitter/golang"

	"github.com/bethropolis/gotags/internal/syntax/lang"
)

// GoName is the registered name of the Go language.
const GoName = "Go"

const goFieldQuery = `
(field_declaration) @field
(field_declaration tag: (_) @tag)
`

var registerOnce sync.Once

// RegisterLanguages registers the built-in languages once.
func RegisterLanguages() {
	registerOnce.Do(func() {
		lang.Register(&lang.Language{
			Name:           GoName,
			TreeSitterLang: gosrc.GetLanguage(),
			Extensions:     []string{".go"},
			FieldQuery:     goFieldQuery,
		})
	})
}

// IsGo reports whether filePath is a Go source file.
func IsGo(filePath string) bool {
	RegisterLanguages()
	l := lang.GetForFile(filePath)
	return l != nil && l.Name == GoName
}
