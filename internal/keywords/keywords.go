// Package keywords answers whether an identifier collides with a reserved
// word of the target language and applies the escape marker when it does.
package keywords

import (
	_ "embed"
	"fmt"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed keywords.yaml
var rawTable []byte

var (
	marker   string
	reserved map[string]struct{}
)

func init() {
	var doc struct {
		Marker   string   `yaml:"marker"`
		Keywords []string `yaml:"keywords"`
	}
	if err := yaml.Unmarshal(rawTable, &doc); err != nil {
		panic(fmt.Sprintf("keywords: bad embedded table: %v", err))
	}
	marker = doc.Marker
	reserved = make(map[string]struct{}, len(doc.Keywords))
	for _, kw := range doc.Keywords {
		reserved[kw] = struct{}{}
	}
}

// All returns every reserved word in the table.
func All() []string {
	out := make([]string, 0, len(reserved))
	for kw := range reserved {
		out = append(out, kw)
	}
	return out
}

// IsReserved reports whether name is a reserved word of the target language.
func IsReserved(name string) bool {
	_, ok := reserved[name]
	return ok
}

// Escape returns name prefixed with the escape marker when it collides with
// a reserved word, otherwise name unchanged. Identifiers are compared in
// normalization form C, as the target language does. Escape is not
// idempotent: re-escaping an already escaped name is the caller's bug.
func Escape(name string) string {
	name = norm.NFC.String(name)
	if IsReserved(name) {
		return marker + name
	}
	return name
}

// IsValidIdent reports whether name is lexically a valid identifier:
// a letter or underscore followed by letters, digits or underscores.
func IsValidIdent(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
