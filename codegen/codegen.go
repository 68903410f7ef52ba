/*
Package codegen writes compiled sprites out as Go source so they are
embedded as constant data at build time, the same way a go:generate step
would.
*/
package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"io"
	"sort"
	"strings"
	"text/template"
	"unicode"

	"github.com/bodgit/textsprite/bitmap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	errBadPackage = errors.New("codegen: invalid package name")
	errNoName     = errors.New("codegen: name has no usable characters")
)

// Entry is a single sprite to emit.
type Entry struct {
	Name   string
	Source string
	Sprite *bitmap.Sprite
}

type variable struct {
	Ident  string
	Source string
	Width  uint32
	Height uint32
	BPP    string
	Bytes  string
}

var tmpl = template.Must(template.New("sprites").Parse(`// Code generated by textsprite. DO NOT EDIT.

package {{ .Package }}

import "github.com/bodgit/textsprite/bitmap"
{{ range .Vars }}
{{ if .Source }}// {{ .Ident }} is compiled from {{ .Source }}.
{{ end }}var {{ .Ident }} = &bitmap.Sprite{
	Width:  {{ .Width }},
	Height: {{ .Height }},
	BPP:    {{ .BPP }},
	Bytes:  []byte{ {{- .Bytes -}} },
}
{{ end }}`))

var title = cases.Title(language.Und, cases.NoLower)

// Identifier turns a sprite name such as "player-walk_1" into an exported
// Go identifier, "PlayerWalk1".
func Identifier(name string) (string, error) {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(parts) == 0 {
		return "", fmt.Errorf("%w: %q", errNoName, name)
	}

	var b strings.Builder
	for _, p := range parts {
		b.WriteString(title.String(p))
	}

	ident := b.String()
	if !unicode.IsLetter([]rune(ident)[0]) || !token.IsExported(ident) {
		ident = "Sprite" + ident
	}
	return ident, nil
}

func hexBytes(b []byte) string {
	var sb strings.Builder
	for i, v := range b {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "0x%02x", v)
	}
	return sb.String()
}

func bppName(b bitmap.BitsPerPixel) string {
	if b == bitmap.Two {
		return "bitmap.Two"
	}
	return "bitmap.One"
}

// Generate writes gofmt'ed source declaring one variable per entry to w.
// Entries are emitted sorted by identifier.
func Generate(w io.Writer, pkg string, entries []Entry) error {
	if !token.IsIdentifier(pkg) {
		return fmt.Errorf("%w: %q", errBadPackage, pkg)
	}

	vars := make([]variable, 0, len(entries))
	seen := make(map[string]string, len(entries))
	for _, e := range entries {
		ident, err := Identifier(e.Name)
		if err != nil {
			return err
		}
		if other, ok := seen[ident]; ok {
			return fmt.Errorf("codegen: %q and %q both map to %s", other, e.Name, ident)
		}
		seen[ident] = e.Name

		vars = append(vars, variable{
			Ident:  ident,
			Source: e.Source,
			Width:  e.Sprite.Width,
			Height: e.Sprite.Height,
			BPP:    bppName(e.Sprite.BPP),
			Bytes:  hexBytes(e.Sprite.Bytes),
		})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Ident < vars[j].Ident })

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct {
		Package string
		Vars    []variable
	}{pkg, vars}); err != nil {
		return err
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return err
	}

	_, err = w.Write(src)
	return err
}
