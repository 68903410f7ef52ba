package textsprite

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Source is the text of one sprite.
type Source struct {
	// Name identifies the sprite, the file path relative to the scanned
	// directory without its extension and with forward slashes
	Name string
	Path string
	Text string
}

// decodeText strips a UTF-8 byte order mark or converts UTF-16 text,
// normalizes line endings and makes sure the text opens with the newline
// the format requires. Anything else is passed through untouched so invalid
// UTF-8 is still reported by the compiler.
func decodeText(b []byte) (string, error) {
	b, _, err := transform.Bytes(unicode.BOMOverride(encoding.Nop.NewDecoder()), b)
	if err != nil {
		return "", err
	}

	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))

	// Files start directly with the first row
	if len(b) == 0 || b[0] != '\n' {
		b = append([]byte("\n"), b...)
	}

	return string(b), nil
}

// ReadSource reads the sprite at path, naming it relative to base.
func ReadSource(base, path string) (*Source, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	text, err := decodeText(b)
	if err != nil {
		return nil, err
	}

	name, err := filepath.Rel(base, path)
	if err != nil {
		return nil, err
	}
	name = filepath.ToSlash(strings.TrimSuffix(name, filepath.Ext(name)))

	return &Source{
		Name: name,
		Path: path,
		Text: text,
	}, nil
}
