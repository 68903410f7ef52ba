package textsprite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func TestDecodeText(t *testing.T) {
	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String("0011\r\n2233\r\n")
	require.NoError(t, err)

	tables := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "\n0011\n", "\n0011\n"},
		{"no leading newline", "0011\n2233\n", "\n0011\n2233\n"},
		{"crlf", "0011\r\n2233\r\n", "\n0011\n2233\n"},
		{"utf8 bom", "\xef\xbb\xbf0011\n", "\n0011\n"},
		{"utf16 bom", utf16, "\n0011\n2233\n"},
		{"empty", "", "\n"},
		{"invalid utf8 kept", "\xff\xff\n", "\n\xff\xff\n"},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			got, err := decodeText([]byte(table.input))
			require.NoError(t, err)
			assert.Equal(t, table.want, got)
		})
	}
}

func TestReadSource(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "enemies", "bat.sprite")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("0011\n"), 0644))

	src, err := ReadSource(base, path)
	require.NoError(t, err)
	assert.Equal(t, "enemies/bat", src.Name)
	assert.Equal(t, path, src.Path)
	assert.Equal(t, "\n0011\n", src.Text)

	_, err = ReadSource(base, filepath.Join(base, "missing.sprite"))
	assert.True(t, os.IsNotExist(err))
}
