package pattern

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestDecodeFirst(t *testing.T) {
	tables := []struct {
		input string
		n     int
		r     rune
	}{
		{"0", 1, '0'},
		{"\n", 1, '\n'},
		{"é", 2, 'é'},
		{"▒▒", 3, '▒'},
		{"█", 3, '█'},
		{"😀x", 4, '😀'},
	}

	for _, table := range tables {
		n, r := decodeFirst(table.input)
		assert.Equal(t, table.n, n, table.input)
		assert.Equal(t, table.r, r, table.input)
	}
}

func TestDecodeFirstMatchesUTF8(t *testing.T) {
	for _, r := range []rune{0, 0x7f, 0x80, 0x7ff, 0x800, 0xfffd, 0xffff, 0x10000, utf8.MaxRune} {
		s := string(r)
		n, got := decodeFirst(s)
		want, size := utf8.DecodeRuneInString(s)
		assert.Equal(t, size, n)
		assert.Equal(t, want, got)
	}
}

func TestDecodeFirstInvalid(t *testing.T) {
	assert.Panics(t, func() { decodeFirst("\x80") })
	assert.Panics(t, func() { decodeFirst("\xff") })
}
