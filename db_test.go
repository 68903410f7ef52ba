package textsprite

import (
	"path/filepath"
	"testing"

	"github.com/bodgit/textsprite/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openCache(t *testing.T) *Cache {
	c, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCache(t *testing.T) {
	c := openCache(t)

	s, err := c.Lookup("missing")
	require.NoError(t, err)
	assert.Nil(t, s)

	grid := pattern.MustCompile("\n0011\n2233\n")
	require.NoError(t, c.Store("abc", grid))

	s, err = c.Lookup("abc")
	require.NoError(t, err)
	assert.Equal(t, grid, s)

	// Storing again replaces
	bar := pattern.MustCompile("\n0011\n")
	require.NoError(t, c.Store("abc", bar))
	s, err = c.Lookup("abc")
	require.NoError(t, err)
	assert.Equal(t, bar, s)

	n, err := c.Length()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, c.Purge())
	n, err = c.Length()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCacheInvalidRow(t *testing.T) {
	c := openCache(t)

	_, err := c.db.Exec("INSERT INTO sprite (sha1, width, height, bpp, pixels) VALUES (?, ?, ?, ?, ?)", "bad", 8, 8, 2, []byte{0x00})
	require.NoError(t, err)

	s, err := c.Lookup("bad")
	require.NoError(t, err)
	assert.Nil(t, s)
}
