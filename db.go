package textsprite

import (
	"database/sql"
	"fmt"

	"github.com/bodgit/textsprite/bitmap"
	_ "github.com/mattn/go-sqlite3"
)

// Cache remembers compiled sprites keyed by the SHA-1 of their text so
// unchanged sources are not compiled again.
type Cache struct {
	db *sql.DB
}

// OpenCache opens or creates the cache database in file.
func OpenCache(file string) (*Cache, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS sprite (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, width INTEGER NOT NULL, height INTEGER NOT NULL, bpp INTEGER NOT NULL, pixels BLOB)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{
		db: db,
	}, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Lookup returns the sprite stored for sha, or nil if there is none.
func (c *Cache) Lookup(sha string) (*bitmap.Sprite, error) {
	var width, height uint32
	var bpp uint8
	var pixels []byte
	switch err := c.db.QueryRow("SELECT width, height, bpp, pixels FROM sprite WHERE sha1 = ?", sha).Scan(&width, &height, &bpp, &pixels); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		// A row that no longer makes a valid sprite is treated as a miss
		s, err := bitmap.New(pixels, width, height, bitmap.BitsPerPixel(bpp))
		if err != nil {
			return nil, nil
		}
		return s, nil
	default:
		return nil, err
	}
}

// Store records s as the sprite for sha.
func (c *Cache) Store(sha string, s *bitmap.Sprite) error {
	if _, err := c.db.Exec("INSERT OR REPLACE INTO sprite (sha1, width, height, bpp, pixels) VALUES (?, ?, ?, ?, ?)", sha, s.Width, s.Height, uint8(s.BPP), s.Bytes); err != nil {
		return err
	}
	return nil
}

// Length returns the number of cached sprites.
func (c *Cache) Length() (int, error) {
	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM sprite").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Purge removes every cached sprite.
func (c *Cache) Purge() error {
	_, err := c.db.Exec("DELETE FROM sprite")
	return err
}
