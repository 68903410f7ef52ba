/*
Package textsprite is a build step for WASM-4 style games: it compiles
sprite text files into packed bitmaps and writes them out either as Go
source or as a binary bundle loaded at runtime.
*/
package textsprite

import (
	"crypto/sha1"
	"fmt"

	"github.com/bodgit/textsprite/bitmap"
	"github.com/bodgit/textsprite/pattern"
	"go.uber.org/zap"
)

const (
	defaultWorkers   = 10
	defaultExtension = ".sprite"
)

// Compiler compiles sprite sources, optionally consulting a cache.
type Compiler struct {
	// Workers is the number of files compiled concurrently by Scan
	Workers int
	// Extension selects which files Scan picks up
	Extension string

	cache  *Cache
	logger *zap.Logger
}

// New returns a Compiler. Either argument may be nil.
func New(cache *Cache, logger *zap.Logger) *Compiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Compiler{
		Workers:   defaultWorkers,
		Extension: defaultExtension,
		cache:     cache,
		logger:    logger,
	}
}

func digest(text string) string {
	sum := sha1.Sum([]byte(text))
	return fmt.Sprintf("%X", sum[:])
}

// Compile returns the sprite for src.
func (c *Compiler) Compile(src *Source) (*bitmap.Sprite, error) {
	var sha string
	if c.cache != nil {
		sha = digest(src.Text)
		s, err := c.cache.Lookup(sha)
		if err != nil {
			return nil, err
		}
		if s != nil {
			c.logger.Debug("cache hit", zap.String("sprite", src.Name))
			return s, nil
		}
	}

	s, err := pattern.Compile(src.Text)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("compiled",
		zap.String("sprite", src.Name),
		zap.Uint32("width", s.Width),
		zap.Uint32("height", s.Height),
		zap.Stringer("bpp", s.BPP),
		zap.Int("bytes", len(s.Bytes)),
	)

	if c.cache != nil {
		if err := c.cache.Store(sha, s); err != nil {
			return nil, err
		}
	}

	return s, nil
}
