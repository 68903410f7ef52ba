package pattern

import "github.com/bodgit/textsprite/bitmap"

const maxGlyphs = 4

// palette assigns indices to glyphs in order of first appearance. An index
// once handed out is never reassigned.
type palette struct {
	glyphs [maxGlyphs]rune
	n      int
}

func (p *palette) index(r rune) (uint8, error) {
	for i := 0; i < p.n; i++ {
		if p.glyphs[i] == r {
			return uint8(i), nil
		}
	}

	if p.n == maxGlyphs {
		return 0, ErrTooManyGlyphs
	}

	p.glyphs[p.n] = r
	p.n++

	return uint8(p.n - 1), nil
}

func (p *palette) bpp() bitmap.BitsPerPixel {
	if p.n <= 2 {
		return bitmap.One
	}
	return bitmap.Two
}

func (p *palette) slice() []rune {
	out := make([]rune, p.n)
	copy(out, p.glyphs[:p.n])
	return out
}
