package image

import (
	"errors"
	"image"
	"image/color"

	"github.com/bodgit/textsprite/bitmap"
	"golang.org/x/image/draw"
)

var (
	errShortPalette = errors.New("image: palette has too few colors for sprite")
	errBadScale     = errors.New("image: scale must be at least 1")
)

type decoder struct {
	sprite  *bitmap.Sprite
	palette color.Palette

	image *image.Paletted
}

func (d *decoder) decode() error {
	if len(d.palette) < d.sprite.BPP.Colors() {
		return errShortPalette
	}

	w, h := int(d.sprite.Width), int(d.sprite.Height)
	d.image = image.NewPaletted(image.Rect(0, 0, w, h), d.palette[:d.sprite.BPP.Colors()])

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d.image.SetColorIndex(x, y, d.sprite.Index(uint32(x), uint32(y)))
		}
	}

	return nil
}

// Decode renders s using palette p, which needs at least as many colors as
// the sprite's density can address. A nil p selects DefaultPalette.
func Decode(s *bitmap.Sprite, p color.Palette) (*image.Paletted, error) {
	if p == nil {
		p = DefaultPalette
	}

	d := decoder{sprite: s, palette: p}
	if err := d.decode(); err != nil {
		return nil, err
	}
	return d.image, nil
}

// Scale returns m enlarged by an integer factor with nearest neighbour
// sampling so pixels stay crisp.
func Scale(m *image.Paletted, factor int) (*image.Paletted, error) {
	if factor < 1 {
		return nil, errBadScale
	}
	if factor == 1 {
		return m, nil
	}

	b := m.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor), m.Palette)
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), m, b, draw.Src, nil)

	return dst, nil
}
