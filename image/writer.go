package image

import (
	"bufio"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"
	"unicode"

	"github.com/ericpauley/go-quantize/quantize"
)

var (
	errTooFewGlyphs = errors.New("image: not enough glyphs for the colors used")
	errBadGlyph     = errors.New("image: glyphs must be distinct and not whitespace")
)

type encoder struct {
	w      *bufio.Writer
	glyphs []rune
	indent string
}

// Map color indices to glyphs in order of first appearance
func glyphMap(m *image.Paletted, glyphs []rune) (map[uint8]rune, error) {
	used := make(map[uint8]rune, maxColors)
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := m.ColorIndexAt(x, y)
			if _, ok := used[i]; ok {
				continue
			}
			if len(used) == len(glyphs) {
				return nil, errTooFewGlyphs
			}
			used[i] = glyphs[len(used)]
		}
	}
	return used, nil
}

func checkGlyphs(glyphs []rune) error {
	seen := make(map[rune]struct{}, len(glyphs))
	for _, r := range glyphs {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return errBadGlyph
		}
		if _, ok := seen[r]; ok {
			return errBadGlyph
		}
		seen[r] = struct{}{}
	}
	return nil
}

func (e *encoder) encode(m *image.Paletted) error {
	glyphs, err := glyphMap(m, e.glyphs)
	if err != nil {
		return err
	}

	// Mandatory leading newline
	if err := e.w.WriteByte('\n'); err != nil {
		return err
	}

	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		if _, err := e.w.WriteString(e.indent); err != nil {
			return err
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			r := glyphs[m.ColorIndexAt(x, y)]
			// Each pixel is written twice
			for i := 0; i < 2; i++ {
				if _, err := e.w.WriteRune(r); err != nil {
					return err
				}
			}
		}
		if err := e.w.WriteByte('\n'); err != nil {
			return err
		}
	}

	return e.w.Flush()
}

func countColors(m *image.Paletted) int {
	used := make(map[uint8]struct{})
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			used[m.ColorIndexAt(x, y)] = struct{}{}
		}
	}
	return len(used)
}

func countRGBA(m image.Image) int {
	used := make(map[color.RGBA64]struct{})
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			used[color.RGBA64Model.Convert(m.At(x, y)).(color.RGBA64)] = struct{}{}
			if len(used) > maxColors {
				return len(used)
			}
		}
	}
	return len(used)
}

// Encode writes m to w as sprite text using glyphs, the first glyph for the
// first color seen and so on. Images with more than four colors are reduced
// with a median cut quantizer. Each row is prefixed with indent.
func Encode(w io.Writer, m image.Image, glyphs string, indent string) error {
	g := []rune(glyphs)
	if err := checkGlyphs(g); err != nil {
		return err
	}

	b := m.Bounds()

	pm, _ := m.(*image.Paletted)
	if pm != nil && countColors(pm) > maxColors {
		pm = nil
	}

	if pm == nil {
		var p color.Palette
		if countRGBA(m) > maxColors {
			q := quantize.MedianCutQuantizer{}
			p = q.Quantize(make(color.Palette, 0, maxColors), m)
		} else {
			p = exactPalette(m)
		}
		pm = image.NewPaletted(b, p)
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	e := encoder{
		w:      bufio.NewWriter(w),
		glyphs: g,
		indent: indent,
	}

	return e.encode(pm)
}

// Palette of the colors in m in order of first appearance, m must have no
// more than maxColors.
func exactPalette(m image.Image) color.Palette {
	var p color.Palette
	seen := make(map[color.RGBA64]struct{}, maxColors)
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBA64Model.Convert(m.At(x, y)).(color.RGBA64)
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				p = append(p, c)
			}
		}
	}
	return p
}
