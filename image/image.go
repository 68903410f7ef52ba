/*
Package image converts between packed sprites and the standard library image
types.

Decoding renders a sprite as an *image.Paletted using one color per palette
index. Encoding goes the other way and writes any image.Image as sprite text,
reducing it to at most four colors first if necessary. Glyphs are handed out
in order of first appearance so compiling the text again gives back the same
palette indices.
*/
package image

import "image/color"

const maxColors = 4

// DefaultPalette is the stock WASM-4 palette.
var DefaultPalette = color.Palette{
	color.RGBA{0xe0, 0xf8, 0xcf, 0xff},
	color.RGBA{0x86, 0xc0, 0x6c, 0xff},
	color.RGBA{0x30, 0x68, 0x50, 0xff},
	color.RGBA{0x07, 0x18, 0x21, 0xff},
}
