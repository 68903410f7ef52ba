package pattern

import (
	"unicode/utf8"

	"github.com/bodgit/textsprite/bitmap"
)

const (
	newLine = '\n'
	tab     = '\t'
	space   = ' '
)

type scanner struct {
	input  string
	offset int

	// Set while waiting for the second half of a glyph pair
	pairing bool
	pending rune

	column uint32
	row    uint32

	// Row width, fixed by the first newline
	width       uint32
	established bool

	palette palette
	packer  packer
}

func (s *scanner) errorf(glyph rune, err error) error {
	return &SyntaxError{
		Row:    s.row + 1,
		Column: s.column + 1,
		Glyph:  glyph,
		Err:    err,
	}
}

func (s *scanner) endRow() error {
	if s.pairing {
		return s.errorf(s.pending, ErrPairMismatch)
	}

	if !s.established {
		s.width, s.established = s.column, true
	}

	if s.column != s.width {
		return s.errorf(0, ErrUnequalWidth)
	}

	s.row++
	s.column = 0

	return nil
}

func (s *scanner) glyph(r rune) error {
	if !s.pairing {
		s.pairing, s.pending = true, r
		return nil
	}

	if r != s.pending {
		return s.errorf(r, ErrPairMismatch)
	}
	s.pairing = false

	index, err := s.palette.index(r)
	if err != nil {
		return s.errorf(r, err)
	}

	s.packer.push(index)
	s.column++

	return nil
}

// scan runs one complete pass over input. With out nil nothing is written
// and only the dimensions and palette are of interest.
func scan(input string, out []byte, bpp bitmap.BitsPerPixel) (*scanner, error) {
	if !utf8.ValidString(input) {
		return nil, ErrInvalidUTF8
	}

	if len(input) == 0 || input[0] != newLine {
		return nil, ErrMissingNewline
	}

	s := &scanner{
		input: input[1:],
		packer: packer{
			out:   out,
			shift: uint8(bpp),
		},
	}

	for s.offset < len(s.input) {
		n, r := decodeFirst(s.input[s.offset:])
		s.offset += n

		switch r {
		case space, tab:
			// Ignored so sprites can be indented
		case newLine:
			if err := s.endRow(); err != nil {
				return nil, err
			}
		default:
			if err := s.glyph(r); err != nil {
				return nil, err
			}
		}
	}

	if s.pairing || s.column > 0 {
		return nil, s.errorf(0, ErrUnterminatedRow)
	}

	if !s.established {
		return nil, ErrNoRows
	}

	s.packer.finish()

	return s, nil
}
