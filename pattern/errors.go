package pattern

import (
	"errors"
	"fmt"
)

var (
	// ErrUnequalWidth is returned when a row has a different number of
	// pixels to the first row.
	ErrUnequalWidth = errors.New("pattern: rows must have equal width")
	// ErrPairMismatch is returned when a glyph is not immediately followed
	// by its twin.
	ErrPairMismatch = errors.New("pattern: pattern pairs not matching")
	// ErrTooManyGlyphs is returned when a fifth distinct glyph is seen.
	ErrTooManyGlyphs = errors.New("pattern: too many distinct glyphs")
	// ErrInconsistentCapacity is returned by Build when the supplied buffer
	// is not exactly the size computed by Calc.
	ErrInconsistentCapacity = errors.New("pattern: inconsistent capacity")
	// ErrNoRows is returned when the input contains no newline terminated
	// row at all.
	ErrNoRows = errors.New("pattern: no rows found")
	// ErrMissingNewline is returned when the input does not start with a
	// newline.
	ErrMissingNewline = errors.New("pattern: missing leading newline")
	// ErrUnterminatedRow is returned when the input ends part way through
	// a row.
	ErrUnterminatedRow = errors.New("pattern: last row not terminated by a newline")
	// ErrInvalidUTF8 is returned when the input is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("pattern: invalid UTF-8")
)

// SyntaxError records where in the grid a scan failed. Row and Column are
// 1-based and count rows and pixels, not bytes.
type SyntaxError struct {
	Row    uint32
	Column uint32
	Glyph  rune
	Err    error
}

func (e *SyntaxError) Error() string {
	if e.Glyph != 0 {
		return fmt.Sprintf("row %d, column %d (%q): %v", e.Row, e.Column, e.Glyph, e.Err)
	}
	return fmt.Sprintf("row %d, column %d: %v", e.Row, e.Column, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
