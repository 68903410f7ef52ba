package pattern

// decodeFirst decodes the codepoint at the start of s, returning the number
// of bytes it occupies. s must be non-empty and well-formed UTF-8; anything
// else is a caller bug.
func decodeFirst(s string) (int, rune) {
	first := s[0]

	switch {
	case first&0b1000_0000 == 0:
		return 1, rune(first)
	case first&0b1110_0000 == 0b1100_0000:
		return 2, rune(first&0b0001_1111)<<6 |
			rune(s[1]&0b0011_1111)
	case first&0b1111_0000 == 0b1110_0000:
		return 3, rune(first&0b0000_1111)<<12 |
			rune(s[1]&0b0011_1111)<<6 |
			rune(s[2]&0b0011_1111)
	case first&0b1111_1000 == 0b1111_0000:
		return 4, rune(first&0b0000_0111)<<18 |
			rune(s[1]&0b0011_1111)<<12 |
			rune(s[2]&0b0011_1111)<<6 |
			rune(s[3]&0b0011_1111)
	}

	panic("pattern: invalid UTF-8 leading byte")
}
