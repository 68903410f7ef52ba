/*
Package bundle implements a binary asset holding a set of named, compiled
sprites that a program can load at runtime instead of embedding generated
source.

The file starts with the four byte magic "TSPR" and a version byte, followed
by a little-endian 16-bit entry count. Entries are sorted by name; each is a
length-prefixed name, the 32-bit width and height, the bits per pixel and the
length-prefixed packed pixel data. A little-endian CRC-32 (IEEE) of all
preceding bytes closes the file.
*/
package bundle

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"sort"

	"github.com/bodgit/textsprite/bitmap"
)

const (
	// Filename is the default filename used when writing to disk
	Filename = "sprites.bin"

	magic      = "TSPR"
	version    = 1
	maxEntries = 1<<16 - 1
	maxName    = 1<<8 - 1
)

var (
	errBadMagic    = errors.New("bundle: bad magic")
	errBadVersion  = errors.New("bundle: unsupported version")
	errBadChecksum = errors.New("bundle: checksum mismatch")
	errBadName     = errors.New("bundle: name must be 1 to 255 bytes")
	errTooMuch     = errors.New("bundle: trailing data")
)

type entryHeader struct {
	Width, Height uint32
	BPP           uint8
	Length        uint32
}

// Bundle is a set of named sprites. It implements the
// encoding.BinaryMarshaler and encoding.BinaryUnmarshaler interfaces.
type Bundle struct {
	sprites map[string]*bitmap.Sprite
}

// New returns an empty bundle
func New() *Bundle {
	return &Bundle{
		sprites: make(map[string]*bitmap.Sprite),
	}
}

// Length returns the number of sprites in the bundle
func (b *Bundle) Length() int {
	return len(b.sprites)
}

// Set stores s under name, replacing any sprite already there
func (b *Bundle) Set(name string, s *bitmap.Sprite) error {
	if len(name) == 0 || len(name) > maxName {
		return errBadName
	}
	if _, ok := b.sprites[name]; !ok && len(b.sprites) == maxEntries {
		return fmt.Errorf("bundle: more than %d entries", maxEntries)
	}
	b.sprites[name] = s
	return nil
}

// Lookup returns the sprite stored under name
func (b *Bundle) Lookup(name string) (*bitmap.Sprite, bool) {
	s, ok := b.sprites[name]
	return s, ok
}

// Names returns the sprite names in sorted order
func (b *Bundle) Names() []string {
	names := make([]string, 0, len(b.sprites))
	for k := range b.sprites {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// MarshalBinary encodes the bundle into binary form and returns the result
func (b *Bundle) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)

	buf.WriteString(magic)
	buf.WriteByte(version)

	if err := binary.Write(buf, binary.LittleEndian, uint16(len(b.sprites))); err != nil {
		return nil, err
	}

	for _, name := range b.Names() {
		s := b.sprites[name]

		buf.WriteByte(byte(len(name)))
		buf.WriteString(name)

		header := entryHeader{s.Width, s.Height, uint8(s.BPP), uint32(len(s.Bytes))}
		if err := binary.Write(buf, binary.LittleEndian, &header); err != nil {
			return nil, err
		}
		buf.Write(s.Bytes)
	}

	// Checksum everything so far
	if err := binary.Write(buf, binary.LittleEndian, crc32.ChecksumIEEE(buf.Bytes())); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// UnmarshalBinary decodes the bundle from binary form
func (b *Bundle) UnmarshalBinary(data []byte) error {
	if len(data) < len(magic)+1+2+crc32.Size {
		return io.ErrUnexpectedEOF
	}

	body, trailer := data[:len(data)-crc32.Size], data[len(data)-crc32.Size:]
	if crc32.ChecksumIEEE(body) != binary.LittleEndian.Uint32(trailer) {
		return errBadChecksum
	}

	r := bytes.NewReader(body)

	var head [len(magic) + 1]byte
	if err := readFull(r, head[:]); err != nil {
		return err
	}
	if string(head[:len(magic)]) != magic {
		return errBadMagic
	}
	if head[len(magic)] != version {
		return fmt.Errorf("%w: %d", errBadVersion, head[len(magic)])
	}

	var count uint16
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return err
	}

	b.sprites = make(map[string]*bitmap.Sprite, count)

	for i := 0; i < int(count); i++ {
		n, err := r.ReadByte()
		if err != nil {
			return io.ErrUnexpectedEOF
		}
		if n == 0 {
			return errBadName
		}

		name := make([]byte, n)
		if err := readFull(r, name); err != nil {
			return err
		}

		var header entryHeader
		if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
			return io.ErrUnexpectedEOF
		}
		if int64(header.Length) > int64(r.Len()) {
			return io.ErrUnexpectedEOF
		}

		pixels := make([]byte, header.Length)
		if err := readFull(r, pixels); err != nil {
			return err
		}

		s, err := bitmap.New(pixels, header.Width, header.Height, bitmap.BitsPerPixel(header.BPP))
		if err != nil {
			return fmt.Errorf("bundle: sprite %q: %w", name, err)
		}
		b.sprites[string(name)] = s
	}

	if r.Len() != 0 {
		return errTooMuch
	}

	return nil
}

// ReadFile loads a bundle previously written to path
func ReadFile(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	b := New()
	if err := b.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return b, nil
}

// WriteFile encodes the bundle to path
func (b *Bundle) WriteFile(path string) error {
	data, err := b.MarshalBinary()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
