package charset

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"

	"github.com/wippyai/charstream"
)

// Charset implements charstream.Encoding over a golang.org/x/text encoding.
type Charset struct {
	name     string
	enc      encoding.Encoding
	preamble []byte
	maxChars func(int) int
}

var _ charstream.Encoding = (*Charset)(nil)

// Preamble bytes are cached at package level so every reader shares one
// slice per encoding.
var (
	utf8Preamble    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEPreamble = []byte{0xFF, 0xFE}
	utf16BEPreamble = []byte{0xFE, 0xFF}
	utf32LEPreamble = []byte{0xFF, 0xFE, 0x00, 0x00}
	utf32BEPreamble = []byte{0x00, 0x00, 0xFE, 0xFF}
)

// The MaxChars bounds add slack for an incomplete sequence carried from a
// previous call plus the replacement character a final flush can emit.
var (
	// UTF8 is UTF-8 with the EF BB BF preamble. It is the default
	// encoding for reader.New.
	UTF8 = &Charset{
		name:     "utf-8",
		enc:      unicode.UTF8,
		preamble: utf8Preamble,
		maxChars: func(n int) int { return n + 4 },
	}

	// UTF8NoBOM is UTF-8 without a preamble.
	UTF8NoBOM = &Charset{
		name:     "utf-8",
		enc:      unicode.UTF8,
		maxChars: func(n int) int { return n + 4 },
	}

	// UTF16LE is little-endian UTF-16.
	UTF16LE = &Charset{
		name:     "utf-16le",
		enc:      unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
		preamble: utf16LEPreamble,
		maxChars: func(n int) int { return n/2 + 3 },
	}

	// UTF16BE is big-endian UTF-16.
	UTF16BE = &Charset{
		name:     "utf-16be",
		enc:      unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
		preamble: utf16BEPreamble,
		maxChars: func(n int) int { return n/2 + 3 },
	}

	// UTF32LE is little-endian UTF-32.
	UTF32LE = &Charset{
		name:     "utf-32le",
		enc:      utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM),
		preamble: utf32LEPreamble,
		maxChars: func(n int) int { return n/4 + 3 },
	}

	// UTF32BE is big-endian UTF-32.
	UTF32BE = &Charset{
		name:     "utf-32be",
		enc:      utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM),
		preamble: utf32BEPreamble,
		maxChars: func(n int) int { return n/4 + 3 },
	}
)

// Name returns the canonical lower-case name of the charset.
func (c *Charset) Name() string {
	return c.name
}

// Preamble returns the charset's leading byte sequence, or nil.
// The returned slice is shared and must not be modified.
func (c *Charset) Preamble() []byte {
	return c.preamble
}

// MaxChars returns an upper bound on characters produced from byteCount bytes.
func (c *Charset) MaxChars(byteCount int) int {
	return c.maxChars(byteCount)
}

// NewDecoder returns a fresh stateful decoder for this charset.
func (c *Charset) NewDecoder() charstream.Decoder {
	return &textDecoder{
		tr:   c.enc.NewDecoder(),
		name: c.name,
	}
}

// Encoder returns an x/text encoder for this charset, for callers that
// need the write side (the library itself is read-only).
func (c *Charset) Encoder() *encoding.Encoder {
	return c.enc.NewEncoder()
}

// Lookup resolves a charset by name. Case, dashes, underscores and spaces
// are ignored, so "UTF-8", "utf8" and "utf_8" all resolve to UTF8.
func Lookup(name string) (*Charset, bool) {
	key := strings.ToLower(name)
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	switch key {
	case "utf8":
		return UTF8, true
	case "utf8nobom":
		return UTF8NoBOM, true
	case "utf16", "utf16le":
		return UTF16LE, true
	case "utf16be":
		return UTF16BE, true
	case "utf32", "utf32le":
		return UTF32LE, true
	case "utf32be":
		return UTF32BE, true
	}
	return nil, false
}
