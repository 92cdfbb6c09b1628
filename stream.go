package charstream

import (
	"context"
	"io"
)

// ByteSource is the byte provider a Reader decodes from.
//
// A source signals end of input by returning (0, io.EOF). Returning
// (n, io.EOF) with n > 0 is permitted; the remaining bytes are consumed
// and the next call is expected to report end of input. A negative byte
// count is a contract violation and is reported to the caller as a
// structured error.
type ByteSource interface {
	// Read fills p with up to len(p) bytes, blocking until at least one
	// byte is available or the source is exhausted.
	Read(p []byte) (int, error)

	// ReadContext is the suspension-capable counterpart of Read.
	// Cancellation is the source's responsibility; implementations that
	// cannot interrupt an in-flight read should at minimum check ctx
	// before reading.
	ReadContext(ctx context.Context, p []byte) (int, error)

	io.Closer
}

// Encoding identifies a character set and produces decoders for it.
type Encoding interface {
	// Name returns the canonical lower-case name, e.g. "utf-16le".
	Name() string

	// NewDecoder returns a fresh stateful decoder. Resetting decode
	// state is done by discarding the old decoder and creating a new one.
	NewDecoder() Decoder

	// MaxChars returns an upper bound on the number of characters a
	// decoder can produce from byteCount input bytes, including any
	// characters flushed from internally buffered partial sequences.
	MaxChars(byteCount int) int

	// Preamble returns the fixed leading byte sequence that identifies
	// this encoding, or nil when the encoding has none. Callers must not
	// modify the returned slice.
	Preamble() []byte
}

// Decoder converts bytes to characters across multiple calls.
//
// Decode consumes all of src, appending decoded characters to dst
// starting at dst[at]. Incomplete trailing byte sequences are retained
// inside the decoder and joined with the input of the next call. When
// final is true the decoder flushes retained bytes, emitting replacement
// characters for sequences that can no longer complete.
//
// Decoders are stateful and not safe for concurrent use.
type Decoder interface {
	Decode(dst []rune, at int, src []byte, final bool) (int, error)
}
