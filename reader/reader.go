package reader

import (
	"sync/atomic"

	"github.com/wippyai/charstream"
	"github.com/wippyai/charstream/charset"
	"github.com/wippyai/charstream/errors"
)

const (
	// DefaultBufferSize is the raw byte buffer size used when
	// Options.BufferSize is zero.
	DefaultBufferSize = 1024

	// MinBufferSize is the floor applied to Options.BufferSize. Buffers
	// below this make detection and decoding degenerate.
	MinBufferSize = 128
)

// Options configures a Reader. The zero value selects UTF-8 with byte
// order mark detection enabled and the default buffer size.
type Options struct {
	// Encoding is the initial character encoding. Nil selects
	// charset.UTF8, whose preamble is stripped when present.
	Encoding charstream.Encoding

	// BufferSize is the raw byte buffer size in bytes. Zero selects
	// DefaultBufferSize; values below MinBufferSize are clamped up;
	// negative values are rejected.
	BufferSize int

	// DisableBOMDetection turns off byte order mark sniffing, pinning
	// the configured encoding regardless of leading bytes.
	DisableBOMDetection bool

	// LeaveOpen keeps the byte source open when the Reader is closed.
	LeaveOpen bool
}

// Reader decodes characters from a ByteSource through a fixed raw byte
// buffer and a decoded character buffer. See the package documentation
// for the buffering and detection model.
type Reader struct {
	src charstream.ByteSource
	enc charstream.Encoding
	dec charstream.Decoder

	byteBuf []byte
	byteLen int // valid bytes in byteBuf
	bytePos int // preamble match progress; nonzero only while checkPreamble

	charBuf []rune
	charPos int // next unread character
	charLen int // valid characters in charBuf

	maxCharsPerBuffer int
	preamble          []byte

	checkPreamble  bool // preamble match still undecided
	detectEncoding bool // byte order mark sniffing still enabled
	isBlocked      bool // last source read came up short
	leaveOpen      bool
	closed         bool

	// busy is the advisory single-owner token held for the duration of
	// every public operation. It detects overlapping use, it does not
	// make the Reader safe for concurrent use.
	busy atomic.Bool
}

// New constructs a Reader over src.
func New(src charstream.ByteSource, opts Options) (*Reader, error) {
	if src == nil {
		return nil, errors.InvalidInput("source must not be nil")
	}
	enc := opts.Encoding
	if enc == nil {
		enc = charset.UTF8
	}
	size := opts.BufferSize
	if size < 0 {
		return nil, errors.InvalidInput("buffer size must be positive")
	}
	if size == 0 {
		size = DefaultBufferSize
	}
	if size < MinBufferSize {
		size = MinBufferSize
	}

	r := &Reader{
		src:       src,
		enc:       enc,
		dec:       enc.NewDecoder(),
		byteBuf:   make([]byte, size),
		preamble:  enc.Preamble(),
		leaveOpen: opts.LeaveOpen,
	}
	r.maxCharsPerBuffer = enc.MaxChars(size)
	r.charBuf = make([]rune, r.maxCharsPerBuffer)
	r.checkPreamble = len(r.preamble) > 0
	r.detectEncoding = !opts.DisableBOMDetection
	return r, nil
}

// acquire takes the advisory busy token and verifies the Reader is open.
func (r *Reader) acquire(op string) error {
	if !r.busy.CompareAndSwap(false, true) {
		return errors.InProgress(op)
	}
	if r.closed {
		r.busy.Store(false)
		return errors.Closed(op)
	}
	return nil
}

func (r *Reader) release() {
	r.busy.Store(false)
}

// CurrentEncoding returns the active encoding. It may differ from the
// configured one after byte order mark detection.
func (r *Reader) CurrentEncoding() charstream.Encoding {
	return r.enc
}

// Buffered returns the number of decoded characters not yet read.
func (r *Reader) Buffered() int {
	return r.charLen - r.charPos
}

// DiscardBufferedData drops buffered bytes and characters and resets the
// decoder. Undecoded bytes are lost; this is intended only for
// resynchronizing after an out-of-band seek on the source.
func (r *Reader) DiscardBufferedData() error {
	if err := r.acquire("DiscardBufferedData"); err != nil {
		return err
	}
	defer r.release()

	r.byteLen = 0
	r.bytePos = 0
	r.charPos = 0
	r.charLen = 0
	r.dec = r.enc.NewDecoder()
	r.isBlocked = false
	return nil
}

// Close tears the Reader down and closes the source unless the Reader
// was constructed with LeaveOpen. Closing twice is a no-op; every other
// operation on a closed Reader fails with a closed error.
func (r *Reader) Close() error {
	if !r.busy.CompareAndSwap(false, true) {
		return errors.InProgress("Close")
	}
	defer r.release()

	if r.closed {
		return nil
	}
	r.closed = true
	r.byteBuf = nil
	r.charBuf = nil
	r.dec = nil
	r.preamble = nil
	r.byteLen, r.bytePos, r.charPos, r.charLen = 0, 0, 0, 0

	if r.leaveOpen {
		return nil
	}
	return r.src.Close()
}
