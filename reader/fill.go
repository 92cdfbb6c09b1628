package reader

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/wippyai/charstream"
	"github.com/wippyai/charstream/charset"
	"github.com/wippyai/charstream/errors"
)

// readFunc abstracts the blocking and the context-aware source read so
// the fill cycle exists exactly once. Blocking entry points pass the
// source's Read; context entry points pass a closure over ReadContext.
type readFunc func(p []byte) (int, error)

func (r *Reader) syncRead(p []byte) (int, error) {
	return r.src.Read(p)
}

func (r *Reader) ctxRead(ctx context.Context) readFunc {
	return func(p []byte) (int, error) {
		return r.src.ReadContext(ctx, p)
	}
}

// fillBuffer refills the character buffer, or decodes straight into user
// when user is non-nil and the direct path is eligible. It returns the
// number of characters made available and whether they were delivered to
// user. A return of (0, _, nil) means end of input.
//
// The loop keeps reading while zero characters have been produced: a
// round that only consumed preamble or byte order mark bytes must
// continue until real characters emerge or the source is exhausted.
func (r *Reader) fillBuffer(read readFunc, user []rune) (int, bool, error) {
	r.charPos = 0
	r.charLen = 0
	direct := 0

	for {
		off := 0
		if r.checkPreamble {
			// Keep buffered bytes: a short read may split the preamble.
			off = r.byteLen
		} else {
			r.byteLen = 0
		}

		n, err := read(r.byteBuf[off:])
		if n < 0 {
			return 0, false, errors.SourceContract(n)
		}
		if err != nil && err != io.EOF {
			return 0, false, err
		}
		if n == 0 {
			// End of input. Bytes still held for the preamble comparison
			// and any partial sequence inside the decoder flush now.
			if derr := r.decodeTail(user, &direct, true); derr != nil {
				return 0, false, derr
			}
			r.checkPreamble = false
			break
		}

		r.byteLen = off + n
		// Recorded before preamble or marker handling compacts the buffer.
		r.isBlocked = n < len(r.byteBuf)-off

		if r.checkPreamble && !r.matchPreamble() {
			continue // still undecided, need more bytes
		}
		if r.detectEncoding && r.byteLen >= 2 {
			r.sniffEncoding()
		}

		if derr := r.decodeTail(user, &direct, false); derr != nil {
			return 0, false, derr
		}
		if direct+r.charLen > 0 {
			break
		}
	}

	if direct > 0 {
		return direct, true, nil
	}
	return r.charLen, false, nil
}

// decodeTail runs the buffered raw bytes through the decoder, either into
// the caller's buffer (direct path) or into the character buffer. The
// direct path is never taken while preamble or marker detection is still
// pending, since a later encoding switch would invalidate characters
// already delivered; eligibility is re-evaluated here on every round so
// an encoding switch within the fill is honored.
func (r *Reader) decodeTail(user []rune, direct *int, final bool) error {
	toUser := *direct > 0 ||
		(user != nil && !r.checkPreamble && !r.detectEncoding && len(user) >= r.maxCharsPerBuffer)

	var n int
	var err error
	if toUser {
		n, err = r.dec.Decode(user, *direct, r.byteBuf[:r.byteLen], final)
		*direct += n
	} else {
		n, err = r.dec.Decode(r.charBuf, r.charLen, r.byteBuf[:r.byteLen], final)
		r.charLen += n
	}
	r.byteLen = 0
	r.bytePos = 0
	return err
}

// matchPreamble compares buffered bytes against the configured encoding's
// preamble. It reports false while the comparison is undecided (every
// byte so far matches but the preamble is longer than what is buffered).
// No byte is consumed until the comparison fully resolves.
func (r *Reader) matchPreamble() bool {
	n := r.byteLen
	if n > len(r.preamble) {
		n = len(r.preamble)
	}
	for i := r.bytePos; i < n; i++ {
		if r.byteBuf[i] != r.preamble[i] {
			// Mismatch: every buffered byte stays for normal decoding.
			r.bytePos = 0
			r.checkPreamble = false
			return true
		}
	}
	r.bytePos = n
	if n < len(r.preamble) {
		return false
	}

	// Full match: drop the preamble. It already identified the encoding,
	// so marker sniffing is pointless from here on.
	copy(r.byteBuf, r.byteBuf[len(r.preamble):r.byteLen])
	r.byteLen -= len(r.preamble)
	r.bytePos = 0
	r.checkPreamble = false
	r.detectEncoding = false
	return true
}

// sniffEncoding inspects the leading buffered bytes for a byte order
// mark and switches the active encoding accordingly. Callers guarantee
// at least two bytes are buffered. With exactly two bytes and no match
// the decision is deferred to the next fill; any other outcome concludes
// detection.
func (r *Reader) sniffEncoding() {
	b := r.byteBuf
	var enc charstream.Encoding
	consume := 0

	switch {
	case b[0] == 0xFE && b[1] == 0xFF:
		enc, consume = charset.UTF16BE, 2
	case b[0] == 0xFF && b[1] == 0xFE:
		if r.byteLen < 4 || b[2] != 0 || b[3] != 0 {
			enc, consume = charset.UTF16LE, 2
		} else {
			enc, consume = charset.UTF32LE, 4
		}
	case r.byteLen >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF:
		enc, consume = charset.UTF8NoBOM, 3
	case r.byteLen >= 4 && b[0] == 0x00 && b[1] == 0x00 && b[2] == 0xFE && b[3] == 0xFF:
		enc, consume = charset.UTF32BE, 4
	case r.byteLen == 2:
		return // could still be the start of a longer marker
	}

	r.detectEncoding = false
	if enc == nil {
		return // no marker, the configured encoding stands
	}

	copy(r.byteBuf, r.byteBuf[consume:r.byteLen])
	r.byteLen -= consume
	r.switchEncoding(enc)
}

// switchEncoding replaces the active encoding, resets the decoder and
// reallocates the character buffer for the new worst-case size. Unread
// characters decoded under the old encoding are abandoned; detection
// always resolves before the first decode of a fill, so there are none.
func (r *Reader) switchEncoding(enc charstream.Encoding) {
	Logger().Debug("encoding switched by byte order mark",
		zap.String("from", r.enc.Name()),
		zap.String("to", enc.Name()))

	r.enc = enc
	r.dec = enc.NewDecoder()
	r.maxCharsPerBuffer = enc.MaxChars(len(r.byteBuf))
	r.charBuf = make([]rune, r.maxCharsPerBuffer)
	r.charPos = 0
	r.charLen = 0
}
