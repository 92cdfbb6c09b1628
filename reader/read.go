package reader

import (
	"context"
	"io"
)

// ReadRune returns the next character, or io.EOF at end of input.
func (r *Reader) ReadRune() (rune, error) {
	if err := r.acquire("ReadRune"); err != nil {
		return 0, err
	}
	defer r.release()
	return r.readRune(r.syncRead)
}

// ReadRuneContext is ReadRune driven by the source's context-aware read.
func (r *Reader) ReadRuneContext(ctx context.Context) (rune, error) {
	if err := r.acquire("ReadRuneContext"); err != nil {
		return 0, err
	}
	defer r.release()
	return r.readRune(r.ctxRead(ctx))
}

// PeekRune returns the next character without consuming it. When the
// character buffer is empty and the last source read came up short,
// PeekRune reports io.EOF immediately instead of blocking; a later read
// may still succeed on such a source.
func (r *Reader) PeekRune() (rune, error) {
	if err := r.acquire("PeekRune"); err != nil {
		return 0, err
	}
	defer r.release()

	if r.charPos == r.charLen {
		if r.isBlocked {
			return 0, io.EOF
		}
		n, _, err := r.fillBuffer(r.syncRead, nil)
		if err != nil {
			return 0, err
		}
		if n == 0 {
			return 0, io.EOF
		}
	}
	return r.charBuf[r.charPos], nil
}

// Read copies up to len(p) characters into p. It is deliberately
// non-greedy: as soon as a fill is flagged blocked the characters read so
// far are returned, so interactive or network sources do not stall the
// caller. It returns io.EOF only when no characters at all were read.
func (r *Reader) Read(p []rune) (int, error) {
	if err := r.acquire("Read"); err != nil {
		return 0, err
	}
	defer r.release()
	return r.readRunes(r.syncRead, p)
}

// ReadContext is Read driven by the source's context-aware read.
func (r *Reader) ReadContext(ctx context.Context, p []rune) (int, error) {
	if err := r.acquire("ReadContext"); err != nil {
		return 0, err
	}
	defer r.release()
	return r.readRunes(r.ctxRead(ctx), p)
}

// ReadBlock fills p completely, looping across blocked fills, stopping
// only at end of input. It returns io.EOF only when nothing was read.
func (r *Reader) ReadBlock(p []rune) (int, error) {
	if err := r.acquire("ReadBlock"); err != nil {
		return 0, err
	}
	defer r.release()
	return r.readBlock(r.syncRead, p)
}

// ReadBlockContext is ReadBlock driven by the source's context-aware read.
func (r *Reader) ReadBlockContext(ctx context.Context, p []rune) (int, error) {
	if err := r.acquire("ReadBlockContext"); err != nil {
		return 0, err
	}
	defer r.release()
	return r.readBlock(r.ctxRead(ctx), p)
}

// ReadLine returns the next line without its terminator. Terminators are
// "\r", "\n" and "\r\n". An empty final line before end of input yields
// ""; io.EOF is returned only when no characters were available at all.
func (r *Reader) ReadLine() (string, error) {
	if err := r.acquire("ReadLine"); err != nil {
		return "", err
	}
	defer r.release()
	return r.readLine(r.syncRead)
}

// ReadLineContext is ReadLine driven by the source's context-aware read.
func (r *Reader) ReadLineContext(ctx context.Context) (string, error) {
	if err := r.acquire("ReadLineContext"); err != nil {
		return "", err
	}
	defer r.release()
	return r.readLine(r.ctxRead(ctx))
}

// ReadToEnd reads everything from the current position to end of input.
// At end of input it returns "" with no error.
func (r *Reader) ReadToEnd() (string, error) {
	if err := r.acquire("ReadToEnd"); err != nil {
		return "", err
	}
	defer r.release()
	return r.readToEnd(r.syncRead)
}

// ReadToEndContext is ReadToEnd driven by the source's context-aware read.
func (r *Reader) ReadToEndContext(ctx context.Context) (string, error) {
	if err := r.acquire("ReadToEndContext"); err != nil {
		return "", err
	}
	defer r.release()
	return r.readToEnd(r.ctxRead(ctx))
}

// EOF reports whether the stream is exhausted. When the character buffer
// is empty this triggers a fill, which may block on an interactive source.
func (r *Reader) EOF() (bool, error) {
	if err := r.acquire("EOF"); err != nil {
		return false, err
	}
	defer r.release()

	if r.charPos < r.charLen {
		return false, nil
	}
	n, _, err := r.fillBuffer(r.syncRead, nil)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

func (r *Reader) readRune(read readFunc) (rune, error) {
	if r.charPos == r.charLen {
		n, _, err := r.fillBuffer(read, nil)
		if err != nil {
			return 0, err
		}
		if n == 0 {
			return 0, io.EOF
		}
	}
	ch := r.charBuf[r.charPos]
	r.charPos++
	return ch, nil
}

func (r *Reader) readRunes(read readFunc, p []rune) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	total := 0
	for total < len(p) {
		if r.charPos == r.charLen {
			n, direct, err := r.fillBuffer(read, p[total:])
			if err != nil {
				return total, err
			}
			if n == 0 {
				break // end of input
			}
			if direct {
				total += n
				if r.isBlocked {
					break
				}
				continue
			}
		}
		n := copy(p[total:], r.charBuf[r.charPos:r.charLen])
		r.charPos += n
		total += n
		if r.isBlocked {
			break
		}
	}
	if total == 0 {
		return 0, io.EOF
	}
	return total, nil
}

func (r *Reader) readBlock(read readFunc, p []rune) (int, error) {
	total := 0
	for total < len(p) {
		n, err := r.readRunes(read, p[total:])
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			return total, err
		}
		if n == 0 {
			break
		}
	}
	if total == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return total, nil
}

func (r *Reader) readLine(read readFunc) (string, error) {
	if r.charPos == r.charLen {
		n, _, err := r.fillBuffer(read, nil)
		if err != nil {
			return "", err
		}
		if n == 0 {
			return "", io.EOF
		}
	}

	var acc *[]rune
	for {
		for i := r.charPos; i < r.charLen; i++ {
			ch := r.charBuf[i]
			if ch != '\r' && ch != '\n' {
				continue
			}

			var line string
			if acc != nil {
				*acc = append(*acc, r.charBuf[r.charPos:i]...)
				line = string(*acc)
				putAccumulator(acc)
			} else {
				line = string(r.charBuf[r.charPos:i])
			}
			r.charPos = i + 1

			if ch == '\r' {
				// A lone trailing '\r' needs one more fill to decide
				// whether a following '\n' belongs to this terminator.
				if r.charPos == r.charLen {
					n, _, err := r.fillBuffer(read, nil)
					if err != nil {
						return "", err
					}
					if n == 0 {
						return line, nil
					}
				}
				if r.charBuf[r.charPos] == '\n' {
					r.charPos++
				}
			}
			return line, nil
		}

		// No terminator among the buffered characters.
		if acc == nil {
			acc = getAccumulator(r.charLen - r.charPos + 80)
		}
		*acc = append(*acc, r.charBuf[r.charPos:r.charLen]...)
		r.charPos = r.charLen

		n, _, err := r.fillBuffer(read, nil)
		if err != nil {
			putAccumulator(acc)
			return "", err
		}
		if n == 0 {
			line := string(*acc)
			putAccumulator(acc)
			return line, nil
		}
	}
}

func (r *Reader) readToEnd(read readFunc) (string, error) {
	acc := getAccumulator(r.charLen - r.charPos + len(r.charBuf))
	for {
		if r.charPos < r.charLen {
			*acc = append(*acc, r.charBuf[r.charPos:r.charLen]...)
			r.charPos = r.charLen
		}
		n, _, err := r.fillBuffer(read, nil)
		if err != nil {
			putAccumulator(acc)
			return "", err
		}
		if n == 0 {
			s := string(*acc)
			putAccumulator(acc)
			return s, nil
		}
	}
}
