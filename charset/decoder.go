package charset

import (
	"unicode/utf8"

	"golang.org/x/text/transform"

	"github.com/wippyai/charstream/errors"
)

const scratchSize = 4096

// textDecoder adapts a transform.Transformer (an x/text decoder, which
// emits UTF-8 bytes) to the charstream.Decoder contract. Input the
// transformer cannot consume yet is carried in pending across calls.
type textDecoder struct {
	tr      transform.Transformer
	name    string
	pending []byte
	scratch []byte
}

func (d *textDecoder) Decode(dst []rune, at int, src []byte, final bool) (int, error) {
	if len(src) > 0 {
		d.pending = append(d.pending, src...)
	}
	if len(d.pending) == 0 && !final {
		return 0, nil
	}
	if d.scratch == nil {
		d.scratch = make([]byte, scratchSize)
	}

	written := 0
	for {
		nDst, nSrc, err := d.tr.Transform(d.scratch, d.pending, final)

		out := d.scratch[:nDst]
		for len(out) > 0 {
			r, size := utf8.DecodeRune(out)
			out = out[size:]
			if at+written >= len(dst) {
				return written, errors.Overflow(d.name, len(dst)-at, written+1)
			}
			dst[at+written] = r
			written++
		}
		d.pending = d.pending[:copy(d.pending, d.pending[nSrc:])]

		switch err {
		case nil:
			if len(d.pending) == 0 {
				return written, nil
			}
			if nDst == 0 && nSrc == 0 {
				return written, errors.New(errors.PhaseDecode, errors.KindDecodeFailed).
					Detail("%s decoder made no progress on %d buffered bytes", d.name, len(d.pending)).
					Build()
			}
		case transform.ErrShortDst:
			// scratch full, keep draining
		case transform.ErrShortSrc:
			if !final {
				// Incomplete trailing sequence, joined with the next call's input.
				return written, nil
			}
			return written, errors.DecodeFailed(d.name, err)
		default:
			return written, errors.DecodeFailed(d.name, err)
		}
	}
}
