package source

import (
	"context"
	"io"

	"github.com/wippyai/charstream"
)

// Chunked is an in-memory ByteSource that delivers its data in scripted
// chunk sizes, one chunk per Read call. It exists to exercise short-read
// and chunk-boundary behavior: a reader over a Chunked source must decode
// the same text no matter how the bytes are split.
//
// Each Read consumes the next size from the script. A scripted size of
// zero or less ends the stream immediately, discarding any remaining
// data. When the script is exhausted the remaining data is delivered in
// a single chunk. Once the data runs out Read returns (0, io.EOF).
type Chunked struct {
	data   []byte
	sizes  []int
	next   int
	closed bool
}

var _ charstream.ByteSource = (*Chunked)(nil)

// NewChunked builds a Chunked source over data with the given chunk script.
func NewChunked(data []byte, sizes ...int) *Chunked {
	return &Chunked{data: data, sizes: sizes}
}

func (c *Chunked) Read(p []byte) (int, error) {
	if c.closed {
		return 0, io.ErrClosedPipe
	}
	if len(c.data) == 0 {
		return 0, io.EOF
	}
	n := len(c.data)
	if c.next < len(c.sizes) {
		s := c.sizes[c.next]
		c.next++
		if s <= 0 {
			c.data = nil
			return 0, io.EOF
		}
		if s < n {
			n = s
		}
	}
	if n > len(p) {
		n = len(p)
	}
	copy(p, c.data[:n])
	c.data = c.data[n:]
	return n, nil
}

func (c *Chunked) ReadContext(ctx context.Context, p []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return c.Read(p)
}

func (c *Chunked) Close() error {
	c.closed = true
	return nil
}
