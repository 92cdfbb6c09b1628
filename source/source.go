package source

import (
	"context"
	"io"

	"github.com/wippyai/charstream"
)

// readerSource adapts an io.Reader to charstream.ByteSource.
type readerSource struct {
	r io.Reader
}

var _ charstream.ByteSource = (*readerSource)(nil)

// FromReader adapts r to a ByteSource. If r also implements io.Closer,
// closing the source closes r; otherwise Close is a no-op.
func FromReader(r io.Reader) charstream.ByteSource {
	return &readerSource{r: r}
}

func (s *readerSource) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err == io.EOF && n > 0 {
		// Deliver the final bytes now; the next call reports end of input.
		return n, nil
	}
	return n, err
}

// ReadContext checks ctx and delegates to Read. An io.Reader offers no way
// to interrupt an in-flight read, so cancellation takes effect between reads.
func (s *readerSource) ReadContext(ctx context.Context, p []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.Read(p)
}

func (s *readerSource) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
