package source

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

type closeRecorder struct {
	io.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestFromReader(t *testing.T) {
	s := FromReader(strings.NewReader("abc"))
	buf := make([]byte, 8)

	n, err := s.Read(buf)
	if err != nil || string(buf[:n]) != "abc" {
		t.Fatalf("got (%q, %v)", buf[:n], err)
	}
	if n, err = s.Read(buf); n != 0 || err != io.EOF {
		t.Errorf("at end: got (%d, %v)", n, err)
	}
}

func TestFromReader_DataWithEOF(t *testing.T) {
	// DataErrReader reports io.EOF together with the final bytes; the
	// adapter must hand the bytes over first and report EOF on the next call.
	s := FromReader(iotest.DataErrReader(strings.NewReader("xy")))
	buf := make([]byte, 8)

	n, err := s.Read(buf)
	if err != nil || string(buf[:n]) != "xy" {
		t.Fatalf("got (%q, %v)", buf[:n], err)
	}
	if n, err = s.Read(buf); n != 0 || err != io.EOF {
		t.Errorf("at end: got (%d, %v)", n, err)
	}
}

func TestFromReader_Close(t *testing.T) {
	rec := &closeRecorder{Reader: strings.NewReader("z")}
	s := FromReader(rec)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !rec.closed {
		t.Error("underlying closer not closed")
	}

	// A plain reader without Close is fine too.
	if err := FromReader(strings.NewReader("")).Close(); err != nil {
		t.Errorf("Close without closer: %v", err)
	}
}

func TestFromReader_ReadContext(t *testing.T) {
	s := FromReader(strings.NewReader("abc"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.ReadContext(ctx, make([]byte, 4)); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled context: got %v", err)
	}

	n, err := s.ReadContext(context.Background(), make([]byte, 4))
	if err != nil || n != 3 {
		t.Errorf("live context: got (%d, %v)", n, err)
	}
}

func TestChunked_Script(t *testing.T) {
	c := NewChunked([]byte("abcdef"), 2, 3)
	buf := make([]byte, 16)

	wants := []string{"ab", "cde", "f"}
	for i, want := range wants {
		n, err := c.Read(buf)
		if err != nil {
			t.Fatalf("chunk %d: %v", i, err)
		}
		if string(buf[:n]) != want {
			t.Errorf("chunk %d: got %q, want %q", i, buf[:n], want)
		}
	}
	if n, err := c.Read(buf); n != 0 || err != io.EOF {
		t.Errorf("at end: got (%d, %v)", n, err)
	}
}

func TestChunked_ZeroSizeEndsStream(t *testing.T) {
	c := NewChunked([]byte("abcdef"), 3, 0)
	buf := make([]byte, 16)

	if n, _ := c.Read(buf); string(buf[:n]) != "abc" {
		t.Fatalf("first chunk: %q", buf[:n])
	}
	if n, err := c.Read(buf); n != 0 || err != io.EOF {
		t.Errorf("scripted end: got (%d, %v)", n, err)
	}
	if n, err := c.Read(buf); n != 0 || err != io.EOF {
		t.Errorf("end is sticky: got (%d, %v)", n, err)
	}
}

func TestChunked_CapsAtBufferSize(t *testing.T) {
	c := NewChunked([]byte("abcdef"), 4)
	buf := make([]byte, 2)

	n, err := c.Read(buf)
	if err != nil || string(buf[:n]) != "ab" {
		t.Fatalf("got (%q, %v)", buf[:n], err)
	}
}

func TestChunked_Close(t *testing.T) {
	c := NewChunked([]byte("x"))
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Read(make([]byte, 1)); err != io.ErrClosedPipe {
		t.Errorf("read after close: got %v", err)
	}
}
