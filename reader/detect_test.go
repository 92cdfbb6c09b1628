package reader

import (
	"testing"

	"github.com/wippyai/charstream/charset"
	"github.com/wippyai/charstream/source"
)

func encode(t *testing.T, cs *charset.Charset, s string) []byte {
	t.Helper()
	b, err := cs.Encoder().Bytes([]byte(s))
	if err != nil {
		t.Fatalf("encode %s: %v", cs.Name(), err)
	}
	return b
}

func withPreamble(cs *charset.Charset, payload []byte) []byte {
	data := append([]byte{}, cs.Preamble()...)
	return append(data, payload...)
}

func TestPreambleStripped_ChunkingInvariance(t *testing.T) {
	const text = "héllo ★ world"
	data := withPreamble(charset.UTF8, []byte(text))

	scripts := [][]int{
		nil,
		{1, 1, 1},
		{2, 2},
		{3},
		{1, 2, 4},
		{5, 1},
		{1, 1, 1, 1, 1, 1, 1, 1},
	}
	for _, sizes := range scripts {
		r, err := New(source.NewChunked(data, sizes...), Options{})
		if err != nil {
			t.Fatal(err)
		}
		got, err := r.ReadToEnd()
		if err != nil {
			t.Fatalf("chunks %v: ReadToEnd: %v", sizes, err)
		}
		if got != text {
			t.Errorf("chunks %v: got %q, want %q", sizes, got, text)
		}
	}
}

func TestPreambleMismatch_NoBytesLost(t *testing.T) {
	// Two bytes match the UTF-8 preamble before the third diverges; the
	// matched prefix must come back out through the decoder.
	r, err := New(source.NewChunked([]byte{0xEF, 0xBB, 0x41}, 2, 1), Options{})
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.ReadToEnd()
	if err != nil {
		t.Fatalf("ReadToEnd: %v", err)
	}
	if got != "�A" {
		t.Errorf("got %q, want %q", got, "�A")
	}
}

func TestBOMDetection(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		wantText string
		wantEnc  string
	}{
		{
			name:     "utf-16be",
			data:     []byte{0xFE, 0xFF, 0x00, 0x41, 0x00, 0x42},
			wantText: "AB",
			wantEnc:  "utf-16be",
		},
		{
			name:     "utf-16le",
			data:     []byte{0xFF, 0xFE, 0x41, 0x00, 0x42, 0x00},
			wantText: "AB",
			wantEnc:  "utf-16le",
		},
		{
			name:     "utf-32le",
			data:     []byte{0xFF, 0xFE, 0x00, 0x00, 0x41, 0x00, 0x00, 0x00},
			wantText: "A",
			wantEnc:  "utf-32le",
		},
		{
			name:     "utf-32be",
			data:     []byte{0x00, 0x00, 0xFE, 0xFF, 0x00, 0x00, 0x00, 0x41},
			wantText: "A",
			wantEnc:  "utf-32be",
		},
		{
			name:     "utf-8 marker",
			data:     []byte{0xEF, 0xBB, 0xBF, 'h', 'i'},
			wantText: "hi",
			wantEnc:  "utf-8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// UTF8NoBOM has no preamble, so every marker goes through
			// the sniffer rather than the preamble matcher.
			r, err := New(source.NewChunked(tt.data), Options{Encoding: charset.UTF8NoBOM})
			if err != nil {
				t.Fatal(err)
			}
			got, err := r.ReadToEnd()
			if err != nil {
				t.Fatalf("ReadToEnd: %v", err)
			}
			if got != tt.wantText {
				t.Errorf("text: got %q, want %q", got, tt.wantText)
			}
			if name := r.CurrentEncoding().Name(); name != tt.wantEnc {
				t.Errorf("encoding: got %q, want %q", name, tt.wantEnc)
			}
		})
	}
}

func TestBOMDetection_MarkerSplitAcrossReads(t *testing.T) {
	// The complete two-byte marker arrives in the first chunk, the
	// payload afterwards.
	data := []byte{0xFF, 0xFE, 0x41, 0x00}
	r, err := New(source.NewChunked(data, 2, 2), Options{Encoding: charset.UTF8NoBOM})
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.ReadToEnd()
	if err != nil {
		t.Fatalf("ReadToEnd: %v", err)
	}
	if got != "A" {
		t.Errorf("got %q, want %q", got, "A")
	}
	if name := r.CurrentEncoding().Name(); name != "utf-16le" {
		t.Errorf("encoding: got %q", name)
	}
}

func TestBOMDetection_Disabled(t *testing.T) {
	data := []byte{0xFE, 0xFF, 'o', 'k'}
	r, err := New(source.NewChunked(data), Options{
		Encoding:            charset.UTF8NoBOM,
		DisableBOMDetection: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.ReadToEnd()
	if err != nil {
		t.Fatalf("ReadToEnd: %v", err)
	}
	// The marker bytes are invalid UTF-8 and decode as replacements.
	if got != "��ok" {
		t.Errorf("got %q", got)
	}
	if name := r.CurrentEncoding().Name(); name != "utf-8" {
		t.Errorf("encoding switched despite disabled detection: %q", name)
	}
}

func TestBOMDetection_NoMarkerFallsBack(t *testing.T) {
	r := newOver(t, "plain text, three or more bytes", Options{})
	got, err := r.ReadToEnd()
	if err != nil {
		t.Fatalf("ReadToEnd: %v", err)
	}
	if got != "plain text, three or more bytes" {
		t.Errorf("got %q", got)
	}
	if name := r.CurrentEncoding().Name(); name != "utf-8" {
		t.Errorf("encoding: got %q", name)
	}
}

func TestDirectPath_BulkReadMatchesBufferedRead(t *testing.T) {
	text := ""
	for i := 0; i < 400; i++ {
		text += "pack my box with five dozen liquor jugs ★ "
	}
	payload := encode(t, charset.UTF16LE, text)
	data := withPreamble(charset.UTF16LE, payload)

	// Small byte buffer so the bulk request far exceeds one buffer's
	// worth of characters and takes the direct path after detection.
	r, err := New(source.NewChunked(data), Options{BufferSize: MinBufferSize})
	if err != nil {
		t.Fatal(err)
	}
	buf := make([]rune, len([]rune(text))+10)
	n, err := r.ReadBlock(buf)
	if err != nil {
		t.Fatalf("ReadBlock: %v", err)
	}
	if string(buf[:n]) != text {
		t.Errorf("direct-path read diverged from input (%d runes)", n)
	}
}
