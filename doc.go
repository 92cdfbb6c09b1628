// Package charstream provides buffered, charset-aware text reading over
// arbitrary byte sources.
//
// The library decodes a byte stream into characters incrementally, with
// byte order mark detection, reusable internal buffers, and blocking as
// well as context-aware read operations that share one decode engine.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	charstream/          Root package with ByteSource, Encoding and Decoder interfaces
//	├── reader/          The buffered decoding Reader (fill cycle, detection, line reads)
//	├── charset/         Concrete encodings backed by golang.org/x/text
//	├── source/          ByteSource implementations over io.Reader and in-memory data
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Decode a file with byte order mark detection:
//
//	f, err := os.Open("notes.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	r, err := reader.New(source.FromReader(f), reader.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	for {
//	    line, err := r.ReadLine()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(line)
//	}
//
// # Encoding Detection
//
// A Reader constructed with detection enabled (the default) inspects the
// first bytes of the stream. A preamble belonging to the configured
// encoding is stripped; otherwise a byte order mark switches the active
// encoding to UTF-8, UTF-16 or UTF-32 of the matching endianness. When no
// marker is found the configured encoding stays in effect.
//
// # Thread Safety
//
// A Reader is not internally synchronized. Callers must serialize access
// to one Reader; an advisory guard detects overlapping reads and fails
// them with an operation-in-progress error rather than corrupting state.
package charstream
