// Package reader implements the buffered, charset-aware text Reader.
//
// A Reader sits on a charstream.ByteSource and exposes character- and
// line-oriented reads. Bytes flow through a fixed raw buffer into a
// stateful decoder and out of a decoded character buffer:
//
//	┌────────────┐   fill   ┌──────────┐   decode   ┌───────────┐
//	│ ByteSource │ ───────▶ │ byte buf │ ─────────▶ │ char buf  │ ─▶ caller
//	└────────────┘          └──────────┘            └───────────┘
//
// # Buffering
//
// Reads are satisfied from already-decoded characters first. When those
// run out a fill cycle pulls bytes from the source and feeds them to the
// decoder until at least one character is produced or the input ends.
// Bulk reads requesting at least a whole buffer's worth of characters
// decode straight into the caller's buffer, skipping the internal copy.
//
// # Encoding Detection
//
// The configured encoding's preamble is stripped when present, even when
// a short-reading source splits it across several fills. With detection
// enabled (the default) the first bytes are also checked for a byte order
// mark; a match switches the active encoding to UTF-8, UTF-16 or UTF-32
// of the indicated endianness and consumes the marker. Detection resolves
// before the first characters are decoded, then stays off.
//
// # Blocked Reads
//
// A source read returning fewer bytes than requested marks the Reader
// blocked. Read treats that as a hint to hand back what it has instead of
// stalling on a slow source; ReadBlock ignores the hint and keeps going.
// PeekRune never blocks on a Reader in that state.
//
// # Blocking and Context Operations
//
// Every operation exists in a blocking form (ReadLine) and a
// context-aware form (ReadLineContext). Both drive the same fill and scan
// engine, parameterized over the source read primitive, so their
// observable behavior is identical.
//
// # Thread Safety
//
// A Reader is not internally synchronized. An advisory busy token makes
// overlapping operations fail with an in-progress error instead of
// corrupting buffer state; it is a misuse detector, not a lock.
//
// # Errors
//
// End of input is io.EOF. Everything else is a structured error from the
// errors package or the source's own error, propagated unmodified.
package reader
