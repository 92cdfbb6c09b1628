// Package charset provides charstream.Encoding implementations backed by
// golang.org/x/text for the Unicode transformation formats: UTF-8,
// UTF-16LE/BE and UTF-32LE/BE.
//
// Each charset carries its preamble (byte order mark), a worst-case
// characters-per-bytes bound used by the reader to size its character
// buffer, and a factory for stateful decoders. Invalid byte sequences are
// decoded to U+FFFD following x/text replacement policy.
package charset
