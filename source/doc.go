// Package source provides charstream.ByteSource implementations:
// FromReader adapts any io.Reader (and optional io.Closer), and Chunked
// serves in-memory data in scripted chunk sizes for exercising short-read
// behavior.
package source
