package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/charstream/charset"
	"github.com/wippyai/charstream/reader"
	"github.com/wippyai/charstream/source"
)

func main() {
	var (
		inFile      = flag.String("in", "", "Input file (default stdin)")
		encName     = flag.String("enc", "", "Pin the input encoding (utf-8, utf-16le, utf-16be, utf-32le, utf-32be)")
		noDetect    = flag.Bool("nodetect", false, "Disable byte order mark detection")
		lines       = flag.Bool("lines", false, "Print numbered lines")
		showEnc     = flag.Bool("show-encoding", false, "Report the active encoding on stderr")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive pager")
	)
	flag.Parse()

	if *verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			reader.SetLogger(l)
			defer l.Sync()
		}
	}

	if *interactive {
		if *inFile == "" {
			fmt.Fprintln(os.Stderr, "Usage: textdec -i -in <file> [-enc name]")
			os.Exit(1)
		}
		if err := runInteractive(*inFile, *encName, *noDetect); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*inFile, *encName, *noDetect, *lines, *showEnc); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newReader opens the input and builds a decoding reader over it.
func newReader(inFile, encName string, noDetect bool) (*reader.Reader, error) {
	var in io.Reader = os.Stdin
	if inFile != "" {
		f, err := os.Open(inFile)
		if err != nil {
			return nil, err
		}
		in = f
	}

	opts := reader.Options{DisableBOMDetection: noDetect}
	if encName != "" {
		cs, ok := charset.Lookup(encName)
		if !ok {
			return nil, fmt.Errorf("unknown encoding %q", encName)
		}
		opts.Encoding = cs
	}

	return reader.New(source.FromReader(in), opts)
}

func run(inFile, encName string, noDetect, lines, showEnc bool) error {
	r, err := newReader(inFile, encName, noDetect)
	if err != nil {
		return err
	}
	defer r.Close()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if lines {
		for n := 1; ; n++ {
			line, err := r.ReadLine()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%6d  %s\n", n, line)
		}
	} else {
		text, err := r.ReadToEnd()
		if err != nil {
			return err
		}
		if _, err := out.WriteString(text); err != nil {
			return err
		}
	}

	if showEnc {
		fmt.Fprintf(os.Stderr, "encoding: %s\n", r.CurrentEncoding().Name())
	}
	return nil
}
