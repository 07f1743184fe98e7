// Command mtprint reads framed TL service messages from stdin and
// pretty-prints them.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gramkit/gram/proto/codec"
)

func codecs(name string) codec.Codec {
	switch name {
	case "full":
		return &codec.Full{}
	case "padded":
		return codec.PaddedIntermediate{}
	default:
		return codec.Intermediate{}
	}
}

func main() {
	format := flag.String("format", "pretty", "output format (pretty, go)")
	framing := flag.String("codec", "intermediate", "transport framing (intermediate, padded, full)")
	flag.Parse()

	if err := NewPrinter(os.Stdin, formats(*format), codecs(*framing)).Print(os.Stdout); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
