// oggtracks lists the distinct logical streams in an interleaved Ogg
// capture, printing each stream's codec kind once as soon as its header
// page is seen. With -n, it prints the stream serial number instead of the
// codec kind.
//
// Usage:
//
//	oggtracks [-n] < capture.ogg
//
// Grounded on apps/kitchen/cook/oggtracks.c.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/oggkitchen/cook/container/ogg"
	"github.com/oggkitchen/cook/internal/pipeio"
)

func main() {
	outTrackNum := flag.Bool("n", false, "print stream serial numbers instead of codec kind")
	flag.Parse()

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	if err := run(os.Stdin, w, *outTrackNum); err != nil {
		fmt.Fprintln(os.Stderr, "oggtracks:", err)
		os.Exit(1)
	}
}

func run(src io.Reader, dst io.Writer, outTrackNum bool) error {
	reader := pipeio.NewPageReader(src)
	seen := make(map[uint32]bool)

	for {
		page, err := reader.ReadPage()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if seen[page.SerialNumber] {
			continue
		}

		skip := 0
		if wrapper, ok := ogg.ParseVADWrapper(page.Payload); ok {
			skip = wrapper.SkipBytes
		}
		if len(page.Payload) < skip+5 {
			continue
		}

		kind := ogg.CodecKind(page.Payload[skip:])
		if kind == "" {
			continue
		}
		seen[page.SerialNumber] = true

		if outTrackNum {
			fmt.Fprintf(dst, "%d\n", page.SerialNumber)
		} else {
			fmt.Fprintln(dst, kind)
		}
	}
}
