// oggmux merges several already-corrected single-stream Ogg files (as
// produced by oggcorrect) back into one interleaved Ogg stream, written to
// stdout. Pages are interleaved in increasing granule-position order
// across all inputs rather than a fixed round-robin, so tracks that fall
// silent for a while don't starve tracks that keep talking.
//
// Usage:
//
//	oggmux <in1.ogg> [in2.ogg ...] > out.ogg
//
// Grounded on cook/oggmultiplexer.c.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/oggkitchen/cook/container/ogg"
	"github.com/oggkitchen/cook/internal/pipeio"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Use: oggmux <in1.ogg> [in2.ogg ...]")
		os.Exit(1)
	}

	files := make([]*os.File, len(os.Args)-1)
	for i, name := range os.Args[1:] {
		f, err := os.Open(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, "oggmux:", err)
			os.Exit(1)
		}
		defer f.Close()
		files[i] = f
	}

	readers := make([]io.Reader, len(files))
	for i, f := range files {
		readers[i] = f
	}

	dst := bufio.NewWriter(os.Stdout)
	defer dst.Flush()

	if err := run(readers, dst); err != nil {
		fmt.Fprintln(os.Stderr, "oggmux:", err)
		os.Exit(1)
	}
}

// run interleaves pages from srcs onto dst in granule-position order,
// dropping a source as soon as it returns EOF or a malformed page.
func run(srcs []io.Reader, dst io.Writer) error {
	readers := make([]*pipeio.PageReader, len(srcs))
	pending := make([]*ogg.Page, len(srcs))
	for i, src := range srcs {
		readers[i] = pipeio.NewPageReader(src)
		pending[i] = fetch(readers[i])
	}

	for {
		lowest := -1
		for i, p := range pending {
			if p == nil {
				continue
			}
			if lowest == -1 || p.GranulePos < pending[lowest].GranulePos {
				lowest = i
			}
		}
		if lowest == -1 {
			return nil
		}

		if _, err := dst.Write(pending[lowest].Encode()); err != nil {
			return err
		}
		pending[lowest] = fetch(readers[lowest])
	}
}

// fetch returns the next page from r, or nil once the source is exhausted
// or yields a malformed page (treated the same as end of input, matching
// oggmultiplexer.c's alive/used bookkeeping).
func fetch(r *pipeio.PageReader) *ogg.Page {
	page, err := r.ReadPage()
	if err != nil {
		return nil
	}
	return page
}
