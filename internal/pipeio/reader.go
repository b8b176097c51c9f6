// Package pipeio provides the buffered, blocking I/O primitives the
// correction filters run on top of: a page-at-a-time reader that tracks no
// particular logical stream, since a capture interleaves many streams on a
// single transport and internal/plan.Builder is what follows just one of
// them, and a writer that retries on EAGAIN instead of busy-looping,
// mirroring oggcorrect.c's readAll/writeAll and its select()-based write
// retry.
package pipeio

import (
	"io"

	"github.com/oggkitchen/cook/container/ogg"
)

const initialBufferSize = 64 * 1024

// PageReader reads raw Ogg pages from an underlying io.Reader regardless of
// which logical stream each page belongs to. The correction filters need
// this because a capture interleaves many streams (one per speaker plus an
// optional meta/VAD control stream) on a single transport.
type PageReader struct {
	r      io.Reader
	buf    []byte
	offset int
	length int
}

// NewPageReader wraps r for page-at-a-time reading.
func NewPageReader(r io.Reader) *PageReader {
	return &PageReader{r: r, buf: make([]byte, initialBufferSize)}
}

// ReadPage returns the next page on the stream, or io.EOF once exhausted.
func (pr *PageReader) ReadPage() (*ogg.Page, error) {
	for {
		if pr.length > pr.offset {
			page, consumed, err := ogg.ParsePage(pr.buf[pr.offset:pr.length])
			if err == nil {
				pr.offset += consumed
				return page, nil
			}
			// Not enough data buffered yet for a full page; read more.
		}

		if pr.offset > 0 {
			remaining := pr.length - pr.offset
			copy(pr.buf, pr.buf[pr.offset:pr.length])
			pr.length = remaining
			pr.offset = 0
		}

		if pr.length >= len(pr.buf) {
			grown := make([]byte, len(pr.buf)*2)
			copy(grown, pr.buf[:pr.length])
			pr.buf = grown
		}

		n, err := pr.r.Read(pr.buf[pr.length:])
		if n > 0 {
			pr.length += n
		}
		if err != nil {
			if err == io.EOF && pr.length > pr.offset {
				page, consumed, parseErr := ogg.ParsePage(pr.buf[pr.offset:pr.length])
				if parseErr == nil {
					pr.offset += consumed
					return page, nil
				}
			}
			return nil, err
		}
	}
}
