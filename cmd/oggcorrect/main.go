// oggcorrect is the core stream-correction filter: it reads an interleaved
// multi-track Ogg capture from stdin, keeps only the logical stream with
// the given serial number, re-times it against the other streams' timeline
// and any ECMETA pause/resume markers, and writes the corrected
// single-stream Ogg file to stdout.
//
// Usage:
//
//	oggcorrect <stream_no>
//
// Grounded on apps/kitchen/cook/oggcorrect.c's main().
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/oggkitchen/cook/container/ogg"
	"github.com/oggkitchen/cook/internal/emit"
	"github.com/oggkitchen/cook/internal/pipeio"
	"github.com/oggkitchen/cook/internal/plan"
	"github.com/oggkitchen/cook/internal/retime"
)

func main() {
	flag.Usage = func() {
		os.Stderr.WriteString("Usage: oggcorrect <stream_no>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if flag.NArg() != 1 {
		log.Error().Msg("expected exactly one argument: stream_no")
		os.Exit(1)
	}
	streamNo, err := strconv.ParseUint(flag.Arg(0), 10, 32)
	if err != nil {
		log.Error().Err(err).Str("arg", flag.Arg(0)).Msg("stream_no must be a non-negative integer")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log, uint32(streamNo), os.Stdin, os.Stdout); err != nil {
		log.Error().Err(err).Msg("correct failed")
		os.Exit(1)
	}
}

// run wires the Plan Builder, Re-timer, and Emitter into a single pass over
// src, writing the corrected stream to dst. ctx is checked once per page
// boundary; no operation suspends mid-page.
func run(ctx context.Context, log zerolog.Logger, streamNo uint32, src io.Reader, dst io.Writer) error {
	reader := pipeio.NewPageReader(src)
	writer := pipeio.NewPageWriter(dst)

	builder := &plan.Builder{KeepStreamNo: streamNo}
	res, err := builder.Build(&cancelableSource{ctx: ctx, src: reader})
	if err != nil {
		log.Error().Err(err).Msg("malformed page while building plan")
		return err
	}
	if !res.Found {
		log.Warn().Uint32("stream_no", streamNo).Msg("stream never appeared in the capture")
	}

	retime.Apply(res.Packets, res.FlacRate)

	w := emit.NewWriter(writer, streamNo, res.FlacRate)
	if err := w.WriteHeaders(res.HeaderPages); err != nil {
		log.Error().Err(err).Msg("write error while emitting headers")
		return err
	}
	if err := w.WriteData(res.Packets); err != nil {
		log.Error().Err(err).Msg("write error while emitting data")
		return err
	}
	if err := w.Finish(); err != nil {
		log.Error().Err(err).Msg("write error while finishing stream")
		return err
	}

	log.Info().
		Uint32("stream_no", streamNo).
		Int("packets", len(res.Packets)).
		Uint32("flac_rate", res.FlacRate).
		Msg("correct complete")
	return nil
}

// cancelableSource wraps a plan.PageSource so Build's page loop observes
// context cancellation at a page boundary instead of running to EOF.
type cancelableSource struct {
	ctx context.Context
	src *pipeio.PageReader
}

func (c *cancelableSource) ReadPage() (*ogg.Page, error) {
	if err := c.ctx.Err(); err != nil {
		return nil, err
	}
	return c.src.ReadPage()
}
