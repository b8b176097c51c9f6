// Package plan builds the in-memory re-timing plan for one kept logical
// stream out of an interleaved multi-track capture: it scans the header
// region to recover the codec header and any ECVADD/FLAC-rate sidebands,
// then buffers the stream's data packets (classified, but not yet
// re-timed) into a single owned slice annotated with contiguous block
// boundaries. internal/retime consumes this plan to compute corrected
// granule positions; internal/emit writes it out.
//
// Grounded on apps/kitchen/cook/oggcorrect.c's header-scan and
// metadata-collection passes, adapted from a single read of an
// unseekable stdin stream into a single buffered forward scan that also
// retains the packet bytes, so nothing needs to be read from the source
// twice.
package plan

import (
	"bytes"
	"io"

	"github.com/oggkitchen/cook"
	"github.com/oggkitchen/cook/container/ogg"
	"github.com/oggkitchen/cook/internal/meta"
)

// Flag marks a packet's role in the re-timing plan.
type Flag uint8

const (
	FlagBegin Flag = 1 << iota
	FlagEnd
	FlagSilent
	FlagDrop
)

// PacketTime is the nominal duration, in samples at 48kHz, of one 20ms
// frame. It is used as a fixed timeline unit for gap detection and
// pre-skip insertion, distinct from a packet's own declared FrameSize.
const PacketTime = 960

// Packet is one data packet from the kept stream, annotated for re-timing.
type Packet struct {
	Flags            Flag
	FrameCount       int    // Number of frames encoded in this packet.
	FrameSize        int    // Samples at 48kHz per frame, from the TOC/FLAC profile.
	PreSkip          int    // Frames of gap to synthesize before this packet.
	InputGranulePos  uint64
	OutputGranulePos uint64
	Data             []byte // Packet payload, any ECVADD byte already stripped.
}

// Duration returns the packet's total samples at 48kHz (FrameCount*FrameSize).
func (p *Packet) Duration() int { return p.FrameCount * p.FrameSize }

// HeaderPage is a header-region page from the kept stream, ready to be
// re-emitted with a fresh sequence number.
type HeaderPage struct {
	Type byte // Original header-type flags (BOS, etc.)
	Data []byte
}

// Result is the complete plan for one kept stream.
type Result struct {
	HeaderPages []HeaderPage
	Packets     []*Packet
	FlacRate    uint32 // Sample rate if the stream is FLAC, else 0.
	VADLevel    uint8  // ECVADD threshold, 0 if the stream carries none.
	Found       bool   // False if the kept stream never appeared at all.
}

// PageSource yields raw Ogg pages regardless of logical stream, e.g.
// internal/pipeio.PageReader.
type PageSource interface {
	ReadPage() (*ogg.Page, error)
}

// Builder collects one stream's plan out of an interleaved capture.
type Builder struct {
	KeepStreamNo uint32
}

// Build scans src once, front to back, producing the stream's plan with
// block boundaries already marked (see MarkBlocks) but granule positions
// not yet corrected.
func (b *Builder) Build(src PageSource) (*Result, error) {
	res := &Result{}
	var mt meta.Tracker
	var baseline uint64

	// Header region: pages with GranulePos == 0 belong to the header.
	var firstDataPage *ogg.Page
	for {
		page, err := src.ReadPage()
		if err != nil {
			if err == io.EOF {
				return res, nil
			}
			return nil, err
		}

		if page.GranulePos != 0 {
			baseline = page.GranulePos
			firstDataPage = page
			break
		}

		if !mt.HasStream() && len(page.Payload) >= 8 && bytes.HasPrefix(page.Payload, []byte(ogg.MetaStreamMagic)) {
			mt.SetStream(page.SerialNumber)
		}

		if page.SerialNumber != b.KeepStreamNo {
			continue
		}

		skip := 0
		if w, ok := ogg.ParseVADWrapper(page.Payload); ok {
			skip = w.SkipBytes
			res.VADLevel = w.Threshold
		}

		if len(page.Payload) < skip+5 {
			continue
		}
		body := page.Payload[skip:]
		if !ogg.RecognizedCodecHeader(body) {
			continue
		}

		if info, err := ogg.ParseFLACStreamInfo(body); err == nil {
			res.FlacRate = info.SampleRate
		}

		res.HeaderPages = append(res.HeaderPages, HeaderPage{Type: page.HeaderType, Data: body})
	}

	// Data region: buffer this stream's packets until EOF or the header
	// region reappears (a trailing notes/ACL page at the end of a capture).
	page := firstDataPage
	for {
		if page == nil {
			var err error
			page, err = src.ReadPage()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
		}

		if page.GranulePos == 0 && len(page.Payload) > 1 {
			break
		}

		if mt.HasStream() && page.SerialNumber == mt.StreamNo() {
			mt.Observe(page.GranulePos, page.Payload)
		}

		if page.SerialNumber != b.KeepStreamNo || len(page.Payload) <= 1 {
			page = nil
			continue
		}

		offset := baseline + mt.Offset()
		var inputGranule uint64
		if page.GranulePos > offset {
			inputGranule = page.GranulePos - offset
		}

		c, err := cook.ClassifyPacket(page.Payload, res.VADLevel, res.FlacRate != 0)
		if err != nil {
			return nil, err
		}

		data := page.Payload
		if res.VADLevel > 0 {
			data = data[1:]
		}

		pk := &Packet{
			FrameCount:      c.FrameCount,
			FrameSize:       c.FrameSize,
			InputGranulePos: inputGranule,
			Data:            data,
		}
		if c.Silent {
			pk.Flags |= FlagSilent
		}
		res.Packets = append(res.Packets, pk)

		page = nil
	}

	res.Found = len(res.HeaderPages) > 0 || len(res.Packets) > 0
	MarkBlocks(res.Packets)
	return res, nil
}

// gapBlockThreshold is the timestamp discontinuity, in samples at 48kHz,
// that ends a block even without an explicit silence classification.
const gapBlockThreshold = PacketTime * 25

// MarkBlocks partitions packets into contiguous BEGIN/END ranges. A run of
// non-silent packets with no large timestamp gap forms one block; an
// immediately following run of silent packets forms the next. Re-timing
// treats each block independently.
func MarkBlocks(packets []*Packet) {
	n := len(packets)
	for i := 0; i < n; {
		packets[i].Flags |= FlagBegin
		j := i
		for j+1 < n {
			next := packets[j+1]
			if next.Flags&FlagSilent != 0 {
				break
			}
			if next.InputGranulePos > packets[j].InputGranulePos+gapBlockThreshold {
				break
			}
			j++
		}
		packets[j].Flags |= FlagEnd
		i = j + 1

		if i < n && packets[i].Flags&FlagSilent != 0 {
			packets[i].Flags |= FlagBegin
			j = i
			for j+1 < n && packets[j+1].Flags&FlagSilent != 0 {
				j++
			}
			packets[j].Flags |= FlagEnd
			i = j + 1
		}
	}
}
