// Package emit writes a re-timed plan.Result back out as a single-stream
// Ogg file: header pages first, then data pages with gap packets inserted
// wherever a re-timed packet's PreSkip calls for one, renumbering every
// page's sequence number from scratch.
//
// Grounded on apps/kitchen/cook/oggcorrect.c's final two passes ("Now read
// and pass thru the header" and "And finally, pass thru the data with
// corrected timestamps"), using container/ogg.Page for page encoding.
package emit

import (
	"github.com/oggkitchen/cook/container/ogg"
	"github.com/oggkitchen/cook/internal/plan"
)

// zeroPacket is a minimal Opus silence packet (TOC 0xF8: CELT FB 20ms, 1 frame).
var zeroPacket = []byte{0xF8, 0xFF, 0xFE}

// zeroPacketFLAC48k and zeroPacketFLAC44k are minimal FLAC frames encoding
// one frame of silence at 48kHz and 44.1kHz respectively.
var (
	zeroPacketFLAC48k = []byte{0xFF, 0xF8, 0x7A, 0x0C, 0x00, 0x03,
		0xBF, 0x94, 0x00, 0x00, 0x00, 0x00, 0xB1, 0xCA}
	zeroPacketFLAC44k = []byte{0xFF, 0xF8, 0x79, 0x0C, 0x00, 0x03,
		0x71, 0x56, 0x00, 0x00, 0x00, 0x00, 0x63, 0xC5}
)

// PageWriter is the destination a Writer serializes pages to, e.g.
// internal/pipeio.PageWriter.
type PageWriter interface {
	Write(data []byte) (int, error)
}

// Writer emits one logical stream's corrected plan as Ogg pages.
type Writer struct {
	dst        PageWriter
	streamNo   uint32
	sequenceNo uint32
	gapPacket  []byte
	gapTime    uint64 // Nominal gap packet duration, already FLAC-rescaled.
	flacRate   uint32
}

// NewWriter prepares a Writer for the given output stream serial number.
// flacRate is 0 for Opus, or the FLAC sample rate (44100 or 48000).
func NewWriter(dst PageWriter, streamNo uint32, flacRate uint32) *Writer {
	w := &Writer{
		dst:      dst,
		streamNo: streamNo,
		flacRate: flacRate,
		gapTime:  plan.PacketTime,
	}
	switch flacRate {
	case 0:
		w.gapPacket = zeroPacket
	case 44100:
		w.gapPacket = zeroPacketFLAC44k
		w.gapTime = plan.PacketTime * 147 / 160
	default:
		w.gapPacket = zeroPacketFLAC48k
	}
	return w
}

// WriteHeaders re-sequences and writes the plan's header pages. The first
// page is flagged BOS; all header pages carry GranulePos 0.
func (w *Writer) WriteHeaders(pages []plan.HeaderPage) error {
	for i, hp := range pages {
		flags := hp.Type
		if i == 0 {
			flags |= ogg.PageFlagBOS
		}
		if err := w.writePage(flags, 0, hp.Data); err != nil {
			return err
		}
	}
	return nil
}

// WriteData writes the plan's re-timed data packets, synthesizing gap
// pages before any packet carrying a nonzero PreSkip and silently
// discarding packets flagged plan.FlagDrop.
func (w *Writer) WriteData(packets []*plan.Packet) error {
	for _, p := range packets {
		if p.PreSkip > 0 {
			if err := w.writeGaps(p); err != nil {
				return err
			}
		}
		if p.Flags&plan.FlagDrop != 0 {
			continue
		}
		if err := w.writePage(0, p.OutputGranulePos, p.Data); err != nil {
			return err
		}
	}
	return nil
}

// writeGaps inserts p.PreSkip zero packets immediately before p, with
// granule positions counting backward from p.OutputGranulePos so the last
// gap page ends exactly where p's own timeline begins.
func (w *Writer) writeGaps(p *plan.Packet) error {
	granule := p.OutputGranulePos - w.gapTime*uint64(p.PreSkip)
	for i := 0; i < p.PreSkip; i++ {
		if err := w.writePage(0, granule, w.gapPacket); err != nil {
			return err
		}
		granule += w.gapTime
	}
	return nil
}

// Finish emits a single synthetic silence packet if two or fewer pages
// (header or data) have been written so far, so downstream tools never see
// an empty or header-only track.
func (w *Writer) Finish() error {
	if w.sequenceNo > 2 {
		return nil
	}
	return w.writePage(0, 0, w.gapPacket)
}

func (w *Writer) writePage(flags byte, granulePos uint64, payload []byte) error {
	page := &ogg.Page{
		HeaderType:   flags,
		GranulePos:   granulePos,
		SerialNumber: w.streamNo,
		PageSequence: w.sequenceNo,
		Segments:     ogg.BuildSegmentTable(len(payload)),
		Payload:      payload,
	}
	w.sequenceNo++
	_, err := w.dst.Write(page.Encode())
	return err
}
