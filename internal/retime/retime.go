// Package retime computes corrected granule positions for a plan.Result's
// packets: a two-pass, block-based algorithm that trims leading silence,
// drops packets whose input position has fallen behind the output
// timeline, and inserts gap markers where the data runs ahead of the
// output timeline, then rescales for a 44.1kHz FLAC capture.
//
// Grounded on apps/kitchen/cook/oggcorrect.c's "Adjust timestamps for the
// blocks" and "If we're FLAC 44100kHz" passes.
package retime

import "github.com/oggkitchen/cook/internal/plan"

// Apply assigns OutputGranulePos, PreSkip, and FlagDrop on every packet in
// packets, then rescales for a 44.1kHz FLAC stream if flacRate == 44100.
// packets must already have block boundaries marked (plan.MarkBlocks).
func Apply(packets []*plan.Packet, flacRate uint32) {
	if len(packets) == 0 {
		return
	}

	var granulePos float64
	applyPreSkip(packets[0], &granulePos)

	for i := 0; i < len(packets); {
		begin := i
		end := i
		frameCount := 0
		found := false
		for end < len(packets) {
			if packets[end].Flags&plan.FlagEnd != 0 {
				found = true
				break
			}
			frameCount += packets[end].FrameCount
			end++
		}
		if !found {
			break
		}

		expected := granulePos + float64(frameCount)*plan.PacketTime
		actual := float64(packets[end].InputGranulePos) + float64(packets[end].Duration())

		if actual < expected && packets[begin].Flags&plan.FlagSilent != 0 {
			begin = trimLeadingSilence(packets, begin, end, actual, &expected, &granulePos)
		}

		for mid := begin; mid <= end; mid++ {
			p := packets[mid]
			switch {
			case granulePos+plan.PacketTime*25 < float64(p.InputGranulePos):
				// Too little data: insert a gap before this packet.
				diff := float64(p.InputGranulePos) - granulePos
				p.PreSkip = int(diff / plan.PacketTime)
				granulePos += float64(p.PreSkip) * plan.PacketTime
				p.OutputGranulePos = uint64(granulePos)
				granulePos += float64(p.Duration())

			case granulePos > float64(p.InputGranulePos)+float64(p.FrameSize)*25:
				// Too much data: drop this packet.
				p.Flags |= plan.FlagDrop

			default:
				p.OutputGranulePos = uint64(granulePos)
				granulePos += float64(p.Duration())
			}
		}

		// Size the gap before the next block's first packet on this
		// block's own running granulePos, matching oggcorrect.c's
		// preSkip(mid, &granulePos) call with mid left at end->next by
		// the write-out loop.
		if end+1 < len(packets) {
			applyPreSkip(packets[end+1], &granulePos)
		}
		i = end + 1
	}

	if flacRate == 44100 {
		for _, p := range packets {
			p.OutputGranulePos = p.OutputGranulePos * 147 / 160
		}
	}
}

// applyPreSkip inserts a gap before packet if its input granule position
// runs ahead of the running output timeline.
func applyPreSkip(packet *plan.Packet, granulePos *float64) {
	if packet == nil {
		return
	}
	if float64(packet.InputGranulePos) > *granulePos {
		packet.PreSkip = int((float64(packet.InputGranulePos) - *granulePos) / plan.PacketTime)
		*granulePos += float64(packet.PreSkip) * plan.PacketTime
	}
}

// trimLeadingSilence removes leading silence from a block whose actual
// recorded duration (fixed, anchored on the block's end packet) is shorter
// than the timeline expects, either by shrinking a packet's own pre-skip
// gap or, once that is exhausted, by dropping the packet outright. It
// returns the new block start index.
func trimLeadingSilence(packets []*plan.Packet, begin, end int, actual float64, expected, granulePos *float64) int {
	for actual < *expected {
		p := packets[begin]
		if p.PreSkip > 0 {
			p.PreSkip--
			*expected -= float64(p.FrameSize)
			if *granulePos > float64(p.FrameSize) {
				*granulePos -= float64(p.FrameSize)
			} else {
				*granulePos = 0
			}
			continue
		}
		if begin != end {
			p.Flags |= plan.FlagDrop
			*expected -= float64(p.Duration())
			begin++
			continue
		}
		break
	}
	return begin
}
