package retime

import (
	"testing"

	"github.com/oggkitchen/cook/internal/plan"
)

func newPacket(inputGranule uint64, frameSize int, silent bool) *plan.Packet {
	p := &plan.Packet{InputGranulePos: inputGranule, FrameCount: 1, FrameSize: frameSize}
	if silent {
		p.Flags |= plan.FlagSilent
	}
	return p
}

func TestApply_SingleContinuousBlock(t *testing.T) {
	packets := []*plan.Packet{
		newPacket(0, 960, false),
		newPacket(960, 960, false),
		newPacket(1920, 960, false),
	}
	plan.MarkBlocks(packets)
	Apply(packets, 0)

	want := []uint64{0, 960, 1920}
	for i, p := range packets {
		if p.OutputGranulePos != want[i] {
			t.Errorf("packet %d OutputGranulePos = %d, want %d", i, p.OutputGranulePos, want[i])
		}
		if p.Flags&plan.FlagDrop != 0 {
			t.Errorf("packet %d unexpectedly dropped", i)
		}
	}
}

func TestApply_LeadingSilenceTrimmedByPreSkip(t *testing.T) {
	// A leading silent packet that already carries a pre-skip gap should
	// have that gap shrunk rather than being dropped outright, when the
	// block's actual recorded duration falls short of the nominal timeline.
	lead := newPacket(0, 960, true)
	lead.PreSkip = 2
	packets := []*plan.Packet{
		lead,
		newPacket(0, 960, false),
		newPacket(0, 960, false),
	}
	plan.MarkBlocks(packets)
	Apply(packets, 0)

	if lead.PreSkip >= 2 {
		t.Errorf("expected leading pre-skip to shrink, got %d", lead.PreSkip)
	}
}

func TestApply_LeadingSilenceDroppedOncePreSkipExhausted(t *testing.T) {
	// A single leading silent packet (with no pre-skip budget of its own)
	// followed by non-silent packets packed closer together than the
	// timeline expects: once trimming finds no pre-skip to shrink, it
	// drops the leading packet outright rather than the block's end.
	packets := []*plan.Packet{
		newPacket(0, 960, true),
		newPacket(0, 960, false),
		newPacket(0, 960, false),
	}
	plan.MarkBlocks(packets)
	Apply(packets, 0)

	if packets[0].Flags&plan.FlagDrop == 0 {
		t.Error("expected leading silent packet to be dropped")
	}
}

func TestApply_GapInsertedWhenInputRunsAhead(t *testing.T) {
	packets := []*plan.Packet{
		newPacket(0, 960, false),
		newPacket(1_000_000, 960, false), // far beyond PacketTime*25
	}
	plan.MarkBlocks(packets)
	Apply(packets, 0)

	if packets[1].PreSkip == 0 {
		t.Error("expected a pre-skip gap before the second packet")
	}
	if packets[1].OutputGranulePos <= packets[0].OutputGranulePos {
		t.Error("expected output granule position to advance past the gap")
	}
}

func TestApply_PacketDroppedWhenInputRunsBehind(t *testing.T) {
	// Forty packets packed much closer together than the timeline's
	// per-frame duration: the granule position should eventually run ahead
	// of a packet's input position by more than FrameSize*25, dropping it.
	packets := make([]*plan.Packet, 0, 40)
	for i := 0; i < 40; i++ {
		packets = append(packets, newPacket(uint64(i), 960, false))
	}
	plan.MarkBlocks(packets)
	Apply(packets, 0)

	dropped := false
	for _, p := range packets {
		if p.Flags&plan.FlagDrop != 0 {
			dropped = true
			break
		}
	}
	if !dropped {
		t.Error("expected at least one packet to be dropped")
	}
}

func TestApply_FLACRescale(t *testing.T) {
	packets := []*plan.Packet{
		newPacket(0, 960, false),
		newPacket(960, 960, false),
	}
	plan.MarkBlocks(packets)
	Apply(packets, 44100)

	if packets[1].OutputGranulePos != 960*147/160 {
		t.Errorf("OutputGranulePos = %d, want %d", packets[1].OutputGranulePos, uint64(960*147/160))
	}
}

func TestApply_Empty(t *testing.T) {
	Apply(nil, 0) // must not panic
}

func TestApply_MultipleBlocks(t *testing.T) {
	packets := []*plan.Packet{
		newPacket(0, 960, false),
		newPacket(960, 960, false),
		newPacket(1920, 960, true),
		newPacket(2880, 960, true),
		newPacket(3840, 960, false),
		newPacket(4800, 960, false),
	}
	plan.MarkBlocks(packets)
	Apply(packets, 0)

	for i, p := range packets {
		if p.Flags&plan.FlagDrop != 0 {
			t.Errorf("packet %d unexpectedly dropped in clean multi-block sequence", i)
		}
	}
	if packets[5].OutputGranulePos != 4800 {
		t.Errorf("last packet OutputGranulePos = %d, want 4800", packets[5].OutputGranulePos)
	}
}
