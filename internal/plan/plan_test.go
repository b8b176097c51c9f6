package plan

import "testing"

func newPacket(inputGranule uint64, silent bool) *Packet {
	p := &Packet{InputGranulePos: inputGranule, FrameCount: 1, FrameSize: PacketTime}
	if silent {
		p.Flags |= FlagSilent
	}
	return p
}

func TestMarkBlocks_SingleContinuousBlock(t *testing.T) {
	packets := []*Packet{
		newPacket(0, false),
		newPacket(960, false),
		newPacket(1920, false),
	}
	MarkBlocks(packets)

	if packets[0].Flags&FlagBegin == 0 {
		t.Error("expected first packet to start a block")
	}
	if packets[1].Flags&(FlagBegin|FlagEnd) != 0 {
		t.Error("expected middle packet to have no block boundary flags")
	}
	if packets[2].Flags&FlagEnd == 0 {
		t.Error("expected last packet to end the block")
	}
}

func TestMarkBlocks_GapSplitsBlock(t *testing.T) {
	packets := []*Packet{
		newPacket(0, false),
		newPacket(1000000, false), // far beyond gapBlockThreshold
	}
	MarkBlocks(packets)

	if packets[0].Flags&FlagEnd == 0 {
		t.Error("expected first packet to end its block at the gap")
	}
	if packets[1].Flags&FlagBegin == 0 {
		t.Error("expected second packet to start a new block after the gap")
	}
}

func TestMarkBlocks_SilenceStartsNewBlock(t *testing.T) {
	packets := []*Packet{
		newPacket(0, false),
		newPacket(960, false),
		newPacket(1920, true),
		newPacket(2880, true),
		newPacket(3840, false),
	}
	MarkBlocks(packets)

	if packets[1].Flags&FlagEnd == 0 {
		t.Error("expected non-silent run to end before the silent run")
	}
	if packets[2].Flags&FlagBegin == 0 {
		t.Error("expected silent run to start a new block")
	}
	if packets[3].Flags&FlagEnd == 0 {
		t.Error("expected silent run to end before the next non-silent run")
	}
	if packets[4].Flags&FlagBegin == 0 {
		t.Error("expected non-silent packet after silence to start a new block")
	}
}

func TestMarkBlocks_Empty(t *testing.T) {
	MarkBlocks(nil) // must not panic
}

func TestMarkBlocks_SinglePacket(t *testing.T) {
	packets := []*Packet{newPacket(0, false)}
	MarkBlocks(packets)
	if packets[0].Flags&FlagBegin == 0 || packets[0].Flags&FlagEnd == 0 {
		t.Error("expected single packet to be both begin and end")
	}
}
