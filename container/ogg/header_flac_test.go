package ogg

import (
	"encoding/binary"
	"testing"
)

// buildStreamInfoPacket builds a minimal Ogg FLAC header packet carrying a
// STREAMINFO block with the given sample rate, matching the byte layout
// ParseFLACStreamInfo expects (0x7F "FLAC" marker at offset 0, rate bits at
// byte offsets 27-29).
func buildStreamInfoPacket(sampleRate uint32) []byte {
	data := make([]byte, 34)
	copy(data[0:5], flacMagic)
	// Bytes 5-26 (mapping version and header count, native "fLaC" marker,
	// metadata block header, leading STREAMINFO fields) are not inspected
	// by ParseFLACStreamInfo; only bytes 27-29 matter.
	rate24 := sampleRate << 4 // leave low 4 bits for bits-per-sample high bits
	data[27] = byte(rate24 >> 16)
	data[28] = byte(rate24 >> 8)
	data[29] = byte(rate24)
	return data
}

func TestParseFLACStreamInfo(t *testing.T) {
	cases := []struct {
		name string
		rate uint32
	}{
		{"48k", 48000},
		{"44_1k", 44100},
		{"16k", 16000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			packet := buildStreamInfoPacket(tc.rate)
			info, err := ParseFLACStreamInfo(packet)
			if err != nil {
				t.Fatalf("ParseFLACStreamInfo failed: %v", err)
			}
			if info.SampleRate != tc.rate {
				t.Errorf("SampleRate = %d, want %d", info.SampleRate, tc.rate)
			}
		})
	}
}

func TestParseFLACStreamInfo_Invalid(t *testing.T) {
	t.Run("too short", func(t *testing.T) {
		if _, err := ParseFLACStreamInfo([]byte{0x7f, 'F', 'L'}); err != ErrInvalidHeader {
			t.Errorf("err = %v, want ErrInvalidHeader", err)
		}
	})

	t.Run("bad magic", func(t *testing.T) {
		packet := buildStreamInfoPacket(48000)
		packet[0] = 0x00
		if _, err := ParseFLACStreamInfo(packet); err != ErrInvalidHeader {
			t.Errorf("err = %v, want ErrInvalidHeader", err)
		}
	})
}

func TestParseVADWrapper(t *testing.T) {
	// "ECVADD" + u16 wrapper len (2) + 2 bytes filler + threshold byte.
	data := make([]byte, 12)
	copy(data[0:6], VADPrefixMagic)
	binary.LittleEndian.PutUint16(data[6:8], 2)
	data[10] = 42 // threshold lives at absolute offset 10

	w, ok := ParseVADWrapper(data)
	if !ok {
		t.Fatal("expected wrapper to be recognized")
	}
	if w.SkipBytes != 10 {
		t.Errorf("SkipBytes = %d, want 10", w.SkipBytes)
	}
	if w.Threshold != 42 {
		t.Errorf("Threshold = %d, want 42", w.Threshold)
	}
}

func TestParseVADWrapper_Absent(t *testing.T) {
	if _, ok := ParseVADWrapper([]byte("Opus....")); ok {
		t.Error("expected no wrapper detected")
	}
}

func TestRecognizedCodecHeader(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want bool
	}{
		{"opus", []byte("OpusHead...."), true},
		{"flac", []byte("\x7fFLAC...."), true},
		{"raw pcm", []byte("\x04\x00\x00\x41"), true},
		{"unknown", []byte("Junk"), false},
		{"too short", []byte("Op"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RecognizedCodecHeader(tc.data); got != tc.want {
				t.Errorf("RecognizedCodecHeader(%q) = %v, want %v", tc.data, got, tc.want)
			}
		})
	}
}
