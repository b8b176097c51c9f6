package ogg

import (
	"encoding/binary"
)

// FLAC header constants.
const (
	// flacMagic is the "fLaC"-with-high-bit-set marker used inside an Ogg
	// FLAC mapping's first packet (RFC draft "Ogg FLAC", byte 0x7F then
	// "FLAC").
	flacMagic = "\x7fFLAC"

	// flacStreamInfoMinSize is the minimum packet size that reaches the
	// STREAMINFO sample-rate bytes at offsets 27-29 (9-byte Ogg FLAC mapping
	// header, 4-byte "fLaC" native marker, 4-byte metadata block header, then
	// the first 10 STREAMINFO bytes before the sample rate). The rest of the
	// 34-byte STREAMINFO body is not required.
	flacStreamInfoMinSize = 30
)

// StreamInfo holds the fields of a FLAC STREAMINFO block this system cares
// about: the sample rate, used to decide whether 147/160 granule rescaling
// applies (spec: flac_rate == 44100).
type StreamInfo struct {
	SampleRate uint32
}

// ParseFLACStreamInfo extracts the sample rate from an Ogg FLAC header
// packet. data must begin with the 0x7F "FLAC" mapping marker (RFC
// "Ogg Mapping for FLAC", section 4). Per that mapping the 20-bit sample
// rate lives at a fixed byte offset inside the embedded STREAMINFO block:
// (buf[27]<<12) | (buf[28]<<4) | (buf[29]>>4).
func ParseFLACStreamInfo(data []byte) (*StreamInfo, error) {
	if len(data) < flacStreamInfoMinSize {
		return nil, ErrInvalidHeader
	}
	if string(data[0:5]) != flacMagic {
		return nil, ErrInvalidHeader
	}

	rate := (uint32(data[27]) << 12) | (uint32(data[28]) << 4) | (uint32(data[29]) >> 4)
	return &StreamInfo{SampleRate: rate}, nil
}

// Sideband wrapper markers emitted by the upstream recorder.
const (
	// VADPrefixMagic marks a codec header wrapped with a recorder-injected
	// voice-activity-detection extension. Layout: "ECVADD" (6 bytes),
	// little-endian uint16 wrapper length N (2 bytes), then N bytes of
	// wrapper payload (byte 2 of which, i.e. absolute offset 10, is the VAD
	// threshold) before the real codec header begins.
	VADPrefixMagic = "ECVADD"

	// MetaStreamMagic marks a logical stream carrying JSON pause/resume
	// control messages instead of audio.
	MetaStreamMagic = "ECMETA"

	// NoteStreamMagic marks a logical stream carrying free-text notes,
	// extracted by cmd/oggnotes. CodecKind does not report it as an audio
	// header.
	NoteStreamMagic = "STREAMNOTE"
)

// opusIDMagic and rawPCMMagic recognize the two header kinds the recorder
// emits besides FLAC: plain "Opus" (the 4-byte prefix shared by both
// OpusHead forms) and the raw-PCM marker "\x04\x00\x00\x41" used by a
// legacy capture mode.
const (
	opusIDMagic = "Opus"
	rawPCMMagic = "\x04\x00\x00\x41"
)

// VADWrapper describes a parsed ECVADD extension.
type VADWrapper struct {
	// SkipBytes is the number of bytes to strip from the front of the
	// packet to reach the real codec header / payload.
	SkipBytes int
	// Threshold is the per-packet VAD byte comparison threshold; 0 means
	// no VAD prefix is present on data pages of this stream.
	Threshold uint8
}

// ParseVADWrapper detects and parses an "ECVADD" extension prefix on a
// header packet. Returns ok=false if the packet does not start with the
// marker.
func ParseVADWrapper(data []byte) (wrapper VADWrapper, ok bool) {
	if len(data) <= 8 || string(data[0:6]) != VADPrefixMagic {
		return VADWrapper{}, false
	}
	wrapperLen := binary.LittleEndian.Uint16(data[6:8])
	wrapper.SkipBytes = 8 + int(wrapperLen)
	if len(data) > 10 {
		wrapper.Threshold = data[10]
	}
	return wrapper, true
}

// RecognizedCodecHeader reports whether data (after stripping any VAD
// wrapper) begins with one of the three header magics the recorder emits:
// Opus, Ogg FLAC, or the legacy raw-PCM marker.
func RecognizedCodecHeader(data []byte) bool {
	return CodecKind(data) != ""
}

// CodecKind reports which codec a header packet (after stripping any VAD
// wrapper) belongs to: "opus", "flac", "pcm", or "" if unrecognized.
func CodecKind(data []byte) string {
	if len(data) >= 4 && string(data[0:4]) == opusIDMagic {
		return "opus"
	}
	if len(data) >= 5 && string(data[0:5]) == flacMagic {
		return "flac"
	}
	if len(data) >= 4 && string(data[0:4]) == rawPCMMagic {
		return "pcm"
	}
	return ""
}
