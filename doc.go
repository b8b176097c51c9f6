// Package cook implements packet-level classification for the stream
// correction filter in cmd/oggcorrect, through internal/plan.
//
// A Craig-style recording interleaves one Ogg logical stream per speaker.
// Each stream's data packets are either Opus frames or a fixed 16-bit
// 44.1/48kHz FLAC profile, optionally prefixed by an ECVADD voice-activity
// wrapper, and a stream's header region may additionally carry an ECMETA
// pause/resume control track or a free-form STREAMNOTE track. ClassifyPacket
// and ParseTOC give the re-timing pipeline (internal/plan, internal/retime,
// internal/emit) enough information to tell silence from speech (from the
// ECVADD per-packet VAD byte when present, else from packet size) and to
// count each packet's frames and their size, without decoding any audio.
// Header-level sideband markers (ECVADD, ECMETA, STREAMNOTE) are recognized
// by container/ogg, not by this package.
//
// # TOC byte
//
// Every Opus packet starts with a TOC (Table of Contents) byte:
//   - Bits 7-3: Configuration (0-31)
//   - Bit 2: Stereo flag
//   - Bits 1-0: Frame count code (0-3)
//
// Use ParseTOC to extract these fields.
package cook
