// Package ogg implements the Ogg container primitives used to frame, parse,
// and re-time multi-track voice recordings: page encode/decode, CRC-32,
// FLAC STREAMINFO parsing, and the sideband wrapper formats a Craig-style
// recorder interleaves alongside the codec data.
//
// This package provides low-level primitives for reading Ogg page framing
// as specified in RFC 3533 (The Ogg Encapsulation Format); codec header
// recognition covers Opus, Ogg FLAC (RFC draft "Ogg Mapping for FLAC"), and
// a legacy raw-PCM marker, identifying a stream's codec from its magic
// prefix alone.
//
// The Ogg format uses pages as atomic units of data, where each page contains:
//   - A 27-byte header with magic signature "OggS"
//   - A segment table describing packet boundaries
//   - Payload data containing one or more packets
//   - CRC-32 checksum for data integrity verification
//
// # Page Structure
//
// An Ogg page has the following structure:
//
//	Bytes 0-3:   "OggS" capture pattern (magic signature)
//	Byte 4:      Stream structure version (always 0)
//	Byte 5:      Header type flags (continuation, BOS, EOS)
//	Bytes 6-13:  Granule position (samples decoded so far)
//	Bytes 14-17: Bitstream serial number
//	Bytes 18-21: Page sequence number
//	Bytes 22-25: CRC checksum
//	Byte 26:     Number of segments
//	Bytes 27+:   Segment table (one byte per segment)
//	Remaining:   Page payload data
//
// # Segment Table
//
// Packets are split into segments of up to 255 bytes each. A segment value
// of 255 indicates the packet continues in the next segment. A value less
// than 255 marks the end of a packet.
//
// Example: A 600-byte packet uses segments [255, 255, 90] (255+255+90=600)
//
// # CRC Calculation
//
// Ogg uses CRC-32 with polynomial 0x04C11DB7 (NOT the IEEE polynomial used
// by hash/crc32). The CRC is computed over the entire page with the CRC
// field set to zero.
//
// # FLAC STREAMINFO
//
// Ogg FLAC header packets carry a 0x7F + "FLAC" marker followed by the
// native FLAC STREAMINFO metadata block; ParseFLACStreamInfo reads just
// enough of it to recover the sample rate, which the re-timer needs to
// detect a 44.1kHz capture (the 147/160 rescale itself is in
// internal/retime).
//
// # Sideband wrappers
//
// A recorder may prefix a header packet with "ECVADD" (per-packet voice
// activity threshold) or replace a track's data entirely with "ECMETA"
// (pause/resume control JSON) or "STREAMNOTE" (free-form notes, not
// interpreted by this package). ParseVADWrapper detects and parses the
// ECVADD prefix; MetaStreamMagic and NoteStreamMagic export the other two
// markers for callers to match. RecognizedCodecHeader and CodecKind
// identify the codec header itself (Opus, FLAC, or raw PCM).
//
// # References
//
//   - RFC 7845: Ogg Encapsulation for the Opus Audio Codec
//   - RFC 3533: The Ogg Encapsulation Format Version 0
//   - RFC 6716: Definition of the Opus Audio Codec
package ogg
