package ogg

import "errors"

// Package-level errors for Ogg parsing and encoding.
var (
	// ErrInvalidPage indicates the page structure is malformed.
	// This includes missing "OggS" magic or truncated data.
	ErrInvalidPage = errors.New("ogg: invalid page structure")

	// ErrInvalidHeader indicates a codec header packet is malformed.
	// This includes wrong magic signature or a packet too short to hold
	// the fields ParseFLACStreamInfo reads.
	ErrInvalidHeader = errors.New("ogg: invalid codec header")

	// ErrBadCRC indicates the page CRC checksum does not match the computed value.
	// This typically indicates data corruption.
	ErrBadCRC = errors.New("ogg: CRC mismatch")

	// ErrUnexpectedEOS indicates the stream ended unexpectedly.
	// This occurs when a page is truncated or data ends mid-packet.
	ErrUnexpectedEOS = errors.New("ogg: unexpected end of stream")
)
