// Package codec serializes selections into a self-describing binary block.
//
// Layout (little endian):
//
//	magic "RSEL" | version u8 | compression u8 | reserved u16 |
//	rawLen u32 | payloadLen u32 | xxh3(raw) u64 | payload
//
// The payload is the portable Roaring serialization of the selection,
// optionally compressed. The header records the compression actually used,
// so Decode never needs to know which Codec wrote the block.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/rangeset"
	"github.com/zeebo/xxh3"
)

const (
	// Version is the current block format version.
	Version uint8 = 1

	headerSize = 24

	// maxRawSize bounds the decoded Roaring serialization. A full 32-bit
	// bitmap of uncompressed containers stays below it.
	maxRawSize = 1 << 30
)

var magic = [4]byte{'R', 'S', 'E', 'L'}

var (
	// ErrInvalidFormat is returned for blocks that are truncated or lack the magic.
	ErrInvalidFormat = errors.New("codec: invalid format")
	// ErrChecksumMismatch is returned when the decoded payload does not match its checksum.
	ErrChecksumMismatch = errors.New("codec: checksum mismatch")
	// ErrUnsupportedVersion is returned for blocks written by a newer format version.
	ErrUnsupportedVersion = errors.New("codec: unsupported version")
)

// Codec encodes and decodes selections.
// Implementations must be safe for concurrent use.
type Codec interface {
	Encode(sel *rangeset.Selection) ([]byte, error)
	Decode(data []byte) (*rangeset.Selection, error)
	Name() string
}

type blockCodec struct {
	compression Compression
}

// New returns a Codec that writes blocks with the given compression.
func New(c Compression) Codec {
	return blockCodec{compression: c}
}

func (b blockCodec) Encode(sel *rangeset.Selection) ([]byte, error) {
	return Encode(sel, b.compression)
}

func (blockCodec) Decode(data []byte) (*rangeset.Selection, error) {
	return Decode(data)
}

func (b blockCodec) Name() string { return b.compression.String() }

// Default is the codec used by the catalog unless configured otherwise.
var Default = New(CompressionZSTD)

// ByName returns a built-in codec by its stable name ("none", "lz4", "zstd").
func ByName(name string) (Codec, bool) {
	c, ok := ParseCompression(name)
	if !ok {
		return nil, false
	}
	return New(c), true
}

// Encode serializes sel into a block using compression c.
// Compression falls back to none when it does not shrink the payload by at
// least 10%.
func Encode(sel *rangeset.Selection, c Compression) ([]byte, error) {
	if !c.valid() {
		return nil, fmt.Errorf("codec: unknown compression %d", c)
	}

	rb := sel.Bitmap().Clone()
	rb.RunOptimize()

	raw, err := rb.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("codec: serialize selection: %w", err)
	}

	payload, used, err := compress(raw, c)
	if err != nil {
		return nil, fmt.Errorf("codec: compress %s: %w", c, err)
	}

	out := make([]byte, headerSize+len(payload))
	copy(out[0:4], magic[:])
	out[4] = Version
	out[5] = byte(used)
	binary.LittleEndian.PutUint32(out[8:], uint32(len(raw)))
	binary.LittleEndian.PutUint32(out[12:], uint32(len(payload)))
	binary.LittleEndian.PutUint64(out[16:], xxh3.Hash(raw))
	copy(out[headerSize:], payload)

	return out, nil
}

// Decode parses a block produced by Encode.
func Decode(data []byte) (*rangeset.Selection, error) {
	if len(data) < headerSize || [4]byte(data[0:4]) != magic {
		return nil, ErrInvalidFormat
	}
	if v := data[4]; v == 0 || v > Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}

	c := Compression(data[5])
	if !c.valid() {
		return nil, fmt.Errorf("%w: unknown compression %d", ErrInvalidFormat, c)
	}

	rawLen := binary.LittleEndian.Uint32(data[8:])
	payloadLen := binary.LittleEndian.Uint32(data[12:])
	sum := binary.LittleEndian.Uint64(data[16:])

	if uint64(len(data)-headerSize) != uint64(payloadLen) {
		return nil, fmt.Errorf("%w: payload length %d, have %d", ErrInvalidFormat, payloadLen, len(data)-headerSize)
	}

	if limit := min(maxRawLen(c, uint64(payloadLen)), maxRawSize); uint64(rawLen) > limit {
		return nil, fmt.Errorf("%w: raw length %d implausible for %d byte %s payload", ErrInvalidFormat, rawLen, payloadLen, c)
	}

	raw, err := decompress(data[headerSize:], c, int(rawLen))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChecksumMismatch, err)
	}

	if xxh3.Hash(raw) != sum {
		return nil, ErrChecksumMismatch
	}

	rb := roaring.New()
	if err := rb.UnmarshalBinary(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	return rangeset.SelectionFromBitmap(rb), nil
}
