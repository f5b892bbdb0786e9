package codec

import (
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the algorithm applied to a block payload.
type Compression uint8

const (
	// CompressionNone stores the payload as is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD (better ratio).
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return "unknown"
	}
}

func (c Compression) valid() bool {
	return c <= CompressionZSTD
}

// ParseCompression maps a stable name to a Compression.
func ParseCompression(name string) (Compression, bool) {
	switch name {
	case "none":
		return CompressionNone, true
	case "lz4":
		return CompressionLZ4, true
	case "zstd":
		return CompressionZSTD, true
	default:
		return 0, false
	}
}

const (
	// An LZ4 sequence spends at least one extra byte per 255 output bytes.
	lz4MaxRatio = 255
	// A ZSTD block needs at least 4 bytes and decodes to at most 128 KiB.
	zstdMaxRatio = 32 << 10
)

// maxRawLen returns the largest size a payload of payloadLen bytes can
// decompress to under c.
func maxRawLen(c Compression, payloadLen uint64) uint64 {
	switch c {
	case CompressionLZ4:
		return payloadLen * lz4MaxRatio
	case CompressionZSTD:
		return payloadLen * zstdMaxRatio
	default:
		return payloadLen
	}
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxRawSize))
	return dec
}

// compress returns the payload and the compression actually applied.
func compress(raw []byte, c Compression) ([]byte, Compression, error) {
	if c == CompressionNone || len(raw) == 0 {
		return raw, CompressionNone, nil
	}

	var out []byte
	switch c {
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(raw)))
		n, err := lz4.CompressBlock(raw, buf, nil)
		if err != nil {
			return nil, 0, err
		}
		out = buf[:n]
	case CompressionZSTD:
		enc := getZstdEncoder()
		out = enc.EncodeAll(raw, nil)
		zstdEncoderPool.Put(enc)
	}

	// Not worth it below a 10% saving.
	if len(out) == 0 || float64(len(out)) > float64(len(raw))*0.9 {
		return raw, CompressionNone, nil
	}
	return out, c, nil
}

func decompress(payload []byte, c Compression, rawLen int) ([]byte, error) {
	switch c {
	case CompressionLZ4:
		out := make([]byte, rawLen)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, err
		}
		if n != rawLen {
			return nil, errors.New("decompressed size mismatch")
		}
		return out, nil
	case CompressionZSTD:
		var h zstd.Header
		if err := h.Decode(payload); err != nil {
			return nil, err
		}
		if h.HasFCS && h.FrameContentSize != uint64(rawLen) {
			return nil, fmt.Errorf("frame content size %d, header claims %d", h.FrameContentSize, rawLen)
		}

		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)

		out, err := dec.DecodeAll(payload, make([]byte, 0, rawLen))
		if err != nil {
			return nil, err
		}
		if len(out) != rawLen {
			return nil, errors.New("decompressed size mismatch")
		}
		return out, nil
	default:
		if len(payload) != rawLen {
			return nil, errors.New("raw size mismatch")
		}
		return payload, nil
	}
}
