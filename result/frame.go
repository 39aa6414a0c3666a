package result

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/kddgo/internal/conv"
	"github.com/hupe1980/kddgo/internal/hash"
)

// Blob layout:
//
//	magic "KDDR" | version u8 | compression u8 | codec name len u8 | codec name |
//	raw size u32 LE | CRC32C u32 LE | payload
//
// The checksum covers every byte except itself, so a damaged size is caught
// before any buffer is sized from it.
const (
	frameMagic   = "KDDR"
	frameVersion = 2
	frameFixed   = len(frameMagic) + 3 + 8
)

// ErrCorrupt is returned when a stored blob cannot be decoded.
var ErrCorrupt = errors.New("result: corrupt blob")

type frame struct {
	compression Compression
	codec       string
	rawSize     int
	payload     []byte
}

func (f frame) marshal() ([]byte, error) {
	if len(f.codec) == 0 || len(f.codec) > math.MaxUint8 {
		return nil, fmt.Errorf("result: codec name %q must be 1-255 bytes", f.codec)
	}
	rawSize, err := conv.IntToUint32(f.rawSize)
	if err != nil {
		return nil, fmt.Errorf("result: payload size: %w", err)
	}

	out := make([]byte, 0, frameFixed+len(f.codec)+len(f.payload))
	out = append(out, frameMagic...)
	out = append(out, frameVersion, byte(f.compression), byte(len(f.codec)))
	out = append(out, f.codec...)
	out = binary.LittleEndian.AppendUint32(out, rawSize)
	out = binary.LittleEndian.AppendUint32(out, frameChecksum(out, f.payload))
	return append(out, f.payload...), nil
}

func frameChecksum(header, payload []byte) uint32 {
	h := hash.NewCRC32C()
	h.Write(header)
	h.Write(payload)
	return h.Sum32()
}

func unmarshalFrame(b []byte) (frame, error) {
	var f frame
	if len(b) < frameFixed || !bytes.HasPrefix(b, []byte(frameMagic)) {
		return f, fmt.Errorf("%w: bad header", ErrCorrupt)
	}
	blob := b
	b = b[len(frameMagic):]
	if b[0] != frameVersion {
		return f, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, b[0])
	}
	f.compression = Compression(b[1])
	n := int(b[2])
	b = b[3:]
	if n == 0 || len(b) < n+8 {
		return f, fmt.Errorf("%w: truncated header", ErrCorrupt)
	}
	headerLen := len(frameMagic) + 3 + n + 4
	sum := binary.LittleEndian.Uint32(b[n+4:])
	payload := b[n+8:]
	if frameChecksum(blob[:headerLen], payload) != sum {
		return f, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}

	rawSize, err := conv.Uint32ToInt(binary.LittleEndian.Uint32(b[n:]))
	if err != nil {
		return f, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	f.codec = string(b[:n])
	f.rawSize = rawSize
	f.payload = payload
	return f, nil
}
