package codec

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"hash"
	"io"
	"math"
	"os"

	"github.com/forcelab-md/forcelab/internal/array"
)

// Frame format constants.
const (
	MagicBytes   = "FLA1"
	FrameVersion = 1
	ChecksumSize = 32 // SHA-256
	prefixSize   = 12 // magic + version + dtype + rank + reserved
	dimFieldSize = 8  // uint64 per dimension
)

// Validation limits for resource protection.
const (
	MaxRank         = 32
	MaxPayloadBytes = 1 << 34 // 16 GiB
)

// Element type tags in the frame header.
const (
	tagFloat64 uint8 = 1
	tagFloat32 uint8 = 2
)

func tagToDtype(tag uint8) (array.DataType, bool) {
	switch tag {
	case tagFloat64:
		return array.Float64, true
	case tagFloat32:
		return array.Float32, true
	default:
		return 0, false
	}
}

// FrameInfo describes a frame header without its payload.
type FrameInfo struct {
	Version     uint32
	DType       array.DataType
	Shape       array.Shape
	PayloadSize int64
}

// EncodeFrame writes an array to w in the self-describing frame format.
// The payload is always written as float64; the dtype tag exists so readers
// of other producers can be told the element width explicitly.
func EncodeFrame(w io.Writer, a *array.Array) error {
	shape := a.Shape()
	if err := shape.Validate(); err != nil {
		return fmt.Errorf("invalid shape: %w", err)
	}
	if shape.Rank() > MaxRank {
		return &ValidationError{
			Type:    "rank_limit",
			Details: fmt.Sprintf("rank %d > max %d", shape.Rank(), MaxRank),
		}
	}

	h := sha256.New()
	out := io.MultiWriter(w, h)

	header := make([]byte, prefixSize+shape.Rank()*dimFieldSize)
	copy(header[0:4], MagicBytes)
	binary.BigEndian.PutUint32(header[4:8], FrameVersion)
	header[8] = tagFloat64
	header[9] = uint8(shape.Rank())
	// header[10:12] reserved, zero
	for i, dim := range shape {
		binary.BigEndian.PutUint64(header[prefixSize+i*dimFieldSize:], uint64(dim))
	}
	if _, err := out.Write(header); err != nil {
		return fmt.Errorf("failed to write frame header: %w", err)
	}

	payload, _ := Marshal(a)
	if _, err := out.Write(payload); err != nil {
		return fmt.Errorf("failed to write frame payload: %w", err)
	}

	if _, err := w.Write(h.Sum(nil)); err != nil {
		return fmt.Errorf("failed to write frame checksum: %w", err)
	}
	return nil
}

// readHeader parses the frame prefix and dims, feeding every byte read into
// sum when sum is non-nil.
func readHeader(r io.Reader, sum hash.Hash) (*FrameInfo, error) {
	in := r
	if sum != nil {
		in = io.TeeReader(r, sum)
	}

	prefix := make([]byte, prefixSize)
	if _, err := io.ReadFull(in, prefix); err != nil {
		return nil, fmt.Errorf("failed to read frame prefix: %w", err)
	}
	if string(prefix[0:4]) != MagicBytes {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidMagic, prefix[0:4])
	}
	version := binary.BigEndian.Uint32(prefix[4:8])
	if version != FrameVersion {
		return nil, fmt.Errorf("%w: got %d, support %d", ErrUnsupportedVersion, version, FrameVersion)
	}
	dtype, ok := tagToDtype(prefix[8])
	if !ok {
		return nil, fmt.Errorf("%w: tag %d", ErrUnsupportedDType, prefix[8])
	}
	rank := int(prefix[9])
	if rank > MaxRank {
		return nil, &ValidationError{
			Type:    "rank_limit",
			Details: fmt.Sprintf("rank %d > max %d", rank, MaxRank),
		}
	}

	dims := make([]byte, rank*dimFieldSize)
	if _, err := io.ReadFull(in, dims); err != nil {
		return nil, fmt.Errorf("failed to read frame dims: %w", err)
	}
	shape := make(array.Shape, rank)
	elements := int64(1)
	for i := range shape {
		dim := binary.BigEndian.Uint64(dims[i*dimFieldSize:])
		if dim > math.MaxInt32 {
			return nil, &ValidationError{
				Type:    "dim_limit",
				Details: fmt.Sprintf("dimension %d is %d, exceeds int32 range", i, dim),
			}
		}
		shape[i] = int(dim)
		// Overflow-safe element count accumulation.
		if dim != 0 && elements > MaxPayloadBytes/int64(dim) {
			return nil, fmt.Errorf("%w: element count exceeds %d", ErrFrameTooLarge, MaxPayloadBytes)
		}
		elements *= int64(dim)
	}

	payloadSize := elements * int64(dtype.Size())
	if payloadSize > MaxPayloadBytes {
		return nil, fmt.Errorf("%w: payload %d bytes > max %d", ErrFrameTooLarge, payloadSize, MaxPayloadBytes)
	}

	return &FrameInfo{
		Version:     version,
		DType:       dtype,
		Shape:       shape,
		PayloadSize: payloadSize,
	}, nil
}

// ReadFrameInfo parses only the header of a frame. The payload is not read
// and the checksum is not verified.
func ReadFrameInfo(r io.Reader) (*FrameInfo, error) {
	return readHeader(r, nil)
}

// DecodeFrame reads a full frame from r, verifies its checksum, and
// reconstructs the array. Float32 payloads are widened to float64.
func DecodeFrame(r io.Reader) (*array.Array, error) {
	h := sha256.New()
	info, err := readHeader(r, h)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, info.PayloadSize)
	if _, err := io.ReadFull(io.TeeReader(r, h), payload); err != nil {
		return nil, fmt.Errorf("failed to read frame payload: %w", err)
	}

	stored := make([]byte, ChecksumSize)
	if _, err := io.ReadFull(r, stored); err != nil {
		return nil, fmt.Errorf("failed to read frame checksum: %w", err)
	}
	if !bytes.Equal(h.Sum(nil), stored) {
		return nil, ErrChecksumMismatch
	}

	switch info.DType {
	case array.Float64:
		return Unmarshal(payload, info.Shape)
	case array.Float32:
		vals := make([]float64, info.Shape.NumElements())
		for i := range vals {
			bits := binary.BigEndian.Uint32(payload[i*4:])
			vals[i] = float64(math.Float32frombits(bits))
		}
		return array.FromSlice(vals, info.Shape)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDType, info.DType)
	}
}

// WriteFile encodes an array into a frame file at path.
func WriteFile(path string, a *array.Array) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create frame file: %w", err)
	}
	if err := EncodeFrame(f, a); err != nil {
		_ = f.Close() // Best effort close on error
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close frame file: %w", err)
	}
	return nil
}

// ReadFile decodes a frame file at path.
func ReadFile(path string) (*array.Array, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open frame file: %w", err)
	}
	defer f.Close()
	return DecodeFrame(f)
}
