package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/forcelab-md/forcelab/internal/array"
)

// ElementSize is the byte width of one raw-format element (big-endian float64).
const ElementSize = 8

// Marshal serializes an array into the raw pair format: big-endian float64
// elements in row-major order plus the shape. The shape must be carried
// out-of-band by the caller; the byte length is always
// ElementSize × product(shape).
func Marshal(a *array.Array) ([]byte, array.Shape) {
	data := a.Data()
	buf := make([]byte, ElementSize*len(data))
	for i, v := range data {
		binary.BigEndian.PutUint64(buf[i*ElementSize:], math.Float64bits(v))
	}
	return buf, a.Shape().Clone()
}

// Unmarshal reconstructs an array from a raw payload and its out-of-band
// shape. The payload length must exactly equal ElementSize × product(shape);
// any mismatch fails fast with ErrSizeMismatch, never truncation.
func Unmarshal(data []byte, shape array.Shape) (*array.Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	want := ElementSize * shape.NumElements()
	if len(data) != want {
		return nil, fmt.Errorf("%w: got %d bytes, shape %s requires %d",
			ErrSizeMismatch, len(data), shape, want)
	}
	vals := make([]float64, shape.NumElements())
	for i := range vals {
		vals[i] = math.Float64frombits(binary.BigEndian.Uint64(data[i*ElementSize:]))
	}
	return array.FromSlice(vals, shape)
}
