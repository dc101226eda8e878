package codec

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forcelab-md/forcelab/internal/array"
)

func TestMarshalKnownBytes(t *testing.T) {
	a, err := array.FromNested2D([][]float64{{1.0, 2.0}, {3.0, 4.0}})
	require.NoError(t, err)

	data, shape := Marshal(a)
	assert.Len(t, data, 32)
	assert.Equal(t, array.Shape{2, 2}, shape)

	// First element is 1.0 encoded big-endian: 0x3FF0000000000000.
	assert.Equal(t, uint64(0x3FF0000000000000), binary.BigEndian.Uint64(data[0:8]))
	// Row-major: data[3] is the (1, 1) element, 4.0.
	assert.Equal(t, uint64(0x4010000000000000), binary.BigEndian.Uint64(data[24:32]))
}

func TestMarshalRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		data []float64
		shap array.Shape
	}{
		{"Matrix2x2", []float64{1, 2, 3, 4}, array.Shape{2, 2}},
		{"Vector", []float64{-1.5, 0, 2.25}, array.Shape{3}},
		{"Rank3", []float64{1, 2, 3, 4, 5, 6, 7, 8}, array.Shape{2, 2, 2}},
		{"Scalar", []float64{42}, array.Shape{}},
		{"Empty", []float64{}, array.Shape{0}},
		{"EmptyDim", []float64{}, array.Shape{3, 0, 4}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := array.FromSlice(tc.data, tc.shap)
			require.NoError(t, err)

			payload, shape := Marshal(a)
			assert.Len(t, payload, ElementSize*tc.shap.NumElements())
			assert.Equal(t, tc.shap, shape)

			back, err := Unmarshal(payload, shape)
			require.NoError(t, err)
			assert.True(t, a.Equal(back), "round-trip changed elements")
		})
	}
}

func TestMarshalShapeIsIndependent(t *testing.T) {
	a := array.Zeros(array.Shape{2, 3})
	_, shape := Marshal(a)
	shape[0] = 99
	assert.Equal(t, array.Shape{2, 3}, a.Shape(), "Marshal must return a shape copy")
}

func TestUnmarshalSizeMismatch(t *testing.T) {
	t.Run("ShortPayload", func(t *testing.T) {
		_, err := Unmarshal(make([]byte, 24), array.Shape{2, 2})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSizeMismatch))
	})

	t.Run("LeftoverBytes", func(t *testing.T) {
		_, err := Unmarshal(make([]byte, 40), array.Shape{2, 2})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSizeMismatch))
	})

	t.Run("NotMultipleOfElementSize", func(t *testing.T) {
		_, err := Unmarshal(make([]byte, 33), array.Shape{2, 2})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSizeMismatch))
	})

	t.Run("NegativeDim", func(t *testing.T) {
		_, err := Unmarshal(nil, array.Shape{-1})
		require.Error(t, err)
	})
}

func TestUnmarshalEmpty(t *testing.T) {
	a, err := Unmarshal([]byte{}, array.Shape{0, 5})
	require.NoError(t, err)
	assert.Equal(t, 0, a.NumElements())
	assert.Equal(t, array.Shape{0, 5}, a.Shape())
}
