package array

import "fmt"

// Zeros creates an array filled with zeros.
//
// Example:
//
//	a := array.Zeros(array.Shape{3, 4})
func Zeros(shape Shape) *Array {
	a, err := New(shape)
	if err != nil {
		panic(err) // Shape validation should prevent this
	}
	return a
}

// Full creates an array filled with a specific value.
//
// Example:
//
//	a := array.Full(array.Shape{3, 3}, 1.5)
func Full(shape Shape, value float64) *Array {
	a := Zeros(shape)
	for i := range a.data {
		a.data[i] = value
	}
	return a
}

// FromSlice creates an array from a row-major flat slice.
// The slice length must equal the shape's element count. The data is copied.
func FromSlice(data []float64, shape Shape) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %s (%d elements)",
			len(data), shape, shape.NumElements())
	}
	a := &Array{
		data:  make([]float64, len(data)),
		shape: shape.Clone(),
	}
	copy(a.data, data)
	return a, nil
}

// FromNested2D creates a rank-2 array from nested row slices.
// All rows must have the same length.
func FromNested2D(rows [][]float64) (*Array, error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	flat := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("ragged input: row %d has %d elements, expected %d", i, len(row), cols)
		}
		flat = append(flat, row...)
	}
	return FromSlice(flat, Shape{len(rows), cols})
}

// Scalar creates a rank-0 array holding a single value.
func Scalar(value float64) *Array {
	a := Zeros(Shape{})
	a.data[0] = value
	return a
}
