package array

import "fmt"

// Array is a dense, rectangular collection of float64 values with a fixed
// shape. Elements are stored in row-major order: the last dimension varies
// fastest in the backing slice.
type Array struct {
	data  []float64
	shape Shape
}

// New creates a zero-filled array with the given shape.
func New(shape Shape) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &Array{
		data:  make([]float64, shape.NumElements()),
		shape: shape.Clone(),
	}, nil
}

// Shape returns the array's shape.
func (a *Array) Shape() Shape {
	return a.shape
}

// Rank returns the number of dimensions.
func (a *Array) Rank() int {
	return a.shape.Rank()
}

// NumElements returns the total number of elements.
func (a *Array) NumElements() int {
	return a.shape.NumElements()
}

// Data returns the backing slice in row-major order.
// Mutating it mutates the array.
func (a *Array) Data() []float64 {
	return a.data
}

// flatIndex converts a multi-dimensional index into a row-major flat offset.
// Panics on rank or bounds violations: indexing errors are programmer errors.
func (a *Array) flatIndex(idx []int) int {
	if len(idx) != a.shape.Rank() {
		panic(fmt.Sprintf("index rank %d does not match array rank %d", len(idx), a.shape.Rank()))
	}
	strides := a.shape.ComputeStrides()
	flat := 0
	for i, ix := range idx {
		if ix < 0 || ix >= a.shape[i] {
			panic(fmt.Sprintf("index %d out of range for dimension %d (size %d)", ix, i, a.shape[i]))
		}
		flat += ix * strides[i]
	}
	return flat
}

// At returns the element at the given multi-dimensional index.
// For a rank-0 array, call At() with no indices.
func (a *Array) At(idx ...int) float64 {
	return a.data[a.flatIndex(idx)]
}

// Set stores v at the given multi-dimensional index.
func (a *Array) Set(v float64, idx ...int) {
	a.data[a.flatIndex(idx)] = v
}

// Equal reports whether two arrays have equal shapes and equal elements.
func (a *Array) Equal(other *Array) bool {
	if !a.shape.Equal(other.shape) {
		return false
	}
	for i := range a.data {
		if a.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the array.
func (a *Array) Clone() *Array {
	data := make([]float64, len(a.data))
	copy(data, a.data)
	return &Array{data: data, shape: a.shape.Clone()}
}

// Reshape returns a view-free copy of the array with a new shape.
// The new shape must describe the same number of elements.
func (a *Array) Reshape(shape Shape) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if shape.NumElements() != a.NumElements() {
		return nil, fmt.Errorf("cannot reshape %s (%d elements) to %s (%d elements)",
			a.shape, a.NumElements(), shape, shape.NumElements())
	}
	out := a.Clone()
	out.shape = shape.Clone()
	return out, nil
}

// String returns a short description, e.g. "Array(2, 3)".
func (a *Array) String() string {
	return "Array" + a.shape.String()
}
