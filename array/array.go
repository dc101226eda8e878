// Copyright 2026 ForceLab Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// This file re-exports the internal/array implementation.

package array

import (
	"github.com/forcelab-md/forcelab/internal/array"
)

// Type aliases for public API

// Shape represents the dimensions of an array.
// Example: Shape{2, 3} represents a 2×3 matrix.
type Shape = array.Shape

// Array is a dense row-major float64 array with a fixed shape.
type Array = array.Array

// DataType represents the element type of a serialized array.
type DataType = array.DataType

// Element type constants.
const (
	Float64 DataType = array.Float64
	Float32 DataType = array.Float32
)

// Creation functions

// New creates a zero-filled array with the given shape.
func New(shape Shape) (*Array, error) {
	return array.New(shape)
}

// Zeros creates an array filled with zeros.
func Zeros(shape Shape) *Array {
	return array.Zeros(shape)
}

// Full creates an array filled with a specific value.
func Full(shape Shape, value float64) *Array {
	return array.Full(shape, value)
}

// FromSlice creates an array from a row-major flat slice.
//
// Example:
//
//	a, err := array.FromSlice([]float64{1, 2, 3, 4, 5, 6}, array.Shape{2, 3})
func FromSlice(data []float64, shape Shape) (*Array, error) {
	return array.FromSlice(data, shape)
}

// FromNested2D creates a rank-2 array from nested row slices.
func FromNested2D(rows [][]float64) (*Array, error) {
	return array.FromNested2D(rows)
}

// Scalar creates a rank-0 array holding a single value.
func Scalar(value float64) *Array {
	return array.Scalar(value)
}
