// Copyright 2026 ForceLab Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package codec serializes arrays to and from byte buffers.
//
// Two formats are provided. The raw pair format is the minimal wire
// contract: 8-byte big-endian float64 elements in row-major order, with the
// shape carried out-of-band by the caller. The frame format wraps the same
// payload in a self-describing container with magic bytes, a version, an
// explicit dtype tag, the shape, and a SHA-256 checksum.
//
// Example:
//
//	a, _ := array.FromNested2D([][]float64{{1, 2}, {3, 4}})
//	data, shape := codec.Marshal(a)   // 32 bytes, shape (2, 2)
//	back, err := codec.Unmarshal(data, shape)
package codec

import (
	"io"

	"github.com/forcelab-md/forcelab/array"
	"github.com/forcelab-md/forcelab/internal/codec"
)

// ElementSize is the byte width of one raw-format element.
const ElementSize = codec.ElementSize

// FrameInfo describes a frame header without its payload.
type FrameInfo = codec.FrameInfo

// ValidationError provides detailed information about frame validation failures.
type ValidationError = codec.ValidationError

// Common errors.
var (
	ErrSizeMismatch       = codec.ErrSizeMismatch
	ErrInvalidMagic       = codec.ErrInvalidMagic
	ErrUnsupportedVersion = codec.ErrUnsupportedVersion
	ErrUnsupportedDType   = codec.ErrUnsupportedDType
	ErrChecksumMismatch   = codec.ErrChecksumMismatch
	ErrFrameTooLarge      = codec.ErrFrameTooLarge
)

// Marshal serializes an array into the raw pair format: big-endian float64
// payload plus out-of-band shape.
func Marshal(a *array.Array) ([]byte, array.Shape) {
	return codec.Marshal(a)
}

// Unmarshal reconstructs an array from a raw payload and its shape.
// A payload whose length is not exactly 8 × product(shape) fails with
// ErrSizeMismatch.
func Unmarshal(data []byte, shape array.Shape) (*array.Array, error) {
	return codec.Unmarshal(data, shape)
}

// EncodeFrame writes an array to w in the self-describing frame format.
func EncodeFrame(w io.Writer, a *array.Array) error {
	return codec.EncodeFrame(w, a)
}

// DecodeFrame reads a frame from r, verifies its checksum, and reconstructs
// the array.
func DecodeFrame(r io.Reader) (*array.Array, error) {
	return codec.DecodeFrame(r)
}

// ReadFrameInfo parses only the header of a frame.
func ReadFrameInfo(r io.Reader) (*FrameInfo, error) {
	return codec.ReadFrameInfo(r)
}

// WriteFile encodes an array into a frame file at path.
func WriteFile(path string, a *array.Array) error {
	return codec.WriteFile(path, a)
}

// ReadFile decodes a frame file at path.
func ReadFile(path string) (*array.Array, error) {
	return codec.ReadFile(path)
}
