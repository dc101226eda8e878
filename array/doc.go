// Copyright 2026 ForceLab Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package array provides dense, rectangular float64 arrays for forcelab.
//
// # Overview
//
// An Array couples a row-major backing slice with a Shape. Arrays carry no
// math kernels: they exist to hold coordinate-style numeric data and to be
// serialized by the codec package.
//
// # Basic Usage
//
//	a, err := array.FromNested2D([][]float64{{1, 2}, {3, 4}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(a.Shape())   // (2, 2)
//	fmt.Println(a.At(1, 0))  // 3
//
// # Shapes
//
// Shapes are tuples of non-negative dimensions. Rank 0 describes a scalar
// (one element); a zero-size dimension describes an empty array (zero
// elements). Both are first-class values and round-trip through the codec.
package array
