// Package codec serializes arrays to and from byte buffers.
//
// Two formats are provided:
//
// The raw pair format is the minimal wire contract: elements as 8-byte
// big-endian float64 values in row-major order, with the shape carried
// out-of-band by the caller. There is no header and no self-description;
// the byte length is always 8 × product(shape).
//
// The frame format wraps the same payload in a self-describing container:
//
//	Frame Structure:
//	  [4 bytes: Magic "FLA1"]
//	  [4 bytes: Version (uint32 BE)]
//	  [1 byte:  DType tag]
//	  [1 byte:  Rank]
//	  [2 bytes: Reserved]
//	  [Rank × 8 bytes: Dims (uint64 BE)]
//	  [Payload: big-endian elements, row-major]
//	  [32 bytes: SHA-256 checksum of everything above]
//
// The explicit dtype tag and element width remove the raw format's silent
// misinterpretation risk when payloads were written with a narrower element
// type: a float32 frame decodes by widening, never by reinterpretation.
package codec
