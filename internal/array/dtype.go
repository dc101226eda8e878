// Package array provides the dense numeric array types for forcelab.
package array

// DataType represents runtime type information for array elements.
//
// Float64 is the library's working element type. Float32 exists so the
// framed wire format can tag narrower payloads explicitly instead of
// reinterpreting them as 8-byte elements.
type DataType int

// Supported element types.
const (
	Float64 DataType = iota
	Float32
)

// Size returns the byte size of one element of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float64:
		return 8
	case Float32:
		return 4
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	default:
		return "unknown"
	}
}
