// Package tensor provides the core tensor types and operations for the Born linalg engine.
package tensor

import "unsafe"

// DType is a constraint for supported tensor element kinds.
// It uses Go generics to ensure compile-time type safety.
type DType interface {
	~float32 | ~float64 | ~int | ~int32 | ~int64
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
	Int
	Int32
	Int64
)

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int:
		return "int"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	default:
		return "unknown"
	}
}

// IsFloat reports whether the data type is a floating-point kind.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// inferDataType infers DataType from a generic type T.
func inferDataType[T DType]() DataType {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int:
		return Int
	case int32:
		return Int32
	case int64:
		return Int64
	}
	// Named types satisfying the constraint through ~ are classified by
	// arithmetic (only floats keep a fraction) and by width.
	var half T = 1
	half /= 2
	wide := unsafe.Sizeof(dummy) == 8
	switch {
	case half != 0 && wide:
		return Float64
	case half != 0:
		return Float32
	case wide:
		return Int64
	default:
		return Int32
	}
}
