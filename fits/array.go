package fits

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrShapeMismatch = errors.New("fits: data length does not match shape")
	ErrInvalidShape  = errors.New("fits: invalid shape")
	ErrUnknownDType  = errors.New("fits: unknown dtype")
)

// DType is the floating-point element type of an [Array].
type DType int

const (
	Float32 DType = iota + 1
	Float64
)

// String returns the conventional lower-case name of the type.
func (d DType) String() string {
	switch d {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return fmt.Sprintf("DType(%d)", int(d))
	}
}

// Bitpix returns the FITS BITPIX value for the type.
func (d DType) Bitpix() int {
	if d == Float32 {
		return -32
	}
	return -64
}

// ParseDType parses "float32"/"f4" or "float64"/"f8" (case-insensitive).
func ParseDType(s string) (DType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "float32", "f4", "single":
		return Float32, nil
	case "float64", "f8", "double":
		return Float64, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDType, s)
	}
}

// Array is an N-dimensional, C-ordered block of floating-point values.
// Exactly one of the backing slices is populated, according to DType.
type Array struct {
	shape []int
	f32   []float32
	f64   []float64
}

// NewFloat32 wraps data (not copied) as a float32 array of the given shape.
func NewFloat32(shape []int, data []float32) (*Array, error) {
	n, err := shapeLen(shape)
	if err != nil {
		return nil, err
	}
	if len(data) != n {
		return nil, fmt.Errorf("%w: %d values for shape %v", ErrShapeMismatch, len(data), shape)
	}
	return &Array{shape: cloneInts(shape), f32: data}, nil
}

// NewFloat64 wraps data (not copied) as a float64 array of the given shape.
func NewFloat64(shape []int, data []float64) (*Array, error) {
	n, err := shapeLen(shape)
	if err != nil {
		return nil, err
	}
	if len(data) != n {
		return nil, fmt.Errorf("%w: %d values for shape %v", ErrShapeMismatch, len(data), shape)
	}
	return &Array{shape: cloneInts(shape), f64: data}, nil
}

// Zeros returns a zero-filled array of the given type and shape.
func Zeros(d DType, shape []int) (*Array, error) {
	n, err := shapeLen(shape)
	if err != nil {
		return nil, err
	}
	switch d {
	case Float32:
		return &Array{shape: cloneInts(shape), f32: make([]float32, n)}, nil
	case Float64:
		return &Array{shape: cloneInts(shape), f64: make([]float64, n)}, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownDType, d)
	}
}

// Shape returns a copy of the array shape, slowest axis first.
func (a *Array) Shape() []int { return cloneInts(a.shape) }

// NDim returns the number of dimensions.
func (a *Array) NDim() int { return len(a.shape) }

// Len returns the total number of elements.
func (a *Array) Len() int {
	if a.f32 != nil {
		return len(a.f32)
	}
	return len(a.f64)
}

// DType returns the element type.
func (a *Array) DType() DType {
	if a.f32 != nil {
		return Float32
	}
	return Float64
}

// At returns the element at flat index i as float64.
func (a *Array) At(i int) float64 {
	if a.f32 != nil {
		return float64(a.f32[i])
	}
	return a.f64[i]
}

// Set stores v at flat index i.
func (a *Array) Set(i int, v float64) {
	if a.f32 != nil {
		a.f32[i] = float32(v)
		return
	}
	a.f64[i] = v
}

// Float32s returns the backing slice of a float32 array, nil otherwise.
func (a *Array) Float32s() []float32 { return a.f32 }

// Float64s returns the backing slice of a float64 array, nil otherwise.
func (a *Array) Float64s() []float64 { return a.f64 }

// Values copies the array into a new float64 slice.
func (a *Array) Values() []float64 {
	out := make([]float64, a.Len())
	a.CopyTo(out, 0)
	return out
}

// CopyTo copies len(dst) elements starting at flat offset off into dst.
func (a *Array) CopyTo(dst []float64, off int) {
	if a.f32 != nil {
		for i, v := range a.f32[off : off+len(dst)] {
			dst[i] = float64(v)
		}
		return
	}
	copy(dst, a.f64[off:off+len(dst)])
}

// Convert returns the receiver when it already has type d, otherwise a
// converted copy.
func (a *Array) Convert(d DType) *Array {
	if a.DType() == d {
		return a
	}
	out := &Array{shape: cloneInts(a.shape)}
	switch d {
	case Float32:
		out.f32 = make([]float32, len(a.f64))
		for i, v := range a.f64 {
			out.f32[i] = float32(v)
		}
	default:
		out.f64 = make([]float64, len(a.f32))
		for i, v := range a.f32 {
			out.f64[i] = float64(v)
		}
	}
	return out
}

// Clone returns a deep copy.
func (a *Array) Clone() *Array {
	out := &Array{shape: cloneInts(a.shape)}
	if a.f32 != nil {
		out.f32 = append([]float32(nil), a.f32...)
	} else {
		out.f64 = append([]float64(nil), a.f64...)
	}
	return out
}

// SameShape reports whether a and b have identical shapes.
func (a *Array) SameShape(b *Array) bool {
	return EqualShape(a.shape, b.shape)
}

// EqualShape reports whether two shapes are identical.
func EqualShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func shapeLen(shape []int) (int, error) {
	if len(shape) == 0 {
		return 0, fmt.Errorf("%w: empty", ErrInvalidShape)
	}
	n := 1
	for _, d := range shape {
		if d <= 0 {
			return 0, fmt.Errorf("%w: %v", ErrInvalidShape, shape)
		}
		n *= d
	}
	return n, nil
}

func cloneInts(s []int) []int {
	return append([]int(nil), s...)
}
