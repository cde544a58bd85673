package fits

import (
	"errors"
	"testing"
)

func TestNewFloat32ShapeMismatch(t *testing.T) {
	_, err := NewFloat32([]int{2, 3}, make([]float32, 5))
	if !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}

	_, err = NewFloat64([]int{2, 0}, nil)
	if !errors.Is(err, ErrInvalidShape) {
		t.Fatalf("expected ErrInvalidShape, got %v", err)
	}
}

func TestConvert(t *testing.T) {
	a, err := NewFloat64([]int{2, 2}, []float64{1, 2.5, -3, 4})
	if err != nil {
		t.Fatal(err)
	}

	if got := a.Convert(Float64); got != a {
		t.Fatal("Convert to the same dtype must return the receiver")
	}

	b := a.Convert(Float32)
	if b.DType() != Float32 {
		t.Fatalf("dtype = %v, want float32", b.DType())
	}
	if !b.SameShape(a) {
		t.Fatalf("shape = %v, want %v", b.Shape(), a.Shape())
	}
	for i := 0; i < a.Len(); i++ {
		if b.At(i) != a.At(i) {
			t.Fatalf("b[%d] = %v, want %v", i, b.At(i), a.At(i))
		}
	}
	if b.Float64s() != nil {
		t.Fatal("float32 array must not expose a float64 slice")
	}
}

func TestShapeIsCopied(t *testing.T) {
	shape := []int{3, 4}
	a, err := Zeros(Float32, shape)
	if err != nil {
		t.Fatal(err)
	}
	shape[0] = 99
	s := a.Shape()
	s[1] = 99
	if got := a.Shape(); got[0] != 3 || got[1] != 4 {
		t.Fatalf("shape = %v, want [3 4]", got)
	}
}

func TestCopyTo(t *testing.T) {
	a, _ := NewFloat32([]int{6}, []float32{0, 1, 2, 3, 4, 5})
	dst := make([]float64, 3)
	a.CopyTo(dst, 2)
	for i, want := range []float64{2, 3, 4} {
		if dst[i] != want {
			t.Fatalf("dst[%d] = %v, want %v", i, dst[i], want)
		}
	}
}

func TestParseDType(t *testing.T) {
	tests := []struct {
		in   string
		want DType
		err  bool
	}{
		{"float32", Float32, false},
		{"F8", Float64, false},
		{" double ", Float64, false},
		{"int16", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDType(tt.in)
		if tt.err {
			if !errors.Is(err, ErrUnknownDType) {
				t.Errorf("ParseDType(%q) error = %v, want ErrUnknownDType", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseDType(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}
