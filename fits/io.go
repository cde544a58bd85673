package fits

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/astrogo/fitsio"
	"github.com/cwbudde/algo-cube/internal/monitoring"
)

var ErrNoImage = errors.New("fits: no image HDU with data")

// HDU is one header/data unit. Index is the position of the unit in the
// file it was read from (0 for the primary HDU).
type HDU struct {
	Index  int
	Header *Header
	Data   *Array
}

// structural keywords are regenerated by the writer.
var structural = map[string]bool{
	"SIMPLE": true, "XTENSION": true, "BITPIX": true, "NAXIS": true,
	"EXTEND": true, "PCOUNT": true, "GCOUNT": true, "END": true,
	"BSCALE": true, "BZERO": true, "BLANK": true,
}

func isStructural(key string) bool {
	if structural[key] {
		return true
	}
	if len(key) > 5 && key[:5] == "NAXIS" {
		for _, r := range key[5:] {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	}
	return false
}

// Open reads path and returns its first image HDU that carries data.
// The file is closed before Open returns.
func Open(path string) (*HDU, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fits: %w", err)
	}
	defer f.Close()

	hdu, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	monitoring.Logger().Debug("selected image HDU", "path", path, "index", hdu.Index, "shape", hdu.Data.Shape())
	return hdu, nil
}

// Decode reads a FITS stream and returns its first image HDU that carries
// data.
func Decode(r io.Reader) (*HDU, error) {
	f, err := fitsio.Open(r)
	if err != nil {
		return nil, fmt.Errorf("fits: decode: %w", err)
	}
	defer f.Close()

	for i, unit := range f.HDUs() {
		if unit.Type() != fitsio.IMAGE_HDU {
			continue
		}
		img, ok := unit.(fitsio.Image)
		if !ok || !hasData(img.Header().Axes()) {
			continue
		}

		hdr := fromFitsio(img.Header())
		data, err := readImage(img, hdr)
		if err != nil {
			return nil, fmt.Errorf("fits: HDU %d: %w", i, err)
		}
		return &HDU{Index: i, Header: hdr, Data: data}, nil
	}

	return nil, ErrNoImage
}

func hasData(axes []int) bool {
	if len(axes) == 0 {
		return false
	}
	for _, n := range axes {
		if n <= 0 {
			return false
		}
	}
	return true
}

func fromFitsio(src *fitsio.Header) *Header {
	h := NewHeader()
	for _, key := range src.Keys() {
		if c := src.Get(key); c != nil {
			h.SetCard(*c)
		}
	}
	h.Set("BITPIX", src.Bitpix())
	axes := src.Axes()
	h.Set("NAXIS", len(axes))
	for i, n := range axes {
		h.Set(Nth("NAXIS", i+1), n)
	}
	return h
}

// shapeFromAxes reverses FITS axis order (NAXIS1 fastest) into C order.
func shapeFromAxes(axes []int) []int {
	shape := make([]int, len(axes))
	for i, n := range axes {
		shape[len(axes)-1-i] = n
	}
	return shape
}

func readImage(img fitsio.Image, hdr *Header) (*Array, error) {
	axes := img.Header().Axes()
	shape := shapeFromAxes(axes)
	n := 1
	for _, d := range axes {
		n *= d
	}

	switch bitpix := img.Header().Bitpix(); bitpix {
	case -32:
		raw := make([]float32, n)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		return NewFloat32(shape, raw)
	case -64:
		raw := make([]float64, n)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		return NewFloat64(shape, raw)
	case 8, 16, 32, 64:
		values, err := readIntegers(img, bitpix, n)
		if err != nil {
			return nil, err
		}
		scaleIntegers(values, hdr)
		return NewFloat64(shape, values)
	default:
		return nil, fmt.Errorf("unsupported BITPIX %d", bitpix)
	}
}

func readIntegers(img fitsio.Image, bitpix, n int) ([]float64, error) {
	out := make([]float64, n)
	switch bitpix {
	case 8:
		raw := make([]byte, n)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		for i, v := range raw {
			out[i] = float64(v)
		}
	case 16:
		raw := make([]int16, n)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		for i, v := range raw {
			out[i] = float64(v)
		}
	case 32:
		raw := make([]int32, n)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		for i, v := range raw {
			out[i] = float64(v)
		}
	case 64:
		raw := make([]int64, n)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		for i, v := range raw {
			out[i] = float64(v)
		}
	}
	return out, nil
}

// scaleIntegers maps BLANK to NaN and applies BSCALE/BZERO in place.
func scaleIntegers(values []float64, hdr *Header) {
	bscale, ok := hdr.Float("BSCALE")
	if !ok {
		bscale = 1
	}
	bzero, _ := hdr.Float("BZERO")
	blank, hasBlank := hdr.Float("BLANK")

	for i, v := range values {
		if hasBlank && v == blank {
			values[i] = math.NaN()
			continue
		}
		values[i] = bzero + bscale*v
	}
}

// Encode writes hdu as the primary image of a new FITS stream.
func Encode(w io.Writer, hdu *HDU) error {
	if hdu == nil || hdu.Data == nil {
		return ErrNoImage
	}

	f, err := fitsio.Create(w)
	if err != nil {
		return fmt.Errorf("fits: create: %w", err)
	}

	shape := hdu.Data.Shape()
	axes := make([]int, len(shape))
	for i, n := range shape {
		axes[len(shape)-1-i] = n
	}

	img := fitsio.NewImage(hdu.Data.DType().Bitpix(), axes)
	defer img.Close()

	if hdu.Header != nil {
		var cards []fitsio.Card
		for _, c := range hdu.Header.Cards() {
			if c.Name == "" || isStructural(c.Name) {
				continue
			}
			cards = append(cards, c)
		}
		if err := img.Header().Append(cards...); err != nil {
			return fmt.Errorf("fits: header: %w", err)
		}
	}

	if hdu.Data.DType() == Float32 {
		err = img.Write(hdu.Data.Float32s())
	} else {
		err = img.Write(hdu.Data.Float64s())
	}
	if err != nil {
		return fmt.Errorf("fits: write data: %w", err)
	}

	if err := f.Write(img); err != nil {
		return fmt.Errorf("fits: write HDU: %w", err)
	}
	return f.Close()
}

// WriteFile writes hdu to path, replacing any existing file.
func WriteFile(path string, hdu *HDU) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("fits: %w", err)
	}
	if err := Encode(f, hdu); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
