package cube

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-cube/fits"
)

var ErrUnknownConvention = errors.New("cube: unknown header convention")

// Convention fixes survey-specific header quirks. It runs once, before any
// coordinate information is derived.
type Convention func(*fits.Header)

// EBHIS declares the third axis of an Effelsberg-Bonn HI Survey cube as a
// radio velocity axis in m/s in the LSRK frame.
func EBHIS(h *fits.Header) {
	h.Set("CUNIT3", "m/s")
	h.Set("CTYPE3", "VRAD")
	h.Set("SPECSYS", "LSRK")
}

// LoadEBHIS loads src with the EBHIS convention.
func LoadEBHIS(src Source, opts ...Option) (*Cube, error) {
	return Load(src, append(opts, WithConvention(EBHIS))...)
}

// ConventionByName returns the named convention. The empty string and
// "none" return nil.
func ConventionByName(name string) (Convention, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return nil, nil
	case "ebhis":
		return EBHIS, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownConvention, name)
	}
}
