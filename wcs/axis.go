package wcs

import "strings"

// AxisKind classifies an axis by its CTYPE.
type AxisKind int

const (
	Other AxisKind = iota
	Spectral
	Longitude
	Latitude
)

func (k AxisKind) String() string {
	switch k {
	case Spectral:
		return "spectral"
	case Longitude:
		return "longitude"
	case Latitude:
		return "latitude"
	default:
		return "other"
	}
}

var spectralCodes = map[string]bool{
	"FREQ": true, "ENER": true, "WAVN": true, "VRAD": true,
	"WAVE": true, "VOPT": true, "ZOPT": true, "AWAV": true,
	"VELO": true, "BETA": true, "FELO": true,
}

// Axis holds the per-axis keywords. Index is the 0-based FITS axis number.
type Axis struct {
	Index int
	CType string
	CUnit string
	CRPix float64
	CRVal float64
	CDelt float64
	N     int
}

// Code returns the coordinate type without the projection/algorithm part,
// e.g. "RA" for "RA---SIN" and "FREQ" for "FREQ-LSR".
func (a Axis) Code() string {
	code, _, _ := strings.Cut(strings.ToUpper(strings.TrimSpace(a.CType)), "-")
	return code
}

// Kind classifies the axis.
func (a Axis) Kind() AxisKind {
	return kindOf(a.Code())
}

func kindOf(code string) AxisKind {
	switch {
	case code == "":
		return Other
	case spectralCodes[code]:
		return Spectral
	case code == "RA" || strings.HasSuffix(code, "LON"):
		return Longitude
	case code == "DEC" || strings.HasSuffix(code, "LAT"):
		return Latitude
	default:
		return Other
	}
}
