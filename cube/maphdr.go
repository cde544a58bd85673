package cube

import (
	"fmt"
	"strings"

	"github.com/astrogo/fitsio"
	"github.com/cwbudde/algo-cube/fits"
	"github.com/cwbudde/algo-cube/moment"
)

var axisKeys = []string{"CTYPE", "CUNIT", "CRPIX", "CRVAL", "CDELT", "CROTA"}

var carriedKeys = []string{
	"OBJECT", "TELESCOP", "INSTRUME", "EQUINOX", "RADESYS",
	"DATE-OBS", "RESTFRQ", "RESTFREQ", "SPECSYS",
}

// MapHeader returns a header for a moment map of c: the non-spectral axes
// renumbered from 1, common descriptive cards, BUNIT scaled for kind and a
// MOMENT card.
func (c *Cube) MapHeader(kind moment.Kind) (*fits.Header, error) {
	w, err := c.WCS()
	if err != nil {
		return nil, err
	}
	spec := w.Spec()
	src := c.hdu.Header

	h := fits.NewHeader()
	j := 0
	for i := 0; i < w.Naxis(); i++ {
		if i == spec {
			continue
		}
		j++
		for _, key := range axisKeys {
			if card, ok := src.Card(fits.Nth(key, i+1)); ok {
				card.Name = fits.Nth(key, j)
				h.SetCard(card)
			}
		}
	}
	for _, key := range carriedKeys {
		if card, ok := src.Card(key); ok {
			h.SetCard(card)
		}
	}

	bunit, _ := src.String("BUNIT")
	switch kind {
	case moment.Zeroth:
		bunit = strings.TrimSpace(bunit + " km/s")
	case moment.First:
		bunit = "km/s"
	default:
		return nil, fmt.Errorf("%w: %d", moment.ErrUnsupportedKind, int(kind))
	}
	h.SetCard(fitsio.Card{Name: "BUNIT", Value: bunit})
	h.SetCard(fitsio.Card{Name: "MOMENT", Value: int(kind), Comment: "spectral moment order"})
	return h, nil
}
