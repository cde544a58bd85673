// Package fits provides the container layer for spectral-line cubes stored in
// FITS files.
//
// It wraps github.com/astrogo/fitsio with the three types the rest of the
// module works with:
//
//   - [Header]: an ordered, mutable list of header cards keyed by keyword
//   - [Array]: flat, C-ordered float32 or float64 pixel data with a shape
//   - [HDU]: one header/data unit
//
// # Reading
//
// [Open] and [Decode] return the first HDU that is an image and actually
// carries data. Primary HDUs with NAXIS = 0 (common in multi-extension files)
// are skipped:
//
//	hdu, err := fits.Open("cube.fits")
//	shape := hdu.Data.Shape() // [NAXIS3, NAXIS2, NAXIS1]
//
// Array shapes are listed slowest axis first, so the FITS axis NAXISn maps to
// Shape()[NDim()-n]. Integer images are scaled with BSCALE/BZERO and BLANK
// pixels become NaN.
//
// # Writing
//
// [Encode] and [WriteFile] write an HDU as a primary image. Structural cards
// (BITPIX, NAXISn, …) are regenerated from the data; all other cards are
// copied verbatim.
package fits
