// Package wcs implements the linear subset of the FITS World Coordinate
// System used by spectral-line cubes.
//
// A [WCS] is built from a header with [FromHeader]. Each axis carries the
// usual CTYPEi, CUNITi, CRPIXi, CRVALi and CDELTi keywords; axes are coupled
// by an optional PCi_j matrix, or a CDi_j matrix which replaces CDELT·PC:
//
//	world_i = CRVAL_i + Σ_j M_ij (pix_j - CRPIX_j)
//
// Celestial axes use the same relation (plate carrée). Spherical projections
// and spectral frame transformations are not implemented.
//
// # Usage
//
//	w, err := wcs.FromHeader(hdr)
//	spec, err := w.Spectral()
//	world, err := spec.PixelToWorld(0, []float64{0, 1, 2})
package wcs
