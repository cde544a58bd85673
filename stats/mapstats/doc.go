// Package mapstats summarizes moment maps and other 2-D images.
//
// NaN pixels are counted but otherwise ignored; every statistic is computed
// over the finite pixels only. Positions are flat C-order indices into the
// input slice.
package mapstats
