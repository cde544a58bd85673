// Package smooth convolves spectra with small normalized kernels.
//
// Kernels are odd-length and sum to one, so smoothing preserves integrated
// flux away from the band edges. Convolution runs through an FFT plan from
// algo-fft sized to the next power of two above the linear convolution
// length, and returns the "same"-size output centred on the kernel. NaN
// samples are treated as zero.
//
// # Usage
//
//	k, _ := smooth.Hanning(3)
//	out, err := smooth.Convolve(spectrum, k)
//
// To smooth every spectrum of a cube along its spectral axis:
//
//	smoothed, err := smooth.Spectra(data, axis, k)
package smooth
