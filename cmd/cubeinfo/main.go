// Command cubeinfo prints the header summary and spectral axes of a FITS
// data cube.
//
// Usage:
//
//	cubeinfo [flags] cube.fits
//
// Examples:
//
//	cubeinfo tile.fits
//	cubeinfo -ebhis -channels tile.fits
//	cubeinfo -plot spectrum.png tile.fits
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/cwbudde/algo-cube/cube"
	"github.com/cwbudde/algo-cube/fits"
	"github.com/cwbudde/algo-cube/internal/monitoring"
	"github.com/cwbudde/algo-cube/render"
	"github.com/cwbudde/algo-cube/stats/mapstats"
	"github.com/cwbudde/algo-cube/units"
)

type options struct {
	ebhis    bool
	dtype    string
	channels bool
	plot     string
	verbose  bool
}

func main() {
	var opts options
	flag.BoolVar(&opts.ebhis, "ebhis", false, "apply the EBHIS header convention")
	flag.StringVar(&opts.dtype, "dtype", "float32", "data type: float32 or float64")
	flag.BoolVar(&opts.channels, "channels", false, "print a per-channel table")
	flag.StringVar(&opts.plot, "plot", "", "save the mean spectrum to this image file")
	flag.BoolVar(&opts.verbose, "v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cubeinfo [flags] cube.fits\n\n")
		fmt.Fprintf(os.Stderr, "Prints header, WCS axes and spectral extent of a data cube.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "cubeinfo"})
	if opts.verbose {
		logger.SetLevel(log.DebugLevel)
	}
	monitoring.SetLogger(logger)

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(os.Stdout, flag.Arg(0), opts); err != nil {
		logger.Error("cubeinfo failed", "err", err)
		os.Exit(1)
	}
}

func run(w io.Writer, path string, opts options) error {
	dtype, err := fits.ParseDType(opts.dtype)
	if err != nil {
		return err
	}
	cubeOpts := []cube.Option{cube.WithDType(dtype)}
	if opts.ebhis {
		cubeOpts = append(cubeOpts, cube.WithConvention(cube.EBHIS))
	}

	c, err := cube.Open(path, cubeOpts...)
	if err != nil {
		return err
	}

	if err := printSummary(w, path, c); err != nil {
		return err
	}
	if err := printAxes(w, c); err != nil {
		return err
	}

	spectral := true
	if err := printSpectral(w, c); err != nil {
		if !errors.Is(err, cube.ErrUnsupportedSpectralType) && !errors.Is(err, units.ErrRestFrequency) {
			return err
		}
		monitoring.Logger().Warn("no spectral axis summary", "err", err)
		spectral = false
	}

	if opts.channels && spectral {
		if err := printChannels(w, c); err != nil {
			return err
		}
	}
	if opts.plot != "" {
		if err := plotMeanSpectrum(c, opts.plot); err != nil {
			return err
		}
		monitoring.Logger().Info("saved mean spectrum", "path", opts.plot)
	}
	return nil
}

func printSummary(w io.Writer, path string, c *cube.Cube) error {
	data := c.Data()
	fmt.Fprintf(w, "File:     %s (HDU %d)\n", path, c.HDU().Index)
	fmt.Fprintf(w, "Shape:    %v %s\n", data.Shape(), data.DType())
	for _, key := range []string{"OBJECT", "BUNIT", "SPECSYS", "RESTFRQ"} {
		if v, ok := c.Header().Get(key); ok {
			fmt.Fprintf(w, "%-9s %v\n", key+":", v)
		}
	}
	s := mapstats.Calculate(data.Values())
	fmt.Fprintf(w, "Values:   n=%d nan=%d min=%.4g max=%.4g mean=%.4g\n\n", s.Count, s.NaNCount, s.Min, s.Max, s.Mean)
	return nil
}

func printAxes(w io.Writer, c *cube.Cube) error {
	wc, err := c.WCS()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Axis\tCTYPE\tCUNIT\tNAXIS\tCRPIX\tCRVAL\tCDELT\tKind\n")
	fmt.Fprintf(tw, "----\t-----\t-----\t-----\t-----\t-----\t-----\t----\n")
	for _, a := range wc.Axes() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%g\t%g\t%g\t%s\n",
			a.Index+1, a.CType, a.CUnit, a.N, a.CRPix, a.CRVal, a.CDelt, a.Kind())
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	fmt.Fprintln(w)
	return nil
}

func printSpectral(w io.Writer, c *cube.Cube) error {
	f, err := c.Frequencies()
	if err != nil {
		return err
	}
	n := f.Len()
	fmt.Fprintf(w, "Channels: %d\n", n)
	fmt.Fprintf(w, "Freq:     %.6f .. %.6f MHz\n", f.At(0)/1e6, f.At(n-1)/1e6)

	rv, err := c.RadioVelocities()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Vrad:     %.3f .. %.3f km/s", rv.At(0), rv.At(n-1))
	if n > 1 {
		fmt.Fprintf(w, " (%.4f km/s per channel)", (rv.At(n-1)-rv.At(0))/float64(n-1))
	}
	fmt.Fprintln(w)
	return nil
}

func printChannels(w io.Writer, c *cube.Cube) error {
	f, err := c.Frequencies()
	if err != nil {
		return err
	}
	rv, err := c.RadioVelocities()
	if err != nil {
		return err
	}
	ov, err := c.OpticalVelocities()
	if err != nil {
		return err
	}
	mean, err := meanSpectrum(c)
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Chan\tFreq [MHz]\tVrad [km/s]\tVopt [km/s]\tMean\n")
	fmt.Fprintf(tw, "----\t----------\t-----------\t-----------\t----\n")
	for i := 0; i < f.Len(); i++ {
		fmt.Fprintf(tw, "%d\t%.6f\t%.4f\t%.4f\t%.5g\n", i, f.At(i)/1e6, rv.At(i), ov.At(i), mean[i])
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

// meanSpectrum averages the finite pixels of every channel plane.
func meanSpectrum(c *cube.Cube) ([]float64, error) {
	axis, err := c.SpectralAxis()
	if err != nil {
		return nil, err
	}
	data := c.Data()
	shape := data.Shape()

	outer, inner := 1, 1
	for i, n := range shape {
		switch {
		case i < axis:
			outer *= n
		case i > axis:
			inner *= n
		}
	}

	nchan := shape[axis]
	plane := make([]float64, outer*inner)
	out := make([]float64, nchan)
	for ch := range out {
		for o := 0; o < outer; o++ {
			data.CopyTo(plane[o*inner:(o+1)*inner], (o*nchan+ch)*inner)
		}
		out[ch] = mapstats.Mean(plane)
	}
	return out, nil
}

func plotMeanSpectrum(c *cube.Cube, path string) error {
	mean, err := meanSpectrum(c)
	if err != nil {
		return err
	}

	x := make([]float64, len(mean))
	xlabel := "channel"
	if rv, err := c.RadioVelocities(); err == nil {
		copy(x, rv.Values)
		xlabel = "radio velocity (km/s)"
	} else {
		for i := range x {
			x[i] = float64(i)
		}
	}
	return render.Spectrum(x, mean, xlabel, "mean spectrum", path)
}
