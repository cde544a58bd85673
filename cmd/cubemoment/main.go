// Command cubemoment computes a moment map of a FITS data cube and writes it
// as a FITS image.
//
// Usage:
//
//	cubemoment -config job.yaml
//	cubemoment [flags] -in cube.fits -out map.fits
//
// Examples:
//
//	cubemoment -in tile.fits -out m0.fits -vel -50,50
//	cubemoment -ebhis -in tile.fits -out m1.fits -kind 1 -vel -50,50 -smooth hanning:3 -preview m1.png
//	cubemoment -in tile.fits -out m0.fits -chan 100,200 -mask mask.fits
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cwbudde/algo-cube/cube"
	"github.com/cwbudde/algo-cube/fits"
	"github.com/cwbudde/algo-cube/internal/config"
	"github.com/cwbudde/algo-cube/internal/monitoring"
	"github.com/cwbudde/algo-cube/moment"
	"github.com/cwbudde/algo-cube/render"
	"github.com/cwbudde/algo-cube/stats/mapstats"
)

func main() {
	cfgPath := flag.String("config", "", "YAML job file; other job flags are ignored when set")
	in := flag.String("in", "", "input cube")
	out := flag.String("out", "", "output FITS map")
	kind := flag.Int("kind", 0, "moment order: 0 or 1")
	vel := flag.String("vel", "", "velocity range lo,hi")
	velUnit := flag.String("vunit", "km/s", "unit of -vel")
	chans := flag.String("chan", "", "channel range lo,hi")
	mask := flag.String("mask", "", "mask FITS file (plane or cube shaped)")
	dtype := flag.String("dtype", "float32", "data type: float32 or float64")
	ebhis := flag.Bool("ebhis", false, "apply the EBHIS header convention")
	smoothSpec := flag.String("smooth", "", "spectral smoothing kernel:width, e.g. hanning:3")
	preview := flag.String("preview", "", "save a preview image of the map")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cubemoment -config job.yaml\n")
		fmt.Fprintf(os.Stderr, "       cubemoment [flags] -in cube.fits -out map.fits\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "cubemoment", Level: log.InfoLevel})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}
	monitoring.SetLogger(logger)

	var (
		job config.Job
		err error
	)
	if *cfgPath != "" {
		job, err = config.Load(*cfgPath)
	} else {
		job, err = jobFromFlags(*in, *out, *kind, *vel, *velUnit, *chans, *mask, *dtype, *ebhis, *smoothSpec, *preview)
	}
	if err != nil {
		logger.Error("invalid job", "err", err)
		os.Exit(2)
	}

	if err := run(job); err != nil {
		logger.Error("cubemoment failed", "err", err)
		os.Exit(1)
	}
}

func jobFromFlags(in, out string, kind int, vel, velUnit, chans, mask, dtype string, ebhis bool, smoothSpec, preview string) (config.Job, error) {
	job := config.Default()
	job.Input, job.Output = in, out
	job.Kind = kind
	job.Mask = mask
	job.DType = dtype
	job.Preview = preview
	job.VelocityUnit = velUnit
	if ebhis {
		job.Convention = "ebhis"
	}

	var err error
	if job.Velocity, err = parsePair(vel); err != nil {
		return config.Job{}, fmt.Errorf("-vel: %w", err)
	}
	if job.Channels, err = parsePair(chans); err != nil {
		return config.Job{}, fmt.Errorf("-chan: %w", err)
	}

	if smoothSpec != "" {
		name, width, ok := strings.Cut(smoothSpec, ":")
		job.Smooth.Kernel = name
		job.Smooth.Width = 3
		if ok {
			w, err := strconv.ParseFloat(width, 64)
			if err != nil {
				return config.Job{}, fmt.Errorf("-smooth: %w", err)
			}
			job.Smooth.Width = w
		}
	}

	return job, job.Validate()
}

func parsePair(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("want lo,hi, got %q", s)
	}
	out := make([]float64, 2)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func run(job config.Job) error {
	logger := monitoring.Logger()

	dtype, err := job.DTypeValue()
	if err != nil {
		return err
	}
	conv, err := job.ConventionValue()
	if err != nil {
		return err
	}
	c, err := cube.Open(job.Input, cube.WithDType(dtype), cube.WithConvention(conv))
	if err != nil {
		return err
	}
	logger.Info("loaded cube", "path", job.Input, "shape", c.Data().Shape())

	k, err := job.Kernel()
	if err != nil {
		return err
	}
	if k != nil {
		if c, err = c.Smooth(*k); err != nil {
			return err
		}
		logger.Info("smoothed spectra", "kernel", k.String())
	}

	var maskArr *fits.Array
	if job.Mask != "" {
		m, err := fits.Open(job.Mask)
		if err != nil {
			return err
		}
		maskArr = m.Data
	}

	r, err := job.Range()
	if err != nil {
		return err
	}
	kind := moment.Kind(job.Kind)
	m, err := c.Moment(r, kind, maskArr)
	if err != nil {
		return err
	}

	hdr, err := c.MapHeader(kind)
	if err != nil {
		return err
	}
	if err := fits.WriteFile(job.Output, &fits.HDU{Header: hdr, Data: m.Convert(dtype)}); err != nil {
		return err
	}

	s := mapstats.Calculate(m.Float64s())
	logger.Info("wrote moment map",
		"path", job.Output, "kind", kind, "range", r,
		"pixels", s.Count, "nan", s.NaNCount, "min", s.Min, "max", s.Max, "mean", s.Mean)

	if job.Preview != "" {
		title := fmt.Sprintf("%s moment of %s", kind, job.Input)
		if err := render.Map(m, title, job.Preview); err != nil {
			return err
		}
		logger.Info("saved preview", "path", job.Preview)
	}
	return nil
}
