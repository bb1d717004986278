// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.26
//

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/exp/slices"

	m "github.com/mkhts/goclk"
)

func main() {

	// Parse command line arguments
	args, err := parseArgs(os.Args[1:])
	if err != nil {
		if err != flag.ErrHelp {
			m.PrintE(err)
		}
		os.Exit(1)
	}

	// Run the main application
	if err := runApplication(args); err != nil {
		m.PrintE(err)
		os.Exit(1)
	}
}

// Main application processing
func runApplication(args cmdOpt) error {

	// Load the clock file
	cd, err := m.ParseClockFile(args.cfg.ClkFile)
	if err != nil {
		return fmt.Errorf("failed to read clock file: %w", err)
	}

	if m.DBG_ >= 1 {
		m.PrintA("--- clk data (%s): %d satellites ---\n", filepath.Base(args.cfg.ClkFile), len(cd))
	}

	// Interpolation method from configuration
	var method m.InterpMethod
	if err := method.Set(args.cfg.Method); err != nil {
		return err
	}

	// Process each satellite
	for _, sat := range cd.Sats() {
		if !shouldProcessSat(sat, args) {
			continue
		}
		if err := processSatellite(cd[sat], method, args); err != nil {
			m.PrintE(err)
			continue
		}
	}

	return nil
}

// Filter satellites by system and name
func shouldProcessSat(sat m.SatType, args cmdOpt) bool {
	if !args.sys.Contains(sat.Sys()) {
		return false
	}
	if len(args.sats) > 0 && !slices.Contains(args.sats, sat) {
		return false
	}
	return true
}

// Print the summary of one satellite and, when a query time is given,
// the interpolated clock bias and drift
func processSatellite(c *m.Clk, method m.InterpMethod, args cmdOpt) error {

	if c.Len() == 0 {
		fmt.Printf("%s  no data\n", c.Sat)
		return nil
	}
	fmt.Printf("%s  epochs=%3d  %s - %s\n", c.Sat, c.Len(),
		c.UTCTime[0].Format("2006-01-02T15:04:05"),
		c.UTCTime[c.Len()-1].Format("2006-01-02T15:04:05"))

	if m.DBG_ >= 2 {
		m.PrintA("%s", c.Table().String())
	}

	// No query time given
	if args.qt.IsZero() {
		return nil
	}

	// Interpolate at the query time around the nearest epoch
	qms := m.NewGTime(args.qt).MSec()
	idx := nearestIdx(c.Tym, qms)
	if m.DBG_ >= 1 {
		m.PrintB(*c.GTime(idx), "%s nearest idx=%d window=%d method=%s\n",
			c.Sat, idx, args.cfg.Window, method.String())
	}
	f, err := m.ExtractClk(c, idx, args.cfg.Window, method)
	if err != nil {
		return err
	}
	bias, drift := m.ClkSnapshot(f, qms, args.cfg.HStep)
	fmt.Printf("    %s  bias=%.12e s (%.4f m)  drift=%.6e s/s\n",
		args.qt.Format("2006-01-02T15:04:05.000"), bias, m.C*bias, drift)
	return nil
}

// Index of the epoch nearest to t
func nearestIdx(tym []float64, t float64) int {
	i := sort.SearchFloat64s(tym, t)
	if i == len(tym) {
		return i - 1
	}
	if i > 0 && t-tym[i-1] < tym[i]-t {
		return i - 1
	}
	return i
}

// Structure to hold command line argument information
type cmdOpt struct {
	cfg  *m.Config
	sys  m.SysVar
	sats m.SatVar
	qt   time.Time
}

// Parse command line arguments
func parseArgs(argv []string) (a cmdOpt, err error) {
	fs := flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ContinueOnError)
	fs.Usage = func() {
		m.PrintA(`
[Usage]
	%s [Options] clock_file.clk

[Options]
`, fs.Name())
		fs.PrintDefaults()
	}
	cfg := m.DefaultConfig()
	var cfgFn string
	fs.StringVar(&cfgFn, "c", "", "Run configuration file (YAML). Command line options override it.")
	fs.Var(&a.sys, "sys", "Satellite systems to process. G(GPS), J(QZSS), E(Galileo), R(Glonass), C(Beidou). Comma-separated without spaces. Default: G,J,E,R,C")
	fs.Var(&a.sats, "sat", "List of satellites to process. Comma-separated satellite names without spaces like G15,R08. Default: all.")
	var method m.InterpMethod
	fs.Var(&method, "m", "Interpolation method. spline, akima, linear or poly.")
	w := fs.Int("w", 0, "Number of samples on each side of the query index used to build the interpolant.")
	hstep := fs.Float64("hstep", 0, "Finite difference step for the drift estimate [ms].")
	var qt_ m.TimeStr
	fs.TextVar(&qt_, "t", m.NewTimeStr(time.Time{}), "Query epoch. Enclose in quotes like -t \"2021/04/28 18:02:00\". Omit to only print the file summary.")
	var dbg int
	fs.IntVar(&dbg, "x", 0, "Debug information display. Specify level value. 0(OFF), 1(display), 2(detailed display), 3(most detailed)")
	if err := fs.Parse(argv); err != nil {
		return a, err
	}

	if len(cfgFn) > 0 {
		cfg, err = m.LoadConfig(cfgFn)
		if err != nil {
			return a, err
		}
	}

	// Flags override the configuration file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "m":
			cfg.Method = method.String()
		case "w":
			cfg.Window = *w
		case "hstep":
			cfg.HStep = *hstep
		case "x":
			cfg.Debug = dbg
		}
	})
	if fs.NArg() == 1 {
		cfg.ClkFile = fs.Arg(0)
	}
	if len(cfg.ClkFile) == 0 {
		return a, fmt.Errorf("the clock file must be specified")
	}
	if cfg.Window < 1 {
		return a, fmt.Errorf("window must be >= 1 (window=%d)", cfg.Window)
	}
	if cfg.HStep <= 0 {
		return a, fmt.Errorf("hstep must be > 0 (hstep=%g)", cfg.HStep)
	}

	// Systems from the configuration unless given on the command line
	if len(a.sys) == 0 {
		for _, s := range cfg.Systems {
			a.sys = append(a.sys, m.SysType(s[0]))
		}
	}
	if len(a.sats) == 0 {
		for _, s := range cfg.Sats {
			a.sats = append(a.sats, m.SatType(s))
		}
	}

	a.cfg = cfg
	a.qt = time.Time(qt_)
	m.DBG_ = cfg.Debug
	return
}
