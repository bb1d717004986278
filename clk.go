// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.9
//

package goclk

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// RINEX clock file format 3.04 specification
// https://files.igs.org/pub/data/format/rinex_clock304.txt
//

// Record marker of satellite clock data lines ("AR" lines carry receiver clocks)
const clkMarker = "AS"

// Structure to store the clock time series of one satellite.
// Tym, ClkBias and UTCTime are aligned index-for-index and Tym is strictly
// increasing once ReadClk has returned. The slices are not modified by any
// function in this package after construction.
type Clk struct {
	Sat     SatType
	Tym     []float64   // Epoch time in milliseconds since the GPS epoch
	ClkBias []float64   // Satellite clock bias [s]
	UTCTime []time.Time // Epoch time as UTC date and time (display view of Tym)
}

// Number of epochs
func (p *Clk) Len() int {
	return len(p.Tym)
}

// Epoch time as GPS week and second
func (p *Clk) GTime(i int) *GTime {
	return NewGTimeMSec(p.Tym[i])
}

func (p *Clk) String() string {
	str := fmt.Sprintf("### Clk. for %s (%c, %d) epochs=%d\n", p.Sat, p.Sat.Sys(), p.Sat.Num(), p.Len())
	for i := range p.Tym {
		str += fmt.Sprintf("    %s  tym=%.1f  bias=%.12e\n",
			p.UTCTime[i].Format("2006-01-02T15:04:05.000"), p.Tym[i], p.ClkBias[i])
	}
	return str
}

// Return the time series as a named-row table
func (p *Clk) Table() *Table {
	t := NewTable()
	t.AddFloatRow("tym", p.Tym)
	t.AddFloatRow("clk_bias", p.ClkBias)
	t.AddTimeRow("utc_time", p.UTCTime)
	return t
}

// Clock data for all satellites in one file, keyed by satellite name
type ClkData map[SatType]*Clk

// Return satellite names sorted by system and number
func (p ClkData) Sats() []SatType {
	s := make([]SatType, 0, len(p))
	for k := range p {
		s = append(s, k)
	}
	return Sorted(s)
}

// Number of satellites belonging to one system
func (p ClkData) CountSys(sys SysType) int {
	n := 0
	for k := range p {
		if k.Sys() == sys {
			n++
		}
	}
	return n
}

// Extract HEADER LABEL string from file header line
func getHeaderLabel(l string) string {
	if len(l) < 60 {
		return ""
	}
	return strings.TrimSpace(l[60:])
}

// Read date and time from clock data record fields (year month day hour minute second)
func getClkTime(la []string) (time.Time, error) {
	var t time.Time
	year, err := strconv.ParseInt(la[0], 10, 0)
	if err != nil {
		return t, err
	}
	month, err := strconv.ParseInt(la[1], 10, 0)
	if err != nil {
		return t, err
	}
	day, err := strconv.ParseInt(la[2], 10, 0)
	if err != nil {
		return t, err
	}
	hour, err := strconv.ParseInt(la[3], 10, 0)
	if err != nil {
		return t, err
	}
	minute, err := strconv.ParseInt(la[4], 10, 0)
	if err != nil {
		return t, err
	}
	sec, err := strconv.ParseFloat(la[5], 64)
	if err != nil {
		return t, err
	}
	isec := math.Floor(sec)
	nsec := int64(math.Round((sec - isec) * 1e9))
	return time.Date(int(year), time.Month(month), int(day), int(hour), int(minute), int(isec), int(nsec), time.UTC), nil
}

// One clock record during reading, before per-satellite sorting
type clkRec struct {
	tym  float64
	bias float64
	utc  time.Time
}

// Read satellite name, epoch and bias from one clock data line
func getClkData(l string) (SatType, clkRec, error) {
	var rec clkRec
	la := strings.Fields(l)
	if len(la) < 10 {
		return "", rec, fmt.Errorf("not enough fields in clock data line: %s (%d)", l, len(la))
	}
	if len(la[1]) < 2 {
		return "", rec, fmt.Errorf("invalid satellite name %q", la[1])
	}
	sys := SysType(la[1][0])
	if !sys.IsValid() {
		return "", rec, fmt.Errorf("unknown satellite system, '%c'", sys)
	}
	num, err := strconv.Atoi(la[1][1:])
	if err != nil {
		return "", rec, fmt.Errorf("invalid satellite number in %q", la[1])
	}
	sat := SatType(fmt.Sprintf("%c%02d", sys, num))
	t, err := getClkTime(la[2:8])
	if err != nil {
		return "", rec, err
	}
	// Number of data values that follow; only checked for shape
	if _, err := strconv.ParseInt(la[8], 10, 0); err != nil {
		return "", rec, err
	}
	// First value is the clock bias [s]. A second value, when present, is the
	// bias sigma and is not used here.
	bias, err := strconv.ParseFloat(la[9], 64)
	if err != nil {
		return "", rec, err
	}
	rec = clkRec{
		tym:  NewGTime(t).MSec(),
		bias: bias,
		utc:  t,
	}
	return sat, rec, nil
}

// Read clock data.
// Data lines are appended per satellite in file order, then sorted by time.
// Duplicated epochs within one satellite keep the value seen last in the file.
// Malformed data lines are skipped and reported via PrintD; they never yield
// a partial record. A file with no data lines yields an empty ClkData.
func ReadClk(r io.Reader) (ClkData, error) {

	// Temporarily store records per satellite in file order
	m := map[SatType][]clkRec{}

	// Reader to read line by line with newline as delimiter
	s := bufio.NewScanner(r)

	// Read line by line
	for s.Scan() {

		// Read line
		line := s.Text()

		// Check version and file type if the header carries them
		if getHeaderLabel(line) == "RINEX VERSION / TYPE" {
			la := strings.Fields(line[:60])
			if len(la) < 2 || la[1][:1] != "C" {
				return nil, fmt.Errorf("not a clock data file (l=%s)", line)
			}
			continue
		}

		// Satellite clock data lines start with the "AS" marker.
		// Everything else (header, comments, "AR" receiver records) is skipped.
		if !strings.HasPrefix(line, clkMarker+" ") {
			continue
		}
		sat, rec, err := getClkData(line)
		if err != nil {
			PrintD(2, "getClkData() failed. err=%s\n", err.Error())
			continue
		}
		m[sat] = append(m[sat], rec)
	}

	// Check if reading completed without error
	if err := s.Err(); err != nil {
		return nil, err
	}

	// Sort each satellite by time, resolve duplicated epochs, build records
	cd := ClkData{}
	for sat, recs := range m {
		sort.SliceStable(recs, func(i, j int) bool {
			return recs[i].tym < recs[j].tym
		})
		c := &Clk{
			Sat:     sat,
			Tym:     make([]float64, 0, len(recs)),
			ClkBias: make([]float64, 0, len(recs)),
			UTCTime: make([]time.Time, 0, len(recs)),
		}
		for _, a := range recs {
			if n := c.Len(); n > 0 && c.Tym[n-1] == a.tym { // Last-seen record wins
				c.ClkBias[n-1] = a.bias
				c.UTCTime[n-1] = a.utc
				continue
			}
			c.Tym = append(c.Tym, a.tym)
			c.ClkBias = append(c.ClkBias, a.bias)
			c.UTCTime = append(c.UTCTime, a.utc)
		}
		cd[sat] = c
	}

	return cd, nil
}

// Read clock data from a file
func ParseClockFile(path string) (ClkData, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("empty path to clock file")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadClk(f)
}
