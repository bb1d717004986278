// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.16
//

package goclk_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mkhts/goclk"
)

// Round trip: the interpolant evaluated at a sample time reproduces the
// sample bias. The last index is excluded, its one-sided window makes the
// finite difference leg of the snapshot degrade.
func TestClkRoundTrip(t *testing.T) {
	cd := loadShort(t)
	for _, sat := range cd.Sats() {
		c := cd[sat]
		if c.Len() == 0 {
			continue
		}
		for idx := 0; idx < c.Len()-1; idx++ {
			f, err := m.ExtractClk(c, idx, 10, m.CubicSpline)
			require.NoError(t, err)
			bias, _ := m.ClkSnapshot(f, c.Tym[idx], 0.5)
			assert.Less(t, m.C*math.Abs(bias-c.ClkBias[idx]), 1e-6,
				"%s idx=%d", sat, idx)
		}
	}
}

func TestClkRoundTripOtherMethods(t *testing.T) {
	cd := loadShort(t)
	c := cd["G05"]
	require.NotZero(t, c.Len())
	for _, method := range []m.InterpMethod{m.AkimaSpline, m.PiecewiseLinear, m.Polynomial} {
		for idx := 1; idx < c.Len()-1; idx++ {
			f, err := m.ExtractClk(c, idx, 10, method)
			require.NoError(t, err)
			assert.InDelta(t, c.ClkBias[idx], f.At(c.Tym[idx]), 1e-12,
				"%s idx=%d", method.String(), idx)
		}
	}
}

func TestExtractClkOutOfRange(t *testing.T) {
	cd := loadShort(t)
	c := cd["G15"]
	_, err := m.ExtractClk(c, -1, 10, m.CubicSpline)
	assert.Error(t, err)
	_, err = m.ExtractClk(c, c.Len(), 10, m.CubicSpline)
	assert.Error(t, err)
}

func TestExtractClkWindowClamp(t *testing.T) {
	cd := loadShort(t)
	c := cd["G15"]
	f, err := m.ExtractClk(c, 0, 10, m.CubicSpline)
	require.NoError(t, err)
	lo, hi := f.TimeSpan()
	assert.Equal(t, c.Tym[0], lo)
	assert.Equal(t, c.Tym[10], hi)
}

// Synthetic record with a given start time, interval and bias sequence
func newTestClk(sat m.SatType, start time.Time, intervalSec float64, bias []float64) *m.Clk {
	c := &m.Clk{Sat: sat}
	for i, b := range bias {
		ut := start.Add(time.Duration(float64(i) * intervalSec * float64(time.Second)))
		c.Tym = append(c.Tym, m.NewGTime(ut).MSec())
		c.ClkBias = append(c.ClkBias, b)
		c.UTCTime = append(c.UTCTime, ut)
	}
	return c
}

// A linear bias has a known drift; the centered difference must recover it
// in seconds per second even though tym is in milliseconds.
func TestClkSnapshotDrift(t *testing.T) {
	const rate = 1.0e-10 // [s/s]
	start := time.Date(2021, 4, 28, 18, 0, 0, 0, time.UTC)
	bias := make([]float64, 21)
	for i := range bias {
		bias[i] = -2.5e-4 + rate*float64(i)*30.0
	}
	c := newTestClk("G01", start, 30.0, bias)

	f, err := m.ExtractClk(c, 10, 10, m.CubicSpline)
	require.NoError(t, err)
	b, d := m.ClkSnapshot(f, c.Tym[10], 0.5)
	assert.InDelta(t, bias[10], b, 1e-18)
	assert.InDelta(t, rate, d, 1e-15)
}

func TestExtractClkSingleSample(t *testing.T) {
	start := time.Date(2021, 4, 28, 18, 0, 0, 0, time.UTC)
	c := newTestClk("R03", start, 30.0, []float64{-4.2e-05})
	f, err := m.ExtractClk(c, 0, 10, m.CubicSpline)
	require.NoError(t, err)
	assert.Equal(t, -4.2e-05, f.At(c.Tym[0]))
	assert.Equal(t, -4.2e-05, f.At(c.Tym[0]+12345))
}

func TestInterpMethodFlag(t *testing.T) {
	var v m.InterpMethod
	require.NoError(t, v.Set("akima"))
	assert.Equal(t, "AkimaSpline", v.String())
	require.NoError(t, v.Set("poly"))
	assert.Equal(t, "Polynomial", v.String())
	require.NoError(t, v.Set("CubicSpline"))
	assert.Equal(t, "CubicSpline", v.String())
	assert.Error(t, v.Set("nearest"))
}
