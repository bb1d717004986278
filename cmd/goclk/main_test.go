// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.26
//

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mkhts/goclk"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "goclk.yaml")
	require.NoError(t, os.WriteFile(fn, []byte(body), 0644))
	return fn
}

// The systems and satellites filters from the configuration file must reach
// the parsed options when no -sys/-sat flag is given.
func TestParseArgsConfigFilters(t *testing.T) {
	defer func() { m.DBG_ = 0 }()
	fn := writeConfig(t, `
clk_file: in.clk
systems: [R]
sats: [R08]
`)
	a, err := parseArgs([]string{"-c", fn})
	require.NoError(t, err)
	assert.Equal(t, m.SysVar{'R'}, a.sys)
	assert.Equal(t, m.SatVar{"R08"}, a.sats)
	assert.Equal(t, "in.clk", a.cfg.ClkFile)
}

// Command line flags win over the configuration file
func TestParseArgsFlagsOverrideConfig(t *testing.T) {
	defer func() { m.DBG_ = 0 }()
	fn := writeConfig(t, `
clk_file: in.clk
systems: [R]
method: akima
window: 5
hstep: 1.0
`)
	a, err := parseArgs([]string{"-c", fn, "-sys", "G", "-m", "poly", "-w", "3", "-hstep", "0.25", "other.clk"})
	require.NoError(t, err)
	assert.Equal(t, m.SysVar{'G'}, a.sys)
	assert.Equal(t, "Polynomial", a.cfg.Method)
	assert.Equal(t, 3, a.cfg.Window)
	assert.Equal(t, 0.25, a.cfg.HStep)
	assert.Equal(t, "other.clk", a.cfg.ClkFile)
}

// An explicit -x 0 silences a config-set debug level like any other override
func TestParseArgsDebugOverride(t *testing.T) {
	defer func() { m.DBG_ = 0 }()
	fn := writeConfig(t, "clk_file: in.clk\ndebug: 2\n")

	_, err := parseArgs([]string{"-c", fn})
	require.NoError(t, err)
	assert.Equal(t, 2, m.DBG_)

	a, err := parseArgs([]string{"-c", fn, "-x", "0"})
	require.NoError(t, err)
	assert.Equal(t, 0, a.cfg.Debug)
	assert.Equal(t, 0, m.DBG_)
}

func TestParseArgsDefaults(t *testing.T) {
	defer func() { m.DBG_ = 0 }()
	a, err := parseArgs([]string{"in.clk"})
	require.NoError(t, err)
	assert.Equal(t, m.SysVar{'G', 'J', 'E', 'R', 'C'}, a.sys)
	assert.Empty(t, a.sats)
	assert.Equal(t, "spline", a.cfg.Method)
	assert.Equal(t, 10, a.cfg.Window)
	assert.True(t, a.qt.IsZero())
}

func TestParseArgsMissingFile(t *testing.T) {
	_, err := parseArgs([]string{})
	assert.Error(t, err)
}
