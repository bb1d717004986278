// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.7.18
//

package goclk

import (
	"fmt"
	"time"

	"golang.org/x/exp/slices"
)

// Structure to store named rows of equal length (numeric or date-and-time values)
type Table struct {
	names []string               // Row names in insertion order
	fdat  map[string][]float64   // Numeric rows
	tdat  map[string][]time.Time // Date and time rows
	n     int                    // Number of columns (-1 until the first row is set)
}

// Constructor for the above structure
func NewTable() *Table {
	return &Table{
		names: []string{},
		fdat:  map[string][]float64{},
		tdat:  map[string][]time.Time{},
		n:     -1,
	}
}

// Check row length against the table and register the row name
func (p *Table) addName(name string, n int) error {
	if slices.Contains(p.names, name) {
		return fmt.Errorf("row %q already exists", name)
	}
	if p.n >= 0 && n != p.n {
		return fmt.Errorf("row %q has %d columns, table has %d", name, n, p.n)
	}
	p.n = n
	p.names = append(p.names, name)
	return nil
}

// Add a numeric row
func (p *Table) AddFloatRow(name string, vals []float64) error {
	if err := p.addName(name, len(vals)); err != nil {
		return err
	}
	v := make([]float64, len(vals))
	copy(v, vals)
	p.fdat[name] = v
	return nil
}

// Add a date and time row
func (p *Table) AddTimeRow(name string, vals []time.Time) error {
	if err := p.addName(name, len(vals)); err != nil {
		return err
	}
	v := make([]time.Time, len(vals))
	copy(v, vals)
	p.tdat[name] = v
	return nil
}

// Return a numeric row (nil if the name is unknown or not numeric)
func (p *Table) FloatRow(name string) []float64 {
	return p.fdat[name]
}

// Return a date and time row (nil if the name is unknown or not a time row)
func (p *Table) TimeRow(name string) []time.Time {
	return p.tdat[name]
}

// Return row names in insertion order
func (p *Table) Names() []string {
	s := make([]string, len(p.names))
	copy(s, p.names)
	return s
}

// Number of columns
func (p *Table) Len() int {
	if p.n < 0 {
		return 0
	}
	return p.n
}

// Number of rows
func (p *Table) NumRows() int {
	return len(p.names)
}

func (p *Table) String() string {
	str := ""
	for _, name := range p.names {
		str += fmt.Sprintf("%12s:", name)
		if v, ok := p.fdat[name]; ok {
			for _, a := range v {
				str += fmt.Sprintf(" %v", a)
			}
		} else {
			for _, a := range p.tdat[name] {
				str += fmt.Sprintf(" %s", a.UTC().Format("2006-01-02T15:04:05"))
			}
		}
		str += "\n"
	}
	return str
}
