// Copyright 2016 The Hal3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads the flat parameter file the controlling rank parses
// at startup (spec.md §6), the way gofem's inp package reads its own
// text-based input files via gosl/io.ReadFile -- but line-oriented ("key =
// value") rather than JSON, matching the original hale mini-app's
// params_filename format (see original_source/main.c's get_int_parameter /
// get_double_parameter calls).
package config

import (
	"strconv"
	"strings"

	"github.com/cpmech/gosl/io"
	"github.com/rocdat/hal3d/internal/herr"
)

// Params holds every key of spec.md §6's parameter table.
type Params struct {
	Iterations int
	MaxDt      float64
	SimEnd     float64
	Dt         float64

	Nx, Ny, Nz           int
	Width, Height, Depth float64

	ViscCoeff1, ViscCoeff2 float64

	PerformRemap bool
	VisitDump    bool

	TestsEnergy  float64
	TestsDensity float64
	HasTests     bool // both tests.* keys were present in the file
}

// required keys, and their destination setter. Dotted keys (tests.energy)
// are matched literally, the way the original parameter file names them.
type field struct {
	key      string
	required bool
	set      func(p *Params, v string) error
}

func atoiField(set func(p *Params, n int)) func(p *Params, v string) error {
	return func(p *Params, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		set(p, n)
		return nil
	}
}

func atofField(set func(p *Params, f float64)) func(p *Params, v string) error {
	return func(p *Params, v string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return err
		}
		set(p, f)
		return nil
	}
}

func aboolField(set func(p *Params, b bool)) func(p *Params, v string) error {
	return func(p *Params, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		set(p, n != 0)
		return nil
	}
}

var fields = []field{
	{"iterations", true, atoiField(func(p *Params, n int) { p.Iterations = n })},
	{"max_dt", true, atofField(func(p *Params, f float64) { p.MaxDt = f })},
	{"sim_end", true, atofField(func(p *Params, f float64) { p.SimEnd = f })},
	{"dt", true, atofField(func(p *Params, f float64) { p.Dt = f })},
	{"nx", true, atoiField(func(p *Params, n int) { p.Nx = n })},
	{"ny", true, atoiField(func(p *Params, n int) { p.Ny = n })},
	{"nz", true, atoiField(func(p *Params, n int) { p.Nz = n })},
	{"width", true, atofField(func(p *Params, f float64) { p.Width = f })},
	{"height", true, atofField(func(p *Params, f float64) { p.Height = f })},
	{"depth", true, atofField(func(p *Params, f float64) { p.Depth = f })},
	{"visc_coeff1", true, atofField(func(p *Params, f float64) { p.ViscCoeff1 = f })},
	{"visc_coeff2", true, atofField(func(p *Params, f float64) { p.ViscCoeff2 = f })},
	{"perform_remap", true, aboolField(func(p *Params, b bool) { p.PerformRemap = b })},
	{"visit_dump", true, aboolField(func(p *Params, b bool) { p.VisitDump = b })},
	{"tests.energy", false, atofField(func(p *Params, f float64) { p.TestsEnergy = f })},
	{"tests.density", false, atofField(func(p *Params, f float64) { p.TestsDensity = f })},
}

// Read parses path and returns Params, raising herr.ConfigMissing for any
// absent required key. Blank lines and lines starting with '#' are ignored.
func Read(path string) (*Params, error) {
	b, err := io.ReadFile(path)
	if err != nil {
		return nil, herr.New(herr.ConfigMissing, "config.Read", "cannot read %q: %v", path, err)
	}
	raw := parseLines(string(b))

	p := &Params{}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		v, ok := raw[f.key]
		if !ok {
			if f.required {
				return nil, herr.New(herr.ConfigMissing, "config.Read", "missing required key %q", f.key)
			}
			continue
		}
		if err := f.set(p, v); err != nil {
			return nil, herr.New(herr.ConfigMissing, "config.Read", "key %q: %v", f.key, err)
		}
		seen[f.key] = true
	}
	p.HasTests = seen["tests.energy"] && seen["tests.density"]
	return p, nil
}

// parseLines splits raw "key = value" text into a lookup map, skipping
// blank lines and '#' comments.
func parseLines(text string) map[string]string {
	out := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(line[:eq])
		val := strings.TrimSpace(line[eq+1:])
		out[key] = val
	}
	return out
}
