// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"github.com/sirupsen/logrus"

	"github.com/lassandro/lc3vm/pkg/encoding"
	"github.com/lassandro/lc3vm/pkg/trace"
)

type runCmd struct {
	Images   []string `arg:"" name:"image" help:"Program images, loaded in order."`
	Start    string   `name:"start" help:"Initial program counter as 0xADDR. Defaults to the origin of the first image."`
	Trace    bool     `name:"trace" help:"Log every executed instruction."`
	Watch    []string `name:"watch" help:"Log accesses to 0xADDR[:r|w|rw]. May be repeated."`
	Dump     bool     `name:"dump" help:"Print registers and memory around the PC when the machine stops."`
	NoRaw    bool     `name:"no-raw" help:"Leave the console in line-buffered mode."`
	LogLevel string   `name:"log-level" default:"warn" help:"Log level (panic, fatal, error, warn, info, debug, trace)."`
}

// config is the validated form of the command line.
type config struct {
	start       uint16
	hasStart    bool
	trace       bool
	watchpoints []trace.Watchpoint
	level       logrus.Level
}

func (r *runCmd) config() (config, error) {
	var cfg config

	level, err := logrus.ParseLevel(r.LogLevel)
	if err != nil {
		return cfg, err
	}

	if r.Start != "" {
		cfg.start, err = encoding.DecodeHex(r.Start)
		if err != nil {
			return cfg, err
		}
		cfg.hasStart = true
	}

	for _, arg := range r.Watch {
		wp, err := trace.ParseWatchpoint(arg)
		if err != nil {
			return cfg, err
		}
		cfg.watchpoints = append(cfg.watchpoints, wp)
	}

	// Trace and watch records must pass the level filter.
	if r.Trace && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}

	if len(cfg.watchpoints) > 0 && level < logrus.InfoLevel {
		level = logrus.InfoLevel
	}

	cfg.trace = r.Trace
	cfg.level = level

	return cfg, nil
}

func (cfg config) tracing() bool {
	return cfg.trace || len(cfg.watchpoints) > 0
}
