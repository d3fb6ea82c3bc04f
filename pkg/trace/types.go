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

// Package trace reports what a running machine does through a logrus logger.
package trace

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/lassandro/lc3vm/pkg/encoding"
	"github.com/lassandro/lc3vm/pkg/translate"
)

var f = translate.From

var ErrWatchpoint = errors.New(f("invalid watchpoint"))

type WatchpointType uint

const (
	ReadWatch WatchpointType = 1 << iota
	WriteWatch

	AccessWatch = ReadWatch | WriteWatch
)

func (wt WatchpointType) String() string {
	switch wt {
	case ReadWatch:
		return "r"
	case WriteWatch:
		return "w"
	case AccessWatch:
		return "rw"
	}

	return "?"
}

type Watchpoint struct {
	Addr uint16
	Type WatchpointType
}

// ParseWatchpoint accepts 0xADDR optionally followed by :r, :w or :rw. A bare
// address watches both reads and writes.
func ParseWatchpoint(s string) (Watchpoint, error) {
	addr, kind, found := strings.Cut(s, ":")

	value, err := encoding.DecodeHex(addr)
	if err != nil {
		return Watchpoint{}, errors.Join(ErrWatchpoint, err)
	}

	wp := Watchpoint{Addr: value, Type: AccessWatch}

	if !found {
		return wp, nil
	}

	switch strings.ToLower(kind) {
	case "r":
		wp.Type = ReadWatch
	case "w":
		wp.Type = WriteWatch
	case "rw", "wr":
		wp.Type = AccessWatch
	default:
		return Watchpoint{}, ErrWatchpoint
	}

	return wp, nil
}

// Tracer implements machine.MachineObserver.
type Tracer struct {
	Log logrus.FieldLogger

	// Log every executed instruction at debug level.
	Instructions bool

	Watchpoints []Watchpoint
}
