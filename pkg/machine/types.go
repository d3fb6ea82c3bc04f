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

package machine

import (
	"io"
)

// Condition holds exactly one of FLAG_POS, FLAG_ZERO or FLAG_NEG.
type Condition uint16

func (c Condition) String() string {
	switch c {
	case FLAG_POS:
		return "P"
	case FLAG_ZERO:
		return "Z"
	case FLAG_NEG:
		return "N"
	}

	return "?"
}

type RunState int

func (s RunState) String() string {
	switch s {
	case STATE_RUNNING:
		return "running"
	case STATE_HALTED:
		return "halted"
	case STATE_FAULTED:
		return "faulted"
	}

	return "unknown"
}

// Keyboard is the console input source.
type Keyboard interface {
	// Poll reports whether a byte can be read without blocking.
	Poll() (bool, error)

	// ReadByte consumes one byte, blocking until one is available.
	ReadByte() (byte, error)
}

// Display is the console output sink. If it also implements
// Flush() error, it is flushed after every output trap.
type Display interface {
	io.ByteWriter
}

type DeviceHandler struct {
	Keyboard Keyboard
	Display  Display
}

type MachineState struct {
	// R0 - R7
	Registers [8]uint16

	// Program counter
	Program uint16

	Condition Condition

	Run RunState
}

// MachineObserver is notified of every executed instruction and every data
// access made by the running program. Instruction fetches only show up as
// Step calls.
type MachineObserver interface {
	Step(pc uint16, ins Instruction)
	Read(addr uint16, value uint16)
	Write(addr uint16, value uint16)
}

type Machine struct {
	Devices  *DeviceHandler
	State    MachineState
	Memory   Memory
	Observer MachineObserver
}
