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
	"errors"

	"github.com/lassandro/lc3vm/pkg/translate"
)

var f = translate.From

var (
	ErrIllegalOpcode = errors.New(f("illegal opcode"))
	ErrUnknownTrap   = errors.New(f("unknown trap vector"))
	ErrNotRunning    = errors.New(f("machine is not running"))
	ErrNoDevice      = errors.New(f("device not attached"))
)

// ErrDevice is an I/O failure of a console collaborator.
type ErrDevice struct {
	Device string
	Err    error
}

func (err *ErrDevice) Error() string {
	return f("%v: %v", err.Device, err.Err)
}

func (err *ErrDevice) Unwrap() error {
	return err.Err
}

// ErrFault stops the machine. Address is the location of the instruction
// that faulted, Word its encoding. Fetched is false when the instruction
// itself could not be read, Word is meaningless then.
type ErrFault struct {
	Address uint16
	Word    uint16
	Fetched bool
	Err     error
}

func (err *ErrFault) Error() string {
	if !err.Fetched {
		return f("fault fetching %#04x: %v", err.Address, err.Err)
	}

	return f(
		"fault at %#04x [%#04x %v]: %v",
		err.Address, err.Word, Decode(err.Word), err.Err,
	)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}
