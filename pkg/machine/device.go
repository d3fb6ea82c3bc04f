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

// keyboardDevice backs DEV_KBSR and DEV_KBDR. Reading the status register
// polls the input and refreshes both registers together.
type keyboardDevice struct {
	input  Keyboard
	status uint16
	data   uint16
}

var _ Region = (*keyboardDevice)(nil)

func (kb *keyboardDevice) poll() error {
	if kb.input == nil {
		kb.status = 0
		return nil
	}

	ready, err := kb.input.Poll()
	if err != nil {
		return &ErrDevice{Device: "keyboard", Err: err}
	}

	if !ready {
		kb.status = 0
		return nil
	}

	key, err := kb.input.ReadByte()
	if err != nil {
		return &ErrDevice{Device: "keyboard", Err: err}
	}

	kb.status = 1 << 15
	kb.data = uint16(key)

	return nil
}

func (kb *keyboardDevice) Load(addr uint16) (uint16, error) {
	if addr == DEV_KBSR {
		if err := kb.poll(); err != nil {
			return 0, err
		}
	}

	return kb.Peek(addr), nil
}

func (kb *keyboardDevice) Peek(addr uint16) uint16 {
	switch addr {
	case DEV_KBSR:
		return kb.status
	case DEV_KBDR:
		return kb.data
	}

	return 0
}

func (kb *keyboardDevice) Store(addr uint16, value uint16) {
	switch addr {
	case DEV_KBSR:
		kb.status = value
	case DEV_KBDR:
		kb.data = value
	}
}
