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
	"fmt"
)

type trapRoutine func(mc *Machine) error

var trapTable map[uint16]trapRoutine

func init() {
	trapTable = map[uint16]trapRoutine{
		TRAP_GETC:  (*Machine).trapGetc,
		TRAP_OUT:   (*Machine).trapOut,
		TRAP_PUTS:  (*Machine).trapPuts,
		TRAP_IN:    (*Machine).trapIn,
		TRAP_PUTSP: (*Machine).trapPutsp,
		TRAP_HALT:  (*Machine).trapHalt,
	}
}

func (mc *Machine) trap(ins Trap) error {
	routine, ok := trapTable[ins.Vector]
	if !ok {
		return fmt.Errorf("%w %#02x", ErrUnknownTrap, ins.Vector)
	}

	mc.State.Registers[7] = mc.State.Program

	return routine(mc)
}

func (mc *Machine) keyboard() (Keyboard, error) {
	if mc.Devices == nil || mc.Devices.Keyboard == nil {
		return nil, &ErrDevice{Device: "keyboard", Err: ErrNoDevice}
	}

	return mc.Devices.Keyboard, nil
}

func (mc *Machine) getc() (byte, error) {
	kb, err := mc.keyboard()
	if err != nil {
		return 0, err
	}

	key, err := kb.ReadByte()
	if err != nil {
		return 0, &ErrDevice{Device: "keyboard", Err: err}
	}

	return key, nil
}

func (mc *Machine) putc(c byte) error {
	if mc.Devices == nil || mc.Devices.Display == nil {
		return &ErrDevice{Device: "display", Err: ErrNoDevice}
	}

	if err := mc.Devices.Display.WriteByte(c); err != nil {
		return &ErrDevice{Device: "display", Err: err}
	}

	return nil
}

func (mc *Machine) flush() error {
	if mc.Devices == nil {
		return nil
	}

	flusher, ok := mc.Devices.Display.(interface{ Flush() error })
	if !ok {
		return nil
	}

	if err := flusher.Flush(); err != nil {
		return &ErrDevice{Device: "display", Err: err}
	}

	return nil
}

func (mc *Machine) trapGetc() error {
	key, err := mc.getc()
	if err != nil {
		return err
	}

	mc.State.Registers[0] = uint16(key)

	return nil
}

func (mc *Machine) trapOut() error {
	if err := mc.putc(byte(mc.State.Registers[0])); err != nil {
		return err
	}

	return mc.flush()
}

func (mc *Machine) trapPuts() error {
	for addr := mc.State.Registers[0]; ; addr++ {
		c, err := mc.read(addr)
		if err != nil {
			return err
		}

		if c == 0 {
			break
		}

		if err := mc.putc(byte(c)); err != nil {
			return err
		}
	}

	return mc.flush()
}

func (mc *Machine) trapIn() error {
	for _, c := range []byte(IN_PROMPT) {
		if err := mc.putc(c); err != nil {
			return err
		}
	}

	if err := mc.flush(); err != nil {
		return err
	}

	key, err := mc.getc()
	if err != nil {
		return err
	}

	if err := mc.putc(key); err != nil {
		return err
	}

	mc.State.Registers[0] = uint16(key)

	return mc.flush()
}

func (mc *Machine) trapPutsp() error {
	for addr := mc.State.Registers[0]; ; addr++ {
		c, err := mc.read(addr)
		if err != nil {
			return err
		}

		if c == 0 {
			break
		}

		if err := mc.putc(byte(c & 0xFF)); err != nil {
			return err
		}

		if c>>8 != 0 {
			if err := mc.putc(byte(c >> 8)); err != nil {
				return err
			}
		}
	}

	return mc.flush()
}

func (mc *Machine) trapHalt() error {
	mc.State.Run = STATE_HALTED

	return nil
}
