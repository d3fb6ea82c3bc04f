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

// Reset clears memory and registers and maps the attached devices. The
// program counter starts at MEMSPACE_USER.
func (mc *Machine) Reset() {
	mc.State.Reset()
	mc.Memory.Clear()

	kb := &keyboardDevice{}

	if mc.Devices != nil {
		kb.input = mc.Devices.Keyboard
	}

	mc.Memory.Map(DEV_KBSR, kb)
	mc.Memory.Map(DEV_KBDR, kb)
}

// Start sets the address of the first instruction to execute.
func (mc *Machine) Start(origin uint16) {
	mc.State.Program = origin
}

func (mc *Machine) read(addr uint16) (uint16, error) {
	value, err := mc.Memory.Read(addr)
	if err != nil {
		return 0, err
	}

	if mc.Observer != nil {
		mc.Observer.Read(addr, value)
	}

	return value, nil
}

func (mc *Machine) write(addr uint16, value uint16) {
	mc.Memory.Write(addr, value)

	if mc.Observer != nil {
		mc.Observer.Write(addr, value)
	}
}

func (mc *Machine) fault(addr uint16, word uint16, fetched bool, err error) error {
	mc.State.Run = STATE_FAULTED

	return &ErrFault{Address: addr, Word: word, Fetched: fetched, Err: err}
}

// Step fetches, decodes and executes a single instruction.
func (mc *Machine) Step() error {
	if mc.State.Run != STATE_RUNNING {
		return ErrNotRunning
	}

	pc := mc.State.Program

	// Fetches are not data reads, the observer only sees them through Step.
	instruction, err := mc.Memory.Read(pc)
	if err != nil {
		return mc.fault(pc, 0, false, err)
	}

	mc.State.Program++

	ins := Decode(instruction)

	if mc.Observer != nil {
		mc.Observer.Step(pc, ins)
	}

	if err := mc.execute(ins); err != nil {
		return mc.fault(pc, instruction, true, err)
	}

	return nil
}

// Run steps the machine until it halts or faults. A halt returns nil.
func (mc *Machine) Run() error {
	for mc.State.Run == STATE_RUNNING {
		if err := mc.Step(); err != nil {
			return err
		}
	}

	return nil
}

func (mc *Machine) execute(ins Instruction) error {
	switch ins := ins.(type) {
	case Add:
		return mc.add(ins)
	case And:
		return mc.and(ins)
	case Not:
		return mc.not(ins)
	case Branch:
		return mc.branch(ins)
	case Jump:
		return mc.jump(ins)
	case JumpSubroutine:
		return mc.jumpSubroutine(ins)
	case Load:
		return mc.load(ins)
	case LoadIndirect:
		return mc.loadIndirect(ins)
	case LoadRegister:
		return mc.loadRegister(ins)
	case LoadEffectiveAddress:
		return mc.loadEffectiveAddress(ins)
	case Store:
		return mc.store(ins)
	case StoreIndirect:
		return mc.storeIndirect(ins)
	case StoreRegister:
		return mc.storeRegister(ins)
	case Trap:
		return mc.trap(ins)
	case ReturnFromInterrupt, Reserved:
		return ErrIllegalOpcode
	}

	return ErrIllegalOpcode
}
