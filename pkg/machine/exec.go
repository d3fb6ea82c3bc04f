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

// Handlers see State.Program after the fetch increment.

func (mc *Machine) add(ins Add) error {
	st := &mc.State
	st.set(ins.Dest, st.Registers[ins.Src1]+st.operand(ins.Immediate, ins.Imm, ins.Src2))
	return nil
}

func (mc *Machine) and(ins And) error {
	st := &mc.State
	st.set(ins.Dest, st.Registers[ins.Src1]&st.operand(ins.Immediate, ins.Imm, ins.Src2))
	return nil
}

func (mc *Machine) not(ins Not) error {
	mc.State.set(ins.Dest, ^mc.State.Registers[ins.Src])
	return nil
}

func (mc *Machine) branch(ins Branch) error {
	if ins.Flags&mc.State.Condition != 0 {
		mc.State.Program += ins.Offset
	}

	return nil
}

func (mc *Machine) jump(ins Jump) error {
	mc.State.Program = mc.State.Registers[ins.Base]
	return nil
}

func (mc *Machine) jumpSubroutine(ins JumpSubroutine) error {
	// Read the base first, JSRR R7 jumps to the old R7.
	target := mc.State.Registers[ins.Base]

	mc.State.Registers[7] = mc.State.Program

	if ins.Relative {
		mc.State.Program += ins.Offset
	} else {
		mc.State.Program = target
	}

	return nil
}

func (mc *Machine) load(ins Load) error {
	value, err := mc.read(mc.State.Program + ins.Offset)
	if err != nil {
		return err
	}

	mc.State.set(ins.Dest, value)
	return nil
}

func (mc *Machine) loadIndirect(ins LoadIndirect) error {
	addr, err := mc.read(mc.State.Program + ins.Offset)
	if err != nil {
		return err
	}

	value, err := mc.read(addr)
	if err != nil {
		return err
	}

	mc.State.set(ins.Dest, value)
	return nil
}

func (mc *Machine) loadRegister(ins LoadRegister) error {
	value, err := mc.read(mc.State.Registers[ins.Base] + ins.Offset)
	if err != nil {
		return err
	}

	mc.State.set(ins.Dest, value)
	return nil
}

func (mc *Machine) loadEffectiveAddress(ins LoadEffectiveAddress) error {
	mc.State.set(ins.Dest, mc.State.Program+ins.Offset)
	return nil
}

func (mc *Machine) store(ins Store) error {
	mc.write(mc.State.Program+ins.Offset, mc.State.Registers[ins.Src])
	return nil
}

func (mc *Machine) storeIndirect(ins StoreIndirect) error {
	addr, err := mc.read(mc.State.Program + ins.Offset)
	if err != nil {
		return err
	}

	mc.write(addr, mc.State.Registers[ins.Src])
	return nil
}

func (mc *Machine) storeRegister(ins StoreRegister) error {
	mc.write(mc.State.Registers[ins.Base]+ins.Offset, mc.State.Registers[ins.Src])
	return nil
}
