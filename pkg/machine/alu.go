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

// Flags projects a value, read as two's-complement, onto its condition.
func Flags(value uint16) Condition {
	if value == 0 {
		return FLAG_ZERO
	} else if value>>15 == 1 {
		return FLAG_NEG
	}

	return FLAG_POS
}

func (ms *MachineState) Reset() {
	for i := range ms.Registers {
		ms.Registers[i] = 0x0000
	}

	ms.Program = MEMSPACE_USER
	ms.Condition = FLAG_ZERO
	ms.Run = STATE_RUNNING
}

// UpdateFlags sets the condition register from the current value of r.
func (ms *MachineState) UpdateFlags(r Register) {
	ms.Condition = Flags(ms.Registers[r])
}

func (ms *MachineState) set(r Register, value uint16) {
	ms.Registers[r] = value
	ms.UpdateFlags(r)
}

func (ms *MachineState) operand(immediate bool, imm uint16, src Register) uint16 {
	if immediate {
		return imm
	}

	return ms.Registers[src]
}
