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

	"github.com/lassandro/lc3vm/pkg/encoding"
)

type Opcode uint16

var opcodeNames = [16]string{
	OP_BR:   "BR",
	OP_ADD:  "ADD",
	OP_LD:   "LD",
	OP_ST:   "ST",
	OP_JSR:  "JSR",
	OP_AND:  "AND",
	OP_LDR:  "LDR",
	OP_STR:  "STR",
	OP_RTI:  "RTI",
	OP_NOT:  "NOT",
	OP_LDI:  "LDI",
	OP_STI:  "STI",
	OP_JMP:  "JMP",
	OP_RES:  "RES",
	OP_LEA:  "LEA",
	OP_TRAP: "TRAP",
}

func (op Opcode) String() string {
	return opcodeNames[op&0xF]
}

// Register selects one of R0 - R7.
type Register uint8

func (r Register) String() string {
	return fmt.Sprintf("R%d", r)
}

// Instruction is a decoded instruction word. Offsets and immediates held by
// the concrete types are already sign extended to 16 bits.
type Instruction interface {
	Opcode() Opcode
	String() string
}

type Add struct {
	Dest, Src1, Src2 Register
	Immediate        bool
	Imm              uint16
}

type And struct {
	Dest, Src1, Src2 Register
	Immediate        bool
	Imm              uint16
}

type Not struct {
	Dest, Src Register
}

type Branch struct {
	Flags  Condition
	Offset uint16
}

type Jump struct {
	Base Register
}

type JumpSubroutine struct {
	Relative bool
	Base     Register
	Offset   uint16
}

type Load struct {
	Dest   Register
	Offset uint16
}

type LoadIndirect struct {
	Dest   Register
	Offset uint16
}

type LoadRegister struct {
	Dest, Base Register
	Offset     uint16
}

type LoadEffectiveAddress struct {
	Dest   Register
	Offset uint16
}

type Store struct {
	Src    Register
	Offset uint16
}

type StoreIndirect struct {
	Src    Register
	Offset uint16
}

type StoreRegister struct {
	Src, Base Register
	Offset    uint16
}

type Trap struct {
	Vector uint16
}

type ReturnFromInterrupt struct {
	Word uint16
}

type Reserved struct {
	Word uint16
}

func dest(word uint16) Register {
	return Register((word >> 9) & 0x7)
}

func base(word uint16) Register {
	return Register((word >> 6) & 0x7)
}

func pcoffset9(word uint16) uint16 {
	return encoding.SignExtend(word&0x1FF, 9)
}

// Decode splits an instruction word into its opcode and operand fields.
// Every word decodes; RTI and RES only fail once executed.
func Decode(word uint16) Instruction {
	switch Opcode(word >> 12) {
	// ADD  |0001    |DR   |SR1  |0|00 |SR2   | Register  addition
	// ADD  |0001    |DR   |SR1  |1|imm5      | Immediate addition
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_ADD:
		return Add{
			Dest:      dest(word),
			Src1:      base(word),
			Src2:      Register(word & 0x7),
			Immediate: (word>>5)&0x1 == 1,
			Imm:       encoding.SignExtend(word&0x1F, 5),
		}

	// AND  |0101    |DR   |SR1  |0|00 |SR2   | Register  bitwise
	// AND  |0101    |DR   |SR1  |1|imm5      | Immediate bitwise
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_AND:
		return And{
			Dest:      dest(word),
			Src1:      base(word),
			Src2:      Register(word & 0x7),
			Immediate: (word>>5)&0x1 == 1,
			Imm:       encoding.SignExtend(word&0x1F, 5),
		}

	// NOT  |1001    |DR   |SR   |1|11111     | Bitwise complement
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_NOT:
		return Not{Dest: dest(word), Src: base(word)}

	// BR   |0000    |N|Z|P|PCoffset9         | Conditional branch
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_BR:
		return Branch{
			Flags:  Condition((word >> 9) & 0x7),
			Offset: pcoffset9(word),
		}

	// JMP  |1100    |000  |BaseR|000000      | Jump
	// RET  |1100    |000  |111  |000000      | Return
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_JMP:
		return Jump{Base: base(word)}

	// JSR  |0100    |1|PCoffset11            | Jump to subroutine
	// JSRR |0100    |0|00 |BaseR|000000      | Jump to subroutine register
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_JSR:
		return JumpSubroutine{
			Relative: (word>>11)&0x1 == 1,
			Base:     base(word),
			Offset:   encoding.SignExtend(word&0x7FF, 11),
		}

	// LD   |0010    |DR   |PCoffset9         | Load
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LD:
		return Load{Dest: dest(word), Offset: pcoffset9(word)}

	// LDI  |1010    |DR   |PCoffset9         | Load indirect
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LDI:
		return LoadIndirect{Dest: dest(word), Offset: pcoffset9(word)}

	// LDR  |0110    |DR   |BaseR|offset6     | Load base+offset
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LDR:
		return LoadRegister{
			Dest:   dest(word),
			Base:   base(word),
			Offset: encoding.SignExtend(word&0x3F, 6),
		}

	// LEA  |1110    |DR   |PCoffset9         | Load effective address
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LEA:
		return LoadEffectiveAddress{Dest: dest(word), Offset: pcoffset9(word)}

	// ST   |0011    |SR   |PCoffset9         | Store
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_ST:
		return Store{Src: dest(word), Offset: pcoffset9(word)}

	// STI  |1011    |SR   |PCoffset9         | Store indirect
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_STI:
		return StoreIndirect{Src: dest(word), Offset: pcoffset9(word)}

	// STR  |0111    |SR   |BaseR|offset6     | Store base+offset
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_STR:
		return StoreRegister{
			Src:    dest(word),
			Base:   base(word),
			Offset: encoding.SignExtend(word&0x3F, 6),
		}

	// TRAP |1111    |0000   |trapvect8       | System call
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_TRAP:
		return Trap{Vector: word & 0xFF}

	// RTI  |1000    |000000000000            | Return from interrupt
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_RTI:
		return ReturnFromInterrupt{Word: word}

	// RES  |1101    |                        | Reserved (illegal)
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	default:
		return Reserved{Word: word}
	}
}

func (Add) Opcode() Opcode                  { return OP_ADD }
func (And) Opcode() Opcode                  { return OP_AND }
func (Not) Opcode() Opcode                  { return OP_NOT }
func (Branch) Opcode() Opcode               { return OP_BR }
func (Jump) Opcode() Opcode                 { return OP_JMP }
func (JumpSubroutine) Opcode() Opcode       { return OP_JSR }
func (Load) Opcode() Opcode                 { return OP_LD }
func (LoadIndirect) Opcode() Opcode         { return OP_LDI }
func (LoadRegister) Opcode() Opcode         { return OP_LDR }
func (LoadEffectiveAddress) Opcode() Opcode { return OP_LEA }
func (Store) Opcode() Opcode                { return OP_ST }
func (StoreIndirect) Opcode() Opcode        { return OP_STI }
func (StoreRegister) Opcode() Opcode        { return OP_STR }
func (Trap) Opcode() Opcode                 { return OP_TRAP }
func (ReturnFromInterrupt) Opcode() Opcode  { return OP_RTI }
func (Reserved) Opcode() Opcode             { return OP_RES }

func operand(immediate bool, imm uint16, src Register) string {
	if immediate {
		return fmt.Sprintf("#%d", encoding.Signed(imm))
	}

	return src.String()
}

func offset(value uint16) string {
	return fmt.Sprintf("#%d", encoding.Signed(value))
}

func (ins Add) String() string {
	return fmt.Sprintf(
		"ADD %v, %v, %v", ins.Dest, ins.Src1,
		operand(ins.Immediate, ins.Imm, ins.Src2),
	)
}

func (ins And) String() string {
	return fmt.Sprintf(
		"AND %v, %v, %v", ins.Dest, ins.Src1,
		operand(ins.Immediate, ins.Imm, ins.Src2),
	)
}

func (ins Not) String() string {
	return fmt.Sprintf("NOT %v, %v", ins.Dest, ins.Src)
}

func (ins Branch) String() string {
	name := "BR"

	if ins.Flags&FLAG_NEG != 0 {
		name += "n"
	}
	if ins.Flags&FLAG_ZERO != 0 {
		name += "z"
	}
	if ins.Flags&FLAG_POS != 0 {
		name += "p"
	}

	if ins.Flags == 0 {
		return "NOP"
	}

	return fmt.Sprintf("%s %s", name, offset(ins.Offset))
}

func (ins Jump) String() string {
	if ins.Base == 7 {
		return "RET"
	}

	return fmt.Sprintf("JMP %v", ins.Base)
}

func (ins JumpSubroutine) String() string {
	if ins.Relative {
		return fmt.Sprintf("JSR %s", offset(ins.Offset))
	}

	return fmt.Sprintf("JSRR %v", ins.Base)
}

func (ins Load) String() string {
	return fmt.Sprintf("LD %v, %s", ins.Dest, offset(ins.Offset))
}

func (ins LoadIndirect) String() string {
	return fmt.Sprintf("LDI %v, %s", ins.Dest, offset(ins.Offset))
}

func (ins LoadRegister) String() string {
	return fmt.Sprintf("LDR %v, %v, %s", ins.Dest, ins.Base, offset(ins.Offset))
}

func (ins LoadEffectiveAddress) String() string {
	return fmt.Sprintf("LEA %v, %s", ins.Dest, offset(ins.Offset))
}

func (ins Store) String() string {
	return fmt.Sprintf("ST %v, %s", ins.Src, offset(ins.Offset))
}

func (ins StoreIndirect) String() string {
	return fmt.Sprintf("STI %v, %s", ins.Src, offset(ins.Offset))
}

func (ins StoreRegister) String() string {
	return fmt.Sprintf("STR %v, %v, %s", ins.Src, ins.Base, offset(ins.Offset))
}

var trapNames = map[uint16]string{
	TRAP_GETC:  "GETC",
	TRAP_OUT:   "OUT",
	TRAP_PUTS:  "PUTS",
	TRAP_IN:    "IN",
	TRAP_PUTSP: "PUTSP",
	TRAP_HALT:  "HALT",
}

func (ins Trap) String() string {
	if name, ok := trapNames[ins.Vector]; ok {
		return name
	}

	return fmt.Sprintf("TRAP %#02x", ins.Vector)
}

func (ins ReturnFromInterrupt) String() string {
	return "RTI"
}

func (ins Reserved) String() string {
	return fmt.Sprintf(".FILL %#04x", ins.Word)
}
