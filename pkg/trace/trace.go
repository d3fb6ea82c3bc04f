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

package trace

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/lassandro/lc3vm/pkg/machine"
)

var _ machine.MachineObserver = (*Tracer)(nil)

func hex(value uint16) string {
	return fmt.Sprintf("%#04x", value)
}

func (tr *Tracer) Step(pc uint16, ins machine.Instruction) {
	if !tr.Instructions {
		return
	}

	tr.Log.WithFields(logrus.Fields{
		"pc": hex(pc),
		"op": ins.Opcode().String(),
	}).Debug(ins.String())
}

func (tr *Tracer) Read(addr uint16, value uint16) {
	tr.watch(ReadWatch, "read", addr, value)
}

func (tr *Tracer) Write(addr uint16, value uint16) {
	tr.watch(WriteWatch, "write", addr, value)
}

func (tr *Tracer) watch(kind WatchpointType, msg string, addr, value uint16) {
	for _, watchpoint := range tr.Watchpoints {
		if watchpoint.Type&kind == 0 || watchpoint.Addr != addr {
			continue
		}

		tr.Log.WithFields(logrus.Fields{
			"addr":  hex(addr),
			"value": hex(value),
		}).Info(msg)

		break
	}
}

// DumpRegisters writes the registers, program counter, condition and run
// state on one line each.
func DumpRegisters(w io.Writer, st *machine.MachineState) {
	for i, value := range st.Registers {
		fmt.Fprintf(w, "%v  %#04x  %d\n", machine.Register(i), value, int16(value))
	}

	fmt.Fprintf(w, "PC  %#04x\n", st.Program)
	fmt.Fprintf(w, "CC  %v\n", st.Condition)
	fmt.Fprintf(w, "--  %v\n", st.Run)
}

// DumpMemory writes count words from addr, four to a row. Device registers
// are peeked, so dumping never consumes a key.
func DumpMemory(w io.Writer, mem *machine.Memory, addr, count uint16) {
	for i := uint16(0); i < count; i++ {
		cell := addr + i

		if i%4 == 0 {
			if i != 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "[%#04x]", cell)
		}

		fmt.Fprintf(w, " %#04x", mem.Peek(cell))
	}

	fmt.Fprintln(w)
}
