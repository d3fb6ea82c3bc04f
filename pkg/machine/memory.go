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

// Region is an address whose contents are backed by something other than a
// plain memory cell.
type Region interface {
	// Load returns the value seen by the running program, performing any
	// side effects the device has on read.
	Load(addr uint16) (uint16, error)

	// Peek returns the current value without side effects.
	Peek(addr uint16) uint16

	Store(addr uint16, value uint16)
}

// Memory is the flat 64K word address space. Addresses are uint16, so every
// access is already taken modulo the address space.
type Memory struct {
	cells   [MEMORY_SIZE]uint16
	regions map[uint16]Region
}

// Map backs addr with region. A nil region restores plain storage.
func (mem *Memory) Map(addr uint16, region Region) {
	if region == nil {
		delete(mem.regions, addr)
		return
	}

	if mem.regions == nil {
		mem.regions = make(map[uint16]Region)
	}

	mem.regions[addr] = region
}

// Clear zeroes every plain cell and unmaps every region.
func (mem *Memory) Clear() {
	for i := range mem.cells {
		mem.cells[i] = 0x0000
	}

	mem.regions = nil
}

func (mem *Memory) Read(addr uint16) (uint16, error) {
	if region, ok := mem.regions[addr]; ok {
		return region.Load(addr)
	}

	return mem.cells[addr], nil
}

func (mem *Memory) Write(addr uint16, value uint16) {
	if region, ok := mem.regions[addr]; ok {
		region.Store(addr, value)
		return
	}

	mem.cells[addr] = value
}

func (mem *Memory) Peek(addr uint16) uint16 {
	if region, ok := mem.regions[addr]; ok {
		return region.Peek(addr)
	}

	return mem.cells[addr]
}
