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

package image_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lassandro/lc3vm/pkg/image"
	"github.com/lassandro/lc3vm/pkg/machine"
)

// recorder remembers every write it receives.
type recorder map[uint16]uint16

func (r recorder) Write(addr uint16, value uint16) {
	r[addr] = value
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	mem := recorder{}
	origin, err := image.Load(
		bytes.NewReader([]byte{0x30, 0x00, 0x12, 0x34, 0xAB, 0xCD}), mem,
	)

	assert.NoError(err)
	assert.Equal(uint16(0x3000), origin)
	assert.Equal(recorder{0x3000: 0x1234, 0x3001: 0xABCD}, mem)
}

func TestLoadOriginOnly(t *testing.T) {
	mem := recorder{}
	origin, err := image.Load(bytes.NewReader([]byte{0x40, 0x00}), mem)

	assert.NoError(t, err)
	assert.Equal(t, uint16(0x4000), origin)
	assert.Empty(t, mem)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		Name string
		Data []byte
		Err  error
	}{
		{"Empty", nil, image.ErrEmpty},
		{"Half Origin", []byte{0x30}, image.ErrEmpty},
		{"Odd Length", []byte{0x30, 0x00, 0x12}, image.ErrTruncated},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			mem := recorder{}
			_, err := image.Load(bytes.NewReader(test.Data), mem)

			assert.ErrorIs(t, err, test.Err)
			assert.Empty(t, mem)
		})
	}
}

func TestLoadOverflow(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xF0})
	for i := 0; i < 17; i++ {
		buf.Write([]byte{0x00, byte(i + 1)})
	}

	var mc machine.Machine
	mc.Reset()

	_, err := image.Load(&buf, &mc.Memory)
	assert.ErrorIs(err, image.ErrOverflow)

	for addr := 0xFFF0; addr <= 0xFFFF; addr++ {
		assert.Zero(mc.Memory.Peek(uint16(addr)))
	}
	assert.Zero(mc.Memory.Peek(0x0000))
}

func TestLoadFillsMemory(t *testing.T) {
	assert := assert.New(t)

	words := make([]uint16, 16)
	for i := range words {
		words[i] = uint16(i + 1)
	}

	var buf bytes.Buffer
	require.NoError(t, image.Encode(&buf, 0xFFF0, words))

	var mc machine.Machine
	mc.Reset()

	origin, err := image.Load(&buf, &mc.Memory)
	assert.NoError(err)
	assert.Equal(uint16(0xFFF0), origin)
	assert.Equal(uint16(16), mc.Memory.Peek(0xFFFF))
}

func TestEncode(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	assert.NoError(image.Encode(&buf, 0x3000, []uint16{0x5020, 0xF025}))
	assert.Equal([]byte{0x30, 0x00, 0x50, 0x20, 0xF0, 0x25}, buf.Bytes())

	assert.ErrorIs(
		image.Encode(&buf, 0xFFFF, []uint16{1, 2}),
		image.ErrOverflow,
	)
}

func TestLoadFile(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "halt.obj")

	var buf bytes.Buffer
	require.NoError(image.Encode(&buf, 0x3000, []uint16{
		0x5020, // AND R0, R0, #0
		0x1025, // ADD R0, R0, #5
		0xF025, // HALT
	}))
	require.NoError(os.WriteFile(path, buf.Bytes(), 0o644))

	var mc machine.Machine
	mc.Reset()

	origin, err := image.LoadFile(path, &mc.Memory)
	require.NoError(err)

	mc.Start(origin)
	assert.NoError(mc.Run())
	assert.Equal(machine.STATE_HALTED, mc.State.Run)
	assert.Equal(uint16(5), mc.State.Registers[0])

	_, err = image.LoadFile(filepath.Join(dir, "missing.obj"), &mc.Memory)

	var imageErr *image.ErrImage
	assert.ErrorAs(err, &imageErr)
	assert.ErrorIs(err, os.ErrNotExist)
}
