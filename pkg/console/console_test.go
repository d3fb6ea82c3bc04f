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

//go:build !windows

package console_test

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lassandro/lc3vm/pkg/console"
	"github.com/lassandro/lc3vm/pkg/machine"
)

var (
	_ machine.Keyboard = (*console.Stream)(nil)
	_ machine.Keyboard = (*console.Terminal)(nil)
)

func TestStream(t *testing.T) {
	assert := assert.New(t)

	st := console.NewStream(strings.NewReader("ab"))

	ready, err := st.Poll()
	assert.NoError(err)
	assert.True(ready)

	key, err := st.ReadByte()
	assert.NoError(err)
	assert.Equal(byte('a'), key)

	key, err = st.ReadByte()
	assert.NoError(err)
	assert.Equal(byte('b'), key)

	ready, err = st.Poll()
	assert.NoError(err)
	assert.False(ready)

	_, err = st.ReadByte()
	assert.ErrorIs(err, io.EOF)
}

func TestPipeTerminal(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	r, w, err := os.Pipe()
	require.NoError(err)
	defer r.Close()

	tt := console.NewTerminal(r)

	// A pipe is not a tty, raw mode is a no-op.
	assert.False(tt.IsTerminal())
	assert.NoError(tt.EnableRawMode())
	assert.NoError(tt.Restore())

	ready, err := tt.Poll()
	assert.NoError(err)
	assert.False(ready)

	_, err = w.Write([]byte("k"))
	require.NoError(err)

	ready, err = tt.Poll()
	assert.NoError(err)
	assert.True(ready)

	key, err := tt.ReadByte()
	assert.NoError(err)
	assert.Equal(byte('k'), key)

	w.Close()

	_, err = tt.ReadByte()
	assert.ErrorIs(err, io.EOF)
}

func TestMachineConsole(t *testing.T) {
	assert := assert.New(t)

	var out bytes.Buffer
	display := console.NewDisplay(&out)

	var mc machine.Machine
	mc.Devices = &machine.DeviceHandler{
		Keyboard: console.NewStream(strings.NewReader("z")),
		Display:  display,
	}
	mc.Reset()

	program := []uint16{
		0xF020, // GETC
		0xF021, // OUT
		0xF025, // HALT
	}
	for i, word := range program {
		mc.Memory.Write(0x3000+uint16(i), word)
	}

	assert.NoError(mc.Run())
	assert.Equal("z", out.String())
	assert.Equal(0, display.Buffered())
}
