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

package trace_test

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lassandro/lc3vm/pkg/machine"
	"github.com/lassandro/lc3vm/pkg/trace"
)

func TestParseWatchpoint(t *testing.T) {
	tests := []struct {
		Input  string
		Output trace.Watchpoint
	}{
		{"0x3000", trace.Watchpoint{Addr: 0x3000, Type: trace.AccessWatch}},
		{"xFE00:r", trace.Watchpoint{Addr: 0xFE00, Type: trace.ReadWatch}},
		{"0x4000:W", trace.Watchpoint{Addr: 0x4000, Type: trace.WriteWatch}},
		{"0x0001:rw", trace.Watchpoint{Addr: 0x0001, Type: trace.AccessWatch}},
	}

	for _, test := range tests {
		t.Run(test.Input, func(t *testing.T) {
			wp, err := trace.ParseWatchpoint(test.Input)
			assert.NoError(t, err)
			assert.Equal(t, test.Output, wp)
		})
	}

	for _, input := range []string{"", "3000", "0x3000:x", "0x3000:", "0xZZ"} {
		t.Run("Invalid "+input, func(t *testing.T) {
			_, err := trace.ParseWatchpoint(input)
			assert.ErrorIs(t, err, trace.ErrWatchpoint)
		})
	}
}

func program(mc *machine.Machine, words ...uint16) {
	for i, word := range words {
		mc.Memory.Write(machine.MEMSPACE_USER+uint16(i), word)
	}
}

func TestTracer(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	var mc machine.Machine
	mc.Reset()
	mc.Observer = &trace.Tracer{
		Log:          logger,
		Instructions: true,
		Watchpoints: []trace.Watchpoint{
			{Addr: 0x3004, Type: trace.WriteWatch},
		},
	}

	program(&mc,
		0x5020, // AND R0, R0, #0
		0x1025, // ADD R0, R0, #5
		0x3001, // ST R0, #1
		0xF025, // HALT
	)

	require.NoError(mc.Run())

	entries := hook.AllEntries()
	require.Len(entries, 5)

	messages := make([]string, len(entries))
	for i, entry := range entries {
		messages[i] = entry.Message
	}

	assert.Equal([]string{
		"AND R0, R0, #0",
		"ADD R0, R0, #5",
		"ST R0, #1",
		"write",
		"HALT",
	}, messages)

	assert.Equal(logrus.DebugLevel, entries[0].Level)
	assert.Equal("0x3000", entries[0].Data["pc"])
	assert.Equal("AND", entries[0].Data["op"])

	assert.Equal(logrus.InfoLevel, entries[3].Level)
	assert.Equal("0x3004", entries[3].Data["addr"])
	assert.Equal("0x0005", entries[3].Data["value"])
}

func TestTracerReadWatch(t *testing.T) {
	assert := assert.New(t)

	logger, hook := logtest.NewNullLogger()

	var mc machine.Machine
	mc.Reset()
	mc.Observer = &trace.Tracer{
		Log: logger,
		Watchpoints: []trace.Watchpoint{
			{Addr: 0x3000, Type: trace.ReadWatch},
			{Addr: 0x3010, Type: trace.ReadWatch},
			{Addr: 0x3011, Type: trace.WriteWatch},
		},
	}

	program(&mc,
		0x200F, // LD R0, #15
		0x300F, // ST R0, #15
		0xF025, // HALT
	)
	mc.Memory.Write(0x3010, 0xBEEF)

	// Fetching the LD at 0x3000 is not a read.
	assert.NoError(mc.Run())
	assert.Len(hook.AllEntries(), 2)

	assert.Equal("read", hook.AllEntries()[0].Message)
	assert.Equal("0x3010", hook.AllEntries()[0].Data["addr"])
	assert.Equal("0xbeef", hook.AllEntries()[0].Data["value"])

	assert.Equal("write", hook.LastEntry().Message)
	assert.Equal("0x3011", hook.LastEntry().Data["addr"])
}

func TestTracerQuiet(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	var mc machine.Machine
	mc.Reset()
	mc.Observer = &trace.Tracer{Log: logger}

	program(&mc, 0xF025)

	assert.NoError(t, mc.Run())
	assert.Empty(t, hook.AllEntries())
}

func TestDumpRegisters(t *testing.T) {
	var st machine.MachineState
	st.Reset()
	st.Registers[1] = 0xFFFF
	st.Registers[7] = 0x3000

	var out bytes.Buffer
	trace.DumpRegisters(&out, &st)

	assert.Equal(t, ""+
		"R0  0x0000  0\n"+
		"R1  0xffff  -1\n"+
		"R2  0x0000  0\n"+
		"R3  0x0000  0\n"+
		"R4  0x0000  0\n"+
		"R5  0x0000  0\n"+
		"R6  0x0000  0\n"+
		"R7  0x3000  12288\n"+
		"PC  0x3000\n"+
		"CC  Z\n"+
		"--  running\n",
		out.String(),
	)
}

func TestDumpMemory(t *testing.T) {
	var mc machine.Machine
	mc.Reset()

	program(&mc, 0x1234, 0x5678, 0x9ABC, 0xDEF0, 0x0001)

	var out bytes.Buffer
	trace.DumpMemory(&out, &mc.Memory, 0x3000, 6)

	assert.Equal(t, ""+
		"[0x3000] 0x1234 0x5678 0x9abc 0xdef0\n"+
		"[0x3004] 0x0001 0x0000\n",
		out.String(),
	)
}
