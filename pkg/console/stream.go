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

// Package console provides the keyboard and display the machine talks to.
package console

import (
	"bufio"
	"errors"
	"io"
)

// Stream is a keyboard fed from any reader, such as a script of keystrokes.
// Poll may block on readers that cannot report pending input.
type Stream struct {
	reader *bufio.Reader
}

func NewStream(reader io.Reader) *Stream {
	return &Stream{reader: bufio.NewReader(reader)}
}

func (st *Stream) Poll() (bool, error) {
	if st.reader.Buffered() > 0 {
		return true, nil
	}

	_, err := st.reader.Peek(1)
	if errors.Is(err, io.EOF) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

func (st *Stream) ReadByte() (byte, error) {
	return st.reader.ReadByte()
}

// NewDisplay buffers writes to writer. The machine flushes it after every
// output trap.
func NewDisplay(writer io.Writer) *bufio.Writer {
	return bufio.NewWriter(writer)
}
