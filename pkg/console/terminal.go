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

package console

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Terminal is a keyboard backed by a file descriptor, usually stdin.
type Terminal struct {
	file *os.File

	mu      sync.Mutex
	raw     bool
	restore unix.Termios
}

func NewTerminal(file *os.File) *Terminal {
	return &Terminal{file: file}
}

func (tt *Terminal) fd() uintptr {
	return tt.file.Fd()
}

// IsTerminal reports whether the descriptor is attached to a tty.
func (tt *Terminal) IsTerminal() bool {
	return term.IsTerminal(int(tt.fd()))
}

// EnableRawMode turns off line buffering and echo so that single keystrokes
// reach the machine. Output processing is left alone. Descriptors that are
// not a tty are left untouched.
func (tt *Terminal) EnableRawMode() error {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	if tt.raw || !tt.IsTerminal() {
		return nil
	}

	if err := termios.Tcgetattr(tt.fd(), &tt.restore); err != nil {
		return err
	}

	termstate := tt.restore
	termstate.Lflag &^= unix.ICANON | unix.ECHO

	if err := termios.Tcsetattr(tt.fd(), termios.TCSANOW, &termstate); err != nil {
		return err
	}

	tt.raw = true

	return nil
}

// Restore puts back the mode saved by EnableRawMode. It is safe to call more
// than once and from a signal handling goroutine.
func (tt *Terminal) Restore() error {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	if !tt.raw {
		return nil
	}

	tt.raw = false

	return termios.Tcsetattr(tt.fd(), termios.TCSANOW, &tt.restore)
}

// Poll checks for a pending byte without blocking.
func (tt *Terminal) Poll() (bool, error) {
	fds := []unix.PollFd{{Fd: int32(tt.fd()), Events: unix.POLLIN}}

	for {
		n, err := unix.Poll(fds, 0)
		if errors.Is(err, unix.EINTR) {
			continue
		}

		if err != nil {
			return false, err
		}

		return n > 0 && fds[0].Revents&(unix.POLLIN|unix.POLLHUP) != 0, nil
	}
}

// ReadByte blocks until one byte is read. End of input is io.EOF.
func (tt *Terminal) ReadByte() (byte, error) {
	var scratch [1]byte

	for {
		n, err := unix.Read(int(tt.fd()), scratch[:])
		if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
			continue
		}

		if err != nil {
			return 0, err
		}

		if n == 0 {
			return 0, io.EOF
		}

		return scratch[0], nil
	}
}
