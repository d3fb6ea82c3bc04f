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

// lc3vm runs LC-3 program images on the host console.
package main

import (
	"errors"
	"os"

	"github.com/alecthomas/kong"

	"github.com/lassandro/lc3vm/pkg/machine"
)

const (
	exitHalted      = 0
	exitFailed      = 1
	exitInterrupted = 130
)

var options = []kong.Option{
	kong.Name("lc3vm"),
	kong.Description("Load one or more LC-3 images and run them."),
}

// exitStatus maps the result of a run to the process status. report is set
// for errors that have not been logged yet.
func exitStatus(err error) (status int, report bool) {
	if err == nil {
		return exitHalted, false
	}

	// Faults are logged where they happen.
	var fault *machine.ErrFault
	if errors.As(err, &fault) {
		return exitFailed, false
	}

	return exitFailed, true
}

func main() {
	var cmd runCmd

	ctx := kong.Parse(&cmd, options...)

	err := cmd.Run(ctx)

	status, report := exitStatus(err)
	if report {
		ctx.FatalIfErrorf(err)
	}

	os.Exit(status)
}
