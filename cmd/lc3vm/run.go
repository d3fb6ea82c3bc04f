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

package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/lassandro/lc3vm/pkg/console"
	"github.com/lassandro/lc3vm/pkg/image"
	"github.com/lassandro/lc3vm/pkg/machine"
	"github.com/lassandro/lc3vm/pkg/trace"
)

// Dumps show the row holding the PC, two rows before it and one after.
const (
	dumpRows  = 4
	dumpWords = dumpRows * 4
)

func newLogger(level logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(level)

	return log
}

func (r *runCmd) Run(ctx *kong.Context) error {
	cfg, err := r.config()
	if err != nil {
		return err
	}

	return r.run(cfg, newLogger(cfg.level), os.Stdin, os.Stdout, os.Stderr)
}

// run loads the images and runs the machine on the given console files. It
// returns nil on HALT, *machine.ErrFault on a fault and any load error before
// executing anything.
func (r *runCmd) run(
	cfg config, log logrus.FieldLogger, stdin, stdout, stderr *os.File,
) error {
	tt := console.NewTerminal(stdin)
	display := console.NewDisplay(stdout)

	var mc machine.Machine
	mc.Devices = &machine.DeviceHandler{Keyboard: tt, Display: display}
	mc.Reset()

	for i, path := range r.Images {
		origin, err := image.LoadFile(path, &mc.Memory)
		if err != nil {
			return err
		}

		log.WithFields(logrus.Fields{
			"image":  path,
			"origin": fmt.Sprintf("%#04x", origin),
		}).Info("loaded")

		if i == 0 && !cfg.hasStart {
			cfg.start = origin
		}
	}

	if cfg.tracing() {
		mc.Observer = &trace.Tracer{
			Log:          log,
			Instructions: cfg.trace,
			Watchpoints:  cfg.watchpoints,
		}
	}

	if !r.NoRaw {
		if err := tt.EnableRawMode(); err != nil {
			log.WithError(err).Warn("console left in line mode")
		}
	}

	defer tt.Restore()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-signals:
			tt.Restore()
			fmt.Fprintln(stdout)
			os.Exit(exitInterrupted)
		case <-done:
		}
	}()

	mc.Start(cfg.start)
	log.WithField("pc", fmt.Sprintf("%#04x", cfg.start)).Info("start")

	err := mc.Run()
	display.Flush()

	if r.Dump {
		tt.Restore()
		trace.DumpRegisters(stderr, &mc.State)
		trace.DumpMemory(
			stderr, &mc.Memory, mc.State.Program&^0x3-8, dumpWords,
		)
	}

	var fault *machine.ErrFault
	if errors.As(err, &fault) {
		fields := logrus.Fields{"pc": fmt.Sprintf("%#04x", fault.Address)}
		if fault.Fetched {
			fields["word"] = fmt.Sprintf("%#04x", fault.Word)
		}

		log.WithFields(fields).Error(fault.Err)

		return err
	}

	if err != nil {
		return err
	}

	log.WithField("pc", fmt.Sprintf("%#04x", mc.State.Program)).Info("halted")

	return nil
}
