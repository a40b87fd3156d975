// Copyright (C) 2023  Shanhu Tech Inc.
//
// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the
// Free Software Foundation, either version 3 of the License, or (at your
// option) any later version.
//
// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU Affero General Public License
// for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package morfobin

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"

	"shanhu.io/misc/errcode"
	"shanhu.io/morfo"
	"shanhu.io/text/lexing"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// handleErr prints load errors with their positions, and exits with the
// status of the program when it failed.
func handleErr(err error) error {
	if err == nil {
		return nil
	}

	var loadErrs morfo.LoadErrors
	if errors.As(err, &loadErrs) {
		wd, _ := os.Getwd()
		lexing.FprintErrs(os.Stderr, loadErrs, wd)
		return errcode.InvalidArgf("load got %d errors", len(loadErrs))
	}

	var exitErr *morfo.ExitStatusError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.ProcessExitCode())
	}
	return err
}

func cmdRun(args []string) error {
	flags := cmdFlags.New()
	opts := new(options)
	declareBuildFlags(flags, opts)
	args = flags.ParseArgs(args)
	if len(args) == 0 {
		return errcode.InvalidArgf("main file missing")
	}

	b, err := newBuilder(opts)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	return handleErr(b.Execute(ctx, args[0], os.Stdout, args[1:]))
}

func cmdBuild(args []string) error {
	flags := cmdFlags.New()
	opts := new(options)
	declareBuildFlags(flags, opts)
	args = flags.ParseArgs(args)
	if len(args) != 1 {
		return errcode.InvalidArgf("want one main file, got %d", len(args))
	}

	b, err := newBuilder(opts)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	g, err := b.Build(ctx, args[0], os.Stdout)
	if err != nil {
		return handleErr(err)
	}
	if opts.verbose {
		log.Printf("built %s", b.Out(morfo.Stem(g.Main())))
	}
	return nil
}
