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

package morfo

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"shanhu.io/misc/errcode"
	"shanhu.io/text/lexing"
)

// Builder builds and runs C/C++ programs.
type Builder struct {
	env     *env
	journal string
}

func projectPath(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// NewBuilder creates a new builder for the project under root. Relative
// directories in the config are relative to root.
func NewBuilder(root string, config *Config) (*Builder, error) {
	if err := config.check(); err != nil {
		return nil, err
	}
	rootDir, err := canonicalPath(root)
	if err != nil {
		return nil, errcode.Annotate(err, "resolve project root")
	}

	var includes []string
	for _, inc := range config.Includes {
		includes = append(includes, projectPath(rootDir, inc))
	}
	jobs := config.Jobs
	if jobs == 0 {
		jobs = 1
	}

	env := &env{
		rootDir:  rootDir,
		outDir:   projectPath(rootDir, config.buildDir()),
		includes: includes,
		cc:       config.CC,
		cflags:   config.CFlags,
		verbose:  config.Verbose,
		jobs:     jobs,
		stdin:    os.Stdin,
		stderr:   os.Stderr,
	}
	return &Builder{env: env, journal: config.Journal}, nil
}

// SetStdio sets where the compiled program reads its input and where the
// compiler and the program write their errors.
func (b *Builder) SetStdio(stdin io.Reader, stderr io.Writer) {
	b.env.stdin = stdin
	b.env.stderr = stderr
}

// Out returns the path of a file in the build output directory.
func (b *Builder) Out(f string) string { return b.env.out(f) }

// Load builds the dependency graph of the main file.
func (b *Builder) Load(main string) (*Graph, []*lexing.Error) {
	return loadGraph(b.env, main)
}

// Compile compiles all the units of the graph, dependencies first, and
// links the executable. Commands are echoed to out in verbose mode.
func (b *Builder) Compile(ctx context.Context, g *Graph, out io.Writer) error {
	opts := &buildOpts{echo: newLockedWriter(out)}
	return compileGraph(ctx, b.env, g, opts)
}

// Run runs the executable compiled from the graph with args, and writes
// its standard output to out.
func (b *Builder) Run(
	ctx context.Context, g *Graph, out io.Writer, args []string,
) error {
	return runGraph(ctx, b.env, g, out, args)
}

func (b *Builder) build(
	ctx context.Context, main string, out io.Writer,
) (*Graph, error) {
	g, errs := b.Load(main)
	if errs != nil {
		return nil, LoadErrors(errs)
	}
	if err := b.Compile(ctx, g, out); err != nil {
		return g, err
	}
	return g, nil
}

// Build loads and compiles the main file.
func (b *Builder) Build(
	ctx context.Context, main string, out io.Writer,
) (*Graph, error) {
	start := time.Now()
	g, err := b.build(ctx, main, out)
	b.record(main, start, g, err)
	return g, err
}

// Execute builds the main file and runs the executable with args. The
// first error of any stage is returned; nothing runs after it.
func (b *Builder) Execute(
	ctx context.Context, main string, out io.Writer, args []string,
) error {
	start := time.Now()
	g, err := b.build(ctx, main, out)
	if err == nil {
		err = b.Run(ctx, g, out, args)
	}
	b.record(main, start, g, err)
	return err
}

func (b *Builder) record(main string, start time.Time, g *Graph, err error) {
	if b.journal == "" {
		return
	}
	if jerr := b.addJournal(main, start, g, err); jerr != nil {
		log.Printf("journal: %s", jerr)
	}
}

func (b *Builder) addJournal(
	main string, start time.Time, g *Graph, err error,
) error {
	e := &JournalEntry{
		Main:     main,
		Started:  start,
		Duration: time.Since(start),
		Status:   statusOf(err),
	}
	if err != nil {
		e.Error = err.Error()
	}
	if g != nil {
		e.Units = len(g.nodes)
		d, err := makeBuildDigest(b.env, g)
		if err != nil {
			return errcode.Annotate(err, "digest")
		}
		e.Digest = d
	}

	j, err := openJournal(projectPath(b.env.rootDir, b.journal))
	if err != nil {
		return err
	}
	defer j.Close()
	return j.add(e)
}

// JournalFile returns the path of the journal database, or an empty
// string when the journal is off.
func (b *Builder) JournalFile() string {
	if b.journal == "" {
		return ""
	}
	return projectPath(b.env.rootDir, b.journal)
}
