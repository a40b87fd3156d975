package morfo

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

type env struct {
	rootDir  string   // project root, canonical
	outDir   string   // build output directory
	includes []string // header search directories

	cc      string
	cflags  []string
	verbose bool
	jobs    int

	stdin  io.Reader
	stderr io.Writer
}

func (e *env) out(ps ...string) string {
	if len(ps) == 0 {
		return e.outDir
	}
	return filepath.Join(e.outDir, filepath.Join(ps...))
}

func (e *env) prepareOut() error {
	return os.MkdirAll(e.outDir, 0755)
}

// objectPath is where the object file of a non-main unit goes.
func (e *env) objectPath(src string) string {
	return e.out(Stem(src) + ".o")
}

// exePath is where the executable of the main unit goes.
func (e *env) exePath(main string) string {
	return e.out(Stem(main))
}

func (e *env) logf(format string, args ...interface{}) {
	if e.verbose {
		log.Printf(format, args...)
	}
}
