package morfo

import (
	"fmt"
	"strings"

	"shanhu.io/text/lexing"
)

// CompileError is returned when the compiler fails on a build unit.
type CompileError struct {
	Unit     string
	Code     int   // Exit code of the compiler.
	Signaled bool  // The compiler was terminated by a signal.
	Err      error // The compiler could not be started.
}

func (e *CompileError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("compilation failure: %s: %s", e.Unit, e.Err)
	case e.Signaled:
		return fmt.Sprintf(
			"compilation failure: %s: process terminated by signal", e.Unit,
		)
	}
	return fmt.Sprintf(
		"compilation failure: %s: process exited with code %d",
		e.Unit, e.Code,
	)
}

func (e *CompileError) Unwrap() error { return e.Err }

// MissingExecutableError is returned when there is no executable to run
// after compiling.
type MissingExecutableError struct {
	Path string
}

func (e *MissingExecutableError) Error() string {
	return fmt.Sprintf("executable file missing: %s", e.Path)
}

// RunError is returned when the compiled program cannot be started or its
// output cannot be collected.
type RunError struct {
	Path string
	Err  error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("run %s: %s", e.Path, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

// ExitStatusError is returned when the compiled program exits with a
// nonzero status or is killed by a signal.
type ExitStatusError struct {
	Path     string
	Code     int  // -1 when Signaled.
	Signaled bool // The program was terminated by a signal.
	Signal   int  // The signal number, when known.
}

func (e *ExitStatusError) Error() string {
	if e.Signaled {
		if e.Signal > 0 {
			return fmt.Sprintf("%s terminated by signal %d", e.Path, e.Signal)
		}
		return fmt.Sprintf("%s terminated by signal", e.Path)
	}
	return fmt.Sprintf("%s exited with code %d", e.Path, e.Code)
}

// ProcessExitCode is the exit code a shell reports for the program: the
// exit code, or 128 plus the signal number for a signaled program.
func (e *ExitStatusError) ProcessExitCode() int {
	if e.Signaled {
		if e.Signal > 0 {
			return 128 + e.Signal
		}
		return 128
	}
	return e.Code
}

// LoadErrors are the errors found when building the dependency graph.
type LoadErrors []*lexing.Error

func (errs LoadErrors) Error() string {
	var lines []string
	for _, e := range errs {
		if e.Pos != nil && e.Pos.Line > 0 {
			lines = append(lines, fmt.Sprintf(
				"%s:%d: %s", e.Pos.File, e.Pos.Line, e.Err,
			))
		} else {
			lines = append(lines, e.Err.Error())
		}
	}
	return strings.Join(lines, "\n")
}
