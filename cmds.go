package morfo

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"syscall"
)

// execJob is a subprocess. It inherits the environment of the current
// process.
type execJob struct {
	bin    string
	args   []string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (j *execJob) command(ctx context.Context) *exec.Cmd {
	cmd := exec.CommandContext(ctx, j.bin, j.args...)
	cmd.Stdin = j.stdin
	cmd.Stdout = j.stdout
	cmd.Stderr = j.stderr
	return cmd
}

// String returns the command line, for echoing. Quotes are stripped.
func (j *execJob) String() string {
	words := append([]string{j.bin}, j.args...)
	return strings.ReplaceAll(strings.Join(words, " "), `"`, "")
}

// exitStatus is how a finished command ended.
type exitStatus struct {
	code   int // -1 when killed by a signal
	signal int // set when killed by a signal
}

func (s *exitStatus) signaled() bool { return s.code < 0 }

// exitStatusOf returns the exit status of a finished command. It returns
// nil when err is not about the exit status.
func exitStatusOf(err error) *exitStatus {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return nil
	}
	s := &exitStatus{code: exitErr.ExitCode()}
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		s.signal = int(ws.Signal())
	}
	return s
}
