package morfo

import (
	"io"
	"sync"
)

type buildOpts struct {
	echo io.Writer // where commands are echoed in verbose mode
}

// lockedWriter serializes writes from concurrent compile steps.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func newLockedWriter(w io.Writer) *lockedWriter {
	return &lockedWriter{w: w}
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w.Write(p)
}
