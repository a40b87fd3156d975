package morfo

// loadTracer tracks the chain of units being loaded, for detecting
// include cycles.
type loadTracer struct {
	trace []string
	m     map[string]bool
}

func newLoadTracer() *loadTracer {
	return &loadTracer{
		m: make(map[string]bool),
	}
}

// push adds name on top of the stack. It returns false when name is
// already on the stack.
func (t *loadTracer) push(name string) bool {
	if t.m[name] {
		return false
	}
	t.trace = append(t.trace, name)
	t.m[name] = true
	return true
}

func (t *loadTracer) pop() {
	n := len(t.trace)
	if n == 0 {
		return
	}
	last := t.trace[n-1]
	delete(t.m, last)
	t.trace = t.trace[:n-1]
}

func (t *loadTracer) onStack(name string) bool { return t.m[name] }

// cycle returns the part of the stack that starts at name, followed by
// name again.
func (t *loadTracer) cycle(name string) []string {
	for i, s := range t.trace {
		if s == name {
			c := append([]string{}, t.trace[i:]...)
			return append(c, name)
		}
	}
	return nil
}
