package morfo

import (
	"context"
	"fmt"
	"io"

	"shanhu.io/misc/errcode"
)

func runGraph(
	ctx context.Context, env *env, g *Graph, out io.Writer, args []string,
) error {
	exe := env.exePath(g.Main())
	stat, err := newArtifactStat(exe)
	if err != nil {
		if errcode.IsNotFound(err) {
			return &MissingExecutableError{Path: exe}
		}
		return &RunError{Path: exe, Err: err}
	}
	env.logf("run %s (%d bytes)", stat.name, stat.size)

	j := &execJob{
		bin:    exe,
		args:   args,
		stdin:  env.stdin,
		stdout: out,
		stderr: env.stderr,
	}
	if env.verbose {
		if _, err := fmt.Fprintf(out, "%s\n\n", j); err != nil {
			return &RunError{Path: exe, Err: err}
		}
	}

	err = j.command(ctx).Run()
	if err == nil {
		return nil
	}
	if st := exitStatusOf(err); st != nil {
		return &ExitStatusError{
			Path:     exe,
			Code:     st.code,
			Signaled: st.signaled(),
			Signal:   st.signal,
		}
	}
	return &RunError{Path: exe, Err: err}
}
