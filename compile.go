package morfo

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"shanhu.io/misc/errcode"
)

func runStep(ctx context.Context, env *env, s buildStep, opts *buildOpts) error {
	j := s.job(env)
	if env.verbose {
		if _, err := fmt.Fprintln(opts.echo, j.String()); err != nil {
			return errcode.Annotate(err, "echo command")
		}
	}

	err := j.command(ctx).Run()
	if err == nil {
		return nil
	}
	if st := exitStatusOf(err); st != nil {
		return &CompileError{
			Unit:     s.unit(),
			Code:     st.code,
			Signaled: st.signaled(),
		}
	}
	return &CompileError{Unit: s.unit(), Code: -1, Err: err}
}

// compileLevels compiles the dependency units level by level, with up to
// env.jobs compilers running at the same time.
func compileLevels(
	ctx context.Context, env *env, g *Graph, opts *buildOpts,
) error {
	for _, level := range g.levels() {
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(env.jobs)
		for _, i := range level {
			step := &objectStep{node: g.nodes[i]}
			eg.Go(func() error {
				return runStep(egCtx, env, step, opts)
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}
	}
	return nil
}

func compileGraph(
	ctx context.Context, env *env, g *Graph, opts *buildOpts,
) error {
	if err := env.prepareOut(); err != nil {
		return errcode.Annotate(err, "make build dir")
	}

	order := g.postOrder()
	var objects []string
	for _, i := range order {
		if i != 0 {
			objects = append(objects, env.objectPath(g.nodes[i].file))
		}
	}

	if env.jobs > 1 {
		if err := compileLevels(ctx, env, g, opts); err != nil {
			return err
		}
	} else {
		for _, i := range order {
			if i == 0 {
				continue
			}
			step := &objectStep{node: g.nodes[i]}
			if err := runStep(ctx, env, step, opts); err != nil {
				return err
			}
		}
	}

	link := &linkStep{node: g.nodes[0], objects: objects}
	return runStep(ctx, env, link, opts)
}
