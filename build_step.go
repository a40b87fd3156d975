package morfo

// buildStep is one compiler invocation.
type buildStep interface {
	// unit returns the name of the build unit the step compiles.
	unit() string

	// out returns the path of the artifact the step writes.
	out(env *env) string

	// job returns the compiler command of the step.
	job(env *env) *execJob
}

// compilerFlags returns the configured flags followed by the header
// search directories.
func compilerFlags(env *env) []string {
	var args []string
	args = append(args, env.cflags...)
	for _, inc := range env.includes {
		args = append(args, "-I"+inc)
	}
	return args
}

func compilerJob(env *env, args []string) *execJob {
	return &execJob{
		bin:    env.cc,
		args:   args,
		stderr: env.stderr,
	}
}

// objectStep compiles a dependency unit into an object file.
type objectStep struct {
	node *buildNode
}

func (s *objectStep) unit() string        { return s.node.name }
func (s *objectStep) out(env *env) string { return env.objectPath(s.node.file) }

func (s *objectStep) job(env *env) *execJob {
	args := compilerFlags(env)
	args = append(args, "-c", s.node.file, "-o", s.out(env))
	return compilerJob(env, args)
}

// linkStep compiles the main unit and links it with the objects of its
// dependencies into the executable.
type linkStep struct {
	node    *buildNode
	objects []string
}

func (s *linkStep) unit() string        { return s.node.name }
func (s *linkStep) out(env *env) string { return env.exePath(s.node.name) }

func (s *linkStep) job(env *env) *execJob {
	args := compilerFlags(env)
	args = append(args, s.node.name)
	args = append(args, s.objects...)
	args = append(args, "-o", s.out(env))
	return compilerJob(env, args)
}
