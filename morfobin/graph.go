package morfobin

import (
	"os"

	"shanhu.io/misc/errcode"
	"shanhu.io/morfo"
)

func cmdGraph(args []string) error {
	flags := cmdFlags.New()
	opts := new(options)
	declareBuildFlags(flags, opts)
	format := flags.String("format", "dot", "output format, dot or json")
	out := flags.String("o", "", "output file; json needs one")
	args = flags.ParseArgs(args)
	if len(args) != 1 {
		return errcode.InvalidArgf("want one main file, got %d", len(args))
	}

	b, err := newBuilder(opts)
	if err != nil {
		return err
	}
	g, errs := b.Load(args[0])
	if errs != nil {
		return handleErr(morfo.LoadErrors(errs))
	}

	switch *format {
	case "dot":
		if *out == "" {
			return g.WriteDOT(os.Stdout)
		}
		f, err := os.Create(*out)
		if err != nil {
			return errcode.Annotate(err, "create output")
		}
		defer f.Close()
		if err := g.WriteDOT(f); err != nil {
			return errcode.Annotate(err, "write graph")
		}
		return f.Close()
	case "json":
		if *out == "" {
			return errcode.InvalidArgf("json output needs -o")
		}
		return g.SaveJSON(*out)
	}
	return errcode.InvalidArgf("unsupported format %q", *format)
}
