package morfobin

import (
	"os"

	"shanhu.io/misc/errcode"
	"shanhu.io/misc/flagutil"
	"shanhu.io/morfo"
)

var cmdFlags = flagutil.NewFactory("morfo")

type options struct {
	dir     string
	config  string
	verbose bool
	jobs    int
}

func declareBuildFlags(flags *flagutil.FlagSet, opts *options) {
	flags.StringVar(&opts.dir, "dir", ".", "project root directory")
	flags.StringVar(&opts.config, "config", "", "config file")
	flags.BoolVar(&opts.verbose, "v", false, "display all the build steps")
	flags.IntVar(&opts.jobs, "j", 0, "number of concurrent compilers")
}

// configFile returns the config file to use: the flag, then $MORFO_CONFIG,
// then the first one found by morfo.FindConfigFile.
func configFile(opts *options) (string, error) {
	if opts.config != "" {
		return opts.config, nil
	}
	if f := os.Getenv("MORFO_CONFIG"); f != "" {
		return f, nil
	}
	return morfo.FindConfigFile(opts.dir)
}

func loadConfig(opts *options) (*morfo.Config, error) {
	f, err := configFile(opts)
	if err != nil {
		return nil, err
	}
	c, err := morfo.ReadConfig(f)
	if err != nil {
		return nil, errcode.Annotatef(err, "read config %q", f)
	}
	if opts.verbose {
		c.Verbose = true
	}
	if opts.jobs > 0 {
		c.Jobs = opts.jobs
	}
	return c, nil
}

func newBuilder(opts *options) (*morfo.Builder, error) {
	c, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	return morfo.NewBuilder(opts.dir, c)
}
