// Copyright (C) 2023  Shanhu Tech Inc.
//
// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the
// Free Software Foundation, either version 3 of the License, or (at your
// option) any later version.
//
// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU Affero General Public License
// for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package morfo

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"shanhu.io/misc/errcode"
	"shanhu.io/misc/jsonx"
	"shanhu.io/misc/osutil"
)

// DefaultBuildDir is where artifacts go when the config does not say.
const DefaultBuildDir = ".out"

// Config is the build configuration. It is read from a morfo.toml,
// morfo.hcl or morfo.jsonx file, or filled in by flags.
type Config struct {
	// Compiler command.
	CC string `json:"cc" toml:"cc" hcl:"cc"`

	CFlags   []string `json:"cflags,omitempty" toml:"cflags" hcl:"cflags,optional"`
	BuildDir string   `json:"builddir,omitempty" toml:"builddir" hcl:"builddir,optional"`

	// Header search directories.
	Includes []string `json:"includes,omitempty" toml:"includes" hcl:"includes,optional"`

	// Echo every command before running it.
	Verbose bool `json:"verbose,omitempty" toml:"verbose" hcl:"verbose,optional"`

	// Number of compilers to run at the same time.
	Jobs int `json:"jobs,omitempty" toml:"jobs" hcl:"jobs,optional"`

	// Build journal database file. Empty turns the journal off.
	Journal string `json:"journal,omitempty" toml:"journal" hcl:"journal,optional"`
}

func (c *Config) buildDir() string {
	if c.BuildDir == "" {
		return DefaultBuildDir
	}
	return c.BuildDir
}

func (c *Config) check() error {
	if c.CC == "" {
		return errcode.InvalidArgf("invalid config: missing field cc")
	}
	if c.Jobs < 0 {
		return errcode.InvalidArgf("invalid config: jobs is %d", c.Jobs)
	}
	return nil
}

func readHCLConfig(f string, c *Config) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(f)
	if diags.HasErrors() {
		return errcode.InvalidArgf("invalid config: %s", diags.Error())
	}
	if diags := gohcl.DecodeBody(file.Body, nil, c); diags.HasErrors() {
		return errcode.InvalidArgf("invalid config: %s", diags.Error())
	}
	return nil
}

// ReadConfig reads a config file. The format is picked by the file
// extension.
func ReadConfig(f string) (*Config, error) {
	isFile, err := osutil.IsRegular(f)
	if err != nil {
		return nil, errcode.Annotatef(err, "check config file %q", f)
	}
	if !isFile {
		return nil, errcode.NotFoundf("config file not found: %s", f)
	}

	c := new(Config)
	switch ext := filepath.Ext(f); ext {
	case ".toml":
		if _, err := toml.DecodeFile(f, c); err != nil {
			return nil, errcode.InvalidArgf("invalid config: %s", err)
		}
	case ".hcl":
		if err := readHCLConfig(f, c); err != nil {
			return nil, err
		}
	case ".jsonx", ".json":
		if err := jsonx.ReadFile(f, c); err != nil {
			return nil, errcode.InvalidArgf("invalid config: %s", err)
		}
	default:
		return nil, errcode.InvalidArgf(
			"config file must be toml, hcl or jsonx, found %q", ext,
		)
	}

	if err := c.check(); err != nil {
		return nil, err
	}
	return c, nil
}

var configNames = []string{"morfo.toml", "morfo.hcl", "morfo.jsonx"}

func findConfigFile(dir, home string) (string, error) {
	var cands []string
	for _, name := range configNames {
		cands = append(cands, filepath.Join(dir, name))
	}
	if home != "" {
		for _, name := range configNames {
			ext := filepath.Ext(name)
			cands = append(cands, filepath.Join(
				home, ".config", "morfo", "config"+ext,
			))
		}
	}

	for _, f := range cands {
		ok, err := osutil.IsRegular(f)
		if err != nil {
			return "", errcode.Annotatef(err, "check %q", f)
		}
		if ok {
			return f, nil
		}
	}
	return "", errcode.NotFoundf("config file missing")
}

// FindConfigFile looks for the config file of a project: first a local
// morfo.{toml,hcl,jsonx} in dir, then ~/.config/morfo/config.{toml,hcl,jsonx}.
func FindConfigFile(dir string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return findConfigFile(dir, home)
}
