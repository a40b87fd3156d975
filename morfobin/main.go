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

package morfobin

import (
	"github.com/joho/godotenv"
	"shanhu.io/misc/subcmd"
)

func cmd() *subcmd.List {
	c := subcmd.New()
	c.Add("run", "builds and runs a program", cmdRun)
	c.Add("build", "builds a program", cmdBuild)
	c.Add("graph", "prints the dependency graph of a program", cmdGraph)
	c.Add("history", "lists recent builds in the journal", cmdHistory)
	return c
}

// Main is the entrance for the morfo binary.
func Main() {
	_ = godotenv.Load()
	cmd().Main()
}
