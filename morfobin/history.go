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
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"shanhu.io/misc/errcode"
	"shanhu.io/morfo"
)

func cmdHistory(args []string) error {
	flags := cmdFlags.New()
	opts := new(options)
	declareBuildFlags(flags, opts)
	n := flags.Int("n", 10, "number of entries to list")
	flags.ParseArgs(args)

	b, err := newBuilder(opts)
	if err != nil {
		return err
	}
	f := b.JournalFile()
	if f == "" {
		return errcode.InvalidArgf("journal is not configured")
	}

	entries, err := morfo.ReadJournal(f, *n)
	if err != nil {
		return errcode.Annotate(err, "read journal")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(
			w, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n",
			e.ID, e.Started.Format(time.RFC3339), e.Main,
			e.Duration, e.Units, e.Status, e.Error,
		)
	}
	return w.Flush()
}
