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

	"shanhu.io/misc/errcode"
)

// artifactStat is the file stat of a compiled artifact.
type artifactStat struct {
	name string
	size int64
}

func newArtifactStat(p string) (*artifactStat, error) {
	info, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errcode.NotFoundf("%s not found", p)
		}
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, errcode.NotFoundf("%s is not a regular file", p)
	}
	return &artifactStat{name: p, size: info.Size()}, nil
}
