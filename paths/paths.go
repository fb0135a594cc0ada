// This file is part of corebench.
//
// corebench is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// corebench is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with corebench.  If not, see <https://www.gnu.org/licenses/>.

package paths

import (
	"os"
	"path/filepath"
)

// HomeEnv is the environment variable that, if set, replaces the base path
// for every build.
const HomeEnv = "COREBENCH_HOME"

// ResourcePath returns the path of a corebench resource. The directory part
// of the path is created if it doesn't already exist. A file named by the
// last element of the path is not created.
//
// Both subPth and file can be empty.
func ResourcePath(subPth string, file string) (string, error) {
	base := os.Getenv(HomeEnv)
	if base == "" {
		var err error
		base, err = basePath()
		if err != nil {
			return "", err
		}
	}

	pth := filepath.Join(base, subPth)
	if err := os.MkdirAll(pth, 0700); err != nil {
		return "", err
	}

	return filepath.Join(pth, file), nil
}
