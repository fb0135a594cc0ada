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

// Package paths should be used whenever a request to the filesystem is made
// for files that belong to corebench itself, rather than files named by the
// user. The regression database and its trace files are examples of this.
//
// The ResourcePath() function prepends the correct base path. In development
// builds this is a hidden directory in the current working directory. Builds
// made with the release tag use the user's configuration directory instead.
//
// Setting the COREBENCH_HOME environment variable overrides both.
package paths
