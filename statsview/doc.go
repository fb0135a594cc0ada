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

// Package statsview serves runtime statistics over HTTP while a long running
// scenario or regression run is in progress. It is only built with the
// statsview build tag. Without the tag, Available() returns false and
// Launch() does nothing.
//
// After launch, graphical statistics will be viewable at:
//
//	localhost:12610/debug/statsview
//
// And standard Go pprof statistics available at:
//
//	localhost:12610/debug/pprof/
package statsview
