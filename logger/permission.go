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

package logger

// Permission implementations indicate whether the component making a log
// request is allowed to create new log entries. Simulation components are
// usually only allowed to log per-cycle detail when they have been asked to be
// verbose.
type Permission interface {
	AllowLogging() bool
}

type allow struct{}

func (allow) AllowLogging() bool {
	return true
}

// Allow should be used when a log entry should always be made.
var Allow Permission = allow{}

// Verbose is a Permission for code that has a verbosity flag but no component
// of its own to carry the AllowLogging() method.
//
//	logger.Log(logger.Verbose(cfg.Verbose), "tag", detail)
type Verbose bool

func (v Verbose) AllowLogging() bool {
	return bool(v)
}
