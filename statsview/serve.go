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

package statsview

import (
	"errors"
	"net/http"

	"github.com/mrav/corebench/logger"
)

// serve runs the server start function and logs any error. The error returned
// once the server has been stopped is not logged.
func serve(start func() error) {
	if err := start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Logf(logger.Allow, "statsview", "%v", err)
	}
}
