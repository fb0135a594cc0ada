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

package regression

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"slices"
	"strconv"

	"github.com/mrav/corebench/curated"
	"github.com/mrav/corebench/database"
	"github.com/mrav/corebench/logger"
	"github.com/mrav/corebench/paths"
	"github.com/mrav/corebench/terminal/ansi"
	"golang.org/x/sync/errgroup"
)

// Sentinal error patterns.
const (
	RegressionError = "regression: %v"
	InvalidKey      = "regression: invalid key (%s)"
	NotAdded        = "regression: not added: %s"
	Failures        = "regression: %d of %d tests did not succeed"
)

const regressionDBFile = "regressionDB"

// DatabasePath returns the default location of the regression database.
func DatabasePath() (string, error) {
	return paths.ResourcePath("", regressionDBFile)
}

// when starting a database session we need to register what entries we will
// find in the database
func initDBSession(db *database.Session) error {
	return db.AddEntryType(scenarioEntryID, deserialiseScenarioEntry)
}

// RegressList displays all entries in the database.
func RegressList(dbPath string, output io.Writer) error {
	db, err := database.StartSession(dbPath, database.ActivityReading, initDBSession)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	return db.List(output)
}

// RegressAdd runs the scenario and, if it passes, adds it to the database.
func RegressAdd(ctx context.Context, dbPath string, output io.Writer, ent *ScenarioEntry) error {
	db, err := database.StartSession(dbPath, database.ActivityCreating, initDBSession)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "adding: %s", ent.Script)

	ok, reason, err := ent.regress(ctx, true)
	io.WriteString(output, "\r"+ansi.ClearLine)
	if err != nil {
		return curated.Errorf(NotAdded, err)
	}
	if !ok {
		return curated.Errorf(NotAdded, reason)
	}

	key, err := db.Add(ent)
	if err != nil {
		return err
	}

	if err := db.EndSession(true); err != nil {
		return err
	}

	fmt.Fprintf(output, "added: %03d %s\n", key, ent)
	logger.Logf(logger.Allow, "regression", "added %s with digest %s", ent, ent.digest)

	return nil
}

// RegressDelete removes an entry from the database. The user is asked for
// confirmation on the output and the answer read from confirmation.
func RegressDelete(dbPath string, output io.Writer, confirmation io.Reader, key string) error {
	v, err := strconv.Atoi(key)
	if err != nil {
		return curated.Errorf(InvalidKey, key)
	}

	db, err := database.StartSession(dbPath, database.ActivityModifying, initDBSession)
	if err != nil {
		return err
	}

	ent, err := db.Get(v)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "%s\ndelete? (y/n): ", ent)

	confirm := make([]byte, 32)
	n, err := confirmation.Read(confirm)
	if err != nil && err != io.EOF {
		return curated.Errorf(RegressionError, err)
	}

	if n == 0 || (confirm[0] != 'y' && confirm[0] != 'Y') {
		return db.EndSession(false)
	}

	if err := db.Delete(v); err != nil {
		return err
	}

	if err := db.EndSession(true); err != nil {
		return err
	}

	fmt.Fprintf(output, "deleted test #%03d from regression database\n", v)

	return nil
}

// outcome of a single regression test.
type outcome struct {
	key    int
	ent    *ScenarioEntry
	ok     bool
	reason string
	err    error
}

// RegressRun runs the tests in the regression database. The keys list
// specifies which entries to test. An empty keys list means that every entry
// is tested.
//
// Tests are run concurrently but the results are written in key order once
// every test has completed. A Failures error is returned if any test did not
// succeed.
func RegressRun(ctx context.Context, dbPath string, output io.Writer, verbose bool, keys []string) error {
	db, err := database.StartSession(dbPath, database.ActivityReading, initDBSession)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	keysV := make([]int, 0, len(keys))
	for _, k := range keys {
		v, err := strconv.Atoi(k)
		if err != nil {
			return curated.Errorf(InvalidKey, k)
		}
		keysV = append(keysV, v)
	}
	slices.Sort(keysV)
	keysV = slices.Compact(keysV)

	var outcomes []*outcome

	_, err = db.SelectKeys(func(key int, e database.Entry) error {
		ent, ok := e.(*ScenarioEntry)
		if !ok {
			return curated.Errorf(RegressionError, fmt.Sprintf("entry %03d is not a scenario", key))
		}
		outcomes = append(outcomes, &outcome{key: key, ent: ent})
		return nil
	}, keysV...)
	if err != nil {
		return err
	}

	if len(outcomes) == 0 {
		_, err := io.WriteString(output, "regression database is empty\n")
		return err
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, o := range outcomes {
		g.Go(func() error {
			o.ok, o.reason, o.err = o.ent.regress(ctx, false)
			return nil
		})
	}

	_ = g.Wait()

	numSucceed := 0
	numFail := 0
	numError := 0

	for _, o := range outcomes {
		switch {
		case o.err != nil:
			numError++
			fmt.Fprintf(output, " ERROR: %03d %s\n", o.key, o.ent)
			logger.Logf(logger.Verbose(verbose), "regression", "%03d: %v", o.key, o.err)
			if verbose {
				fmt.Fprintf(output, "  %s\n", o.err)
			}
		case !o.ok:
			numFail++
			fmt.Fprintf(output, "failure: %03d %s\n", o.key, o.ent)
			logger.Logf(logger.Verbose(verbose), "regression", "%03d: %s", o.key, o.reason)
			if verbose {
				fmt.Fprintf(output, "  %s\n", o.reason)
			}
		default:
			numSucceed++
			fmt.Fprintf(output, "succeed: %03d %s\n", o.key, o.ent)
		}
	}

	fmt.Fprintf(output, "regression tests: %d succeed, %d fail", numSucceed, numFail+numError)
	if numError > 0 {
		io.WriteString(output, " [with errors]")
	}
	io.WriteString(output, "\n")

	if numFail+numError > 0 {
		return curated.Errorf(Failures, numFail+numError, len(outcomes))
	}

	return nil
}
