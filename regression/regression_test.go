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

package regression_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mrav/corebench/curated"
	"github.com/mrav/corebench/database"
	"github.com/mrav/corebench/regression"
	"github.com/mrav/corebench/test"
)

func add(t *testing.T, dbPath string, script string) error {
	t.Helper()
	ent, err := regression.NewScenarioEntry(filepath.Join("testdata", script))
	test.DemandSuccess(t, err)
	return regression.RegressAdd(context.Background(), dbPath, &bytes.Buffer{}, ent)
}

func TestAddRunList(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "db")

	var b bytes.Buffer
	ent, err := regression.NewScenarioEntry(filepath.Join("testdata", "store.lua"))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, regression.RegressAdd(context.Background(), dbPath, &b, ent))
	test.ExpectEquality(t, strings.HasSuffix(b.String(), "added: 000 store.lua [model] cycles=15\n"), true)
	test.ExpectEquality(t, len(ent.Digest()), 40)

	b.Reset()
	test.ExpectSuccess(t, regression.RegressList(dbPath, &b))
	test.ExpectEquality(t, b.String(), "000 store.lua [model] cycles=15\nTotal: 1\n")

	test.DemandSuccess(t, add(t, dbPath, "store.lua"))

	b.Reset()
	test.ExpectSuccess(t, regression.RegressRun(context.Background(), dbPath, &b, false, nil))
	test.ExpectEquality(t, b.String(), "succeed: 000 store.lua [model] cycles=15\n"+
		"succeed: 001 store.lua [model] cycles=15\n"+
		"regression tests: 2 succeed, 0 fail\n")

	b.Reset()
	test.ExpectSuccess(t, regression.RegressRun(context.Background(), dbPath, &b, false, []string{"1"}))
	test.ExpectEquality(t, b.String(), "succeed: 001 store.lua [model] cycles=15\n"+
		"regression tests: 1 succeed, 0 fail\n")

	err = regression.RegressRun(context.Background(), dbPath, &b, false, []string{"x"})
	test.ExpectEquality(t, curated.Is(err, regression.InvalidKey), true)

	err = regression.RegressRun(context.Background(), dbPath, &b, false, []string{"7"})
	test.ExpectEquality(t, curated.Is(err, database.KeyNotFound), true)
}

func TestNotAdded(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "db")

	err := add(t, dbPath, "wrong.lua")
	test.ExpectEquality(t, curated.Is(err, regression.NotAdded), true)

	err = add(t, dbPath, "missing.lua")
	test.ExpectEquality(t, curated.Is(err, regression.NotAdded), true)

	var b bytes.Buffer
	test.ExpectSuccess(t, regression.RegressList(dbPath, &b))
	test.ExpectEquality(t, b.String(), "database is empty\n")

	b.Reset()
	test.ExpectSuccess(t, regression.RegressRun(context.Background(), dbPath, &b, false, nil))
	test.ExpectEquality(t, b.String(), "regression database is empty\n")
}

func TestFailure(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "db")

	script, err := filepath.Abs(filepath.Join("testdata", "store.lua"))
	test.DemandSuccess(t, err)

	// the first entry has the wrong digest and the second names a script
	// that doesn't exist
	db := fmt.Sprintf("000,scenario,%s,model,15,0123456789abcdef0123456789abcdef01234567\n"+
		"001,scenario,%s,model,15,0123456789abcdef0123456789abcdef01234567\n",
		script, filepath.Join(filepath.Dir(script), "missing.lua"))
	test.DemandSuccess(t, os.WriteFile(dbPath, []byte(db), 0600))

	var b bytes.Buffer
	err = regression.RegressRun(context.Background(), dbPath, &b, true, nil)
	test.ExpectEquality(t, curated.Is(err, regression.Failures), true)

	s := b.String()
	test.ExpectEquality(t, strings.Contains(s, "failure: 000 store.lua [model] cycles=15\n  digest mismatch: expected 0123"), true)
	test.ExpectEquality(t, strings.Contains(s, " ERROR: 001 missing.lua [model] cycles=15\n"), true)
	test.ExpectEquality(t, strings.HasSuffix(s, "regression tests: 0 succeed, 2 fail [with errors]\n"), true)
}

func TestCyclesChanged(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "db")
	test.DemandSuccess(t, add(t, dbPath, "store.lua"))

	// running the entry for fewer cycles stops before the final state is
	// reached
	b, err := os.ReadFile(dbPath)
	test.DemandSuccess(t, err)
	b = []byte(strings.Replace(string(b), ",model,15,", ",model,5,", 1))
	test.DemandSuccess(t, os.WriteFile(dbPath, b, 0600))

	var out bytes.Buffer
	err = regression.RegressRun(context.Background(), dbPath, &out, true, nil)
	test.ExpectEquality(t, curated.Is(err, regression.Failures), true)
	test.ExpectEquality(t, strings.Contains(out.String(), "failure: 000 store.lua [model] cycles=5\n  scenario: "), true)
}

func TestDelete(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "db")
	test.DemandSuccess(t, add(t, dbPath, "store.lua"))

	var b bytes.Buffer
	test.ExpectSuccess(t, regression.RegressDelete(dbPath, &b, strings.NewReader("n\n"), "0"))
	test.ExpectEquality(t, b.String(), "store.lua [model] cycles=15\ndelete? (y/n): ")

	b.Reset()
	test.ExpectSuccess(t, regression.RegressList(dbPath, &b))
	test.ExpectEquality(t, b.String(), "000 store.lua [model] cycles=15\nTotal: 1\n")

	b.Reset()
	test.ExpectSuccess(t, regression.RegressDelete(dbPath, &b, strings.NewReader("y\n"), "0"))
	test.ExpectEquality(t, strings.HasSuffix(b.String(), "deleted test #000 from regression database\n"), true)

	b.Reset()
	test.ExpectSuccess(t, regression.RegressList(dbPath, &b))
	test.ExpectEquality(t, b.String(), "database is empty\n")

	err := regression.RegressDelete(dbPath, &b, strings.NewReader("y\n"), "zero")
	test.ExpectEquality(t, curated.Is(err, regression.InvalidKey), true)

	err = regression.RegressDelete(dbPath, &b, strings.NewReader("y\n"), "0")
	test.ExpectEquality(t, curated.Is(err, database.KeyNotFound), true)
}
