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

package database

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strconv"

	"github.com/mrav/corebench/curated"
)

// Sentinal error patterns.
const (
	DatabaseError = "database: %v"
	KeyNotFound   = "database: key not available (%d)"
	ReadOnly      = "database: session is read only"
	Corrupt       = "database: line %d: %v"
)

// arbitrary maximum number of entries.
const maxEntries = 1000

const (
	leaderFieldKey int = iota
	leaderFieldID
	numLeaderFields
)

// Activity is used to specify the type of activity that will be happening
// during the session.
type Activity int

// List of valid Activity values.
const (
	ActivityReading Activity = iota
	ActivityModifying
	ActivityCreating
)

// Session keeps track of a database session.
type Session struct {
	path     string
	activity Activity

	entries    map[int]Entry
	entryTypes map[string]Deserialiser
}

// StartSession starts/initialises a new DB session. The init function is
// called before the database file is read.
func StartSession(path string, activity Activity, init func(*Session) error) (*Session, error) {
	db := &Session{
		path:       path,
		activity:   activity,
		entries:    make(map[int]Entry),
		entryTypes: make(map[string]Deserialiser),
	}

	if init != nil {
		if err := init(db); err != nil {
			return nil, curated.Errorf(DatabaseError, err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && activity != ActivityModifying {
			return db, nil
		}
		return nil, curated.Errorf(DatabaseError, err)
	}
	defer f.Close()

	if err := db.read(f); err != nil {
		return nil, err
	}

	return db, nil
}

// EndSession closes the database. If commitChanges is true then the entries
// are written to the database file, replacing the previous contents.
func (db *Session) EndSession(commitChanges bool) error {
	if !commitChanges || db.activity == ActivityReading {
		return nil
	}

	f, err := os.Create(db.path)
	if err != nil {
		return curated.Errorf(DatabaseError, err)
	}

	err = db.write(f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = curated.Errorf(DatabaseError, cerr)
	}

	return err
}

func (db *Session) read(r io.Reader) error {
	rd := csv.NewReader(r)
	rd.FieldsPerRecord = -1

	for {
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return curated.Errorf(DatabaseError, err)
		}

		line, _ := rd.FieldPos(0)

		if len(rec) < numLeaderFields {
			return curated.Errorf(Corrupt, line, "missing entry type")
		}

		key, err := strconv.Atoi(rec[leaderFieldKey])
		if err != nil || key < 0 || key >= maxEntries {
			return curated.Errorf(Corrupt, line, fmt.Sprintf("invalid key (%s)", rec[leaderFieldKey]))
		}

		if _, ok := db.entries[key]; ok {
			return curated.Errorf(Corrupt, line, fmt.Sprintf("duplicate key (%d)", key))
		}

		des, ok := db.entryTypes[rec[leaderFieldID]]
		if !ok {
			return curated.Errorf(Corrupt, line, fmt.Sprintf("unrecognised entry type (%s)", rec[leaderFieldID]))
		}

		ent, err := des(rec[numLeaderFields:])
		if err != nil {
			return curated.Errorf(Corrupt, line, err)
		}

		db.entries[key] = ent
	}

	return nil
}

func (db *Session) write(w io.Writer) error {
	wr := csv.NewWriter(w)

	for _, key := range db.SortedKeyList() {
		ent := db.entries[key]

		ser, err := ent.Serialise()
		if err != nil {
			return curated.Errorf(DatabaseError, err)
		}

		rec := append([]string{fmt.Sprintf("%03d", key), ent.ID()}, ser...)
		if err := wr.Write(rec); err != nil {
			return curated.Errorf(DatabaseError, err)
		}
	}

	wr.Flush()
	if err := wr.Error(); err != nil {
		return curated.Errorf(DatabaseError, err)
	}

	return nil
}

// NumEntries returns the number of entries in the database.
func (db Session) NumEntries() int {
	return len(db.entries)
}

// SortedKeyList returns a sorted list of database keys.
func (db Session) SortedKeyList() []int {
	keyList := make([]int, 0, len(db.entries))
	for k := range db.entries {
		keyList = append(keyList, k)
	}
	slices.Sort(keyList)
	return keyList
}

// List the entries in key order.
func (db Session) List(output io.Writer) error {
	if db.NumEntries() == 0 {
		_, err := io.WriteString(output, "database is empty\n")
		return err
	}

	for _, key := range db.SortedKeyList() {
		if _, err := fmt.Fprintf(output, "%03d %s\n", key, db.entries[key]); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(output, "Total: %d\n", db.NumEntries())
	return err
}

// Add an entry to the db. Returns the key of the new entry.
func (db *Session) Add(ent Entry) (int, error) {
	if db.activity == ActivityReading {
		return 0, curated.Errorf(ReadOnly)
	}

	if _, ok := db.entryTypes[ent.ID()]; !ok {
		return 0, curated.Errorf(DatabaseError, fmt.Sprintf("unregistered entry type (%s)", ent.ID()))
	}

	// find spare key
	var key int
	for key = 0; key < maxEntries; key++ {
		if _, ok := db.entries[key]; !ok {
			break
		}
	}

	if key == maxEntries {
		return 0, curated.Errorf(DatabaseError, fmt.Sprintf("maximum entries exceeded (max %d)", maxEntries))
	}

	db.entries[key] = ent

	return key, nil
}

// Get returns the entry with the specified key.
func (db Session) Get(key int) (Entry, error) {
	ent, ok := db.entries[key]
	if !ok {
		return nil, curated.Errorf(KeyNotFound, key)
	}
	return ent, nil
}

// Delete deletes an entry with the specified key. The CleanUp() function of
// the entry is called before it is removed.
func (db *Session) Delete(key int) error {
	if db.activity == ActivityReading {
		return curated.Errorf(ReadOnly)
	}

	ent, ok := db.entries[key]
	if !ok {
		return curated.Errorf(KeyNotFound, key)
	}

	if err := ent.CleanUp(); err != nil {
		return curated.Errorf(DatabaseError, err)
	}

	delete(db.entries, key)

	return nil
}
