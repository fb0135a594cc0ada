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

// Package database is a very simple way of storing structured and arbitrary
// entry types. It's as simple as simple can be but is still useful in helping
// to organise what is essentially a flat file.
//
// Use of a database requires starting a "session". We do this with the
// StartSession() function, coupled with an EndSession() once we're done. For
// example (error handling removed for clarity):
//
//	db, _ := database.StartSession(dbPath, database.ActivityCreating, initDBSession)
//	defer db.EndSession(true)
//
// The second argument describes what will happen during the session.
// ActivityCreating creates the database file if it does not exist.
// ActivityModifying requires the file to exist. ActivityReading never
// changes the file and a missing file is treated as an empty database.
//
// The third argument is the initialisation function. It is called before the
// file is read and should register the entry types the database may contain:
//
//	func initDBSession(db *database.Session) error {
//		return db.AddEntryType("scenario", deserialiseScenario)
//	}
//
// The deserialiser is called for every entry of that type found in the file.
// It receives the fields of the entry, not including the key or the type ID,
// and returns a value that satisfies the Entry interface.
//
// On disk, each entry is one line of comma separated values: the key, the
// type ID and then the serialised fields.
package database
