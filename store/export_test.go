// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"database/sql"
	"time"
)

func DBSQL(db *DB) *sql.DB {
	return db.sql
}

// SetNow fixes the creation time recorded for new runs.
// A zero t restores time.Now.
func SetNow(db *DB, t time.Time) {
	if t.IsZero() {
		db.now = time.Now
		return
	}
	db.now = func() time.Time { return t }
}
