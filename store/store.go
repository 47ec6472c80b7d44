// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store keeps the raw models of sweep runs in a SQL
// database so that runs can be reported on again later or compared.
//
// Only mysql and sqlite3 are explicitly supported; the caller must
// import the driver it names.
package store

import (
	"bytes"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"golang.org/x/net/context"

	"github.com/orderbook/ratiostudy/sweep"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("run not found")

// DB is a store of sweep runs. It's safe for concurrent use by
// multiple goroutines.
type DB struct {
	sql    *sql.DB
	driver string

	now func() time.Time // replaced during testing
}

// A Run describes one stored sweep.
type Run struct {
	ID    int64
	UUID  string
	Label string
	// Digest identifies the stored values. Saving the same sweep
	// twice gives the same digest.
	Digest  string
	Created time.Time
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Missing tables are
// created.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if driverName == "sqlite3" {
		// Every connection to :memory: is a new database.
		db.SetMaxOpenConns(1)
	}
	d := &DB{sql: db, driver: driverName, now: time.Now}
	if err := d.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	UUID CHAR(36) NOT NULL,
	Label VARCHAR(255) NOT NULL,
	Digest CHAR(16) NOT NULL,
	Created BIGINT NOT NULL
);
CREATE TABLE IF NOT EXISTS Throughput (
	RunID BIGINT UNSIGNED,
	Seq BIGINT UNSIGNED,
	Op VARCHAR(255) NOT NULL,
	Ratio DOUBLE NOT NULL,
	Depth BIGINT NOT NULL,
	MOps DOUBLE NOT NULL,
	PRIMARY KEY (RunID, Seq),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS Latency (
	RunID BIGINT UNSIGNED,
	Seq BIGINT UNSIGNED,
	Op VARCHAR(255) NOT NULL,
	Ratio DOUBLE NOT NULL,
	Depth BIGINT NOT NULL,
	Percentile VARCHAR(32) NOT NULL,
	Nanos DOUBLE NOT NULL,
	PRIMARY KEY (RunID, Seq),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
`))

// createTables creates any missing tables on the connection in
// db.sql.
func (db *DB) createTables() error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{db.driver: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// Close closes the database connections.
func (db *DB) Close() error {
	return db.sql.Close()
}

// SaveRun stores m under label and returns the new run.
//
// Values are stored in the model's insertion order, so LoadRun
// returns a model that orders operations, ratios and depths the same
// way.
func (db *DB) SaveRun(ctx context.Context, label string, m *sweep.Model) (_ *Run, err error) {
	run := &Run{
		UUID:    uuid.New().String(),
		Label:   label,
		Digest:  Digest(m),
		Created: db.now().UTC().Truncate(time.Second),
	}

	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, "INSERT INTO Runs(UUID, Label, Digest, Created) VALUES (?, ?, ?, ?)", run.UUID, run.Label, run.Digest, run.Created.Unix())
	if err != nil {
		return nil, err
	}
	if run.ID, err = res.LastInsertId(); err != nil {
		return nil, err
	}

	insThroughput, err := tx.PrepareContext(ctx, "INSERT INTO Throughput(RunID, Seq, Op, Ratio, Depth, MOps) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return nil, err
	}
	defer insThroughput.Close()
	var seq int64
	for _, op := range m.Throughput.Ops() {
		s := m.Throughput.Op(op)
		for _, ratio := range s.Ratios() {
			for _, depth := range s.DepthsAt(ratio) {
				v, _ := s.At(ratio, depth)
				if _, err := insThroughput.ExecContext(ctx, run.ID, seq, op, ratio, depth, v); err != nil {
					return nil, fmt.Errorf("insert throughput: %w", err)
				}
				seq++
			}
		}
	}

	insLatency, err := tx.PrepareContext(ctx, "INSERT INTO Latency(RunID, Seq, Op, Ratio, Depth, Percentile, Nanos) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return nil, err
	}
	defer insLatency.Close()
	seq = 0
	for _, op := range m.Latency.Ops() {
		s := m.Latency.Op(op)
		for _, ratio := range s.Ratios() {
			for _, depth := range s.DepthsAt(ratio) {
				ps, _ := s.At(ratio, depth)
				for _, label := range ps.Labels() {
					ns, _ := ps.Get(label)
					if _, err := insLatency.ExecContext(ctx, run.ID, seq, op, ratio, depth, label, ns); err != nil {
						return nil, fmt.Errorf("insert latency: %w", err)
					}
					seq++
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return run, nil
}

// Runs returns every stored run, newest first.
func (db *DB) Runs(ctx context.Context) ([]Run, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT "+runColumns+" FROM Runs ORDER BY RunID DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

const runColumns = "RunID, UUID, Label, Digest, Created"

// scanRun reads the runColumns of a row.
func scanRun(row interface{ Scan(...interface{}) error }) (*Run, error) {
	var r Run
	var created int64
	if err := row.Scan(&r.ID, &r.UUID, &r.Label, &r.Digest, &created); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	r.Created = time.Unix(created, 0).UTC()
	return &r, nil
}

// FindRun returns the newest run with the given label.
func (db *DB) FindRun(ctx context.Context, label string) (*Run, error) {
	return scanRun(db.sql.QueryRowContext(ctx, "SELECT "+runColumns+" FROM Runs WHERE Label = ? ORDER BY RunID DESC LIMIT 1", label))
}

// FindDigest returns the newest run whose values have the given
// digest.
func (db *DB) FindDigest(ctx context.Context, digest string) (*Run, error) {
	return scanRun(db.sql.QueryRowContext(ctx, "SELECT "+runColumns+" FROM Runs WHERE Digest = ? ORDER BY RunID DESC LIMIT 1", digest))
}

// LoadRun returns the model stored for run id.
func (db *DB) LoadRun(ctx context.Context, id int64) (*sweep.Model, error) {
	var n int
	if err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Runs WHERE RunID = ?", id).Scan(&n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	var b sweep.Builder
	rows, err := db.sql.QueryContext(ctx, "SELECT Op, Ratio, Depth, MOps FROM Throughput WHERE RunID = ? ORDER BY Seq", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var op string
		var ratio, mops float64
		var depth int
		if err := rows.Scan(&op, &ratio, &depth, &mops); err != nil {
			return nil, err
		}
		b.SetThroughput(op, ratio, depth, mops)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lrows, err := db.sql.QueryContext(ctx, "SELECT Op, Ratio, Depth, Percentile, Nanos FROM Latency WHERE RunID = ? ORDER BY Seq", id)
	if err != nil {
		return nil, err
	}
	defer lrows.Close()
	for lrows.Next() {
		var op, label string
		var ratio, ns float64
		var depth int
		if err := lrows.Scan(&op, &ratio, &depth, &label, &ns); err != nil {
			return nil, err
		}
		b.SetLatency(op, ratio, depth, label, ns)
	}
	if err := lrows.Err(); err != nil {
		return nil, err
	}
	return b.Model(), nil
}

// CountRuns returns the number of stored runs.
func (db *DB) CountRuns() (int, error) {
	var n int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Runs").Scan(&n)
	return n, err
}

// Digest returns a hash of every value in m, in order, as 16 hex
// digits.
func Digest(m *sweep.Model) string {
	h := xxhash.New()
	var buf [8]byte
	str := func(s string) {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(s)))
		h.Write(buf[:])
		h.WriteString(s)
	}
	num := func(x float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(x))
		h.Write(buf[:])
	}
	for _, op := range m.Throughput.Ops() {
		s := m.Throughput.Op(op)
		for _, ratio := range s.Ratios() {
			for _, depth := range s.DepthsAt(ratio) {
				v, _ := s.At(ratio, depth)
				str("T" + op)
				num(ratio)
				num(float64(depth))
				num(v)
			}
		}
	}
	for _, op := range m.Latency.Ops() {
		s := m.Latency.Op(op)
		for _, ratio := range s.Ratios() {
			for _, depth := range s.DepthsAt(ratio) {
				ps, _ := s.At(ratio, depth)
				for _, label := range ps.Labels() {
					ns, _ := ps.Get(label)
					str("L" + op)
					num(ratio)
					num(float64(depth))
					str(label)
					num(ns)
				}
			}
		}
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
