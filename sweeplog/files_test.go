// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweeplog

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, data string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(data), 0666); err != nil {
			t.Fatal(err)
		}
		return path
	}
	a := write("a.txt", "Testing Compaction Ratio: 0.5\nBM_A/1 1 ns 1 ns 1 items_per_second=1M/s\n")
	// b starts with a result that would inherit 0.5 if the context
	// leaked across files.
	b := write("b.txt", "BM_B/1 1 ns 1 ns 1 items_per_second=1M/s\nTesting Compaction Ratio: 0.9\nBM_B/2 1 ns 1 ns 1 items_per_second=2M/s\n")

	f := &Files{Paths: []string{a, b}}
	var got []string
	for f.Scan() {
		rec := f.Result()
		file, _ := rec.Pos()
		got = append(got, filepath.Base(file)+":"+rec.Name)
		if rec.Name == "BM_B" && rec.Ratio != 0.9 {
			t.Errorf("BM_B ratio %v, want 0.9", rec.Ratio)
		}
	}
	if err := f.Err(); err != nil {
		t.Fatal(err)
	}
	want := []string{"a.txt:BM_A", "b.txt:BM_B"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("got %v, want %v", got, want)
	}
	if st := f.Stats(); st.Orphaned != 1 || st.Records != 2 || st.Lines != 5 {
		t.Errorf("got stats %+v", st)
	}
}

func TestFilesMissing(t *testing.T) {
	f := &Files{Paths: []string{filepath.Join(t.TempDir(), "nope.txt")}}
	if f.Scan() {
		t.Fatal("Scan succeeded on a missing file")
	}
	if !os.IsNotExist(f.Err()) {
		t.Errorf("got error %v, want not-exist", f.Err())
	}
}

func TestFilesCompressed(t *testing.T) {
	const log = "Testing Compaction Ratio: 0.5\nBM_A/1 1 ns 1 ns 1 items_per_second=1M/s\n"
	dir := t.TempDir()
	compress := func(name string, mk func(io.Writer) (io.WriteCloser, error)) string {
		t.Helper()
		var buf bytes.Buffer
		zw, err := mk(&buf)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := io.WriteString(zw, log); err != nil {
			t.Fatal(err)
		}
		if err := zw.Close(); err != nil {
			t.Fatal(err)
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, buf.Bytes(), 0666); err != nil {
			t.Fatal(err)
		}
		return path
	}
	gz := compress("a.txt.gz", func(w io.Writer) (io.WriteCloser, error) { return gzip.NewWriter(w), nil })
	zst := compress("b.txt.zst", func(w io.Writer) (io.WriteCloser, error) { return zstd.NewWriter(w) })

	f := &Files{Paths: []string{gz, zst}}
	n := 0
	for f.Scan() {
		if rec := f.Result(); rec.Name != "BM_A" || rec.Ratio != 0.5 {
			t.Errorf("got %+v", rec)
		}
		n++
	}
	if err := f.Err(); err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("got %d records, want 2", n)
	}
}

func TestFilesCorruptGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.gz")
	if err := os.WriteFile(path, []byte("not gzip"), 0666); err != nil {
		t.Fatal(err)
	}
	f := &Files{Paths: []string{path}}
	if f.Scan() {
		t.Fatal("Scan succeeded on a corrupt file")
	}
	if f.Err() == nil {
		t.Error("no error for a corrupt file")
	}
}
