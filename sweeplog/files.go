// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweeplog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// A Files reads sweep records from a sequence of input files.
//
// Each file starts with no compaction ratio: a ratio announced at the
// end of one file does not apply to the results at the start of the
// next.
//
// Files named *.gz or *.zst are decompressed as they are read.
type Files struct {
	// Paths is the list of file names to read in.
	Paths []string

	// AllowStdin indicates that the path "-" should be treated as
	// stdin and if the file list is empty, it should be treated
	// as consisting of stdin.
	//
	// This is generally the desired behavior when the file list
	// comes from command-line flags.
	AllowStdin bool

	// Parser is passed on to the underlying Reader.
	Parser *Parser

	// inputs is the sequence of remaining inputs, or nil if this
	// Files has not started yet. Note that this distinguishes nil
	// from length 0.
	inputs []string

	reader Reader
	in     io.ReadCloser
	err    error
}

// init does first-use initialization of f.
func (f *Files) init() {
	f.inputs = []string{}
	if f.AllowStdin && len(f.Paths) == 0 {
		f.inputs = append(f.inputs, "-")
	}
	f.inputs = append(f.inputs, f.Paths...)
	f.reader.Parser = f.Parser
}

// Scan advances to the next record in the sequence of files and
// reports whether a record was read. The caller should use the
// Result method to get the record. If Scan reaches the end of the
// file sequence, or if an I/O error occurs, it returns false. In this
// case, the caller should use the Err method to check for errors.
func (f *Files) Scan() bool {
	if f.err != nil {
		return false
	}

	if f.inputs == nil {
		f.init()
	}

	for {
		if f.in == nil {
			// Open the next file.
			if len(f.inputs) == 0 {
				return false
			}
			path := f.inputs[0]
			f.inputs = f.inputs[1:]

			if f.AllowStdin && path == "-" {
				f.in = io.NopCloser(os.Stdin)
			} else {
				in, err := openInput(path)
				if err != nil {
					f.err = err
					return false
				}
				f.in = in
			}
			f.reader.Reset(f.in, path)
		}

		if f.reader.Scan() {
			return true
		}
		err := f.reader.Err()
		f.in.Close()
		f.in = nil
		if err != nil {
			f.err = err
			break
		}
		// Just an EOF. Open the next file.
	}
	return false
}

// Result returns the record that was just read by Scan.
func (f *Files) Result() *Record {
	return f.reader.Result()
}

// Err returns the I/O error that stopped Scan, if any.
// If Scan stopped because it read each file to completion,
// or if Scan has not yet returned false, Err returns nil.
func (f *Files) Err() error {
	return f.err
}

// Stats returns the line counts accumulated over all files read so
// far.
func (f *Files) Stats() Stats {
	return f.reader.Stats()
}

// openInput opens path, decompressing it if its name says it is
// compressed.
func openInput(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch filepath.Ext(path) {
	case ".gz":
		zr, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &decompressor{zr, []io.Closer{zr, file}}, nil
	case ".zst":
		zr, err := zstd.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		dec := zr.IOReadCloser()
		return &decompressor{dec, []io.Closer{dec, file}}, nil
	}
	return file, nil
}

// A decompressor reads through a decompressing reader and closes it
// along with the file underneath.
type decompressor struct {
	io.Reader
	closers []io.Closer
}

func (d *decompressor) Close() error {
	var first error
	for _, c := range d.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
