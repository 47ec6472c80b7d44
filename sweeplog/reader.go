// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweeplog

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// maxLineLen bounds the length of a line the Reader will parse.
// Longer lines are skipped.
const maxLineLen = 64 << 10

// A Reader reads the records of a sweep log.
//
// Its API is modeled on bufio.Scanner. Unlike the scanner, the
// Records it returns are freshly allocated and may be retained, and
// an over-long line is skipped rather than ending the scan.
//
// To construct a new Reader, either call NewReader, or call Reset on
// a zeroed Reader.
type Reader struct {
	// Parser recognizes announcement and result lines. If nil,
	// the default parser is used.
	Parser *Parser

	br  *bufio.Reader
	eof bool
	err error // current I/O error

	ctx      Context
	rec      *Record
	fileName string
	line     int

	stats Stats
}

// Stats counts the lines a Reader has classified.
type Stats struct {
	Lines         int // lines read
	Announcements int // ratio announcements
	Records       int // records returned
	Orphaned      int // result lines dropped for lack of a ratio
	Long          int // lines skipped for exceeding the length limit
}

// Add returns the sum of s and t.
func (s Stats) Add(t Stats) Stats {
	return Stats{
		Lines:         s.Lines + t.Lines,
		Announcements: s.Announcements + t.Announcements,
		Records:       s.Records + t.Records,
		Orphaned:      s.Orphaned + t.Orphaned,
		Long:          s.Long + t.Long,
	}
}

func (s Stats) String() string {
	str := fmt.Sprintf("%d lines, %d ratio announcements, %d records, %d orphaned", s.Lines, s.Announcements, s.Records, s.Orphaned)
	if s.Long > 0 {
		str += fmt.Sprintf(", %d too long", s.Long)
	}
	return str
}

// NewReader constructs a reader to parse a sweep log from r.
// fileName is used in error messages and record positions; it is
// purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input.
// The new input starts with no compaction ratio. Stats carry over.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	if r.br == nil {
		r.br = bufio.NewReaderSize(ior, maxLineLen)
	} else {
		r.br.Reset(ior)
	}
	r.eof = false
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.err = nil
	r.ctx = Context{}
	r.rec = nil
	r.fileName = fileName
	r.line = 0
}

// Scan advances the reader to the next record and reports whether a
// record was read.
// The caller should use the Result method to get the record.
// If Scan reaches EOF or an I/O error occurs, it returns false,
// in which case the caller should use the Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil || r.eof || r.br == nil {
		return false
	}
	p := r.Parser
	if p == nil {
		p = defaultParser
	}

	r.rec = nil
	for !r.eof {
		line, long, err := r.readLine()
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line+1, err)
			return false
		}
		if line == nil && !long {
			break
		}
		r.line++
		r.stats.Lines++
		if long {
			r.stats.Long++
			continue
		}

		var kind LineKind
		r.ctx, r.rec, kind = p.ParseLine(r.ctx, line)
		switch kind {
		case LineRatio:
			r.stats.Announcements++
		case LineOrphan:
			r.stats.Orphaned++
		case LineResult:
			r.stats.Records++
			r.rec.fileName, r.rec.line = r.fileName, r.line
			return true
		}
	}
	return false
}

// readLine returns the next line without its line ending. If the line
// does not fit in the buffer, readLine discards it and reports long.
// At the end of the input, line is nil and err is io.EOF; a final
// line without a newline is returned along with io.EOF.
func (r *Reader) readLine() (line []byte, long bool, err error) {
	line, err = r.br.ReadSlice('\n')
	for err == bufio.ErrBufferFull {
		long = true
		_, err = r.br.ReadSlice('\n')
	}
	if long {
		return nil, true, err
	}
	if len(line) == 0 {
		return nil, false, err
	}
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	return line, false, err
}

// Result returns the record that was just read by Scan, or nil if
// Scan has not returned true.
func (r *Reader) Result() *Record {
	return r.rec
}

// Context returns the parsing context after the last line read.
func (r *Reader) Context() Context {
	return r.ctx
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}

// Stats returns the line counts accumulated since the Reader was
// created.
func (r *Reader) Stats() Stats {
	return r.stats
}
