// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out plain-text tables with aligned columns.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Many of its methods return the Table so callers can easily chain
// them to build up many cells at once.
type Table struct {
	rows [][]cell
	cols int
}

type cell struct {
	value      string
	leftMargin string
	alignment  align
	set        bool
}

// A CellOption modifies a cell as it is added.
type CellOption func(c *cell)

// LeftMargin replaces the default single-space margin to the left
// of a cell.
func LeftMargin(x string) CellOption {
	return func(c *cell) {
		c.leftMargin = x
	}
}

var (
	Left   CellOption = func(c *cell) { c.alignment = alignLeft }
	Center CellOption = func(c *cell) { c.alignment = alignCenter }
	Right  CellOption = func(c *cell) { c.alignment = alignRight }
)

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

func (a align) pad(s string, w int) string {
	n := utf8.RuneCountInString(s)
	switch a {
	case alignCenter:
		l := (w - n) / 2
		return strings.Repeat(" ", l) + s + strings.Repeat(" ", w-n-l)
	case alignRight:
		return strings.Repeat(" ", w-n) + s
	}
	return s + strings.Repeat(" ", w-n)
}

// Row starts a new row in table t.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Col skips to column col of the current row. Columns are numbered
// starting at 0.
func (t *Table) Col(col int) *Table {
	r := t.cur()
	if col < len(*r) {
		panic(fmt.Sprintf("cannot move from column %d to earlier column %d", len(*r), col))
	}
	for len(*r) < col {
		*r = append(*r, cell{})
	}
	return t
}

// Cell adds a cell at the current row and column.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	r := t.cur()
	c := cell{value: value, set: true}
	if len(*r) > 0 && value != "" {
		c.leftMargin = " "
	}
	for _, o := range opts {
		o(&c)
	}
	*r = append(*r, c)
	if len(*r) > t.cols {
		t.cols = len(*r)
	}
	return t
}

func (t *Table) cur() *[]cell {
	if len(t.rows) == 0 {
		t.Row()
	}
	return &t.rows[len(t.rows)-1]
}

// Format lays out table t and writes it to w. Trailing spaces are
// never printed.
func (t *Table) Format(w io.Writer) error {
	// Every cell in a column shares the widest margin of that
	// column so that values line up.
	lmargin := make([]int, t.cols)
	ws := make([]int, t.cols)
	for _, r := range t.rows {
		for col, c := range r {
			lmargin[col] = max(lmargin[col], utf8.RuneCountInString(c.leftMargin))
			ws[col] = max(ws[col], utf8.RuneCountInString(c.value))
		}
	}

	var b strings.Builder
	for _, r := range t.rows {
		b.Reset()
		for col, c := range r {
			if !c.set {
				b.WriteString(strings.Repeat(" ", lmargin[col]+ws[col]))
				continue
			}
			b.WriteString(strings.Repeat(" ", lmargin[col]-utf8.RuneCountInString(c.leftMargin)))
			b.WriteString(c.leftMargin)
			b.WriteString(c.alignment.pad(c.value, ws[col]))
		}
		if _, err := fmt.Fprintf(w, "%s\n", strings.TrimRight(b.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
