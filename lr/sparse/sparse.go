/*
Package sparse stores the sparsely populated integer tables the LR(0)
builder works with: cells addressed by (row, column), each holding a pair
of int32 slots rather than a single value. The pair is the point — when
conflict detection runs a state's actions through a matrix, the first
action to claim the state's cell takes the first slot and a competitor
takes the second, so a cell with a live second slot is a conflict, found
without any bookkeeping beside the matrix itself. The transition matrix of
a parsing table uses the same cells with just their first slot populated.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package sparse

import "sort"

// None marks an empty cell slot (min int32). Stored values must be greater.
const None int32 = -1 << 31

// cell is one populated position. Cells are kept sorted by (row, col), so
// locating one is a binary search and insertion shifts a suffix.
type cell struct {
	row, col int
	a, b     int32
}

// Matrix is a coordinate-list sparse matrix of int32 pairs. Rows and
// columns are open-ended: a cell exists once a value lands on it, and
// reading anywhere else yields None.
type Matrix struct {
	cells []cell
}

// New creates an empty matrix.
func New() *Matrix {
	return &Matrix{}
}

// locate returns the position of (row, col) in the sorted cell list and
// whether it is populated; when absent, the position is the insertion
// point that keeps the list sorted.
func (m *Matrix) locate(row, col int) (int, bool) {
	i := sort.Search(len(m.cells), func(k int) bool {
		c := m.cells[k]
		return c.row > row || (c.row == row && c.col >= col)
	})
	if i < len(m.cells) && m.cells[i].row == row && m.cells[i].col == col {
		return i, true
	}
	return i, false
}

func (m *Matrix) insert(i int, c cell) {
	m.cells = append(m.cells, cell{})
	copy(m.cells[i+1:], m.cells[i:])
	m.cells[i] = c
}

// Put sets the cell's first slot, clearing the second.
func (m *Matrix) Put(row, col int, v int32) {
	i, ok := m.locate(row, col)
	if ok {
		m.cells[i].a, m.cells[i].b = v, None
		return
	}
	m.insert(i, cell{row: row, col: col, a: v, b: None})
}

// Add fills the cell's first empty slot. A third value landing on a full
// cell overwrites the second slot; by then the cell already reads as
// contested, which is all callers ever ask of it.
func (m *Matrix) Add(row, col int, v int32) {
	i, ok := m.locate(row, col)
	if !ok {
		m.insert(i, cell{row: row, col: col, a: v, b: None})
		return
	}
	if m.cells[i].a == None {
		m.cells[i].a = v
	} else {
		m.cells[i].b = v
	}
}

// At returns the cell's first slot, or None for an unpopulated cell.
func (m *Matrix) At(row, col int) int32 {
	if i, ok := m.locate(row, col); ok {
		return m.cells[i].a
	}
	return None
}

// Pair returns both slots of the cell, or (None, None) for an unpopulated
// cell.
func (m *Matrix) Pair(row, col int) (int32, int32) {
	if i, ok := m.locate(row, col); ok {
		return m.cells[i].a, m.cells[i].b
	}
	return None, None
}
