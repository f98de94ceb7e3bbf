/*
Package sparse implements a simple type for sparse integer matrices.
It is used for parser tables (LL(1) table, GOTO table and ACTION table).
Every entry in a matrix is a short list of int32 values: tables of
grammars with conflicts keep all the competing entries of a cell.

This implementation uses the COO algorithm (a.k.a. triplet-encoding),
with triplets kept in row-major order.

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229
   https://www.coin-or.org/Ipopt/documentation/node38.html


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package sparse

import (
	"fmt"
	"sort"
)

// IntMatrix is a type for a sparse matrix of integer values. Construct with
//
//     M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value
//     v := M.Value(2, 3)             // returns 4711
//     M.Add(2, 3, 123)               // add a second value
//     vs := M.Values(2, 3)           // returns [4711 123]
//     cnt := M.ValueCount()          // still returns 1 (one position set)
//     v = M.Value(9, 9)              // returns -1, i.e. the null-value
//
// Positions cannot be deleted.
type IntMatrix struct {
	values  []triplet
	rowcnt  int
	colcnt  int
	nullval int32
}

// Triplet values to store
type triplet struct {
	row, col int
	values   []int32
}

// NewIntMatrix creates a new matrix for int, size m x n. The 3rd argument is a null-value,
// indicating empty entries (use DefaultNullValue if you haven't any specific
// requirements).
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		values:  []triplet{},
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of positions holding values.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

// Value returns the primary value at position (i,j), or NullValue
func (m *IntMatrix) Value(i, j int) int32 {
	if k, found := m.find(i, j); found {
		return m.values[k].values[0]
	}
	return m.nullval
}

// Values returns all values at position (i,j), in order of insertion, or nil.
// Clients must not modify the returned slice.
func (m *IntMatrix) Values(i, j int) []int32 {
	if k, found := m.find(i, j); found {
		return m.values[k].values
	}
	return nil
}

// Set a value in the matrix at position (i,j), replacing all values present.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	m.checkBounds(i, j)
	k, found := m.find(i, j)
	if found {
		m.values[k].values = []int32{value}
		return m
	}
	m.insert(k, triplet{row: i, col: j, values: []int32{value}})
	return m
}

// Add a value in the matrix at position (i,j). Values already present stay
// in place; adding a value a second time to the same position is a no-op.
// Add returns true if the value has been added.
func (m *IntMatrix) Add(i, j int, value int32) bool {
	m.checkBounds(i, j)
	k, found := m.find(i, j)
	if !found {
		m.insert(k, triplet{row: i, col: j, values: []int32{value}})
		return true
	}
	for _, v := range m.values[k].values {
		if v == value {
			return false
		}
	}
	m.values[k].values = append(m.values[k].values, value)
	return true
}

// Each calls f for every position holding values, in row-major order.
func (m *IntMatrix) Each(f func(i, j int, values []int32)) {
	for _, t := range m.values {
		f(t.row, t.col, t.values)
	}
}

// find does a binary search for position (i,j). If it is not present, the
// returned index is where it would have to be inserted.
func (m *IntMatrix) find(i, j int) (int, bool) {
	k := sort.Search(len(m.values), func(k int) bool {
		return !m.values[k].storedLeftOf(i, j)
	})
	return k, k < len(m.values) && m.values[k].storedAt(i, j)
}

func (m *IntMatrix) insert(at int, t triplet) {
	// the following 3 lines have to work for k being the right edge of v or not
	m.values = append(m.values, t)       // make room
	copy(m.values[at+1:], m.values[at:]) // copy remainder values one index to right
	m.values[at] = t                     // if not append-case: insert new triplet
}

func (m *IntMatrix) checkBounds(i, j int) {
	if i < 0 || i >= m.rowcnt || j < 0 || j >= m.colcnt {
		panic(fmt.Sprintf("sparse.IntMatrix: index (%d,%d) out of bounds %d x %d", i, j, m.rowcnt, m.colcnt))
	}
}

func (t *triplet) storedLeftOf(i, j int) bool {
	return t.row < i || t.row == i && t.col < j
}

func (t *triplet) storedAt(i, j int) bool {
	return (t.row == i && t.col == j)
}

func (t triplet) String() string {
	return fmt.Sprintf("(%d,%d)=%v", t.row, t.col, t.values)
}
