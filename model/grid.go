package model

import (
	"crypto/md5"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/termlife/rules"
)

// Grid is one generation of the automaton: a total mapping from every
// coordinate in [0,height) x [0,width) to its cell state, stored row-major.
type Grid struct {
	width  int
	height int
	cells  []bool
}

// NewEmpty creates a grid of dead cells
func NewEmpty(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic("model: grid dimensions must be positive")
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}
}

// New creates a grid where each cell is independently alive with
// probability spawnProbability. A nil rng falls back to a time-seeded source.
func New(width, height int, spawnProbability float64, rng *rand.Rand) *Grid {
	if rng == nil {
		rng = NewRand(0)
	}
	g := NewEmpty(width, height)
	for i := range g.cells {
		g.cells[i] = spawnProbability >= rng.Float64()
	}
	return g
}

// NewRand returns a PCG-backed generator. Seed 0 means "seed from the clock".
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>32|1))
}

// NewFromRows builds a grid from a text pattern, one string per row.
// '0', 'O', '#' and '*' are alive, '.' is dead.
func NewFromRows(rows []string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("[NewFromRows] pattern is empty")
	}

	g := NewEmpty(len(rows[0]), len(rows))
	for r, row := range rows {
		if len(row) != g.width {
			return nil, errors.Errorf("[NewFromRows] row %d has width %d, want %d", r, len(row), g.width)
		}
		for c, ch := range row {
			switch {
			case strings.ContainsRune("0O#*", ch):
				g.cells[g.index(r, c)] = true
			case ch == '.':
			default:
				return nil, errors.Errorf("[NewFromRows] unexpected cell %q at %d,%d", ch, r, c)
			}
		}
	}
	return g, nil
}

// Width returns the number of columns
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows
func (g *Grid) Height() int {
	return g.height
}

func (g *Grid) index(row, col int) int {
	return row*g.width + col
}

// Get returns the state of a cell, false when out of range
func (g *Grid) Get(row, col int) bool {
	if !NewCoord(row, col).InBounds(g.width, g.height) {
		return false
	}
	return g.cells[g.index(row, col)]
}

// Set sets a cell to alive (true) or dead (false); out of range is ignored
func (g *Grid) Set(row, col int, alive bool) {
	if NewCoord(row, col).InBounds(g.width, g.height) {
		g.cells[g.index(row, col)] = alive
	}
}

// LivingNeighbors counts the alive cells among the in-bounds neighbors of (row, col)
func (g *Grid) LivingNeighbors(row, col int) (count int) {
	for _, n := range NewCoord(row, col).Neighbors(g.width, g.height) {
		if g.cells[g.index(n.Row, n.Col)] {
			count++
		}
	}
	return
}

// Step computes the next generation. Every cell is evaluated against the
// receiver, which is left untouched; the result is a new grid.
func (g *Grid) Step() *Grid {
	next := NewEmpty(g.width, g.height)
	for row := range g.height {
		for col := range g.width {
			alive := g.cells[g.index(row, col)]
			next.cells[next.index(row, col)] = rules.ApplyConwayRules(g.LivingNeighbors(row, col), alive)
		}
	}
	return next
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for _, alive := range g.cells {
		if alive {
			count++
		}
	}
	return
}

// Equal reports whether both grids have the same dimensions and cells
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy
func (g *Grid) Clone() *Grid {
	return &Grid{
		width:  g.width,
		height: g.height,
		cells:  append([]bool(nil), g.cells...),
	}
}

// Hash returns an MD5 digest of the grid dimensions and cell states
func (g *Grid) Hash() string {
	h := md5.New()
	fmt.Fprintf(h, "%dx%d:", g.width, g.height)
	buf := make([]byte, len(g.cells))
	for i, alive := range g.cells {
		if alive {
			buf[i] = 1
		}
	}
	h.Write(buf)
	return fmt.Sprintf("%x", h.Sum(nil))
}

func (g *Grid) String() string {
	return Render(g)
}
