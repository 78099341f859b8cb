package model

import "fmt"

// Coord identifies a grid cell by row and column
type Coord struct {
	Row, Col int
}

// NewCoord creates a coordinate
func NewCoord(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.Row, c.Col)
}

// InBounds reports whether the coordinate lies inside a width x height grid
func (c Coord) InBounds(width, height int) bool {
	return c.Row >= 0 && c.Row < height && c.Col >= 0 && c.Col < width
}

var neighborDeltas = [3]int{-1, 0, 1}

// Neighbors returns the in-bounds coordinates surrounding c.
// There is no wraparound: corners have 3 neighbors and edges 5.
func (c Coord) Neighbors(width, height int) []Coord {
	neighbors := make([]Coord, 0, 8)
	for _, dr := range neighborDeltas {
		for _, dc := range neighborDeltas {
			if dr == 0 && dc == 0 {
				continue
			}
			n := Coord{Row: c.Row + dr, Col: c.Col + dc}
			if n.InBounds(width, height) {
				neighbors = append(neighbors, n)
			}
		}
	}
	return neighbors
}
