package rules

const (
	// underpopulation: a live cell with fewer neighbors than this dies
	minSurvivalNeighbors = 2
	// overpopulation: a live cell with more neighbors than this dies
	maxSurvivalNeighbors = 3
	birthNeighbors       = 3
)

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

A live cell survives with 2 or 3 living neighbors and dies otherwise.
A dead cell comes alive with exactly 3 living neighbors.
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	if alive {
		return neighbors >= minSurvivalNeighbors && neighbors <= maxSurvivalNeighbors
	}
	return neighbors == birthNeighbors
}
