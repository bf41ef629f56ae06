package rules

const (
	// BirthNeighbors is the live-neighbor count that brings a dead cell to life
	BirthNeighbors = 3
	// SurviveMin and SurviveMax bound the live-neighbor counts that keep a cell alive
	SurviveMin = 2
	SurviveMax = 3
)

/*
ApplyConwayRules applies Conway's Game of Life rules (B3/S23) to determine the next state of a cell.

A live cell survives with 2 or 3 live neighbors, a dead cell is born with exactly 3.
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	if alive {
		return neighbors >= SurviveMin && neighbors <= SurviveMax
	}
	return neighbors == BirthNeighbors
}
