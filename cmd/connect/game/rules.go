package game

// ConnectN is the length of the run needed to win.
const ConnectN = 4

type direction struct {
	row int
	col int
}

// The four axes a run can follow: horizontal, vertical, NW to SE and SW to NE.
var axes = [...]direction{
	{0, 1},
	{1, 0},
	{1, 1},
	{-1, 1},
}

// CheckWin checks if the disc at the specified location, the last one
// played, is part of a run of ConnectN or more discs of the same symbol.
// An empty or out of range location never wins.
func CheckWin(b *Board, row int, col int) bool {
	disc, ok := b.Cell(row, col)
	if !ok {
		return false
	}

	for _, d := range axes {
		count := 1 + b.run(row, col, d.row, d.col, disc) + b.run(row, col, -d.row, -d.col, disc)
		if count >= ConnectN {
			return true
		}
	}

	return false
}

// run counts the matching discs walking away from the location, not
// counting the location itself.
func (b *Board) run(row int, col int, dRow int, dCol int, disc Disc) int {
	var counter int

	for {
		row += dRow
		col += dCol

		got, ok := b.Cell(row, col)
		if !ok || !got.Equal(disc) {
			return counter
		}

		counter++
	}
}
