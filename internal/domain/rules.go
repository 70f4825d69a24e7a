package domain

// CheckWin scans the whole board for a run of at least ToWin pieces
// owned by player, in any of the four directions. Stateless; the
// search calls this at every node.
func CheckWin(b *Board, player PlayerID) bool {
	rows, cols := b.Rows(), b.Cols()

	// Horizontal
	for r := 0; r < rows; r++ {
		for c := 0; c <= cols-ToWin; c++ {
			if runOwned(b, r, c, 0, 1, player) {
				return true
			}
		}
	}
	// Vertical
	for c := 0; c < cols; c++ {
		for r := 0; r <= rows-ToWin; r++ {
			if runOwned(b, r, c, 1, 0, player) {
				return true
			}
		}
	}
	// Diagonal down-right
	for r := 0; r <= rows-ToWin; r++ {
		for c := 0; c <= cols-ToWin; c++ {
			if runOwned(b, r, c, 1, 1, player) {
				return true
			}
		}
	}
	// Diagonal up-right
	for r := ToWin - 1; r < rows; r++ {
		for c := 0; c <= cols-ToWin; c++ {
			if runOwned(b, r, c, -1, 1, player) {
				return true
			}
		}
	}
	return false
}

func runOwned(b *Board, row, col, dr, dc int, player PlayerID) bool {
	for i := 0; i < ToWin; i++ {
		if b.Cell(row+i*dr, col+i*dc) != player {
			return false
		}
	}
	return true
}

// CheckWinAt checks only the four lines passing through (row, col).
// Used after a real placement, where any new run must include the
// placed piece. Results agree with CheckWin.
func CheckWinAt(b *Board, row, col int, player PlayerID) bool {
	directions := [4][2]int{
		{0, 1},  // horizontal
		{1, 0},  // vertical
		{1, 1},  // diagonal down-right
		{1, -1}, // diagonal down-left
	}
	for _, d := range directions {
		count := 1
		count += countRun(b, row, col, d[0], d[1], player)
		count += countRun(b, row, col, -d[0], -d[1], player)
		if count >= ToWin {
			return true
		}
	}
	return false
}

func countRun(b *Board, row, col, dr, dc int, player PlayerID) int {
	count := 0
	r, c := row+dr, col+dc
	for r >= 0 && r < b.Rows() && c >= 0 && c < b.Cols() && b.Cell(r, c) == player {
		count++
		r += dr
		c += dc
	}
	return count
}

// Result combines the win checks for both players with the draw check.
// On a legally built board at most one player can have a run of four.
func Result(b *Board) GameResult {
	if CheckWin(b, Player1) {
		return GameResult{Status: StatusWon, Winner: Player1}
	}
	if CheckWin(b, Player2) {
		return GameResult{Status: StatusWon, Winner: Player2}
	}
	if b.IsFull() {
		return GameResult{Status: StatusDraw}
	}
	return GameResult{Status: StatusActive}
}
