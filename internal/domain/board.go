package domain

// Board is the playing grid. Row 0 is the top row; pieces fall toward
// high row indices. fill tracks how many pieces each column holds so
// that placement and undo stay O(1) and the gravity invariant (no
// piece ever floats above an empty cell) is maintained incrementally.
type Board struct {
	rows  int
	cols  int
	cells [][]PlayerID
	fill  []int
}

// NewBoard creates an empty board with the standard 6x7 dimensions.
func NewBoard() *Board {
	return NewBoardSize(Rows, Columns)
}

// NewBoardSize creates an empty board with the given dimensions.
func NewBoardSize(rows, cols int) *Board {
	cells := make([][]PlayerID, rows)
	for r := range cells {
		cells[r] = make([]PlayerID, cols)
	}
	return &Board{
		rows:  rows,
		cols:  cols,
		cells: cells,
		fill:  make([]int, cols),
	}
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

// Cell returns the owner of the cell at (row, col).
func (b *Board) Cell(row, col int) PlayerID {
	return b.cells[row][col]
}

// IsColumnPlayable reports whether a piece can be dropped into col.
func (b *Board) IsColumnPlayable(col int) bool {
	return col >= 0 && col < b.cols && b.fill[col] < b.rows
}

// Place drops a piece for player into col and returns the row it
// landed on. Callers need the row to undo the move later.
func (b *Board) Place(col int, player PlayerID) (int, error) {
	if !b.IsColumnPlayable(col) {
		return -1, ErrIllegalMove
	}
	row := b.rows - 1 - b.fill[col]
	b.cells[row][col] = player
	b.fill[col]++
	return row, nil
}

// Undo removes the piece at (row, col). It must be the piece most
// recently placed in that column, i.e. exactly the (row, col) returned
// by the matching Place call; anything else is a programming error.
func (b *Board) Undo(col, row int) error {
	if col < 0 || col >= b.cols || b.fill[col] == 0 {
		return ErrIllegalState
	}
	top := b.rows - b.fill[col]
	if row != top || b.cells[row][col] == Empty {
		return ErrIllegalState
	}
	b.cells[row][col] = Empty
	b.fill[col]--
	return nil
}

// IsFull reports whether no column accepts another piece.
func (b *Board) IsFull() bool {
	for c := 0; c < b.cols; c++ {
		if b.fill[c] < b.rows {
			return false
		}
	}
	return true
}

// PieceCount returns the total number of pieces on the board.
func (b *Board) PieceCount() int {
	n := 0
	for _, f := range b.fill {
		n += f
	}
	return n
}

// Clone returns a deep copy, for callers that need an independent
// board (e.g. running several searches side by side).
func (b *Board) Clone() *Board {
	nb := NewBoardSize(b.rows, b.cols)
	for r := 0; r < b.rows; r++ {
		copy(nb.cells[r], b.cells[r])
	}
	copy(nb.fill, b.fill)
	return nb
}

// Equal reports whether two boards hold identical positions.
func (b *Board) Equal(other *Board) bool {
	if b.rows != other.rows || b.cols != other.cols {
		return false
	}
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			if b.cells[r][c] != other.cells[r][c] {
				return false
			}
		}
	}
	return true
}

// Grid returns the position as plain ints for JSON payloads.
func (b *Board) Grid() [][]int {
	grid := make([][]int, b.rows)
	for r := 0; r < b.rows; r++ {
		grid[r] = make([]int, b.cols)
		for c := 0; c < b.cols; c++ {
			grid[r][c] = int(b.cells[r][c])
		}
	}
	return grid
}
