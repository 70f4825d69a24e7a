package engine

import "github.com/dropfour/backend/internal/domain"

// Weights holds the evaluator's scoring constants. The magnitudes are
// a tuning choice; the invariants that matter are the ordering
// (four >> three > two > center) and symmetry between the players.
type Weights struct {
	WindowFour  int // four own pieces in a window
	WindowThree int // three own pieces plus one empty
	WindowTwo   int // two own pieces plus two empties
	Center      int // per own piece in the center column
}

// DefaultWeights mirror the classic windowed Connect Four heuristic.
func DefaultWeights() Weights {
	return Weights{
		WindowFour:  10000,
		WindowThree: 100,
		WindowTwo:   10,
		Center:      30,
	}
}

// Evaluator assigns a heuristic score to a position from one player's
// perspective. It is a pure function of board and player: no state,
// no mutation, and Score(b, p) == -Score(b, p.Opponent()).
type Evaluator struct {
	weights Weights
}

func NewEvaluator(w Weights) *Evaluator {
	return &Evaluator{weights: w}
}

// Score slides a window of four cells along every horizontal,
// vertical and diagonal line and tallies each window's contents.
// Windows containing pieces of both colors are dead and score zero.
// Opponent configurations score the symmetric negative.
func (e *Evaluator) Score(b *domain.Board, player domain.PlayerID) int {
	rows, cols := b.Rows(), b.Cols()
	score := 0

	// Horizontal windows
	for r := 0; r < rows; r++ {
		for c := 0; c <= cols-domain.ToWin; c++ {
			score += e.scoreWindow(b, r, c, 0, 1, player)
		}
	}
	// Vertical windows
	for c := 0; c < cols; c++ {
		for r := 0; r <= rows-domain.ToWin; r++ {
			score += e.scoreWindow(b, r, c, 1, 0, player)
		}
	}
	// Diagonal down-right windows
	for r := 0; r <= rows-domain.ToWin; r++ {
		for c := 0; c <= cols-domain.ToWin; c++ {
			score += e.scoreWindow(b, r, c, 1, 1, player)
		}
	}
	// Diagonal up-right windows
	for r := domain.ToWin - 1; r < rows; r++ {
		for c := 0; c <= cols-domain.ToWin; c++ {
			score += e.scoreWindow(b, r, c, -1, 1, player)
		}
	}

	// Center column control
	center := cols / 2
	opponent := player.Opponent()
	for r := 0; r < rows; r++ {
		switch b.Cell(r, center) {
		case player:
			score += e.weights.Center
		case opponent:
			score -= e.weights.Center
		}
	}

	return score
}

func (e *Evaluator) scoreWindow(b *domain.Board, row, col, dr, dc int, player domain.PlayerID) int {
	opponent := player.Opponent()
	own, opp := 0, 0
	for i := 0; i < domain.ToWin; i++ {
		switch b.Cell(row+i*dr, col+i*dc) {
		case player:
			own++
		case opponent:
			opp++
		}
	}
	if own > 0 && opp > 0 {
		return 0 // dead window, nobody can complete it
	}
	empty := domain.ToWin - own - opp
	switch {
	case own == 4:
		return e.weights.WindowFour
	case own == 3 && empty == 1:
		return e.weights.WindowThree
	case own == 2 && empty == 2:
		return e.weights.WindowTwo
	case opp == 4:
		return -e.weights.WindowFour
	case opp == 3 && empty == 1:
		return -e.weights.WindowThree
	case opp == 2 && empty == 2:
		return -e.weights.WindowTwo
	}
	return 0
}
