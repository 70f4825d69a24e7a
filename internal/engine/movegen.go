package engine

import "github.com/dropfour/backend/internal/domain"

// LegalMoves returns the playable columns in center-out order. The
// ordering matters: alpha-beta prunes far more when the statistically
// strongest (central) columns are searched first, and the tie-break
// rule "first move in generator order wins" hangs off it too.
// For the standard width of 7 the order is 3,2,4,1,5,0,6.
func LegalMoves(b *domain.Board) []int {
	moves := make([]int, 0, b.Cols())
	for _, col := range centerOutOrder(b.Cols()) {
		if b.IsColumnPlayable(col) {
			moves = append(moves, col)
		}
	}
	return moves
}

func centerOutOrder(cols int) []int {
	order := make([]int, 0, cols)
	center := cols / 2
	order = append(order, center)
	for offset := 1; offset <= center; offset++ {
		if center-offset >= 0 {
			order = append(order, center-offset)
		}
		if center+offset < cols {
			order = append(order, center+offset)
		}
	}
	return order
}
