package engine

import (
	"math"

	"github.com/dropfour/backend/internal/domain"
)

const (
	// DefaultDepth is the reference search depth in plies. Deeper
	// searches trade latency for strength; with a heuristic
	// evaluator the improvement is empirical, not guaranteed.
	DefaultDepth = 5

	// WinScore saturates the score range for decided positions. It
	// must dominate any heuristic score the evaluator can produce
	// plus the depth adjustment below.
	WinScore = 1000000
)

// Decision is the engine's answer: the column to play and the score
// the search attached to it, exposed for diagnostics.
type Decision struct {
	Column int
	Score  int
}

// Engine selects moves with depth-bounded minimax and alpha-beta
// pruning. It is stateless between calls and safe to share across
// games as long as each concurrent search gets its own board.
type Engine struct {
	depth int
	eval  *Evaluator
}

// New creates an engine searching the given number of plies. A depth
// below 1 falls back to DefaultDepth.
func New(depth int, eval *Evaluator) *Engine {
	if depth < 1 {
		depth = DefaultDepth
	}
	if eval == nil {
		eval = NewEvaluator(DefaultWeights())
	}
	return &Engine{depth: depth, eval: eval}
}

func (e *Engine) Depth() int { return e.depth }

// SelectMove returns the engine's chosen column for player on the
// given board. The board is mutated during the search but restored
// before returning; it is bit-identical to its pre-call state.
//
// It fails with ErrGameOver when the position already has a result
// and with ErrIllegalState when no legal move exists.
func (e *Engine) SelectMove(b *domain.Board, player domain.PlayerID) (Decision, error) {
	if res := domain.Result(b); res.Status != domain.StatusActive {
		return Decision{Column: -1}, domain.ErrGameOver
	}
	moves := LegalMoves(b)
	if len(moves) == 0 {
		return Decision{Column: -1}, domain.ErrIllegalState
	}

	// Forced tactics resolve before the search runs. When every root
	// move loses equally fast the depth term cannot separate them, so
	// the search alone would keep the first move even when a block
	// makes the opponent work for the win.
	if col, ok := WinningColumn(b, player); ok {
		return Decision{Column: col, Score: WinScore + e.depth}, nil
	}
	if col, ok := WinningColumn(b, player.Opponent()); ok {
		row, _ := b.Place(col, player)
		_, score := e.minimax(b, e.depth-1, math.MinInt32, math.MaxInt32, false, player)
		b.Undo(col, row)
		return Decision{Column: col, Score: score}, nil
	}

	col, score := e.minimax(b, e.depth, math.MinInt32, math.MaxInt32, true, player)
	return Decision{Column: col, Score: score}, nil
}

// WinningColumn returns the first column, in generator order, where
// player completes four immediately. The board is restored before
// returning.
func WinningColumn(b *domain.Board, player domain.PlayerID) (int, bool) {
	for _, col := range LegalMoves(b) {
		row, err := b.Place(col, player)
		if err != nil {
			continue
		}
		won := domain.CheckWinAt(b, row, col, player)
		b.Undo(col, row)
		if won {
			return col, true
		}
	}
	return -1, false
}

// minimax explores the game tree rooted at b. player is always the
// maximizing side; maximizing flags whose turn it is at this node.
// It returns the best column at this node (or -1 at leaves) and its
// score. Moves are tried in generator order and a strict improvement
// is required to replace the incumbent, so ties resolve to the first
// (most central) move deterministically.
func (e *Engine) minimax(b *domain.Board, depth, alpha, beta int, maximizing bool, player domain.PlayerID) (int, int) {
	opponent := player.Opponent()

	// Terminal checks come before the depth check so that decided
	// positions always score as decided, never heuristically. The
	// depth term makes faster wins and later losses preferable.
	if domain.CheckWin(b, player) {
		return -1, WinScore + depth
	}
	if domain.CheckWin(b, opponent) {
		return -1, -(WinScore + depth)
	}
	moves := LegalMoves(b)
	if len(moves) == 0 {
		return -1, 0 // drawn position
	}
	if depth == 0 {
		return -1, e.eval.Score(b, player)
	}

	toMove := player
	if !maximizing {
		toMove = opponent
	}

	bestCol := moves[0]
	if maximizing {
		best := math.MinInt32
		for _, col := range moves {
			row, _ := b.Place(col, toMove)
			_, score := e.minimax(b, depth-1, alpha, beta, false, player)
			b.Undo(col, row)
			if score > best {
				best = score
				bestCol = col
			}
			if best > alpha {
				alpha = best
			}
			if alpha >= beta {
				break
			}
		}
		return bestCol, best
	}

	best := math.MaxInt32
	for _, col := range moves {
		row, _ := b.Place(col, toMove)
		_, score := e.minimax(b, depth-1, alpha, beta, true, player)
		b.Undo(col, row)
		if score < best {
			best = score
			bestCol = col
		}
		if best < beta {
			beta = best
		}
		if alpha >= beta {
			break
		}
	}
	return bestCol, best
}
