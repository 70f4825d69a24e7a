package domain

// PlayerID identifies the owner of a board cell.
type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Opponent returns the other player. Calling it on Empty returns Empty.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

// Default board geometry. The win length is fixed at four; the board
// dimensions are only defaults, each Board carries its own.
const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// GameStatus represents the lifecycle state of a game.
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// GameResult is the outcome of a position: still active, won by
// Winner, or drawn with a full board.
type GameResult struct {
	Status GameStatus
	Winner PlayerID
}

// Error is a sentinel error type for contract violations inside the
// core. Nothing here is transient; every one of these is a caller bug.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrIllegalMove   Error = "illegal move: column is full or out of range"
	ErrIllegalState  Error = "illegal state: board invariant violated"
	ErrGameOver      Error = "game is already over"
	ErrNotYourTurn   Error = "not your turn"
	ErrInvalidColumn Error = "invalid column"
)
