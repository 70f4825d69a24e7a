package domain

// Game is the live-session aggregate: a board plus turn and outcome
// tracking. The engine never touches Game, it works on the Board
// directly; Game is what the transport and session layers drive.
type Game struct {
	Board         *Board
	CurrentPlayer PlayerID
	Status        GameStatus
	Winner        PlayerID
	MoveCount     int
}

func NewGame() *Game {
	return &Game{
		Board:         NewBoard(),
		CurrentPlayer: Player1,
		Status:        StatusActive,
		Winner:        Empty,
	}
}

// MakeMove drops a piece for player into column and advances the turn.
// It returns the row the piece landed on.
func (g *Game) MakeMove(player PlayerID, column int) (int, error) {
	if g.Status != StatusActive {
		return -1, ErrGameOver
	}
	if player != g.CurrentPlayer {
		return -1, ErrNotYourTurn
	}
	if column < 0 || column >= g.Board.Cols() {
		return -1, ErrInvalidColumn
	}

	row, err := g.Board.Place(column, player)
	if err != nil {
		return -1, err
	}
	g.MoveCount++

	if CheckWinAt(g.Board, row, column, player) {
		g.Status = StatusWon
		g.Winner = player
		return row, nil
	}
	if g.Board.IsFull() {
		g.Status = StatusDraw
		return row, nil
	}

	g.CurrentPlayer = g.CurrentPlayer.Opponent()
	return row, nil
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}

// Result reports the game outcome from the aggregate's own tracking.
func (g *Game) Result() GameResult {
	return GameResult{Status: g.Status, Winner: g.Winner}
}
