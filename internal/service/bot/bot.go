package bot

import (
	"log"
	"math/rand"

	"github.com/dropfour/backend/internal/domain"
	"github.com/dropfour/backend/internal/engine"
)

// Difficulty selects how hard the bot plays.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Display names for the bot personas, one per difficulty.
var botNames = map[Difficulty]string{
	Easy:   "Rookie",
	Medium: "Scout",
	Hard:   "Warden",
}

func Name(d Difficulty) string {
	if name, ok := botNames[d]; ok {
		return name
	}
	return "BOT"
}

func IsBotName(username string) bool {
	if username == "BOT" {
		return true
	}
	for _, name := range botNames {
		if username == name {
			return true
		}
	}
	return false
}

const mediumDepth = 3

// Service picks bot moves. Easy plays tactically blind beyond one ply,
// medium and hard run the search engine at increasing depths.
type Service struct {
	medium *engine.Engine
	hard   *engine.Engine
}

// NewService creates a bot service whose hard difficulty searches
// hardDepth plies.
func NewService(hardDepth int) *Service {
	eval := engine.NewEvaluator(engine.DefaultWeights())
	return &Service{
		medium: engine.New(mediumDepth, eval),
		hard:   engine.New(hardDepth, eval),
	}
}

// ChooseColumn returns the bot's move for player on the given board,
// along with the score the search attached to it. The easy tier does
// not search and always reports a zero score.
func (s *Service) ChooseColumn(b *domain.Board, player domain.PlayerID, d Difficulty) (int, int, error) {
	switch d {
	case Easy:
		col, err := chooseEasy(b, player)
		return col, 0, err
	case Medium:
		return s.selectWith(s.medium, b, player)
	case Hard:
		return s.selectWith(s.hard, b, player)
	default:
		return s.selectWith(s.medium, b, player)
	}
}

func (s *Service) selectWith(e *engine.Engine, b *domain.Board, player domain.PlayerID) (int, int, error) {
	d, err := e.SelectMove(b, player)
	if err != nil {
		return -1, 0, err
	}
	log.Printf("[BOT] depth=%d column=%d score=%d", e.Depth(), d.Column, d.Score)
	return d.Column, d.Score, nil
}

// chooseEasy takes an immediate win, blocks an immediate loss, and
// otherwise plays a random legal column.
func chooseEasy(b *domain.Board, player domain.PlayerID) (int, error) {
	moves := engine.LegalMoves(b)
	if len(moves) == 0 {
		return -1, domain.ErrIllegalState
	}

	if col, ok := engine.WinningColumn(b, player); ok {
		return col, nil
	}
	if col, ok := engine.WinningColumn(b, player.Opponent()); ok {
		return col, nil
	}
	return moves[rand.Intn(len(moves))], nil
}
