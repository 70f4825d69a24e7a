package bot

import (
	"testing"

	"github.com/dropfour/backend/internal/domain"
	"github.com/dropfour/backend/internal/engine"
)

func setup(t *testing.T, moves [][2]int) *domain.Board {
	t.Helper()
	b := domain.NewBoard()
	for _, m := range moves {
		if _, err := b.Place(m[0], domain.PlayerID(m[1])); err != nil {
			t.Fatalf("setup move %v failed: %v", m, err)
		}
	}
	return b
}

func TestEasyTakesImmediateWin(t *testing.T) {
	s := NewService(5)
	b := setup(t, [][2]int{
		{6, 2}, {0, 1}, {6, 2}, {1, 1}, {6, 2}, {3, 1},
	})

	col, _, err := s.ChooseColumn(b, domain.Player2, Easy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if col != 6 {
		t.Fatalf("expected easy bot to win in column 6, got %d", col)
	}
}

func TestEasyBlocksImmediateLoss(t *testing.T) {
	s := NewService(5)
	b := setup(t, [][2]int{
		{2, 1}, {0, 2}, {2, 1}, {6, 2}, {2, 1},
	})

	col, _, err := s.ChooseColumn(b, domain.Player2, Easy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if col != 2 {
		t.Fatalf("expected easy bot to block column 2, got %d", col)
	}
}

func TestEveryDifficultyReturnsLegalMove(t *testing.T) {
	s := NewService(5)
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		b := setup(t, [][2]int{{3, 1}, {3, 2}, {2, 1}})
		col, _, err := s.ChooseColumn(b, domain.Player2, d)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", d, err)
		}
		if !b.IsColumnPlayable(col) {
			t.Fatalf("%s: chose unplayable column %d", d, col)
		}
	}
}

func TestHardReportsDecisionScore(t *testing.T) {
	s := NewService(5)
	// Three stacked for the bot in column 6; the winning reply must
	// carry a saturating score.
	b := setup(t, [][2]int{
		{6, 2}, {0, 1}, {6, 2}, {1, 1}, {6, 2}, {3, 1},
	})

	col, score, err := s.ChooseColumn(b, domain.Player2, Hard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if col != 6 {
		t.Fatalf("expected winning column 6, got %d", col)
	}
	if score < engine.WinScore {
		t.Fatalf("expected a saturating score, got %d", score)
	}
}

func TestHardRejectsFinishedGame(t *testing.T) {
	s := NewService(5)
	b := setup(t, [][2]int{{0, 1}, {1, 1}, {2, 1}, {3, 1}})

	if _, _, err := s.ChooseColumn(b, domain.Player2, Hard); err != domain.ErrGameOver {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
}

func TestBotNames(t *testing.T) {
	if Name(Hard) != "Warden" {
		t.Fatalf("unexpected hard bot name %q", Name(Hard))
	}
	if Name(Difficulty("nonsense")) != "BOT" {
		t.Fatalf("unknown difficulty should fall back to BOT")
	}
	if !IsBotName("Rookie") || IsBotName("alice") {
		t.Fatalf("IsBotName misclassified a name")
	}
}
