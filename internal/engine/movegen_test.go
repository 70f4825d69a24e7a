package engine

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/dropfour/backend/internal/domain"
)

func TestLegalMovesCenterOutOrder(t *testing.T) {
	b := domain.NewBoard()
	want := []int{3, 2, 4, 1, 5, 0, 6}
	if got := LegalMoves(b); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected center-out order %v, got %v", want, got)
	}
}

func TestLegalMovesSkipsFullColumns(t *testing.T) {
	b := domain.NewBoard()
	for i := 0; i < domain.Rows; i++ {
		if _, err := b.Place(3, domain.Player1); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
	}
	want := []int{2, 4, 1, 5, 0, 6}
	if got := LegalMoves(b); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v with center full, got %v", want, got)
	}
}

func TestLegalMovesEmptyExactlyWhenFull(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := domain.NewBoard()
	player := domain.Player1

	for {
		gotEmpty := len(LegalMoves(b)) == 0
		if gotEmpty != b.IsFull() {
			t.Fatalf("LegalMoves empty=%v disagrees with IsFull=%v", gotEmpty, b.IsFull())
		}
		if b.IsFull() {
			break
		}
		col := rng.Intn(domain.Columns)
		if !b.IsColumnPlayable(col) {
			continue
		}
		if _, err := b.Place(col, player); err != nil {
			t.Fatalf("place failed: %v", err)
		}
		player = player.Opponent()
	}
}
