package domain

import "testing"

func TestPlaceStacksUnderGravity(t *testing.T) {
	b := NewBoard()

	row, err := b.Place(3, Player1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row != Rows-1 {
		t.Fatalf("expected first piece on bottom row %d, got %d", Rows-1, row)
	}

	row, err = b.Place(3, Player2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row != Rows-2 {
		t.Fatalf("expected second piece on row %d, got %d", Rows-2, row)
	}

	if b.Cell(Rows-1, 3) != Player1 || b.Cell(Rows-2, 3) != Player2 {
		t.Fatalf("pieces not where expected: %v %v", b.Cell(Rows-1, 3), b.Cell(Rows-2, 3))
	}
}

func TestPlaceOnFullColumnFails(t *testing.T) {
	b := NewBoard()
	for i := 0; i < Rows; i++ {
		if _, err := b.Place(0, Player1); err != nil {
			t.Fatalf("placement %d failed: %v", i, err)
		}
	}
	if b.IsColumnPlayable(0) {
		t.Fatalf("full column reported playable")
	}
	if _, err := b.Place(0, Player2); err != ErrIllegalMove {
		t.Fatalf("expected ErrIllegalMove, got %v", err)
	}
}

func TestPlaceOutOfRangeFails(t *testing.T) {
	b := NewBoard()
	for _, col := range []int{-1, Columns} {
		if _, err := b.Place(col, Player1); err != ErrIllegalMove {
			t.Fatalf("col %d: expected ErrIllegalMove, got %v", col, err)
		}
	}
}

func TestPlaceUndoRoundTrip(t *testing.T) {
	b := NewBoard()
	b.Place(2, Player1)
	b.Place(2, Player2)
	b.Place(5, Player1)

	before := b.Clone()

	row, err := b.Place(2, Player1)
	if err != nil {
		t.Fatalf("place failed: %v", err)
	}
	if err := b.Undo(2, row); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if !b.Equal(before) {
		t.Fatalf("board not restored after place/undo")
	}
}

func TestUndoWithWrongCoordinatesFails(t *testing.T) {
	b := NewBoard()
	row, _ := b.Place(4, Player1)

	if err := b.Undo(4, row-1); err != ErrIllegalState {
		t.Fatalf("expected ErrIllegalState for wrong row, got %v", err)
	}
	if err := b.Undo(3, row); err != ErrIllegalState {
		t.Fatalf("expected ErrIllegalState for empty column, got %v", err)
	}
	if err := b.Undo(4, row); err != nil {
		t.Fatalf("correct undo failed: %v", err)
	}
	if err := b.Undo(4, row); err != ErrIllegalState {
		t.Fatalf("expected ErrIllegalState for double undo, got %v", err)
	}
}

func TestIsFull(t *testing.T) {
	b := NewBoardSize(2, 2)
	if b.IsFull() {
		t.Fatalf("empty board reported full")
	}
	players := []PlayerID{Player1, Player2}
	n := 0
	for c := 0; c < 2; c++ {
		for r := 0; r < 2; r++ {
			if _, err := b.Place(c, players[n%2]); err != nil {
				t.Fatalf("place failed: %v", err)
			}
			n++
		}
	}
	if !b.IsFull() {
		t.Fatalf("full board not reported full")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBoard()
	b.Place(3, Player1)
	clone := b.Clone()
	clone.Place(3, Player2)

	if b.Cell(Rows-2, 3) != Empty {
		t.Fatalf("mutating the clone leaked into the original")
	}
	if b.PieceCount() != 1 || clone.PieceCount() != 2 {
		t.Fatalf("unexpected piece counts: %d and %d", b.PieceCount(), clone.PieceCount())
	}
}
