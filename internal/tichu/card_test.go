package tichu

import (
	"errors"
	"testing"
)

func TestCardNumber(t *testing.T) {
	t.Parallel()

	if n, ok := NewCard(King, Green).Number(); !ok || n != 13 {
		t.Errorf("King should have number 13, got %d (%v)", n, ok)
	}
	if n, ok := (Card{Rank: Mahjong}).Number(); !ok || n != 1 {
		t.Errorf("Mahjong should count as 1, got %d (%v)", n, ok)
	}
	if _, ok := (Card{Rank: Dog}).Number(); ok {
		t.Error("Dog should have no number")
	}
	if _, ok := (Card{Rank: Dragon}).Number(); ok {
		t.Error("Dragon should have no number")
	}
	if _, ok := NewPhoenix(0).Number(); ok {
		t.Error("unassigned Phoenix should have no number")
	}
	if n, ok := NewPhoenix(9).Number(); !ok || n != 9 {
		t.Errorf("Phoenix(9) should have number 9, got %d (%v)", n, ok)
	}
}

func TestCardPoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		card Card
		want int
	}{
		{NewCard(Five, Red), 5},
		{NewCard(Ten, Black), 10},
		{NewCard(King, Blue), 10},
		{NewCard(Ace, Green), 0},
		{NewCard(Two, Green), 0},
		{Card{Rank: Dragon}, 25},
		{Card{Rank: Phoenix}, -25},
		{Card{Rank: Dog}, 0},
		{Card{Rank: Mahjong}, 0},
	}
	for _, tt := range tests {
		if got := tt.card.Points(); got != tt.want {
			t.Errorf("%s points = %d, want %d", tt.card, got, tt.want)
		}
	}
}

func TestCardMatches(t *testing.T) {
	t.Parallel()

	if !NewCard(King, Green).Matches(NewCard(King, Green)) {
		t.Error("identical suited cards should match")
	}
	if NewCard(King, Green).Matches(NewCard(King, Red)) {
		t.Error("same rank different suit should not match")
	}
	// the Phoenix is the Phoenix whatever value it carries
	if !NewPhoenix(0).Matches(NewPhoenix(11)) {
		t.Error("Phoenix should match regardless of assigned value")
	}
	wish := NewCard(Eight, Red)
	if !(Card{Rank: Mahjong}).Matches(Card{Rank: Mahjong, MahjongWish: &wish}) {
		t.Error("Mahjong should match regardless of declared wish")
	}
}

func TestHandRemove(t *testing.T) {
	t.Parallel()

	hand := Hand{
		NewCard(Five, Red),
		NewCard(Five, Green),
		NewCard(King, Blue),
	}

	rest, err := hand.Remove([]Card{NewCard(Five, Red)})
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(rest) != 2 {
		t.Errorf("expected 2 cards left, got %d", len(rest))
	}
	if len(hand) != 3 {
		t.Errorf("Remove must not mutate the receiver, hand has %d cards", len(hand))
	}

	_, err = hand.Remove([]Card{NewCard(Ace, Black)})
	if !errors.Is(err, ErrNotYourCards) {
		t.Errorf("expected ErrNotYourCards, got %v", err)
	}

	// multiset semantics: two Fives need two Fives in hand
	if !hand.ContainsAll([]Card{NewCard(Five, Red), NewCard(Five, Green)}) {
		t.Error("hand holds both Fives")
	}
	if hand.ContainsAll([]Card{NewCard(Five, Red), NewCard(Five, Red)}) {
		t.Error("hand holds only one red Five")
	}
}

func TestHandPoints(t *testing.T) {
	t.Parallel()

	hand := Hand{
		NewCard(Five, Red),
		NewCard(Ten, Black),
		NewCard(King, Blue),
		Card{Rank: Phoenix},
	}
	if got := hand.Points(); got != 0 {
		t.Errorf("5+10+10-25 = 0, got %d", got)
	}
}
