package tichu

import (
	"testing"

	"github.com/DaAlbrecht/tichu/internal/randutil"
)

func TestNewDeck(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	if len(deck) != DeckSize {
		t.Fatalf("expected %d cards, got %d", DeckSize, len(deck))
	}

	// no duplicates
	for i, a := range deck {
		for _, b := range deck[i+1:] {
			if a.Matches(b) {
				t.Errorf("duplicate card in deck: %s", a)
			}
		}
	}

	jokers := 0
	points := 0
	for _, c := range deck {
		if !c.Rank.IsNumeric() {
			jokers++
		}
		points += c.Points()
	}
	if jokers != 4 {
		t.Errorf("expected 4 jokers, got %d", jokers)
	}
	// 4*(5+10+10) + 25 - 25
	if points != 100 {
		t.Errorf("deck should hold 100 points, got %d", points)
	}
}

func TestDeal(t *testing.T) {
	t.Parallel()

	hands := Deal(randutil.New(42))

	var all Hand
	for _, h := range hands {
		if len(h) != HandSize {
			t.Errorf("expected %d cards per hand, got %d", HandSize, len(h))
		}
		all = append(all, h...)
	}

	// the four hands partition the deck
	if len(all) != DeckSize {
		t.Fatalf("hands cover %d cards, want %d", len(all), DeckSize)
	}
	for _, c := range NewDeck() {
		if !all.Contains(c) {
			t.Errorf("card %s missing from deal", c)
		}
	}
}

func TestDealDeterministic(t *testing.T) {
	t.Parallel()

	a := Deal(randutil.New(7))
	b := Deal(randutil.New(7))
	for i := range a {
		for j := range a[i] {
			if !a[i][j].Matches(b[i][j]) {
				t.Fatalf("same seed should deal same hands, differ at hand %d card %d", i, j)
			}
		}
	}
}
