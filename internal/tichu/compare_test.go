package tichu

import (
	"testing"
)

func mustClassify(t *testing.T, cards ...Card) Combination {
	t.Helper()
	comb, err := Classify(cards)
	if err != nil {
		t.Fatalf("classify %v: %v", cards, err)
	}
	return comb
}

func TestBeatsSingles(t *testing.T) {
	t.Parallel()

	king := mustClassify(t, NewCard(King, Green))
	ace := mustClassify(t, NewCard(Ace, Red))
	dragon := mustClassify(t, Card{Rank: Dragon})
	mahjong := mustClassify(t, Card{Rank: Mahjong})
	two := mustClassify(t, NewCard(Two, Black))

	if err := Beats(king, ace); err != nil {
		t.Errorf("Ace should beat King: %v", err)
	}
	if err := Beats(ace, king); err == nil {
		t.Error("King must not beat Ace")
	}
	if err := Beats(king, king); err == nil {
		t.Error("equal singles must not beat")
	}
	if err := Beats(mahjong, two); err != nil {
		t.Errorf("Two should beat Mahjong: %v", err)
	}
	if err := Beats(ace, dragon); err != nil {
		t.Errorf("Dragon should beat Ace: %v", err)
	}
	if err := Beats(dragon, ace); err == nil {
		t.Error("nothing but a bomb beats the Dragon")
	}
	if err := Beats(king, mustClassify(t, Card{Rank: Dog})); err == nil {
		t.Error("the Dog never beats")
	}
}

func TestBeatsPhoenixHalfPoint(t *testing.T) {
	t.Parallel()

	king := mustClassify(t, NewCard(King, Green))
	ace := mustClassify(t, NewCard(Ace, Red))

	// Phoenix(14) sits above the King and below the real Ace
	phoenixAce := mustClassify(t, NewPhoenix(14))
	if err := Beats(king, phoenixAce); err != nil {
		t.Errorf("Phoenix(14) should beat King: %v", err)
	}
	if err := Beats(phoenixAce, ace); err != nil {
		t.Errorf("real Ace should beat Phoenix(14): %v", err)
	}
	if err := Beats(ace, phoenixAce); err == nil {
		t.Error("Phoenix(14) must not beat the real Ace")
	}

	// and the Dragon is above any Phoenix
	if err := Beats(phoenixAce, mustClassify(t, Card{Rank: Dragon})); err != nil {
		t.Errorf("Dragon should beat Phoenix(14): %v", err)
	}
}

func TestBeatsWithinType(t *testing.T) {
	t.Parallel()

	nines := mustClassify(t, NewCard(Nine, Red), NewCard(Nine, Blue))
	tens := mustClassify(t, NewCard(Ten, Red), NewCard(Ten, Blue))
	if err := Beats(nines, tens); err != nil {
		t.Errorf("pair of Tens should beat pair of Nines: %v", err)
	}
	if err := Beats(tens, nines); err == nil {
		t.Error("lower pair must not beat")
	}

	// different shapes never compare
	single := mustClassify(t, NewCard(Ace, Red))
	if err := Beats(nines, single); err == nil {
		t.Error("a single cannot follow a pair")
	}

	// full houses compare on the triple
	jacksFull := mustClassify(t,
		NewCard(Jack, Red), NewCard(Jack, Blue), NewCard(Jack, Green),
		NewCard(Four, Red), NewCard(Four, Blue),
	)
	queensFull := mustClassify(t,
		NewCard(Queen, Red), NewCard(Queen, Blue), NewCard(Queen, Green),
		NewCard(Two, Red), NewCard(Two, Blue),
	)
	if err := Beats(jacksFull, queensFull); err != nil {
		t.Errorf("Queens full should beat Jacks full: %v", err)
	}
	if err := Beats(queensFull, jacksFull); err == nil {
		t.Error("Jacks full must not beat Queens full")
	}

	// straights compare only at equal length
	run5 := mustClassify(t,
		NewCard(Four, Red), NewCard(Five, Blue), NewCard(Six, Green),
		NewCard(Seven, Black), NewCard(Eight, Red),
	)
	run5High := mustClassify(t,
		NewCard(Five, Red), NewCard(Six, Blue), NewCard(Seven, Green),
		NewCard(Eight, Black), NewCard(Nine, Red),
	)
	run6 := mustClassify(t,
		NewCard(Four, Red), NewCard(Five, Blue), NewCard(Six, Green),
		NewCard(Seven, Black), NewCard(Eight, Red), NewCard(Nine, Blue),
	)
	if err := Beats(run5, run5High); err != nil {
		t.Errorf("higher straight of same length should beat: %v", err)
	}
	if err := Beats(run5, run6); err == nil {
		t.Error("longer straight must not beat a shorter one")
	}
}

func TestBeatsBombs(t *testing.T) {
	t.Parallel()

	ace := mustClassify(t, NewCard(Ace, Red))
	dragon := mustClassify(t, Card{Rank: Dragon})
	tensQuad := mustClassify(t,
		NewCard(Ten, Black), NewCard(Ten, Blue), NewCard(Ten, Red), NewCard(Ten, Green),
	)
	jacksQuad := mustClassify(t,
		NewCard(Jack, Black), NewCard(Jack, Blue), NewCard(Jack, Red), NewCard(Jack, Green),
	)
	flush := mustClassify(t,
		NewCard(Four, Green), NewCard(Five, Green), NewCard(Six, Green),
		NewCard(Seven, Green), NewCard(Eight, Green),
	)
	flushHigh := mustClassify(t,
		NewCard(Five, Blue), NewCard(Six, Blue), NewCard(Seven, Blue),
		NewCard(Eight, Blue), NewCard(Nine, Blue),
	)
	flushLong := mustClassify(t,
		NewCard(Two, Red), NewCard(Three, Red), NewCard(Four, Red),
		NewCard(Five, Red), NewCard(Six, Red), NewCard(Seven, Red),
	)

	// a quad beats any non-bomb, even the Dragon
	if err := Beats(ace, tensQuad); err != nil {
		t.Errorf("quad should beat a single: %v", err)
	}
	if err := Beats(dragon, tensQuad); err != nil {
		t.Errorf("quad should beat the Dragon: %v", err)
	}
	if err := Beats(tensQuad, jacksQuad); err != nil {
		t.Errorf("higher quad should beat lower quad: %v", err)
	}
	if err := Beats(jacksQuad, tensQuad); err == nil {
		t.Error("lower quad must not beat higher quad")
	}

	// a straight flush beats quads
	if err := Beats(jacksQuad, flush); err != nil {
		t.Errorf("straight flush should beat a quad: %v", err)
	}
	if err := Beats(flush, jacksQuad); err == nil {
		t.Error("a quad must not beat a straight flush")
	}

	// among straight flushes: longer wins, then higher
	if err := Beats(flush, flushHigh); err != nil {
		t.Errorf("higher flush of same length should beat: %v", err)
	}
	if err := Beats(flush, flushLong); err != nil {
		t.Errorf("longer flush should beat a shorter one: %v", err)
	}
	if err := Beats(flushLong, flushHigh); err == nil {
		t.Error("shorter flush must not beat a longer one")
	}
}
