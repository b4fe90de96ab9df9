package tichu

import "fmt"

// Suit represents a card suit. Tichu suits are colors and carry no
// ordering; comparisons between cards only ever look at the number.
type Suit int

const (
	Black Suit = iota
	Blue
	Red
	Green
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Black:
		return "Black"
	case Blue:
		return "Blue"
	case Red:
		return "Red"
	case Green:
		return "Green"
	default:
		return "?"
	}
}

// Rank represents a card rank. The numeric ranks Two..Ace hold their
// card number directly; Mahjong counts as 1 inside straights.
type Rank int

const (
	Dog     Rank = 0
	Mahjong Rank = 1
	Two     Rank = 2
	Three   Rank = 3
	Four    Rank = 4
	Five    Rank = 5
	Six     Rank = 6
	Seven   Rank = 7
	Eight   Rank = 8
	Nine    Rank = 9
	Ten     Rank = 10
	Jack    Rank = 11
	Queen   Rank = 12
	King    Rank = 13
	Ace     Rank = 14
	Phoenix Rank = 15
	Dragon  Rank = 16
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Dog:
		return "Dog"
	case Mahjong:
		return "Mahjong"
	case Two:
		return "Two"
	case Three:
		return "Three"
	case Four:
		return "Four"
	case Five:
		return "Five"
	case Six:
		return "Six"
	case Seven:
		return "Seven"
	case Eight:
		return "Eight"
	case Nine:
		return "Nine"
	case Ten:
		return "Ten"
	case Jack:
		return "Jack"
	case Queen:
		return "Queen"
	case King:
		return "King"
	case Ace:
		return "Ace"
	case Phoenix:
		return "Phoenix"
	case Dragon:
		return "Dragon"
	default:
		return "?"
	}
}

// IsNumeric returns true for the thirteen suited ranks Two..Ace
func (r Rank) IsNumeric() bool {
	return r >= Two && r <= Ace
}

// Card represents one of the 56 Tichu cards. Suit is meaningful only for
// numeric ranks. PhoenixValue is the Phoenix's assigned value (1..14)
// while it sits inside a live combination, 0 otherwise. MahjongWish is
// the advisory rank wish declared when the Mahjong is led.
type Card struct {
	Rank         Rank
	Suit         Suit
	PhoenixValue int
	MahjongWish  *Card
}

// NewCard creates a suited numeric card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// NewPhoenix creates a Phoenix with an assigned value (0 for unassigned)
func NewPhoenix(value int) Card {
	return Card{Rank: Phoenix, PhoenixValue: value}
}

// Number returns the card's numeric value for comparisons. Dog and
// Dragon have no number; an unassigned Phoenix has none either.
func (c Card) Number() (int, bool) {
	switch {
	case c.Rank == Mahjong:
		return 1, true
	case c.Rank.IsNumeric():
		return int(c.Rank), true
	case c.Rank == Phoenix && c.PhoenixValue > 0:
		return c.PhoenixValue, true
	default:
		return 0, false
	}
}

// Points returns the card's counting value at trick capture
func (c Card) Points() int {
	switch c.Rank {
	case Five:
		return 5
	case Ten, King:
		return 10
	case Dragon:
		return 25
	case Phoenix:
		return -25
	default:
		return 0
	}
}

// IsWild returns true for the two wildcard jokers
func (c Card) IsWild() bool {
	return c.Rank == Phoenix || c.Rank == Mahjong
}

// Matches reports card identity. Numeric ranks match on rank and suit.
// The Phoenix matches the Phoenix regardless of its assigned value, and
// the Mahjong matches regardless of a declared wish; owning "a Phoenix"
// and owning "the Phoenix" are the same check even after the card picked
// up a value in an earlier trick.
func (c Card) Matches(o Card) bool {
	if c.Rank != o.Rank {
		return false
	}
	if c.Rank.IsNumeric() {
		return c.Suit == o.Suit
	}
	return true
}

// String returns a readable representation, e.g. "King(Green)"
func (c Card) String() string {
	switch {
	case c.Rank.IsNumeric():
		return fmt.Sprintf("%s(%s)", c.Rank, c.Suit)
	case c.Rank == Phoenix && c.PhoenixValue > 0:
		return fmt.Sprintf("Phoenix(%d)", c.PhoenixValue)
	default:
		return c.Rank.String()
	}
}

// Hand is an unordered multiset of cards
type Hand []Card

// Contains reports whether the hand holds a matching card
func (h Hand) Contains(c Card) bool {
	for _, hc := range h {
		if hc.Matches(c) {
			return true
		}
	}
	return false
}

// ContainsAll reports whether the hand holds every card of the multiset
func (h Hand) ContainsAll(cards []Card) bool {
	_, err := h.Remove(cards)
	return err == nil
}

// Remove returns a copy of the hand with the given cards removed, or an
// error if any of them is missing
func (h Hand) Remove(cards []Card) (Hand, error) {
	rest := make(Hand, len(h))
	copy(rest, h)
	for _, c := range cards {
		found := -1
		for i, hc := range rest {
			if hc.Matches(c) {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, ErrNotYourCards
		}
		rest = append(rest[:found], rest[found+1:]...)
	}
	return rest, nil
}

// Points returns the face-value point total of the hand
func (h Hand) Points() int {
	total := 0
	for _, c := range h {
		total += c.Points()
	}
	return total
}
