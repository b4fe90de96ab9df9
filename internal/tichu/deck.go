package tichu

import rand "math/rand/v2"

// DeckSize is the number of cards in a Tichu deck: four suits of
// thirteen numeric ranks plus the four jokers.
const DeckSize = 56

// HandSize is the number of cards each of the four players is dealt
const HandSize = 14

// NewDeck builds the full 56-card deck in a fixed order
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for suit := Black; suit <= Green; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			deck = append(deck, NewCard(rank, suit))
		}
	}
	deck = append(deck,
		Card{Rank: Dog},
		Card{Rank: Mahjong},
		Card{Rank: Phoenix},
		Card{Rank: Dragon},
	)
	return deck
}

// Deal shuffles a fresh deck and returns four 14-card hands drawn
// uniformly without replacement
func Deal(rng *rand.Rand) [4]Hand {
	deck := NewDeck()
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	var hands [4]Hand
	for i := range hands {
		hands[i] = make(Hand, HandSize)
		copy(hands[i], deck[i*HandSize:(i+1)*HandSize])
	}
	return hands
}
