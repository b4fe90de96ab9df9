package tichu

import (
	"encoding/json"
	"fmt"
)

// cardJSON is the wire shape of a card. Suit is present iff the card is
// a numeric rank, value iff the card is a Phoenix with an assignment,
// wish iff the card is a Mahjong with a declared wish.
type cardJSON struct {
	Type  string `json:"type"`
	Suit  string `json:"suit,omitempty"`
	Value *int   `json:"value,omitempty"`
	Wish  *Card  `json:"wish,omitempty"`
}

// MarshalJSON encodes a Card as {"type":"King","suit":"Green",...}
func (c Card) MarshalJSON() ([]byte, error) {
	out := cardJSON{Type: c.Rank.String()}
	if c.Rank.IsNumeric() {
		out.Suit = c.Suit.String()
	}
	if c.Rank == Phoenix && c.PhoenixValue > 0 {
		v := c.PhoenixValue
		out.Value = &v
	}
	if c.Rank == Mahjong && c.MahjongWish != nil {
		out.Wish = c.MahjongWish
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the wire shape back into a Card
func (c *Card) UnmarshalJSON(b []byte) error {
	var in cardJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	rank, ok := parseRank(in.Type)
	if !ok {
		return fmt.Errorf("unknown card type %q", in.Type)
	}
	card := Card{Rank: rank}
	if rank.IsNumeric() {
		suit, ok := parseSuit(in.Suit)
		if !ok {
			return fmt.Errorf("unknown suit %q for card type %q", in.Suit, in.Type)
		}
		card.Suit = suit
	}
	if rank == Phoenix && in.Value != nil {
		if *in.Value < 1 || *in.Value > 14 {
			return fmt.Errorf("phoenix value %d out of range", *in.Value)
		}
		card.PhoenixValue = *in.Value
	}
	if rank == Mahjong && in.Wish != nil {
		card.MahjongWish = in.Wish
	}
	*c = card
	return nil
}

func parseRank(s string) (Rank, bool) {
	for r := Dog; r <= Dragon; r++ {
		if r.String() == s {
			return r, true
		}
	}
	return 0, false
}

func parseSuit(s string) (Suit, bool) {
	for suit := Black; suit <= Green; suit++ {
		if suit.String() == s {
			return suit, true
		}
	}
	return 0, false
}
