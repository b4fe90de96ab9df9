package tichu

import (
	"encoding/json"
	"testing"
)

func TestCardJSONShape(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(NewCard(King, Green))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(b), `{"type":"King","suit":"Green"}`; got != want {
		t.Errorf("King = %s, want %s", got, want)
	}

	b, _ = json.Marshal(Card{Rank: Dragon})
	if got, want := string(b), `{"type":"Dragon"}`; got != want {
		t.Errorf("Dragon = %s, want %s", got, want)
	}

	b, _ = json.Marshal(NewPhoenix(11))
	if got, want := string(b), `{"type":"Phoenix","value":11}`; got != want {
		t.Errorf("Phoenix = %s, want %s", got, want)
	}

	wish := NewCard(Eight, Red)
	b, _ = json.Marshal(Card{Rank: Mahjong, MahjongWish: &wish})
	if got, want := string(b), `{"type":"Mahjong","wish":{"type":"Eight","suit":"Red"}}`; got != want {
		t.Errorf("Mahjong = %s, want %s", got, want)
	}
}

func TestCardJSONDecode(t *testing.T) {
	t.Parallel()

	var c Card
	if err := json.Unmarshal([]byte(`{"type":"Five","suit":"Blue"}`), &c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.Rank != Five || c.Suit != Blue {
		t.Errorf("decoded %s, want Five(Blue)", c)
	}

	if err := json.Unmarshal([]byte(`{"type":"Phoenix","value":7}`), &c); err != nil {
		t.Fatalf("decode phoenix: %v", err)
	}
	if c.PhoenixValue != 7 {
		t.Errorf("phoenix value %d, want 7", c.PhoenixValue)
	}

	// malformed inputs
	for _, raw := range []string{
		`{"type":"Joker"}`,
		`{"type":"Five","suit":"Purple"}`,
		`{"type":"Five"}`,
		`{"type":"Phoenix","value":0}`,
		`{"type":"Phoenix","value":15}`,
	} {
		if err := json.Unmarshal([]byte(raw), &c); err == nil {
			t.Errorf("%s should not decode", raw)
		}
	}
}

func TestCardJSONRoundTrip(t *testing.T) {
	t.Parallel()

	for _, card := range NewDeck() {
		b, err := json.Marshal(card)
		if err != nil {
			t.Fatalf("marshal %s: %v", card, err)
		}
		var back Card
		if err := json.Unmarshal(b, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		if !card.Matches(back) {
			t.Errorf("round trip changed %s into %s", card, back)
		}
	}
}
