package tichu

import "sort"

// TrickType identifies the shape of a played combination
type TrickType int

const (
	Single TrickType = iota
	Pair
	Triple
	FullHouse
	Straight
	SequenceOfPairs
	FourOfAKind
	StraightFlush
)

// String returns the string representation of a trick type
func (t TrickType) String() string {
	switch t {
	case Single:
		return "Single"
	case Pair:
		return "Pair"
	case Triple:
		return "Triple"
	case FullHouse:
		return "FullHouse"
	case Straight:
		return "Straight"
	case SequenceOfPairs:
		return "SequenceOfPairs"
	case FourOfAKind:
		return "FourOfAKind"
	case StraightFlush:
		return "StraightFlush"
	default:
		return "?"
	}
}

// IsBomb reports whether the type beats out-of-type combinations
func (t TrickType) IsBomb() bool {
	return t == FourOfAKind || t == StraightFlush
}

// Combination is a classified set of cards submitted as a single play.
// Classify assigns the Phoenix its value, so the cards of a valid
// Combination always have defined numbers (Dog and Dragon aside).
type Combination struct {
	Cards []Card
	Type  TrickType
}

// Len returns the number of cards in the combination
func (c Combination) Len() int {
	return len(c.Cards)
}

// High returns the highest card number in the combination
func (c Combination) High() int {
	high := 0
	for _, card := range c.Cards {
		if n, ok := card.Number(); ok && n > high {
			high = n
		}
	}
	return high
}

// Points returns the capture value of the combination's cards
func (c Combination) Points() int {
	total := 0
	for _, card := range c.Cards {
		total += card.Points()
	}
	return total
}

// tripleRank returns the number of the three-of-a-kind component of a
// full house
func (c Combination) tripleRank() int {
	counts := map[int]int{}
	for _, card := range c.Cards {
		if n, ok := card.Number(); ok {
			counts[n]++
		}
	}
	for n, count := range counts {
		if count >= 3 {
			return n
		}
	}
	return 0
}

// Classify identifies the trick type of a card multiset, or rejects it.
// The Phoenix enters with its requested value already set (a single or a
// gap-filling straight position must be explicit) or unset, in which
// case the value is inferred from the surrounding cards. On success the
// returned combination carries the Phoenix's assigned value.
func Classify(cards []Card) (Combination, error) {
	if len(cards) == 0 || len(cards) > DeckSize/4 {
		return Combination{}, ErrIllegalTrick
	}

	cs := make([]Card, len(cards))
	copy(cs, cards)

	if err := validatePhoenixCount(cs); err != nil {
		return Combination{}, err
	}

	switch n := len(cs); {
	case n == 1:
		return classifySingle(cs)
	case n == 2 || n == 3:
		return classifyOfAKind(cs)
	case n == 4:
		if comb, err := classifyFourOfAKind(cs); err == nil {
			return comb, nil
		}
		return classifySequenceOfPairs(cs)
	case n == 5:
		if comb, err := classifyFullHouse(cs); err == nil {
			return comb, nil
		}
		return classifyStraight(cs)
	case n%2 == 0:
		if comb, err := classifySequenceOfPairs(cs); err == nil {
			return comb, nil
		}
		return classifyStraight(cs)
	default:
		return classifyStraight(cs)
	}
}

func validatePhoenixCount(cs []Card) error {
	count := 0
	for _, c := range cs {
		if c.Rank == Phoenix {
			count++
		}
	}
	if count > 1 {
		return ErrIllegalTrick
	}
	return nil
}

// phoenixAt returns the index of the Phoenix, or -1
func phoenixAt(cs []Card) int {
	for i, c := range cs {
		if c.Rank == Phoenix {
			return i
		}
	}
	return -1
}

func classifySingle(cs []Card) (Combination, error) {
	c := cs[0]
	if c.Rank == Phoenix && c.PhoenixValue == 0 {
		// a lone Phoenix needs an explicit value
		return Combination{}, ErrIllegalTrick
	}
	if c.Rank == Phoenix && (c.PhoenixValue < 1 || c.PhoenixValue > 14) {
		return Combination{}, ErrIllegalTrick
	}
	return Combination{Cards: cs, Type: Single}, nil
}

// classifyOfAKind handles pairs and triples, with the Phoenix standing
// in for any numeric rank
func classifyOfAKind(cs []Card) (Combination, error) {
	pi := phoenixAt(cs)
	rank := 0
	for i, c := range cs {
		if i == pi {
			continue
		}
		if !c.Rank.IsNumeric() {
			return Combination{}, ErrIllegalTrick
		}
		if rank == 0 {
			rank = int(c.Rank)
		} else if int(c.Rank) != rank {
			return Combination{}, ErrIllegalTrick
		}
	}
	if pi >= 0 {
		if rank == 0 {
			// two Phoenixes cannot occur; a Phoenix needs a real partner
			return Combination{}, ErrIllegalTrick
		}
		if cs[pi].PhoenixValue != 0 && cs[pi].PhoenixValue != rank {
			return Combination{}, ErrIllegalTrick
		}
		cs[pi].PhoenixValue = rank
	}
	t := Pair
	if len(cs) == 3 {
		t = Triple
	}
	return Combination{Cards: cs, Type: t}, nil
}

// classifyFourOfAKind accepts only four natural cards of one rank; the
// Phoenix may not complete a bomb
func classifyFourOfAKind(cs []Card) (Combination, error) {
	rank := cs[0].Rank
	if !rank.IsNumeric() {
		return Combination{}, ErrIllegalTrick
	}
	for _, c := range cs {
		if c.Rank != rank {
			return Combination{}, ErrIllegalTrick
		}
	}
	return Combination{Cards: cs, Type: FourOfAKind}, nil
}

func classifyFullHouse(cs []Card) (Combination, error) {
	pi := phoenixAt(cs)
	counts := map[int]int{}
	for i, c := range cs {
		if i == pi {
			continue
		}
		if !c.Rank.IsNumeric() {
			return Combination{}, ErrIllegalTrick
		}
		counts[int(c.Rank)]++
	}

	if pi < 0 {
		if !isFullHouseCounts(counts) {
			return Combination{}, ErrIllegalTrick
		}
		return Combination{Cards: cs, Type: FullHouse}, nil
	}

	if v := cs[pi].PhoenixValue; v != 0 {
		counts[v]++
		if !isFullHouseCounts(counts) {
			return Combination{}, ErrIllegalTrick
		}
		return Combination{Cards: cs, Type: FullHouse}, nil
	}

	// infer the Phoenix slot: 3+1 makes the singleton a pair, 2+2 turns
	// the higher pair into the triple
	var ranks []int
	for r := range counts {
		ranks = append(ranks, r)
	}
	if len(ranks) != 2 {
		return Combination{}, ErrIllegalTrick
	}
	sort.Ints(ranks)
	lo, hi := ranks[0], ranks[1]
	switch {
	case counts[lo] == 3 && counts[hi] == 1:
		cs[pi].PhoenixValue = hi
	case counts[lo] == 1 && counts[hi] == 3:
		cs[pi].PhoenixValue = lo
	case counts[lo] == 2 && counts[hi] == 2:
		cs[pi].PhoenixValue = hi
	default:
		return Combination{}, ErrIllegalTrick
	}
	return Combination{Cards: cs, Type: FullHouse}, nil
}

func isFullHouseCounts(counts map[int]int) bool {
	if len(counts) != 2 {
		return false
	}
	has2, has3 := false, false
	for _, c := range counts {
		switch c {
		case 2:
			has2 = true
		case 3:
			has3 = true
		}
	}
	return has2 && has3
}

// classifySequenceOfPairs handles contiguous ascending pairs, two pairs
// minimum, with the Phoenix standing in for one card of one pair
func classifySequenceOfPairs(cs []Card) (Combination, error) {
	if len(cs) < 4 || len(cs)%2 != 0 {
		return Combination{}, ErrIllegalTrick
	}
	pi := phoenixAt(cs)
	counts := map[int]int{}
	for i, c := range cs {
		if i == pi {
			continue
		}
		if !c.Rank.IsNumeric() {
			return Combination{}, ErrIllegalTrick
		}
		counts[int(c.Rank)]++
	}

	if pi >= 0 {
		if v := cs[pi].PhoenixValue; v != 0 {
			counts[v]++
		} else {
			single := 0
			for r, c := range counts {
				if c == 1 {
					if single != 0 {
						return Combination{}, ErrIllegalTrick
					}
					single = r
				}
			}
			if single == 0 {
				return Combination{}, ErrIllegalTrick
			}
			counts[single]++
			cs[pi].PhoenixValue = single
		}
	}

	var ranks []int
	for r, c := range counts {
		if c != 2 {
			return Combination{}, ErrIllegalTrick
		}
		ranks = append(ranks, r)
	}
	sort.Ints(ranks)
	for i := 1; i < len(ranks); i++ {
		if ranks[i] != ranks[i-1]+1 {
			return Combination{}, ErrIllegalTrick
		}
	}
	return Combination{Cards: cs, Type: SequenceOfPairs}, nil
}

// classifyStraight handles runs of five or more. The Mahjong occupies
// position 1; one Phoenix may fill a gap or extend either end within
// 2..14. A straight of one suit with no joker is a straight flush.
func classifyStraight(cs []Card) (Combination, error) {
	if len(cs) < 5 {
		return Combination{}, ErrIllegalTrick
	}
	pi := phoenixAt(cs)
	seen := map[int]bool{}
	var numbers []int
	for i, c := range cs {
		if i == pi {
			continue
		}
		n, ok := c.Number()
		if !ok || (!c.Rank.IsNumeric() && c.Rank != Mahjong) {
			return Combination{}, ErrIllegalTrick
		}
		if seen[n] {
			return Combination{}, ErrIllegalTrick
		}
		seen[n] = true
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	if pi >= 0 {
		v := cs[pi].PhoenixValue
		if v == 0 {
			var ok bool
			v, ok = inferStraightPhoenix(numbers)
			if !ok {
				return Combination{}, ErrIllegalTrick
			}
			cs[pi].PhoenixValue = v
		}
		if v < 2 || v > 14 || seen[v] {
			return Combination{}, ErrIllegalTrick
		}
		numbers = append(numbers, v)
		sort.Ints(numbers)
	}

	for i := 1; i < len(numbers); i++ {
		if numbers[i] != numbers[i-1]+1 {
			return Combination{}, ErrIllegalTrick
		}
	}

	if pi < 0 && isFlush(cs) {
		return Combination{Cards: cs, Type: StraightFlush}, nil
	}
	return Combination{Cards: cs, Type: Straight}, nil
}

// inferStraightPhoenix picks the Phoenix position for an unassigned
// Phoenix: fill the single gap if there is one, otherwise extend the
// high end, falling back to the low end at the Ace
func inferStraightPhoenix(sorted []int) (int, bool) {
	gap := 0
	for i := 1; i < len(sorted); i++ {
		switch sorted[i] - sorted[i-1] {
		case 1:
		case 2:
			if gap != 0 {
				return 0, false
			}
			gap = sorted[i-1] + 1
		default:
			return 0, false
		}
	}
	if gap != 0 {
		return gap, true
	}
	if max := sorted[len(sorted)-1]; max < 14 {
		return max + 1, true
	}
	if min := sorted[0]; min > 2 {
		return min - 1, true
	}
	return 0, false
}

func isFlush(cs []Card) bool {
	suit := cs[0].Suit
	for _, c := range cs {
		if !c.Rank.IsNumeric() || c.Suit != suit {
			return false
		}
	}
	return true
}
