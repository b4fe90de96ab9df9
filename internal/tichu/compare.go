package tichu

// singleStrength ranks singles on doubled numbers so that the Phoenix
// can sit half a point below the real card of its assigned value: a
// numeric card of value n scores 2n, the Phoenix 2v-1, the Dragon tops
// everything. The Dog never beats and is handled by the round (lead
// only), so it carries no strength.
func singleStrength(c Card) int {
	switch c.Rank {
	case Dragon:
		return 2 * 15
	case Phoenix:
		return 2*c.PhoenixValue - 1
	default:
		if n, ok := c.Number(); ok {
			return 2 * n
		}
		return 0
	}
}

// Beats decides whether the candidate combination dominates the current
// top of the trick. It returns nil when the candidate wins,
// ErrIllegalBeat otherwise. Bombs override type matching; within a type
// the usual rank/height comparison applies.
func Beats(prev, cand Combination) error {
	// straight flush outranks everything except a longer or higher one
	if cand.Type == StraightFlush {
		if prev.Type != StraightFlush {
			return nil
		}
		if cand.Len() > prev.Len() {
			return nil
		}
		if cand.Len() == prev.Len() && cand.High() > prev.High() {
			return nil
		}
		return ErrIllegalBeat
	}

	if cand.Type == FourOfAKind {
		switch prev.Type {
		case StraightFlush:
			return ErrIllegalBeat
		case FourOfAKind:
			if cand.High() > prev.High() {
				return nil
			}
			return ErrIllegalBeat
		default:
			return nil
		}
	}

	if prev.Type.IsBomb() || cand.Type != prev.Type {
		return ErrIllegalBeat
	}

	switch cand.Type {
	case Single:
		return beatsSingle(prev.Cards[0], cand.Cards[0])
	case Pair, Triple:
		if cand.High() > prev.High() {
			return nil
		}
	case FullHouse:
		if cand.tripleRank() > prev.tripleRank() {
			return nil
		}
	case Straight, SequenceOfPairs:
		if cand.Len() == prev.Len() && cand.High() > prev.High() {
			return nil
		}
	}
	return ErrIllegalBeat
}

func beatsSingle(prev, cand Card) error {
	// the Dog only ever leads, the Dragon only falls to bombs
	if cand.Rank == Dog || prev.Rank == Dragon {
		return ErrIllegalBeat
	}
	if cand.Rank == Dragon {
		return nil
	}
	if singleStrength(cand) > singleStrength(prev) {
		return nil
	}
	return ErrIllegalBeat
}
