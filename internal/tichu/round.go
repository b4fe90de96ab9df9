package tichu

// Action is what a player does on their turn
type Action int

const (
	ActionNone Action = iota
	ActionPass
	ActionPlay
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case ActionPass:
		return "Pass"
	case ActionPlay:
		return "Play"
	default:
		return "None"
	}
}

// Turn is one player's move, handed to the round by the dispatcher
type Turn struct {
	Player string
	Action Action
	Cards  []Card
}

// Round holds the per-round state: the seating cycle, the live trick and
// the bookkeeping needed to settle it.
type Round struct {
	players map[string]*Player

	// next is the seating cycle, a single 4-cycle whose consecutive
	// seats alternate teams
	next map[string]string

	current       string
	lastAggressor string
	lastAction    Action

	trick     []Combination
	trickType TrickType
	hasTrick  bool

	firstFinisher string
	nextPlace     int

	captured []Card
}

// newRound builds a round over the seated players. The seating slice is
// in table order; opener (the Mahjong holder) takes the first turn.
func newRound(seating []*Player, players map[string]*Player, opener string) *Round {
	next := make(map[string]string, len(seating))
	prev := seating[len(seating)-1]
	for _, p := range seating {
		next[prev.ID] = p.ID
		prev = p
	}
	return &Round{
		players:       players,
		next:          next,
		current:       opener,
		lastAggressor: opener,
		nextPlace:     1,
	}
}

// Current returns the seat whose turn it is
func (r *Round) Current() string {
	return r.current
}

// LastAggressor returns the seat that last played rather than passed
func (r *Round) LastAggressor() string {
	return r.lastAggressor
}

// FirstFinisher returns the first seat to empty its hand, or ""
func (r *Round) FirstFinisher() string {
	return r.firstFinisher
}

// Trick returns the current trick stack, topmost combination last
func (r *Round) Trick() []Combination {
	return r.trick
}

// TrickType returns the classified type of the top combination
func (r *Round) TrickType() (TrickType, bool) {
	return r.trickType, r.hasTrick
}

// PlayTurn applies a play or pass for the current seat and advances the
// turn. It reports whether the trick just ended; the caller must then
// settle it with CaptureTrick.
func (r *Round) PlayTurn(turn Turn) (trickEnded bool, err error) {
	if turn.Player != r.current {
		return false, ErrNotYourTurn
	}
	player := r.players[turn.Player]
	if player == nil {
		return false, ErrNotFound
	}

	switch turn.Action {
	case ActionPass:
		if !r.hasTrick {
			// a trick must be opened with a play
			return false, ErrIllegalTrick
		}
		r.lastAction = ActionPass

	case ActionPlay:
		comb, err := Classify(turn.Cards)
		if err != nil {
			return false, err
		}
		if !player.Hand.ContainsAll(comb.Cards) {
			return false, ErrNotYourCards
		}
		if comb.Type == Single && comb.Cards[0].Rank == Dog {
			return false, r.playDog(player, comb)
		}
		if r.hasTrick {
			if err := Beats(r.trick[len(r.trick)-1], comb); err != nil {
				return false, err
			}
		}
		rest, err := player.Hand.Remove(comb.Cards)
		if err != nil {
			return false, err
		}
		player.Hand = rest
		r.trick = append(r.trick, comb)
		r.trickType = comb.Type
		r.hasTrick = true
		r.lastAction = ActionPlay
		r.lastAggressor = player.ID
		r.noteFinished(player)

	default:
		return false, ErrIllegalTrick
	}

	nxt := r.advanceFrom(r.current)
	if r.lastAction != ActionNone && nxt == r.lastAggressor {
		// the cycle closed on the aggressor: the trick is over
		r.current = r.lastAggressor
		return true, nil
	}
	r.current = nxt
	return false, nil
}

// playDog applies a Dog lead: the trick ends immediately with nothing
// to capture and the lead passes to the player's partner.
func (r *Round) playDog(player *Player, comb Combination) error {
	if r.hasTrick {
		return ErrIllegalTrick
	}
	rest, err := player.Hand.Remove(comb.Cards)
	if err != nil {
		return err
	}
	player.Hand = rest
	r.captured = append(r.captured, comb.Cards...)
	r.noteFinished(player)

	partner := r.next[r.next[player.ID]]
	if len(r.players[partner].Hand) == 0 {
		partner = r.advanceFrom(partner)
	}
	r.current = partner
	r.lastAggressor = partner
	r.lastAction = ActionNone
	return nil
}

// advanceFrom follows the seating cycle from seat, skipping players who
// have finished
func (r *Round) advanceFrom(seat string) string {
	nxt := seat
	for i := 0; i < len(r.next); i++ {
		nxt = r.next[nxt]
		if nxt == r.lastAggressor || len(r.players[nxt].Hand) > 0 {
			return nxt
		}
	}
	return r.lastAggressor
}

func (r *Round) noteFinished(p *Player) {
	if len(p.Hand) > 0 || p.Place != 0 {
		return
	}
	p.Place = r.nextPlace
	r.nextPlace++
	if r.firstFinisher == "" {
		r.firstFinisher = p.ID
	}
}

// CaptureTrick settles an ended trick: the aggressor is credited the
// stack's points and takes the lead. Phoenix assignments are cleared as
// the cards leave the live trick.
func (r *Round) CaptureTrick() (aggressor string, points int, err error) {
	if len(r.trick) == 0 {
		return "", 0, ErrIllegalTrick
	}
	winner := r.players[r.lastAggressor]
	if winner == nil {
		return "", 0, ErrNotFound
	}
	for _, comb := range r.trick {
		points += comb.Points()
		for _, card := range comb.Cards {
			card.PhoenixValue = 0
			r.captured = append(r.captured, card)
		}
	}
	winner.TrickPoints += points

	r.trick = nil
	r.hasTrick = false
	r.lastAction = ActionNone

	r.current = winner.ID
	if len(winner.Hand) == 0 {
		r.current = r.advanceFrom(winner.ID)
	}
	r.lastAggressor = r.current
	return winner.ID, points, nil
}

// TrickOpen reports whether a trick is currently being contested
func (r *Round) TrickOpen() bool {
	return r.hasTrick
}

// playersWithCards counts seats still holding cards
func (r *Round) playersWithCards() int {
	count := 0
	for seat := range r.next {
		if len(r.players[seat].Hand) > 0 {
			count++
		}
	}
	return count
}

// Over reports whether the round has ended: at most one player still
// holds cards, or one team finished first and second (a double win).
func (r *Round) Over() bool {
	if r.playersWithCards() <= 1 {
		return true
	}
	_, ok := r.doubleWinner()
	return ok
}

// doubleWinner returns the team whose two members both finished while
// both opponents still held cards
func (r *Round) doubleWinner() (Team, bool) {
	finished := map[Team]int{}
	for seat := range r.next {
		p := r.players[seat]
		if len(p.Hand) == 0 {
			finished[p.Team]++
		}
	}
	for team, count := range finished {
		if count == 2 && len(finished) == 1 {
			return team, true
		}
	}
	return 0, false
}

// lastHolder returns the one player still holding cards, if any
func (r *Round) lastHolder() *Player {
	var holder *Player
	for seat := range r.next {
		if p := r.players[seat]; len(p.Hand) > 0 {
			if holder != nil {
				return nil
			}
			holder = p
		}
	}
	return holder
}
