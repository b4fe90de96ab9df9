package tichu

import (
	rand "math/rand/v2"
	"sort"
)

// Team is a side of the partnership, or the spectator bench
type Team int

const (
	TeamUnassigned Team = iota
	TeamOne
	TeamTwo
	TeamSpectator
)

// String returns the string representation of a team
func (t Team) String() string {
	switch t {
	case TeamOne:
		return "One"
	case TeamTwo:
		return "Two"
	case TeamSpectator:
		return "Spectator"
	default:
		return "Unassigned"
	}
}

// Opponent returns the other playing team
func (t Team) Opponent() Team {
	switch t {
	case TeamOne:
		return TeamTwo
	case TeamTwo:
		return TeamOne
	default:
		return TeamUnassigned
	}
}

// Phase is the game lifecycle stage
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseExchanging
	PhasePlaying
	PhaseEnded
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "Lobby"
	case PhaseExchanging:
		return "Exchanging"
	case PhasePlaying:
		return "Playing"
	case PhaseEnded:
		return "Ended"
	default:
		return "?"
	}
}

// Player is a participant in a game
type Player struct {
	ID   string
	Name string
	Host bool
	Team Team
	// Seat is the ordinal within the team's seat pair, 1 or 2
	Seat int
	Hand Hand
	// Exchange maps recipient name to the offered card; exactly three
	// entries once complete
	Exchange map[string]Card
	// TrickPoints is the captured-trick total for the current round;
	// any round's capture sum stays within [-25, 125]
	TrickPoints int
	// Place is the finish ordinal within the round, 0 while still in
	Place int
}

// DefaultTargetScore ends the game once a team reaches it
const DefaultTargetScore = 1000

// RoundResult summarises a finished round
type RoundResult struct {
	DeltaOne  int
	DeltaTwo  int
	ScoreOne  int
	ScoreTwo  int
	DoubleWin bool
	Winner    Team
	GameOver  bool
}

// Game is the aggregate for one lobby: players, teams, phase, cumulative
// scores and the active round.
type Game struct {
	ID      string
	Players map[string]*Player
	Phase   Phase
	Target  int

	ScoreOne int
	ScoreTwo int

	Round *Round

	rng *rand.Rand
}

// NewGame creates an empty game in the lobby phase
func NewGame(id string, rng *rand.Rand, target int) *Game {
	if target <= 0 {
		target = DefaultTargetScore
	}
	return &Game{
		ID:      id,
		Players: make(map[string]*Player),
		Phase:   PhaseLobby,
		Target:  target,
		rng:     rng,
	}
}

// AddPlayer registers a player in the lobby
func (g *Game) AddPlayer(id, name string, host bool) (*Player, error) {
	if g.Phase != PhaseLobby {
		return nil, ErrWrongPhase
	}
	if _, ok := g.Players[id]; ok {
		return nil, ErrExchangeInvalid
	}
	p := &Player{ID: id, Name: name, Host: host}
	g.Players[id] = p
	return p, nil
}

// PlayerByName looks a player up by display name
func (g *Game) PlayerByName(name string) *Player {
	for _, p := range g.Players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// JoinTeam assigns a player to a team, enforcing two seats per playing
// team. Spectators are unlimited.
func (g *Game) JoinTeam(playerID string, team Team) error {
	p, ok := g.Players[playerID]
	if !ok {
		return ErrNotFound
	}
	if g.Phase != PhaseLobby {
		return ErrWrongPhase
	}
	if team == TeamSpectator {
		p.Team = team
		p.Seat = 0
		return nil
	}
	if team != TeamOne && team != TeamTwo {
		return ErrNotFound
	}
	if len(g.teamMembers(team)) >= 2 {
		return ErrTeamFull
	}
	p.Team = team
	p.Seat = len(g.teamMembers(team))
	return nil
}

// SwapTeams exchanges the team assignment and seating ordinal of two
// players, identified by display name
func (g *Game) SwapTeams(name1, name2 string) error {
	if g.Phase != PhaseLobby {
		return ErrWrongPhase
	}
	p1 := g.PlayerByName(name1)
	p2 := g.PlayerByName(name2)
	if p1 == nil || p2 == nil {
		return ErrNotFound
	}
	p1.Team, p2.Team = p2.Team, p1.Team
	p1.Seat, p2.Seat = p2.Seat, p1.Seat
	return nil
}

func (g *Game) teamMembers(team Team) []*Player {
	var members []*Player
	for _, p := range g.Players {
		if p.Team == team {
			members = append(members, p)
		}
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].Seat != members[j].Seat {
			return members[i].Seat < members[j].Seat
		}
		return members[i].ID < members[j].ID
	})
	return members
}

// Start validates the lobby, deals the first round and enters the
// exchange phase. The seat holding the Mahjong opens.
func (g *Game) Start() error {
	if g.Phase != PhaseLobby {
		return ErrWrongPhase
	}
	if len(g.teamMembers(TeamOne)) != 2 || len(g.teamMembers(TeamTwo)) != 2 {
		return ErrTeamFull
	}
	g.startRound()
	return nil
}

// startRound deals fresh hands, rebuilds the seating cycle and resets
// per-round player state
func (g *Game) startRound() {
	one := g.teamMembers(TeamOne)
	two := g.teamMembers(TeamTwo)
	// interleave so consecutive seats alternate teams
	seating := []*Player{one[0], two[0], one[1], two[1]}

	hands := Deal(g.rng)
	opener := ""
	for i, p := range seating {
		p.Hand = hands[i]
		p.Exchange = nil
		p.TrickPoints = 0
		p.Place = 0
		if p.Hand.Contains(Card{Rank: Mahjong}) {
			opener = p.ID
		}
	}
	g.Round = newRound(seating, g.Players, opener)
	g.Phase = PhaseExchanging
}

// ValidateExchange checks an exchange proposal: exactly three distinct
// owned cards, one for each of the three other players
func (g *Game) ValidateExchange(playerID string, offers map[string]Card) error {
	p, ok := g.Players[playerID]
	if !ok {
		return ErrNotFound
	}
	if g.Phase != PhaseExchanging {
		return ErrWrongPhase
	}
	if len(offers) != 3 {
		return ErrExchangeInvalid
	}
	cards := make([]Card, 0, 3)
	for recipient, card := range offers {
		if recipient == p.Name {
			return ErrExchangeInvalid
		}
		other := g.PlayerByName(recipient)
		if other == nil || other.Team == TeamSpectator || other.Team == TeamUnassigned {
			return ErrExchangeInvalid
		}
		for _, seen := range cards {
			if seen.Matches(card) {
				return ErrExchangeInvalid
			}
		}
		cards = append(cards, card)
	}
	if !p.Hand.ContainsAll(cards) {
		return ErrExchangeInvalid
	}
	return nil
}

// SubmitExchange validates and records a proposal; the last valid
// proposal before the deadline is the one applied
func (g *Game) SubmitExchange(playerID string, offers map[string]Card) error {
	if err := g.ValidateExchange(playerID, offers); err != nil {
		return err
	}
	g.Players[playerID].Exchange = offers
	return nil
}

// AllExchangesIn reports whether every seated player has submitted
func (g *Game) AllExchangesIn() bool {
	for _, p := range g.Players {
		if p.Team != TeamOne && p.Team != TeamTwo {
			continue
		}
		if p.Exchange == nil {
			return false
		}
	}
	return true
}

// ApplyExchanges moves the offered cards between hands and advances to
// the playing phase. Players who never submitted contribute no cards and
// receive none.
func (g *Game) ApplyExchanges() error {
	if g.Phase != PhaseExchanging {
		return ErrWrongPhase
	}
	for _, p := range g.Players {
		if p.Exchange == nil {
			continue
		}
		for recipient, card := range p.Exchange {
			other := g.PlayerByName(recipient)
			if other == nil {
				continue
			}
			rest, err := p.Hand.Remove([]Card{card})
			if err != nil {
				continue
			}
			p.Hand = rest
			other.Hand = append(other.Hand, card)
		}
	}
	// the deal, and with it the Mahjong, may have moved
	for _, p := range g.Players {
		if p.Hand.Contains(Card{Rank: Mahjong}) {
			g.Round.current = p.ID
			g.Round.lastAggressor = p.ID
		}
	}
	g.Phase = PhasePlaying
	return nil
}

// PlayTurn delegates a move to the active round
func (g *Game) PlayTurn(turn Turn) (trickEnded bool, err error) {
	if g.Phase != PhasePlaying || g.Round == nil {
		return false, ErrWrongPhase
	}
	return g.Round.PlayTurn(turn)
}

// CaptureTrick settles an ended trick on the active round
func (g *Game) CaptureTrick() (aggressor string, points int, err error) {
	if g.Phase != PhasePlaying || g.Round == nil {
		return "", 0, ErrWrongPhase
	}
	return g.Round.CaptureTrick()
}

// RoundOver reports whether the active round has finished
func (g *Game) RoundOver() bool {
	return g.Round != nil && g.Round.Over()
}

// FinishRound rolls the ended round into the cumulative scores and
// either ends the game or deals the next round
func (g *Game) FinishRound() (RoundResult, error) {
	if g.Phase != PhasePlaying || g.Round == nil || !g.Round.Over() {
		return RoundResult{}, ErrWrongPhase
	}
	r := g.Round

	// a trick still on the table belongs to its aggressor
	if r.TrickOpen() {
		if _, _, err := r.CaptureTrick(); err != nil {
			return RoundResult{}, err
		}
	}

	var result RoundResult
	if team, ok := r.doubleWinner(); ok {
		// both partners out before either opponent: flat 200, no
		// per-card accounting
		result.DoubleWin = true
		if team == TeamOne {
			result.DeltaOne = 200
		} else {
			result.DeltaTwo = 200
		}
	} else {
		if holder := r.lastHolder(); holder != nil {
			// leftover hand counts for the opponents, captured tricks
			// go to the first finisher
			opp := holder.Team.Opponent()
			leftover := holder.Hand.Points()
			if opp == TeamOne {
				result.DeltaOne += leftover
			} else {
				result.DeltaTwo += leftover
			}
			if first := g.Players[r.FirstFinisher()]; first != nil {
				first.TrickPoints += holder.TrickPoints
				holder.TrickPoints = 0
			}
		}
		for _, p := range g.Players {
			switch p.Team {
			case TeamOne:
				result.DeltaOne += p.TrickPoints
			case TeamTwo:
				result.DeltaTwo += p.TrickPoints
			}
		}
	}

	g.ScoreOne += result.DeltaOne
	g.ScoreTwo += result.DeltaTwo
	result.ScoreOne = g.ScoreOne
	result.ScoreTwo = g.ScoreTwo

	if winner, over := g.winnerLocked(); over {
		result.Winner = winner
		result.GameOver = true
		g.Phase = PhaseEnded
		g.Round = nil
		return result, nil
	}

	g.startRound()
	return result, nil
}

// winnerLocked applies the target-score rule: first team at the target
// wins, higher score breaks a simultaneous crossing, an exact tie plays
// another round
func (g *Game) winnerLocked() (Team, bool) {
	if g.ScoreOne < g.Target && g.ScoreTwo < g.Target {
		return TeamUnassigned, false
	}
	switch {
	case g.ScoreOne > g.ScoreTwo:
		return TeamOne, true
	case g.ScoreTwo > g.ScoreOne:
		return TeamTwo, true
	default:
		return TeamUnassigned, false
	}
}

// Winner returns the winning team once the game has ended
func (g *Game) Winner() (Team, bool) {
	if g.Phase != PhaseEnded {
		return TeamUnassigned, false
	}
	return g.winnerLocked()
}
