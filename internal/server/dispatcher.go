package server

import (
	rand "math/rand/v2"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/DaAlbrecht/tichu/internal/tichu"
)

// Scope says who an outbound event goes to
type Scope int

const (
	// ScopeRoom fans out to every connection in the game's room
	ScopeRoom Scope = iota
	// ScopePlayer goes to a single player in the room
	ScopePlayer
)

// Outbound is one event built under the game mutex and emitted after
// the mutex is released
type Outbound struct {
	Scope  Scope
	Player string
	Event  string
	Data   interface{}
}

// Emitter delivers built events to connections. Broadcast is
// best-effort: a failed send to one client must not affect the rest.
type Emitter interface {
	Broadcast(gameID string, msg *Message)
	SendTo(gameID, playerID string, msg *Message)
}

// Dispatcher translates inbound events into core calls and core state
// into outbound events. Pattern per game: lock, call, collect, unlock,
// emit.
type Dispatcher struct {
	store   *Store
	emitter Emitter
	logger  *log.Logger
	timers  *ExchangeTimers

	newGameID       func() string
	newRNG          func() *rand.Rand
	targetScore     int
	exchangeTimeout time.Duration
}

// NewDispatcher wires a dispatcher to its store, emitter and timers
func NewDispatcher(store *Store, emitter Emitter, timers *ExchangeTimers, logger *log.Logger, newGameID func() string, newRNG func() *rand.Rand, targetScore int, exchangeTimeout time.Duration) *Dispatcher {
	return &Dispatcher{
		store:           store,
		emitter:         emitter,
		logger:          logger.WithPrefix("dispatch"),
		timers:          timers,
		newGameID:       newGameID,
		newRNG:          newRNG,
		targetScore:     targetScore,
		exchangeTimeout: exchangeTimeout,
	}
}

// emit delivers collected events once the game mutex is released
func (d *Dispatcher) emit(gameID string, events []Outbound) {
	for _, ev := range events {
		msg, err := NewMessage(ev.Event, ev.Data)
		if err != nil {
			d.logger.Error("Failed to marshal outbound event", "event", ev.Event, "error", err)
			continue
		}
		switch ev.Scope {
		case ScopeRoom:
			d.emitter.Broadcast(gameID, msg)
		case ScopePlayer:
			d.emitter.SendTo(gameID, ev.Player, msg)
		}
	}
}

func errorEvent(player string, err error) Outbound {
	return Outbound{
		Scope:  ScopePlayer,
		Player: player,
		Event:  EventTrickError,
		Data:   TrickErrorData{Code: tichu.ErrorCode(err), Message: err.Error()},
	}
}

// CreateLobby makes a new game with the caller as host. The returned
// game id doubles as the room name; the connection associates itself
// with the room and answers the caller directly.
func (d *Dispatcher) CreateLobby(data CreateLobbyData) (string, []PlayerInfo, error) {
	id := d.newGameID()
	game := tichu.NewGame(id, d.newRNG(), d.targetScore)
	p, err := game.AddPlayer(data.Username, data.Username, true)
	if err != nil {
		return "", nil, err
	}
	d.store.Put(game)
	d.logger.Info("Lobby created", "gameId", id, "host", data.Username)
	return id, []PlayerInfo{PlayerInfoFromGame(p)}, nil
}

// ConnectLobby joins an existing lobby. The caller's connection must
// already be associated with the room so the replies reach it; it
// reports whether the join succeeded.
func (d *Dispatcher) ConnectLobby(data ConnectLobbyData) bool {
	var events []Outbound
	joined := false
	ok := d.store.With(data.GameID, func(g *tichu.Game) {
		p, err := g.AddPlayer(data.Username, data.Username, false)
		if err != nil {
			events = append(events, errorEvent(data.Username, err))
			return
		}
		joined = true
		events = append(events,
			Outbound{Scope: ScopeRoom, Event: EventUserJoined, Data: UserJoinedData{Player: PlayerInfoFromGame(p)}},
			Outbound{Scope: ScopePlayer, Player: data.Username, Event: EventUsersInLobby, Data: UsersInLobbyData{Players: lobbySnapshot(g)}},
		)
	})
	if !ok {
		d.lobbyNotFound(data.GameID, data.Username)
		return false
	}
	d.emit(data.GameID, events)
	return joined
}

// JoinTeam assigns the caller to a team
func (d *Dispatcher) JoinTeam(caller string, data JoinTeamData) {
	var events []Outbound
	ok := d.store.With(data.GameID, func(g *tichu.Game) {
		team := parseTeam(data.Team)
		if err := g.JoinTeam(caller, team); err != nil {
			events = append(events, errorEvent(caller, err))
			return
		}
		events = append(events,
			Outbound{Scope: ScopeRoom, Event: EventTeamJoined, Data: TeamJoinedData{Player: caller, Team: team.String()}},
			Outbound{Scope: ScopeRoom, Event: EventUsersInLobby, Data: UsersInLobbyData{Players: lobbySnapshot(g)}},
		)
	})
	if !ok {
		d.lobbyNotFound(data.GameID, caller)
		return
	}
	d.emit(data.GameID, events)
}

// SwapTeam exchanges two players' team assignments and seats
func (d *Dispatcher) SwapTeam(caller string, data SwapTeamData) {
	var events []Outbound
	ok := d.store.With(data.GameID, func(g *tichu.Game) {
		if err := g.SwapTeams(data.Player1, data.Player2); err != nil {
			events = append(events, errorEvent(caller, err))
			return
		}
		events = append(events, Outbound{Scope: ScopeRoom, Event: EventUsersInLobby, Data: UsersInLobbyData{Players: lobbySnapshot(g)}})
	})
	if !ok {
		d.lobbyNotFound(data.GameID, caller)
		return
	}
	d.emit(data.GameID, events)
}

// StartGame deals the first round and opens the exchange phase
func (d *Dispatcher) StartGame(caller string, data StartGameData) {
	var events []Outbound
	started := false
	ok := d.store.With(data.GameID, func(g *tichu.Game) {
		if err := g.Start(); err != nil {
			events = append(events, errorEvent(caller, err))
			return
		}
		started = true
		events = append(events, Outbound{Scope: ScopeRoom, Event: EventGameStarted, Data: struct{}{}})
		events = append(events, d.exchangeEvents(g)...)
	})
	if !ok {
		d.lobbyNotFound(data.GameID, caller)
		return
	}
	d.emit(data.GameID, events)
	if started {
		d.scheduleExchangeDeadline(data.GameID)
	}
}

// ValidateExchange records an exchange proposal and, when the last one
// arrives, advances to the playing phase
func (d *Dispatcher) ValidateExchange(caller string, data ValidateExchangeData) {
	var events []Outbound
	complete := false
	ok := d.store.With(data.GameID, func(g *tichu.Game) {
		if err := g.SubmitExchange(caller, data.PlayerCard); err != nil {
			events = append(events, Outbound{
				Scope: ScopePlayer, Player: caller,
				Event: EventExchangeValidation,
				Data:  ExchangeValidationData{Valid: false, Reason: tichu.ErrorCode(err)},
			})
			return
		}
		events = append(events, Outbound{
			Scope: ScopePlayer, Player: caller,
			Event: EventExchangeValidation,
			Data:  ExchangeValidationData{Valid: true},
		})
		if g.AllExchangesIn() {
			if err := g.ApplyExchanges(); err != nil {
				events = append(events, errorEvent(caller, err))
				return
			}
			complete = true
			events = append(events, d.playingEvents(g)...)
		}
	})
	if !ok {
		d.lobbyNotFound(data.GameID, caller)
		return
	}
	if complete {
		d.timers.Cancel(data.GameID)
	}
	d.emit(data.GameID, events)
}

// PlayTurn applies a play or pass and walks the round forward through
// trick capture, round end and game end
func (d *Dispatcher) PlayTurn(caller string, data PlayTurnData) {
	var events []Outbound
	nextRound := false
	ok := d.store.With(data.GameID, func(g *tichu.Game) {
		turn := tichu.Turn{Player: caller, Action: parseAction(data.Action), Cards: data.Cards}
		trickEnded, err := g.PlayTurn(turn)
		if err != nil {
			events = append(events, errorEvent(caller, err))
			return
		}
		events = append(events, Outbound{Scope: ScopeRoom, Event: EventTrickPlayed, Data: trickSnapshot(g)})

		if trickEnded {
			aggressor, points, err := g.CaptureTrick()
			if err != nil {
				d.logger.Error("Trick capture failed", "gameId", g.ID, "error", err)
				return
			}
			events = append(events, Outbound{
				Scope: ScopeRoom, Event: EventTrickCaptured,
				Data: TrickCapturedData{Player: aggressor, Points: points},
			})
		}

		if g.RoundOver() {
			result, err := g.FinishRound()
			if err != nil {
				d.logger.Error("Round settlement failed", "gameId", g.ID, "error", err)
				return
			}
			events = append(events, Outbound{
				Scope: ScopeRoom, Event: EventRoundEnded,
				Data: RoundEndedData{
					TeamOne: result.ScoreOne, TeamTwo: result.ScoreTwo,
					DeltaOne: result.DeltaOne, DeltaTwo: result.DeltaTwo,
					DoubleWin: result.DoubleWin,
				},
			})
			if result.GameOver {
				events = append(events, Outbound{
					Scope: ScopeRoom, Event: EventGameEnded,
					Data: GameEndedData{Winner: result.Winner.String()},
				})
				return
			}
			nextRound = true
			events = append(events, d.exchangeEvents(g)...)
			return
		}

		events = append(events, Outbound{
			Scope: ScopeRoom, Event: EventNextPlayer,
			Data: NextPlayerData{Player: g.Round.Current()},
		})
	})
	if !ok {
		d.lobbyNotFound(data.GameID, caller)
		return
	}
	d.emit(data.GameID, events)
	if nextRound {
		d.scheduleExchangeDeadline(data.GameID)
	}
}

// ShowCards sends the caller their own hand
func (d *Dispatcher) ShowCards(caller string, data ShowCardsData) {
	var events []Outbound
	ok := d.store.With(data.GameID, func(g *tichu.Game) {
		p, found := g.Players[caller]
		if !found {
			events = append(events, errorEvent(caller, tichu.ErrNotFound))
			return
		}
		events = append(events, Outbound{
			Scope: ScopePlayer, Player: caller,
			Event: EventHand, Data: HandData{Cards: p.Hand},
		})
	})
	if !ok {
		d.lobbyNotFound(data.GameID, caller)
		return
	}
	d.emit(data.GameID, events)
}

// scheduleExchangeDeadline arms the one-shot timer that force-advances
// the exchange phase
func (d *Dispatcher) scheduleExchangeDeadline(gameID string) {
	d.timers.Schedule(gameID, d.exchangeTimeout, func() {
		var events []Outbound
		ok := d.store.With(gameID, func(g *tichu.Game) {
			if g.Phase != tichu.PhaseExchanging {
				return
			}
			d.logger.Info("Exchange deadline expired, forcing play phase", "gameId", gameID)
			if err := g.ApplyExchanges(); err != nil {
				d.logger.Error("Forced exchange failed", "gameId", gameID, "error", err)
				return
			}
			events = append(events, d.playingEvents(g)...)
		})
		if ok {
			d.emit(gameID, events)
		}
	})
}

// exchangeEvents announces a fresh deal: phase, private hands and the
// opening seat
func (d *Dispatcher) exchangeEvents(g *tichu.Game) []Outbound {
	events := []Outbound{
		{Scope: ScopeRoom, Event: EventGamePhase, Data: GamePhaseData{Phase: g.Phase.String()}},
	}
	events = append(events, handEvents(g)...)
	events = append(events, Outbound{
		Scope: ScopeRoom, Event: EventNextPlayer,
		Data: NextPlayerData{Player: g.Round.Current()},
	})
	return events
}

// playingEvents announces the transition to the playing phase with the
// post-exchange hands
func (d *Dispatcher) playingEvents(g *tichu.Game) []Outbound {
	events := []Outbound{
		{Scope: ScopeRoom, Event: EventGamePhase, Data: GamePhaseData{Phase: g.Phase.String()}},
	}
	events = append(events, handEvents(g)...)
	events = append(events, Outbound{
		Scope: ScopeRoom, Event: EventNextPlayer,
		Data: NextPlayerData{Player: g.Round.Current()},
	})
	return events
}

func (d *Dispatcher) lobbyNotFound(gameID, caller string) {
	msg, _ := NewMessage(EventLobbyNotFound, LobbyCreatedData{GameID: gameID})
	d.emitter.SendTo(gameID, caller, msg)
}

func handEvents(g *tichu.Game) []Outbound {
	var events []Outbound
	for _, p := range g.Players {
		if p.Team != tichu.TeamOne && p.Team != tichu.TeamTwo {
			continue
		}
		events = append(events, Outbound{
			Scope: ScopePlayer, Player: p.ID,
			Event: EventHand, Data: HandData{Cards: p.Hand},
		})
	}
	return events
}

func lobbySnapshot(g *tichu.Game) []PlayerInfo {
	players := make([]PlayerInfo, 0, len(g.Players))
	for _, p := range g.Players {
		players = append(players, PlayerInfoFromGame(p))
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Name < players[j].Name })
	return players
}

func trickSnapshot(g *tichu.Game) TrickPlayedData {
	data := TrickPlayedData{Trick: [][]tichu.Card{}}
	if g.Round == nil {
		return data
	}
	for _, comb := range g.Round.Trick() {
		data.Trick = append(data.Trick, comb.Cards)
	}
	if t, ok := g.Round.TrickType(); ok {
		data.Type = t.String()
	}
	return data
}

func parseTeam(s string) tichu.Team {
	switch s {
	case "One", "one", "1":
		return tichu.TeamOne
	case "Two", "two", "2":
		return tichu.TeamTwo
	case "Spectator", "spectator":
		return tichu.TeamSpectator
	default:
		return tichu.TeamUnassigned
	}
}

func parseAction(s string) tichu.Action {
	switch s {
	case "Play", "play":
		return tichu.ActionPlay
	case "Pass", "pass":
		return tichu.ActionPass
	default:
		return tichu.ActionNone
	}
}
