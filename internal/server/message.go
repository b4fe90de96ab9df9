package server

import (
	"encoding/json"

	"github.com/DaAlbrecht/tichu/internal/tichu"
)

// Message is the wire frame: an event name plus one JSON payload
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// NewMessage creates a message with a marshalled payload
func NewMessage(event string, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{Event: event, Data: dataBytes}, nil
}

// Client → server events
const (
	EventCreateLobby      = "create-lobby"
	EventConnectLobby     = "connect-lobby"
	EventJoinTeam         = "join-team"
	EventPlayerSwapTeam   = "player-swap-team"
	EventValidateExchange = "validate-exchange"
	EventPlayTurn         = "play-turn"
	EventShowCards        = "show-cards"
	EventStartGame        = "start-game"
)

// Server → client events
const (
	EventLobbyCreated       = "lobby-created"
	EventLobbyNotFound      = "lobby-not-found"
	EventUserJoined         = "user-joined"
	EventUsersInLobby       = "users-in-lobby"
	EventTeamJoined         = "team-joined"
	EventGameStarted        = "game-started"
	EventGamePhase          = "game-phase"
	EventHand               = "hand"
	EventNextPlayer         = "next-player"
	EventTrickPlayed        = "trick-played"
	EventTrickCaptured      = "trick-captured"
	EventTrickError         = "trick-error"
	EventExchangeValidation = "exchange-validation"
	EventRoundEnded         = "round-ended"
	EventGameEnded          = "game-ended"
	EventDisconnect         = "disconnect"
)

// Client → server payloads

type CreateLobbyData struct {
	Username string `json:"username"`
}

type ConnectLobbyData struct {
	GameID   string `json:"gameId"`
	Username string `json:"username"`
}

type JoinTeamData struct {
	GameID string `json:"gameId"`
	Team   string `json:"team"`
}

type SwapTeamData struct {
	GameID  string `json:"gameId"`
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

type ValidateExchangeData struct {
	GameID     string                `json:"gameId"`
	PlayerCard map[string]tichu.Card `json:"playerCard"`
}

type PlayTurnData struct {
	GameID string       `json:"gameId"`
	Action string       `json:"action"`
	Cards  []tichu.Card `json:"cards,omitempty"`
}

type ShowCardsData struct {
	GameID string `json:"gameId"`
}

type StartGameData struct {
	GameID string `json:"gameId"`
}

// Server → client payloads

type LobbyCreatedData struct {
	GameID string `json:"gameId"`
}

type PlayerInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"isHost"`
	Team   string `json:"team"`
	Place  int    `json:"place,omitempty"`
}

type UserJoinedData struct {
	Player PlayerInfo `json:"player"`
}

type UsersInLobbyData struct {
	Players []PlayerInfo `json:"players"`
}

type TeamJoinedData struct {
	Player string `json:"player"`
	Team   string `json:"team"`
}

type GamePhaseData struct {
	Phase string `json:"phase"`
}

type HandData struct {
	Cards []tichu.Card `json:"cards"`
}

type NextPlayerData struct {
	Player string `json:"player"`
}

type TrickPlayedData struct {
	Trick [][]tichu.Card `json:"trick"`
	Type  string         `json:"type"`
}

type TrickCapturedData struct {
	Player string `json:"player"`
	Points int    `json:"points"`
}

type TrickErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ExchangeValidationData struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

type RoundEndedData struct {
	TeamOne   int  `json:"teamOne"`
	TeamTwo   int  `json:"teamTwo"`
	DeltaOne  int  `json:"deltaOne"`
	DeltaTwo  int  `json:"deltaTwo"`
	DoubleWin bool `json:"doubleWin"`
}

type GameEndedData struct {
	Winner string `json:"winner"`
}

// PlayerInfoFromGame converts a core player for the wire
func PlayerInfoFromGame(p *tichu.Player) PlayerInfo {
	return PlayerInfo{
		ID:     p.ID,
		Name:   p.Name,
		IsHost: p.Host,
		Team:   p.Team.String(),
		Place:  p.Place,
	}
}
