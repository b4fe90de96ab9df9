package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Connection wraps one WebSocket client
type Connection struct {
	conn       *websocket.Conn
	send       chan *Message
	playerID   string
	gameID     string
	logger     *log.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	mu         sync.RWMutex
	closeOnce  sync.Once
	dispatcher *Dispatcher
}

// NewConnection creates a connection wrapper
func NewConnection(conn *websocket.Conn, logger *log.Logger, dispatcher *Dispatcher) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:       conn,
		send:       make(chan *Message, 256),
		logger:     logger.WithPrefix("conn"),
		ctx:        ctx,
		cancel:     cancel,
		dispatcher: dispatcher,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message for the client
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// channel closed during shutdown
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// SetPlayer associates this connection with a player
func (c *Connection) SetPlayer(playerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playerID = playerID
}

// GetPlayer returns the associated player ID
func (c *Connection) GetPlayer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID
}

// SetGame associates this connection with a game room
func (c *Connection) SetGame(gameID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gameID = gameID
}

// GetGame returns the associated game ID
func (c *Connection) GetGame() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gameID
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var ErrConnectionClosed = websocket.ErrCloseSent

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage routes an inbound event to the dispatcher
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "event", msg.Event, "player", c.GetPlayer())

	switch msg.Event {
	case EventCreateLobby:
		var data CreateLobbyData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse create lobby data")
			return
		}
		c.handleCreateLobby(data)

	case EventConnectLobby:
		var data ConnectLobbyData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse connect lobby data")
			return
		}
		c.handleConnectLobby(data)

	case EventJoinTeam:
		var data JoinTeamData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse join team data")
			return
		}
		c.dispatcher.JoinTeam(c.GetPlayer(), data)

	case EventPlayerSwapTeam:
		var data SwapTeamData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse swap team data")
			return
		}
		c.dispatcher.SwapTeam(c.GetPlayer(), data)

	case EventValidateExchange:
		var data ValidateExchangeData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse exchange data")
			return
		}
		c.dispatcher.ValidateExchange(c.GetPlayer(), data)

	case EventPlayTurn:
		var data PlayTurnData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse play turn data")
			return
		}
		c.dispatcher.PlayTurn(c.GetPlayer(), data)

	case EventShowCards:
		var data ShowCardsData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse show cards data")
			return
		}
		c.dispatcher.ShowCards(c.GetPlayer(), data)

	case EventStartGame:
		var data StartGameData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse start game data")
			return
		}
		c.dispatcher.StartGame(c.GetPlayer(), data)

	default:
		c.sendError("unknown_event", "Unknown event: "+msg.Event)
	}
}

func (c *Connection) handleCreateLobby(data CreateLobbyData) {
	if data.Username == "" {
		c.sendError("invalid_message", "Username required")
		return
	}

	gameID, players, err := c.dispatcher.CreateLobby(data)
	if err != nil {
		c.sendError("create_failed", err.Error())
		return
	}

	c.SetPlayer(data.Username)
	c.SetGame(gameID)

	created, _ := NewMessage(EventLobbyCreated, LobbyCreatedData{GameID: gameID})
	_ = c.SendMessage(created)
	users, _ := NewMessage(EventUsersInLobby, UsersInLobbyData{Players: players})
	_ = c.SendMessage(users)
}

func (c *Connection) handleConnectLobby(data ConnectLobbyData) {
	if data.Username == "" {
		c.sendError("invalid_message", "Username required")
		return
	}

	// associate first so room-scoped replies reach this connection
	c.SetPlayer(data.Username)
	c.SetGame(data.GameID)

	if !c.dispatcher.ConnectLobby(data) {
		c.SetGame("")
	}
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(EventTrickError, TrickErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}

	_ = c.SendMessage(errorMsg)
}
