package server

import (
	"sync"

	"github.com/DaAlbrecht/tichu/internal/tichu"
)

// Store maps game ids to game aggregates. Each entry carries its own
// mutex so independent games are serviced in parallel while all access
// to one game is serialized.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	game *tichu.Game
}

// NewStore constructs an empty store
func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// Put registers a game
func (s *Store) Put(game *tichu.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[game.ID] = &entry{game: game}
}

// With runs fn with the game's mutex held. It returns false when the id
// is unknown. fn must not emit to the network; outbound events are
// collected and sent after the lock is released.
func (s *Store) With(id string, fn func(*tichu.Game)) bool {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.game)
	return true
}

// Delete removes a game from the store
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Len returns the number of stored games
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
