package state

import (
	"errors"
	"sync"

	contractx "github.com/goodfoods/concierge/agent/contract"
)

var ErrInvalidSession = errors.New("session id is empty")

// DefaultMaxTurns bounds the conversation window kept in memory per session.
const DefaultMaxTurns = 60

// Conversation is the ordered turn history of one session. It grows
// monotonically within a turn and is truncated oldest-first to the configured
// window; truncation never leaves a tool result at the head without the agent
// turn that requested it.
type Conversation struct {
	mu       sync.Mutex
	turns    []contractx.Turn
	maxTurns int
}

func NewConversation(maxTurns int) *Conversation {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Conversation{maxTurns: maxTurns}
}

func (c *Conversation) Append(turns ...contractx.Turn) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.turns = append(c.turns, turns...)
	c.truncateLocked()
}

// Turns returns a snapshot of the current window.
func (c *Conversation) Turns() []contractx.Turn {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]contractx.Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.turns)
}

// truncateLocked evicts oldest-first down to the window size. An agent turn
// carrying tool calls always precedes its tool results, so after evicting it
// any results left at the head are orphans and are evicted with it.
func (c *Conversation) truncateLocked() {
	if len(c.turns) <= c.maxTurns {
		return
	}

	drop := len(c.turns) - c.maxTurns
	for drop < len(c.turns) && c.turns[drop].Role == contractx.RoleToolResult {
		drop++
	}
	c.turns = c.turns[drop:]
}

// SessionStore hands out per-session conversations backed by memory. Sessions
// are independent; the store only guards the map, each conversation guards
// itself.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Conversation
	maxTurns int
}

func NewSessionStore(maxTurns int) *SessionStore {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &SessionStore{
		sessions: make(map[string]*Conversation, 4),
		maxTurns: maxTurns,
	}
}

func (s *SessionStore) LoadOrCreate(sessionID string) (*Conversation, error) {
	if sessionID == "" {
		return nil, ErrInvalidSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.sessions[sessionID]
	if !ok {
		conv = NewConversation(s.maxTurns)
		s.sessions[sessionID] = conv
	}
	return conv, nil
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
