package ai

import (
	"sync"

	"github.com/nzoschke/healthmate/internal/model"
)

// Session holds the chat transcript. It only grows through Append and only
// shrinks through Clear.
type Session struct {
	mu       sync.Mutex
	messages []model.ChatMessage
}

func NewSession() *Session {
	return &Session{}
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// History returns the transcript as gateway turns.
func (s *Session) History() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := make([]Turn, 0, len(s.messages))
	for _, m := range s.messages {
		turns = append(turns, Turn{Role: Role(m.Role), Text: m.Text})
	}
	return turns
}

// Append records one completed exchange.
func (s *Session) Append(user, reply model.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, user, reply)
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}
