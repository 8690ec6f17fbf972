package bot

import "sync"

const actionAwaitCredentials = "await_credentials"

// ChatState is a multi-step conversation in progress.
type ChatState struct {
	Action string
}

// ChatStates tracks in-flight conversations by chat.
type ChatStates struct {
	mu     sync.Mutex
	states map[int64]*ChatState
}

func NewChatStates() *ChatStates {
	return &ChatStates{states: make(map[int64]*ChatState)}
}

func (s *ChatStates) GetState(chatID int64) (*ChatState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[chatID]
	return state, ok
}

func (s *ChatStates) SetState(chatID int64, state *ChatState) {
	s.mu.Lock()
	s.states[chatID] = state
	s.mu.Unlock()
}

func (s *ChatStates) DeleteState(chatID int64) {
	s.mu.Lock()
	delete(s.states, chatID)
	s.mu.Unlock()
}
