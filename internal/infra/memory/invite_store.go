package memory

import (
	"context"
	"sync"

	"invite-quiz-service/internal/domain"
)

// InviteStore keeps the invite collection in process memory.
type InviteStore struct {
	mu    sync.Mutex
	codes []domain.InviteCode
	saves int
}

func NewInviteStore(seed ...domain.InviteCode) *InviteStore {
	return &InviteStore{codes: append([]domain.InviteCode(nil), seed...)}
}

func (s *InviteStore) Load(_ context.Context) ([]domain.InviteCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.InviteCode{}, s.codes...), nil
}

func (s *InviteStore) Save(_ context.Context, codes []domain.InviteCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes = append([]domain.InviteCode{}, codes...)
	s.saves++
	return nil
}

// Saves reports how many times the collection was written.
func (s *InviteStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
