package file

import (
	"context"
	"encoding/json"
	"fmt"

	"invite-quiz-service/internal/domain"
)

// InviteCodesKey is the single entry holding the serialized invite collection.
const InviteCodesKey = "inviteCodes"

// InviteStore persists the invite collection under InviteCodesKey.
type InviteStore struct {
	store *Store
}

func NewInviteStore(store *Store) *InviteStore {
	return &InviteStore{store: store}
}

func (s *InviteStore) Load(_ context.Context) ([]domain.InviteCode, error) {
	raw, ok, err := s.store.Get(InviteCodesKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.InviteCode{}, nil
	}
	var codes []domain.InviteCode
	if err := json.Unmarshal(raw, &codes); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedData, InviteCodesKey, err)
	}
	return codes, nil
}

func (s *InviteStore) Save(_ context.Context, codes []domain.InviteCode) error {
	if codes == nil {
		codes = []domain.InviteCode{}
	}
	raw, err := json.Marshal(codes)
	if err != nil {
		return err
	}
	return s.store.Set(InviteCodesKey, raw)
}
