package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"invite-quiz-service/internal/domain"

	"github.com/redis/go-redis/v9"
)

// InviteCodesKey holds the whole invite collection as one JSON array.
const InviteCodesKey = "inviteCodes"

// InviteStore keeps the invite collection in a single Redis string with no expiry.
type InviteStore struct {
	client *redis.Client
}

func NewInviteStore(client *redis.Client) *InviteStore {
	return &InviteStore{client: client}
}

func (s *InviteStore) Load(ctx context.Context) ([]domain.InviteCode, error) {
	raw, err := s.client.Get(ctx, InviteCodesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return []domain.InviteCode{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", InviteCodesKey, err)
	}
	var codes []domain.InviteCode
	if err := json.Unmarshal(raw, &codes); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedData, InviteCodesKey, err)
	}
	return codes, nil
}

func (s *InviteStore) Save(ctx context.Context, codes []domain.InviteCode) error {
	if codes == nil {
		codes = []domain.InviteCode{}
	}
	raw, err := json.Marshal(codes)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, InviteCodesKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", InviteCodesKey, err)
	}
	return nil
}
