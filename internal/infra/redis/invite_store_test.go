package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"invite-quiz-service/internal/domain"
)

func TestInviteStoreRoundTrip(t *testing.T) {
	mr := startMiniredis(t)
	store := NewInviteStore(newClient(mr))

	codes, err := store.Load(context.Background())
	if err != nil || len(codes) != 0 {
		t.Fatalf("expected empty collection on missing key, got %v %v", codes, err)
	}

	created := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	in := []domain.InviteCode{{ID: "1", Code: "ABC123", CreatedAt: created}}
	if err := store.Save(context.Background(), in); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists(InviteCodesKey) {
		t.Fatalf("expected %s key to be set", InviteCodesKey)
	}
	if ttl := mr.TTL(InviteCodesKey); ttl != 0 {
		t.Fatalf("expected no expiry, got %v", ttl)
	}

	out, err := store.Load(context.Background())
	if err != nil || len(out) != 1 || out[0].Code != "ABC123" || !out[0].CreatedAt.Equal(created) {
		t.Fatalf("unexpected load %+v %v", out, err)
	}
}

func TestInviteStoreMalformed(t *testing.T) {
	mr := startMiniredis(t)
	if err := mr.Set(InviteCodesKey, "not-json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_, err := NewInviteStore(newClient(mr)).Load(context.Background())
	if !errors.Is(err, domain.ErrMalformedData) {
		t.Fatalf("expected malformed data, got %v", err)
	}
}

func TestInviteStoreUnavailable(t *testing.T) {
	mr := startMiniredis(t)
	client := newClient(mr)
	mr.Close()

	_, err := NewInviteStore(client).Load(context.Background())
	if err == nil || errors.Is(err, domain.ErrMalformedData) {
		t.Fatalf("expected connection error, got %v", err)
	}
}
