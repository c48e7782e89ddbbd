package memory

import (
	"context"
	"testing"

	"invite-quiz-service/internal/domain"
)

func TestInviteStoreRoundTrip(t *testing.T) {
	store := NewInviteStore()
	codes, err := store.Load(context.Background())
	if err != nil || len(codes) != 0 {
		t.Fatalf("expected empty collection, got %v %v", codes, err)
	}

	in := []domain.InviteCode{{ID: "1", Code: "ABC123"}}
	if err := store.Save(context.Background(), in); err != nil {
		t.Fatalf("save: %v", err)
	}
	in[0].Used = true

	out, _ := store.Load(context.Background())
	if len(out) != 1 || out[0].Used {
		t.Fatalf("expected stored copy unaffected by caller mutation, got %+v", out)
	}
	if store.Saves() != 1 {
		t.Fatalf("expected 1 save, got %d", store.Saves())
	}
}
