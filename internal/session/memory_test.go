package session

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	s := Session{
		SessionID: "abc",
		UserID:    7,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := store.Create(ctx, s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := store.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil || got.UserID != 7 {
		t.Fatalf("Get() = %+v, want user id 7", got)
	}
}

func TestMemoryStoreUnknownSessionIsInvalidNotError(t *testing.T) {
	store := NewMemoryStore()

	got, err := store.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Fatalf("Get() = %+v, want nil for unknown session", got)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }

	s := Session{SessionID: "abc", UserID: 1, ExpiresAt: base.Add(time.Minute)}
	if err := store.Create(ctx, s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	store.now = func() time.Time { return base.Add(2 * time.Minute) }

	got, err := store.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Fatalf("Get() = %+v, want nil after expiry", got)
	}
}

func TestMemoryStoreRejectsExpiredCreate(t *testing.T) {
	store := NewMemoryStore()

	s := Session{SessionID: "abc", UserID: 1, ExpiresAt: time.Now().Add(-time.Minute)}
	if err := store.Create(context.Background(), s); err == nil {
		t.Fatal("Create() expected error for past expiry")
	}
}

func TestMemoryStoreDeleteIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	s := Session{SessionID: "abc", UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}
	if err := store.Create(ctx, s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := store.Delete(ctx, "abc"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Delete(ctx, "abc"); err != nil {
		t.Fatalf("second Delete() error = %v", err)
	}
	if err := store.Delete(ctx, "never-existed"); err != nil {
		t.Fatalf("Delete(unknown) error = %v", err)
	}
}

func TestGenerateIDIsOpaqueAndUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := GenerateID()
		if err != nil {
			t.Fatalf("GenerateID() error = %v", err)
		}
		if len(id) != 43 { // 32 bytes, base64url without padding
			t.Fatalf("GenerateID() length = %d, want 43", len(id))
		}
		if seen[id] {
			t.Fatalf("GenerateID() repeated id %q", id)
		}
		seen[id] = true
	}
}
