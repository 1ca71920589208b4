package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newStore(t *testing.T) (*StateStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStateStore(client), mr
}

func TestStateStoreSaveAndConsume(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "abc", 10*time.Minute); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !mr.Exists(StateKey("abc")) {
		t.Fatalf("key %s not written", StateKey("abc"))
	}
	if ttl := mr.TTL(StateKey("abc")); ttl != 10*time.Minute {
		t.Errorf("TTL = %v, want 10m", ttl)
	}

	ok, err := s.Consume(ctx, "abc")
	if err != nil || !ok {
		t.Fatalf("Consume() = %v, %v; want true, nil", ok, err)
	}
	ok, err = s.Consume(ctx, "abc")
	if err != nil || ok {
		t.Errorf("second Consume() = %v, %v; want false, nil", ok, err)
	}
}

func TestStateStoreExpiry(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "old", time.Minute); err != nil {
		t.Fatal(err)
	}
	mr.FastForward(2 * time.Minute)

	if ok, err := s.Consume(ctx, "old"); err != nil || ok {
		t.Errorf("Consume() of expired state = %v, %v; want false, nil", ok, err)
	}
}

func TestStateStoreUnavailable(t *testing.T) {
	s, mr := newStore(t)
	mr.Close()

	if err := s.Save(context.Background(), "x", time.Minute); err == nil {
		t.Error("Save() against a closed server succeeded")
	}
	if err := s.Ping(context.Background()); err == nil {
		t.Error("Ping() against a closed server succeeded")
	}
}
