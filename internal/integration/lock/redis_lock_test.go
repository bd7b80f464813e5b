package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return server, client
}

func TestRedisLock_TryAcquire(t *testing.T) {
	server, client := newTestRedis(t)
	ctx := context.Background()

	first := NewRedisLock(client, "test:lock", time.Minute)
	second := NewRedisLock(client, "test:lock", time.Minute)

	release, ok, err := first.TryAcquire(ctx)
	if err != nil || !ok {
		t.Fatalf("expected to acquire the lock, got ok=%v err=%v", ok, err)
	}
	if !server.Exists("test:lock") {
		t.Fatal("expected the lock key to exist")
	}
	if ttl := server.TTL("test:lock"); ttl != time.Minute {
		t.Errorf("expected a TTL of 1m, got %s", ttl)
	}

	if _, ok, err := second.TryAcquire(ctx); err != nil || ok {
		t.Fatalf("expected the second instance to be refused, got ok=%v err=%v", ok, err)
	}

	release()
	if server.Exists("test:lock") {
		t.Error("expected the lock key to be deleted on release")
	}

	release2, ok, err := second.TryAcquire(ctx)
	if err != nil || !ok {
		t.Fatalf("expected the second instance to acquire after release, got ok=%v err=%v", ok, err)
	}
	release2()
}

func TestRedisLock_ReleaseKeepsForeignLock(t *testing.T) {
	server, client := newTestRedis(t)
	ctx := context.Background()

	l := NewRedisLock(client, "test:lock", time.Second)
	release, ok, err := l.TryAcquire(ctx)
	if err != nil || !ok {
		t.Fatalf("expected to acquire the lock, got ok=%v err=%v", ok, err)
	}

	// The lock expires and another instance takes it over.
	server.FastForward(2 * time.Second)
	if err := server.Set("test:lock", "other-owner"); err != nil {
		t.Fatalf("failed to set foreign lock: %v", err)
	}

	release()

	got, err := server.Get("test:lock")
	if err != nil || got != "other-owner" {
		t.Errorf("expected the foreign lock to survive, got %q, %v", got, err)
	}
}

func TestRedisLock_Expires(t *testing.T) {
	server, client := newTestRedis(t)
	ctx := context.Background()

	l := NewRedisLock(client, "test:lock", time.Second)
	if _, ok, _ := l.TryAcquire(ctx); !ok {
		t.Fatal("expected to acquire the lock")
	}

	server.FastForward(2 * time.Second)

	release, ok, err := l.TryAcquire(ctx)
	if err != nil || !ok {
		t.Fatalf("expected to acquire the expired lock, got ok=%v err=%v", ok, err)
	}
	release()
}

func TestRedisLock_ServerDown(t *testing.T) {
	server, client := newTestRedis(t)
	server.Close()

	if _, ok, err := NewRedisLock(client, "test:lock", time.Second).TryAcquire(context.Background()); ok || err == nil {
		t.Errorf("expected an error when redis is unreachable, got ok=%v err=%v", ok, err)
	}
}
