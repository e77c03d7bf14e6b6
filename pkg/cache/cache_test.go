package cache

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestFileCache_RoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !hit {
		t.Fatal("Get() = miss, want hit")
	}
	if !bytes.Equal(data, []byte("value")) {
		t.Errorf("Get() = %q, want %q", data, "value")
	}
}

func TestFileCache_Miss(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(context.Background(), "absent"); err != nil || hit {
		t.Errorf("Get(absent) = (hit=%v, err=%v), want miss with nil error", hit, err)
	}
}

func TestFileCache_Expiration(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "key", []byte("value"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get() = hit, want expired miss")
	}
}

func TestFileCache_Delete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	c.Set(ctx, "key", []byte("value"), 0)

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get() after Delete() = hit, want miss")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete(missing key) = %v, want nil", err)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("NullCache Get() = hit, want miss")
	}
}

func TestDefaultKeyer_NetworkKey(t *testing.T) {
	k := NewDefaultKeyer()

	base := k.NetworkKey("hash1", NetworkKeyOpts{Ordering: "identity", Seed: 42})
	if !strings.HasPrefix(base, "network:v1:") {
		t.Errorf("NetworkKey() = %q, want network:v1: prefix", base)
	}

	// Any option change must change the key.
	variants := []NetworkKeyOpts{
		{Ordering: "random", Seed: 42},
		{Ordering: "identity", Seed: 43},
		{Ordering: "identity", Seed: 42, MaxParents: 3},
	}
	for _, opts := range variants {
		if k.NetworkKey("hash1", opts) == base {
			t.Errorf("NetworkKey(%+v) collides with base key", opts)
		}
	}
	if k.NetworkKey("hash2", NetworkKeyOpts{Ordering: "identity", Seed: 42}) == base {
		t.Error("NetworkKey with different dataset hash collides with base key")
	}

	// Determinism.
	if k.NetworkKey("hash1", NetworkKeyOpts{Ordering: "identity", Seed: 42}) != base {
		t.Error("NetworkKey() is not deterministic")
	}
}

func TestHash(t *testing.T) {
	a := Hash([]byte("data"))
	if len(a) != 64 {
		t.Errorf("Hash() length = %d, want 64", len(a))
	}
	if a != Hash([]byte("data")) {
		t.Error("Hash() is not deterministic")
	}
	if a == Hash([]byte("other")) {
		t.Error("Hash() collides for different inputs")
	}
}
