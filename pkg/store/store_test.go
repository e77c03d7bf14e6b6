package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStore_PutGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	run := Run{ID: "r1", CreatedAt: time.Now(), Score: -42.5, Variables: 3, Edges: 2}
	if err := s.Put(ctx, run); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Score != run.Score || got.Edges != run.Edges {
		t.Errorf("Get() = %+v, want %+v", got, run)
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Get(context.Background(), "absent"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Get(absent) error = %v, want ErrRunNotFound", err)
	}
}

func TestMemoryStore_List(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	base := time.Now()
	for i, id := range []string{"oldest", "middle", "newest"} {
		s.Put(ctx, Run{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)})
	}

	runs, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("List(2) returned %d runs, want 2", len(runs))
	}
	if runs[0].ID != "newest" || runs[1].ID != "middle" {
		t.Errorf("List() order = %s, %s, want newest, middle", runs[0].ID, runs[1].ID)
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List(0) returned %d runs, want 3", len(all))
	}
}
