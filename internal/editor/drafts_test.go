package editor_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/gsarma/algodojo/internal/editor"
	"github.com/gsarma/algodojo/internal/judge"
)

func newRedisDrafts(t *testing.T, capacity int) (*editor.RedisDrafts, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return editor.NewRedisDrafts(client, capacity), mr
}

func TestDraftKey(t *testing.T) {
	if got := editor.DraftKey("two-sum", judge.Cpp); got != "code:two-sum:cpp" {
		t.Errorf("unexpected key %q", got)
	}
}

func TestDraftStores_RoundTrip(t *testing.T) {
	rd, _ := newRedisDrafts(t, 0)
	stores := map[string]editor.DraftStore{
		"memory": editor.NewMemoryDrafts(0),
		"redis":  rd.ForUser("u1"),
	}
	ctx := context.Background()
	for name, store := range stores {
		for _, slug := range []string{"two-sum", "lru-cache"} {
			for _, lang := range judge.Languages {
				key := editor.DraftKey(slug, lang)
				src := fmt.Sprintf("%s/%s\n  body", slug, lang)
				if err := store.Save(ctx, key, src); err != nil {
					t.Fatalf("%s save: %v", name, err)
				}
				got, err := store.Load(ctx, key)
				if err != nil {
					t.Fatalf("%s load: %v", name, err)
				}
				if got != src {
					t.Errorf("%s: expected %q, got %q", name, src, got)
				}
			}
		}
		if _, err := store.Load(ctx, "code:missing:python"); !errors.Is(err, editor.ErrDraftNotFound) {
			t.Errorf("%s: expected ErrDraftNotFound, got %v", name, err)
		}
	}
}

func TestMemoryDrafts_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	m := editor.NewMemoryDrafts(2)
	m.Save(ctx, "a", "1")
	m.Save(ctx, "b", "2")
	m.Load(ctx, "a")
	m.Save(ctx, "c", "3")

	if m.Len() != 2 {
		t.Fatalf("expected 2 drafts, got %d", m.Len())
	}
	if _, err := m.Load(ctx, "b"); !errors.Is(err, editor.ErrDraftNotFound) {
		t.Error("b should have been evicted")
	}
	if got, _ := m.Load(ctx, "a"); got != "1" {
		t.Errorf("a should survive, got %q", got)
	}
}

func TestRedisDrafts_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	rd, mr := newRedisDrafts(t, 2)
	u := rd.ForUser("u1")
	u.Save(ctx, "a", "1")
	u.Save(ctx, "b", "2")
	u.Load(ctx, "a")
	u.Save(ctx, "c", "3")

	if _, err := u.Load(ctx, "b"); !errors.Is(err, editor.ErrDraftNotFound) {
		t.Error("b should have been evicted")
	}
	if got, _ := u.Load(ctx, "a"); got != "1" {
		t.Errorf("a should survive, got %q", got)
	}
	if mr.Exists("drafts:u1:b") {
		t.Error("evicted draft key should be deleted")
	}
	members, err := mr.ZMembers("drafts:u1:index")
	if err != nil || len(members) != 2 {
		t.Errorf("expected 2 index members, got %v (%v)", members, err)
	}
}

func TestRedisDrafts_UsersAreIsolated(t *testing.T) {
	ctx := context.Background()
	rd, _ := newRedisDrafts(t, 1)
	rd.ForUser("u1").Save(ctx, "a", "mine")
	rd.ForUser("u2").Save(ctx, "b", "theirs")

	if got, err := rd.ForUser("u1").Load(ctx, "a"); err != nil || got != "mine" {
		t.Errorf("u1 draft lost: %q %v", got, err)
	}
	if _, err := rd.ForUser("u2").Load(ctx, "a"); !errors.Is(err, editor.ErrDraftNotFound) {
		t.Error("u2 must not see u1 drafts")
	}
}
