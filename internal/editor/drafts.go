package editor

import (
	"container/list"
	"context"
	"errors"
	"sync"

	"github.com/gsarma/algodojo/internal/judge"
)

// ErrDraftNotFound is returned when no draft is stored under a key.
var ErrDraftNotFound = errors.New("draft not found")

// DefaultDraftCapacity bounds a draft store when no capacity is given.
const DefaultDraftCapacity = 200

// DraftKey is the storage key for the draft of (slug, lang).
func DraftKey(slug string, lang judge.Language) string {
	return "code:" + slug + ":" + string(lang)
}

// DraftStore persists drafts by key. Implementations evict the least
// recently used draft once they hold more than their capacity.
type DraftStore interface {
	Load(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, source string) error
}

type draftEntry struct {
	key    string
	source string
}

// MemoryDrafts is an in-process LRU DraftStore.
type MemoryDrafts struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element
}

// NewMemoryDrafts creates a store holding at most capacity drafts.
func NewMemoryDrafts(capacity int) *MemoryDrafts {
	if capacity <= 0 {
		capacity = DefaultDraftCapacity
	}
	return &MemoryDrafts{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element),
	}
}

func (m *MemoryDrafts) Load(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		return "", ErrDraftNotFound
	}
	m.ll.MoveToFront(elem)
	return elem.Value.(*draftEntry).source, nil
}

func (m *MemoryDrafts) Save(_ context.Context, key, source string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, ok := m.items[key]; ok {
		elem.Value.(*draftEntry).source = source
		m.ll.MoveToFront(elem)
		return nil
	}
	m.items[key] = m.ll.PushFront(&draftEntry{key: key, source: source})
	for m.ll.Len() > m.capacity {
		oldest := m.ll.Back()
		m.ll.Remove(oldest)
		delete(m.items, oldest.Value.(*draftEntry).key)
	}
	return nil
}

// Len reports how many drafts are stored.
func (m *MemoryDrafts) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ll.Len()
}
