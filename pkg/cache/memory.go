package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

const DefaultMemorySize = 512

type memoryItem struct {
	key     string
	value   []byte
	expires time.Time
	element *list.Element
}

// Memory is an in-process LRU cache with per-entry expiry.
type Memory struct {
	mu      sync.Mutex
	maxSize int
	items   map[string]*memoryItem
	lru     *list.List
	now     func() time.Time
}

var _ Cache = (*Memory)(nil)

func NewMemory(maxSize int) *Memory {
	if maxSize <= 0 {
		maxSize = DefaultMemorySize
	}
	return &Memory{
		maxSize: maxSize,
		items:   make(map[string]*memoryItem),
		lru:     list.New(),
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	if !item.expires.IsZero() && m.now().After(item.expires) {
		m.remove(item)
		return nil, false, nil
	}
	m.lru.MoveToFront(item.element)

	return item.value, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expires time.Time
	if ttl > 0 {
		expires = m.now().Add(ttl)
	}

	if item, ok := m.items[key]; ok {
		item.value = value
		item.expires = expires
		m.lru.MoveToFront(item.element)
		return nil
	}

	item := &memoryItem{key: key, value: value, expires: expires}
	item.element = m.lru.PushFront(item)
	m.items[key] = item

	for len(m.items) > m.maxSize {
		oldest := m.lru.Back()
		if oldest == nil {
			break
		}
		m.remove(oldest.Value.(*memoryItem))
	}

	return nil
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *Memory) Ping(context.Context) error {
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make(map[string]*memoryItem)
	m.lru.Init()

	return nil
}

func (m *Memory) remove(item *memoryItem) {
	delete(m.items, item.key)
	m.lru.Remove(item.element)
}
