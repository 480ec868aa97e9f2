// Package memory — in-process реализация ports.CacheStore: LRU с TTL на каждый ключ.
// Для одного инстанса (dev, тесты); между процессами состояние не разделяется.
package memory

import (
	"container/list"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Gunvolt24/logistics/internal/ports"
	"github.com/Gunvolt24/logistics/pkg/metrics"
)

var _ ports.CacheStore = (*Store)(nil)

type entry struct {
	key       string
	payload   []byte
	expiresAt time.Time
}

type Store struct {
	capacity   int
	defaultTTL time.Duration
	now        func() time.Time

	ll    *list.List
	index map[string]*list.Element

	mu sync.Mutex
}

type Option func(*Store)

// WithClock — подмена часов (тесты TTL без sleep).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(capacity int, defaultTTL time.Duration, opts ...Option) *Store {
	if capacity <= 0 {
		capacity = 1
	}
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	s := &Store{
		capacity:   capacity,
		defaultTTL: defaultTTL,
		now:        time.Now,
		ll:         list.New(),
		index:      make(map[string]*list.Element),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(_ context.Context, key string, dst any) bool {
	now := s.now()

	s.mu.Lock()
	elem, ok := s.index[key]
	if !ok {
		s.mu.Unlock()
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return false
	}
	ent := elem.Value.(*entry)
	if ent.expired(now) {
		s.removeElement(elem)
		s.reportSize()
		s.mu.Unlock()
		metrics.CacheOps.WithLabelValues("expired").Inc()
		return false
	}
	s.ll.MoveToFront(elem)
	payload := ent.payload
	s.mu.Unlock()

	// payload неизменяем после записи: декодируем вне блокировки
	if err := json.Unmarshal(payload, dst); err != nil {
		metrics.CacheOps.WithLabelValues("error").Inc()
		return false
	}
	metrics.CacheOps.WithLabelValues("hit").Inc()
	return true
}

func (s *Store) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.index[key]; ok {
		ent := elem.Value.(*entry)
		ent.payload = payload
		ent.expiresAt = now.Add(ttl)
		s.ll.MoveToFront(elem)
		metrics.CacheOps.WithLabelValues("set").Inc()
		return nil
	}

	elem := s.ll.PushFront(&entry{key: key, payload: payload, expiresAt: now.Add(ttl)})
	s.index[key] = elem
	metrics.CacheOps.WithLabelValues("set").Inc()

	if s.ll.Len() > s.capacity {
		s.evict(now)
	}
	s.reportSize()
	return nil
}

func (s *Store) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		if elem, ok := s.index[key]; ok {
			s.removeElement(elem)
			metrics.CacheOps.WithLabelValues("delete").Inc()
		}
	}
	s.reportSize()
	return nil
}

// DeleteMatching — glob-шаблон в семантике Redis MATCH ('*' совпадает и с '/').
func (s *Store) DeleteMatching(_ context.Context, pattern string) (int, error) {
	glob, err := compileGlob(pattern)
	if err != nil {
		return 0, fmt.Errorf("bad pattern: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for key, elem := range s.index {
		if glob.Match(key) {
			s.removeElement(elem)
			deleted++
		}
	}
	metrics.CacheOps.WithLabelValues("delete").Add(float64(deleted))
	s.reportSize()
	return deleted, nil
}

func (s *Store) Ping(context.Context) error { return nil }

// Len — число записей, включая ещё не вычищенные истёкшие.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ll.Len()
}
