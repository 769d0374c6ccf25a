package session

import (
	"context"
	"sync"
	"time"

	"github.com/maanvikp20/promosite/internal/metrics"
)

// MemoryStore holds sessions in process memory. Sessions do not survive a
// restart.
type MemoryStore struct {
	ttl      time.Duration
	now      func() time.Time
	mu       sync.Mutex
	sessions map[string]Data
	stop     chan struct{}
	once     sync.Once
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: map[string]Data{},
		stop:     make(chan struct{}),
	}
}

func (s *MemoryStore) Create(ctx context.Context, data Data) (string, error) {
	id, err := newID()
	if err != nil {
		return "", err
	}
	now := s.now()
	data.CreatedAt = now
	data.ExpiresAt = now.Add(s.ttl)

	s.mu.Lock()
	s.sessions[id] = data
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()
	return id, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !s.now().Before(data.ExpiresAt) {
		delete(s.sessions, id)
		metrics.ActiveSessions.Set(float64(len(s.sessions)))
		return nil, ErrNotFound
	}
	return &data, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()
	return nil
}

// Len returns the number of sessions held, expired ones included until the
// next sweep.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops every expired session.
func (s *MemoryStore) Sweep() {
	now := s.now()
	s.mu.Lock()
	for id, data := range s.sessions {
		if !now.Before(data.ExpiresAt) {
			delete(s.sessions, id)
		}
	}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()
}

// StartSweeper sweeps on every tick until Close is called.
func (s *MemoryStore) StartSweeper(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.stop) })
	return nil
}
