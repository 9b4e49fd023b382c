package session

import (
	"context"
	"sync"
)

// MemoryStore is the in-process Repository used by tests and local runs
// without Redis.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
	profiles map[string]Profile
}

var _ Repository = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]map[string]string),
		profiles: make(map[string]Profile),
	}
}

func (s *MemoryStore) fields(sid string) map[string]string {
	f, ok := s.sessions[sid]
	if !ok {
		f = make(map[string]string)
		s.sessions[sid] = f
	}
	return f
}

func (s *MemoryStore) Token(_ context.Context, sid, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sid][key], nil
}

func (s *MemoryStore) SetToken(_ context.Context, sid, key, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields(sid)[key] = token
	return nil
}

func (s *MemoryStore) DeleteToken(_ context.Context, sid, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions[sid], key)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	delete(s.profiles, sid)
	return nil
}

func (s *MemoryStore) Impersonating(_ context.Context, sid string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sid][superAdminMarkerKey] == "true", nil
}

func (s *MemoryStore) SetImpersonating(_ context.Context, sid string, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if on {
		s.fields(sid)[superAdminMarkerKey] = "true"
	} else {
		delete(s.sessions[sid], superAdminMarkerKey)
	}
	return nil
}

func (s *MemoryStore) Profile(_ context.Context, sid string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[sid]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *MemoryStore) SetProfile(_ context.Context, sid string, p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[sid] = p
	return nil
}
