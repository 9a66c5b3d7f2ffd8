package credentials

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is the in process CredentialStore. Reads share a lock, the
// check-and-insert in CreateIfAbsent happens under a single write lock so
// concurrent signups for the same username cannot both win.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*User
}

var _ CredentialStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]*User),
	}
}

func (s *MemoryStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, ErrIdentityNotFound
	}

	return cloneUser(user), nil
}

func (s *MemoryStore) CreateIfAbsent(ctx context.Context, user *User) (*User, error) {
	if user == nil || user.Username == "" {
		return nil, ErrNoEmptyString
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Username]; ok {
		return nil, ErrUserAlreadyExists
	}

	record := *user
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	now := time.Now()
	if record.CreatedAt == nil {
		record.CreatedAt = &now
	}
	if record.UpdatedAt == nil {
		record.UpdatedAt = &now
	}

	s.users[record.Username] = &record

	return cloneUser(&record), nil
}

// cloneUser copies the record including its timestamp pointers, so callers
// cannot mutate stored state through the returned value.
func cloneUser(u *User) *User {
	clone := *u
	if u.CreatedAt != nil {
		ts := *u.CreatedAt
		clone.CreatedAt = &ts
	}
	if u.UpdatedAt != nil {
		ts := *u.UpdatedAt
		clone.UpdatedAt = &ts
	}
	return &clone
}

// Len reports how many records the store holds
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
