package auth

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// memoryStore is an in-memory CredentialStore for tests.
type memoryStore struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]User
	failID uint64
}

var errStoreDown = errors.New("store down")

func newMemoryStore(users ...User) *memoryStore {
	s := &memoryStore{users: make(map[uint64]User)}

	for _, u := range users {
		s.users[u.ID] = u
		if u.ID > s.nextID {
			s.nextID = u.ID
		}
	}

	return s
}

func (s *memoryStore) FindByID(_ context.Context, id uint64) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failID != 0 && id == s.failID {
		return nil, errStoreDown
	}

	u, ok := s.users[id]
	if !ok {
		return nil, errors.Wrap(ErrNotFound, "user")
	}

	return &u, nil
}

func (s *memoryStore) FindByEmail(_ context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}

	return nil, errors.Wrap(ErrNotFound, "user")
}

func (s *memoryStore) Save(_ context.Context, user *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email && u.ID != user.ID {
			return nil, ErrEmailExists
		}
	}

	saved := *user
	if saved.ID == 0 {
		s.nextID++
		saved.ID = s.nextID
		saved.CreatedAt = time.Now()
	}

	saved.UpdatedAt = time.Now()
	s.users[saved.ID] = saved

	return &saved, nil
}
