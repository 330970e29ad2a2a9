package user

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is the default Store: a mutex-guarded map with a
// monotonic id counter. Id allocation and insertion happen under one
// lock, so concurrent creates can neither share an id nor race a
// duplicate federated identity into the map.
type MemoryStore struct {
	mu         sync.Mutex
	nextID     int64
	byID       map[int64]User
	byUsername map[string]int64
	byIdentity map[string]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:     1,
		byID:       make(map[int64]User),
		byUsername: make(map[string]int64),
		byIdentity: make(map[string]int64),
	}
}

func identityKey(provider, providerUserID string) string {
	return provider + "\x00" + providerUserID
}

func usernameKey(username string) string {
	return strings.ToLower(username)
}

func (s *MemoryStore) FindByUsername(ctx context.Context, username string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byUsername[usernameKey(username)]
	if !ok {
		return User{}, ErrNotFound
	}
	return s.byID[id], nil
}

func (s *MemoryStore) FindByID(ctx context.Context, id int64) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (s *MemoryStore) FindByFederatedID(ctx context.Context, provider, providerUserID string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byIdentity[identityKey(provider, providerUserID)]
	if !ok {
		return User{}, ErrNotFound
	}
	return s.byID[id], nil
}

func (s *MemoryStore) Create(ctx context.Context, u User) (User, error) {
	if err := validate(u); err != nil {
		return User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[usernameKey(u.Username)]; exists {
		return User{}, ErrUsernameTaken
	}
	if u.Federated() {
		if _, exists := s.byIdentity[identityKey(u.Provider, u.ProviderUserID)]; exists {
			return User{}, ErrDuplicateIdentity
		}
	}

	u.ID = s.nextID
	s.nextID++

	s.byID[u.ID] = u
	s.byUsername[usernameKey(u.Username)] = u.ID
	if u.Federated() {
		s.byIdentity[identityKey(u.Provider, u.ProviderUserID)] = u.ID
	}

	return u, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return nil
	}

	delete(s.byID, id)
	delete(s.byUsername, usernameKey(u.Username))
	if u.Federated() {
		delete(s.byIdentity, identityKey(u.Provider, u.ProviderUserID))
	}
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]User, 0, len(s.byID))
	for _, u := range s.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
