package users

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	users map[string]User
	// order keeps usernames in insertion order so List returns users
	// the way they were registered.
	order []string
}

// NewMemoryRepository builds the process-lifetime in-memory user store.
// The mutex keeps the uniqueness invariant intact under concurrent
// registrations.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]User)}
}

func (r *memoryRepository) Create(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return ErrUsernameTaken
	}
	r.users[user.Username] = user
	r.order = append(r.order, user.Username)
	return nil
}

func (r *memoryRepository) Exists(_ context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.users[username]
	return exists, nil
}

func (r *memoryRepository) List(_ context.Context, filter CardFilter) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := make([]User, 0, len(r.order))
	for _, username := range r.order {
		user := r.users[username]
		if filter.Matches(user) {
			matched = append(matched, user)
		}
	}
	return matched, nil
}

func (r *memoryRepository) FindByCardNumber(_ context.Context, cardNumber string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, username := range r.order {
		user := r.users[username]
		if user.CreditCardNumber != nil && *user.CreditCardNumber == cardNumber {
			return user, nil
		}
	}
	return User{}, ErrCardNotRegistered
}
