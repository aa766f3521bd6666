package repository

import (
	"sort"
	"strings"
	"sync"

	"github.com/dfquintero/eventia/internal/model"
)

// UserRepo stores login accounts keyed by id with a unique-email constraint.
type UserRepo struct {
	mu    sync.RWMutex
	users map[string]model.User
}

// NewUserRepo returns an empty user repository.
func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[string]model.User)}
}

// Add stores a new account, rejecting duplicate emails.
func (r *UserRepo) Add(u model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; ok {
		return ErrDuplicateID
	}
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return ErrEmailExists
		}
	}
	r.users[u.ID] = u
	return nil
}

// FindByID returns the account or ErrNotFound.
func (r *UserRepo) FindByID(id string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

// FindByEmail returns the account with the given email, or ErrNotFound.
func (r *UserRepo) FindByEmail(email string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

// Update replaces the stored account.
func (r *UserRepo) Update(u model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

// Remove deletes the account by id.
func (r *UserRepo) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// ListAll returns every account ordered by id.
func (r *UserRepo) ListAll() []model.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ReplaceAll swaps the whole collection when restoring a snapshot.
func (r *UserRepo) ReplaceAll(users []model.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = make(map[string]model.User, len(users))
	for _, u := range users {
		r.users[u.ID] = u
	}
}
