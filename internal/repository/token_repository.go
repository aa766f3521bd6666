package repository

import (
	"sync"
	"time"

	"github.com/dfquintero/eventia/internal/model"
)

// TokenRepo stores refresh tokens keyed by their SHA-256 hash.  Sessions are
// in-memory like every other collection; a restart invalidates them, which is
// acceptable for refresh tokens.
type TokenRepo struct {
	mu     sync.RWMutex
	tokens map[string]model.RefreshToken
}

// NewTokenRepo returns an empty token repository.
func NewTokenRepo() *TokenRepo {
	return &TokenRepo{tokens: make(map[string]model.RefreshToken)}
}

// Store saves a refresh token hash for a user.
func (r *TokenRepo) Store(t model.RefreshToken) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[t.TokenHash] = t
}

// FindActive returns the token for a hash when it exists, is not revoked and
// has not expired.
func (r *TokenRepo) FindActive(hash string, now time.Time) (model.RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tokens[hash]
	if !ok || t.RevokedAt != nil || now.After(t.ExpiresAt) {
		return model.RefreshToken{}, ErrNotFound
	}
	return t, nil
}

// Revoke marks the token for a hash as revoked.  Returns whether a live
// token was revoked.
func (r *TokenRepo) Revoke(hash string, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[hash]
	if !ok || t.RevokedAt != nil {
		return false
	}
	t.RevokedAt = &now
	r.tokens[hash] = t
	return true
}
