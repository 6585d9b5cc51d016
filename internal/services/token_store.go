package services

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/david-mangena/e-commerce-site/internal/models"
)

// tokenLength matches the length of tokens issued by the public service
const tokenLength = 15

// TokenStore issues and remembers session tokens. Tokens never expire.
type TokenStore struct {
	mu     sync.RWMutex
	tokens map[models.Token]struct{}
}

// NewTokenStore creates an empty token store
func NewTokenStore() *TokenStore {
	return &TokenStore{tokens: make(map[models.Token]struct{})}
}

// Issue creates and records a new alphanumeric token
func (s *TokenStore) Issue() models.Token {
	token := models.Token(strings.ReplaceAll(uuid.NewString(), "-", "")[:tokenLength])

	s.mu.Lock()
	s.tokens[token] = struct{}{}
	s.mu.Unlock()

	return token
}

// Valid reports whether token was issued by this store
func (s *TokenStore) Valid(token models.Token) bool {
	if token.IsZero() {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tokens[token]
	return ok
}
