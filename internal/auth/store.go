package auth

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type User struct {
	ID    string
	Email string
	Hash  []byte
	Role  string
}

// Store holds admin accounts in memory. The storefront seeds exactly
// one from config at boot; there is no registration surface.
type Store struct {
	mu      sync.RWMutex
	byEmail map[string]User
}

func NewStore() *Store {
	return &Store{byEmail: make(map[string]User)}
}

// Seed creates or replaces the account for email.
func (s *Store) Seed(email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byEmail[email] = User{
		ID:    "u_" + uuid.NewString(),
		Email: email,
		Hash:  hash,
		Role:  "admin",
	}
	return nil
}

func (s *Store) Verify(email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.RLock()
	u, ok := s.byEmail[email]
	s.mu.RUnlock()

	if !ok {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.Hash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}
