package service

import (
	"errors"
	"log"
	"sync"

	"go-pharmacy-pos/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// SessionStore owns the set of live session IDs. Tokens are JWTs, but
// a logout must actually revoke, so validity is checked here rather
// than by expiry alone.
type SessionStore struct {
	mu     sync.Mutex
	active map[string]bool
}

func NewSessionStore() *SessionStore {
	return &SessionStore{active: make(map[string]bool)}
}

func (s *SessionStore) Add(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[id] = true
}

func (s *SessionStore) Revoke(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, id)
}

func (s *SessionStore) Active(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active[id]
}

type AuthService interface {
	Login(username, password string) (string, error)
	Logout(token string)
	Validate(token string) (string, error)
}

type authService struct {
	username     string
	passwordHash []byte
	sessions     *SessionStore
}

// NewAuthService holds the single configured terminal credential. The
// password is bcrypt-hashed at startup so the plaintext never sits
// around in memory longer than necessary.
func NewAuthService(username, password string, sessions *SessionStore) AuthService {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash configured password: ", err)
	}
	return &authService{
		username:     username,
		passwordHash: hash,
		sessions:     sessions,
	}
}

func (s *authService) Login(username, password string) (string, error) {
	if username != s.username {
		return "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	sessionID := uuid.New().String()
	token, err := jwt.GenerateToken(username, sessionID)
	if err != nil {
		return "", errors.New("failed to generate token")
	}
	s.sessions.Add(sessionID)
	return token, nil
}

func (s *authService) Logout(token string) {
	claims, err := jwt.ValidateToken(token)
	if err != nil {
		return
	}
	s.sessions.Revoke(claims.SessionID)
}

// Validate returns the username for a live session token.
func (s *authService) Validate(token string) (string, error) {
	claims, err := jwt.ValidateToken(token)
	if err != nil {
		return "", err
	}
	if !s.sessions.Active(claims.SessionID) {
		return "", jwt.ErrInvalidToken
	}
	return claims.Username, nil
}
