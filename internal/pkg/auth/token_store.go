package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/storage/redis"

	"github.com/cristophermlima/pierce-connect/internal/pkg/env"
)

// Identity is the payload behind a bearer token: the minimum a handler needs
// to act on behalf of a user.
type Identity struct {
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

// ErrInvalidToken is returned for unknown, malformed or expired tokens.
var ErrInvalidToken = errors.New("auth: invalid or expired token")

// Storage is the key-value surface the token store needs.
// *redis.Storage satisfies it; tests plug in an in-memory map.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
	Delete(key string) error
}

// TokenStore issues and resolves opaque bearer tokens. Only the SHA-256 hash
// of a token is used as storage key, so a dump of the store never exposes
// usable credentials.
type TokenStore struct {
	storage Storage
	ttl     time.Duration
}

func NewTokenStore(storage Storage, ttl time.Duration) *TokenStore {
	return &TokenStore{storage: storage, ttl: ttl}
}

var tokenStore *TokenStore

// SetupTokenStore initializes the shared token store on Redis database 1
// (the cache uses database 0).
func SetupTokenStore() *TokenStore {
	port := 6379
	if p, err := strconv.Atoi(env.GetEnv("CACHE_PORT", "6379")); err == nil {
		port = p
	}
	storage := redis.New(redis.Config{
		Host:     env.GetEnv("CACHE_HOST", "localhost"),
		Port:     port,
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		Database: 1,
		Reset:    false,
	})

	tokenStore = NewTokenStore(storage, 24*time.Hour)
	return tokenStore
}

// GetTokenStore returns the shared token store.
func GetTokenStore() *TokenStore {
	return tokenStore
}

// SetTokenStore overrides the shared store; used by tests.
func SetTokenStore(ts *TokenStore) {
	tokenStore = ts
}

// Issue creates a new opaque token for the identity and stores it with TTL.
func (ts *TokenStore) Issue(id Identity) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := base64.RawURLEncoding.EncodeToString(b)

	payload, err := json.Marshal(id)
	if err != nil {
		return "", err
	}
	if err := ts.storage.Set(tokenKey(token), payload, ts.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Lookup resolves a bearer token to its identity.
func (ts *TokenStore) Lookup(token string) (*Identity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	raw, err := ts.storage.Get(tokenKey(token))
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrInvalidToken
	}
	var id Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		return nil, ErrInvalidToken
	}
	if id.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return &id, nil
}

// Revoke invalidates a token immediately.
func (ts *TokenStore) Revoke(token string) error {
	if token == "" {
		return nil
	}
	return ts.storage.Delete(tokenKey(token))
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "tok:" + hex.EncodeToString(sum[:])
}
