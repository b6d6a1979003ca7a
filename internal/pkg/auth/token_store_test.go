package auth

import (
	"errors"
	"testing"
	"time"
)

type memStorage struct {
	data map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{data: make(map[string][]byte)}
}

func (m *memStorage) Get(key string) ([]byte, error) {
	return m.data[key], nil
}

func (m *memStorage) Set(key string, val []byte, _ time.Duration) error {
	m.data[key] = val
	return nil
}

func (m *memStorage) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func TestIssueAndLookup(t *testing.T) {
	ts := NewTokenStore(newMemStorage(), time.Hour)

	token, err := ts.Issue(Identity{UserID: 7, Email: "a@example.com", Name: "Ana"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a non-empty token")
	}

	id, err := ts.Lookup(token)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if id.UserID != 7 || id.Email != "a@example.com" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestLookupUnknownToken(t *testing.T) {
	ts := NewTokenStore(newMemStorage(), time.Hour)

	if _, err := ts.Lookup("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := ts.Lookup(""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for empty token, got %v", err)
	}
}

func TestRevoke(t *testing.T) {
	ts := NewTokenStore(newMemStorage(), time.Hour)

	token, err := ts.Issue(Identity{UserID: 7, Email: "a@example.com"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if err := ts.Revoke(token); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if _, err := ts.Lookup(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected revoked token to be invalid, got %v", err)
	}
}

func TestTokensAreStoredHashed(t *testing.T) {
	storage := newMemStorage()
	ts := NewTokenStore(storage, time.Hour)

	token, err := ts.Issue(Identity{UserID: 7, Email: "a@example.com"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	for key := range storage.data {
		if key == "tok:"+token {
			t.Fatalf("raw token used as storage key")
		}
	}
}
