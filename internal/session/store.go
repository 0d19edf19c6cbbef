package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jask/drogafarm/internal/store"
)

// Keys written to the KV backend.
const (
	KeyUser       = "user"
	KeyRememberMe = "rememberMe"
)

// Store persists the remembered identity and the remember-me flag.
type Store struct {
	kv store.KV
}

func NewStore(kv store.KV) *Store {
	return &Store{kv: kv}
}

func (s *Store) SaveIdentity(ctx context.Context, id Identity) error {
	raw, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	if err := s.kv.Set(ctx, KeyUser, string(raw)); err != nil {
		return fmt.Errorf("save identity: %w", err)
	}
	return nil
}

// LoadIdentity returns nil, nil when nothing is stored.
func (s *Store) LoadIdentity(ctx context.Context) (*Identity, error) {
	raw, ok, err := s.kv.Get(ctx, KeyUser)
	if err != nil {
		return nil, fmt.Errorf("load identity: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var id Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	return &id, nil
}

func (s *Store) SetRememberMe(ctx context.Context, remember bool) error {
	if err := s.kv.Set(ctx, KeyRememberMe, strconv.FormatBool(remember)); err != nil {
		return fmt.Errorf("save remember-me: %w", err)
	}
	return nil
}

// RememberMe is true only when the stored flag is exactly "true".
func (s *Store) RememberMe(ctx context.Context) (bool, error) {
	raw, ok, err := s.kv.Get(ctx, KeyRememberMe)
	if err != nil {
		return false, fmt.Errorf("load remember-me: %w", err)
	}
	return ok && raw == "true", nil
}

// Clear removes the identity and the flag.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Remove(ctx, KeyUser, KeyRememberMe); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
