package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dmitrymomot/webdemo/core/cache"
)

// Store persists session values as JSON in a cache. Entries expire after the
// idle timeout unless refreshed.
type Store struct {
	cache  cache.Cache
	ttl    time.Duration
	prefix string
}

// NewStore creates a Store writing entries under prefix+id.
func NewStore(c cache.Cache, ttl time.Duration, prefix string) *Store {
	if c == nil {
		panic("session: nil cache")
	}
	return &Store{cache: c, ttl: ttl, prefix: prefix}
}

// Load returns the values stored for id, or ErrNotFound.
func (s *Store) Load(ctx context.Context, id string) (map[string]string, error) {
	data, err := s.cache.Get(ctx, s.prefix+id)
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrLoadSession, err)
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, errors.Join(ErrInvalidData, err)
	}
	return values, nil
}

// Save writes the values for id and resets the idle expiry.
func (s *Store) Save(ctx context.Context, id string, values map[string]string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return errors.Join(ErrSaveSession, err)
	}
	if err := s.cache.Set(ctx, s.prefix+id, data, s.ttl); err != nil {
		return errors.Join(ErrSaveSession, err)
	}
	return nil
}

// Refresh resets the idle expiry of id, returning ErrNotFound if it expired.
func (s *Store) Refresh(ctx context.Context, id string) error {
	if err := s.cache.Refresh(ctx, s.prefix+id, s.ttl); err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return ErrNotFound
		}
		return errors.Join(ErrSaveSession, err)
	}
	return nil
}

// Delete removes id.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, s.prefix+id); err != nil {
		return errors.Join(ErrDeleteSession, err)
	}
	return nil
}
