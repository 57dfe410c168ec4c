package session

import (
	"maps"
	"slices"
	"strconv"
)

// Session holds per-client state for the duration of one request.
// A Session must not be shared between goroutines.
type Session struct {
	id       string
	values   map[string]string
	isNew    bool
	modified bool
	tempData *TempData
}

func newSession(id string, values map[string]string, isNew bool) *Session {
	if values == nil {
		values = make(map[string]string)
	}
	return &Session{id: id, values: values, isNew: isNew}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// IsNew reports whether the session was created during this request.
func (s *Session) IsNew() bool { return s.isNew }

// IsModified reports whether the session values changed during this request.
func (s *Session) IsModified() bool { return s.modified }

// Get returns the value stored under key.
func (s *Session) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key.
func (s *Session) Set(key, value string) {
	if old, ok := s.values[key]; ok && old == value {
		return
	}
	s.values[key] = value
	s.modified = true
}

// GetInt returns the integer stored under key.
func (s *Session) GetInt(key string) (int, bool) {
	v, ok := s.values[key]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetInt stores an integer under key.
func (s *Session) SetInt(key string, value int) {
	s.Set(key, strconv.Itoa(value))
}

// Remove deletes key.
func (s *Session) Remove(key string) {
	if _, ok := s.values[key]; ok {
		delete(s.values, key)
		s.modified = true
	}
}

// Clear removes every value.
func (s *Session) Clear() {
	if len(s.values) > 0 {
		clear(s.values)
		s.modified = true
	}
}

// Keys returns the stored keys, sorted.
func (s *Session) Keys() []string {
	return slices.Sorted(maps.Keys(s.values))
}

// Len returns the number of stored values.
func (s *Session) Len() int { return len(s.values) }

// TempData returns the session's TempData, loading it on first use.
func (s *Session) TempData() *TempData {
	if s.tempData == nil {
		s.tempData = loadTempData(s)
	}
	return s.tempData
}

// snapshot returns the values to persist, with TempData flushed.
func (s *Session) snapshot() map[string]string {
	if s.tempData != nil {
		s.tempData.flush()
	}
	return maps.Clone(s.values)
}
