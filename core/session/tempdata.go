package session

import (
	"encoding/json"
	"maps"
	"slices"
)

// tempDataKey is the session key holding TempData.
const tempDataKey = "__tempdata"

// TempData holds values that survive until they are read. A value read with
// Get is removed when the session is committed unless Keep is called for it;
// Peek reads without marking.
type TempData struct {
	sess     *Session
	values   map[string]string
	read     map[string]bool
	modified bool
}

func loadTempData(s *Session) *TempData {
	td := &TempData{
		sess:   s,
		values: make(map[string]string),
		read:   make(map[string]bool),
	}
	if raw, ok := s.Get(tempDataKey); ok {
		// Corrupted TempData is dropped rather than failing the request.
		_ = json.Unmarshal([]byte(raw), &td.values)
	}
	return td
}

// Get returns the value and marks it for removal.
func (t *TempData) Get(key string) (string, bool) {
	v, ok := t.values[key]
	if ok {
		t.read[key] = true
	}
	return v, ok
}

// Peek returns the value without marking it for removal.
func (t *TempData) Peek(key string) (string, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Set stores a value for a later request.
func (t *TempData) Set(key, value string) {
	t.values[key] = value
	delete(t.read, key)
	t.modified = true
}

// Keep retains the given keys, or all keys when none are given.
func (t *TempData) Keep(keys ...string) {
	if len(keys) == 0 {
		clear(t.read)
		return
	}
	for _, k := range keys {
		delete(t.read, k)
	}
}

// Remove deletes a value immediately.
func (t *TempData) Remove(key string) {
	if _, ok := t.values[key]; ok {
		delete(t.values, key)
		delete(t.read, key)
		t.modified = true
	}
}

// Keys returns the keys currently held, sorted.
func (t *TempData) Keys() []string {
	return slices.Sorted(maps.Keys(t.values))
}

// flush drops read values and writes the rest back into the session.
func (t *TempData) flush() {
	for k := range t.read {
		delete(t.values, k)
		t.modified = true
	}
	clear(t.read)

	if !t.modified {
		return
	}
	t.modified = false

	if len(t.values) == 0 {
		t.sess.Remove(tempDataKey)
		return
	}

	data, err := json.Marshal(t.values)
	if err != nil {
		return
	}
	t.sess.Set(tempDataKey, string(data))
}
