package catalog

import (
	"errors"
	"fmt"
)

// ErrKeyBound is returned when an insert or alias would rebind a key that
// already points at a different record.
var ErrKeyBound = errors.New("key already bound to a different record")

// record is one logical entry of a MultiKeyMap together with all keys it is
// reachable by.
type record[K comparable, V any] struct {
	keys  []K
	value V
}

// MultiKeyMap is an associative store whose records are reachable by any of
// several independent keys. Lookup by any key yields the same record, and
// removal through one key removes the record under all of them.
type MultiKeyMap[K comparable, V any] struct {
	byKey map[K]*record[K, V]
	count int
}

// NewMultiKeyMap returns an empty map.
func NewMultiKeyMap[K comparable, V any]() *MultiKeyMap[K, V] {
	return &MultiKeyMap[K, V]{byKey: make(map[K]*record[K, V])}
}

// Insert stores value under every key in keys. Keys must be non-empty and
// none of them may already be bound.
func (m *MultiKeyMap[K, V]) Insert(keys []K, value V) error {
	if len(keys) == 0 {
		return fmt.Errorf("insert without keys")
	}
	for _, k := range keys {
		if _, bound := m.byKey[k]; bound {
			return fmt.Errorf("insert %v: %w", k, ErrKeyBound)
		}
	}
	rec := &record[K, V]{keys: append([]K(nil), keys...), value: value}
	for _, k := range keys {
		m.byKey[k] = rec
	}
	m.count++
	return nil
}

// Alias makes extra an additional key of the record currently reachable by
// existing. Aliasing a key to the record it already points at is a no-op.
func (m *MultiKeyMap[K, V]) Alias(existing, extra K) error {
	rec, ok := m.byKey[existing]
	if !ok {
		return fmt.Errorf("alias %v: no record under %v", extra, existing)
	}
	if prev, bound := m.byKey[extra]; bound {
		if prev == rec {
			return nil
		}
		return fmt.Errorf("alias %v: %w", extra, ErrKeyBound)
	}
	rec.keys = append(rec.keys, extra)
	m.byKey[extra] = rec
	return nil
}

// Get returns the record reachable by key.
func (m *MultiKeyMap[K, V]) Get(key K) (V, bool) {
	if rec, ok := m.byKey[key]; ok {
		return rec.value, true
	}
	var zero V
	return zero, false
}

// Contains reports whether key is bound.
func (m *MultiKeyMap[K, V]) Contains(key K) bool {
	_, ok := m.byKey[key]
	return ok
}

// Delete removes the record reachable by key under all of its keys. It
// reports whether a record was removed.
func (m *MultiKeyMap[K, V]) Delete(key K) bool {
	rec, ok := m.byKey[key]
	if !ok {
		return false
	}
	for _, k := range rec.keys {
		delete(m.byKey, k)
	}
	m.count--
	return true
}

// Len returns the number of distinct records.
func (m *MultiKeyMap[K, V]) Len() int { return m.count }

// Values returns every distinct record value. Order is unspecified.
func (m *MultiKeyMap[K, V]) Values() []V {
	seen := make(map[*record[K, V]]struct{}, m.count)
	values := make([]V, 0, m.count)
	for _, rec := range m.byKey {
		if _, dup := seen[rec]; dup {
			continue
		}
		seen[rec] = struct{}{}
		values = append(values, rec.value)
	}
	return values
}
