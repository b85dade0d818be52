package profile

// OrderedMap is a string-keyed map that remembers insertion order. Profile
// serialization round-trips element and child declarations in the order the
// author wrote them, so plain Go maps are not enough here.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// NewOrderedMap returns an empty ordered map.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{values: make(map[string]V)}
}

// Set stores a value, appending the key when it is new.
func (m *OrderedMap[V]) Set(key string, value V) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get looks a value up by key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	value, ok := m.values[key]
	return value, ok
}

// Has reports whether the key is present.
func (m *OrderedMap[V]) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Delete removes a key and its value, preserving the order of the rest.
func (m *OrderedMap[V]) Delete(key string) {
	if _, exists := m.values[key]; !exists {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *OrderedMap[V]) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	return len(m.keys)
}

// MoveToFront reorders an existing key to the first position.
func (m *OrderedMap[V]) MoveToFront(key string) {
	if _, exists := m.values[key]; !exists {
		return
	}
	for i, k := range m.keys {
		if k == key {
			copy(m.keys[1:i+1], m.keys[:i])
			m.keys[0] = key
			break
		}
	}
}
