// Package assemble provides the relational machinery shared by every
// entity parser: keyed entity maps, deferred sequence-ordered child
// buffers, and compound field-identifier resolution.
package assemble

import "fmt"

// DuplicatePolicy decides what a second base record under an existing
// key means.
type DuplicatePolicy int

const (
	// FailOnDuplicate treats a re-inserted key as corrupt input.
	FailOnDuplicate DuplicatePolicy = iota
	// Overwrite replaces the entity — for idempotent re-parses.
	Overwrite
)

// UnknownParentError reports a dependent record whose derived key has
// no base entity. Fatal to the pass: authoritative data must not be
// partially ingested.
type UnknownParentError struct {
	Key       string
	ChildKind string
}

func (e *UnknownParentError) Error() string {
	return fmt.Sprintf("%s record references unknown parent %q", e.ChildKind, e.Key)
}

// DuplicateKeyError reports a second base record under FailOnDuplicate.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate base record for key %q", e.Key)
}

// EntityMap owns every entity of one kind for the duration of one
// parsing pass. Exactly one entity instance exists per key; values are
// handed out by reference and mutated in place by dependent-record
// handlers. Insertion order is preserved for deterministic emission.
type EntityMap[K comparable, E any] struct {
	policy   DuplicatePolicy
	entities map[K]*E
	order    []K
}

// NewEntityMap creates an empty map with the given duplicate policy.
func NewEntityMap[K comparable, E any](policy DuplicatePolicy) *EntityMap[K, E] {
	return &EntityMap[K, E]{policy: policy, entities: make(map[K]*E)}
}

// Create inserts a base-record entity under key.
func (m *EntityMap[K, E]) Create(key K, e *E) error {
	if _, exists := m.entities[key]; exists {
		if m.policy == FailOnDuplicate {
			return &DuplicateKeyError{Key: fmt.Sprint(key)}
		}
		m.entities[key] = e
		return nil
	}
	m.entities[key] = e
	m.order = append(m.order, key)
	return nil
}

// Get returns the entity for key, if present.
func (m *EntityMap[K, E]) Get(key K) (*E, bool) {
	e, ok := m.entities[key]
	return e, ok
}

// Require returns the entity for key or an UnknownParentError naming
// the dependent record kind that needed it.
func (m *EntityMap[K, E]) Require(key K, childKind string) (*E, error) {
	e, ok := m.entities[key]
	if !ok {
		return nil, &UnknownParentError{Key: fmt.Sprint(key), ChildKind: childKind}
	}
	return e, nil
}

// Len returns the number of entities.
func (m *EntityMap[K, E]) Len() int { return len(m.entities) }

// Values returns every entity in insertion order.
func (m *EntityMap[K, E]) Values() []*E {
	out := make([]*E, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, m.entities[k])
	}
	return out
}

// Each visits every (key, entity) pair in insertion order.
func (m *EntityMap[K, E]) Each(fn func(key K, e *E)) {
	for _, k := range m.order {
		fn(k, m.entities[k])
	}
}
