package assemble

import (
	"fmt"
	"strings"
)

// ─────────────────────────────────────────────────────────────
// Compound field-identifier resolution
// Remark records carry an element identifier that routes the remark
// to the entity itself, a named sub-object (e.g. a runway), or a
// nested sub-object (e.g. one runway end). One exhaustive parse
// produces a closed variant; precedence is fixed — entity-level
// element IDs win before a sub-object prefix is assumed.
// ─────────────────────────────────────────────────────────────

// FieldTarget is the closed set of remark routing targets.
type FieldTarget interface{ fieldTarget() }

// EntityField routes to a field of the entity itself.
type EntityField struct {
	Field string
}

// SubObjectField routes to a field of a named sub-object.
type SubObjectField struct {
	Sub   string
	Field string
}

// NestedSubObjectField routes to a field of a doubly-nested sub-object.
type NestedSubObjectField struct {
	Sub    string
	Nested string
	Field  string
}

func (EntityField) fieldTarget()          {}
func (SubObjectField) fieldTarget()       {}
func (NestedSubObjectField) fieldTarget() {}

// UnknownFieldIDError reports an identifier matching no known target.
type UnknownFieldIDError struct {
	ID string
}

func (e *UnknownFieldIDError) Error() string {
	return fmt.Sprintf("field identifier %q resolves to no known target", e.ID)
}

// ResolveFieldID parses a compound element identifier. entityFields is
// the set of element IDs registered at entity level; it is consulted
// first, so an entity-level ID that happens to contain the separator
// (e.g. "A110-3") is never misread as a sub-object reference.
//
// Grammar, after the entity-level check:
//
//	ELEM-SUB        → SubObjectField (e.g. "A55-01/19")
//	ELEM-SUB-NESTED → NestedSubObjectField (e.g. "E68-01/19-01")
func ResolveFieldID(id string, entityFields map[string]bool) (FieldTarget, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, &UnknownFieldIDError{ID: id}
	}
	if entityFields[id] {
		return EntityField{Field: id}, nil
	}

	parts := strings.Split(id, "-")
	switch len(parts) {
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return nil, &UnknownFieldIDError{ID: id}
		}
		return SubObjectField{Sub: parts[1], Field: parts[0]}, nil
	case 3:
		if parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return nil, &UnknownFieldIDError{ID: id}
		}
		return NestedSubObjectField{Sub: parts[1], Nested: parts[2], Field: parts[0]}, nil
	default:
		return nil, &UnknownFieldIDError{ID: id}
	}
}
