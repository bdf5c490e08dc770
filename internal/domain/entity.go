package domain

import "github.com/google/uuid"

// Entity is the identity capability shared by all domain entities.
// Identity is assigned at construction and never changes; equality between
// entities is defined entirely by kind and identifier, independent of any
// other state.
type Entity interface {
	// Identity returns the entity's immutable identifier.
	Identity() uuid.UUID

	// Kind returns the concrete entity kind (e.g., "task", "board").
	// Two entities of different kinds are never equal, even with the
	// same identifier.
	Kind() string
}

// Equal reports whether two entities are the same domain entity.
// It returns false for nil operands or differing kinds, and otherwise
// compares identifiers. The relation is reflexive, symmetric, and
// transitive for non-nil entities.
func Equal(a, b Entity) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Kind() != b.Kind() {
		return false
	}
	return a.Identity() == b.Identity()
}
