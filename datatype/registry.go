package datatype

import (
	"fmt"
	"slices"
)

// Registry is a set of DataTypes keyed by normalized variable name and
// display name. Lookups are safe for concurrent use once registration
// is finished.
type Registry struct {
	byKey map[string]*DataType
	types []*DataType
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]*DataType)}
}

// Register adds dt. Registering a type equal to one already present is a
// no-op; a different type whose variable or display name normalizes to
// an existing key is an error.
func (r *Registry) Register(dt *DataType) error {
	if dt == nil {
		return fmt.Errorf("%w: nil", ErrInvalidType)
	}
	varKey := NameKey(dt.varName)
	dispKey := NameKey(dt.displayName)
	if varKey == "" {
		return fmt.Errorf("%w: %q has no letters or digits", ErrInvalidType, dt.varName)
	}
	if old, ok := r.byKey[varKey]; ok {
		if old.Equal(dt) {
			return nil
		}
		return fmt.Errorf("%w: %q conflicts with %q", ErrDuplicateName, dt.varName, old.varName)
	}
	if old, ok := r.byKey[dispKey]; ok && dispKey != "" {
		return fmt.Errorf("%w: display name %q conflicts with %q",
			ErrDuplicateName, dt.displayName, old.varName)
	}

	r.byKey[varKey] = dt
	if dispKey != "" {
		r.byKey[dispKey] = dt
	}
	i, _ := slices.BinarySearchFunc(r.types, dt, (*DataType).Compare)
	r.types = slices.Insert(r.types, i, dt)
	return nil
}

// RegisterAll registers each spec in turn.
func (r *Registry) RegisterAll(specs ...Spec) error {
	for _, s := range specs {
		dt, err := New(s)
		if err != nil {
			return err
		}
		if err = r.Register(dt); err != nil {
			return err
		}
	}
	return nil
}

// Lookup finds a type by variable or display name, ignoring case and
// anything other than letters and digits.
func (r *Registry) Lookup(name string) (*DataType, bool) {
	dt, ok := r.byKey[NameKey(name)]
	return dt, ok
}

// Contains reports whether a type equal to dt is registered.
func (r *Registry) Contains(dt *DataType) bool {
	if dt == nil {
		return false
	}
	old, ok := r.byKey[NameKey(dt.varName)]
	return ok && old.Equal(dt)
}

// Types returns the registered types in sort order.
func (r *Registry) Types() []*DataType {
	return slices.Clone(r.types)
}

// Len returns the number of registered types.
func (r *Registry) Len() int { return len(r.types) }
