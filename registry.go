package musicexpr

import (
	"errors"
	"strconv"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// ErrEmptyName is returned when saving an expression under an empty name.
var ErrEmptyName = errors.New("save name cannot be empty")

// Registry holds named expressions in the order in which their names were
// first saved. It is not safe to use a Registry concurrently. The zero value
// is an empty registry ready to use.
type Registry struct {
	m *linkedhashmap.Map
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{m: linkedhashmap.New()}
}

// Set saves an expression under a name. Saving under a name that is already
// used replaces the expression but keeps the name's original position.
func (r *Registry) Set(name string, e Expr) error {
	if name == "" {
		return ErrEmptyName
	}
	if e == nil {
		panic("musicexpr: Set with nil expression")
	}
	if r.m == nil {
		r.m = linkedhashmap.New()
	}
	r.m.Put(name, e)
	return nil
}

// Lookup returns the expression saved under a name.
func (r *Registry) Lookup(name string) (Expr, bool) {
	if r.m == nil {
		return nil, false
	}
	v, ok := r.m.Get(name)
	if !ok {
		return nil, false
	}
	return v.(Expr), true
}

// Len returns the number of saved names.
func (r *Registry) Len() int {
	if r.m == nil {
		return 0
	}
	return r.m.Size()
}

// Names returns the saved names in order.
func (r *Registry) Names() []string {
	if r.m == nil {
		return nil
	}
	keys := r.m.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.(string)
	}
	return names
}

// Each calls f with each saved name and expression in order until f returns
// false.
func (r *Registry) Each(f func(name string, e Expr) bool) {
	if r.m == nil {
		return
	}
	it := r.m.Iterator()
	for it.Next() {
		if !f(it.Key().(string), it.Value().(Expr)) {
			return
		}
	}
}

// Resolve looks up each name in order. Names that are not saved are returned
// in missing, in order, and otherwise skipped.
func (r *Registry) Resolve(names []string) (found []Expr, missing []string) {
	for _, name := range names {
		if e, ok := r.Lookup(name); ok {
			found = append(found, e)
		} else {
			missing = append(missing, name)
		}
	}
	return found, missing
}

// NameError is an error from a lookup for a name that has not been saved.
// When it results from parsing notation, it implements InputError.
type NameError struct {
	// Col is the position of the name, or 0 if it was not parsed.
	Col int
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	msg := "expression " + strconv.Quote(err.Name) + " not found"
	if err.Col > 0 {
		return errpos(err.Col, msg)
	}
	return msg
}

func (err *NameError) Pos() int {
	return err.Col
}
