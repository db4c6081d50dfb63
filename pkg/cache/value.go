package cache

import "reflect"

// Value is a node of the store tree: either a Leaf or a Branch.
type Value interface {
	isValue()
}

// Leaf holds a terminal value. Data is never nil once stored.
type Leaf struct {
	Data any
}

// Branch holds further keyed values.
type Branch map[string]Value

func (Leaf) isValue()   {}
func (Branch) isValue() {}

// Plain converts v into plain Go data: branches become map[string]any,
// leaves become their Data. A nil Value yields nil.
func Plain(v Value) any {
	switch x := v.(type) {
	case Leaf:
		return x.Data
	case Branch:
		m := make(map[string]any, len(x))
		for k, child := range x {
			m[k] = Plain(child)
		}
		return m
	}
	return nil
}

// clone copies the branch structure. Leaf data is shared.
func clone(v Value) Value {
	b, ok := v.(Branch)
	if !ok {
		return v
	}
	c := make(Branch, len(b))
	for k, child := range b {
		c[k] = clone(child)
	}
	return c
}

// toValue wraps an arbitrary value for storage. It reports false when the
// value, or any leaf nested inside a Branch or a Leaf, is nil.
func toValue(v any) (Value, bool) {
	switch x := v.(type) {
	case Leaf:
		switch x.Data.(type) {
		case Leaf, Branch, *Leaf, *Branch:
			// A Value wrapped in a Leaf is stored as that Value.
			return toValue(x.Data)
		}
		if isNil(x.Data) {
			return nil, false
		}
		return x, true
	case Branch:
		c := make(Branch, len(x))
		for k, child := range x {
			cv, ok := toValue(child)
			if !ok {
				return nil, false
			}
			c[k] = cv
		}
		return c, true
	case *Leaf:
		if x == nil {
			return nil, false
		}
		return toValue(*x)
	case *Branch:
		if x == nil {
			return nil, false
		}
		return toValue(*x)
	}
	if isNil(v) {
		return nil, false
	}
	return Leaf{Data: v}, true
}

// isNil reports whether v is nil or a nil pointer, func, chan or interface.
// Nil maps and slices are empty collections and are accepted.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
