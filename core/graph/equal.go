package graph

import (
	"reflect"

	"netviz/core/utils"
)

// Equal reports whether two elements have the same id and structurally equal attributes.
// Map comparison ignores key order; numeric values compare exactly by value
// across Go types, so large integers never collapse through float64.
func Equal(a, b Element) bool {
	if a.ID != b.ID {
		return false
	}
	return AttributesEqual(a.Attrs, b.Attrs)
}

// AttributesEqual compares two attribute maps deeply. A nil map equals an empty one.
func AttributesEqual(a, b Attributes) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !valueEqual(va, vb) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	if na, ok := utils.ToNumber(a); ok {
		nb, ok := utils.ToNumber(b)
		return ok && na.Cmp(nb) == 0
	}
	switch ta := a.(type) {
	case map[string]any:
		tb, ok := asMap(b)
		return ok && AttributesEqual(ta, tb)
	case Attributes:
		tb, ok := asMap(b)
		return ok && AttributesEqual(ta, tb)
	case []any:
		tb, ok := b.([]any)
		if !ok || len(ta) != len(tb) {
			return false
		}
		for i := range ta {
			if !valueEqual(ta[i], tb[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

func asMap(v any) (Attributes, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case Attributes:
		return t, true
	}
	return nil, false
}
