package shape

import (
	"errors"
	"fmt"
)

var (
	// ErrAmbiguousShape is returned when a shape cannot be inferred, such
	// as from an empty list.
	ErrAmbiguousShape = errors.New("shape: ambiguous")
	// ErrHeterogeneousList is returned when list elements disagree on
	// kind, so no single element shape describes them.
	ErrHeterogeneousList = errors.New("shape: list items must be of homogeneous kind")
)

// Of infers the shape of a concrete value: scalars infer to their kind,
// mappings infer field-wise, and lists infer to ListOf the first
// element's shape. It errors on empty lists (nothing to infer from),
// kind-heterogeneous lists, and values outside the value model.
func Of(v any) (Shape, error) {
	switch t := v.(type) {
	case map[string]any:
		fields := make(map[string]Shape, len(t))
		for k, item := range t {
			s, err := Of(item)
			if err != nil {
				return nil, err
			}
			fields[k] = s
		}
		return Map(fields), nil
	case []any:
		if len(t) == 0 {
			return nil, fmt.Errorf("%w: empty list has no element shape", ErrAmbiguousShape)
		}
		first, ok := KindOf(t[0])
		if !ok {
			return nil, fmt.Errorf("shape: cannot infer from value of type %T", t[0])
		}
		for _, item := range t[1:] {
			k, ok := KindOf(item)
			if !ok || k != first {
				return nil, ErrHeterogeneousList
			}
		}
		elem, err := Of(t[0])
		if err != nil {
			return nil, err
		}
		return ListOf(elem), nil
	default:
		k, ok := KindOf(v)
		if !ok {
			return nil, fmt.Errorf("shape: cannot infer from value of type %T", v)
		}
		return Type(k), nil
	}
}
