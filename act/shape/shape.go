/*
Package shape implements the structural pattern matcher used by
selective receive.

A [Shape] describes which message values are acceptable to a receive
call. Shapes form a closed sum:

	Any()                     matches every value
	Type(kind)                matches any value of that runtime kind
	Lit(v)                    matches by equality
	Tuple(s1, ..., sn)        matches sequences of exactly n elements
	ListOf(s)                 matches sequences of any length, every
	                          element matching s (empty always matches)
	Map(fields)               matches string-keyed mappings containing at
	                          least the given keys; extra keys ignored

Shapes are immutable and reusable across receive calls. Matching never
mutates the shape or the value. Malformed shapes (nil sub-shape, unknown
kind) fail at construction time with a panic, never at match time.
*/
package shape

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/uberbrodt/act-go/act/codec"
)

// Kind identifies a runtime kind of the restricted value model.
type Kind int

// MapKind is named to leave Map free for the constructor, the way Addr
// leaves Address free for the act package.
const (
	Null Kind = iota
	Bool
	Number
	String
	List
	MapKind
	Binary
	Addr
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case List:
		return "list"
	case MapKind:
		return "map"
	case Binary:
		return "binary"
	case Addr:
		return "addr"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Shape is a structural matcher. Values returned by the constructors in
// this package are the only implementations; compare them by identity to
// find out which pattern a receive matched.
type Shape interface {
	match(v any) bool
	String() string
}

// Match reports whether v matches s. Pure: neither argument is mutated.
func Match(s Shape, v any) bool {
	return s.match(v)
}

type anyShape struct{}

func (anyShape) match(any) bool { return true }
func (anyShape) String() string { return "Any" }

var anySingleton Shape = &anyShape{}

// Any returns the universal wildcard. Every representable value matches,
// including empty sequences and empty mappings.
func Any() Shape {
	return anySingleton
}

type typeShape struct {
	kind Kind
}

func (s *typeShape) match(v any) bool {
	k, ok := KindOf(v)
	return ok && k == s.kind
}

func (s *typeShape) String() string {
	return fmt.Sprintf("Type(%s)", s.kind)
}

// Type returns a shape matching any value whose runtime kind is k.
// Panics on an unknown kind.
func Type(k Kind) Shape {
	if k < Null || k > Addr {
		panic(fmt.Sprintf("shape: unknown kind %d", int(k)))
	}
	return &typeShape{kind: k}
}

type litShape struct {
	value any
}

func (s *litShape) match(v any) bool {
	return equalValues(s.value, v)
}

func (s *litShape) String() string {
	return fmt.Sprintf("Lit(%v)", s.value)
}

// Lit returns a shape matching by equality. Numeric literals compare
// numerically, so Lit(5) matches the float64 a copied message carries.
func Lit(v any) Shape {
	return &litShape{value: v}
}

type tupleShape struct {
	elems []Shape
}

func (s *tupleShape) match(v any) bool {
	seq, ok := v.([]any)
	if !ok || len(seq) != len(s.elems) {
		return false
	}
	for i, elem := range s.elems {
		if !elem.match(seq[i]) {
			return false
		}
	}
	return true
}

func (s *tupleShape) String() string {
	parts := make([]string, len(s.elems))
	for i, e := range s.elems {
		parts[i] = e.String()
	}
	return "Tuple(" + strings.Join(parts, ", ") + ")"
}

// Tuple returns a shape matching sequences of exactly len(elems)
// elements, positionally. A length mismatch is a no-match, not an error.
func Tuple(elems ...Shape) Shape {
	for i, e := range elems {
		if e == nil {
			panic(fmt.Sprintf("shape: Tuple element %d is nil", i))
		}
	}
	return &tupleShape{elems: elems}
}

type listShape struct {
	elem Shape
}

func (s *listShape) match(v any) bool {
	seq, ok := v.([]any)
	if !ok {
		return false
	}
	for _, item := range seq {
		if !s.elem.match(item) {
			return false
		}
	}
	return true
}

func (s *listShape) String() string {
	return fmt.Sprintf("ListOf(%s)", s.elem)
}

// ListOf returns a shape matching sequences of any length where every
// element matches elem. The empty sequence trivially matches.
func ListOf(elem Shape) Shape {
	if elem == nil {
		panic("shape: ListOf element is nil")
	}
	return &listShape{elem: elem}
}

type mapShape struct {
	fields map[string]Shape
}

func (s *mapShape) match(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	for key, field := range s.fields {
		item, present := m[key]
		if !present || !field.match(item) {
			return false
		}
	}
	return true
}

func (s *mapShape) String() string {
	parts := make([]string, 0, len(s.fields))
	for k, f := range s.fields {
		parts = append(parts, fmt.Sprintf("%s: %s", k, f))
	}
	return "Map{" + strings.Join(parts, ", ") + "}"
}

// Map returns a shape matching string-keyed mappings that contain at
// least the given keys, each value matched recursively. Extra keys in
// the value are ignored; a missing key is a no-match.
func Map(fields map[string]Shape) Shape {
	for k, f := range fields {
		if f == nil {
			panic(fmt.Sprintf("shape: Map field %q is nil", k))
		}
	}
	return &mapShape{fields: fields}
}

// KindOf reports the runtime kind of v and whether v belongs to the
// restricted value model at all.
func KindOf(v any) (Kind, bool) {
	switch v.(type) {
	case nil:
		return Null, true
	case bool:
		return Bool, true
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return Number, true
	case string:
		return String, true
	case []any:
		return List, true
	case map[string]any:
		return MapKind, true
	case codec.Binary:
		return Binary, true
	}
	if _, ok := v.(codec.AddrRef); ok {
		return Addr, true
	}
	return Null, false
}

// equalValues compares two values the way Lit matching needs: numbers
// numerically across int/float representations, Binary byte-wise,
// everything else with deep equality.
func equalValues(a, b any) bool {
	if na, ok := toFloat(a); ok {
		nb, ok := toFloat(b)
		return ok && na == nb
	}
	if ba, ok := a.(codec.Binary); ok {
		bb, ok := b.(codec.Binary)
		return ok && ba.Equal(bb)
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
