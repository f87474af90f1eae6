/*
Package codec is the isolation boundary between actors.

Every message handed to [Copy] is round-tripped through a restricted JSON
representation before it reaches the receiving mailbox, so sender and
receiver never share mutable structure. The restricted value model is:

	nil, bool, int/float (canonicalized to float64), string,
	[]any, map[string]any, [Binary], and process addresses

Anything else fails with an [*EncodingError] at the sender. Two value
kinds need tagging to survive the round trip: raw bytes travel as a
base64 object and addresses travel as an id object that is resolved back
through the hook installed with [SetAddrResolver].
*/
package codec

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync"
)

const (
	addrTag   = "_act_address"
	binaryTag = "_act_binary"
)

// EncodingError is returned when a value cannot be represented in the
// restricted value model. The message is never enqueued in that case.
type EncodingError struct {
	Value any
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("codec: value of type %T is not representable in the message value model", e.Value)
}

// Binary wraps raw bytes so they can travel inside messages. The JSON
// representation has no native byte type, so Binary is encoded as a
// tagged base64 object.
type Binary []byte

func (b Binary) Equal(o Binary) bool {
	if len(b) != len(o) {
		return false
	}
	for i := range b {
		if b[i] != o[i] {
			return false
		}
	}
	return true
}

func (b Binary) String() string {
	return fmt.Sprintf("Binary<%d bytes>", len(b))
}

// AddrRef is implemented by process addresses. The codec only needs the
// actor id; the act package supplies resolution from id back to a live
// address.
type AddrRef interface {
	ActorID() string
}

var (
	resolverMx   sync.RWMutex
	addrResolver func(id string) (AddrRef, bool)
)

// SetAddrResolver installs the hook used to rehydrate address values on
// decode. Called once by the act package at init.
func SetAddrResolver(fn func(id string) (AddrRef, bool)) {
	resolverMx.Lock()
	defer resolverMx.Unlock()
	addrResolver = fn
}

func resolveAddr(id string) (AddrRef, bool) {
	resolverMx.RLock()
	defer resolverMx.RUnlock()
	if addrResolver == nil {
		return nil, false
	}
	return addrResolver(id)
}

// Valid reports whether v is representable in the restricted value
// model. A nil return means [Copy] will succeed on v.
func Valid(v any) error {
	_, err := encode(v)
	return err
}

// Copy produces an isolated copy of v by round-tripping it through the
// restricted JSON representation. Numbers canonicalize to float64 on the
// receiving side; the sender's value is never aliased by the result.
func Copy(v any) (any, error) {
	tree, err := encode(v)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(tree)
	if err != nil {
		// encode already rejected anything json can't handle
		return nil, &EncodingError{Value: v}
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &EncodingError{Value: v}
	}
	return decode(out), nil
}

// encode validates v and rewrites Binary and address values into their
// tagged forms.
func encode(v any) (any, error) {
	switch t := v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v, nil
	case Binary:
		return map[string]any{binaryTag: base64.StdEncoding.EncodeToString(t)}, nil
	case []any:
		out := make([]any, len(t))
		for i, elem := range t {
			enc, err := encode(elem)
			if err != nil {
				return nil, err
			}
			out[i] = enc
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, elem := range t {
			enc, err := encode(elem)
			if err != nil {
				return nil, err
			}
			out[k] = enc
		}
		return out, nil
	default:
		if ar, ok := v.(AddrRef); ok {
			return map[string]any{addrTag: ar.ActorID()}, nil
		}
		return nil, &EncodingError{Value: v}
	}
}

// decode rehydrates tagged objects. A tagged address whose id no longer
// resolves decodes to whatever the resolver returns for it; with no
// resolver installed the tagged object is passed through untouched.
func decode(v any) any {
	switch t := v.(type) {
	case []any:
		for i, elem := range t {
			t[i] = decode(elem)
		}
		return t
	case map[string]any:
		if len(t) == 1 {
			if id, ok := t[addrTag].(string); ok {
				if addr, ok := resolveAddr(id); ok {
					return addr
				}
				return t
			}
			if b64, ok := t[binaryTag].(string); ok {
				raw, err := base64.StdEncoding.DecodeString(b64)
				if err == nil {
					return Binary(raw)
				}
				return t
			}
		}
		for k, elem := range t {
			t[k] = decode(elem)
		}
		return t
	default:
		return v
	}
}
