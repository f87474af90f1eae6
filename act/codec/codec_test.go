package codec

import (
	"testing"

	"gotest.tools/v3/assert"
)

type testAddr struct {
	id string
}

func (a testAddr) ActorID() string { return a.id }

func TestValid_AcceptsValueModel(t *testing.T) {
	values := []any{
		nil,
		true,
		42,
		int64(42),
		42.5,
		"hello",
		[]any{1, "a", nil},
		map[string]any{"k": []any{map[string]any{"n": 1}}},
		Binary{0x00, 0xff},
		testAddr{id: "abc"},
	}

	for _, v := range values {
		assert.NilError(t, Valid(v), "expected %#v to be representable", v)
	}
}

func TestValid_RejectsEverythingElse(t *testing.T) {
	values := []any{
		struct{}{},
		make(chan int),
		func() {},
		map[int]any{1: "a"},
		[]string{"typed", "slice"},
		[]byte("raw bytes need the Binary wrapper"),
	}

	for _, v := range values {
		err := Valid(v)
		assert.Assert(t, err != nil, "expected %#v to be rejected", v)
		assert.ErrorType(t, err, &EncodingError{})
	}
}

func TestValid_RejectsNestedBadValue(t *testing.T) {
	err := Valid(map[string]any{"ok": 1, "bad": []any{struct{}{}}})
	assert.ErrorType(t, err, &EncodingError{})
}

func TestCopy_Isolates(t *testing.T) {
	orig := map[string]any{"list": []any{1, 2, 3}, "label": "x"}

	cp, err := Copy(orig)
	assert.NilError(t, err)

	// mutating the sender's value must not change the copy
	orig["list"].([]any)[0] = 99
	orig["label"] = "mutated"

	got := cp.(map[string]any)
	assert.Equal(t, got["label"], "x")
	assert.Equal(t, got["list"].([]any)[0], float64(1))
}

func TestCopy_CanonicalizesNumbers(t *testing.T) {
	cp, err := Copy([]any{1, int64(2), 3.5})
	assert.NilError(t, err)

	assert.DeepEqual(t, cp, []any{float64(1), float64(2), float64(3.5)})
}

func TestCopy_BinaryRoundTrip(t *testing.T) {
	raw := Binary{0x00, 0x4d, 0x4d, 0xff}

	cp, err := Copy(map[string]any{"blob": raw})
	assert.NilError(t, err)

	got, ok := cp.(map[string]any)["blob"].(Binary)
	assert.Assert(t, ok, "expected Binary, got %T", cp.(map[string]any)["blob"])
	assert.Assert(t, got.Equal(raw))
}

func TestCopy_AddressRoundTrip(t *testing.T) {
	SetAddrResolver(func(id string) (AddrRef, bool) {
		return testAddr{id: id}, true
	})
	defer SetAddrResolver(nil)

	cp, err := Copy(map[string]any{"reply_to": testAddr{id: "proc-1"}})
	assert.NilError(t, err)

	got, ok := cp.(map[string]any)["reply_to"].(testAddr)
	assert.Assert(t, ok, "expected testAddr, got %T", cp.(map[string]any)["reply_to"])
	assert.Equal(t, got.id, "proc-1")
}

func TestCopy_AddressWithoutResolver(t *testing.T) {
	SetAddrResolver(nil)

	cp, err := Copy(testAddr{id: "proc-2"})
	assert.NilError(t, err)

	// with no resolver the tagged form passes through untouched
	assert.DeepEqual(t, cp, map[string]any{"_act_address": "proc-2"})
}
