package act

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestRegister_ResolvesByName(t *testing.T) {
	addr, tr := NewTestReceiver(t)

	assert.NilError(t, errOrNil(Register("reg_resolve", addr)))
	t.Cleanup(func() { Unregister("reg_resolve") })

	found, exists := WhereIs("reg_resolve")
	assert.Assert(t, exists)
	assert.Assert(t, found.Equals(addr))

	// a Name is a Dest: sends resolve through the registry
	assert.NilError(t, Send(Name("reg_resolve"), "hello"))
	assert.Equal(t, tr.NextMsg(), "hello")
}

func TestRegister_BadNames(t *testing.T) {
	addr, _ := NewTestReceiver(t)

	for _, name := range []Name{"", "nil", "undefined"} {
		err := Register(name, addr)
		assert.Assert(t, err != nil)
		assert.Equal(t, err.Kind, BadName)
	}
}

func TestRegister_DeadProcessIsNoProc(t *testing.T) {
	addr := SpawnFunc(four)
	_, err := addr.Wait()
	assert.NilError(t, err)

	regErr := Register("reg_dead", addr)
	assert.Assert(t, regErr != nil)
	assert.Equal(t, regErr.Kind, NoProc)
}

func TestRegister_NameInUse(t *testing.T) {
	a1, _ := NewTestReceiver(t)
	a2, _ := NewTestReceiver(t)

	assert.NilError(t, errOrNil(Register("reg_in_use", a1)))
	t.Cleanup(func() { Unregister("reg_in_use") })

	err := Register("reg_in_use", a2)
	assert.Assert(t, err != nil)
	assert.Equal(t, err.Kind, NameInUse)
}

func TestRegister_AlreadyRegistered(t *testing.T) {
	addr, _ := NewTestReceiver(t)

	assert.NilError(t, errOrNil(Register("reg_first", addr)))
	t.Cleanup(func() { Unregister("reg_first") })

	err := Register("reg_second", addr)
	assert.Assert(t, err != nil)
	assert.Equal(t, err.Kind, AlreadyRegistered)
}

func TestRegister_ReleasedOnExit(t *testing.T) {
	release := make(chan struct{})
	addr := SpawnFunc(func(self Self, args ...any) (any, error) {
		<-release
		return nil, nil
	})

	assert.NilError(t, errOrNil(Register("reg_released", addr)))

	close(release)
	_, err := addr.Wait()
	assert.NilError(t, err)

	_, exists := WhereIs("reg_released")
	assert.Assert(t, !exists)

	// sending to the stale name is a dead send, not a panic
	assert.Assert(t, Send(Name("reg_released"), "x") != nil)
}

func TestUnregister(t *testing.T) {
	addr, _ := NewTestReceiver(t)

	assert.NilError(t, errOrNil(Register("reg_gone", addr)))
	assert.Assert(t, Unregister("reg_gone"))
	assert.Assert(t, !Unregister("reg_gone"))

	_, exists := WhereIs("reg_gone")
	assert.Assert(t, !exists)

	// unregistering frees the process for a new name
	assert.NilError(t, errOrNil(Register("reg_again", addr)))
	t.Cleanup(func() { Unregister("reg_again") })
}

func TestRegistered_ListsLiveProcessesOnly(t *testing.T) {
	alive, _ := NewTestReceiver(t)
	assert.NilError(t, errOrNil(Register("reg_alive", alive)))
	t.Cleanup(func() { Unregister("reg_alive") })

	found := false
	for _, r := range Registered() {
		if r.Name == "reg_alive" {
			found = true
			assert.Assert(t, r.Addr.Equals(alive))
		}
	}
	assert.Assert(t, found)
}

// errOrNil works around *RegistrationError's typed nil when asserting
// with NilError.
func errOrNil(e *RegistrationError) error {
	if e == nil {
		return nil
	}
	return e
}
