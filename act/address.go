package act

import "fmt"

// An Address is an opaque reference to a Process. Anything holding an
// Address can put messages in that Process's mailbox, wait on its
// terminal state, or link to it; the Process internals are never
// exposed. Addresses are comparable with [Address.Equals] and are never
// reused after their process exits.
type Address struct {
	p *Process
}

// UndefinedAddress refers to no process. Sends and waits on it fail with
// [exitreason.NoProc].
var UndefinedAddress Address = Address{}

func (a Address) String() string {
	if a.p == nil {
		return "Address<undefined>"
	}
	if a.p.getName() == "" {
		return fmt.Sprintf("Address<%s>", a.p.id)
	}
	return fmt.Sprintf("Address<%s|%s>", a.p.id, a.p.getName())
}

func (a Address) IsNil() bool {
	return a.p == nil
}

func (a Address) Equals(other Address) bool {
	if a.IsNil() && other.IsNil() {
		return true
	}
	if a.IsNil() || other.IsNil() {
		return false
	}
	return a.p.id == other.p.id
}

// ActorID returns the process id this address refers to, or "" for the
// undefined address. It also satisfies [codec.AddrRef] so addresses can
// travel inside messages.
func (a Address) ActorID() string {
	if a.p == nil {
		return ""
	}
	return a.p.id
}

// Resolve implements [Dest].
func (a Address) Resolve() (Address, error) {
	return a, nil
}

// A Name is a registered alias for an Address. See [Register].
type Name string

// Resolve implements [Dest].
func (n Name) Resolve() (Address, error) {
	addr, exists := WhereIs(n)
	if !exists {
		return addr, fmt.Errorf("no address found for name %s", n)
	}
	return addr, nil
}

// Dest is anywhere a message can be sent: an [Address] or a registered
// [Name].
type Dest interface {
	Resolve() (Address, error)
}
