package act

import (
	"sync"

	"github.com/uberbrodt/fungo/fun"
)

var (
	names             map[Name]Address
	registrationMutex sync.RWMutex
)

func init() {
	names = make(map[Name]Address)
}

type RegistrationErrorKind string

type RegistrationError struct {
	Kind RegistrationErrorKind
}

func (e *RegistrationError) Error() string {
	return string(e.Kind)
}

const (
	// process is already registered with a name. Caller should consider calling [Unregister] and retry
	AlreadyRegistered RegistrationErrorKind = "already_registered"
	// another process already registered given name
	NameInUse RegistrationErrorKind = "name_used"
	// the process you're trying to register doesn't exist/is dead
	NoProc RegistrationErrorKind = "no_proc"
	// name is invalid and cannot be registered.
	BadName RegistrationErrorKind = "bad_name"
)

// Register gives addr a public name on this runtime. The name resolves
// through [WhereIs] or by sending to the [Name] directly, and is
// released automatically when the process exits.
func Register(name Name, addr Address) *RegistrationError {
	registrationMutex.Lock()
	defer registrationMutex.Unlock()
	if name == "nil" || name == "undefined" || name == "" {
		return &RegistrationError{Kind: BadName}
	}

	if !IsAlive(addr) {
		return &RegistrationError{Kind: NoProc}
	}

	if addr.p.getName() != "" {
		return &RegistrationError{Kind: AlreadyRegistered}
	}

	if _, ok := names[name]; ok {
		return &RegistrationError{Kind: NameInUse}
	}

	names[name] = addr
	// make sure process knows it's name. It will know to unregister itself
	// when it exits now.
	addr.p.setName(name)
	return nil
}

func WhereIs(name Name) (addr Address, exists bool) {
	registrationMutex.RLock()
	defer registrationMutex.RUnlock()

	addr, exists = names[name]
	return
}

// Unregister given [Name]. Returns false if [Name] is not registered
func Unregister(name Name) bool {
	registrationMutex.Lock()
	defer registrationMutex.Unlock()
	if addr, ok := names[name]; ok {
		delete(names, name)
		// NOTE: need to unset the process name, otherwise it cannot be re-registered
		addr.p.setName(Name(""))
		return true
	}
	return false
}

type Registration struct {
	Name Name
	Addr Address
}

// Registered lists the current name registrations for processes that are
// still alive.
func Registered() []Registration {
	registrationMutex.RLock()
	defer registrationMutex.RUnlock()

	registrations := make([]Registration, 0, len(names))
	for name, addr := range names {
		registrations = append(registrations, Registration{Name: name, Addr: addr})
	}
	return fun.Filter(registrations, func(r Registration) bool {
		return IsAlive(r.Addr)
	})
}
