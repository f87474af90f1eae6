/*
Package act provides a lightweight actor runtime with Erlang-style
selective receive.

Actors are isolated units of logic scheduled as goroutines. They
communicate exclusively through asynchronous, copied messages delivered
to per-actor mailboxes; an actor pulls messages out of its mailbox by
structural pattern match, skipping and preserving anything that doesn't
match (see the shape package).

# Spawning

[Spawn] starts an [Actor] and returns its [Address] synchronously:

	addr := act.SpawnFunc(func(self act.Self, args ...any) (any, error) {
		_, msg := self.Receive()
		return msg, nil
	})

The actor's logic receives a [Self] handle, which is the only way to
receive messages, learn the current address, or sleep. [SpawnLink]
additionally subscribes the calling actor to the child's termination
notices.

# Messages

[Send] copies the message through the codec boundary before it reaches
the target mailbox, so sender and receiver never share mutable state.
Messages are restricted to the codec value model: booleans, numbers,
strings, nil, []any, map[string]any, [codec.Binary], and addresses.
Anything else fails with a [*codec.EncodingError] at the sender and is
never enqueued. Sends to a dead or undefined address return
[exitreason.NoProc]; they never block.

Messages from one sender to one target arrive in the order sent. No
ordering holds across distinct senders.

# Receiving

Self.Receive scans the mailbox oldest-first against the caller's shapes
in order, removes and returns the first match, and blocks until one
exists. A message that matches nothing stays put, in order, for a later
receive. Receive with no shapes takes the oldest message unconditionally.
A shape set that is never satisfied blocks forever; the runtime does not
detect that.

# Termination

An actor finishes with the value it returns, or fails with the error it
returns or panics with. Failures are isolated: they never crash the
runtime or other actors, and are observable only through [Address.Wait]
and link notices. Waiting on an already-terminal process returns its
stored result immediately.
*/
package act

import (
	"errors"
	"runtime"
	"time"

	"github.com/uberbrodt/act-go/act/codec"
	"github.com/uberbrodt/act-go/act/exitreason"
	"github.com/uberbrodt/act-go/act/internal/mailbox"
	"github.com/uberbrodt/act-go/act/shape"
)

func init() {
	// addresses inside messages are encoded as actor ids; decode looks
	// them up here. Ids of dead processes decode to UndefinedAddress,
	// whose sends fail with NoProc.
	codec.SetAddrResolver(func(id string) (codec.AddrRef, bool) {
		if p, ok := whereIsID(id); ok {
			return Address{p: p}, true
		}
		return UndefinedAddress, true
	})
}

// An Actor is the logic run by a process. Act is called once on the
// process's goroutine with the spawn arguments; the process finishes
// with the returned value or fails with the returned error. Panics are
// recovered into a failure.
type Actor interface {
	Act(self Self, args ...any) (any, error)
}

// ActorFunc adapts a plain function to [Actor].
type ActorFunc func(self Self, args ...any) (any, error)

func (f ActorFunc) Act(self Self, args ...any) (any, error) {
	return f(self, args...)
}

// Self is the handle an actor's logic uses to interact with its own
// process. It is valid only from within that logic.
type Self struct {
	p *Process
}

// Addr returns the address of the process currently executing.
func (s Self) Addr() Address {
	return Address{p: s.p}
}

// Receive blocks until a mailbox message matches one of the shapes and
// returns the matched shape (by identity) with the message. With no
// shapes it takes the oldest message under the implicit wildcard. Every
// wake re-scans the whole mailbox, oldest first.
func (s Self) Receive(shapes ...shape.Shape) (shape.Shape, any) {
	matched, msg, err := s.p.mb.TakeTimeout(-1, shapes...)
	if err != nil {
		// the mailbox closes under a running actor only via Kill
		panic(killedPanic{})
	}
	return matched, msg
}

// ReceiveTimeout is [Self.Receive] bounded by tout, failing with
// [exitreason.Timeout] when it expires. tout == 0 polls: it returns
// immediately whether or not anything matched.
func (s Self) ReceiveTimeout(tout time.Duration, shapes ...shape.Shape) (shape.Shape, any, error) {
	matched, msg, err := s.p.mb.TakeTimeout(tout, shapes...)
	switch {
	case err == nil:
		return matched, msg, nil
	case errors.Is(err, mailbox.ErrTimeout):
		return nil, nil, exitreason.Timeout
	default:
		panic(killedPanic{})
	}
}

// Sleep suspends the actor for d.
func (s Self) Sleep(d time.Duration) {
	time.Sleep(d)
}

// Yield gives other processes a chance to run. Only useful in actors
// that loop without blocking on receive.
func (s Self) Yield() {
	runtime.Gosched()
}

// Spawn creates a new process running a, registers it, and returns its
// Address synchronously. The actor's logic begins executing in
// scheduling order, not necessarily before Spawn returns.
func Spawn(a Actor, args ...any) Address {
	p := newProcess(a, args)
	registerProcess(p)
	go p.run()
	return p.self()
}

// SpawnFunc is [Spawn] for a plain function.
func SpawnFunc(fn ActorFunc, args ...any) Address {
	return Spawn(fn, args...)
}

// SpawnLink is [Spawn] with the calling actor linked to the new process
// before it starts, so no termination notice can be missed. On failure
// the caller receives {"address": addr, "exception": detail}; on any
// termination it receives {"address": addr, "exit": result}.
func SpawnLink(self Self, a Actor, args ...any) Address {
	p := newProcess(a, args)
	p.links = append(p.links, self.Addr())
	p.exitLinks = append(p.exitLinks, self.Addr())
	registerProcess(p)
	go p.run()
	return p.self()
}

// Link subscribes the calling actor to this process's termination
// notices, like [SpawnLink] does at spawn time. With trapExit false only
// the exception notice is delivered. Linking to a dead process fails
// with [exitreason.NoProc] rather than silently never notifying.
func (a Address) Link(self Self, trapExit bool) error {
	if a.IsNil() {
		return exitreason.NoProc
	}
	return a.p.addLink(self.Addr(), trapExit)
}

// Send validates msg against the codec value model, copies it, and
// appends the copy to the target's mailbox, waking the target if it is
// blocked in a receive. Fire-and-forget: it never blocks and reports
// nothing beyond acceptance. A value outside the model fails with
// [*codec.EncodingError] and is never enqueued; a dead or undefined
// target fails with [exitreason.NoProc].
func Send(d Dest, msg any) error {
	addr, err := d.Resolve()
	if err != nil {
		return exitreason.NoProc
	}
	cp, err := codec.Copy(msg)
	if err != nil {
		return err
	}
	if addr.IsNil() || addr.p.getStatus() != running {
		return exitreason.NoProc
	}
	if !addr.p.mb.Put(cp) {
		return exitreason.NoProc
	}
	return nil
}

// Send on the address. See [Send].
func (a Address) Send(msg any) error {
	return Send(a, msg)
}

// Wait blocks until the process reaches a terminal state and returns its
// result, or its failure as the error. Waiting on an already-terminal
// process returns immediately.
func (a Address) Wait() (any, error) {
	return a.WaitTimeout(-1)
}

// WaitTimeout is [Address.Wait] bounded by tout (tout < 0 waits
// forever, tout == 0 polls), failing with [exitreason.Timeout] when it
// expires.
func (a Address) WaitTimeout(tout time.Duration) (any, error) {
	if a.IsNil() {
		return nil, exitreason.NoProc
	}
	switch {
	case tout == 0:
		select {
		case <-a.p.done:
		default:
			return nil, exitreason.Timeout
		}
	case tout > 0:
		select {
		case <-a.p.done:
		case <-time.After(tout):
			return nil, exitreason.Timeout
		}
	default:
		<-a.p.done
	}
	if a.p.failure != nil {
		return nil, a.p.failure
	}
	return a.p.result, nil
}

// Kill tears the process down: its current or next receive aborts and it
// fails with [exitreason.Killed]. Cooperative, like everything else
// here; a process that never receives again is not interruptible.
func (a Address) Kill() {
	if a.p != nil {
		a.p.kill()
	}
}

// IsAlive reports whether the process has not yet exited. Point-in-time:
// it may exit immediately after IsAlive returns true.
func IsAlive(a Address) bool {
	return !a.IsNil() && a.p.getStatus() == running
}
