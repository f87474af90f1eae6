package act

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/rs/xid"

	"github.com/uberbrodt/act-go/act/exitreason"
	"github.com/uberbrodt/act-go/act/internal/mailbox"
)

type processStatus string

var (
	exiting processStatus = "EXITING"
	exited  processStatus = "EXITED"
	running processStatus = "RUNNING"
)

// process-wide registry of live processes keyed by actor id. This is the
// scheduler's only shared bookkeeping; actor-local state is never shared.
var (
	actors   map[string]*Process
	actorsMx sync.RWMutex
)

func init() {
	actors = make(map[string]*Process)
}

func registerProcess(p *Process) {
	actorsMx.Lock()
	defer actorsMx.Unlock()
	actors[p.id] = p
}

func unregisterProcess(id string) {
	actorsMx.Lock()
	defer actorsMx.Unlock()
	delete(actors, id)
}

func whereIsID(id string) (*Process, bool) {
	actorsMx.RLock()
	defer actorsMx.RUnlock()
	p, ok := actors[id]
	return p, ok
}

// A Process is the execution context for one actor: its identity, its
// mailbox, its links, and its terminal state once the actor's logic has
// returned. It is created by [Spawn] and mutated only by its own
// goroutine and by senders appending to its mailbox.
type Process struct {
	id    string
	actor Actor
	args  []any
	mb    *mailbox.Mailbox
	done  chan struct{}

	// terminal state, immutable once done is closed
	result  any
	failure *exitreason.S

	// links get an exception notice on failure; exitLinks additionally
	// get an exit notice with the result on any termination.
	links     []Address
	exitLinks []Address
	linkMutex sync.Mutex

	statusMutex sync.RWMutex
	_status     processStatus

	nameMutex sync.RWMutex
	// the registered name, optional
	_name Name
}

func newProcess(a Actor, args []any) *Process {
	return &Process{
		id:      xid.New().String(),
		actor:   a,
		args:    args,
		mb:      mailbox.New(),
		done:    make(chan struct{}),
		_status: running,
	}
}

func (p *Process) String() string {
	if p.getName() != "" {
		return fmt.Sprintf("Process<%s|%s>", p.id, p.getName())
	}
	return fmt.Sprintf("Process<%s>", p.id)
}

func (p *Process) self() Address {
	return Address{p: p}
}

// killedPanic aborts a receive when the process is torn down with Kill.
// It is recovered in run and converted to [exitreason.Killed].
type killedPanic struct{}

// run executes the actor's logic on this process's goroutine, recovers
// panics into a Failed terminal state, and performs the exit sequence.
func (p *Process) run() {
	var result any
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				switch v := r.(type) {
				case killedPanic:
					err = exitreason.Killed
				case error:
					err = exitreason.Exception(fmt.Errorf("%v actor panicked: %w, stack: %s", p, v, debug.Stack()))
					Logger.Println(err)
				default:
					err = exitreason.Exception(fmt.Errorf("%v actor panicked: %v, stack: %s", p, r, debug.Stack()))
					Logger.Println(err)
				}
			}
		}()
		result, err = p.actor.Act(Self{p: p}, p.args...)
	}()
	DebugPrintf("%v actor returned\r", p)
	p.exit(result, err)
}

// exit transitions the process to its terminal state: unregister the
// name, notify links, seal the result, close the mailbox, and drop the
// process from the registry. Terminal state is immutable once set.
func (p *Process) exit(result any, e error) {
	p.setStatus(exiting)
	if p.getName() != "" {
		DebugPrintf("%v unregistering name: %s", p, p.getName())
		Unregister(p.getName())
	}

	var reason *exitreason.S
	if e == nil {
		reason = exitreason.Normal
	} else {
		errors.As(exitreason.Wrap(e), &reason)
	}

	p.linkMutex.Lock()
	links := make([]Address, len(p.links))
	copy(links, p.links)
	exitLinks := make([]Address, len(p.exitLinks))
	copy(exitLinks, p.exitLinks)
	p.linkMutex.Unlock()

	if exitreason.IsNormal(reason) {
		p.result = result
	} else {
		p.failure = reason
		notice := map[string]any{"address": p.self(), "exception": reason.Error()}
		for _, linked := range links {
			if err := Send(linked, notice); err != nil {
				DebugPrintf("%v could not notify link %v: %v\r", p, linked, err)
			}
		}
	}

	exitNotice := map[string]any{"address": p.self(), "exit": p.result}
	for _, linked := range exitLinks {
		if err := Send(linked, exitNotice); err != nil {
			DebugPrintf("%v could not notify exit link %v: %v\r", p, linked, err)
		}
	}

	p.mb.Close()
	unregisterProcess(p.id)
	p.setStatus(exited)
	close(p.done)
}

// addLink attaches watcher to this process. trapExit additionally
// subscribes it to the exit notice carrying the result. Fails with
// NoProc once the process is no longer running, so a watcher never
// links to something that will not notify it.
func (p *Process) addLink(watcher Address, trapExit bool) error {
	p.linkMutex.Lock()
	defer p.linkMutex.Unlock()

	if p.getStatus() != running {
		return exitreason.NoProc
	}
	p.links = append(p.links, watcher)
	if trapExit {
		p.exitLinks = append(p.exitLinks, watcher)
	}
	return nil
}

// kill closes the mailbox out from under the actor. The next receive
// aborts and the process fails with [exitreason.Killed]. A process that
// never receives again cannot be interrupted; teardown is cooperative.
func (p *Process) kill() {
	if p.getStatus() == running {
		p.mb.Close()
	}
}

func (p *Process) getStatus() processStatus {
	defer func() {
		if p != nil {
			p.statusMutex.RUnlock()
		}
	}()
	if p == nil {
		return exited
	}
	p.statusMutex.RLock()
	return p._status
}

func (p *Process) setStatus(newStatus processStatus) {
	p.statusMutex.Lock()
	defer p.statusMutex.Unlock()

	p._status = newStatus
}

func (p *Process) getName() Name {
	p.nameMutex.RLock()
	defer p.nameMutex.RUnlock()
	return p._name
}

func (p *Process) setName(name Name) {
	p.nameMutex.Lock()
	defer p.nameMutex.Unlock()

	p._name = name
}
