package act

import (
	"errors"
	"time"

	"github.com/uberbrodt/act-go/act/exitreason"
	"github.com/uberbrodt/act-go/act/shape"
)

type TimerRef struct {
	addr Address
}

var cancelTimerShape = shape.Map(map[string]shape.Shape{
	"cancel": shape.Type(shape.Bool),
})

// SendAfter delivers msg to d after tout, as if [Send] had been called
// then. The timer is itself a lightweight process blocked in a timed
// receive, so delivery is best-effort: if the target is gone by then the
// message is dropped. Returns an empty TimerRef if the target is already
// dead.
func SendAfter(d Dest, msg any, tout time.Duration) TimerRef {
	addr, err := d.Resolve()
	if err != nil || !IsAlive(addr) {
		return TimerRef{}
	}

	timerAddr := SpawnFunc(func(self Self, args ...any) (any, error) {
		_, _, rerr := self.ReceiveTimeout(tout, cancelTimerShape)
		if rerr == nil {
			// cancelled
			return nil, nil
		}
		if errors.Is(rerr, exitreason.Timeout) {
			if serr := Send(addr, msg); serr != nil {
				DebugPrintf("timer could not deliver to %v: %v\r", addr, serr)
			}
		}
		return nil, nil
	})
	return TimerRef{addr: timerAddr}
}

// CancelTimer stops a pending [SendAfter]. Cancelling a timer that
// already fired (or an empty ref) returns [exitreason.NoProc].
func CancelTimer(tr TimerRef) error {
	if tr.addr.IsNil() {
		return exitreason.NoProc
	}
	return tr.addr.Send(map[string]any{"cancel": true})
}
