package act

import (
	"github.com/uberbrodt/act-go/act/shape"
)

// Termination notices sent to linked actors.
var (
	ExitNoticeShape = shape.Map(map[string]shape.Shape{
		"exit":    shape.Any(),
		"address": shape.Type(shape.Addr),
	})
	ExceptionNoticeShape = shape.Map(map[string]shape.Shape{
		"exception": shape.Any(),
		"address":   shape.Type(shape.Addr),
	})
)

// WaitResult is one actor's terminal state as gathered by [WaitAll].
type WaitResult struct {
	Addr  Address
	Value any
	Err   error
}

// WaitAll spawns every actor linked to a gathering process and blocks
// until all of them terminate. Results come back in spawn order; a
// failed actor yields a WaitResult whose Err carries the exception
// detail from its notice.
func WaitAll(actors ...Actor) ([]WaitResult, error) {
	gather := ActorFunc(func(self Self, args ...any) (any, error) {
		addrs := make([]Address, 0, len(actors))
		for _, a := range actors {
			addrs = append(addrs, SpawnLink(self, a))
		}

		// a failed child sends an exception notice followed by an exit
		// notice; the first one observed per address wins.
		byID := make(map[string]WaitResult, len(addrs))
		for len(byID) < len(addrs) {
			matched, msg := self.Receive(ExceptionNoticeShape, ExitNoticeShape)
			m := msg.(map[string]any)
			from, ok := m["address"].(Address)
			if !ok {
				continue
			}
			if _, seen := byID[from.ActorID()]; seen {
				continue
			}
			if matched == ExceptionNoticeShape {
				byID[from.ActorID()] = WaitResult{Addr: from, Err: &RemoteError{Detail: m["exception"]}}
			} else {
				byID[from.ActorID()] = WaitResult{Addr: from, Value: m["exit"]}
			}
		}

		results := make([]WaitResult, len(addrs))
		for i, a := range addrs {
			results[i] = byID[a.ActorID()]
		}
		return results, nil
	})

	result, err := Spawn(gather).Wait()
	if err != nil {
		return nil, err
	}
	return result.([]WaitResult), nil
}
