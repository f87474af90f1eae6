package act

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/uberbrodt/act-go/act/shape"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// addressCmp lets DeepEqual look inside values carrying addresses.
var addressCmp = cmp.Comparer(func(a, b Address) bool { return a.Equals(b) })

const exceptionMarker = "child had an exception"

var errChildExploded = errors.New(exceptionMarker)

// four is the simplest possible actor.
func four(self Self, args ...any) (any, error) {
	return 2 + 2, nil
}

func explode(self Self, args ...any) (any, error) {
	return nil, errChildExploded
}

func panicky(self Self, args ...any) (any, error) {
	panic(exceptionMarker)
}

// supervise builds an actor that spawn-links child and reports how it
// terminated: the child's result on a clean exit, exceptionMarker on a
// failure.
func supervise(child ActorFunc) ActorFunc {
	return func(self Self, args ...any) (any, error) {
		addr := SpawnLink(self, child)

		exit := shape.Map(map[string]shape.Shape{
			"exit":    shape.Any(),
			"address": shape.Lit(addr),
		})
		exception := shape.Map(map[string]shape.Shape{
			"exception": shape.Any(),
			"address":   shape.Lit(addr),
		})

		matched, msg := self.Receive(exit, exception)
		if matched == exception {
			return exceptionMarker, nil
		}
		return msg.(map[string]any)["exit"], nil
	}
}

// forward receives one message, passes it to the address given at spawn,
// and terminates.
func forward(self Self, args ...any) (any, error) {
	next := args[0].(Address)
	_, msg := self.Receive()
	return nil, Send(next, msg)
}
