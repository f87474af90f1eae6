package act

import (
	"errors"
	"testing"
	"time"

	"github.com/uberbrodt/act-go/act/exitreason"
	"github.com/uberbrodt/act-go/chronos"
)

var testTimeout time.Duration = chronos.Dur("10s")

// NewTestReceiver spawns an actor that forwards every message it
// receives to a channel, for asserting on deliveries in tests. It is
// killed in t.Cleanup.
func NewTestReceiver(t *testing.T) (Address, *TestReceiver) {
	c := make(chan any, 50)
	tr := &TestReceiver{c: c, t: t}
	addr := Spawn(tr)

	t.Cleanup(func() {
		addr.Kill()
	})
	return addr, tr
}

type TestReceiver struct {
	c chan any
	t *testing.T
}

func (tr *TestReceiver) Act(self Self, args ...any) (any, error) {
	for {
		_, msg, err := self.ReceiveTimeout(testTimeout)
		if err != nil {
			if errors.Is(err, exitreason.Timeout) {
				tr.t.Error("TestReceiver: test timeout")
			}
			return nil, err
		}
		tr.c <- msg
	}
}

func (tr *TestReceiver) Receiver() <-chan any {
	return tr.c
}

// NextMsg returns the next delivered message, failing the test after the
// package test timeout.
func (tr *TestReceiver) NextMsg() any {
	select {
	case msg := <-tr.c:
		return msg
	case <-time.After(testTimeout):
		tr.t.Fatal("TestReceiver: no message before timeout")
		return nil
	}
}

// Loop feeds delivered messages to handler until it returns true.
func (tr *TestReceiver) Loop(handler func(msg any) bool) bool {
	for {
		select {
		case msg, ok := <-tr.c:
			if !ok {
				return false
			}
			if stop := handler(msg); stop {
				return true
			}
		case <-time.After(testTimeout):
			tr.t.Fatal("TestReceiver.Loop test timeout")

			return false
		}
	}
}
