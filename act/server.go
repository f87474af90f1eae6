package act

import (
	"errors"
)

// ErrStop is returned (possibly wrapped) by a [Handler] to make the
// server reply one last time and then finish normally.
var ErrStop = errors.New("act: stop server")

// A Handler services one call method. The returned value is sent back to
// the caller; a non-nil error other than [ErrStop] is reported back as a
// [*RemoteError].
type Handler func(self Self, msg any) (any, error)

// Server is an actor that answers the call protocol by dispatching
// methods from a handler table. Register handlers with [Server.Handle]
// before spawning; calls to unregistered methods answer invalid_method.
//
//	srv := act.NewServer().
//		Handle("ping", func(self act.Self, msg any) (any, error) {
//			return "pong", nil
//		})
//	addr := act.Spawn(srv)
type Server struct {
	handlers map[string]Handler
}

func NewServer() *Server {
	return &Server{handlers: make(map[string]Handler)}
}

// Handle registers a handler for method, replacing any previous one.
// Returns the server for chaining.
func (s *Server) Handle(method string, h Handler) *Server {
	s.handlers[method] = h
	return s
}

// Act implements [Actor]: wait forever for call requests and dispatch
// them. Non-call mailbox traffic is skipped and preserved by selective
// receive.
func (s *Server) Act(self Self, args ...any) (any, error) {
	for {
		_, msg := self.Receive(CallShape)
		m := msg.(map[string]any)
		method := m["method"].(string)

		h, ok := s.handlers[method]
		if !ok {
			if err := RespondInvalidMethod(m); err != nil {
				DebugPrintf("%v could not answer invalid method %q: %v\r", self.Addr(), method, err)
			}
			continue
		}

		reply, err := h(self, m["message"])
		switch {
		case err == nil:
			if err := Respond(m, reply); err != nil {
				DebugPrintf("%v could not respond to %q: %v\r", self.Addr(), method, err)
			}
		case errors.Is(err, ErrStop):
			if err := Respond(m, reply); err != nil {
				DebugPrintf("%v could not respond to %q: %v\r", self.Addr(), method, err)
			}
			return nil, nil
		default:
			if err := RespondError(m, err.Error()); err != nil {
				DebugPrintf("%v could not report error for %q: %v\r", self.Addr(), method, err)
			}
		}
	}
}
