package act

import (
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/uberbrodt/act-go/act/shape"
)

// CallShape matches a well-formed call request: a correlation id, a
// method name, a reply address, and an arbitrary payload. Servers
// receive on this shape and answer with [Respond] and friends.
var CallShape = shape.Map(map[string]shape.Shape{
	"call":    shape.Type(shape.String),
	"method":  shape.Type(shape.String),
	"address": shape.Type(shape.Addr),
	"message": shape.Any(),
})

// BuildCallShape narrows [CallShape] to one method and a payload shape,
// for servers that dispatch with distinct receive patterns per method.
func BuildCallShape(method string, msg shape.Shape) shape.Shape {
	return shape.Map(map[string]shape.Shape{
		"call":    shape.Type(shape.String),
		"method":  shape.Lit(method),
		"address": shape.Type(shape.Addr),
		"message": msg,
	})
}

// RemoteError carries a failure detail reported by the remote actor in
// response to a call.
type RemoteError struct {
	Detail any
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote call failed: %v", e.Detail)
}

// InvalidMethodError reports that the called actor has no handler for
// the method.
type InvalidMethodError struct {
	Method string
}

func (e *InvalidMethodError) Error() string {
	return fmt.Sprintf("remote actor does not handle method %q", e.Method)
}

// InvalidCallError reports a [Respond] on a message that isn't a call
// request.
type InvalidCallError struct {
	Msg any
}

func (e *InvalidCallError) Error() string {
	return fmt.Sprintf("message is not a call request: %+v", e.Msg)
}

// Call sends a call request to the actor at a and blocks the caller
// until the matching response arrives or tout expires. The reply is
// correlated by a unique id, so unrelated mailbox traffic is skipped and
// preserved. Returns the remote result, or [*RemoteError],
// [*InvalidMethodError], or [exitreason.Timeout].
func (a Address) Call(self Self, method string, msg any, tout time.Duration) (any, error) {
	id := xid.New().String()
	req := map[string]any{
		"call":    id,
		"method":  method,
		"address": self.Addr(),
		"message": msg,
	}
	if err := a.Send(req); err != nil {
		return nil, err
	}

	rsp := shape.Map(map[string]shape.Shape{"response": shape.Lit(id), "message": shape.Any()})
	exc := shape.Map(map[string]shape.Shape{"response": shape.Lit(id), "exception": shape.Any()})
	inv := shape.Map(map[string]shape.Shape{"response": shape.Lit(id), "invalid_method": shape.Type(shape.String)})

	matched, reply, err := self.ReceiveTimeout(tout, rsp, exc, inv)
	if err != nil {
		return nil, err
	}
	body := reply.(map[string]any)
	switch matched {
	case inv:
		return nil, &InvalidMethodError{Method: method}
	case exc:
		return nil, &RemoteError{Detail: body["exception"]}
	default:
		return body["message"], nil
	}
}

// replyTo extracts and verifies the caller's address out of a call
// request.
func replyTo(orig any) (Address, map[string]any, error) {
	m, ok := orig.(map[string]any)
	if !ok || !shape.Match(CallShape, m) {
		return UndefinedAddress, nil, &InvalidCallError{Msg: orig}
	}
	addr, ok := m["address"].(Address)
	if !ok {
		return UndefinedAddress, nil, &InvalidCallError{Msg: orig}
	}
	return addr, m, nil
}

// Respond answers a call request with a result.
func Respond(orig any, response any) error {
	addr, m, err := replyTo(orig)
	if err != nil {
		return err
	}
	return addr.Send(map[string]any{"response": m["call"], "message": response})
}

// RespondError answers a call request with a failure detail; the caller
// gets it back as a [*RemoteError].
func RespondError(orig any, detail any) error {
	addr, m, err := replyTo(orig)
	if err != nil {
		return err
	}
	return addr.Send(map[string]any{"response": m["call"], "exception": detail})
}

// RespondInvalidMethod answers a call request whose method the server
// does not handle.
func RespondInvalidMethod(orig any) error {
	addr, m, err := replyTo(orig)
	if err != nil {
		return err
	}
	return addr.Send(map[string]any{"response": m["call"], "invalid_method": m["method"]})
}
