package dispatch

import (
	"context"
	"sync/atomic"
)

type outcome struct {
	value any
	err   error
}

// exchange tracks the single terminal action of one suspended request.
// The first completion wins; later calls are dropped rather than corrupting
// a response that has already been written. Invoking a completion callback
// exactly once remains the handler's documented obligation.
type exchange struct {
	completed atomic.Bool
	done      chan outcome
}

func newExchange() *exchange {
	return &exchange{done: make(chan outcome, 1)}
}

func (e *exchange) complete(o outcome) {
	if !e.completed.CompareAndSwap(false, true) {
		return
	}
	e.done <- o
}

// wait parks the caller until a completion arrives or the request context
// ends (client disconnect or the connector's idle timeout).
func (e *exchange) wait(ctx context.Context) (outcome, bool) {
	select {
	case o := <-e.done:
		return o, true
	case <-ctx.Done():
		return outcome{}, false
	}
}
