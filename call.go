package invoker

import "context"

// Callback receives the outcome of an asynchronous invocation. err is nil on
// success.
type Callback func(err error, result interface{})

// Call is an invocation started with Go.
type Call struct {
	FunctionName string
	Payload      interface{}

	// Result and Error are set before Done is closed.
	Result interface{}
	Error  error

	Done chan struct{}
}

// Wait blocks until the call finishes or ctx is done.
func (c *Call) Wait(ctx context.Context) (interface{}, error) {
	select {
	case <-c.Done:
		return c.Result, c.Error
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Go starts Invoke in its own goroutine and returns immediately. When the
// invocation finishes, callback (if not nil) is called once with the same
// outcome stored in the Call, then Done is closed.
func (iv *Invoker) Go(ctx context.Context, name string, payload interface{}, callback Callback) *Call {
	call := &Call{
		FunctionName: name,
		Payload:      payload,
		Done:         make(chan struct{}),
	}
	go func() {
		defer close(call.Done)
		call.Result, call.Error = iv.Invoke(ctx, name, payload)
		if callback != nil {
			callback(call.Error, call.Result)
		}
	}()
	return call
}
