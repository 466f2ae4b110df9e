// Package grpcinproc invokes gRPC streaming handlers in-process, without a
// listener or client connection.
//
// Each constructor wraps a server-side streaming handler and returns a
// function that behaves like the matching generated client call: the handler
// runs on its own goroutine and messages cross over channels. Cancellation of
// the caller's context is visible to the handler through the stream context,
// which makes these bridges suitable for exercising flow-control and
// cancellation semantics in tests.
//
// The Srv type parameter is the service's server-stream interface (e.g. a
// generated FooServer stream type); the adapters satisfy it structurally and
// are cast with any(srv).(Srv).
package grpcinproc
