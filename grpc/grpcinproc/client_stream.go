package grpcinproc

import (
	"context"
	"errors"
	"io"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// ClientStreamClient is the client view of an in-process client-streaming call.
type ClientStreamClient[Req, Resp any] interface {
	Send(*Req) error
	CloseAndRecv() (*Resp, error)
	grpc.ClientStream
}

// NewClientStreamAsClient wraps a client-streaming handler so it can be called
// like a generated client method.
func NewClientStreamAsClient[Req, Resp any, Srv grpc.ServerStream](
	handler func(Srv) error,
) func(context.Context) (ClientStreamClient[Req, Resp], error) {
	return func(ctx context.Context) (ClientStreamClient[Req, Resp], error) {
		s := &clientStream[Req, Resp]{
			ctx:      ctx,
			reqCh:    make(chan *Req),
			respCh:   make(chan respOrErr[Resp], 1),
			sendDone: make(chan struct{}),
		}

		go func() {
			srv := &clientStreamServerAdapter[Req, Resp]{stream: s}
			if err := handler(any(srv).(Srv)); err != nil && err != io.EOF {
				select {
				case s.respCh <- respOrErr[Resp]{err: err}:
				case <-ctx.Done():
				}
			}
			close(s.respCh)
		}()

		return s, nil
	}
}

type clientStream[Req, Resp any] struct {
	ctx       context.Context
	reqCh     chan *Req
	respCh    chan respOrErr[Resp]
	sendDone  chan struct{}
	closeOnce sync.Once
}

func (s *clientStream[Req, Resp]) Context() context.Context { return s.ctx }

func (s *clientStream[Req, Resp]) Send(req *Req) error {
	select {
	case <-s.sendDone:
		return errors.New("send on closed stream")
	case <-s.ctx.Done():
		return s.ctx.Err()
	case s.reqCh <- req:
		return nil
	}
}

// CloseAndRecv half-closes the inbound stream and waits for the handler's
// terminal response.
func (s *clientStream[Req, Resp]) CloseAndRecv() (*Resp, error) {
	if err := s.CloseSend(); err != nil {
		return nil, err
	}
	select {
	case <-s.ctx.Done():
		return nil, s.ctx.Err()
	case r, ok := <-s.respCh:
		if !ok {
			return nil, io.EOF
		}
		if r.err != nil {
			return nil, r.err
		}
		return r.resp, nil
	}
}

func (s *clientStream[Req, Resp]) CloseSend() error {
	s.closeOnce.Do(func() {
		close(s.sendDone)
		close(s.reqCh)
	})
	return nil
}

func (s *clientStream[Req, Resp]) Header() (metadata.MD, error) { return metadata.MD{}, nil }
func (s *clientStream[Req, Resp]) Trailer() metadata.MD         { return metadata.MD{} }
func (s *clientStream[Req, Resp]) SendMsg(m any) error {
	if msg, ok := m.(*Req); ok {
		return s.Send(msg)
	}
	return errors.New("SendMsg: invalid message type")
}
func (s *clientStream[Req, Resp]) RecvMsg(m any) error {
	resp, err := s.CloseAndRecv()
	if err != nil {
		return err
	}
	if ptr, ok := m.(*Resp); ok {
		*ptr = *resp
		return nil
	}
	return errors.New("RecvMsg: invalid message type")
}

// clientStreamServerAdapter is the grpc.ServerStream handed to the handler.
type clientStreamServerAdapter[Req, Resp any] struct {
	stream   *clientStream[Req, Resp]
	sendOnce sync.Once
}

func (a *clientStreamServerAdapter[Req, Resp]) Context() context.Context { return a.stream.ctx }

func (a *clientStreamServerAdapter[Req, Resp]) Recv() (*Req, error) {
	select {
	case <-a.stream.ctx.Done():
		return nil, a.stream.ctx.Err()
	case req, ok := <-a.stream.reqCh:
		if !ok {
			// A cancelled call can race the half-close; cancellation wins.
			if err := a.stream.ctx.Err(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		return req, nil
	}
}

// SendAndClose delivers the terminal response to the client.
func (a *clientStreamServerAdapter[Req, Resp]) SendAndClose(resp *Resp) error {
	var err error
	sent := false
	a.sendOnce.Do(func() {
		select {
		case <-a.stream.ctx.Done():
			err = a.stream.ctx.Err()
		case a.stream.respCh <- respOrErr[Resp]{resp: resp}:
		}
		sent = true
	})
	if !sent {
		return errors.New("SendAndClose called twice")
	}
	return err
}

func (a *clientStreamServerAdapter[Req, Resp]) SetHeader(md metadata.MD) error  { return nil }
func (a *clientStreamServerAdapter[Req, Resp]) SendHeader(md metadata.MD) error { return nil }
func (a *clientStreamServerAdapter[Req, Resp]) SetTrailer(md metadata.MD)       {}
func (a *clientStreamServerAdapter[Req, Resp]) SendMsg(m any) error {
	if msg, ok := m.(*Resp); ok {
		return a.SendAndClose(msg)
	}
	return errors.New("SendMsg: invalid message type")
}
func (a *clientStreamServerAdapter[Req, Resp]) RecvMsg(m any) error {
	req, err := a.Recv()
	if err != nil {
		return err
	}
	if ptr, ok := m.(*Req); ok {
		*ptr = *req
		return nil
	}
	return errors.New("RecvMsg: invalid message type")
}
