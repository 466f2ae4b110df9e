package grpcinproc

import (
	"context"
	"errors"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

type respOrErr[T any] struct {
	resp *T
	err  error
}

// ServerStreamClient is the client view of an in-process server-streaming call.
type ServerStreamClient[Resp any] interface {
	Recv() (*Resp, error)
	grpc.ClientStream
}

// NewServerStreamAsClient wraps a server-streaming handler so it can be called
// like a generated client method.
func NewServerStreamAsClient[Req, Resp any, Srv grpc.ServerStream](
	handler func(*Req, Srv) error,
) func(context.Context, *Req) (ServerStreamClient[Resp], error) {
	return func(ctx context.Context, req *Req) (ServerStreamClient[Resp], error) {
		s := &serverStream[Resp]{
			ctx:    ctx,
			respCh: make(chan respOrErr[Resp]),
		}

		go func() {
			srv := &serverStreamAdapter[Resp]{stream: s}
			if err := handler(req, any(srv).(Srv)); err != nil && err != io.EOF {
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

type serverStream[Resp any] struct {
	ctx    context.Context
	respCh chan respOrErr[Resp]
}

func (s *serverStream[Resp]) Context() context.Context { return s.ctx }

func (s *serverStream[Resp]) Recv() (*Resp, error) {
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

func (s *serverStream[Resp]) Header() (metadata.MD, error) { return metadata.MD{}, nil }
func (s *serverStream[Resp]) Trailer() metadata.MD         { return metadata.MD{} }
func (s *serverStream[Resp]) CloseSend() error             { return nil }
func (s *serverStream[Resp]) SendMsg(m any) error {
	return errors.New("SendMsg: server-streaming client cannot send")
}
func (s *serverStream[Resp]) RecvMsg(m any) error {
	msg, err := s.Recv()
	if err != nil {
		return err
	}
	if ptr, ok := m.(*Resp); ok {
		*ptr = *msg
		return nil
	}
	return errors.New("RecvMsg: invalid message type")
}

// serverStreamAdapter is the grpc.ServerStream handed to the handler.
type serverStreamAdapter[Resp any] struct {
	stream *serverStream[Resp]
}

func (a *serverStreamAdapter[Resp]) Context() context.Context { return a.stream.ctx }

func (a *serverStreamAdapter[Resp]) Send(resp *Resp) error {
	select {
	case <-a.stream.ctx.Done():
		return a.stream.ctx.Err()
	case a.stream.respCh <- respOrErr[Resp]{resp: resp}:
		return nil
	}
}

func (a *serverStreamAdapter[Resp]) SetHeader(md metadata.MD) error  { return nil }
func (a *serverStreamAdapter[Resp]) SendHeader(md metadata.MD) error { return nil }
func (a *serverStreamAdapter[Resp]) SetTrailer(md metadata.MD)       {}
func (a *serverStreamAdapter[Resp]) SendMsg(m any) error {
	if msg, ok := m.(*Resp); ok {
		return a.Send(msg)
	}
	return errors.New("SendMsg: invalid message type")
}
func (a *serverStreamAdapter[Resp]) RecvMsg(m any) error {
	return errors.New("RecvMsg: server-streaming handler cannot receive")
}
