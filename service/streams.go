package service

import (
	"context"
	"errors"
	"io"
	"time"
)

// emit sends each item in order, pacing emissions by interval and polling
// cancellation before every send. Cancellation is cooperative: a message
// already in flight is delivered, but no further ones are, and the stream
// ends cleanly.
func emit[T any](ctx context.Context, interval time.Duration, items []*T, send func(*T) error) error {
	for i, item := range items {
		if ctx.Err() != nil {
			return nil
		}
		if i > 0 && interval > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(interval):
			}
		}
		if err := send(item); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
	return nil
}

// consume reads messages strictly in arrival order, one at a time, applying
// fn to each, until the sender half-closes. It polls cancellation between
// messages; an aborted stream surfaces as an error so the caller never sends
// a terminal response for an incomplete sequence.
func consume[T any](ctx context.Context, recv func() (*T, error), fn func(*T) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		message, err := recv()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(message); err != nil {
			return err
		}
	}
}
