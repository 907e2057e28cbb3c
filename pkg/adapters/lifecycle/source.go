// Package lifecycle exposes store events as a lifecycle.Source so hosts
// running a lifecycle supervisor can react to note changes.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/supernotes/pkg/core"
)

// Subscriber is the subset of *core.Store the source needs.
type Subscriber interface {
	Subscribe(buffer int) (<-chan core.Event, func())
}

type storeSource struct {
	store  Subscriber
	buffer int
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits the store's events.
// The subscription is taken when Start is called and released when its
// context is done.
func NewSource(store Subscriber, buffer int) lifecycle.Source {
	return &storeSource{
		store:  store,
		buffer: buffer,
		out:    make(chan lifecycle.Event),
	}
}

func (s *storeSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *storeSource) Start(ctx context.Context) error {
	events, unsubscribe := s.store.Subscribe(s.buffer)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		defer unsubscribe()
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
