package buttons

import (
	"context"
	"sync"
)

type Event string

const (
	// Tap dismisses the welcome screen, starts the next drawing or cancels a
	// live one, depending on what is on screen.
	Tap  Event = "tap"
	Exit Event = "exit"
)

type Buttons interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Event
}

type NoopButtons struct{ ch chan Event }

func NewNoopButtons() *NoopButtons { return &NoopButtons{ch: make(chan Event)} }

func (n *NoopButtons) Start(ctx context.Context) error { return nil }
func (n *NoopButtons) Stop() error                     { return nil }
func (n *NoopButtons) Events() <-chan Event            { return n.ch }

// ChannelButtons delivers events sent from inside the process, such as taps
// requested through the web API.
type ChannelButtons struct {
	ch chan Event

	mu      sync.Mutex
	stopped bool
}

func NewChannelButtons(buffer int) *ChannelButtons {
	return &ChannelButtons{ch: make(chan Event, buffer)}
}

func (c *ChannelButtons) Start(ctx context.Context) error { return nil }

func (c *ChannelButtons) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.stopped {
		c.stopped = true
		close(c.ch)
	}
	return nil
}

func (c *ChannelButtons) Events() <-chan Event { return c.ch }

// Send queues event, blocking until there is room or ctx is done.
func (c *ChannelButtons) Send(ctx context.Context, event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return context.Canceled
	}
	select {
	case c.ch <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Merge fans several event sources into one channel that closes once every
// source has closed or ctx is done.
func Merge(ctx context.Context, sources ...Buttons) <-chan Event {
	out := make(chan Event)
	var wg sync.WaitGroup
	for _, source := range sources {
		events := source.Events()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case event, ok := <-events:
					if !ok {
						return
					}
					select {
					case out <- event:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}
