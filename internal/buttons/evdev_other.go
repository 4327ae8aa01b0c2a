//go:build !linux

package buttons

import "context"

type evdevLogger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// EvdevButtons has no input devices to read outside Linux.
type EvdevButtons struct {
	Logger evdevLogger
	ch     chan Event
}

func NewEvdevButtons(logger evdevLogger) *EvdevButtons {
	return &EvdevButtons{Logger: logger, ch: make(chan Event)}
}

func (b *EvdevButtons) Start(ctx context.Context) error {
	if b.Logger != nil {
		b.Logger.Infof("input", "evdev input is only available on linux")
	}
	return nil
}

func (b *EvdevButtons) Stop() error          { return nil }
func (b *EvdevButtons) Events() <-chan Event { return b.ch }
