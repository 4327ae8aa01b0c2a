//go:build linux

package buttons

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

// Linux input-event-codes.h
const (
	evKey = 0x01

	keyEnter = 28
	keySpace = 57
	keyF4    = 62
	btnLeft  = 0x110
	btnTouch = 0x14a

	keyReleased = 0
	keyPressed  = 1
)

type evdevLogger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// EvdevButtons reads /dev/input/event* devices. A released touch or mouse
// button, or a pressed space/enter key, is a Tap; F4 is Exit.
type EvdevButtons struct {
	Glob   string
	Logger evdevLogger

	ch     chan Event
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewEvdevButtons(logger evdevLogger) *EvdevButtons {
	return &EvdevButtons{Glob: "/dev/input/event*", Logger: logger, ch: make(chan Event, 8)}
}

func (b *EvdevButtons) Events() <-chan Event { return b.ch }

// Start is best-effort: without input devices it logs and returns nil.
func (b *EvdevButtons) Start(ctx context.Context) error {
	paths, err := filepath.Glob(b.Glob)
	if err != nil || len(paths) == 0 {
		if b.Logger != nil {
			b.Logger.Infof("input", "no evdev devices found")
		}
		return nil
	}

	readCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	for _, path := range paths {
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			b.read(readCtx, path)
		}()
	}
	return nil
}

func (b *EvdevButtons) Stop() error {
	if b.cancel != nil {
		b.cancel()
	}
	b.wg.Wait()
	return nil
}

func (b *EvdevButtons) read(ctx context.Context, path string) {
	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := int(binary.Size(unix.Timeval{}))
	eventSize := tvSize + 2 + 2 + 4

	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			if b.Logger != nil {
				b.Logger.Errorf("input", "read %s: %v", path, err)
			}
			return
		}

		for off := 0; off+eventSize <= n; off += eventSize {
			rec := buf[off : off+eventSize]
			typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
			code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
			value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
			if event, ok := decodeKey(typ, code, value); ok {
				select {
				case b.ch <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// decodeKey maps one input_event to a button event. Pointer buttons fire on
// release, like pointerup.
func decodeKey(typ, code uint16, value int32) (Event, bool) {
	if typ != evKey {
		return "", false
	}
	switch code {
	case btnTouch, btnLeft:
		return Tap, value == keyReleased
	case keySpace, keyEnter:
		return Tap, value == keyPressed
	case keyF4:
		return Exit, value == keyPressed
	}
	return "", false
}
