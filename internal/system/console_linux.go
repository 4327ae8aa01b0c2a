//go:build linux

package system

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

var defaultConsolePaths = []string{"/dev/tty", "/dev/tty0"}

// Console switches the active virtual terminal between text and graphics
// mode so the kernel console does not draw over the framebuffer.
type Console struct {
	// Paths are tried in order; the first that accepts the ioctl wins.
	Paths  []string
	Logger logger
}

func NewConsole(l logger) *Console {
	return &Console{Paths: defaultConsolePaths, Logger: l}
}

// EnterGraphics sets KD_GRAPHICS and hides the cursor. The returned function
// undoes both and is safe to call even when entering failed.
func (c *Console) EnterGraphics() func() {
	if err := c.setMode(kdGraphics); err != nil {
		c.errorf("KD_GRAPHICS failed: %v", err)
	} else {
		c.infof("KD_GRAPHICS set")
	}
	if err := c.write("\x1b[?25l"); err != nil {
		c.errorf("hide cursor failed: %v", err)
	}
	return func() {
		if err := c.write("\x1b[?25h"); err != nil {
			c.errorf("show cursor failed: %v", err)
		}
		if err := c.setMode(kdText); err != nil {
			c.errorf("KD_TEXT failed: %v", err)
		} else {
			c.infof("KD_TEXT set")
		}
	}
}

func (c *Console) setMode(mode int) error {
	var lastErr error
	for _, path := range c.paths() {
		fd, err := unix.Open(path, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", path, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		_ = unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("KDSETMODE %d on %s: %w", mode, path, err)
			continue
		}
		return nil
	}
	if lastErr == nil {
		lastErr = errors.New("no console paths")
	}
	return lastErr
}

func (c *Console) write(s string) error {
	var lastErr error
	for _, path := range c.paths() {
		f, err := os.OpenFile(path, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		_ = f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New("no console paths")
	}
	return fmt.Errorf("write VT: %w", lastErr)
}

func (c *Console) paths() []string {
	if len(c.Paths) == 0 {
		return defaultConsolePaths
	}
	return c.Paths
}
