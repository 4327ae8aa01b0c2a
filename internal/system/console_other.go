//go:build !linux

package system

// Console is a no-op outside Linux, where there is no KD console to switch.
type Console struct {
	Paths  []string
	Logger logger
}

func NewConsole(l logger) *Console {
	return &Console{Logger: l}
}

func (c *Console) EnterGraphics() func() {
	c.infof("console mode switching is only available on linux")
	return func() {}
}
