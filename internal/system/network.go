package system

import (
	"context"
	"errors"
	"net"
	"strings"
)

var ErrNoAddress = errors.New("no non-loopback IPv4 address")

type NetInfo interface {
	IP(ctx context.Context) (string, error)
}

// StaticNetInfo always reports the same address. The simulator uses it.
type StaticNetInfo string

func (s StaticNetInfo) IP(ctx context.Context) (string, error) { return string(s), nil }

// InterfaceNetInfo picks the first IPv4 address of an up, non-loopback
// interface. Interfaces whose names start with one of Prefer are tried first,
// so wired and wireless links win over bridges and tunnels.
type InterfaceNetInfo struct {
	Prefer []string

	// interfaces is swapped in tests.
	interfaces func() ([]iface, error)
}

type iface struct {
	Name  string
	Up    bool
	Loop  bool
	Addrs []net.Addr
}

func NewInterfaceNetInfo() *InterfaceNetInfo {
	return &InterfaceNetInfo{Prefer: []string{"eth", "en", "wlan", "wl"}}
}

func (n *InterfaceNetInfo) IP(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	list := n.interfaces
	if list == nil {
		list = hostInterfaces
	}
	ifaces, err := list()
	if err != nil {
		return "", err
	}

	fallback := ""
	for _, candidate := range ifaces {
		if !candidate.Up || candidate.Loop {
			continue
		}
		ip := firstIPv4(candidate.Addrs)
		if ip == "" {
			continue
		}
		if n.preferred(candidate.Name) {
			return ip, nil
		}
		if fallback == "" {
			fallback = ip
		}
	}
	if fallback == "" {
		return "", ErrNoAddress
	}
	return fallback, nil
}

func (n *InterfaceNetInfo) preferred(name string) bool {
	for _, prefix := range n.Prefer {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func firstIPv4(addrs []net.Addr) string {
	for _, addr := range addrs {
		var ip net.IP
		switch v := addr.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}
		if ip4 := ip.To4(); ip4 != nil && !ip4.IsLoopback() && !ip4.IsLinkLocalUnicast() {
			return ip4.String()
		}
	}
	return ""
}

func hostInterfaces() ([]iface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	out := make([]iface, 0, len(ifaces))
	for _, i := range ifaces {
		addrs, err := i.Addrs()
		if err != nil {
			continue
		}
		out = append(out, iface{
			Name:  i.Name,
			Up:    i.Flags&net.FlagUp != 0,
			Loop:  i.Flags&net.FlagLoopback != 0,
			Addrs: addrs,
		})
	}
	return out, nil
}
