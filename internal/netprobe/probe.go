// Package netprobe implements the connectivity probe used by the
// controller before attempting a network call.
package netprobe

import (
	"net"

	"github.com/endpointkit/endpoint/internal/model"
)

// Probe reports the network as reachable when at least one interface
// is up, is not a loopback interface, and has a unicast address.
//
// The zero value is ready to use.
type Probe struct {
	// Interfaces is the OPTIONAL function listing interfaces. When nil
	// we use [net.Interfaces].
	Interfaces func() ([]Interface, error)
}

var _ model.Probe = &Probe{}

// Interface is the subset of [net.Interface] used by [Probe].
type Interface interface {
	// Flags returns the interface flags.
	Flags() net.Flags

	// Addrs returns the unicast addresses.
	Addrs() ([]net.Addr, error)
}

// IsReachable implements model.Probe.
func (p *Probe) IsReachable() bool {
	list := p.Interfaces
	if list == nil {
		list = systemInterfaces
	}
	ifaces, err := list()
	if err != nil {
		return false
	}
	for _, iface := range ifaces {
		flags := iface.Flags()
		if flags&net.FlagUp == 0 || flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			if ipnet, ok := addr.(*net.IPNet); ok && ipnet.IP.IsGlobalUnicast() {
				return true
			}
		}
	}
	return false
}

// systemInterface adapts [net.Interface] to [Interface].
type systemInterface struct {
	iface net.Interface
}

func (si systemInterface) Flags() net.Flags {
	return si.iface.Flags
}

func (si systemInterface) Addrs() ([]net.Addr, error) {
	return si.iface.Addrs()
}

func systemInterfaces() ([]Interface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	out := make([]Interface, 0, len(ifaces))
	for _, iface := range ifaces {
		out = append(out, systemInterface{iface})
	}
	return out, nil
}

// Always is a [model.Probe] returning a constant answer. Use it in tests
// and when talking to servers on the local host.
type Always bool

var _ model.Probe = Always(true)

// IsReachable implements model.Probe.
func (a Always) IsReachable() bool {
	return bool(a)
}
