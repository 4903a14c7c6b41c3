package netprobe

import (
	"errors"
	"net"
	"testing"
)

type fakeInterface struct {
	flags net.Flags
	addrs []net.Addr
	err   error
}

func (fi *fakeInterface) Flags() net.Flags {
	return fi.flags
}

func (fi *fakeInterface) Addrs() ([]net.Addr, error) {
	return fi.addrs, fi.err
}

func ipnet(s string) net.Addr {
	ip, n, err := net.ParseCIDR(s)
	if err != nil {
		panic(err)
	}
	return &net.IPNet{IP: ip, Mask: n.Mask}
}

func TestProbe(t *testing.T) {
	t.Run("when listing interfaces fails", func(t *testing.T) {
		p := &Probe{Interfaces: func() ([]Interface, error) {
			return nil, errors.New("mocked error")
		}}
		if p.IsReachable() {
			t.Fatal("expected false")
		}
	})

	t.Run("with only loopback and down interfaces", func(t *testing.T) {
		p := &Probe{Interfaces: func() ([]Interface, error) {
			return []Interface{
				&fakeInterface{flags: net.FlagUp | net.FlagLoopback, addrs: []net.Addr{ipnet("127.0.0.1/8")}},
				&fakeInterface{flags: 0, addrs: []net.Addr{ipnet("10.0.0.2/24")}},
			}, nil
		}}
		if p.IsReachable() {
			t.Fatal("expected false")
		}
	})

	t.Run("when Addrs fails or there are only link-local addresses", func(t *testing.T) {
		p := &Probe{Interfaces: func() ([]Interface, error) {
			return []Interface{
				&fakeInterface{flags: net.FlagUp, err: errors.New("mocked error")},
				&fakeInterface{flags: net.FlagUp, addrs: []net.Addr{ipnet("fe80::1/64")}},
			}, nil
		}}
		if p.IsReachable() {
			t.Fatal("expected false")
		}
	})

	t.Run("with an interface that is up and has an address", func(t *testing.T) {
		p := &Probe{Interfaces: func() ([]Interface, error) {
			return []Interface{
				&fakeInterface{flags: net.FlagUp, addrs: []net.Addr{ipnet("10.0.0.2/24")}},
			}, nil
		}}
		if !p.IsReachable() {
			t.Fatal("expected true")
		}
	})
}

func TestAlways(t *testing.T) {
	if !Always(true).IsReachable() {
		t.Fatal("expected true")
	}
	if Always(false).IsReachable() {
		t.Fatal("expected false")
	}
}
