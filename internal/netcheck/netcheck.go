// Package netcheck answers one question: is anything on this machine
// already listening on a given TCP port?
package netcheck

import (
	"context"
	"net"
	"strconv"
	"time"

	psnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

// DefaultDialTimeout bounds the fallback connection probe. Loopback either
// answers immediately or refuses, so this stays short.
const DefaultDialTimeout = 250 * time.Millisecond

// Listener identifies an existing listener on the probed port. PID and
// Process are zero-valued when the OS did not let us resolve the owner.
type Listener struct {
	PID     int32
	Process string
}

// Prober reports whether something is accepting connections on a local TCP
// port. Implementations return (nil, nil) for "nothing listening"; a non-nil
// error means the check itself could not be performed.
type Prober interface {
	Listening(ctx context.Context, host string, port int) (*Listener, error)
}

// New returns the default prober: the kernel socket table first, a plain
// connection attempt when the table is unreadable.
func New() Prober {
	return chain{&SocketTableProber{}, &DialProber{Timeout: DefaultDialTimeout}}
}

// SocketTableProber scans the OS connection table for a LISTEN socket on the
// port, resolving the owning process when permissions allow.
type SocketTableProber struct{}

func (p *SocketTableProber) Listening(ctx context.Context, host string, port int) (*Listener, error) {
	conns, err := psnet.ConnectionsWithContext(ctx, "tcp")
	if err != nil {
		return nil, err
	}

	for _, conn := range conns {
		if conn.Status != "LISTEN" || conn.Laddr.Port != uint32(port) {
			continue
		}
		if !bindCovers(conn.Laddr.IP, host) {
			continue
		}

		lst := &Listener{PID: conn.Pid}
		if conn.Pid > 0 {
			if proc, err := process.NewProcessWithContext(ctx, conn.Pid); err == nil {
				if name, err := proc.NameWithContext(ctx); err == nil {
					lst.Process = name
				}
			}
		}
		return lst, nil
	}

	return nil, nil
}

// bindCovers reports whether a socket bound to bindIP accepts connections
// aimed at host. Wildcard binds cover everything.
func bindCovers(bindIP, host string) bool {
	switch bindIP {
	case "", "0.0.0.0", "::", "*":
		return true
	}
	if bindIP == host {
		return true
	}
	// Loopback aliases (127.0.0.1, ::1, localhost) all reach each other.
	return isLoopback(bindIP) && isLoopback(host)
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// DialProber detects a listener by attempting a connection. A refused or
// timed-out dial means nothing is listening; it cannot identify the owner.
type DialProber struct {
	Timeout time.Duration
}

func (p *DialProber) Listening(ctx context.Context, host string, port int) (*Listener, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		// Refused, timed out, unreachable: all read as "no listener".
		return nil, nil
	}
	conn.Close()
	return &Listener{}, nil
}

// chain tries each prober in order, falling through on probe errors.
type chain []Prober

func (c chain) Listening(ctx context.Context, host string, port int) (*Listener, error) {
	var lastErr error
	for _, p := range c {
		lst, err := p.Listening(ctx, host, port)
		if err != nil {
			lastErr = err
			continue
		}
		return lst, nil
	}
	return nil, lastErr
}
