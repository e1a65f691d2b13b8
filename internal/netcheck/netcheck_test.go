package netcheck

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listen binds a throwaway TCP listener on loopback and returns its port.
func listen(t *testing.T) (net.Listener, int) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })
	return ln, ln.Addr().(*net.TCPAddr).Port
}

// freePort returns a port nothing is listening on.
func freePort(t *testing.T) int {
	t.Helper()
	ln, port := listen(t)
	ln.Close()
	return port
}

func TestDialProber_FindsListener(t *testing.T) {
	_, port := listen(t)

	p := &DialProber{Timeout: time.Second}
	lst, err := p.Listening(context.Background(), "127.0.0.1", port)
	require.NoError(t, err)
	require.NotNil(t, lst)
	// Dial probing cannot identify the owner.
	assert.Zero(t, lst.PID)
}

func TestDialProber_NoListener(t *testing.T) {
	port := freePort(t)

	p := &DialProber{Timeout: time.Second}
	lst, err := p.Listening(context.Background(), "127.0.0.1", port)
	require.NoError(t, err)
	assert.Nil(t, lst)
}

func TestSocketTableProber_FindsListener(t *testing.T) {
	_, port := listen(t)

	p := &SocketTableProber{}
	lst, err := p.Listening(context.Background(), "127.0.0.1", port)
	if err != nil {
		t.Skipf("socket table not readable here: %v", err)
	}
	require.NotNil(t, lst)
}

func TestSocketTableProber_NoListener(t *testing.T) {
	port := freePort(t)

	p := &SocketTableProber{}
	lst, err := p.Listening(context.Background(), "127.0.0.1", port)
	if err != nil {
		t.Skipf("socket table not readable here: %v", err)
	}
	assert.Nil(t, lst)
}

func TestDefaultProber_FindsListener(t *testing.T) {
	_, port := listen(t)

	lst, err := New().Listening(context.Background(), "127.0.0.1", port)
	require.NoError(t, err)
	require.NotNil(t, lst)
}

type erroringProber struct{ err error }

func (p *erroringProber) Listening(context.Context, string, int) (*Listener, error) {
	return nil, p.err
}

type fixedProber struct{ lst *Listener }

func (p *fixedProber) Listening(context.Context, string, int) (*Listener, error) {
	return p.lst, nil
}

func TestChain_FallsThroughOnError(t *testing.T) {
	c := chain{
		&erroringProber{err: errors.New("proc unreadable")},
		&fixedProber{lst: &Listener{PID: 42}},
	}

	lst, err := c.Listening(context.Background(), "127.0.0.1", 5000)
	require.NoError(t, err)
	require.NotNil(t, lst)
	assert.Equal(t, int32(42), lst.PID)
}

func TestChain_AllFail(t *testing.T) {
	sentinel := errors.New("no dice")
	c := chain{
		&erroringProber{err: errors.New("first")},
		&erroringProber{err: sentinel},
	}

	lst, err := c.Listening(context.Background(), "127.0.0.1", 5000)
	assert.Nil(t, lst)
	assert.ErrorIs(t, err, sentinel)
}

func TestBindCovers(t *testing.T) {
	tests := []struct {
		bind, host string
		want       bool
	}{
		{"0.0.0.0", "127.0.0.1", true},
		{"::", "127.0.0.1", true},
		{"", "127.0.0.1", true},
		{"127.0.0.1", "127.0.0.1", true},
		{"::1", "127.0.0.1", true},
		{"127.0.0.1", "localhost", true},
		{"192.168.1.5", "192.168.1.5", true},
		{"192.168.1.5", "127.0.0.1", false},
	}

	for _, tt := range tests {
		if got := bindCovers(tt.bind, tt.host); got != tt.want {
			t.Errorf("bindCovers(%q, %q) = %v, want %v", tt.bind, tt.host, got, tt.want)
		}
	}
}
