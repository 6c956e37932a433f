package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/netip"
	"time"

	"github.com/go-iso15118/hlc/pkg/v2gtp"
)

// DialTCP opens a plain HLC stream to addr, used when the session
// negotiated no_tls (spec §4.2).
func DialTCP(ctx context.Context, addr netip.AddrPort) (net.Conn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp6", addr.String())
	if err != nil {
		return nil, fmt.Errorf("transport: dial tcp %s: %w", addr, err)
	}
	return conn, nil
}

// DialTLS opens a TLS-wrapped HLC stream to addr using cfg, which a
// caller builds from pkg/pki's Dialect2Profile/Dialect20Profile plus the
// session's selected identity certificate.
func DialTLS(ctx context.Context, addr netip.AddrPort, cfg *tls.Config) (net.Conn, error) {
	d := tls.Dialer{Config: cfg}
	conn, err := d.DialContext(ctx, "tcp6", addr.String())
	if err != nil {
		return nil, fmt.Errorf("transport: dial tls %s: %w", addr, err)
	}
	return conn, nil
}

// ListenTCP binds an ephemeral TCP port for the plain-HLC case. The
// chosen port is advertised to EVCCs via the SDP Server's Endpoint.
func ListenTCP() (net.Listener, error) {
	ln, err := net.Listen("tcp6", "[::]:0")
	if err != nil {
		return nil, fmt.Errorf("transport: listen tcp: %w", err)
	}
	return ln, nil
}

// ListenTLS binds an ephemeral TCP port and wraps every accepted
// connection in a TLS handshake using cfg (spec §4.7 TLS identity).
func ListenTLS(cfg *tls.Config) (net.Listener, error) {
	ln, err := net.Listen("tcp6", "[::]:0")
	if err != nil {
		return nil, fmt.Errorf("transport: listen tls: %w", err)
	}
	return tls.NewListener(ln, cfg), nil
}

// Endpoint resolves ln's bound address as a netip.AddrPort suitable for
// an SDPResponse, substituting addr (the interface's link-local address)
// for an unspecified listen address.
func Endpoint(ln net.Listener, addr netip.Addr) (netip.AddrPort, error) {
	tcpAddr, ok := ln.Addr().(*net.TCPAddr)
	if !ok {
		return netip.AddrPort{}, fmt.Errorf("transport: listener address %v is not TCP", ln.Addr())
	}
	return netip.AddrPortFrom(addr, uint16(tcpAddr.Port)), nil
}

// ReadFrame reads one v2gtp frame from conn, bounding the read with
// deadline so a stalled peer cannot hang the caller past its own timer
// (spec §8 invariant 2: every blocking wait has a timeout leg).
func ReadFrame(conn net.Conn, deadline time.Time) (v2gtp.Frame, error) {
	if err := conn.SetReadDeadline(deadline); err != nil {
		return v2gtp.Frame{}, fmt.Errorf("transport: set read deadline: %w", err)
	}
	return v2gtp.ReadFrame(conn)
}

// WriteFrame writes one v2gtp frame to conn, bounding the write with a
// send-side deadline so a stalled peer cannot hang the caller forever.
func WriteFrame(conn net.Conn, f v2gtp.Frame, deadline time.Time) error {
	if err := conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("transport: set write deadline: %w", err)
	}
	return v2gtp.WriteFrame(conn, f)
}
