// Package transport implements the SDP discovery exchange over IPv6
// link-local UDP multicast and the TCP/TLS stream transport that carries
// the HLC session once SDP has resolved an endpoint (spec §4.2, §4.3).
package transport

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"time"

	"golang.org/x/net/ipv6"
)

// MulticastGroup and Port are fixed per the standard (spec §7 "wire
// layout"): IPv6 all-nodes link-scoped multicast, port 15118.
const (
	MulticastGroup = "ff02::1"
	Port           = 15118
)

// Security is the SDPRequest/SDPResponse security field.
type Security uint8

const (
	SecurityTLS Security = iota
	SecurityNoTLS
)

func (s Security) String() string {
	if s == SecurityTLS {
		return "tls"
	}
	return "no_tls"
}

// TransportProtocol is the SDPRequest/SDPResponse transport field. TCP is
// the only value the standard (and this module) supports.
type TransportProtocol uint8

const (
	TransportTCP TransportProtocol = iota
)

// Request is the fixed-size SDPRequest datagram (spec §3 "SDPRequest /
// SDPResponse").
type Request struct {
	Security  Security
	Transport TransportProtocol
}

// Marshal renders a Request as its 2-byte wire body.
func (r Request) Marshal() []byte {
	return []byte{byte(r.Security), byte(r.Transport)}
}

// UnmarshalRequest parses a Request from a received datagram.
func UnmarshalRequest(buf []byte) (Request, error) {
	if len(buf) != 2 {
		return Request{}, fmt.Errorf("transport: malformed SDPRequest (%d bytes)", len(buf))
	}
	return Request{Security: Security(buf[0]), Transport: TransportProtocol(buf[1])}, nil
}

// Response is the SDPResponse datagram: either the SECC's TCP endpoint,
// or a refusal when the requested security does not satisfy the SECC's
// policy (spec §4.3).
type Response struct {
	Security  Security
	Transport TransportProtocol
	Endpoint  netip.AddrPort
	Refused   bool
}

// refusedSecurity is a reserved Security value used to flag a refusal on
// the wire in place of a usable endpoint; there is no standard refusal
// code for this subset, so this module reserves one (spec §6 notes the
// standard wins on divergence for the authoritative values).
const refusedSecurity Security = 0xFF

// Marshal renders a Response as its 20-byte wire body: security(1) |
// transport(1) | address(16) | port(2).
func (r Response) Marshal() []byte {
	out := make([]byte, 20)
	if r.Refused {
		out[0] = byte(refusedSecurity)
		return out
	}
	out[0] = byte(r.Security)
	out[1] = byte(r.Transport)
	addr := r.Endpoint.Addr().As16()
	copy(out[2:18], addr[:])
	binary.BigEndian.PutUint16(out[18:20], r.Endpoint.Port())
	return out
}

// UnmarshalResponse parses a Response from a received datagram.
func UnmarshalResponse(buf []byte) (Response, error) {
	if len(buf) != 20 {
		return Response{}, fmt.Errorf("transport: malformed SDPResponse (%d bytes)", len(buf))
	}
	if Security(buf[0]) == refusedSecurity {
		return Response{Refused: true}, nil
	}
	var addrBytes [16]byte
	copy(addrBytes[:], buf[2:18])
	addr := netip.AddrFrom16(addrBytes)
	port := binary.BigEndian.Uint16(buf[18:20])
	return Response{
		Security:  Security(buf[0]),
		Transport: TransportProtocol(buf[1]),
		Endpoint:  netip.AddrPortFrom(addr, port),
	}, nil
}

// RetryPolicy governs the EVCC-side discovery retry cadence (spec §4.3:
// "initial 250 ms, capped at a dialect-specified maximum, 50 retries
// absolute").
type RetryPolicy struct {
	Initial    time.Duration
	Cap        time.Duration
	MaxRetries int
}

// DefaultRetryPolicy is the policy used unless a caller overrides it.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Initial: 250 * time.Millisecond, Cap: 4 * time.Second, MaxRetries: 50}
}

// ErrSDPFailure is returned once RetryPolicy.MaxRetries is exhausted
// without a response (spec §4.3 "SDPFailure").
var ErrSDPFailure = errors.New("transport: SDP discovery failed, retries exhausted")

// Discover sends req to the multicast group from iface, retrying per
// policy until a Response arrives or the retry budget is spent.
func Discover(ctx context.Context, iface *net.Interface, req Request, policy RetryPolicy) (Response, error) {
	conn, err := net.ListenUDP("udp6", &net.UDPAddr{Port: 0})
	if err != nil {
		return Response{}, fmt.Errorf("transport: sdp client socket: %w", err)
	}
	defer conn.Close()

	pc := ipv6.NewPacketConn(conn)
	if iface != nil {
		if err := pc.SetMulticastInterface(iface); err != nil {
			return Response{}, fmt.Errorf("transport: sdp multicast interface: %w", err)
		}
	}
	if err := pc.SetMulticastHopLimit(255); err != nil {
		return Response{}, fmt.Errorf("transport: sdp hop limit: %w", err)
	}

	zone := ""
	if iface != nil {
		zone = iface.Name
	}
	dst := &net.UDPAddr{IP: net.ParseIP(MulticastGroup), Port: Port, Zone: zone}

	backoff := policy.Initial
	buf := make([]byte, 64)
	for attempt := 0; attempt < policy.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return Response{}, ctx.Err()
		}
		if _, err := conn.WriteToUDP(req.Marshal(), dst); err != nil {
			return Response{}, fmt.Errorf("transport: sdp send: %w", err)
		}
		deadline := time.Now().Add(backoff)
		if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
			deadline = d
		}
		conn.SetReadDeadline(deadline)

		n, _, err := conn.ReadFromUDP(buf)
		if err == nil {
			resp, perr := UnmarshalResponse(buf[:n])
			if perr == nil {
				return resp, nil
			}
		}
		if ctx.Err() != nil {
			return Response{}, ctx.Err()
		}
		backoff *= 2
		if backoff > policy.Cap {
			backoff = policy.Cap
		}
	}
	return Response{}, ErrSDPFailure
}

// Server answers SDPRequests on the link-local multicast group with the
// endpoint the TCP/TLS listener was bound to, refusing any request that
// conflicts with EnforceTLS (spec §4.3: "it never silently drops").
type Server struct {
	conn       *net.UDPConn
	pc         *ipv6.PacketConn
	EnforceTLS bool
	Endpoint   netip.AddrPort
}

// Listen joins the multicast group on iface and binds the SDP port.
func Listen(iface *net.Interface, enforceTLS bool, endpoint netip.AddrPort) (*Server, error) {
	conn, err := net.ListenUDP("udp6", &net.UDPAddr{Port: Port})
	if err != nil {
		return nil, fmt.Errorf("transport: sdp server socket: %w", err)
	}
	pc := ipv6.NewPacketConn(conn)
	group := &net.UDPAddr{IP: net.ParseIP(MulticastGroup)}
	if err := pc.JoinGroup(iface, group); err != nil {
		conn.Close()
		return nil, fmt.Errorf("transport: sdp join group: %w", err)
	}
	if err := pc.SetMulticastHopLimit(255); err != nil {
		conn.Close()
		return nil, fmt.Errorf("transport: sdp hop limit: %w", err)
	}
	return &Server{conn: conn, pc: pc, EnforceTLS: enforceTLS, Endpoint: endpoint}, nil
}

// Serve answers requests until ctx is cancelled or the socket errors.
func (s *Server) Serve(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.conn.Close()
		case <-done:
		}
	}()

	buf := make([]byte, 64)
	for {
		n, src, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("transport: sdp read: %w", err)
		}
		req, err := UnmarshalRequest(buf[:n])
		if err != nil {
			continue
		}
		resp := s.respond(req)
		if _, err := s.conn.WriteToUDP(resp.Marshal(), src); err != nil {
			return fmt.Errorf("transport: sdp respond: %w", err)
		}
	}
}

func (s *Server) respond(req Request) Response {
	if req.Security == SecurityNoTLS && s.EnforceTLS {
		return Response{Refused: true}
	}
	return Response{Security: req.Security, Transport: TransportTCP, Endpoint: s.Endpoint}
}

// Close releases the multicast socket.
func (s *Server) Close() error {
	return s.conn.Close()
}
