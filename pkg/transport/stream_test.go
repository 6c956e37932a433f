package transport_test

import (
	"context"
	"net"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-iso15118/hlc/pkg/transport"
	"github.com/go-iso15118/hlc/pkg/v2gtp"
)

func TestListenTCP_DialTCP_FrameRoundTrip(t *testing.T) {
	ln, err := transport.ListenTCP()
	require.NoError(t, err)
	defer ln.Close()

	endpoint, err := transport.Endpoint(ln, netip.MustParseAddr("::1"))
	require.NoError(t, err)

	serverDone := make(chan error, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			serverDone <- err
			return
		}
		defer conn.Close()

		f, err := transport.ReadFrame(conn, time.Now().Add(5*time.Second))
		if err != nil {
			serverDone <- err
			return
		}
		serverDone <- transport.WriteFrame(conn, f, time.Now().Add(5*time.Second))
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, err := transport.DialTCP(ctx, endpoint)
	require.NoError(t, err)
	defer conn.Close()

	want := v2gtp.Frame{PayloadType: v2gtp.PayloadEXI2, Body: []byte("ping")}
	require.NoError(t, transport.WriteFrame(conn, want, time.Now().Add(5*time.Second)))

	got, err := transport.ReadFrame(conn, time.Now().Add(5*time.Second))
	require.NoError(t, err)
	require.Equal(t, want, got)

	require.NoError(t, <-serverDone)
}

func TestEndpoint_RejectsNonTCPListener(t *testing.T) {
	pc, err := net.ListenPacket("udp6", "[::1]:0")
	require.NoError(t, err)
	defer pc.Close()

	ln := fakeListener{addr: pc.LocalAddr()}
	_, err = transport.Endpoint(ln, netip.MustParseAddr("::1"))
	require.Error(t, err)
}

type fakeListener struct {
	addr net.Addr
}

func (fakeListener) Accept() (net.Conn, error) { return nil, net.ErrClosed }
func (fakeListener) Close() error              { return nil }
func (f fakeListener) Addr() net.Addr          { return f.addr }
