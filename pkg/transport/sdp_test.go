package transport_test

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-iso15118/hlc/pkg/transport"
)

func TestRequest_MarshalUnmarshalRoundTrip(t *testing.T) {
	req := transport.Request{Security: transport.SecurityTLS, Transport: transport.TransportTCP}
	got, err := transport.UnmarshalRequest(req.Marshal())
	require.NoError(t, err)
	require.Equal(t, req, got)
}

func TestUnmarshalRequest_RejectsWrongLength(t *testing.T) {
	_, err := transport.UnmarshalRequest([]byte{1})
	require.Error(t, err)
}

func TestResponse_MarshalUnmarshalRoundTrip(t *testing.T) {
	resp := transport.Response{
		Security:  transport.SecurityNoTLS,
		Transport: transport.TransportTCP,
		Endpoint:  netip.MustParseAddrPort("[fe80::1]:15118"),
	}
	got, err := transport.UnmarshalResponse(resp.Marshal())
	require.NoError(t, err)
	require.Equal(t, resp, got)
}

func TestResponse_RefusedRoundTrip(t *testing.T) {
	resp := transport.Response{Refused: true}
	got, err := transport.UnmarshalResponse(resp.Marshal())
	require.NoError(t, err)
	require.True(t, got.Refused)
}

func TestUnmarshalResponse_RejectsWrongLength(t *testing.T) {
	_, err := transport.UnmarshalResponse([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestDefaultRetryPolicy(t *testing.T) {
	p := transport.DefaultRetryPolicy()
	require.Equal(t, 50, p.MaxRetries)
	require.Less(t, p.Initial, p.Cap)
}
