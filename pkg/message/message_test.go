package message_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-iso15118/hlc/pkg/message"
)

func TestDialect_String(t *testing.T) {
	require.Equal(t, "-2", message.Dialect2.String())
	require.Equal(t, "-20", message.Dialect20.String())
	require.Equal(t, "unknown", message.DialectUnknown.String())
}

func TestKind_String(t *testing.T) {
	require.Equal(t, "SessionSetup", message.KindSessionSetup.String())
	require.Equal(t, "SessionStop", message.KindSessionStop.String())
	require.Contains(t, message.Kind(250).String(), "Kind(250)")
}

func TestResponseCode_IsSuccess(t *testing.T) {
	require.True(t, message.ResponseOK.IsSuccess())
	require.True(t, message.ResponseOKNewSessionEstablished.IsSuccess())
	require.True(t, message.ResponseOKCertificateExpiresSoon.IsSuccess())
	require.False(t, message.ResponseFailed.IsSuccess())
	require.False(t, message.ResponseFailedSequenceError.IsSuccess())
}

func TestResponseCode_String(t *testing.T) {
	require.Equal(t, "OK", message.ResponseOK.String())
	require.Equal(t, "FAILED_ContactorError", message.ResponseFailedContactorError.String())
	require.Equal(t, "FAILED_Unknown", message.ResponseCode(200).String())
}

func TestSessionSetupReq_Identity(t *testing.T) {
	req := &message.SessionSetupReq{
		Header: message.Header{SessionID: [8]byte{1}},
		EVCCID: []byte{0xAB},
	}
	require.Equal(t, message.KindSessionSetup, req.Kind())
	require.Equal(t, message.Dialect2, req.Dialect())
	require.True(t, req.IsRequest())

	res := &message.SessionSetupRes{}
	require.False(t, res.IsRequest())
}

func TestSessionSetupReq20_Identity(t *testing.T) {
	req := &message.SessionSetupReq20{
		Header: message.Header{SessionID: [8]byte{1}},
		EVCCID: []byte("EVCC-20"),
	}
	require.Equal(t, message.KindSessionSetup, req.Kind())
	require.Equal(t, message.Dialect20, req.Dialect())
	require.True(t, req.IsRequest())
}
