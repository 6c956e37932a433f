package codec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-iso15118/hlc/pkg/codec"
	"github.com/go-iso15118/hlc/pkg/message"
)

// roundTrip encodes req, frames it, decodes it back against (kind,
// isRequest) and returns the typed body, mirroring the teacher's
// exi_test.go roundTrip helper.
func roundTrip(t *testing.T, body message.Body, kind message.Kind, isRequest bool) message.Body {
	t.Helper()
	frame, err := codec.Encode(message.Message{Header: codec.HeaderOf(body), Body: body})
	require.NoError(t, err)

	env, err := codec.Decode(frame, kind, isRequest)
	require.NoError(t, err)
	return env.Message.Body
}

func TestCodec_Dialect2_SessionSetupRoundTrip(t *testing.T) {
	req := &message.SessionSetupReq{
		Header: message.Header{SessionID: [8]byte{1, 2, 3}},
		EVCCID: []byte{0xDE, 0xAD, 0xBE, 0xEF},
	}
	got := roundTrip(t, req, message.KindSessionSetup, true)
	require.Equal(t, req, got)

	res := &message.SessionSetupRes{
		Header:       message.Header{SessionID: [8]byte{1, 2, 3}},
		ResponseCode: message.ResponseOKNewSessionEstablished,
		EVSEID:       "EVSE-001",
		Timestamp:    1700000000,
	}
	gotRes := roundTrip(t, res, message.KindSessionSetup, false)
	require.Equal(t, res, gotRes)
}

func TestCodec_Dialect2_SupportedAppProtocolRoundTrip(t *testing.T) {
	req := &message.SupportedAppProtocolReq{
		Protocols: []message.AppProtocol{
			{Namespace: "urn:iso:15118:2:2013:MsgDef-2", Major: 2, Minor: 0, SchemaID: 1},
			{Namespace: "urn:iso:std:iso:15118:-20", Major: 1, Minor: 0, SchemaID: 2},
		},
	}
	got := roundTrip(t, req, message.KindSupportedAppProtocol, true)
	require.Equal(t, req, got)
}

func TestCodec_Dialect2_ChargeLoop_DC_CurrentDemand(t *testing.T) {
	req := &message.CurrentDemandReq{
		Header:            message.Header{SessionID: [8]byte{9}},
		EVTargetCurrentA:  32.5,
		EVTargetVoltageV:  400,
		ChargingComplete:  false,
	}
	frame, err := codec.Encode(message.Message{Header: codec.HeaderOf(req), Body: req})
	require.NoError(t, err)

	env, err := codec.DecodeChargeLoop2(frame, true, true)
	require.NoError(t, err)
	require.Equal(t, req, env.Message.Body)
}

func TestCodec_Dialect2_ChargeLoop_AC_ChargingStatus(t *testing.T) {
	req := &message.ChargingStatusReq{
		Header: message.Header{SessionID: [8]byte{9}},
	}
	frame, err := codec.Encode(message.Message{Header: codec.HeaderOf(req), Body: req})
	require.NoError(t, err)

	env, err := codec.DecodeChargeLoop2(frame, false, true)
	require.NoError(t, err)
	require.Equal(t, req, env.Message.Body)
}

func TestCodec_Dialect20_SessionSetupRoundTrip(t *testing.T) {
	req := &message.SessionSetupReq20{
		Header: message.Header{SessionID: [8]byte{7}, Timestamp: 1700000001},
		EVCCID: []byte("EVCC-20-001"),
	}
	got := roundTrip(t, req, message.KindSessionSetup, true)
	require.Equal(t, req, got)
}

func TestCodec_Decode_RejectsWrongPayloadType(t *testing.T) {
	req := &message.SessionSetupReq{Header: message.Header{SessionID: [8]byte{1}}, EVCCID: []byte{1}}
	frame, err := codec.Encode(message.Message{Header: codec.HeaderOf(req), Body: req})
	require.NoError(t, err)

	// A frame whose payload type names no known dialect must fail rather
	// than silently returning a mistyped body.
	frame.PayloadType = 0x9999
	_, err = codec.Decode(frame, message.KindSessionSetup, true)
	require.Error(t, err)
}
