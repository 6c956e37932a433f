package v2gtp_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-iso15118/hlc/pkg/v2gtp"
)

func TestFrame_MarshalUnmarshalRoundTrip(t *testing.T) {
	f := v2gtp.Frame{PayloadType: v2gtp.PayloadEXI2, Body: []byte{0x01, 0x02, 0x03, 0x04}}
	buf := f.Marshal()
	require.Equal(t, v2gtp.HeaderLen+len(f.Body), len(buf))

	got, err := v2gtp.Unmarshal(buf)
	require.NoError(t, err)
	require.Equal(t, f, got)
}

func TestFrame_ReadWriteFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	f := v2gtp.Frame{PayloadType: v2gtp.PayloadEXI20, Body: []byte("hello")}

	require.NoError(t, v2gtp.WriteFrame(&buf, f))

	got, err := v2gtp.ReadFrame(&buf)
	require.NoError(t, err)
	require.Equal(t, f, got)
}

func TestFrame_EmptyBody(t *testing.T) {
	var buf bytes.Buffer
	f := v2gtp.Frame{PayloadType: v2gtp.PayloadSDPRequest, Body: nil}
	require.NoError(t, v2gtp.WriteFrame(&buf, f))

	got, err := v2gtp.ReadFrame(&buf)
	require.NoError(t, err)
	require.Equal(t, v2gtp.PayloadSDPRequest, got.PayloadType)
	require.Empty(t, got.Body)
}

func TestUnmarshal_RejectsVersionMismatch(t *testing.T) {
	f := v2gtp.Frame{PayloadType: v2gtp.PayloadEXI2, Body: []byte{0xAA}}
	buf := f.Marshal()
	buf[1] = 0x00 // corrupt the inverse-version byte

	_, err := v2gtp.Unmarshal(buf)
	require.ErrorIs(t, err, v2gtp.ErrMalformed)
}

func TestUnmarshal_RejectsLengthMismatch(t *testing.T) {
	f := v2gtp.Frame{PayloadType: v2gtp.PayloadEXI2, Body: []byte{0x01, 0x02}}
	buf := f.Marshal()
	buf = buf[:len(buf)-1] // drop the last body byte without fixing the length field

	_, err := v2gtp.Unmarshal(buf)
	require.ErrorIs(t, err, v2gtp.ErrMalformed)
}

func TestUnmarshal_RejectsOversizeLength(t *testing.T) {
	hdr := []byte{v2gtp.ProtocolVersion, v2gtp.ProtocolVersionInverse, 0x80, 0x01, 0xFF, 0xFF, 0xFF, 0xFF}
	_, err := v2gtp.Unmarshal(hdr)
	require.ErrorIs(t, err, v2gtp.ErrMalformed)
}

func TestPayloadTypeForDialect(t *testing.T) {
	pt, err := v2gtp.PayloadTypeForDialect(1)
	require.NoError(t, err)
	require.Equal(t, v2gtp.PayloadEXI2, pt)

	pt, err = v2gtp.PayloadTypeForDialect(2)
	require.NoError(t, err)
	require.Equal(t, v2gtp.PayloadEXI20, pt)

	_, err = v2gtp.PayloadTypeForDialect(99)
	require.Error(t, err)
}
