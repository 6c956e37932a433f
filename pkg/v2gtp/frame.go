// Package v2gtp implements the Vehicle-to-Grid Transfer Protocol framing
// that wraps every SDP and EXI payload on the wire (spec §3 "V2GTP frame",
// §6 frame layout).
package v2gtp

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ProtocolVersion and its bitwise inverse are fixed per the standard.
const (
	ProtocolVersion        byte = 0x01
	ProtocolVersionInverse byte = 0xFE
	HeaderLen                   = 8
)

// PayloadType enumerates the v2gtp payload_type field. Values are
// authoritative per the standard; this table is this module's best
// transcription of it (spec §6 notes the standard wins on divergence).
type PayloadType uint16

const (
	PayloadSDPRequest  PayloadType = 0x9000
	PayloadSDPResponse PayloadType = 0x9001
	PayloadEXI2        PayloadType = 0x8001
	PayloadEXI20       PayloadType = 0x8002
)

func (p PayloadType) String() string {
	switch p {
	case PayloadSDPRequest:
		return "SDPRequest"
	case PayloadSDPResponse:
		return "SDPResponse"
	case PayloadEXI2:
		return "EXI-2"
	case PayloadEXI20:
		return "EXI-20"
	default:
		return fmt.Sprintf("PayloadType(0x%04x)", uint16(p))
	}
}

// MaxFrameLen bounds a single frame's body length. The exact per-dialect
// maximum is left to the standard (spec §9 open question); this is a
// generous ceiling used only to reject grossly malformed length fields
// before allocating a read buffer.
const MaxFrameLen = 16 * 1024 * 1024

// ErrMalformed is returned by Unmarshal/ReadFrame for any header that
// fails the version, inverse-version, or length-bound checks.
var ErrMalformed = fmt.Errorf("v2gtp: malformed frame header")

// Frame is a decoded v2gtp datagram: header fields plus body bytes (the
// EXI bitstream, or the fixed-size SDP payload).
type Frame struct {
	PayloadType PayloadType
	Body        []byte
}

// Marshal renders f as the wire bytes: 0x01 | 0xFE | payload_type(2B) |
// length(4B) | body.
func (f Frame) Marshal() []byte {
	out := make([]byte, HeaderLen+len(f.Body))
	out[0] = ProtocolVersion
	out[1] = ProtocolVersionInverse
	binary.BigEndian.PutUint16(out[2:4], uint16(f.PayloadType))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(f.Body)))
	copy(out[HeaderLen:], f.Body)
	return out
}

// Unmarshal parses a complete frame (header + body) from buf. It rejects
// a version/inverse-version mismatch, a length field disagreeing with the
// remaining buffer, and a body exceeding MaxFrameLen.
func Unmarshal(buf []byte) (Frame, error) {
	if len(buf) < HeaderLen {
		return Frame{}, fmt.Errorf("%w: short header (%d bytes)", ErrMalformed, len(buf))
	}
	if buf[0] != ProtocolVersion || buf[1] != ProtocolVersionInverse {
		return Frame{}, fmt.Errorf("%w: version/inverse mismatch (0x%02x/0x%02x)", ErrMalformed, buf[0], buf[1])
	}
	pt := PayloadType(binary.BigEndian.Uint16(buf[2:4]))
	length := binary.BigEndian.Uint32(buf[4:8])
	if length > MaxFrameLen {
		return Frame{}, fmt.Errorf("%w: length %d exceeds maximum", ErrMalformed, length)
	}
	if len(buf)-HeaderLen != int(length) {
		return Frame{}, fmt.Errorf("%w: length field %d does not match body (%d bytes)", ErrMalformed, length, len(buf)-HeaderLen)
	}
	body := make([]byte, length)
	copy(body, buf[HeaderLen:])
	return Frame{PayloadType: pt, Body: body}, nil
}

// ReadFrame reassembles one frame from r: it first reads the fixed 8-byte
// header, validates it, then reads exactly length body bytes. Partial
// reads at either stage are handled by io.ReadFull, matching spec §4.2's
// requirement that partial reads be reassembled before reaching the codec.
func ReadFrame(r io.Reader) (Frame, error) {
	var hdr [HeaderLen]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Frame{}, err
	}
	if hdr[0] != ProtocolVersion || hdr[1] != ProtocolVersionInverse {
		return Frame{}, fmt.Errorf("%w: version/inverse mismatch (0x%02x/0x%02x)", ErrMalformed, hdr[0], hdr[1])
	}
	pt := PayloadType(binary.BigEndian.Uint16(hdr[2:4]))
	length := binary.BigEndian.Uint32(hdr[4:8])
	if length > MaxFrameLen {
		return Frame{}, fmt.Errorf("%w: length %d exceeds maximum", ErrMalformed, length)
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return Frame{}, err
	}
	return Frame{PayloadType: pt, Body: body}, nil
}

// WriteFrame marshals f and writes it to w in one call.
func WriteFrame(w io.Writer, f Frame) error {
	_, err := w.Write(f.Marshal())
	return err
}

// PayloadTypeForDialect maps a negotiated message dialect to the EXI
// payload type used to frame it. Callers pass message.Dialect2/Dialect20
// values from pkg/message; this package avoids importing pkg/message to
// keep framing independent of the message model, so the mapping is done
// with plain ints mirroring message.Dialect's underlying values.
func PayloadTypeForDialect(dialect uint8) (PayloadType, error) {
	switch dialect {
	case 1: // message.Dialect2
		return PayloadEXI2, nil
	case 2: // message.Dialect20
		return PayloadEXI20, nil
	default:
		return 0, fmt.Errorf("v2gtp: unknown dialect %d", dialect)
	}
}
