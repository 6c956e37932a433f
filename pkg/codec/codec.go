// Package codec implements the EXI-like encode/decode layer for ISO 15118
// messages (spec §4.7 "Message codec"). It does not implement the ISO EXI
// grammars verbatim; like the teacher codec it adopts a simplified,
// deterministic bit-packed scheme with the same shape: fixed field order per
// message kind, a presence bit ahead of every optional field, and a
// length-prefixed repeating group. Dispatch is keyed on (dialect, kind,
// isRequest), mirroring the teacher's per-phase encode/decode tables.
package codec

import (
	"fmt"
	"reflect"

	"github.com/go-iso15118/hlc/pkg/bitstream"
	"github.com/go-iso15118/hlc/pkg/message"
	"github.com/go-iso15118/hlc/pkg/v2gtp"
)

// initialBufferSize is a starting guess for the write buffer; WriteOctet
// returns ErrOverflow if it is exceeded, in which case callers should retry
// with a larger buffer. Most HLC messages fit comfortably under 2KiB.
const initialBufferSize = 4096

// Encode renders msg as an EXI-like bitstream and wraps it in a v2gtp frame
// ready to write to the wire.
func Encode(msg message.Message) (v2gtp.Frame, error) {
	body := msg.Body
	dialect := body.Dialect()

	bs := bitstream.NewWriter(initialBufferSize)
	if err := encodeBody(bs, msg.Header, body); err != nil {
		return v2gtp.Frame{}, wrapErr("encode", err)
	}

	pt, err := v2gtp.PayloadTypeForDialect(uint8(dialect))
	if err != nil {
		return v2gtp.Frame{}, wrapErr("encode", err)
	}
	return v2gtp.Frame{PayloadType: pt, Body: bs.Bytes()}, nil
}

// Decode parses a v2gtp frame body into a typed Envelope. kind and
// isRequest disambiguate which concrete Go type to produce for payload
// types that carry more than one message kind on the wire (the router
// supplies these from the session's expected-next-message state, as the
// wire format itself carries no explicit kind tag — see spec §4.7).
func Decode(frame v2gtp.Frame, kind message.Kind, isRequest bool) (message.Envelope, error) {
	var dialect message.Dialect
	switch frame.PayloadType {
	case v2gtp.PayloadEXI2:
		dialect = message.Dialect2
	case v2gtp.PayloadEXI20:
		dialect = message.Dialect20
	default:
		return message.Envelope{}, wrapErr("decode", fmt.Errorf("unsupported payload type %s", frame.PayloadType))
	}

	bs := bitstream.NewReader(frame.Body)
	body, err := decodeBody(bs, dialect, kind, isRequest)
	if err != nil {
		return message.Envelope{}, wrapErr("decode", err)
	}
	return message.Envelope{Dialect: dialect, Message: message.Message{Header: headerOf(body), Body: body}}, nil
}

// HeaderOf extracts the embedded message.Header from any concrete Body
// implementation. Exported for callers (pkg/evcc, pkg/secc) that build a
// request body via a struct literal and need the Header they just set
// without re-threading it through a second return value.
func HeaderOf(body message.Body) message.Header {
	return headerOf(body)
}

// headerOf extracts the Header embedded in any Body value. Every concrete
// message type stores it as the exported Header field; Body itself does
// not expose it since the router and state machines only need Kind,
// Dialect, and IsRequest from the interface.
func headerOf(body message.Body) message.Header {
	v := reflect.ValueOf(body)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	f := v.FieldByName("Header")
	if !f.IsValid() {
		return message.Header{}
	}
	h, _ := f.Interface().(message.Header)
	return h
}

func encodeBody(bs *bitstream.Stream, _ message.Header, body message.Body) error {
	switch v := body.(type) {
	// -2
	case *message.SupportedAppProtocolReq:
		return encodeSupportedAppProtocolReq(bs, v)
	case *message.SupportedAppProtocolRes:
		return encodeSupportedAppProtocolRes(bs, v)
	case *message.SessionSetupReq:
		return encodeSessionSetupReq(bs, v)
	case *message.SessionSetupRes:
		return encodeSessionSetupRes(bs, v)
	case *message.ServiceDiscoveryReq:
		return encodeServiceDiscoveryReq(bs, v)
	case *message.ServiceDiscoveryRes:
		return encodeServiceDiscoveryRes(bs, v)
	case *message.ServiceDetailReq:
		return encodeServiceDetailReq(bs, v)
	case *message.ServiceDetailRes:
		return encodeServiceDetailRes(bs, v)
	case *message.PaymentServiceSelectionReq:
		return encodePaymentServiceSelectionReq(bs, v)
	case *message.PaymentServiceSelectionRes:
		return encodePaymentServiceSelectionRes(bs, v)
	case *message.PaymentDetailsReq:
		return encodePaymentDetailsReq(bs, v)
	case *message.PaymentDetailsRes:
		return encodePaymentDetailsRes(bs, v)
	case *message.CertificateInstallationReq:
		return encodeCertificateInstallationReq(bs, v)
	case *message.CertificateInstallationRes:
		return encodeCertificateInstallationRes(bs, v)
	case *message.AuthorizationReq:
		return encodeAuthorizationReq(bs, v)
	case *message.AuthorizationRes:
		return encodeAuthorizationRes(bs, v)
	case *message.ChargeParameterDiscoveryReq:
		return encodeChargeParameterDiscoveryReq(bs, v)
	case *message.ChargeParameterDiscoveryRes:
		return encodeChargeParameterDiscoveryRes(bs, v)
	case *message.CableCheckReq:
		return encodeCableCheckReq(bs, v)
	case *message.CableCheckRes:
		return encodeCableCheckRes(bs, v)
	case *message.PreChargeReq:
		return encodePreChargeReq(bs, v)
	case *message.PreChargeRes:
		return encodePreChargeRes(bs, v)
	case *message.PowerDeliveryReq:
		return encodePowerDeliveryReq(bs, v)
	case *message.PowerDeliveryRes:
		return encodePowerDeliveryRes(bs, v)
	case *message.CurrentDemandReq:
		return encodeCurrentDemandReq(bs, v)
	case *message.CurrentDemandRes:
		return encodeCurrentDemandRes(bs, v)
	case *message.ChargingStatusReq:
		return encodeChargingStatusReq(bs, v)
	case *message.ChargingStatusRes:
		return encodeChargingStatusRes(bs, v)
	case *message.WeldingDetectionReq:
		return encodeWeldingDetectionReq(bs, v)
	case *message.WeldingDetectionRes:
		return encodeWeldingDetectionRes(bs, v)
	case *message.SessionStopReq:
		return encodeSessionStopReq(bs, v)
	case *message.SessionStopRes:
		return encodeSessionStopRes(bs, v)

	// -20
	case *message.SessionSetupReq20:
		return encodeSessionSetupReq20(bs, v)
	case *message.SessionSetupRes20:
		return encodeSessionSetupRes20(bs, v)
	case *message.AuthorizationSetupReq20:
		return encodeAuthorizationSetupReq20(bs, v)
	case *message.AuthorizationSetupRes20:
		return encodeAuthorizationSetupRes20(bs, v)
	case *message.AuthorizationReq20:
		return encodeAuthorizationReq20(bs, v)
	case *message.AuthorizationRes20:
		return encodeAuthorizationRes20(bs, v)
	case *message.ServiceDiscoveryReq20:
		return encodeServiceDiscoveryReq20(bs, v)
	case *message.ServiceDiscoveryRes20:
		return encodeServiceDiscoveryRes20(bs, v)
	case *message.ServiceDetailReq20:
		return encodeServiceDetailReq20(bs, v)
	case *message.ServiceDetailRes20:
		return encodeServiceDetailRes20(bs, v)
	case *message.ServiceSelectionReq20:
		return encodeServiceSelectionReq20(bs, v)
	case *message.ServiceSelectionRes20:
		return encodeServiceSelectionRes20(bs, v)
	case *message.CertificateInstallationReq20:
		return encodeCertificateInstallationReq20(bs, v)
	case *message.CertificateInstallationRes20:
		return encodeCertificateInstallationRes20(bs, v)
	case *message.ScheduleExchangeReq20:
		return encodeScheduleExchangeReq20(bs, v)
	case *message.ScheduleExchangeRes20:
		return encodeScheduleExchangeRes20(bs, v)
	case *message.CableCheckReq20:
		return encodeCableCheckReq20(bs, v)
	case *message.CableCheckRes20:
		return encodeCableCheckRes20(bs, v)
	case *message.PreChargeReq20:
		return encodePreChargeReq20(bs, v)
	case *message.PreChargeRes20:
		return encodePreChargeRes20(bs, v)
	case *message.PowerDeliveryReq20:
		return encodePowerDeliveryReq20(bs, v)
	case *message.PowerDeliveryRes20:
		return encodePowerDeliveryRes20(bs, v)
	case *message.ChargeLoopReq20:
		return encodeChargeLoopReq20(bs, v)
	case *message.ChargeLoopRes20:
		return encodeChargeLoopRes20(bs, v)
	case *message.VehicleCheckInReq20:
		return encodeVehicleCheckInReq20(bs, v)
	case *message.VehicleCheckInRes20:
		return encodeVehicleCheckInRes20(bs, v)
	case *message.VehicleCheckOutReq20:
		return encodeVehicleCheckOutReq20(bs, v)
	case *message.VehicleCheckOutRes20:
		return encodeVehicleCheckOutRes20(bs, v)
	case *message.MeteringConfirmationReq20:
		return encodeMeteringConfirmationReq20(bs, v)
	case *message.MeteringConfirmationRes20:
		return encodeMeteringConfirmationRes20(bs, v)
	case *message.SessionStopReq20:
		return encodeSessionStopReq20(bs, v)
	case *message.SessionStopRes20:
		return encodeSessionStopRes20(bs, v)

	default:
		return fmt.Errorf("codec: unknown body type %T", body)
	}
}

// DecodeChargeLoop2 decodes a -2 charge-loop frame as CurrentDemand (DC) or
// ChargingStatus (AC) depending on isDC. KindChargeLoop carries both on the
// wire with no distinguishing tag, so unlike every other -2 kind this one
// cannot go through Decode: callers that know the session's negotiated
// energy transfer mode (pkg/evcc, pkg/secc) use this instead.
func DecodeChargeLoop2(frame v2gtp.Frame, isDC bool, isRequest bool) (message.Envelope, error) {
	if frame.PayloadType != v2gtp.PayloadEXI2 {
		return message.Envelope{}, wrapErr("decode", fmt.Errorf("unsupported payload type %s for -2 charge loop", frame.PayloadType))
	}
	bs := bitstream.NewReader(frame.Body)
	body, err := decodeChargeLoop2(bs, isDC, isRequest)
	if err != nil {
		return message.Envelope{}, wrapErr("decode", err)
	}
	return message.Envelope{Dialect: message.Dialect2, Message: message.Message{Header: headerOf(body), Body: body}}, nil
}

func decodeBody(bs *bitstream.Stream, dialect message.Dialect, kind message.Kind, isRequest bool) (message.Body, error) {
	if dialect == message.Dialect2 {
		return decodeBody2(bs, kind, isRequest)
	}
	return decodeBody20(bs, kind, isRequest)
}

func decodeBody2(bs *bitstream.Stream, kind message.Kind, isRequest bool) (message.Body, error) {
	switch kind {
	case message.KindSupportedAppProtocol:
		if isRequest {
			return decodeSupportedAppProtocolReq(bs)
		}
		return decodeSupportedAppProtocolRes(bs)
	case message.KindSessionSetup:
		if isRequest {
			return decodeSessionSetupReq(bs)
		}
		return decodeSessionSetupRes(bs)
	case message.KindServiceDiscovery:
		if isRequest {
			return decodeServiceDiscoveryReq(bs)
		}
		return decodeServiceDiscoveryRes(bs)
	case message.KindServiceDetail:
		if isRequest {
			return decodeServiceDetailReq(bs)
		}
		return decodeServiceDetailRes(bs)
	case message.KindServiceSelection:
		if isRequest {
			return decodePaymentServiceSelectionReq(bs)
		}
		return decodePaymentServiceSelectionRes(bs)
	case message.KindPaymentDetails:
		if isRequest {
			return decodePaymentDetailsReq(bs)
		}
		return decodePaymentDetailsRes(bs)
	case message.KindCertificateInstallation:
		if isRequest {
			return decodeCertificateInstallationReq(bs)
		}
		return decodeCertificateInstallationRes(bs)
	case message.KindAuthorization:
		if isRequest {
			return decodeAuthorizationReq(bs)
		}
		return decodeAuthorizationRes(bs)
	case message.KindChargeParameterDiscovery:
		if isRequest {
			return decodeChargeParameterDiscoveryReq(bs)
		}
		return decodeChargeParameterDiscoveryRes(bs)
	case message.KindCableCheck:
		if isRequest {
			return decodeCableCheckReq(bs)
		}
		return decodeCableCheckRes(bs)
	case message.KindPreCharge:
		if isRequest {
			return decodePreChargeReq(bs)
		}
		return decodePreChargeRes(bs)
	case message.KindPowerDelivery:
		if isRequest {
			return decodePowerDeliveryReq(bs)
		}
		return decodePowerDeliveryRes(bs)
	case message.KindWeldingDetection:
		if isRequest {
			return decodeWeldingDetectionReq(bs)
		}
		return decodeWeldingDetectionRes(bs)
	case message.KindSessionStop:
		if isRequest {
			return decodeSessionStopReq(bs)
		}
		return decodeSessionStopRes(bs)
	default:
		return nil, fmt.Errorf("codec: unsupported -2 kind %s", kind)
	}
}

// decodeChargeLoop2 disambiguates CurrentDemand (DC) from ChargingStatus
// (AC), which share KindChargeLoop. The router tracks which energy transfer
// mode the session negotiated and calls this directly instead of going
// through decodeBody2's generic dispatch.
func decodeChargeLoop2(bs *bitstream.Stream, isDC bool, isRequest bool) (message.Body, error) {
	if isDC {
		if isRequest {
			return decodeCurrentDemandReq(bs)
		}
		return decodeCurrentDemandRes(bs)
	}
	if isRequest {
		return decodeChargingStatusReq(bs)
	}
	return decodeChargingStatusRes(bs)
}

func decodeBody20(bs *bitstream.Stream, kind message.Kind, isRequest bool) (message.Body, error) {
	switch kind {
	case message.KindSessionSetup:
		if isRequest {
			return decodeSessionSetupReq20(bs)
		}
		return decodeSessionSetupRes20(bs)
	case message.KindAuthorizationSetup:
		if isRequest {
			return decodeAuthorizationSetupReq20(bs)
		}
		return decodeAuthorizationSetupRes20(bs)
	case message.KindAuthorization:
		if isRequest {
			return decodeAuthorizationReq20(bs)
		}
		return decodeAuthorizationRes20(bs)
	case message.KindServiceDiscovery:
		if isRequest {
			return decodeServiceDiscoveryReq20(bs)
		}
		return decodeServiceDiscoveryRes20(bs)
	case message.KindServiceDetail:
		if isRequest {
			return decodeServiceDetailReq20(bs)
		}
		return decodeServiceDetailRes20(bs)
	case message.KindServiceSelection:
		if isRequest {
			return decodeServiceSelectionReq20(bs)
		}
		return decodeServiceSelectionRes20(bs)
	case message.KindCertificateInstallation:
		if isRequest {
			return decodeCertificateInstallationReq20(bs)
		}
		return decodeCertificateInstallationRes20(bs)
	case message.KindChargeParameterDiscovery:
		if isRequest {
			return decodeScheduleExchangeReq20(bs)
		}
		return decodeScheduleExchangeRes20(bs)
	case message.KindCableCheck:
		if isRequest {
			return decodeCableCheckReq20(bs)
		}
		return decodeCableCheckRes20(bs)
	case message.KindPreCharge:
		if isRequest {
			return decodePreChargeReq20(bs)
		}
		return decodePreChargeRes20(bs)
	case message.KindPowerDelivery:
		if isRequest {
			return decodePowerDeliveryReq20(bs)
		}
		return decodePowerDeliveryRes20(bs)
	case message.KindChargeLoop:
		if isRequest {
			return decodeChargeLoopReq20(bs)
		}
		return decodeChargeLoopRes20(bs)
	case message.KindVehicleCheckIn:
		if isRequest {
			return decodeVehicleCheckInReq20(bs)
		}
		return decodeVehicleCheckInRes20(bs)
	case message.KindVehicleCheckOut:
		if isRequest {
			return decodeVehicleCheckOutReq20(bs)
		}
		return decodeVehicleCheckOutRes20(bs)
	case message.KindMeteringConfirmation:
		if isRequest {
			return decodeMeteringConfirmationReq20(bs)
		}
		return decodeMeteringConfirmationRes20(bs)
	case message.KindSessionStop:
		if isRequest {
			return decodeSessionStopReq20(bs)
		}
		return decodeSessionStopRes20(bs)
	default:
		return nil, fmt.Errorf("codec: unsupported -20 kind %s", kind)
	}
}
