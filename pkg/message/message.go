// Package message defines the typed ISO 15118 messages exchanged between
// EVCC and SECC, for both the -2 and -20 dialects. Each message carries a
// Header (session id and, for -20, a timestamp/signature slot), a Kind used
// by the router for (state, kind) lookups and by the codec for dispatch,
// and a dialect-specific body.
//
// Requests and responses of the same operation share a Kind; the dialect
// distinguishes which concrete Go type the body is.
package message

import "fmt"

// Dialect identifies which ISO 15118 application layer a session has
// negotiated. It is fixed for the life of a session once chosen during
// SupportedAppProtocol negotiation.
type Dialect uint8

const (
	// DialectUnknown is the zero value, used before negotiation completes.
	DialectUnknown Dialect = iota
	// Dialect2 is ISO 15118-2 (legacy).
	Dialect2
	// Dialect20 is ISO 15118-20 (current).
	Dialect20
)

func (d Dialect) String() string {
	switch d {
	case Dialect2:
		return "-2"
	case Dialect20:
		return "-20"
	default:
		return "unknown"
	}
}

// Kind identifies an operation (request/response pair) independent of
// dialect. The router keys transitions on (state, Kind); the codec keys
// encode/decode dispatch on (Dialect, Kind, isRequest).
type Kind uint8

const (
	KindUnknown Kind = iota
	KindSupportedAppProtocol
	KindSessionSetup
	KindServiceDiscovery
	KindServiceDetail
	KindServiceSelection // PaymentServiceSelection (-2) / ServiceSelection (-20)
	KindPaymentDetails   // -2 only
	KindAuthorizationSetup // -20 only
	KindCertificateInstallation
	KindAuthorization
	KindChargeParameterDiscovery // -2 ChargeParameterDiscovery / -20 ScheduleExchange
	KindCableCheck
	KindPreCharge
	KindPowerDelivery
	KindChargeLoop // -2 CurrentDemand/ChargingStatus / -20 *_ChargeLoop
	KindWeldingDetection // -2 only
	KindVehicleCheckIn   // -20 only, supplemented
	KindVehicleCheckOut  // -20 only, supplemented
	KindMeteringConfirmation // -20 only, supplemented
	KindSessionStop
)

func (k Kind) String() string {
	names := [...]string{
		"Unknown", "SupportedAppProtocol", "SessionSetup", "ServiceDiscovery",
		"ServiceDetail", "ServiceSelection", "PaymentDetails", "AuthorizationSetup",
		"CertificateInstallation", "Authorization", "ChargeParameterDiscovery",
		"CableCheck", "PreCharge", "PowerDelivery", "ChargeLoop",
		"WeldingDetection", "VehicleCheckIn", "VehicleCheckOut",
		"MeteringConfirmation", "SessionStop",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Header is carried by every message body. SessionID is the 8-byte
// identifier the SECC assigns at SessionSetup and sets on its responses
// from then on. pkg/evcc records it from the SessionSetup response but
// builds its requests without a Header, so EVCC requests carry a zero
// SessionID.
type Header struct {
	SessionID [8]byte
	// Timestamp is populated by -20 messages (seconds since epoch) and left
	// zero by -2 messages, which do not carry one at the header level.
	Timestamp int64
	// Signature is present only on PnC-flow messages carrying a detached
	// signature over a canonical-EXI hash of selected fragments (see
	// pkg/pki). Nil when the message is unsigned.
	Signature *Signature
}

// Signature is a detached signature over a canonical-EXI encoding of the
// fields it protects, per ISO 15118 Annex on message signing.
type Signature struct {
	SignedFragmentIDs []string
	Value             []byte
}

// Body is implemented by every message's concrete payload type. IsRequest
// distinguishes a request from its paired response so the router and codec
// do not need reflection.
type Body interface {
	Kind() Kind
	Dialect() Dialect
	IsRequest() bool
}

// Message pairs a Header with a Body. It is the unit the router and the
// state machines operate on.
type Message struct {
	Header Header
	Body   Body
}

// Envelope is what codec.Decode produces: a fully-typed
// message tagged with the dialect it was read against.
type Envelope struct {
	Dialect Dialect
	Message Message
}

// ResponseCode enumerates the ISO 15118 response codes carried by nearly
// every *Res message. OK, OK_NewSessionEstablished and
// OK_CertificateExpiresSoon are successes (see IsSuccess); FAILED_* values
// are the failure family from spec §7.
type ResponseCode uint8

const (
	ResponseOK ResponseCode = iota
	ResponseOKNewSessionEstablished
	ResponseOKCertificateExpiresSoon
	ResponseFailed
	ResponseFailedSequenceError
	ResponseFailedUnknownSession
	ResponseFailedCertificateExpired
	ResponseFailedCertChainError
	ResponseFailedSignatureError
	ResponseFailedNoEnergyTransferServiceSelected
	ResponseFailedChallengeInvalid
	ResponseFailedContactorError
)

// IsSuccess reports whether code is one of the OK_* family.
func (c ResponseCode) IsSuccess() bool {
	return c == ResponseOK || c == ResponseOKNewSessionEstablished || c == ResponseOKCertificateExpiresSoon
}

func (c ResponseCode) String() string {
	names := map[ResponseCode]string{
		ResponseOK:                             "OK",
		ResponseOKNewSessionEstablished:         "OK_NewSessionEstablished",
		ResponseOKCertificateExpiresSoon:        "OK_CertificateExpiresSoon",
		ResponseFailed:                          "FAILED",
		ResponseFailedSequenceError:             "FAILED_SequenceError",
		ResponseFailedUnknownSession:            "FAILED_UnknownSession",
		ResponseFailedCertificateExpired:        "FAILED_CertificateExpired",
		ResponseFailedCertChainError:            "FAILED_CertChainError",
		ResponseFailedSignatureError:            "FAILED_SignatureError",
		ResponseFailedNoEnergyTransferServiceSelected: "FAILED_NoEnergyTransferServiceSelected",
		ResponseFailedChallengeInvalid:          "FAILED_ChallengeInvalid",
		ResponseFailedContactorError:            "FAILED_ContactorError",
	}
	if n, ok := names[c]; ok {
		return n
	}
	return "FAILED_Unknown"
}

// EnergyTransferMode enumerates the transfer modes a service can offer.
type EnergyTransferMode uint8

const (
	ModeACSinglePhase EnergyTransferMode = iota
	ModeACThreePhase
	ModeDCExtended
	ModeDCCombo
	ModeDCUnique
	ModeDCBidirectional // -20 BPT
)

// AuthorizationMethod distinguishes EIM (external identification means,
// off-band) from PnC (plug-and-charge, contract-certificate based).
type AuthorizationMethod uint8

const (
	AuthEIM AuthorizationMethod = iota
	AuthPnC
)

// EVSENotification carries out-of-band signaling from SECC to EVCC within
// charge-loop responses: a plain "nothing to report", a request to stop,
// or a request to renegotiate the schedule mid-session.
type EVSENotification uint8

const (
	EVSENotificationNone EVSENotification = iota
	EVSENotificationStop
	EVSENotificationReNegotiate
)
