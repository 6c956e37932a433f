package session

import "fmt"

// State enumerates every phase either role's state machine can occupy
// (spec §4.5/§4.6). Both EVCC and SECC machines index the same State
// space — the dialects rename a few phases (ServiceSelection for -2's
// PaymentServiceSelection, ScheduleExchange for -2's
// ChargeParameterDiscovery) and -20 adds AuthorizationSetup,
// VehicleCheckIn/Out, and MeteringConfirmation — but (state, kind) lookups
// in pkg/router are keyed on this one State type regardless of dialect.
type State uint8

const (
	StateIdle State = iota
	StateSupportedAppProtocol
	StateSessionSetup
	StateVehicleCheckIn // -20 only, supplemented, optional
	StateServiceDiscovery
	StateServiceDetail
	StateAuthorizationSetup // -20 only
	StateServiceSelection   // -2 PaymentServiceSelection / -20 ServiceSelection
	StateCertificateInstallation
	StatePaymentDetails // -2 only
	StateAuthorization
	StateChargeParameterDiscovery // -2 ChargeParameterDiscovery / -20 ScheduleExchange
	StateCableCheck
	StatePreCharge
	StatePowerDeliveryStart
	StateChargeLoop // -2 CurrentDemand/ChargingStatus / -20 ChargeLoop
	StatePowerDeliveryStop
	StateWeldingDetection // -2 only
	StateMeteringConfirmation // -20 only, supplemented, optional
	StateVehicleCheckOut      // -20 only, supplemented, optional
	StateSessionStop
	StateTerminated
)

func (s State) String() string {
	names := [...]string{
		"Idle", "SupportedAppProtocol", "SessionSetup", "VehicleCheckIn",
		"ServiceDiscovery", "ServiceDetail", "AuthorizationSetup",
		"ServiceSelection", "CertificateInstallation", "PaymentDetails",
		"Authorization", "ChargeParameterDiscovery", "CableCheck",
		"PreCharge", "PowerDeliveryStart", "ChargeLoop", "PowerDeliveryStop",
		"WeldingDetection", "MeteringConfirmation", "VehicleCheckOut",
		"SessionStop", "Terminated",
	}
	if int(s) < len(names) {
		return names[s]
	}
	return fmt.Sprintf("State(%d)", s)
}

// TerminationReason records why a session entered StateTerminated, for
// the diagnostic record in spec §7.
type TerminationReason uint8

const (
	TerminationOK TerminationReason = iota
	TerminationTimeout
	TerminationProtocolError
	TerminationSecurityError
	TerminationTransportError
	TerminationControllerError
	TerminationCodecError
)

func (r TerminationReason) String() string {
	names := [...]string{
		"OK", "Timeout", "ProtocolError", "SecurityError",
		"TransportError", "ControllerError", "CodecError",
	}
	if int(r) < len(names) {
		return names[r]
	}
	return fmt.Sprintf("TerminationReason(%d)", r)
}
