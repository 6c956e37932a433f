package router

import (
	"github.com/go-iso15118/hlc/pkg/message"
	"github.com/go-iso15118/hlc/pkg/session"
)

// Dialect20 builds the -20 transition table. -20 drops PaymentDetails
// (folded into AuthorizationSetup/Authorization) and WeldingDetection
// (no DC-specific weld-check step), and adds AuthorizationSetup,
// optional VehicleCheckIn/CheckOut, and an optional MeteringConfirmation
// exchange taken from the charge loop and returning to it (spec §4.5,
// SUPPLEMENTED FEATURES in SPEC_FULL.md).
func Dialect20() *Table {
	return newTable([]Transition{
		{From: session.StateIdle, Kind: message.KindSupportedAppProtocol, To: session.StateSupportedAppProtocol},
		{From: session.StateSupportedAppProtocol, Kind: message.KindSessionSetup, To: session.StateSessionSetup},
		{From: session.StateSessionSetup, Kind: message.KindVehicleCheckIn, To: session.StateVehicleCheckIn},
		{From: session.StateSessionSetup, Kind: message.KindAuthorizationSetup, To: session.StateAuthorizationSetup},
		{From: session.StateVehicleCheckIn, Kind: message.KindAuthorizationSetup, To: session.StateAuthorizationSetup},
		{From: session.StateAuthorizationSetup, Kind: message.KindCertificateInstallation, To: session.StateCertificateInstallation},
		{From: session.StateCertificateInstallation, Kind: message.KindAuthorization, To: session.StateAuthorization},
		{From: session.StateAuthorizationSetup, Kind: message.KindAuthorization, To: session.StateAuthorization},
		{From: session.StateAuthorization, Kind: message.KindAuthorization, To: session.StateAuthorization}, // Ongoing retry
		{From: session.StateAuthorization, Kind: message.KindServiceDiscovery, To: session.StateServiceDiscovery},
		{From: session.StateServiceDiscovery, Kind: message.KindServiceDetail, To: session.StateServiceDetail},
		{From: session.StateServiceDetail, Kind: message.KindServiceDetail, To: session.StateServiceDetail},
		{From: session.StateServiceDetail, Kind: message.KindServiceSelection, To: session.StateServiceSelection},
		{From: session.StateServiceDiscovery, Kind: message.KindServiceSelection, To: session.StateServiceSelection},
		{From: session.StateServiceSelection, Kind: message.KindChargeParameterDiscovery, To: session.StateChargeParameterDiscovery},
		{From: session.StateChargeParameterDiscovery, Kind: message.KindChargeParameterDiscovery, To: session.StateChargeParameterDiscovery},
		{From: session.StateChargeParameterDiscovery, Kind: message.KindCableCheck, To: session.StateCableCheck},
		{From: session.StateCableCheck, Kind: message.KindCableCheck, To: session.StateCableCheck},
		{From: session.StateCableCheck, Kind: message.KindPreCharge, To: session.StatePreCharge},
		{From: session.StatePreCharge, Kind: message.KindPreCharge, To: session.StatePreCharge},
		{From: session.StatePreCharge, Kind: message.KindPowerDelivery, To: session.StatePowerDeliveryStart},
		{From: session.StatePowerDeliveryStart, Kind: message.KindChargeLoop, To: session.StateChargeLoop},
		{From: session.StateChargeLoop, Kind: message.KindChargeLoop, To: session.StateChargeLoop},
		{From: session.StateChargeLoop, Kind: message.KindChargeParameterDiscovery, To: session.StateChargeParameterDiscovery}, // ReNegotiate
		{From: session.StateChargeLoop, Kind: message.KindMeteringConfirmation, To: session.StateMeteringConfirmation},
		{From: session.StateMeteringConfirmation, Kind: message.KindChargeLoop, To: session.StateChargeLoop},
		{From: session.StateChargeLoop, Kind: message.KindPowerDelivery, To: session.StatePowerDeliveryStop},
		{From: session.StatePowerDeliveryStop, Kind: message.KindVehicleCheckOut, To: session.StateVehicleCheckOut},
		{From: session.StateVehicleCheckOut, Kind: message.KindSessionStop, To: session.StateTerminated},
		{From: session.StatePowerDeliveryStop, Kind: message.KindSessionStop, To: session.StateTerminated},
	})
}
