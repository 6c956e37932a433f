package router

import (
	"github.com/go-iso15118/hlc/pkg/message"
	"github.com/go-iso15118/hlc/pkg/session"
)

// Dialect2 builds the -2 transition table (spec §4.5/§4.6). The charge
// loop is modeled as a self-loop on StateChargeLoop: the state machine's
// own controller poll (not the table) decides when to exit it via
// PowerDelivery(Stop), which re-enters as a distinct edge from
// StateChargeLoop to StatePowerDeliveryStop.
func Dialect2() *Table {
	return newTable([]Transition{
		{From: session.StateIdle, Kind: message.KindSupportedAppProtocol, To: session.StateSupportedAppProtocol},
		{From: session.StateSupportedAppProtocol, Kind: message.KindSessionSetup, To: session.StateSessionSetup},
		{From: session.StateSessionSetup, Kind: message.KindServiceDiscovery, To: session.StateServiceDiscovery},
		{From: session.StateServiceDiscovery, Kind: message.KindServiceDetail, To: session.StateServiceDetail},
		{From: session.StateServiceDetail, Kind: message.KindServiceDetail, To: session.StateServiceDetail},
		{From: session.StateServiceDetail, Kind: message.KindServiceSelection, To: session.StateServiceSelection},
		{From: session.StateServiceDiscovery, Kind: message.KindServiceSelection, To: session.StateServiceSelection},
		{From: session.StateServiceSelection, Kind: message.KindPaymentDetails, To: session.StatePaymentDetails},
		{From: session.StateServiceSelection, Kind: message.KindCertificateInstallation, To: session.StateCertificateInstallation},
		{From: session.StateCertificateInstallation, Kind: message.KindPaymentDetails, To: session.StatePaymentDetails},
		{From: session.StatePaymentDetails, Kind: message.KindAuthorization, To: session.StateAuthorization},
		{From: session.StateServiceSelection, Kind: message.KindAuthorization, To: session.StateAuthorization},
		{From: session.StateAuthorization, Kind: message.KindAuthorization, To: session.StateAuthorization}, // Ongoing retry
		{From: session.StateAuthorization, Kind: message.KindChargeParameterDiscovery, To: session.StateChargeParameterDiscovery},
		{From: session.StateChargeParameterDiscovery, Kind: message.KindChargeParameterDiscovery, To: session.StateChargeParameterDiscovery},
		{From: session.StateChargeParameterDiscovery, Kind: message.KindCableCheck, To: session.StateCableCheck},
		{From: session.StateCableCheck, Kind: message.KindCableCheck, To: session.StateCableCheck},
		{From: session.StateCableCheck, Kind: message.KindPreCharge, To: session.StatePreCharge},
		{From: session.StatePreCharge, Kind: message.KindPreCharge, To: session.StatePreCharge},
		{From: session.StatePreCharge, Kind: message.KindPowerDelivery, To: session.StatePowerDeliveryStart},
		{From: session.StatePowerDeliveryStart, Kind: message.KindChargeLoop, To: session.StateChargeLoop},
		{From: session.StateChargeLoop, Kind: message.KindChargeLoop, To: session.StateChargeLoop},
		{From: session.StateChargeLoop, Kind: message.KindChargeParameterDiscovery, To: session.StateChargeParameterDiscovery}, // ReNegotiate
		{From: session.StateChargeLoop, Kind: message.KindPowerDelivery, To: session.StatePowerDeliveryStop},
		{From: session.StatePowerDeliveryStop, Kind: message.KindWeldingDetection, To: session.StateWeldingDetection},
		{From: session.StateWeldingDetection, Kind: message.KindWeldingDetection, To: session.StateWeldingDetection},
		{From: session.StateWeldingDetection, Kind: message.KindSessionStop, To: session.StateTerminated},
		{From: session.StatePowerDeliveryStop, Kind: message.KindSessionStop, To: session.StateTerminated},
	})
}
