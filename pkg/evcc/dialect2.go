package evcc

import (
	"context"
	"fmt"
	"time"

	"github.com/go-iso15118/hlc/pkg/controller"
	"github.com/go-iso15118/hlc/pkg/message"
	"github.com/go-iso15118/hlc/pkg/session"
)

// negotiateDialect sends SupportedAppProtocolReq offering both dialects
// (-20 first: EVCCs prefer the current standard when the SECC offers
// it) and returns whichever one the SECC's response names. This
// exchange always rides the -2 EXI wrapper regardless of outcome, per
// message.SupportedAppProtocolReq/Res both hardcoding Dialect2.
func (m *Machine) negotiateDialect(ctx context.Context) (message.Dialect, error) {
	req := &message.SupportedAppProtocolReq{
		Protocols: []message.AppProtocol{
			{Namespace: "urn:iso:std:iso:15118:-20", Major: 2, Minor: 0, SchemaID: 1},
			{Namespace: "urn:iso:std:iso:15118:-2", Major: 2, Minor: 0, SchemaID: 2},
		},
	}
	body, err := m.sendAndWait(ctx, req, session.TimerSequence, m.Sess.Timeouts.Sequence, message.KindSupportedAppProtocol, false)
	if err != nil {
		return message.DialectUnknown, err
	}
	res, ok := body.(*message.SupportedAppProtocolRes)
	if !ok {
		return message.DialectUnknown, fmt.Errorf("evcc: unexpected body type %T for SupportedAppProtocolRes", body)
	}
	if !res.ResponseCode.IsSuccess() {
		return message.DialectUnknown, fmt.Errorf("evcc: SupportedAppProtocol failed: %s", res.ResponseCode)
	}
	m.Sess.State = session.StateSupportedAppProtocol
	return res.NegotiatedDialect, nil
}

func isDC(mode message.EnergyTransferMode) bool {
	switch mode {
	case message.ModeDCExtended, message.ModeDCCombo, message.ModeDCUnique, message.ModeDCBidirectional:
		return true
	default:
		return false
	}
}

// runDialect2 drives the -2 flow (spec §4.5) from StateSupportedAppProtocol
// through StateTerminated.
func (m *Machine) runDialect2(ctx context.Context) error {
	sess, ctrl, T := m.Sess, m.Ctrl, m.Sess.Timeouts

	sessionSetupRes, err := m.step2(ctx, &message.SessionSetupReq{EVCCID: []byte(ctrl.EVCCID())}, T.Sequence, message.KindSessionSetup, false)
	if err != nil {
		return err
	}
	ssRes := sessionSetupRes.(*message.SessionSetupRes)
	if !ssRes.ResponseCode.IsSuccess() {
		return fmt.Errorf("evcc: SessionSetup failed: %s", ssRes.ResponseCode)
	}
	sess.ID = ssRes.Header.SessionID
	sess.State = session.StateSessionSetup

	discRes, err := m.step2(ctx, &message.ServiceDiscoveryReq{}, T.Sequence, message.KindServiceDiscovery, false)
	if err != nil {
		return err
	}
	disc := discRes.(*message.ServiceDiscoveryRes)
	if !disc.ResponseCode.IsSuccess() {
		return fmt.Errorf("evcc: ServiceDiscovery failed: %s", disc.ResponseCode)
	}
	sess.State = session.StateServiceDiscovery

	mode := ctrl.PreferredEnergyMode()
	serviceID := 0
	for _, svc := range disc.Services {
		for _, offered := range svc.Modes {
			if offered == mode {
				serviceID = svc.ServiceID
			}
		}
	}
	sess.EnergyTransferMode = mode
	sess.SelectedServiceID = serviceID
	sess.AuthMethod = ctrl.PreferredAuthMethod()

	selRes, err := m.step2(ctx, &message.PaymentServiceSelectionReq{SelectedAuthMethod: sess.AuthMethod, SelectedServiceID: serviceID}, T.Sequence, message.KindServiceSelection, false)
	if err != nil {
		return err
	}
	if !selRes.(*message.PaymentServiceSelectionRes).ResponseCode.IsSuccess() {
		return fmt.Errorf("evcc: ServiceSelection failed")
	}
	sess.State = session.StateServiceSelection

	if sess.AuthMethod == message.AuthPnC {
		if err := m.installPnCCertificate(ctx); err != nil {
			return err
		}
		sess.State = session.StateCertificateInstallation
	}

	if _, err := m.authorize2(ctx); err != nil {
		return err
	}
	sess.State = session.StateAuthorization

	battery, err := ctrl.Battery(ctx)
	if err != nil {
		return fmt.Errorf("evcc: controller battery: %w", err)
	}
	cpdRes, err := m.step2(ctx, &message.ChargeParameterDiscoveryReq{RequestedMode: mode, MaxPowerW: battery.MaxPowerW}, T.Sequence, message.KindChargeParameterDiscovery, false)
	if err != nil {
		return err
	}
	cpd := cpdRes.(*message.ChargeParameterDiscoveryRes)
	if !cpd.ResponseCode.IsSuccess() || len(cpd.Schedules) == 0 {
		return fmt.Errorf("evcc: ChargeParameterDiscovery failed: %s", cpd.ResponseCode)
	}
	schedule := cpd.Schedules[0]
	sess.State = session.StateChargeParameterDiscovery

	if _, err := m.step2(ctx, &message.CableCheckReq{}, T.Sequence, message.KindCableCheck, false); err != nil {
		return err
	}
	sess.State = session.StateCableCheck

	if _, err := m.step2(ctx, &message.PreChargeReq{TargetVoltageV: 400}, T.Sequence, message.KindPreCharge, false); err != nil {
		return err
	}
	sess.State = session.StatePreCharge

	pdStartRes, err := m.step2(ctx, &message.PowerDeliveryReq{Progress: message.ChargeProgressStart, ScheduleID: schedule.ScheduleID}, T.Sequence, message.KindPowerDelivery, false)
	if err != nil {
		return err
	}
	if !pdStartRes.(*message.PowerDeliveryRes).ResponseCode.IsSuccess() {
		return fmt.Errorf("evcc: PowerDelivery(Start) failed")
	}
	sess.State = session.StatePowerDeliveryStart

	if err := m.chargeLoop2(ctx, isDC(mode)); err != nil {
		return err
	}

	pdStopRes, err := m.step2(ctx, &message.PowerDeliveryReq{Progress: message.ChargeProgressStop, ScheduleID: schedule.ScheduleID}, T.Sequence, message.KindPowerDelivery, false)
	if err != nil {
		return err
	}
	if !pdStopRes.(*message.PowerDeliveryRes).ResponseCode.IsSuccess() {
		return fmt.Errorf("evcc: PowerDelivery(Stop) failed")
	}
	sess.State = session.StatePowerDeliveryStop

	if !isDC(mode) {
		if _, err := m.step2(ctx, &message.WeldingDetectionReq{}, T.Sequence, message.KindWeldingDetection, false); err != nil {
			return err
		}
		sess.State = session.StateWeldingDetection
	}

	stopRes, err := m.step2(ctx, &message.SessionStopReq{ChargingSession: message.ChargingSessionTerminate}, T.Sequence, message.KindSessionStop, false)
	if err != nil {
		return err
	}
	if !stopRes.(*message.SessionStopRes).ResponseCode.IsSuccess() {
		return fmt.Errorf("evcc: SessionStop failed")
	}
	sess.State = session.StateSessionStop
	sess.Terminate(session.TerminationOK, "")
	return nil
}

// step2 is sendAndWait specialized for the -2 flow's ordinary sequence
// timer: every exchange but the charge loop arms TimerSequence.
func (m *Machine) step2(ctx context.Context, req message.Body, dur time.Duration, wantKind message.Kind, wantRequest bool) (message.Body, error) {
	return m.sendAndWait(ctx, req, session.TimerSequence, dur, wantKind, wantRequest)
}

// installPnCCertificate exchanges CertificateInstallationReq/Res and
// PaymentDetailsReq/Res: the EVCC submits its OEM provisioning
// certificate and receives back a contract certificate chain, then
// hands the contract id and chain to PaymentDetails. The GenChallenge in
// PaymentDetailsRes is not kept and nothing is signed: the
// AuthorizationReq that authorize2 sends afterwards carries no signature.
func (m *Machine) installPnCCertificate(ctx context.Context) error {
	T := m.Sess.Timeouts

	ciRes, err := m.step2(ctx, &message.CertificateInstallationReq{OEMProvisioningCertDER: m.OEMProvisioningCertDER}, T.Sequence, message.KindCertificateInstallation, false)
	if err != nil {
		return err
	}
	ci := ciRes.(*message.CertificateInstallationRes)
	if !ci.ResponseCode.IsSuccess() {
		return fmt.Errorf("evcc: CertificateInstallation failed: %s", ci.ResponseCode)
	}

	pdRes, err := m.step2(ctx, &message.PaymentDetailsReq{ContractID: m.ContractID, ContractChainDER: ci.ContractChainDER}, T.Sequence, message.KindPaymentDetails, false)
	if err != nil {
		return err
	}
	if !pdRes.(*message.PaymentDetailsRes).ResponseCode.IsSuccess() {
		return fmt.Errorf("evcc: PaymentDetails failed")
	}
	return nil
}

// authorize2 drives AuthorizationReq, retrying while the SECC reports
// Ongoing (EVSEProcessing=Ongoing in the standard's terms) rather than
// treating that as a failure (spec §4.6).
func (m *Machine) authorize2(ctx context.Context) (message.Body, error) {
	for {
		body, err := m.step2(ctx, &message.AuthorizationReq{}, m.Sess.Timeouts.Sequence, message.KindAuthorization, false)
		if err != nil {
			return nil, err
		}
		res := body.(*message.AuthorizationRes)
		if res.Ongoing {
			continue
		}
		if !res.ResponseCode.IsSuccess() {
			return nil, fmt.Errorf("evcc: Authorization failed: %s", res.ResponseCode)
		}
		return res, nil
	}
}

// chargeLoop2 repeats CurrentDemand (DC) or ChargingStatus (AC) at the
// performance cadence until the controller says to stop or the SECC
// signals EVSENotification=Stop (spec §4.5 Loops). A ReNegotiate
// notification ends the loop with an error; the flow does not return to
// ChargeParameterDiscovery.
func (m *Machine) chargeLoop2(ctx context.Context, isDC bool) error {
	for {
		var res message.Body
		var err error
		if isDC {
			res, err = m.sendAndWaitChargeLoop2(ctx, &message.CurrentDemandReq{}, true)
		} else {
			res, err = m.sendAndWaitChargeLoop2(ctx, &message.ChargingStatusReq{}, false)
		}
		if err != nil {
			return err
		}

		var notification message.EVSENotification
		var ok bool
		switch v := res.(type) {
		case *message.CurrentDemandRes:
			ok = v.ResponseCode.IsSuccess()
			notification = v.EVSENotification
		case *message.ChargingStatusRes:
			ok = v.ResponseCode.IsSuccess()
			notification = v.EVSENotification
		default:
			return fmt.Errorf("evcc: unexpected charge loop response type %T", res)
		}
		if !ok {
			return fmt.Errorf("evcc: charge loop response not OK")
		}
		if notification == message.EVSENotificationStop {
			return nil
		}
		if notification == message.EVSENotificationReNegotiate {
			return fmt.Errorf("evcc: SECC requested renegotiation, which this charge loop does not perform")
		}

		if ticker, ok := m.Ctrl.(controller.Ticker); ok {
			ticker.Tick()
		}

		stop, err := m.Ctrl.ChargingShouldStop(ctx)
		if err != nil {
			return fmt.Errorf("evcc: controller ChargingShouldStop: %w", err)
		}
		if stop {
			return nil
		}
	}
}
