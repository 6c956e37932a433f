package evcc

import (
	"context"
	"fmt"
	"time"

	"github.com/go-iso15118/hlc/pkg/controller"
	"github.com/go-iso15118/hlc/pkg/message"
	"github.com/go-iso15118/hlc/pkg/session"
)

// runDialect20 drives the -20 flow. It mirrors runDialect2's shape with
// the -20 renames (AuthorizationSetup ahead of Authorization,
// ServiceSelection in place of PaymentServiceSelection, ScheduleExchange
// in place of ChargeParameterDiscovery) and the supplemented
// VehicleCheckIn/CheckOut steps, which are always sent. No
// MeteringConfirmation is sent.
func (m *Machine) runDialect20(ctx context.Context) error {
	sess, ctrl, T := m.Sess, m.Ctrl, m.Sess.Timeouts

	ssRes, err := m.step20(ctx, &message.SessionSetupReq20{EVCCID: []byte(ctrl.EVCCID())}, T.Sequence, message.KindSessionSetup)
	if err != nil {
		return err
	}
	ss := ssRes.(*message.SessionSetupRes20)
	if !ss.ResponseCode.IsSuccess() {
		return fmt.Errorf("evcc: SessionSetup failed")
	}
	sess.ID = ss.Header.SessionID
	sess.State = session.StateSessionSetup

	ciStatus := "EV_Plugged_In"
	if _, err := m.step20(ctx, &message.VehicleCheckInReq20{EVCheckInStatus: ciStatus}, T.Sequence, message.KindVehicleCheckIn); err != nil {
		return err
	}
	sess.State = session.StateVehicleCheckIn

	asRes, err := m.step20(ctx, &message.AuthorizationSetupReq20{}, T.Sequence, message.KindAuthorizationSetup)
	if err != nil {
		return err
	}
	as := asRes.(*message.AuthorizationSetupRes20)
	if !as.ResponseCode.IsSuccess() {
		return fmt.Errorf("evcc: AuthorizationSetup failed: %s", as.ResponseCode)
	}
	sess.State = session.StateAuthorizationSetup
	sess.AuthMethod = ctrl.PreferredAuthMethod()

	if sess.AuthMethod == message.AuthPnC && as.CertificateInstallationOffered {
		if err := m.installPnCCertificate20(ctx); err != nil {
			return err
		}
		sess.State = session.StateCertificateInstallation
	}

	genChallenge := as.GenChallenge
	if _, err := m.authorize20(ctx, genChallenge); err != nil {
		return err
	}
	sess.State = session.StateAuthorization

	mode := ctrl.PreferredEnergyMode()
	discRes, err := m.step20(ctx, &message.ServiceDiscoveryReq20{SupportedEnergyServices: []message.EnergyTransferMode{mode}}, T.Sequence, message.KindServiceDiscovery)
	if err != nil {
		return err
	}
	disc := discRes.(*message.ServiceDiscoveryRes20)
	if !disc.ResponseCode.IsSuccess() {
		return fmt.Errorf("evcc: ServiceDiscovery failed: %s", disc.ResponseCode)
	}
	sess.State = session.StateServiceDiscovery

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

	selRes, err := m.step20(ctx, &message.ServiceSelectionReq20{SelectedServiceID: serviceID, SelectedMode: mode}, T.Sequence, message.KindServiceSelection)
	if err != nil {
		return err
	}
	if !selRes.(*message.ServiceSelectionRes20).ResponseCode.IsSuccess() {
		return fmt.Errorf("evcc: ServiceSelection failed")
	}
	sess.State = session.StateServiceSelection

	battery, err := ctrl.Battery(ctx)
	if err != nil {
		return fmt.Errorf("evcc: controller battery: %w", err)
	}
	seRes, err := m.step20(ctx, &message.ScheduleExchangeReq20{RequestedMode: mode, MaxPowerW: battery.MaxPowerW}, T.Sequence, message.KindChargeParameterDiscovery)
	if err != nil {
		return err
	}
	se := seRes.(*message.ScheduleExchangeRes20)
	if !se.ResponseCode.IsSuccess() || len(se.Schedules) == 0 {
		return fmt.Errorf("evcc: ScheduleExchange failed: %s", se.ResponseCode)
	}
	schedule := se.Schedules[0]
	sess.State = session.StateChargeParameterDiscovery

	if _, err := m.step20(ctx, &message.CableCheckReq20{}, T.Sequence, message.KindCableCheck); err != nil {
		return err
	}
	sess.State = session.StateCableCheck

	if _, err := m.step20(ctx, &message.PreChargeReq20{TargetVoltageV: 400}, T.Sequence, message.KindPreCharge); err != nil {
		return err
	}
	sess.State = session.StatePreCharge

	bptChannel := 0
	if mode == message.ModeDCBidirectional {
		bptChannel = 1
	}
	pdStartRes, err := m.step20(ctx, &message.PowerDeliveryReq20{Progress: message.ChargeProgressStart, ScheduleID: schedule.ScheduleID, BPTChannel: bptChannel}, T.Sequence, message.KindPowerDelivery)
	if err != nil {
		return err
	}
	if !pdStartRes.(*message.PowerDeliveryRes20).ResponseCode.IsSuccess() {
		return fmt.Errorf("evcc: PowerDelivery(Start) failed")
	}
	sess.State = session.StatePowerDeliveryStart

	if err := m.chargeLoop20(ctx); err != nil {
		return err
	}

	pdStopRes, err := m.step20(ctx, &message.PowerDeliveryReq20{Progress: message.ChargeProgressStop, ScheduleID: schedule.ScheduleID, BPTChannel: bptChannel}, T.Sequence, message.KindPowerDelivery)
	if err != nil {
		return err
	}
	if !pdStopRes.(*message.PowerDeliveryRes20).ResponseCode.IsSuccess() {
		return fmt.Errorf("evcc: PowerDelivery(Stop) failed")
	}
	sess.State = session.StatePowerDeliveryStop

	if _, err := m.step20(ctx, &message.VehicleCheckOutReq20{EVCheckOutStatus: "Completed", CheckOutTime: time.Now().Unix()}, T.Sequence, message.KindVehicleCheckOut); err != nil {
		return err
	}
	sess.State = session.StateVehicleCheckOut

	stopRes, err := m.step20(ctx, &message.SessionStopReq20{ChargingSession: message.ChargingSessionTerminate}, T.Sequence, message.KindSessionStop)
	if err != nil {
		return err
	}
	if !stopRes.(*message.SessionStopRes20).ResponseCode.IsSuccess() {
		return fmt.Errorf("evcc: SessionStop failed")
	}
	sess.State = session.StateSessionStop
	sess.Terminate(session.TerminationOK, "")
	return nil
}

// step20 is sendAndWait specialized for -20's ordinary sequence timer.
func (m *Machine) step20(ctx context.Context, req message.Body, dur time.Duration, wantKind message.Kind) (message.Body, error) {
	return m.sendAndWait(ctx, req, session.TimerSequence, dur, wantKind, false)
}

func (m *Machine) installPnCCertificate20(ctx context.Context) error {
	T := m.Sess.Timeouts
	ciRes, err := m.step20(ctx, &message.CertificateInstallationReq20{OEMProvisioningCertDER: m.OEMProvisioningCertDER}, T.Sequence, message.KindCertificateInstallation)
	if err != nil {
		return err
	}
	if !ciRes.(*message.CertificateInstallationRes20).ResponseCode.IsSuccess() {
		return fmt.Errorf("evcc: CertificateInstallation failed")
	}
	return nil
}

// authorize20 retries AuthorizationReq20 while the SECC reports
// EVSEProcessing=Ongoing, mirroring authorize2's EVSEProcessing retry.
func (m *Machine) authorize20(ctx context.Context, genChallenge []byte) (message.Body, error) {
	for {
		req := &message.AuthorizationReq20{SelectedAuth: m.Sess.AuthMethod, GenChallenge: genChallenge}
		body, err := m.step20(ctx, req, m.Sess.Timeouts.Sequence, message.KindAuthorization)
		if err != nil {
			return nil, err
		}
		res := body.(*message.AuthorizationRes20)
		if res.EVSEProcessing == "Ongoing" {
			continue
		}
		if !res.ResponseCode.IsSuccess() {
			return nil, fmt.Errorf("evcc: Authorization failed: %s", res.ResponseCode)
		}
		return res, nil
	}
}

// chargeLoop20 repeats ChargeLoopReq20 at the performance cadence until
// the controller says to stop or the SECC signals
// EVSENotification=Stop. -20 unifies AC/DC into one message, so unlike
// chargeLoop2 there is no mode branch.
func (m *Machine) chargeLoop20(ctx context.Context) error {
	for {
		body, err := m.step20(ctx, &message.ChargeLoopReq20{}, m.Sess.Timeouts.Performance, message.KindChargeLoop)
		if err != nil {
			return err
		}
		res := body.(*message.ChargeLoopRes20)
		if !res.ResponseCode.IsSuccess() {
			return fmt.Errorf("evcc: charge loop response not OK")
		}
		if res.EVSENotification == message.EVSENotificationStop {
			return nil
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
