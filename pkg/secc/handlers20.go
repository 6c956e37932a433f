package secc

import (
	"context"
	"fmt"

	"github.com/go-iso15118/hlc/pkg/controller"
	"github.com/go-iso15118/hlc/pkg/message"
)

// handle20 builds the -20 response for kind, mirroring
// pkg/evcc/dialect20.go's request shapes in reverse.
func (m *Machine) handle20(ctx context.Context, kind message.Kind, body message.Body) (message.Body, error) {
	switch kind {
	case message.KindVehicleCheckIn:
		return m.handleVehicleCheckIn20(body.(*message.VehicleCheckInReq20))
	case message.KindAuthorizationSetup:
		return m.handleAuthorizationSetup20(body.(*message.AuthorizationSetupReq20))
	case message.KindCertificateInstallation:
		return m.handleCertificateInstallation20(body.(*message.CertificateInstallationReq20))
	case message.KindAuthorization:
		return m.handleAuthorization20(ctx, body.(*message.AuthorizationReq20))
	case message.KindServiceDiscovery:
		return m.handleServiceDiscovery20(body.(*message.ServiceDiscoveryReq20))
	case message.KindServiceDetail:
		return m.handleServiceDetail20(body.(*message.ServiceDetailReq20))
	case message.KindServiceSelection:
		return m.handleServiceSelection20(body.(*message.ServiceSelectionReq20))
	case message.KindChargeParameterDiscovery:
		return m.handleScheduleExchange20(ctx, body.(*message.ScheduleExchangeReq20))
	case message.KindCableCheck:
		return m.handleCableCheck20(ctx, body.(*message.CableCheckReq20))
	case message.KindPreCharge:
		return m.handlePreCharge20(ctx, body.(*message.PreChargeReq20))
	case message.KindPowerDelivery:
		return m.handlePowerDelivery20(body.(*message.PowerDeliveryReq20))
	case message.KindChargeLoop:
		return m.handleChargeLoop20(ctx, body.(*message.ChargeLoopReq20))
	case message.KindMeteringConfirmation:
		return m.handleMeteringConfirmation20(body.(*message.MeteringConfirmationReq20))
	case message.KindVehicleCheckOut:
		return m.handleVehicleCheckOut20(body.(*message.VehicleCheckOutReq20))
	case message.KindSessionStop:
		return m.handleSessionStop20(body.(*message.SessionStopReq20))
	default:
		return nil, fmt.Errorf("secc: no -20 handler for %s", kind)
	}
}

func (m *Machine) handleVehicleCheckIn20(req *message.VehicleCheckInReq20) (message.Body, error) {
	_ = req
	return &message.VehicleCheckInRes20{
		Header:       message.Header{SessionID: m.Sess.ID},
		ResponseCode: message.ResponseOK,
	}, nil
}

func (m *Machine) handleAuthorizationSetup20(req *message.AuthorizationSetupReq20) (message.Body, error) {
	_ = req
	authMethods := m.Ctrl.SupportedAuthMethods()
	m.offeredAuthMethods = make(map[message.AuthorizationMethod]bool, len(authMethods))
	for _, a := range authMethods {
		m.offeredAuthMethods[a] = true
	}

	res := &message.AuthorizationSetupRes20{
		Header:                         message.Header{SessionID: m.Sess.ID},
		ResponseCode:                   message.ResponseOK,
		AuthServices:                   authMethods,
		CertificateInstallationOffered: m.offeredAuthMethods[message.AuthPnC],
	}
	if res.CertificateInstallationOffered {
		ch, err := genChallenge()
		if err != nil {
			return nil, err
		}
		res.GenChallenge = ch
	}
	return res, nil
}

// handleCertificateInstallation20 mirrors handleCertificateInstallation2:
// a placeholder contract chain standing in for a CPO backend this module
// does not reach.
func (m *Machine) handleCertificateInstallation20(req *message.CertificateInstallationReq20) (message.Body, error) {
	_ = req
	m.pncCertInstalled = true
	return &message.CertificateInstallationRes20{
		Header:             message.Header{SessionID: m.Sess.ID},
		ResponseCode:       message.ResponseOK,
		ContractChainDER:   [][]byte{[]byte("stub-contract-leaf"), []byte("stub-contract-sub-ca")},
		ContractPrivKeyDER: []byte("stub-contract-priv-key"),
	}, nil
}

func (m *Machine) handleAuthorization20(ctx context.Context, req *message.AuthorizationReq20) (message.Body, error) {
	m.Sess.AuthMethod = req.SelectedAuth
	decision, err := m.Ctrl.IsAuthorized(ctx, m.authorizationContext(req.GenChallenge))
	if err != nil {
		return nil, fmt.Errorf("secc: controller IsAuthorized: %w", err)
	}
	switch decision {
	case controller.AuthorizationOngoing:
		return &message.AuthorizationRes20{Header: message.Header{SessionID: m.Sess.ID}, ResponseCode: message.ResponseOK, EVSEProcessing: "Ongoing"}, nil
	case controller.AuthorizationAccepted:
		return &message.AuthorizationRes20{Header: message.Header{SessionID: m.Sess.ID}, ResponseCode: message.ResponseOK, EVSEProcessing: "Finished"}, nil
	default:
		return &message.AuthorizationRes20{Header: message.Header{SessionID: m.Sess.ID}, ResponseCode: message.ResponseFailedChallengeInvalid, EVSEProcessing: "Finished"}, nil
	}
}

func (m *Machine) handleServiceDiscovery20(req *message.ServiceDiscoveryReq20) (message.Body, error) {
	modes := m.Ctrl.SupportedEnergyModes()
	svc := message.Service{ServiceID: 1, ServiceName: "AC_DC_Charging", Modes: modes}
	m.offeredServiceIDs = map[int]bool{svc.ServiceID: true}
	_ = req

	return &message.ServiceDiscoveryRes20{
		Header:       message.Header{SessionID: m.Sess.ID},
		ResponseCode: message.ResponseOK,
		Services:     []message.Service{svc},
	}, nil
}

func (m *Machine) handleServiceDetail20(req *message.ServiceDetailReq20) (message.Body, error) {
	code := message.ResponseOK
	if !m.offeredServiceIDs[req.ServiceID] {
		code = message.ResponseFailed
	}
	return &message.ServiceDetailRes20{
		Header:       message.Header{SessionID: m.Sess.ID},
		ResponseCode: code,
		ServiceID:    req.ServiceID,
	}, nil
}

func (m *Machine) handleServiceSelection20(req *message.ServiceSelectionReq20) (message.Body, error) {
	code := message.ResponseOK
	if !m.offeredServiceIDs[req.SelectedServiceID] {
		code = message.ResponseFailedNoEnergyTransferServiceSelected
	} else {
		m.Sess.SelectedServiceID = req.SelectedServiceID
		m.Sess.EnergyTransferMode = req.SelectedMode
	}
	return &message.ServiceSelectionRes20{
		Header:       message.Header{SessionID: m.Sess.ID},
		ResponseCode: code,
	}, nil
}

func (m *Machine) handleScheduleExchange20(ctx context.Context, req *message.ScheduleExchangeReq20) (message.Body, error) {
	limits, err := m.Ctrl.Limits(ctx)
	if err != nil {
		return nil, fmt.Errorf("secc: controller Limits: %w", err)
	}
	maxPower := req.MaxPowerW
	if limits.MaxPowerW < maxPower {
		maxPower = limits.MaxPowerW
	}

	sched, err := m.Ctrl.BuildSchedule(ctx, controller.ScheduleRequirements{
		Mode:          req.RequestedMode,
		DepartureTime: req.DepartureTime,
		MaxPowerW:     maxPower,
	})
	if err != nil {
		return nil, fmt.Errorf("secc: controller BuildSchedule: %w", err)
	}

	msgSchedule := toMessageSchedule(sched)
	m.Sess.Schedule = msgSchedule

	return &message.ScheduleExchangeRes20{
		Header:         message.Header{SessionID: m.Sess.ID},
		ResponseCode:   message.ResponseOK,
		Schedules:      []message.ChargingSchedule{msgSchedule},
		EVSEProcessing: "Finished",
	}, nil
}

func (m *Machine) handleCableCheck20(ctx context.Context, req *message.CableCheckReq20) (message.Body, error) {
	_ = req
	if _, err := m.Ctrl.PresentVoltage(ctx); err != nil {
		return nil, fmt.Errorf("secc: controller PresentVoltage: %w", err)
	}
	return &message.CableCheckRes20{
		Header:         message.Header{SessionID: m.Sess.ID},
		ResponseCode:   message.ResponseOK,
		EVSEProcessing: "Finished",
	}, nil
}

func (m *Machine) handlePreCharge20(ctx context.Context, req *message.PreChargeReq20) (message.Body, error) {
	_ = req
	v, err := m.Ctrl.PresentVoltage(ctx)
	if err != nil {
		return nil, fmt.Errorf("secc: controller PresentVoltage: %w", err)
	}
	return &message.PreChargeRes20{
		Header:          message.Header{SessionID: m.Sess.ID},
		ResponseCode:    message.ResponseOK,
		PresentVoltageV: v,
	}, nil
}

func (m *Machine) handlePowerDelivery20(req *message.PowerDeliveryReq20) (message.Body, error) {
	_ = req
	return &message.PowerDeliveryRes20{
		Header:       message.Header{SessionID: m.Sess.ID},
		ResponseCode: message.ResponseOK,
	}, nil
}

func (m *Machine) handleChargeLoop20(ctx context.Context, req *message.ChargeLoopReq20) (message.Body, error) {
	_ = req
	current, err := m.Ctrl.PresentCurrent(ctx)
	if err != nil {
		return nil, fmt.Errorf("secc: controller PresentCurrent: %w", err)
	}
	voltage, err := m.Ctrl.PresentVoltage(ctx)
	if err != nil {
		return nil, fmt.Errorf("secc: controller PresentVoltage: %w", err)
	}
	stop, err := m.Ctrl.ShouldStop(ctx)
	if err != nil {
		return nil, fmt.Errorf("secc: controller ShouldStop: %w", err)
	}
	notification := message.EVSENotificationNone
	if stop {
		notification = message.EVSENotificationStop
	}

	return &message.ChargeLoopRes20{
		Header:           message.Header{SessionID: m.Sess.ID},
		ResponseCode:     message.ResponseOK,
		PresentCurrentA:  current,
		PresentPowerW:    current * voltage,
		EVSENotification: notification,
	}, nil
}

func (m *Machine) handleMeteringConfirmation20(req *message.MeteringConfirmationReq20) (message.Body, error) {
	_ = req
	return &message.MeteringConfirmationRes20{
		Header:       message.Header{SessionID: m.Sess.ID},
		ResponseCode: message.ResponseOK,
	}, nil
}

func (m *Machine) handleVehicleCheckOut20(req *message.VehicleCheckOutReq20) (message.Body, error) {
	_ = req
	return &message.VehicleCheckOutRes20{
		Header:       message.Header{SessionID: m.Sess.ID},
		ResponseCode: message.ResponseOK,
	}, nil
}

func (m *Machine) handleSessionStop20(req *message.SessionStopReq20) (message.Body, error) {
	_ = req
	return &message.SessionStopRes20{
		Header:       message.Header{SessionID: m.Sess.ID},
		ResponseCode: message.ResponseOK,
	}, nil
}
