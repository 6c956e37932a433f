package secc

import (
	"context"
	"fmt"
	"time"

	"github.com/go-iso15118/hlc/pkg/controller"
	"github.com/go-iso15118/hlc/pkg/message"
)

// handle2 builds the -2 response for kind, mirroring pkg/evcc/dialect2.go's
// request shapes in reverse.
func (m *Machine) handle2(ctx context.Context, kind message.Kind, body message.Body) (message.Body, error) {
	switch kind {
	case message.KindServiceDiscovery:
		return m.handleServiceDiscovery2(ctx, body.(*message.ServiceDiscoveryReq))
	case message.KindServiceDetail:
		return m.handleServiceDetail2(body.(*message.ServiceDetailReq))
	case message.KindServiceSelection:
		return m.handlePaymentServiceSelection2(body.(*message.PaymentServiceSelectionReq))
	case message.KindCertificateInstallation:
		return m.handleCertificateInstallation2(body.(*message.CertificateInstallationReq))
	case message.KindPaymentDetails:
		return m.handlePaymentDetails2(body.(*message.PaymentDetailsReq))
	case message.KindAuthorization:
		return m.handleAuthorization2(ctx, body.(*message.AuthorizationReq))
	case message.KindChargeParameterDiscovery:
		return m.handleChargeParameterDiscovery2(ctx, body.(*message.ChargeParameterDiscoveryReq))
	case message.KindCableCheck:
		return m.handleCableCheck2(ctx, body.(*message.CableCheckReq))
	case message.KindPreCharge:
		return m.handlePreCharge2(ctx, body.(*message.PreChargeReq))
	case message.KindPowerDelivery:
		return m.handlePowerDelivery2(body.(*message.PowerDeliveryReq))
	case message.KindChargeLoop:
		return m.handleChargeLoop2(ctx, body)
	case message.KindWeldingDetection:
		return m.handleWeldingDetection2(ctx, body.(*message.WeldingDetectionReq))
	case message.KindSessionStop:
		return m.handleSessionStop2(body.(*message.SessionStopReq))
	default:
		return nil, fmt.Errorf("secc: no -2 handler for %s", kind)
	}
}

func (m *Machine) handleServiceDiscovery2(ctx context.Context, req *message.ServiceDiscoveryReq) (message.Body, error) {
	_ = req
	modes := m.Ctrl.SupportedEnergyModes()
	authMethods := m.Ctrl.SupportedAuthMethods()

	svc := message.Service{ServiceID: 1, ServiceName: "AC_DC_Charging", Modes: modes}
	m.offeredServiceIDs = map[int]bool{svc.ServiceID: true}
	m.offeredAuthMethods = make(map[message.AuthorizationMethod]bool, len(authMethods))
	for _, a := range authMethods {
		m.offeredAuthMethods[a] = true
	}

	return &message.ServiceDiscoveryRes{
		Header:             message.Header{SessionID: m.Sess.ID},
		ResponseCode:       message.ResponseOK,
		Services:           []message.Service{svc},
		PaymentMethods:     authMethods,
		CertInstallOffered: m.offeredAuthMethods[message.AuthPnC],
	}, nil
}

func (m *Machine) handleServiceDetail2(req *message.ServiceDetailReq) (message.Body, error) {
	code := message.ResponseOK
	if !m.offeredServiceIDs[req.ServiceID] {
		code = message.ResponseFailed
	}
	return &message.ServiceDetailRes{
		Header:       message.Header{SessionID: m.Sess.ID},
		ResponseCode: code,
		ServiceID:    req.ServiceID,
	}, nil
}

func (m *Machine) handlePaymentServiceSelection2(req *message.PaymentServiceSelectionReq) (message.Body, error) {
	code := message.ResponseOK
	if !m.offeredServiceIDs[req.SelectedServiceID] || !m.offeredAuthMethods[req.SelectedAuthMethod] {
		code = message.ResponseFailedNoEnergyTransferServiceSelected
	} else {
		m.Sess.SelectedServiceID = req.SelectedServiceID
		m.Sess.AuthMethod = req.SelectedAuthMethod
	}
	return &message.PaymentServiceSelectionRes{
		Header:       message.Header{SessionID: m.Sess.ID},
		ResponseCode: code,
	}, nil
}

// handleCertificateInstallation2 stands in for the backend contract
// certificate issuance flow: a real SECC forwards OEMProvisioningCertDER
// to a CPO backend and relays the signed chain it gets back. pkg/pki
// validates chains but does not issue them, so this returns a
// placeholder chain — sufficient to exercise the wire flow through
// PaymentDetails and Authorization (no signature is produced or checked
// on that path) without a CPO backend dependency this module does not
// have.
func (m *Machine) handleCertificateInstallation2(req *message.CertificateInstallationReq) (message.Body, error) {
	_ = req
	return &message.CertificateInstallationRes{
		Header:             message.Header{SessionID: m.Sess.ID},
		ResponseCode:       message.ResponseOK,
		ContractChainDER:   [][]byte{[]byte("stub-contract-leaf"), []byte("stub-contract-sub-ca")},
		ContractPrivKeyDER: []byte("stub-contract-priv-key"),
	}, nil
}

func (m *Machine) handlePaymentDetails2(req *message.PaymentDetailsReq) (message.Body, error) {
	if req.ContractID == "" {
		return &message.PaymentDetailsRes{
			Header:       message.Header{SessionID: m.Sess.ID},
			ResponseCode: message.ResponseFailed,
		}, nil
	}
	m.contractID = req.ContractID
	m.pncCertInstalled = true

	challenge, err := genChallenge()
	if err != nil {
		return nil, err
	}
	return &message.PaymentDetailsRes{
		Header:       message.Header{SessionID: m.Sess.ID},
		ResponseCode: message.ResponseOK,
		GenChallenge: challenge,
	}, nil
}

func (m *Machine) handleAuthorization2(ctx context.Context, req *message.AuthorizationReq) (message.Body, error) {
	decision, err := m.Ctrl.IsAuthorized(ctx, m.authorizationContext(req.GenChallenge))
	if err != nil {
		return nil, fmt.Errorf("secc: controller IsAuthorized: %w", err)
	}
	switch decision {
	case controller.AuthorizationOngoing:
		return &message.AuthorizationRes{Header: message.Header{SessionID: m.Sess.ID}, Ongoing: true}, nil
	case controller.AuthorizationAccepted:
		return &message.AuthorizationRes{Header: message.Header{SessionID: m.Sess.ID}, ResponseCode: message.ResponseOK}, nil
	default:
		return &message.AuthorizationRes{Header: message.Header{SessionID: m.Sess.ID}, ResponseCode: message.ResponseFailedChallengeInvalid}, nil
	}
}

func (m *Machine) handleChargeParameterDiscovery2(ctx context.Context, req *message.ChargeParameterDiscoveryReq) (message.Body, error) {
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
	m.Sess.EnergyTransferMode = req.RequestedMode
	m.Sess.Schedule = msgSchedule

	return &message.ChargeParameterDiscoveryRes{
		Header:         message.Header{SessionID: m.Sess.ID},
		ResponseCode:   message.ResponseOK,
		Schedules:      []message.ChargingSchedule{msgSchedule},
		EVSEProcessing: "Finished",
	}, nil
}

// toMessageSchedule maps the controller's dialect-agnostic schedule onto
// the wire ChargingSchedule type as one entry per slot, each at that
// slot's flat power limit.
func toMessageSchedule(sched controller.ChargingSchedule) message.ChargingSchedule {
	entries := make([]message.ScheduleEntry, 0, len(sched.PowerLimitW))
	slot := time.Duration(sched.SlotSeconds) * time.Second
	for i, p := range sched.PowerLimitW {
		entries = append(entries, message.ScheduleEntry{
			StartOffset: slot * time.Duration(i),
			Duration:    slot,
			MaxPowerW:   p,
		})
	}
	return message.ChargingSchedule{ScheduleID: sched.ID, Entries: entries}
}

func (m *Machine) handleCableCheck2(ctx context.Context, req *message.CableCheckReq) (message.Body, error) {
	_ = req
	_, err := m.Ctrl.PresentVoltage(ctx)
	if err != nil {
		return nil, fmt.Errorf("secc: controller PresentVoltage: %w", err)
	}
	return &message.CableCheckRes{
		Header:         message.Header{SessionID: m.Sess.ID},
		ResponseCode:   message.ResponseOK,
		EVSEProcessing: "Finished",
	}, nil
}

func (m *Machine) handlePreCharge2(ctx context.Context, req *message.PreChargeReq) (message.Body, error) {
	_ = req
	v, err := m.Ctrl.PresentVoltage(ctx)
	if err != nil {
		return nil, fmt.Errorf("secc: controller PresentVoltage: %w", err)
	}
	return &message.PreChargeRes{
		Header:          message.Header{SessionID: m.Sess.ID},
		ResponseCode:    message.ResponseOK,
		PresentVoltageV: v,
	}, nil
}

func (m *Machine) handlePowerDelivery2(req *message.PowerDeliveryReq) (message.Body, error) {
	_ = req
	return &message.PowerDeliveryRes{
		Header:       message.Header{SessionID: m.Sess.ID},
		ResponseCode: message.ResponseOK,
	}, nil
}

func (m *Machine) handleChargeLoop2(ctx context.Context, body message.Body) (message.Body, error) {
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

	switch body.(type) {
	case *message.CurrentDemandReq:
		return &message.CurrentDemandRes{
			Header:           message.Header{SessionID: m.Sess.ID},
			ResponseCode:     message.ResponseOK,
			PresentCurrentA:  current,
			PresentVoltageV:  voltage,
			EVSENotification: notification,
		}, nil
	case *message.ChargingStatusReq:
		return &message.ChargingStatusRes{
			Header:           message.Header{SessionID: m.Sess.ID},
			ResponseCode:     message.ResponseOK,
			PresentPowerW:    current * voltage,
			EVSENotification: notification,
		}, nil
	default:
		return nil, fmt.Errorf("secc: unexpected charge loop request type %T", body)
	}
}

func (m *Machine) handleWeldingDetection2(ctx context.Context, req *message.WeldingDetectionReq) (message.Body, error) {
	_ = req
	v, err := m.Ctrl.PresentVoltage(ctx)
	if err != nil {
		return nil, fmt.Errorf("secc: controller PresentVoltage: %w", err)
	}
	return &message.WeldingDetectionRes{
		Header:              message.Header{SessionID: m.Sess.ID},
		ResponseCode:        message.ResponseOK,
		EVSEPresentVoltageV: v,
	}, nil
}

func (m *Machine) handleSessionStop2(req *message.SessionStopReq) (message.Body, error) {
	_ = req
	return &message.SessionStopRes{
		Header:       message.Header{SessionID: m.Sess.ID},
		ResponseCode: message.ResponseOK,
	}, nil
}
