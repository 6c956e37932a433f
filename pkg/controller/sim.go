package controller

import (
	"context"

	"github.com/go-iso15118/hlc/pkg/message"
)

// EVCCSimulator is a deterministic in-core EVCCController used when
// EVCC_CONTROLLER_SIM is set (spec §6). It models a vehicle charging
// from 20% to 80% SOC at a fixed rate, with no mid-session stop or
// renegotiation requests — useful as the default harness for the S1-S6
// scenarios in spec §8 without requiring real hardware.
type EVCCSimulator struct {
	ID         string
	Mode       message.EnergyTransferMode
	AuthMethod message.AuthorizationMethod
	UseTLS     bool

	soc       int
	targetSOC int
}

// NewEVCCSimulator returns a simulator starting at 20% SOC with an 80%
// target, requesting mode/authMethod and TLS per the given flags.
func NewEVCCSimulator(id string, mode message.EnergyTransferMode, authMethod message.AuthorizationMethod, useTLS bool) *EVCCSimulator {
	return &EVCCSimulator{
		ID:         id,
		Mode:       mode,
		AuthMethod: authMethod,
		UseTLS:     useTLS,
		soc:        20,
		targetSOC:  80,
	}
}

func (s *EVCCSimulator) EVCCID() string                           { return s.ID }
func (s *EVCCSimulator) PreferredEnergyMode() message.EnergyTransferMode { return s.Mode }
func (s *EVCCSimulator) PreferTLS() bool                          { return s.UseTLS }
func (s *EVCCSimulator) PreferredAuthMethod() message.AuthorizationMethod { return s.AuthMethod }

func (s *EVCCSimulator) Battery(ctx context.Context) (BatteryState, error) {
	return BatteryState{CurrentSOC: s.soc, TargetSOC: s.targetSOC, MaxPowerW: 22000}, nil
}

// Tick advances the simulated SOC by one charge-loop iteration's worth
// of energy. Session drivers call this once per ChargeLoop/CurrentDemand
// response so ChargingShouldStop eventually reports true.
func (s *EVCCSimulator) Tick() {
	if s.soc < s.targetSOC {
		s.soc++
	}
}

func (s *EVCCSimulator) ChargingShouldStop(ctx context.Context) (bool, error) {
	return s.soc >= s.targetSOC, nil
}

func (s *EVCCSimulator) RenegotiationRequested(ctx context.Context) (bool, error) {
	return false, nil
}

// SECCSimulator is a deterministic in-core SECCController used when
// SECC_CONTROLLER_SIM is set. It accepts every EIM authorization
// request, treats PnC as authorized once the caller reports a validated
// contract chain, and offers a flat single-slot schedule at the requested
// power, falling back to its configured ceiling when the request is zero
// or above it.
type SECCSimulator struct {
	ID          string
	EnergyModes []message.EnergyTransferMode
	AuthMethods []message.AuthorizationMethod
	MaxPowerW   float64

	stopRequested bool
}

// NewSECCSimulator returns a simulator offering modes/authMethods up to
// maxPowerW.
func NewSECCSimulator(id string, modes []message.EnergyTransferMode, authMethods []message.AuthorizationMethod, maxPowerW float64) *SECCSimulator {
	return &SECCSimulator{ID: id, EnergyModes: modes, AuthMethods: authMethods, MaxPowerW: maxPowerW}
}

func (s *SECCSimulator) EVSEID() string { return s.ID }
func (s *SECCSimulator) SupportedEnergyModes() []message.EnergyTransferMode { return s.EnergyModes }
func (s *SECCSimulator) SupportedAuthMethods() []message.AuthorizationMethod { return s.AuthMethods }

func (s *SECCSimulator) IsAuthorized(ctx context.Context, a AuthorizationContext) (AuthorizationDecision, error) {
	if a.Method == message.AuthPnC {
		if a.ContractValid {
			return AuthorizationAccepted, nil
		}
		return AuthorizationRejected, nil
	}
	return AuthorizationAccepted, nil
}

func (s *SECCSimulator) PresentVoltage(ctx context.Context) (float64, error) { return 400.0, nil }
func (s *SECCSimulator) PresentCurrent(ctx context.Context) (float64, error) { return 32.0, nil }

func (s *SECCSimulator) Limits(ctx context.Context) (EnergyLimits, error) {
	return EnergyLimits{MaxVoltage: 500, MaxCurrent: s.MaxPowerW / 400, MaxPowerW: s.MaxPowerW}, nil
}

func (s *SECCSimulator) BuildSchedule(ctx context.Context, req ScheduleRequirements) (ChargingSchedule, error) {
	limit := req.MaxPowerW
	if limit <= 0 || limit > s.MaxPowerW {
		limit = s.MaxPowerW
	}
	return ChargingSchedule{
		ID:          1,
		PowerLimitW: []float64{limit},
		SlotSeconds: 3600,
	}, nil
}

// RequestStop marks the simulator to signal EVSENotification=Stop on the
// next ShouldStop poll.
func (s *SECCSimulator) RequestStop() { s.stopRequested = true }

func (s *SECCSimulator) ShouldStop(ctx context.Context) (bool, error) {
	return s.stopRequested, nil
}
