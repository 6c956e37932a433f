// Package controller defines the abstract capability sets the EVCC and
// SECC state machines call into to read or mutate the physical-world
// context (spec §4.8): battery state, energy limits, authorization
// decisions, and the event hooks that let the vehicle or charge point
// drive the protocol rather than just answer it.
package controller

import (
	"context"

	"github.com/go-iso15118/hlc/pkg/message"
)

// AuthorizationDecision is the oracle result spec §4.8 names for
// SECCController.IsAuthorized.
type AuthorizationDecision uint8

const (
	AuthorizationAccepted AuthorizationDecision = iota
	AuthorizationOngoing
	AuthorizationRejected
)

func (d AuthorizationDecision) String() string {
	switch d {
	case AuthorizationAccepted:
		return "Accepted"
	case AuthorizationOngoing:
		return "Ongoing"
	case AuthorizationRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// BatteryState is the EVCC's view of its own pack, read by the state
// machine whenever it needs to build a ChargeParameterDiscovery/
// ScheduleExchange request.
type BatteryState struct {
	CurrentSOC int // percent, 0-100
	TargetSOC  int // percent, 0-100
	MaxPowerW  float64
}

// EnergyLimits is the SECC's present capability, read by the state
// machine while building a ChargeParameterDiscovery/ScheduleExchange
// response or an EVSEStatus during the charge loop.
type EnergyLimits struct {
	MaxVoltage float64
	MaxCurrent float64
	MaxPowerW  float64
}

// ScheduleRequirements is what the EVCC asked for, passed to
// SECCController.BuildSchedule so the SECC's own logic (tariff,
// available capacity) produces a ChargingSchedule.
type ScheduleRequirements struct {
	Mode           message.EnergyTransferMode
	DepartureTime  *int64
	EnergyRequestWh float64
	MaxPowerW      float64
}

// ChargingSchedule is the SECC-offered schedule, opaque to the
// controller abstraction beyond what the state machine needs to embed
// in ScheduleExchangeRes/ChargeParameterDiscoveryRes. It intentionally
// holds dialect-agnostic fields; pkg/secc maps it onto the wire type
// for whichever dialect the session negotiated.
type ChargingSchedule struct {
	ID          int
	PowerLimitW []float64 // one entry per time slot
	SlotSeconds int
}

// EVCCController is the capability set the EVCC state machine (pkg/evcc)
// calls into (spec §4.8).
type EVCCController interface {
	// EVCCID returns the identity string the EVCC presents in
	// SessionSetupReq.
	EVCCID() string

	// PreferredEnergyMode returns the transfer mode the EVCC wants to
	// select from the SECC's offered ServiceDiscoveryRes list.
	PreferredEnergyMode() message.EnergyTransferMode

	// Battery returns the current battery state for schedule building.
	Battery(ctx context.Context) (BatteryState, error)

	// PreferTLS and PreferredAuthMethod report session preferences.
	// pkg/evcc reads PreferredAuthMethod once, when it picks the
	// authorization method after service discovery (-2) or
	// AuthorizationSetup (-20); it does not read PreferTLS, and
	// cmd/start-evcc takes the TLS choice from its configuration.
	PreferTLS() bool
	PreferredAuthMethod() message.AuthorizationMethod

	// ChargingShouldStop is polled during the charge loop; true tells
	// the state machine to initiate a graceful PowerDelivery(Stop).
	ChargingShouldStop(ctx context.Context) (bool, error)

	// RenegotiationRequested is polled during the charge loop; true
	// tells the state machine to request new charge parameters without
	// tearing down the session.
	RenegotiationRequested(ctx context.Context) (bool, error)
}

// Ticker is an optional EVCCController capability: a driver that models
// changing battery state over time (EVCCSimulator) implements it so the
// charge loop can advance it once per iteration. A controller backed by
// real hardware telemetry has no need for it.
type Ticker interface {
	Tick()
}

// SECCController is the capability set the SECC state machine (pkg/secc)
// calls into (spec §4.8).
type SECCController interface {
	// EVSEID returns the identity string the SECC presents in
	// SessionSetupRes.
	EVSEID() string

	// SupportedEnergyModes and SupportedAuthMethods list what the SECC
	// offers in ServiceDiscoveryRes.
	SupportedEnergyModes() []message.EnergyTransferMode
	SupportedAuthMethods() []message.AuthorizationMethod

	// IsAuthorized is the authorization oracle: given the session's
	// negotiated authorization method and any PnC material already
	// validated by pkg/pki, decide whether to accept, hold (Ongoing,
	// causing the EVCC to retry AuthorizationReq), or reject.
	IsAuthorized(ctx context.Context, s AuthorizationContext) (AuthorizationDecision, error)

	// PresentVoltage and PresentCurrent report live measurements for
	// CableCheck/PreCharge/ChargeLoop responses.
	PresentVoltage(ctx context.Context) (float64, error)
	PresentCurrent(ctx context.Context) (float64, error)

	// Limits reports present capability for schedule building and
	// ChargeLoop/CurrentDemand limit fields.
	Limits(ctx context.Context) (EnergyLimits, error)

	// BuildSchedule produces the offered schedule for the given
	// requirements.
	BuildSchedule(ctx context.Context, req ScheduleRequirements) (ChargingSchedule, error)

	// ShouldStop is polled during the charge loop; true tells the
	// state machine to set EVSENotification=Stop on the next response.
	ShouldStop(ctx context.Context) (bool, error)
}

// AuthorizationContext is what the SECC state machine hands
// IsAuthorized: enough for the controller to make its decision without
// reaching back into session internals.
type AuthorizationContext struct {
	Method        message.AuthorizationMethod
	GenChallenge  []byte
	ContractValid bool // true once pkg/pki has validated the PnC chain/signature
}
