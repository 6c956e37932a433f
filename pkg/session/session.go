// Package session implements the Session data model, per-session timers,
// and the session store described in spec §3, §4.5/§4.6, and §4.9.
package session

import (
	"crypto/x509"
	"time"

	"github.com/go-iso15118/hlc/pkg/message"
)

// Role distinguishes which side of the exchange a Session record
// represents the local peer for.
type Role uint8

const (
	RoleEVCC Role = iota
	RoleSECC
)

func (r Role) String() string {
	if r == RoleEVCC {
		return "EVCC"
	}
	return "SECC"
}

// ID is the 8-byte V2G session identifier exchanged in every message
// Header (spec §3).
type ID [8]byte

// Session is the full per-exchange record spec §3 describes: identity,
// negotiated parameters, timer state, and the current position in the
// state machine. A Session is owned by exactly one goroutine (the loop
// driving it, per spec §5) — the Store only hands out copies/pointers
// under its own lock for lookup, never for concurrent mutation.
type Session struct {
	ID      ID
	Role    Role
	Dialect message.Dialect

	State   State
	Started time.Time

	EnergyTransferMode  message.EnergyTransferMode
	AuthMethod          message.AuthorizationMethod
	SelectedServiceID   int
	Schedule            interface{} // message.ChargingSchedule, set by the SECC once negotiated

	TLSEnabled bool

	PeerCert  *x509.Certificate
	LocalCert *x509.Certificate

	Timeouts Timeouts
	Timer    Timer

	RenegotiationRequested bool
	TerminationReason      TerminationReason
	TerminationDetail      string
}

// New creates a fresh Session in StateIdle with the default spec §4.5
// timeouts armed as a sequence timer (every session starts by waiting
// on SupportedAppProtocolReq/Res, bound by the sequence timeout).
func New(id ID, role Role, dialect message.Dialect, now time.Time) *Session {
	s := &Session{
		ID:       id,
		Role:     role,
		Dialect:  dialect,
		State:    StateIdle,
		Started:  now,
		Timeouts: DefaultTimeouts(),
	}
	s.Timer.Arm(TimerSequence, s.Timeouts.Sequence, now)
	return s
}

// ArmSequence re-arms the sequence timer: the bound on a single
// request/response round trip (spec §4.5).
func (s *Session) ArmSequence(now time.Time) {
	s.Timer.Arm(TimerSequence, s.Timeouts.Sequence, now)
}

// ArmOngoing re-arms the ongoing timer: the bound on the gap between
// the end of one exchange and the start of the next (spec §4.5).
func (s *Session) ArmOngoing(now time.Time) {
	s.Timer.Arm(TimerOngoing, s.Timeouts.Ongoing, now)
}

// ArmPerformance re-arms the tighter timer CurrentDemand/ChargeLoop
// exchanges use while charging is active (spec §4.5).
func (s *Session) ArmPerformance(now time.Time) {
	s.Timer.Arm(TimerPerformance, s.Timeouts.Performance, now)
}

// Terminate moves the session to StateTerminated and records why,
// for the diagnostic record spec §7 requires on every session failure.
func (s *Session) Terminate(reason TerminationReason, detail string) {
	s.State = StateTerminated
	s.TerminationReason = reason
	s.TerminationDetail = detail
	s.Timer.Cancel()
}
