package evcc_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-iso15118/hlc/pkg/controller"
	"github.com/go-iso15118/hlc/pkg/evcc"
	"github.com/go-iso15118/hlc/pkg/message"
	"github.com/go-iso15118/hlc/pkg/secc"
	"github.com/go-iso15118/hlc/pkg/session"
)

// fakeEVCC and fakeSECC are minimal, deterministic controller.* stand-ins
// that stop the charge loop after a fixed iteration count instead of
// relying on controller.EVCCSimulator's SOC climbing from 20% to 80% one
// Tick per charge-loop exchange, or on SECCSimulator's RequestStop.
type fakeEVCC struct {
	mode       message.EnergyTransferMode
	authMethod message.AuthorizationMethod
	loops      int
}

func (f *fakeEVCC) EVCCID() string                                 { return "TESTEVCC" }
func (f *fakeEVCC) PreferredEnergyMode() message.EnergyTransferMode { return f.mode }
func (f *fakeEVCC) PreferTLS() bool                                 { return false }
func (f *fakeEVCC) PreferredAuthMethod() message.AuthorizationMethod { return f.authMethod }
func (f *fakeEVCC) Battery(ctx context.Context) (controller.BatteryState, error) {
	return controller.BatteryState{CurrentSOC: 20, TargetSOC: 80, MaxPowerW: 11000}, nil
}
func (f *fakeEVCC) ChargingShouldStop(ctx context.Context) (bool, error) {
	f.loops++
	return f.loops >= 2, nil
}
func (f *fakeEVCC) RenegotiationRequested(ctx context.Context) (bool, error) { return false, nil }

type fakeSECC struct {
	modes       []message.EnergyTransferMode
	authMethods []message.AuthorizationMethod
}

func (f *fakeSECC) EVSEID() string                                         { return "TESTEVSE" }
func (f *fakeSECC) SupportedEnergyModes() []message.EnergyTransferMode      { return f.modes }
func (f *fakeSECC) SupportedAuthMethods() []message.AuthorizationMethod    { return f.authMethods }
func (f *fakeSECC) IsAuthorized(ctx context.Context, a controller.AuthorizationContext) (controller.AuthorizationDecision, error) {
	return controller.AuthorizationAccepted, nil
}
func (f *fakeSECC) PresentVoltage(ctx context.Context) (float64, error) { return 400, nil }
func (f *fakeSECC) PresentCurrent(ctx context.Context) (float64, error) { return 16, nil }
func (f *fakeSECC) Limits(ctx context.Context) (controller.EnergyLimits, error) {
	return controller.EnergyLimits{MaxVoltage: 400, MaxCurrent: 32, MaxPowerW: 11000}, nil
}
func (f *fakeSECC) BuildSchedule(ctx context.Context, req controller.ScheduleRequirements) (controller.ChargingSchedule, error) {
	return controller.ChargingSchedule{ID: 1, PowerLimitW: []float64{11000, 11000}, SlotSeconds: 900}, nil
}
func (f *fakeSECC) ShouldStop(ctx context.Context) (bool, error) { return false, nil }

// TestHappyPath_AC_EIM_Dialect20 drives a full EVCC/SECC session end to
// end over an in-memory pipe (both dialects are offered, so the SECC
// selects -20) and checks spec §8 scenario S1: both sides end in
// Terminated(OK) holding the same session id.
func TestHappyPath_AC_EIM_Dialect20(t *testing.T) {
	evccConn, seccConn := net.Pipe()
	defer evccConn.Close()
	defer seccConn.Close()

	evccSess := session.New(session.ID{}, session.RoleEVCC, message.DialectUnknown, time.Now())
	seccSess := session.New(session.ID{}, session.RoleSECC, message.DialectUnknown, time.Now())

	evccCtrl := &fakeEVCC{mode: message.ModeACSinglePhase, authMethod: message.AuthEIM}
	seccCtrl := &fakeSECC{
		modes:       []message.EnergyTransferMode{message.ModeACSinglePhase},
		authMethods: []message.AuthorizationMethod{message.AuthEIM},
	}

	evccMachine := &evcc.Machine{Sess: evccSess, Ctrl: evccCtrl, Conn: evccConn}
	seccMachine := &secc.Machine{Sess: seccSess, Ctrl: seccCtrl, Conn: seccConn}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	errCh := make(chan error, 2)
	go func() { errCh <- seccMachine.Run(ctx) }()
	go func() { errCh <- evccMachine.Run(ctx) }()

	require.NoError(t, <-errCh)
	require.NoError(t, <-errCh)

	require.Equal(t, session.StateTerminated, evccSess.State)
	require.Equal(t, session.TerminationOK, evccSess.TerminationReason)
	require.Equal(t, session.StateTerminated, seccSess.State)
	require.Equal(t, session.TerminationOK, seccSess.TerminationReason)
	require.Equal(t, evccSess.ID, seccSess.ID)
}

// TestSessionIDIsStableAcrossExchange checks that the SECC assigns a
// non-zero session id at SessionSetup and that the EVCC ends the session
// holding that same id.
func TestSessionIDIsStableAcrossExchange(t *testing.T) {
	evccConn, seccConn := net.Pipe()
	defer evccConn.Close()
	defer seccConn.Close()

	evccSess := session.New(session.ID{}, session.RoleEVCC, message.DialectUnknown, time.Now())
	seccSess := session.New(session.ID{}, session.RoleSECC, message.DialectUnknown, time.Now())

	evccCtrl := &fakeEVCC{mode: message.ModeACSinglePhase, authMethod: message.AuthEIM}
	seccCtrl := &fakeSECC{
		modes:       []message.EnergyTransferMode{message.ModeACSinglePhase},
		authMethods: []message.AuthorizationMethod{message.AuthEIM},
	}

	evccMachine := &evcc.Machine{Sess: evccSess, Ctrl: evccCtrl, Conn: evccConn}
	seccMachine := &secc.Machine{Sess: seccSess, Ctrl: seccCtrl, Conn: seccConn}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	errCh := make(chan error, 2)
	go func() { errCh <- seccMachine.Run(ctx) }()
	go func() { errCh <- evccMachine.Run(ctx) }()
	<-errCh
	<-errCh

	require.NotEqual(t, session.ID{}, seccSess.ID)
	require.Equal(t, seccSess.ID, evccSess.ID)
}
