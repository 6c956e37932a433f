package controller_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-iso15118/hlc/pkg/controller"
	"github.com/go-iso15118/hlc/pkg/message"
)

func TestEVCCSimulator_TicksToTargetSOC(t *testing.T) {
	sim := controller.NewEVCCSimulator("EVCC-1", message.ModeACSinglePhase, message.AuthEIM, false)
	ctx := context.Background()

	stop, err := sim.ChargingShouldStop(ctx)
	require.NoError(t, err)
	require.False(t, stop)

	for i := 0; i < 100; i++ {
		sim.Tick()
	}

	stop, err = sim.ChargingShouldStop(ctx)
	require.NoError(t, err)
	require.True(t, stop)
}

func TestSECCSimulator_PnCRequiresValidatedContract(t *testing.T) {
	sim := controller.NewSECCSimulator("EVSE-1", []message.EnergyTransferMode{message.ModeACSinglePhase}, []message.AuthorizationMethod{message.AuthEIM, message.AuthPnC}, 22000)
	ctx := context.Background()

	decision, err := sim.IsAuthorized(ctx, controller.AuthorizationContext{Method: message.AuthPnC, ContractValid: false})
	require.NoError(t, err)
	require.Equal(t, controller.AuthorizationRejected, decision)

	decision, err = sim.IsAuthorized(ctx, controller.AuthorizationContext{Method: message.AuthPnC, ContractValid: true})
	require.NoError(t, err)
	require.Equal(t, controller.AuthorizationAccepted, decision)

	decision, err = sim.IsAuthorized(ctx, controller.AuthorizationContext{Method: message.AuthEIM})
	require.NoError(t, err)
	require.Equal(t, controller.AuthorizationAccepted, decision)
}

func TestSECCSimulator_BuildScheduleCapsAtMaxPower(t *testing.T) {
	sim := controller.NewSECCSimulator("EVSE-1", nil, nil, 11000)
	sched, err := sim.BuildSchedule(context.Background(), controller.ScheduleRequirements{MaxPowerW: 50000})
	require.NoError(t, err)
	require.Equal(t, []float64{11000}, sched.PowerLimitW)
}

func TestSECCSimulator_ShouldStopAfterRequestStop(t *testing.T) {
	sim := controller.NewSECCSimulator("EVSE-1", nil, nil, 11000)
	ctx := context.Background()

	stop, err := sim.ShouldStop(ctx)
	require.NoError(t, err)
	require.False(t, stop)

	sim.RequestStop()
	stop, err = sim.ShouldStop(ctx)
	require.NoError(t, err)
	require.True(t, stop)
}
