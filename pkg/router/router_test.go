package router_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-iso15118/hlc/pkg/message"
	"github.com/go-iso15118/hlc/pkg/router"
	"github.com/go-iso15118/hlc/pkg/session"
)

func TestDialect2Table_HappyPathAC(t *testing.T) {
	table := router.Dialect2()
	sess := session.New(session.ID{1}, session.RoleSECC, message.Dialect2, time.Now())

	steps := []message.Kind{
		message.KindSupportedAppProtocol,
		message.KindSessionSetup,
		message.KindServiceDiscovery,
		message.KindServiceSelection,
		message.KindAuthorization,
		message.KindChargeParameterDiscovery,
		message.KindCableCheck,
		message.KindPreCharge,
		message.KindPowerDelivery,
		message.KindChargeLoop,
		message.KindChargeLoop,
		message.KindPowerDelivery,
		message.KindWeldingDetection,
		message.KindSessionStop,
	}
	for _, k := range steps {
		require.NoError(t, table.Advance(sess, k, time.Now()))
	}
	require.Equal(t, session.StateTerminated, sess.State)
}

func TestDialect2Table_UnexpectedMessageFailsSequence(t *testing.T) {
	table := router.Dialect2()
	sess := session.New(session.ID{1}, session.RoleSECC, message.Dialect2, time.Now())

	require.NoError(t, table.Advance(sess, message.KindSupportedAppProtocol, time.Now()))

	err := table.Advance(sess, message.KindPowerDelivery, time.Now())
	require.Error(t, err)
	var unexpected *router.UnexpectedMessageError
	require.ErrorAs(t, err, &unexpected)
	require.Equal(t, session.StateTerminated, sess.State)
	require.Equal(t, session.TerminationProtocolError, sess.TerminationReason)
}

func TestDialect20Table_HappyPath(t *testing.T) {
	table := router.Dialect20()
	sess := session.New(session.ID{1}, session.RoleSECC, message.Dialect20, time.Now())

	steps := []message.Kind{
		message.KindSupportedAppProtocol,
		message.KindSessionSetup,
		message.KindAuthorizationSetup,
		message.KindAuthorization,
		message.KindServiceDiscovery,
		message.KindServiceSelection,
		message.KindChargeParameterDiscovery,
		message.KindCableCheck,
		message.KindPreCharge,
		message.KindPowerDelivery,
		message.KindChargeLoop,
		message.KindPowerDelivery,
		message.KindSessionStop,
	}
	for _, k := range steps {
		require.NoError(t, table.Advance(sess, k, time.Now()))
	}
	require.Equal(t, session.StateTerminated, sess.State)
}

func TestTable_ExpectSingleEdge(t *testing.T) {
	table := router.Dialect2()
	require.Equal(t, message.KindSupportedAppProtocol, table.Expect(session.StateIdle))
}
