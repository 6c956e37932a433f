package secc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-iso15118/hlc/pkg/message"
)

func TestChooseDialect_Prefers20WhenBothOffered(t *testing.T) {
	dialect, schemaID := chooseDialect([]message.AppProtocol{
		{Namespace: "urn:iso:15118:2:2013:MsgDef-2", SchemaID: 1},
		{Namespace: "urn:iso:std:iso:15118:-20", SchemaID: 2},
	})
	require.Equal(t, message.Dialect20, dialect)
	require.Equal(t, uint8(2), schemaID)
}

func TestChooseDialect_FallsBackTo2(t *testing.T) {
	dialect, schemaID := chooseDialect([]message.AppProtocol{
		{Namespace: "urn:iso:15118:2:2013:MsgDef-2", SchemaID: 7},
	})
	require.Equal(t, message.Dialect2, dialect)
	require.Equal(t, uint8(7), schemaID)
}

func TestChooseDialect_NoMatchReturnsUnknown(t *testing.T) {
	dialect, _ := chooseDialect([]message.AppProtocol{
		{Namespace: "urn:example:unsupported", SchemaID: 9},
	})
	require.Equal(t, message.DialectUnknown, dialect)
}
