package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_EmptyDSN(t *testing.T) {
	_, err := Connect(context.Background(), " ")
	require.Error(t, err)
}

func TestConnectOptional_EmptyDSNIsNoop(t *testing.T) {
	db, cleanup := ConnectOptional(context.Background(), "", nil)
	assert.Nil(t, db)
	require.NotNil(t, cleanup)
	cleanup()
}
