package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	_ "github.com/odyssey-erp/odyssey-console/internal/testing/guard"
)

func TestServeSkipsStartupInTestMode(t *testing.T) {
	require.NoError(t, serve(context.Background()))
}
