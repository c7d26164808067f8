package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobheim/patchbay/pkg/domain"
	"github.com/tobheim/patchbay/pkg/platform"
	"github.com/tobheim/patchbay/pkg/ports"
)

func spec(t *testing.T, id string) platform.Spec {
	t.Helper()
	s, err := platform.Builtin().Lookup(id)
	require.NoError(t, err)
	return s
}

func TestDeviceBackendContract(t *testing.T) {
	ports.RunBackendContract(t, func(t *testing.T) ports.DeviceBackend {
		return NewDevice(spec(t, "go"))
	})
}

func TestDiscoveryStoreContract(t *testing.T) {
	ports.RunDiscoveryStoreContract(t, NewDiscoveryStore())
}

func TestSetInstrumentRejectsCloudCompileWithoutBitstream(t *testing.T) {
	ctx := context.Background()
	device := NewDevice(spec(t, "go"))

	token, err := device.ClaimOwnership(ctx, ports.ClaimRequest{})
	require.NoError(t, err)

	err = device.SetInstrument(ctx, token, 1, "CloudCompile", map[string]any{})
	assert.ErrorIs(t, err, domain.ErrBitstream)

	err = device.SetInstrument(ctx, token, 1, "CloudCompile", map[string]any{"bitstream": "b.tar.gz"})
	assert.NoError(t, err)
}

func TestSetConnectionsRevalidatesDeviceSide(t *testing.T) {
	ctx := context.Background()
	device := NewDevice(spec(t, "go"))

	token, err := device.ClaimOwnership(ctx, ports.ClaimRequest{})
	require.NoError(t, err)
	require.NoError(t, device.SetInstrument(ctx, token, 1, "Oscilloscope", nil))

	// Slot 2 is empty, so its ports do not resolve.
	err = device.SetConnections(ctx, token, []domain.Connection{
		{Source: "Slot2OutA", Destination: "OUT1"},
	})
	assert.ErrorIs(t, err, domain.ErrRoutingRejected)
}

func TestSetConnectionsEnforcesPlatformLimit(t *testing.T) {
	ctx := context.Background()
	device := NewDevice(spec(t, "go"))

	token, err := device.ClaimOwnership(ctx, ports.ClaimRequest{})
	require.NoError(t, err)
	require.NoError(t, device.SetInstrument(ctx, token, 1, "Oscilloscope", nil))
	require.NoError(t, device.SetInstrument(ctx, token, 2, "Oscilloscope", nil))

	// 17 connections on a 16-connection platform.
	conns := make([]domain.Connection, 0, 17)
	for i := 0; i < 17; i++ {
		conns = append(conns, domain.Connection{Source: "IN1", Destination: "Slot1InA"})
	}
	err = device.SetConnections(ctx, token, conns)
	assert.ErrorIs(t, err, domain.ErrRoutingRejected)
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	device := NewDevice(spec(t, "go"))

	token, err := device.ClaimOwnership(ctx, ports.ClaimRequest{})
	require.NoError(t, err)
	require.NoError(t, device.SetInstrument(ctx, token, 1, "Oscilloscope", nil))

	instruments, err := device.GetInstruments(ctx)
	require.NoError(t, err)
	instruments[0] = "tampered"

	again, err := device.GetInstruments(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Oscilloscope", again[0])
}
