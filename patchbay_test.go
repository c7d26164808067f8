package patchbay_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobheim/patchbay"
	"github.com/tobheim/patchbay/internal/adapters/memory"
	"github.com/tobheim/patchbay/pkg/domain"
	"github.com/tobheim/patchbay/pkg/platform"
	"github.com/tobheim/patchbay/pkg/ports"
	"github.com/tobheim/patchbay/pkg/routing"
	"github.com/tobheim/patchbay/pkg/session"
)

func newDevice(t *testing.T) (*patchbay.Device, *memory.Device) {
	t.Helper()
	spec, err := platform.Builtin().Lookup("go")
	require.NoError(t, err)

	backend := memory.NewDevice(spec)
	dev, err := patchbay.New(backend, "go")
	require.NoError(t, err)
	return dev, backend
}

func chainConfig() *domain.DeployConfig {
	return &domain.DeployConfig{
		Platform: "go",
		Slots: map[int]domain.SlotConfig{
			1: {Instrument: "WaveformGenerator"},
			2: {Instrument: "Oscilloscope"},
		},
		Routing: []domain.Connection{
			{Source: "IN1", Destination: "Slot1InA"},
			{Source: "Slot1OutA", Destination: "Slot2InA"},
			{Source: "Slot2OutA", Destination: "OUT1"},
		},
	}
}

func TestNewRejectsUnknownPlatform(t *testing.T) {
	spec, err := platform.Builtin().Lookup("go")
	require.NoError(t, err)

	_, err = patchbay.New(memory.NewDevice(spec), "quantum")
	assert.ErrorIs(t, err, domain.ErrUnknownPlatform)
}

func TestDeployEndToEnd(t *testing.T) {
	ctx := context.Background()
	dev, backend := newDevice(t)

	require.NoError(t, dev.Deploy(ctx, chainConfig(), session.ClaimOptions{Persist: true}))

	// Persist keeps the state across the scoped session's release.
	state, err := dev.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, state.DeployedSlots())
	assert.Len(t, state.Connections, 3)

	// And the device is free for the next client.
	token, err := backend.ClaimOwnership(ctx, ports.ClaimRequest{})
	require.NoError(t, err)
	require.NoError(t, backend.RelinquishOwnership(ctx, token))
}

func TestDeployWithoutPersistResetsState(t *testing.T) {
	ctx := context.Background()
	dev, _ := newDevice(t)

	require.NoError(t, dev.Deploy(ctx, chainConfig(), session.ClaimOptions{}))

	state, err := dev.State(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.DeployedSlots(), "without persist, release resets the device")
}

func TestDeployAgainstBusyDevice(t *testing.T) {
	ctx := context.Background()
	dev, backend := newDevice(t)

	rival := session.NewManager(backend)
	h, err := rival.Claim(ctx, session.ClaimOptions{})
	require.NoError(t, err)
	defer func() { require.NoError(t, rival.Relinquish(ctx, h)) }()

	err = dev.Deploy(ctx, chainConfig(), session.ClaimOptions{})
	assert.ErrorIs(t, err, domain.ErrBusy)

	// Force wins and invalidates the rival.
	require.NoError(t, dev.Deploy(ctx, chainConfig(), session.ClaimOptions{Force: true}))
	assert.Error(t, rival.Relinquish(ctx, h))
}

func TestDeployAbortsOnRoutingViolations(t *testing.T) {
	ctx := context.Background()
	dev, _ := newDevice(t)

	cfg := chainConfig()
	cfg.Routing = append(cfg.Routing, domain.Connection{Source: "IN2", Destination: "Slot1InA"})

	err := dev.Deploy(ctx, cfg, session.ClaimOptions{Persist: true})

	var verrs routing.Errors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has(routing.CodeMultipleDrivers))

	state, err := dev.State(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.Connections, "no connection may reach the device on a validation failure")
}

func TestValidateIsLocal(t *testing.T) {
	dev, backend := newDevice(t)

	cfg := chainConfig()
	cfg.Routing = append(cfg.Routing, domain.Connection{Source: "Slot2OutB", Destination: "Slot1InB"})

	verrs := dev.Validate(cfg)
	assert.True(t, verrs.Has(routing.CodeRoutingCycle))

	// Validation never claims the device.
	ctx := context.Background()
	h, err := session.NewManager(backend).Claim(ctx, session.ClaimOptions{})
	require.NoError(t, err)
	require.NoError(t, session.NewManager(backend).Relinquish(ctx, h))
}

func TestDeployReleasesAfterFailure(t *testing.T) {
	ctx := context.Background()
	dev, backend := newDevice(t)

	backend.OnSetInstrument = func(slot int, inst string) error {
		return errors.New("slot hardware fault")
	}
	assert.Error(t, dev.Deploy(ctx, chainConfig(), session.ClaimOptions{}))

	backend.OnSetInstrument = nil
	require.NoError(t, dev.Deploy(ctx, chainConfig(), session.ClaimOptions{}),
		"device must be claimable after a failed deployment")
}
