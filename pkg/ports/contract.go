package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobheim/patchbay/pkg/domain"
)

// RunBackendContract verifies that a DeviceBackend implementation adheres to
// the ownership and state semantics the core depends on. The factory must
// return a fresh, unowned device per call.
func RunBackendContract(t *testing.T, factory func(t *testing.T) DeviceBackend) {
	ctx := context.Background()

	t.Run("ClaimAndRelinquish", func(t *testing.T) {
		backend := factory(t)

		token, err := backend.ClaimOwnership(ctx, ClaimRequest{})
		require.NoError(t, err)
		require.NotEmpty(t, token)

		require.NoError(t, backend.RelinquishOwnership(ctx, token))
	})

	t.Run("BusyIsSemantic", func(t *testing.T) {
		backend := factory(t)

		token, err := backend.ClaimOwnership(ctx, ClaimRequest{})
		require.NoError(t, err)

		_, err = backend.ClaimOwnership(ctx, ClaimRequest{})
		assert.ErrorIs(t, err, domain.ErrBusy)

		require.NoError(t, backend.RelinquishOwnership(ctx, token))

		// A relinquished device is claimable again.
		token2, err := backend.ClaimOwnership(ctx, ClaimRequest{})
		require.NoError(t, err)
		require.NoError(t, backend.RelinquishOwnership(ctx, token2))
	})

	t.Run("ForceInvalidatesPriorHolder", func(t *testing.T) {
		backend := factory(t)

		stale, err := backend.ClaimOwnership(ctx, ClaimRequest{})
		require.NoError(t, err)

		fresh, err := backend.ClaimOwnership(ctx, ClaimRequest{Force: true})
		require.NoError(t, err)
		require.NotEqual(t, stale, fresh)

		// The prior holder observes OwnershipLost on its next write.
		err = backend.SetInstrument(ctx, stale, 1, "Oscilloscope", nil)
		assert.ErrorIs(t, err, domain.ErrOwnershipLost)

		err = backend.SetInstrument(ctx, fresh, 1, "Oscilloscope", nil)
		require.NoError(t, err)

		require.NoError(t, backend.RelinquishOwnership(ctx, fresh))
	})

	t.Run("StateResetWithoutPersist", func(t *testing.T) {
		backend := factory(t)

		token, err := backend.ClaimOwnership(ctx, ClaimRequest{})
		require.NoError(t, err)
		require.NoError(t, backend.SetInstrument(ctx, token, 1, "Oscilloscope", nil))
		require.NoError(t, backend.RelinquishOwnership(ctx, token))

		instruments, err := backend.GetInstruments(ctx)
		require.NoError(t, err)
		for _, inst := range instruments {
			assert.Empty(t, inst, "non-persisted relinquish must reset slots")
		}
	})

	t.Run("StateSurvivesPersistedRelinquish", func(t *testing.T) {
		backend := factory(t)

		token, err := backend.ClaimOwnership(ctx, ClaimRequest{Persist: true})
		require.NoError(t, err)
		require.NoError(t, backend.SetInstrument(ctx, token, 1, "Oscilloscope", nil))
		require.NoError(t, backend.RelinquishOwnership(ctx, token))

		instruments, err := backend.GetInstruments(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, instruments)
		assert.Equal(t, "Oscilloscope", instruments[0])
	})

	t.Run("InspectionNeedsNoOwnership", func(t *testing.T) {
		backend := factory(t)

		_, err := backend.GetInstruments(ctx)
		assert.NoError(t, err)
		_, err = backend.GetConnections(ctx)
		assert.NoError(t, err)
	})
}

// RunDiscoveryStoreContract verifies that a DiscoveryStore implementation
// adheres to the interface contract.
func RunDiscoveryStoreContract(t *testing.T, store DiscoveryStore) {
	ctx := context.Background()
	serial := "contract-" + time.Now().Format("20060102150405")

	info := domain.DeviceInfo{
		Address:  "192.0.2.10",
		Port:     80,
		Name:     "BenchUnit",
		Serial:   serial,
		Platform: "go",
		LastSeen: time.Now().UTC().Truncate(time.Second),
	}

	t.Run("SaveAndLoad", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, info))

		loaded, err := store.Load(ctx, serial)
		require.NoError(t, err)
		assert.Equal(t, info.Address, loaded.Address)
		assert.Equal(t, info.Name, loaded.Name)
		assert.Equal(t, info.Platform, loaded.Platform)
	})

	t.Run("LoadNonExistent", func(t *testing.T) {
		_, err := store.Load(ctx, "no-such-"+serial)
		assert.ErrorIs(t, err, domain.ErrDeviceNotFound)
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, info))

		devices, err := store.List(ctx)
		require.NoError(t, err)

		found := false
		for _, d := range devices {
			if d.Serial == serial {
				found = true
			}
		}
		assert.True(t, found, "List should include saved device")
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, info))
		require.NoError(t, store.Delete(ctx, serial))

		_, err := store.Load(ctx, serial)
		assert.ErrorIs(t, err, domain.ErrDeviceNotFound)
	})
}
