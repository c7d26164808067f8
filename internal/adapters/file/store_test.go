package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobheim/patchbay/pkg/domain"
	"github.com/tobheim/patchbay/pkg/ports"
)

func TestFileDiscoveryStoreContract(t *testing.T) {
	ports.RunDiscoveryStoreContract(t, New(t.TempDir()))
}

func TestSaveRejectsPathSeparatorInSerial(t *testing.T) {
	store := New(t.TempDir())
	err := store.Save(context.Background(), domain.DeviceInfo{
		Serial:  "../escape",
		Address: "192.0.2.1",
	})
	assert.Error(t, err)
}

func TestListSkipsMalformedRecords(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.DeviceInfo{
		Serial:   "MK001",
		Address:  "192.0.2.1",
		Platform: "go",
		LastSeen: time.Now().UTC(),
	}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))

	devices, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "MK001", devices[0].Serial)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := New(t.TempDir())
	assert.NoError(t, store.Delete(context.Background(), "never-saved"))
}

func TestListOnMissingDirectory(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "does-not-exist-yet"))
	devices, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, devices)
}
