// Package file provides a filesystem-backed discovery store. Device records
// are stored as one JSON file per serial under a base directory.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tobheim/patchbay/pkg/domain"
	"github.com/tobheim/patchbay/pkg/ports"
)

// Store implements ports.DiscoveryStore using the local filesystem.
type Store struct {
	BasePath string
}

var _ ports.DiscoveryStore = (*Store)(nil)

// New creates a Store rooted at basePath. If basePath is empty, it defaults
// to ".patchbay/devices".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".patchbay", "devices")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(serial string) string {
	return filepath.Join(s.BasePath, serial+".json")
}

// Save persists a device record atomically: write to a temp file in the same
// directory, fsync, then rename over the destination.
func (s *Store) Save(ctx context.Context, info domain.DeviceInfo) error {
	if info.Serial == "" {
		return fmt.Errorf("device serial cannot be empty")
	}
	if strings.ContainsAny(info.Serial, `/\`) {
		return fmt.Errorf("device serial %q contains path separators", info.Serial)
	}

	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return fmt.Errorf("failed to ensure device directory: %w", err)
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal device record: %w", err)
	}

	tmp, err := os.CreateTemp(s.BasePath, "tmp-"+info.Serial+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path(info.Serial)); err != nil {
		return fmt.Errorf("failed to replace device record: %w", err)
	}
	return nil
}

// Load reads one device record by serial.
func (s *Store) Load(ctx context.Context, serial string) (domain.DeviceInfo, error) {
	data, err := os.ReadFile(s.path(serial))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.DeviceInfo{}, fmt.Errorf("%w: %q", domain.ErrDeviceNotFound, serial)
		}
		return domain.DeviceInfo{}, fmt.Errorf("failed to read device record: %w", err)
	}

	var info domain.DeviceInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return domain.DeviceInfo{}, fmt.Errorf("failed to parse device record: %w", err)
	}
	return info, nil
}

// List returns every readable record under the base path. Unreadable or
// malformed files are skipped rather than failing the whole listing.
func (s *Store) List(ctx context.Context) ([]domain.DeviceInfo, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list device directory: %w", err)
	}

	var devices []domain.DeviceInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		serial := strings.TrimSuffix(entry.Name(), ".json")
		info, err := s.Load(ctx, serial)
		if err != nil {
			continue
		}
		devices = append(devices, info)
	}
	return devices, nil
}

// Delete removes a device record. Deleting a missing record is not an error.
func (s *Store) Delete(ctx context.Context, serial string) error {
	err := os.Remove(s.path(serial))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete device record: %w", err)
	}
	return nil
}
