package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/tobheim/patchbay/pkg/domain"
	"github.com/tobheim/patchbay/pkg/ports"
)

// DiscoveryStore implements ports.DiscoveryStore in memory.
type DiscoveryStore struct {
	mu      sync.RWMutex
	devices map[string]domain.DeviceInfo
}

var _ ports.DiscoveryStore = (*DiscoveryStore)(nil)

// NewDiscoveryStore creates an empty in-memory discovery store.
func NewDiscoveryStore() *DiscoveryStore {
	return &DiscoveryStore{devices: make(map[string]domain.DeviceInfo)}
}

func (s *DiscoveryStore) Save(ctx context.Context, info domain.DeviceInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.devices[info.Serial] = info
	return nil
}

func (s *DiscoveryStore) Load(ctx context.Context, serial string) (domain.DeviceInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info, ok := s.devices[serial]
	if !ok {
		return domain.DeviceInfo{}, fmt.Errorf("%w: %q", domain.ErrDeviceNotFound, serial)
	}
	return info, nil
}

func (s *DiscoveryStore) List(ctx context.Context) ([]domain.DeviceInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.DeviceInfo, 0, len(s.devices))
	for _, info := range s.devices {
		out = append(out, info)
	}
	return out, nil
}

func (s *DiscoveryStore) Delete(ctx context.Context, serial string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.devices, serial)
	return nil
}
