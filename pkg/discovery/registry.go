// Package discovery maintains a cache of devices seen on the network, so
// they can be addressed by name or serial instead of IP.
package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tobheim/patchbay/pkg/domain"
	"github.com/tobheim/patchbay/pkg/ports"
)

// Registry resolves device names and serials against a discovery cache.
type Registry struct {
	store ports.DiscoveryStore
	now   func() time.Time
}

// Option configures the Registry.
type Option func(*Registry)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

// NewRegistry creates a registry over the given store.
func NewRegistry(store ports.DiscoveryStore, opts ...Option) *Registry {
	r := &Registry{store: store, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record caches a freshly seen device, stamping its last-seen time.
func (r *Registry) Record(ctx context.Context, info domain.DeviceInfo) error {
	if info.Serial == "" {
		return fmt.Errorf("device record requires a serial")
	}
	info.LastSeen = r.now().UTC()
	return r.store.Save(ctx, info)
}

// Resolve finds a cached device by serial or, failing that, by
// case-insensitive name. Name collisions resolve to the most recently seen
// device.
func (r *Registry) Resolve(ctx context.Context, nameOrSerial string) (domain.DeviceInfo, error) {
	if info, err := r.store.Load(ctx, nameOrSerial); err == nil {
		return info, nil
	}

	devices, err := r.store.List(ctx)
	if err != nil {
		return domain.DeviceInfo{}, fmt.Errorf("list devices: %w", err)
	}

	var best domain.DeviceInfo
	found := false
	for _, d := range devices {
		if !strings.EqualFold(d.Name, nameOrSerial) {
			continue
		}
		if !found || d.LastSeen.After(best.LastSeen) {
			best = d
			found = true
		}
	}
	if !found {
		return domain.DeviceInfo{}, fmt.Errorf("%w: %q", domain.ErrDeviceNotFound, nameOrSerial)
	}
	return best, nil
}

// List returns all cached devices, most recently seen first.
func (r *Registry) List(ctx context.Context) ([]domain.DeviceInfo, error) {
	devices, err := r.store.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(devices, func(i, j int) bool {
		return devices[i].LastSeen.After(devices[j].LastSeen)
	})
	return devices, nil
}

// Forget removes a cached device by serial.
func (r *Registry) Forget(ctx context.Context, serial string) error {
	return r.store.Delete(ctx, serial)
}
