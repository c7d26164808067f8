package patchbay

import (
	"context"
	"log/slog"

	"github.com/tobheim/patchbay/internal/logging"
	"github.com/tobheim/patchbay/pkg/deploy"
	"github.com/tobheim/patchbay/pkg/domain"
	"github.com/tobheim/patchbay/pkg/instrument"
	"github.com/tobheim/patchbay/pkg/platform"
	"github.com/tobheim/patchbay/pkg/ports"
	"github.com/tobheim/patchbay/pkg/routing"
	"github.com/tobheim/patchbay/pkg/session"
)

// Device is the high-level entry point for the patchbay library. It wires a
// session manager and deployment coordinator over one device backend.
// Independent devices get independent Device values; there is no shared
// process-wide state.
type Device struct {
	backend  ports.DeviceBackend
	spec     platform.Spec
	sessions *session.Manager
	coord    *deploy.Coordinator

	catalog   *platform.Catalog
	logger    *slog.Logger
	manifests map[string]instrument.Manifest
}

// Option defines a functional option for configuring the Device.
type Option func(*Device)

// WithLogger configures structured logging for session and deployment events.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Device) {
		d.logger = logger
	}
}

// WithCatalog replaces the built-in platform catalog.
func WithCatalog(catalog *platform.Catalog) Option {
	return func(d *Device) {
		d.catalog = catalog
	}
}

// WithManifests registers instrument manifests used to narrow slot port
// exposure during validation.
func WithManifests(manifests map[string]instrument.Manifest) Option {
	return func(d *Device) {
		d.manifests = manifests
	}
}

// New creates a Device for the given backend and platform id.
func New(backend ports.DeviceBackend, platformID string, opts ...Option) (*Device, error) {
	d := &Device{
		backend: backend,
		catalog: platform.Builtin(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}

	spec, err := d.catalog.Lookup(platformID)
	if err != nil {
		return nil, err
	}
	d.spec = spec

	d.sessions = session.NewManager(backend, session.WithLogger(d.logger))
	d.coord = deploy.NewCoordinator(backend, spec,
		deploy.WithLogger(d.logger),
		deploy.WithManifests(d.manifests),
	)
	return d, nil
}

// Spec returns the device's platform topology.
func (d *Device) Spec() platform.Spec {
	return d.spec
}

// Sessions exposes the session manager for callers that need to hold a
// claim across multiple operations.
func (d *Device) Sessions() *session.Manager {
	return d.sessions
}

// Coordinator exposes the deployment coordinator for use with an explicitly
// managed session handle.
func (d *Device) Coordinator() *deploy.Coordinator {
	return d.coord
}

// Validate checks cfg's routing locally without touching the device.
func (d *Device) Validate(cfg *domain.DeployConfig) routing.Errors {
	return d.coord.Validate(cfg)
}

// Deploy claims the device, applies cfg, and releases the claim on every
// exit path. Validation failures abort before any routing state changes.
func (d *Device) Deploy(ctx context.Context, cfg *domain.DeployConfig, opts session.ClaimOptions) error {
	return d.sessions.WithSession(ctx, opts, func(ctx context.Context, h *session.Handle) error {
		return d.coord.Apply(ctx, h, cfg)
	})
}

// State fetches the device's current slot and routing state.
func (d *Device) State(ctx context.Context) (domain.DeviceState, error) {
	return d.coord.State(ctx)
}
