// Package config loads and saves deployment configuration files (YAML).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tobheim/patchbay/pkg/domain"
	"github.com/tobheim/patchbay/pkg/instrument"
	"github.com/tobheim/patchbay/pkg/platform"
)

// Load reads a deployment configuration from a YAML file and checks it
// against the platform catalog: the platform must exist, every slot number
// must be in range, every slot must name an instrument, and CloudCompile
// slots must carry decodable settings with a bitstream.
func Load(path string, catalog *platform.Catalog) (*domain.DeployConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg domain.DeployConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := Check(&cfg, catalog); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Check validates a deployment configuration's static structure. Routing
// legality is the validator's job; this only covers what must hold before a
// config is worth validating at all.
func Check(cfg *domain.DeployConfig, catalog *platform.Catalog) error {
	spec, err := catalog.Lookup(cfg.Platform)
	if err != nil {
		return err
	}

	if len(cfg.Slots) == 0 {
		return fmt.Errorf("config: at least one slot must be configured")
	}

	for _, slot := range cfg.SlotNumbers() {
		sc := cfg.Slots[slot]
		if !spec.ValidSlot(slot) {
			return fmt.Errorf("config: slot %d out of range 1-%d for platform %q", slot, spec.Slots, spec.ID)
		}
		if sc.Instrument == "" {
			return fmt.Errorf("config: slot %d has no instrument", slot)
		}
		if sc.Instrument == instrument.CloudCompile {
			cc, err := instrument.DecodeCloudCompile(sc.Settings)
			if err != nil {
				return fmt.Errorf("config: slot %d: %w", slot, err)
			}
			if err := cc.Validate(); err != nil {
				return fmt.Errorf("config: slot %d: %w", slot, err)
			}
		}
	}
	return nil
}

// Save writes a deployment configuration to a YAML file.
func Save(path string, cfg *domain.DeployConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
