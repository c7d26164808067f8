package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobheim/patchbay/pkg/domain"
	"github.com/tobheim/patchbay/pkg/platform"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deploy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `
platform: go
slots:
  1:
    instrument: WaveformGenerator
  2:
    instrument: Oscilloscope
routing:
  - source: IN1
    destination: Slot1InA
  - source: Slot1OutA
    destination: Slot2InA
`)

	cfg, err := Load(path, platform.Builtin())
	require.NoError(t, err)
	assert.Equal(t, "go", cfg.Platform)
	assert.Equal(t, []int{1, 2}, cfg.SlotNumbers())
	require.Len(t, cfg.Routing, 2)
	assert.Equal(t, "IN1", cfg.Routing[0].Source)
}

func TestLoadRejectsUnknownPlatform(t *testing.T) {
	path := writeConfig(t, `
platform: quantum
slots:
  1:
    instrument: Oscilloscope
`)
	_, err := Load(path, platform.Builtin())
	assert.ErrorIs(t, err, domain.ErrUnknownPlatform)
}

func TestLoadRejectsOutOfRangeSlot(t *testing.T) {
	path := writeConfig(t, `
platform: go
slots:
  3:
    instrument: Oscilloscope
`)
	_, err := Load(path, platform.Builtin())
	assert.ErrorContains(t, err, "slot 3")
}

func TestLoadRejectsEmptyInstrument(t *testing.T) {
	path := writeConfig(t, `
platform: go
slots:
  1:
    instrument: ""
`)
	_, err := Load(path, platform.Builtin())
	assert.ErrorContains(t, err, "no instrument")
}

func TestLoadChecksCloudCompileSettings(t *testing.T) {
	missing := writeConfig(t, `
platform: go
slots:
  1:
    instrument: CloudCompile
    settings:
      control_registers:
        0: 42
`)
	_, err := Load(missing, platform.Builtin())
	assert.ErrorContains(t, err, "bitstream")

	valid := writeConfig(t, `
platform: go
slots:
  1:
    instrument: CloudCompile
    settings:
      bitstream: build/filter.tar.gz
      control_registers:
        0: 42
        5: 1000
`)
	cfg, err := Load(valid, platform.Builtin())
	require.NoError(t, err)
	assert.Equal(t, "CloudCompile", cfg.Slots[1].Instrument)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), platform.Builtin())
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := &domain.DeployConfig{
		Platform: "lab",
		Slots: map[int]domain.SlotConfig{
			1: {Instrument: "Phasemeter"},
		},
		Routing: []domain.Connection{
			{Source: "IN1", Destination: "Slot1InA"},
		},
	}

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path, platform.Builtin())
	require.NoError(t, err)
	assert.Equal(t, cfg.Platform, loaded.Platform)
	assert.Equal(t, cfg.Slots, loaded.Slots)
	assert.Equal(t, cfg.Routing, loaded.Routing)
}
