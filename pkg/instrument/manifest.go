// Package instrument models instrument packaging metadata and the typed
// settings variants the deployment layer reasons about. Settings it does not
// reason about remain an opaque key/value bag passed through to the device.
package instrument

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tobheim/patchbay/pkg/domain"
)

// Manifest is the packaging metadata for a deployable instrument: just
// enough to reason about its slot port usage and bitstream artifact.
type Manifest struct {
	// Name is the instrument identifier, e.g. "pulsestar".
	Name string `yaml:"name"`

	// DisplayName is the human-readable name, e.g. "PulseStar".
	DisplayName string `yaml:"display_name"`

	Description string `yaml:"description,omitempty"`
	Author      string `yaml:"author,omitempty"`
	Version     string `yaml:"version,omitempty"`

	// NumInputs and NumOutputs are how many slot virtual ports the
	// instrument actually uses (0-4). A deployed slot only exposes that
	// many letters of the port set.
	NumInputs  int `yaml:"num_inputs"`
	NumOutputs int `yaml:"num_outputs"`

	// BitstreamPath points at the synthesized bitstream artifact, when one
	// is required (CloudCompile-style instruments).
	BitstreamPath string `yaml:"bitstream_path,omitempty"`
}

// LoadManifest reads and validates a YAML manifest file.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Validate checks the manifest's structural constraints.
func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest: name is required")
	}
	max := len(domain.SlotPortLetters)
	if m.NumInputs < 0 || m.NumInputs > max {
		return fmt.Errorf("manifest %q: num_inputs %d out of range 0-%d", m.Name, m.NumInputs, max)
	}
	if m.NumOutputs < 0 || m.NumOutputs > max {
		return fmt.Errorf("manifest %q: num_outputs %d out of range 0-%d", m.Name, m.NumOutputs, max)
	}
	return nil
}

// InputLetters returns the slot port letters the instrument's inputs occupy.
func (m Manifest) InputLetters() []byte {
	return append([]byte(nil), domain.SlotPortLetters[:m.NumInputs]...)
}

// OutputLetters returns the slot port letters the instrument's outputs occupy.
func (m Manifest) OutputLetters() []byte {
	return append([]byte(nil), domain.SlotPortLetters[:m.NumOutputs]...)
}

func (m Manifest) String() string {
	name := m.DisplayName
	if name == "" {
		name = m.Name
	}
	return fmt.Sprintf("%s v%s: %dIN/%dOUT", name, m.Version, m.NumInputs, m.NumOutputs)
}
