package instrument

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// CloudCompile is the instrument type whose settings the deployment layer
// must understand: it carries a user bitstream and control register values
// that deployment has to stage.
const CloudCompile = "CloudCompile"

// CloudCompileSettings is the typed view of a CloudCompile slot's settings
// bag. Unknown keys in the bag are preserved for passthrough; these fields
// are only the portion deployment reasons about.
type CloudCompileSettings struct {
	// Bitstream is the path of the user bitstream to load into the slot.
	Bitstream string `mapstructure:"bitstream"`

	// ControlRegisters maps register index to value.
	ControlRegisters map[int]uint32 `mapstructure:"control_registers"`
}

// DecodeCloudCompile decodes the typed portion of a CloudCompile settings
// bag. Numeric values are coerced (YAML decodes integers loosely), unknown
// keys are ignored.
func DecodeCloudCompile(settings map[string]any) (CloudCompileSettings, error) {
	var out CloudCompileSettings
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return CloudCompileSettings{}, err
	}
	if err := decoder.Decode(settings); err != nil {
		return CloudCompileSettings{}, fmt.Errorf("decode CloudCompile settings: %w", err)
	}
	return out, nil
}

// Validate checks the constraints deployment depends on.
func (s CloudCompileSettings) Validate() error {
	if s.Bitstream == "" {
		return fmt.Errorf("CloudCompile slot requires a bitstream")
	}
	for reg := range s.ControlRegisters {
		if reg < 0 || reg > 15 {
			return fmt.Errorf("control register %d out of range 0-15", reg)
		}
	}
	return nil
}
