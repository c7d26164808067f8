package instrument

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, `
name: pulsestar
display_name: PulseStar
version: "1.2.0"
num_inputs: 1
num_outputs: 2
bitstream_path: build/pulsestar.tar.gz
`)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	if m.Name != "pulsestar" || m.NumInputs != 1 || m.NumOutputs != 2 {
		t.Errorf("unexpected manifest: %+v", m)
	}
	if string(m.InputLetters()) != "A" {
		t.Errorf("InputLetters() = %q, want A", m.InputLetters())
	}
	if string(m.OutputLetters()) != "AB" {
		t.Errorf("OutputLetters() = %q, want AB", m.OutputLetters())
	}
}

func TestLoadManifestRejectsBadPortCounts(t *testing.T) {
	path := writeManifest(t, `
name: greedy
num_inputs: 5
num_outputs: 1
`)
	if _, err := LoadManifest(path); err == nil {
		t.Fatal("manifest with 5 inputs should be rejected")
	}
}

func TestManifestRequiresName(t *testing.T) {
	m := Manifest{NumInputs: 1, NumOutputs: 1}
	if err := m.Validate(); err == nil {
		t.Fatal("nameless manifest should be rejected")
	}
}

func TestDecodeCloudCompile(t *testing.T) {
	// YAML hands over loosely typed values; decoding must coerce them.
	bag := map[string]any{
		"bitstream": "build/filter.tar.gz",
		"control_registers": map[string]any{
			"0": 42,
			"5": "1000",
		},
		"custom_vendor_key": "ignored",
	}

	cc, err := DecodeCloudCompile(bag)
	if err != nil {
		t.Fatalf("DecodeCloudCompile() error = %v", err)
	}
	if cc.Bitstream != "build/filter.tar.gz" {
		t.Errorf("Bitstream = %q", cc.Bitstream)
	}
	if cc.ControlRegisters[0] != 42 || cc.ControlRegisters[5] != 1000 {
		t.Errorf("ControlRegisters = %v", cc.ControlRegisters)
	}
	if err := cc.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestCloudCompileValidation(t *testing.T) {
	if err := (CloudCompileSettings{}).Validate(); err == nil {
		t.Error("missing bitstream should be rejected")
	}

	bad := CloudCompileSettings{
		Bitstream:        "b.tar.gz",
		ControlRegisters: map[int]uint32{16: 1},
	}
	if err := bad.Validate(); err == nil {
		t.Error("register 16 should be out of range")
	}
}
