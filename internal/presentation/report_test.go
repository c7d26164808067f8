package presentation

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tobheim/patchbay/pkg/domain"
	"github.com/tobheim/patchbay/pkg/platform"
	"github.com/tobheim/patchbay/pkg/routing"
)

func TestValidationReportValid(t *testing.T) {
	cfg := &domain.DeployConfig{
		Platform: "go",
		Slots:    map[int]domain.SlotConfig{1: {Instrument: "Oscilloscope"}},
	}

	report := ValidationReport(cfg, nil)
	if !strings.Contains(report, "Valid.") {
		t.Errorf("valid report missing verdict:\n%s", report)
	}
}

func TestValidationReportListsEveryViolation(t *testing.T) {
	cfg := &domain.DeployConfig{Platform: "go"}
	errs := routing.Errors{
		{Code: routing.CodeUnknownPort, Port: "IN9"},
		{Code: routing.CodeMultipleDrivers, Port: "Slot1InA"},
	}

	report := ValidationReport(cfg, errs)
	if !strings.Contains(report, "2 violation(s)") {
		t.Errorf("missing violation count:\n%s", report)
	}
	for _, code := range []string{"unknown_port", "multiple_drivers"} {
		if !strings.Contains(report, code) {
			t.Errorf("missing %s entry:\n%s", code, report)
		}
	}
}

func TestStateReport(t *testing.T) {
	spec, err := platform.Builtin().Lookup("go")
	if err != nil {
		t.Fatal(err)
	}
	state := domain.DeviceState{
		Instruments: []string{"Oscilloscope", ""},
		Connections: []domain.Connection{{Source: "IN1", Destination: "Slot1InA"}},
	}

	report := StateReport(spec, state)
	for _, want := range []string{"Moku:Go", "Slot 1: Oscilloscope", "_empty_", "IN1"} {
		if !strings.Contains(report, want) {
			t.Errorf("state report missing %q:\n%s", want, report)
		}
	}
}

func TestRenderFallsBackToPlainText(t *testing.T) {
	// A bytes.Buffer is not a terminal; rendering must still produce the
	// report content.
	var buf bytes.Buffer
	if err := Render(&buf, "# Heading\n\nbody\n"); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Heading") {
		t.Errorf("rendered output lost content: %q", buf.String())
	}
}
