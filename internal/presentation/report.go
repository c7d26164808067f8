// Package presentation renders human-facing reports for the CLI: validation
// results and device state, built as markdown and rendered through glamour
// on capable terminals.
package presentation

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/tobheim/patchbay/pkg/domain"
	"github.com/tobheim/patchbay/pkg/platform"
	"github.com/tobheim/patchbay/pkg/routing"
)

// ValidationReport builds a markdown report for a validation run.
func ValidationReport(cfg *domain.DeployConfig, errs routing.Errors) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Routing validation: %s\n\n", cfg.Platform)
	fmt.Fprintf(&b, "%d slot(s), %d connection(s)\n\n", len(cfg.Slots), len(cfg.Routing))

	if len(errs) == 0 {
		b.WriteString("**Valid.** The connection set is safe to deploy.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "**%d violation(s):**\n\n", len(errs))
	for _, err := range errs {
		fmt.Fprintf(&b, "- `%s` %s\n", err.Code, err.Error())
	}
	return b.String()
}

// StateReport builds a markdown report of a device's current state.
func StateReport(spec platform.Spec, state domain.DeviceState) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n## Slots\n\n", spec.Name)
	for i, inst := range state.Instruments {
		if inst == "" {
			inst = "_empty_"
		}
		fmt.Fprintf(&b, "- Slot %d: %s\n", i+1, inst)
	}

	b.WriteString("\n## Connections\n\n")
	if len(state.Connections) == 0 {
		b.WriteString("_none_\n")
		return b.String()
	}
	for _, conn := range state.Connections {
		fmt.Fprintf(&b, "- `%s` → `%s`\n", conn.Source, conn.Destination)
	}
	return b.String()
}

// Render writes markdown to w, styled through glamour when the output
// supports color and verbatim otherwise.
func Render(w io.Writer, markdown string) error {
	if termenv.NewOutput(w).ColorProfile() == termenv.Ascii {
		_, err := io.WriteString(w, markdown)
		return err
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		_, werr := io.WriteString(w, markdown)
		if werr != nil {
			return werr
		}
		return nil
	}
	rendered, err := r.Render(markdown)
	if err != nil {
		_, werr := io.WriteString(w, markdown)
		return werr
	}
	_, err = io.WriteString(w, rendered)
	return err
}
