package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tobheim/patchbay"
	"github.com/tobheim/patchbay/internal/cli"
	"github.com/tobheim/patchbay/internal/presentation"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show a device's deployed instruments and routing",
	Long: `Queries the device's slot occupancy and connection set. Requires no
ownership: inspection works even while another client holds the device.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runState(cmd); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(stateCmd)
}

func runState(cmd *cobra.Command) error {
	flags := connectFlags(cmd)
	ctx := cli.NewSignalContext(cmd.Context())
	defer ctx.Cancel()

	backend, err := flags.Backend(ctx)
	if err != nil {
		return err
	}

	desc, err := backend.Describe(ctx)
	if err != nil {
		return err
	}

	dev, err := patchbay.New(backend, desc.Platform, patchbay.WithLogger(flags.Logger()))
	if err != nil {
		return err
	}

	state, err := dev.State(ctx)
	if err != nil {
		return err
	}

	return presentation.Render(os.Stdout, presentation.StateReport(dev.Spec(), state))
}
