package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tobheim/patchbay/internal/cli"
	"github.com/tobheim/patchbay/internal/presentation"
	"github.com/tobheim/patchbay/pkg/config"
	"github.com/tobheim/patchbay/pkg/deploy"
	"github.com/tobheim/patchbay/pkg/platform"
)

var validateCmd = &cobra.Command{
	Use:   "validate <config.yaml>",
	Short: "Check a deployment configuration without touching any device",
	Long: `Loads a deployment configuration, checks its structure against the
platform catalog, and runs the full routing validation assuming every
configured slot deployed. All violations are reported together.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args[0]); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	validateCmd.Flags().String("manifests", "", "Directory of instrument manifests for port narrowing")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, path string) error {
	catalog := platform.Builtin()
	cfg, err := config.Load(path, catalog)
	if err != nil {
		return err
	}

	spec, err := catalog.Lookup(cfg.Platform)
	if err != nil {
		return err
	}

	manifestDir, _ := cmd.Flags().GetString("manifests")
	manifests, err := cli.LoadManifests(manifestDir)
	if err != nil {
		return err
	}

	coord := deploy.NewCoordinator(nil, spec, deploy.WithManifests(manifests))
	errs := coord.Validate(cfg)

	report := presentation.ValidationReport(cfg, errs)
	if err := presentation.Render(os.Stdout, report); err != nil {
		return err
	}
	if len(errs) > 0 {
		os.Exit(1)
	}
	return nil
}
