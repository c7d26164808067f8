package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tobheim/patchbay"
	"github.com/tobheim/patchbay/internal/cli"
	"github.com/tobheim/patchbay/internal/presentation"
	"github.com/tobheim/patchbay/pkg/config"
	"github.com/tobheim/patchbay/pkg/deploy"
	"github.com/tobheim/patchbay/pkg/domain"
	"github.com/tobheim/patchbay/pkg/platform"
	"github.com/tobheim/patchbay/pkg/routing"
	"github.com/tobheim/patchbay/pkg/session"
)

var deployCmd = &cobra.Command{
	Use:   "deploy <config.yaml>",
	Short: "Deploy a configuration to a device",
	Long: `Claims the device, deploys the configured instruments into their slots,
validates the routing against what actually deployed, applies the
connections, and releases the device. Routing violations abort the
deployment before any connection reaches the device.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDeploy(cmd, args[0]); err != nil {
			fmt.Printf("Deploy failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Deployed.")
	},
}

func init() {
	deployCmd.Flags().Bool("force", false, "Take ownership even if another client holds the device")
	deployCmd.Flags().Bool("ignore-busy", false, "Proceed despite an existing session without invalidating it")
	deployCmd.Flags().Bool("persist", false, "Keep slot and routing state on the device after release")
	deployCmd.Flags().String("manifests", "", "Directory of instrument manifests for port narrowing")
	rootCmd.AddCommand(deployCmd)
}

func runDeploy(cmd *cobra.Command, path string) error {
	flags := connectFlags(cmd)
	ctx := cli.NewSignalContext(cmd.Context())
	defer ctx.Cancel()

	cfg, err := config.Load(path, platform.Builtin())
	if err != nil {
		return err
	}

	manifestDir, _ := cmd.Flags().GetString("manifests")
	manifests, err := cli.LoadManifests(manifestDir)
	if err != nil {
		return err
	}

	backend, err := flags.Backend(ctx)
	if err != nil {
		return err
	}

	dev, err := patchbay.New(backend, cfg.Platform,
		patchbay.WithLogger(flags.Logger()),
		patchbay.WithManifests(manifests),
	)
	if err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	ignoreBusy, _ := cmd.Flags().GetBool("ignore-busy")
	persist, _ := cmd.Flags().GetBool("persist")

	err = dev.Deploy(ctx, cfg, session.ClaimOptions{
		Force:      force,
		IgnoreBusy: ignoreBusy,
		Persist:    persist,
	})
	return explainDeployError(cfg, err)
}

// explainDeployError turns the structured failure modes into actionable
// output: the full violation report for routing, the retry hint for busy,
// and the progress marker for partial deployments.
func explainDeployError(cfg *domain.DeployConfig, err error) error {
	if err == nil {
		return nil
	}

	var verrs routing.Errors
	if errors.As(err, &verrs) {
		if rerr := presentation.Render(os.Stdout, presentation.ValidationReport(cfg, verrs)); rerr != nil {
			return rerr
		}
		return fmt.Errorf("routing rejected: %d violation(s)", len(verrs))
	}

	var perr *deploy.PartialError
	if errors.As(err, &perr) {
		fmt.Printf("Deployment stopped after slots %v; device state is partial.\n", perr.AppliedSlots)
		fmt.Println("Re-running deploy skips slots that already hold their instrument.")
		return err
	}

	if errors.Is(err, domain.ErrBusy) {
		return fmt.Errorf("%w (another client owns the device; use --force or --ignore-busy)", err)
	}
	return err
}
