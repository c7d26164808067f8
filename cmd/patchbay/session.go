package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tobheim/patchbay/internal/cli"
	"github.com/tobheim/patchbay/pkg/session"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Claim and release device ownership manually",
	Long: `Claim holds the device across multiple invocations: the printed token is
the write credential, pass it back to release. Prefer deploy, which scopes
the claim for you.`,
}

var sessionClaimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Claim exclusive ownership and print the session token",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSessionClaim(cmd); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var sessionReleaseCmd = &cobra.Command{
	Use:   "release <token>",
	Short: "Release ownership held under the given token",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSessionRelease(cmd, args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Released.")
	},
}

func init() {
	sessionClaimCmd.Flags().Bool("force", false, "Invalidate a prior holder's session")
	sessionClaimCmd.Flags().Bool("ignore-busy", false, "Proceed despite an existing session")
	sessionClaimCmd.Flags().Bool("persist", false, "Keep device state across the release")
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionClaimCmd)
	sessionCmd.AddCommand(sessionReleaseCmd)
}

func runSessionClaim(cmd *cobra.Command) error {
	flags := connectFlags(cmd)
	ctx := cli.NewSignalContext(cmd.Context())
	defer ctx.Cancel()

	backend, err := flags.Backend(ctx)
	if err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	ignoreBusy, _ := cmd.Flags().GetBool("ignore-busy")
	persist, _ := cmd.Flags().GetBool("persist")

	mgr := session.NewManager(backend, session.WithLogger(flags.Logger()))
	h, err := mgr.Claim(ctx, session.ClaimOptions{
		Force:      force,
		IgnoreBusy: ignoreBusy,
		Persist:    persist,
	})
	if err != nil {
		return err
	}

	fmt.Println(h.Token())
	return nil
}

func runSessionRelease(cmd *cobra.Command, token string) error {
	flags := connectFlags(cmd)
	ctx := cli.NewSignalContext(cmd.Context())
	defer ctx.Cancel()

	backend, err := flags.Backend(ctx)
	if err != nil {
		return err
	}

	return backend.RelinquishOwnership(ctx, token)
}
