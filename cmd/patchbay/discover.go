package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tobheim/patchbay/internal/cli"
	"github.com/tobheim/patchbay/pkg/discovery"
	"github.com/tobheim/patchbay/pkg/domain"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Manage the store of known devices",
	Long: `Known devices can be targeted by serial or name via --device instead of
--address. With --redis the store is shared between machines.`,
}

var discoverLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List known devices, most recently seen first",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDiscoverLs(cmd); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var discoverAddCmd = &cobra.Command{
	Use:   "add <serial> <address>",
	Short: "Record a device in the store",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDiscoverAdd(cmd, args[0], args[1]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var discoverRmCmd = &cobra.Command{
	Use:   "rm <serial>...",
	Short: "Forget one or more devices",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		flags := connectFlags(cmd)
		reg := discovery.NewRegistry(flags.Store())
		hasError := false
		for _, serial := range args {
			if err := reg.Forget(cmd.Context(), serial); err != nil {
				fmt.Printf("Error forgetting %q: %v\n", serial, err)
				hasError = true
			} else {
				fmt.Printf("Forgot %s\n", serial)
			}
		}
		if hasError {
			os.Exit(1)
		}
	},
}

func init() {
	discoverAddCmd.Flags().String("name", "", "Human-readable device name")
	discoverAddCmd.Flags().String("platform", "", "Platform id (probed from the device when omitted)")
	rootCmd.AddCommand(discoverCmd)
	discoverCmd.AddCommand(discoverLsCmd)
	discoverCmd.AddCommand(discoverAddCmd)
	discoverCmd.AddCommand(discoverRmCmd)
}

func runDiscoverLs(cmd *cobra.Command) error {
	flags := connectFlags(cmd)
	reg := discovery.NewRegistry(flags.Store())

	devices, err := reg.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		fmt.Println("No known devices.")
		return nil
	}

	for _, d := range devices {
		name := d.Name
		if name == "" {
			name = "-"
		}
		fmt.Printf("%-12s %-16s %-8s %-21s %s\n",
			d.Serial, name, d.Platform, d.Address, d.LastSeen.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runDiscoverAdd(cmd *cobra.Command, serial, address string) error {
	flags := connectFlags(cmd)
	ctx := cli.NewSignalContext(cmd.Context())
	defer ctx.Cancel()

	name, _ := cmd.Flags().GetString("name")
	platformID, _ := cmd.Flags().GetString("platform")

	info := domain.DeviceInfo{
		Serial:   serial,
		Name:     name,
		Platform: platformID,
	}

	// Split an optional :port off the address.
	if host, port, ok := strings.Cut(address, ":"); ok {
		info.Address = host
		if _, err := fmt.Sscanf(port, "%d", &info.Port); err != nil {
			return fmt.Errorf("bad port in address %q", address)
		}
	} else {
		info.Address = address
	}

	if info.Platform == "" {
		// Ask the device itself.
		flags.Address = address
		backend, err := flags.Backend(ctx)
		if err != nil {
			return err
		}
		desc, err := backend.Describe(ctx)
		if err != nil {
			return fmt.Errorf("probe device: %w", err)
		}
		info.Platform = desc.Platform
		if info.Serial == "" {
			info.Serial = desc.Serial
		}
	}

	reg := discovery.NewRegistry(flags.Store())
	if err := reg.Record(ctx, info); err != nil {
		return err
	}
	fmt.Printf("Recorded %s (%s)\n", info.Serial, info.Address)
	return nil
}
