package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tobheim/patchbay/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "patchbay",
	Short: "Patchbay deploys and validates multi-slot instrument configurations",
	Long: `Patchbay talks to multi-instrument devices over their HTTP API: it claims
exclusive ownership, deploys instruments into slots, validates the signal
routing before the device ever sees it, and releases the device when done.`,
	SilenceUsage: true,
}

// Execute runs the root command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("address", "", "Device address as ip[:port]; overrides --device")
	rootCmd.PersistentFlags().String("device", "", "Device serial or name, resolved via the discovery store")
	rootCmd.PersistentFlags().String("store", "", "Discovery store directory (default ~/.patchbay/devices)")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for a shared discovery store")
	rootCmd.PersistentFlags().String("log-level", "", "Enable logging on stderr (debug, info, warn, error)")
}

func connectFlags(cmd *cobra.Command) cli.ConnectFlags {
	address, _ := cmd.Flags().GetString("address")
	device, _ := cmd.Flags().GetString("device")
	store, _ := cmd.Flags().GetString("store")
	redisAddr, _ := cmd.Flags().GetString("redis")
	logLevel, _ := cmd.Flags().GetString("log-level")
	return cli.ConnectFlags{
		Address:   address,
		Device:    device,
		StorePath: store,
		RedisAddr: redisAddr,
		LogLevel:  logLevel,
	}
}
