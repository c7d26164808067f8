package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tobheim/patchbay/internal/adapters/devicesim"
	"github.com/tobheim/patchbay/internal/adapters/memory"
	"github.com/tobheim/patchbay/pkg/platform"
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a simulated device over HTTP",
	Long: `Starts an in-memory device speaking the same HTTP API as real hardware,
including ownership, busy rejection, and routing checks. Useful for trying
configurations and for integration tests. Prometheus metrics are exposed
on /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		platformID, _ := cmd.Flags().GetString("platform")
		port, _ := cmd.Flags().GetString("port")
		serial, _ := cmd.Flags().GetString("serial")

		flags := connectFlags(cmd)

		spec, err := platform.Builtin().Lookup(platformID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		device := memory.NewDevice(spec)
		handler := devicesim.NewHandler(device,
			devicesim.WithLogger(flags.Logger()),
			devicesim.WithSerial(serial),
		)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		serverErrors := make(chan error, 1)
		go func() {
			fmt.Printf("Simulated %s device (%s) listening on %s\n", spec.Name, serial, srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nShutting down... Signal: %v\n", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Simulator stopped")
		}
	},
}

func init() {
	simCmd.Flags().StringP("port", "p", "8090", "Port to listen on")
	simCmd.Flags().String("platform", "go", "Platform to simulate (go, lab, pro, delta)")
	simCmd.Flags().String("serial", "SIM000", "Serial the simulator reports")
	rootCmd.AddCommand(simCmd)
}
