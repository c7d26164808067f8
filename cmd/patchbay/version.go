package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tobheim/patchbay"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of patchbay",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("patchbay version %s\n", strings.TrimSpace(patchbay.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
