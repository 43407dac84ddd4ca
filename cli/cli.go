// Package cli wires the mugit commands. Handlers stay thin: resolve the
// project root, call into the engine packages, print.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const MugitVersion = "0.1.0"

var rootCmd = &cobra.Command{
	Use:          "mugit",
	Short:        "mugit is a minimal content-addressed version control system",
	Long:         `mugit is a minimal version control engine compatible on disk with the Git loose-object and index formats.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		if version {
			fmt.Printf("mugit version %s\n", MugitVersion)
			return
		}
		cmd.Help()
	},
}

var version bool

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&version, "version", false, "print the mugit version")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(headCmd)
}
