// Package cmd implements the drivergen command-line tool: resolve a manifest
// path and format, run pkg/compiler, print the result. No compiler logic
// lives here (SPEC_FULL.md §1.3), mirroring the teacher's pkg/cmd package
// which is glue over pkg/corset.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command when drivergen is invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "drivergen",
	Short: "Generate register-accessor source from a device manifest.",
	Long:  "drivergen compiles a device manifest (DSL, KDL, JSON, YAML or TOML) into generated Rust register-accessor source.",
}

// Execute runs the root command. Called by main.main(); exits the process
// with a non-zero status on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
}
