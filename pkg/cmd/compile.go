package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/chipforge/drivergen/pkg/codegen"
	"github.com/chipforge/drivergen/pkg/compiler"
	"github.com/chipforge/drivergen/pkg/frontend"
	"github.com/chipforge/drivergen/pkg/mir/passes"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] manifest_file",
	Short: "compile a device manifest into generated source.",
	Long:  `Compile a device manifest (DSL, KDL, JSON, YAML or TOML) into generated Rust register-accessor source.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
			compiler.Logger.SetLevel(log.DebugLevel)
			passes.Logger.SetLevel(log.DebugLevel)
		}

		path := args[0]

		format, err := resolveFormat(cmd, path)
		if err != nil {
			fmt.Println(err.Error())
			os.Exit(2)
		}

		config := compiler.Config{
			Format: format,
			Target: codegen.Target{Async: GetFlag(cmd, "async")},
		}

		result, err := compiler.CompileFile(config, path)
		if err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}

		if result.Diagnostics.Len() > 0 {
			if err := result.Diagnostics.PrintToTerminal(os.Stderr); err != nil {
				fmt.Println(err.Error())
				os.Exit(1)
			}
		}

		if result.Diagnostics.HasError() {
			os.Exit(1)
		}

		writeOutput(cmd, result.Source)
	},
}

// resolveFormat honours an explicit --format override, otherwise derives the
// format from the manifest's file extension (SPEC_FULL.md §1.3).
func resolveFormat(cmd *cobra.Command, path string) (frontend.Format, error) {
	if token := GetString(cmd, "format"); token != "" {
		return frontend.FormatFromExtension(token)
	}

	return frontend.FormatFromExtension(filepath.Ext(path))
}

func writeOutput(cmd *cobra.Command, source string) {
	output := GetString(cmd, "output")
	if output == "" || output == "-" {
		fmt.Print(source)
		return
	}

	if err := os.WriteFile(output, []byte(source), 0o644); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringP("output", "o", "-", "specify output file (\"-\" for stdout).")
	compileCmd.Flags().String("format", "", "override the manifest format (dsl, kdl, json, yaml, toml); default inferred from file extension.")
	compileCmd.Flags().Bool("async", false, "emit async register accessors in addition to sync ones.")
}
