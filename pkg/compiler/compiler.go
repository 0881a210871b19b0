// Package compiler wires the pipeline together: front-end parse, the pass
// driver, LIR lowering, and codegen (spec §1's overall flow), mirroring
// Consensys-go-corset/pkg/corset/compiler.go's CompileSourceFiles/
// Compiler.Compile() staged entry points.
package compiler

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/chipforge/drivergen/pkg/codegen"
	"github.com/chipforge/drivergen/pkg/diag"
	"github.com/chipforge/drivergen/pkg/frontend"
	"github.com/chipforge/drivergen/pkg/lir"
	"github.com/chipforge/drivergen/pkg/mir/passes"
)

// Logger is the package-level logrus logger tracing pipeline stages,
// mirroring passes.Logger's direct-logrus style (SPEC_FULL.md §1.1).
var Logger = logrus.New()

// Config carries the options a compilation run needs beyond the manifest
// source itself.
type Config struct {
	// Format is the manifest syntax to parse. Resolved from a file
	// extension by the caller via frontend.FormatFromExtension.
	Format frontend.Format
	// Target selects codegen options (spec §4.7 sync/async variant).
	Target codegen.Target
	// Passes overrides the default pass pipeline (spec §4.5); nil runs
	// passes.Default().
	Passes []passes.Pass
}

// Result is the outcome of a compilation run.
type Result struct {
	// Source is the generated target-language code. Empty when Diagnostics
	// contains an error (spec §4.4: abort skips codegen).
	Source      string
	Diagnostics *diag.Diagnostics
}

// CompileSource compiles one in-memory manifest into generated source.
// name is used only for diagnostic spans (spec §4.8) and the front-end's
// own error messages.
func CompileSource(config Config, name string, contents []byte) (Result, error) {
	log := Logger.WithField("stage", "parse")
	log.WithField("format", config.Format.String()).Debug("parsing manifest")

	manifest, diagnostics, err := frontend.Parse(config.Format, name, contents)
	if err != nil {
		return Result{}, err
	}

	if diagnostics == nil {
		diagnostics = diag.New()
	}

	if diagnostics.HasError() {
		Logger.WithField("stage", "parse").Warn("aborting: front-end reported an error")
		return Result{Diagnostics: diagnostics}, nil
	}

	pipeline := config.Passes
	if pipeline == nil {
		pipeline = passes.Default()
	}

	Logger.WithField("stage", "passes").WithField("count", len(pipeline)).Debug("running pass pipeline")

	if ok := passes.Run(manifest, diagnostics, pipeline); !ok {
		return Result{Diagnostics: diagnostics}, nil
	}

	Logger.WithField("stage", "lower").Debug("lowering to LIR")

	driver := lir.Lower(manifest)

	Logger.WithField("stage", "codegen").Debug("generating target source")

	source, err := codegen.Generate(config.Target, driver)
	if err != nil {
		return Result{Diagnostics: diagnostics}, err
	}

	return Result{Source: source, Diagnostics: diagnostics}, nil
}

// CompileFile reads path from disk and compiles it using config.Format.
// Callers resolve the format from the file's extension themselves via
// frontend.FormatFromExtension, since a caller may also want to override it
// (e.g. a manifest with a nonstandard extension).
func CompileFile(config Config, path string) (Result, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}

	return CompileSource(config, path, contents)
}
