// Command drivergen compiles a device manifest into generated Rust source
// (SPEC_FULL.md §1.3: the CLI only resolves a path and format, calls
// pkg/compiler, and prints the result — no compiler logic lives here),
// mirroring Consensys-go-corset/cmd/main.go's role as a thin entry point
// over pkg/cmd.
package main

import "github.com/chipforge/drivergen/pkg/cmd"

func main() {
	cmd.Execute()
}
