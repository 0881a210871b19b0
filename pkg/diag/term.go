package diag

import (
	"os"

	"golang.org/x/term"
)

// defaultLineWidth is used when the output file isn't a terminal (piped
// output, CI logs) or its width can't be detected.
const defaultLineWidth = 100

// PrintToTerminal renders all reports to f, wrapping messages to the
// terminal's current width when f is a terminal and falling back to
// defaultLineWidth otherwise (SPEC_FULL.md §2: width detection lives here
// rather than in the CLI layer).
func (d *Diagnostics) PrintToTerminal(f *os.File) error {
	return d.PrintTo(f, terminalWidth(f))
}

func terminalWidth(f *os.File) int {
	if !term.IsTerminal(int(f.Fd())) {
		return defaultLineWidth
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultLineWidth
	}

	return width
}
