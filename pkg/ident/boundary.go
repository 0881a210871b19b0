package ident

import "strings"

// Boundary names one rule for where an identifier splits into words, e.g.
// between a lowercase and an uppercase letter ("aA" in "fooBar"), or at an
// explicit separator character. The manifest's NameWordBoundaries
// configuration key (spec §6) names these with a colon-separated directive
// such as "aA:AAa:_:-: :a1:A1:1A" — the default set, and the one
// device_name_is_pascal applies when checking device names.
type Boundary int

// Supported boundary rules.
const (
	// LowerUpper splits between a lowercase and following uppercase letter:
	// "fooBar" -> "foo", "Bar".
	LowerUpper Boundary = iota
	// Acronym splits an uppercase run before its final letter when that
	// letter starts a lowercase word: "HTTPServer" -> "HTTP", "Server".
	Acronym
	// Underscore splits on (and consumes) '_'.
	Underscore
	// Hyphen splits on (and consumes) '-'.
	Hyphen
	// Space splits on (and consumes) ' '.
	Space
	// LowerDigit splits between a lowercase letter and a following digit: "foo1" ->
	// "foo", "1".
	LowerDigit
	// UpperDigit splits between an uppercase letter and a following digit.
	UpperDigit
	// DigitUpper splits between a digit and a following uppercase letter:
	// "1A" -> "1", "A".
	DigitUpper
)

var boundaryTokens = map[string]Boundary{
	"aA": LowerUpper,
	"AAa": Acronym,
	"_":  Underscore,
	"-":  Hyphen,
	" ":  Space,
	"a1": LowerDigit,
	"A1": UpperDigit,
	"1A": DigitUpper,
}

// DefaultBoundaryDirective is the default NameWordBoundaries value, matching
// the lenient PascalCase check the teacher's device_name_is_pascal pass
// applies (original_source/compiler/src/mir/passes/device_name_is_pascal.rs).
const DefaultBoundaryDirective = "aA:AAa:_:-: :a1:A1:1A"

// ParseBoundaries splits a colon-separated directive into Boundary rules.
// Unknown tokens are ignored, matching the teacher's lenient treatment of
// malformed config strings (surfaced instead as a no-op rather than a fatal
// parse error, since word-boundary config is advisory).
func ParseBoundaries(directive string) []Boundary {
	if directive == "" {
		directive = DefaultBoundaryDirective
	}

	var out []Boundary

	for _, tok := range strings.Split(directive, ":") {
		if b, ok := boundaryTokens[tok]; ok {
			out = append(out, b)
		}
	}

	return out
}

func hasBoundary(bs []Boundary, b Boundary) bool {
	for _, x := range bs {
		if x == b {
			return true
		}
	}

	return false
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// splitWords segments value into words according to the given boundary
// rules. Separator boundaries (_, -, space) are consumed; all other
// boundaries split between the two runes without discarding either.
func splitWords(value string, boundaries []Boundary) []string {
	runes := []rune(value)

	var (
		words   []string
		current []rune
	)

	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = nil
		}
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if isSeparator(r) {
			if (r == '_' && hasBoundary(boundaries, Underscore)) ||
				(r == '-' && hasBoundary(boundaries, Hyphen)) ||
				(r == ' ' && hasBoundary(boundaries, Space)) {
				flush()
				continue
			}
		}

		current = append(current, r)

		if i+1 >= len(runes) {
			continue
		}

		next := runes[i+1]

		switch {
		case hasBoundary(boundaries, LowerUpper) && isLower(r) && isUpper(next):
			flush()
		case hasBoundary(boundaries, Acronym) && isUpper(r) && isUpper(next) && i+2 < len(runes) && isLower(runes[i+2]):
			flush()
		case hasBoundary(boundaries, LowerDigit) && isLower(r) && isDigit(next):
			flush()
		case hasBoundary(boundaries, UpperDigit) && isUpper(r) && isDigit(next):
			flush()
		case hasBoundary(boundaries, DigitUpper) && isDigit(r) && isUpper(next):
			flush()
		}
	}

	flush()

	return words
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
