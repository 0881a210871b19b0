// Package ident implements the identifier and span model of spec §4.2: a
// name carries both its original lexeme and a word-segmented form that
// drives idempotent case conversion and target-language validity checks.
package ident

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/stoewer/go-strcase"

	"github.com/chipforge/drivergen/pkg/source"
)

// Identifier is a name plus the source span it came from and the word
// segmentation currently applied to it. Re-applying the same boundary
// directive is a no-op (spec §8 property 3).
type Identifier struct {
	value      string
	span       source.Span
	directive  string
	words      []string
	normalized bool
}

// New constructs an identifier from a raw lexeme and its source span. No
// boundaries are applied yet; ApplyBoundaries must be called before
// CheckValidity or the case-conversion accessors are meaningful.
func New(value string, span source.Span) Identifier {
	return Identifier{value: value, span: span}
}

// Value returns the original lexeme as written in the source manifest.
func (id Identifier) Value() string { return id.value }

// Span returns the identifier's source span.
func (id Identifier) Span() source.Span { return id.span }

// Shift translates the identifier's span, for reparented embedded documents.
func (id Identifier) Shift(offset int) Identifier {
	id.span = id.span.Shift(offset)
	return id
}

// ApplyBoundaries segments the identifier's value into words using the given
// boundary directive (a colon-separated list of tokens, see ParseBoundaries).
// Calling this again with the same directive after it has already been
// applied is a no-op, making the operation idempotent as required by spec §8
// property 3.
func (id Identifier) ApplyBoundaries(directive string) Identifier {
	if id.normalized && id.directive == directive {
		return id
	}

	id.words = splitWords(id.value, ParseBoundaries(directive))
	id.directive = directive
	id.normalized = true

	return id
}

// Words returns the word segmentation produced by the last ApplyBoundaries
// call, or nil if boundaries have not been applied.
func (id Identifier) Words() []string {
	return id.words
}

// ValidityError describes why an identifier fails CheckValidity.
type ValidityError struct {
	Value  string
	Reason string
}

// Error implements the error interface.
func (e *ValidityError) Error() string {
	return fmt.Sprintf("identifier %q is invalid: %s", e.Value, e.Reason)
}

// CheckValidity fails when the identifier is empty, begins with a digit, or
// contains a character that cannot appear in a target-language identifier
// (anything other than a Unicode letter, a Unicode digit or underscore). CheckValidity is
// a pure function of the identifier's value: calling it repeatedly never
// changes its result (spec §8 property 3).
func (id Identifier) CheckValidity() error {
	if id.value == "" {
		return &ValidityError{id.value, "identifier is empty"}
	}

	runes := []rune(id.value)
	if unicode.IsDigit(runes[0]) {
		return &ValidityError{id.value, "identifier begins with a digit"}
	}

	for _, r := range runes {
		if r == '_' || unicode.IsDigit(r) || unicode.IsLetter(r) {
			continue
		}

		return &ValidityError{id.value, fmt.Sprintf("identifier contains forbidden character %q", r)}
	}

	return nil
}

// joined returns the word segmentation as an underscore-delimited string,
// the form go-strcase expects as input to its case converters (it treats
// '_' as an existing word boundary and re-segments accordingly).
func (id Identifier) joined() string {
	if len(id.words) == 0 {
		return id.value
	}

	return strings.Join(id.words, "_")
}

// PascalCase renders the identifier's segmented form in PascalCase (used for
// generated type names: field sets, enums, blocks).
func (id Identifier) PascalCase() string {
	return strcase.UpperCamelCase(id.joined())
}

// SnakeCase renders the identifier's segmented form in snake_case (used for
// generated method and field names).
func (id Identifier) SnakeCase() string {
	return strcase.SnakeCase(id.joined())
}

// String implements fmt.Stringer, returning the original lexeme.
func (id Identifier) String() string { return id.value }
