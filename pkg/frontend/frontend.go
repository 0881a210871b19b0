package frontend

import (
	"fmt"
	"strings"

	"github.com/chipforge/drivergen/pkg/diag"
	"github.com/chipforge/drivergen/pkg/frontend/dsl"
	"github.com/chipforge/drivergen/pkg/frontend/json"
	"github.com/chipforge/drivergen/pkg/frontend/kdl"
	"github.com/chipforge/drivergen/pkg/frontend/toml"
	"github.com/chipforge/drivergen/pkg/frontend/yaml"
	"github.com/chipforge/drivergen/pkg/mir"
)

// Format names one of the four supported manifest syntaxes (spec §6).
type Format int

// Supported formats.
const (
	FormatDSL Format = iota
	FormatKDL
	FormatJSON
	FormatYAML
	FormatTOML
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case FormatDSL:
		return "dsl"
	case FormatKDL:
		return "kdl"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// FormatParseError reports an unrecognized format token (spec §6: "Any
// other token produces a FormatParseError").
type FormatParseError struct {
	Token string
}

// Error implements the error interface.
func (e *FormatParseError) Error() string {
	return fmt.Sprintf("unrecognized manifest format %q", e.Token)
}

// FormatFromExtension maps a file extension (with or without a leading dot)
// to a Format, following spec §6: "json", "yaml"/"yml", "toml" select the
// document-tree front-end; "kdl" and "dsl" select their own parsers.
func FormatFromExtension(ext string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "kdl":
		return FormatKDL, nil
	case "dsl":
		return FormatDSL, nil
	default:
		return 0, &FormatParseError{Token: ext}
	}
}

// Parse dispatches source text to the front-end for the given format,
// returning the same MIR shape regardless of which one ran (spec §4.1:
// "front-ends produce the same MIR regardless of input format").
func Parse(format Format, name string, contents []byte) (*mir.Manifest, *diag.Diagnostics, error) {
	switch format {
	case FormatDSL:
		return dsl.Parse(name, contents)
	case FormatKDL:
		return kdl.Parse(name, contents)
	case FormatJSON:
		return json.Parse(name, contents)
	case FormatYAML:
		return yaml.Parse(name, contents)
	case FormatTOML:
		return toml.Parse(name, contents)
	default:
		return nil, nil, &FormatParseError{Token: format.String()}
	}
}
