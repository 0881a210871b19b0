package frontend_test

import (
	"testing"

	"github.com/chipforge/drivergen/pkg/frontend"
	"github.com/chipforge/drivergen/pkg/mir"
)

const jsonManifest = `{
  "device": {
    "name": "my_test_device",
    "register_address_type": "u8",
    "objects": [
      {
        "kind": "register",
        "name": "foo",
        "address": 0,
        "size_bits": 8,
        "fields": [
          {"name": "enabled", "start": 0, "end": 1, "base_type": "bool"}
        ]
      }
    ]
  }
}`

const yamlManifest = `
device:
  name: my_test_device
  register_address_type: u8
  objects:
    - kind: register
      name: foo
      address: 0
      size_bits: 8
      fields:
        - name: enabled
          start: 0
          end: 1
          base_type: bool
`

const tomlManifest = `
[device]
name = "my_test_device"
register_address_type = "u8"

[[device.objects]]
kind = "register"
name = "foo"
address = 0
size_bits = 8

[[device.objects.fields]]
name = "enabled"
start = 0
end = 1
base_type = "bool"
`

// TestFrontEndsProduceEquivalentManifests exercises spec §8 property 1: the
// document-tree front-ends (JSON, YAML, TOML) must produce the same MIR
// shape for equivalent input.
func TestFrontEndsProduceEquivalentManifests(t *testing.T) {
	cases := []struct {
		format   frontend.Format
		contents string
	}{
		{frontend.FormatJSON, jsonManifest},
		{frontend.FormatYAML, yamlManifest},
		{frontend.FormatTOML, tomlManifest},
	}

	var manifests []*mir.Manifest

	for _, c := range cases {
		manifest, diagnostics, err := frontend.Parse(c.format, "manifest."+c.format.String(), []byte(c.contents))
		if err != nil {
			t.Fatalf("%s: Parse: %v", c.format, err)
		}

		if diagnostics != nil && diagnostics.HasError() {
			t.Fatalf("%s: unexpected diagnostics: %v", c.format, diagnostics.Reports())
		}

		manifests = append(manifests, manifest)
	}

	for i, m := range manifests {
		if len(m.Devices) != 1 {
			t.Fatalf("%s: expected 1 device, got %d", cases[i].format, len(m.Devices))
		}

		device := m.Devices[0]
		if device.Name().Value() != "my_test_device" {
			t.Errorf("%s: device name = %q, want %q", cases[i].format, device.Name().Value(), "my_test_device")
		}

		if device.Config.RegisterAddressType == nil || *device.Config.RegisterAddressType != mir.U8 {
			t.Errorf("%s: register address type not resolved to u8", cases[i].format)
		}

		if len(device.Objects) != 1 {
			t.Fatalf("%s: expected 1 object, got %d", cases[i].format, len(device.Objects))
		}

		reg, ok := device.Objects[0].(*mir.Register)
		if !ok {
			t.Fatalf("%s: expected a *mir.Register, got %T", cases[i].format, device.Objects[0])
		}

		if reg.Name().Value() != "foo" || reg.Address != 0 || reg.SizeBits != 8 {
			t.Errorf("%s: unexpected register shape: %+v", cases[i].format, reg)
		}

		if reg.FieldSet == nil || len(reg.FieldSet.Fields) != 1 {
			t.Fatalf("%s: expected an inline field set with 1 field", cases[i].format)
		}

		field := reg.FieldSet.Fields[0]
		if field.Name.Value() != "enabled" || field.Start != 0 || field.End != 1 {
			t.Errorf("%s: unexpected field shape: %+v", cases[i].format, field)
		}

		if field.BaseType.Kind != mir.BaseTypeBool {
			t.Errorf("%s: field base type = %v, want BaseTypeBool", cases[i].format, field.BaseType.Kind)
		}
	}
}

func TestFormatFromExtensionRecognizesAllFormats(t *testing.T) {
	cases := map[string]frontend.Format{
		"json": frontend.FormatJSON,
		"yaml": frontend.FormatYAML,
		"yml":  frontend.FormatYAML,
		"toml": frontend.FormatTOML,
		"kdl":  frontend.FormatKDL,
		"dsl":  frontend.FormatDSL,
		".kdl": frontend.FormatKDL,
	}

	for ext, want := range cases {
		got, err := frontend.FormatFromExtension(ext)
		if err != nil {
			t.Fatalf("FormatFromExtension(%q): %v", ext, err)
		}

		if got != want {
			t.Errorf("FormatFromExtension(%q) = %v, want %v", ext, got, want)
		}
	}
}

func TestFormatFromExtensionRejectsUnknownToken(t *testing.T) {
	_, err := frontend.FormatFromExtension("exe")
	if err == nil {
		t.Fatal("expected an error for an unrecognized extension")
	}

	var parseErr *frontend.FormatParseError
	if _, ok := err.(*frontend.FormatParseError); !ok {
		t.Fatalf("got %T, want *frontend.FormatParseError", err)
	} else {
		parseErr = err.(*frontend.FormatParseError)
	}

	if parseErr.Token != "exe" {
		t.Errorf("FormatParseError.Token = %q, want %q", parseErr.Token, "exe")
	}
}
