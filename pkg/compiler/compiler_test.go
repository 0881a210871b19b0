package compiler_test

import (
	"strings"
	"testing"

	"github.com/chipforge/drivergen/pkg/codegen"
	"github.com/chipforge/drivergen/pkg/compiler"
	"github.com/chipforge/drivergen/pkg/frontend"
)

const sampleManifest = `{
  "device": {
    "name": "my_test_device",
    "register_address_type": "u8",
    "default_byte_order": "LE",
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

func TestCompileSourceEndToEnd(t *testing.T) {
	result, err := compiler.CompileSource(compiler.Config{Format: frontend.FormatJSON}, "sample.json", []byte(sampleManifest))
	if err != nil {
		t.Fatalf("CompileSource: %v", err)
	}

	if result.Diagnostics.HasError() {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics.Reports())
	}

	for _, want := range []string{
		"pub struct MyTestDevice<I>",
		"pub fn foo_read(&mut self) -> Result<field_sets::Foo, I::Error>",
		"pub fn enabled(&self) -> bool",
	} {
		if !strings.Contains(result.Source, want) {
			t.Errorf("generated source missing %q\n---\n%s", want, result.Source)
		}
	}
}

func TestCompileSourceReturnsErrorForMalformedJSON(t *testing.T) {
	result, err := compiler.CompileSource(compiler.Config{Format: frontend.FormatJSON}, "bad.json", []byte(`{`))
	if err == nil {
		t.Fatalf("expected an error for malformed JSON, got result: %+v", result)
	}
}

func TestCompileSourceAbortsCodegenOnPassError(t *testing.T) {
	// Two registers at the same address trip addresses_unique and must
	// abort before codegen runs (spec §4.4: abort skips codegen).
	const manifest = `{
  "device": {
    "name": "dup_device",
    "register_address_type": "u8",
    "objects": [
      {"kind": "register", "name": "foo", "address": 0, "size_bits": 8},
      {"kind": "register", "name": "bar", "address": 0, "size_bits": 8}
    ]
  }
}`

	result, err := compiler.CompileSource(compiler.Config{Format: frontend.FormatJSON, Target: codegen.Target{}}, "dup.json", []byte(manifest))
	if err != nil {
		t.Fatalf("CompileSource: %v", err)
	}

	if !result.Diagnostics.HasError() {
		t.Fatalf("expected a diagnostic error for duplicate addresses")
	}

	if result.Source != "" {
		t.Errorf("expected no generated source when aborting, got:\n%s", result.Source)
	}
}
