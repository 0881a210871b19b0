// Package frontend dispatches manifest source text to the format-specific
// parser selected by file extension, and defines the front-end-specific
// diagnostic codes shared by all of them (spec §4.1, §6, §7).
package frontend

// CodeFormatParseError is reported when a manifest path's extension does
// not name a supported format. Structural tree-building codes
// (UnknownRootKeyword, MissingObjectName, UnexpectedEntries) live on
// pkg/frontend/tree, since that is where the shared builder runs; MIR-pass
// codes live in pkg/mir/passes/codes.go.
const CodeFormatParseError = "FormatParseError"
