// Package newsmaker assembles multi-language HTML documents from
// user-editable content blocks called fields.
//
// Each field carries a template and a set of tag values; tags are either
// shared across all languages or hold one value per language. Fields are
// grouped into ordered sections, and a Composer resolves section
// placeholders of the form @SECTION#LANGUAGE in a base template into the
// concatenated, rendered fields of that section.
//
// The package is a pure string-composition engine: it performs no I/O of
// its own. Configuration and snapshot documents arrive as byte slices, and
// template files referenced by a configuration are read through a caller
// supplied ResolveFunc. The engine is synchronous and single-threaded; a
// caller exposing one engine instance to several goroutines must serialize
// access externally.
package newsmaker
