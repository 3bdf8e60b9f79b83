// Package format names the backing text formats a document store can
// read and write.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//	f, err := format.FromPath("settings.json.gz")
//
// Names are case-insensitive; "yml" is accepted as an alias for YAML.
//
// # Related Packages
//
//   - github.com/docfmt/docfile/codec - Parse/render documents per format
//   - github.com/docfmt/docfile/store - File-backed document store
package format
