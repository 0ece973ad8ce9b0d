// Package ir provides the in-memory representation for relaxed-dialect
// documents.
//
// All documents, whether parsed from text or created programmatically,
// are represented as *ir.Node trees. The IR is a simple recursive tagged
// union: the Type field says which of the value fields is meaningful.
//
// # Objects
//
// Object nodes keep their keys in first-insertion order, and that order
// is observable in everything built on top of the IR (path traversal,
// encoding). Writing an existing key through Set overwrites the value
// but keeps the key's original position.
//
// # Numbers
//
// Number values are placed under:
//   - Int64: integers representable in 64-bit signed range
//   - Uint64: non-negative integers too large for Int64
//   - Float64: everything else (fractional, out of range, non-finite)
//
// # Related Packages
//
//   - github.com/neki-mods/neki-lang/parse - parses text into IR nodes
//   - github.com/neki-mods/neki-lang/encode - encodes IR nodes to JSON
//   - github.com/neki-mods/neki-lang/patchgen - generates patch operations
package ir
