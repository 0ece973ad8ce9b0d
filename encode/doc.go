// Package encode encodes IR nodes to JSON text.
//
// Unlike encoding/json, it preserves object key order and the exact
// integer/float representation recorded in the IR, which downstream
// tooling depends on for stable, human-diffable patch files.
//
// # Usage
//
//	node := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: "name", Val: ir.FromString("alice")},
//	    {Key: "age", Val: ir.FromInt(30)},
//	})
//	err := encode.Encode(node, os.Stdout)
//
// # Related Packages
//
//   - github.com/neki-mods/neki-lang/ir - IR representation
//   - github.com/neki-mods/neki-lang/parse - parse text to IR
package encode
