// Package patchgen walks IR value trees and emits patch operations that
// flag translatable strings.
//
// Two traversal modes exist: fresh asset trees, where pointer paths are
// accumulated from the document root, and existing patch-operation
// lists, where a recognized {op, path, value} object re-roots the
// traversal at the operation's own path. In both modes an emitted
// operation replaces the matched string (or each direct string element
// of a matched array) with the value prefixed by the translatable
// marker.
package patchgen

import (
	"strconv"

	"github.com/neki-mods/neki-lang/ir"
	"github.com/neki-mods/neki-lang/pattern"
)

// Marker is the prefix flagging a string value as needing translation.
const Marker = "(T) "

const (
	OpReplace = "replace"
	OpAdd     = "add"
	OpTest    = "test"
)

// Data is the result of a generation run: either a flat operation list
// or a list of test-guarded batches. Node returns the serializable IR
// form.
type Data interface {
	IsEmpty() bool
	Node() *ir.Node
}

// Ops is a flat, ordered list of patch operations.
type Ops []*ir.Node

func (o Ops) IsEmpty() bool {
	return len(o) == 0
}

func (o Ops) Node() *ir.Node {
	return ir.FromSlice(o)
}

// Batches is an ordered list of two-element [test, replace] batches. A
// batch list is empty iff every batch is empty.
type Batches [][]*ir.Node

func (b Batches) IsEmpty() bool {
	for _, batch := range b {
		if len(batch) != 0 {
			return false
		}
	}
	return true
}

func (b Batches) Node() *ir.Node {
	vals := make([]*ir.Node, len(b))
	for i, batch := range b {
		vals[i] = ir.FromSlice(batch)
	}
	return ir.FromSlice(vals)
}

// Generate walks root and emits patch operations for every path matched
// by the pattern set of ext. Unrecognized extensions yield an empty
// result; generation itself never fails, unrecognized shapes are
// skipped.
func Generate(isPatch bool, root *ir.Node, ext string, cfg *pattern.Config, testOps bool) Data {
	if !cfg.Has(ext) {
		return Ops(nil)
	}
	set := cfg.Set(ext)
	var ops Ops
	if isPatch {
		fromPatch(root, "", set, &ops, false)
	} else {
		fromTree(root, "", set, &ops)
	}
	if testOps {
		return testGuard(ops)
	}
	return ops
}

// fromTree handles fresh asset trees, accumulating a pointer path from
// the document root.
func fromTree(node *ir.Node, pointer string, set *pattern.Set, ops *Ops) {
	switch node.Type {
	case ir.StringType:
		if set.Matches(pointer) {
			*ops = append(*ops, replaceOp(pointer, ir.FromString(Marker+node.String)))
		}
	case ir.ArrayType:
		if set.Matches(pointer) {
			// the array is replaced as a unit; no per-element ops
			*ops = append(*ops, replaceOp(pointer, markArray(node)))
			return
		}
		for i, val := range node.Values {
			fromTree(val, pointer+"/"+strconv.Itoa(i), set, ops)
		}
	case ir.ObjectType:
		for i, key := range node.Fields {
			fromTree(node.Values[i], pointer+"/"+key, set, ops)
		}
	}
}

// fromPatch handles documents that already describe patch operations.
// Outside an operation's value, objects of the recognized shape re-root
// the walk at their own path; other object fields reset the path to the
// bare field key. Inside an operation's value, paths extend exactly as
// in fromTree.
func fromPatch(node *ir.Node, opPath string, set *pattern.Set, ops *Ops, inValue bool) {
	switch node.Type {
	case ir.StringType:
		if set.Matches(opPath) {
			*ops = append(*ops, replaceOp(opPath, ir.FromString(Marker+node.String)))
		}
	case ir.ArrayType:
		if set.Matches(opPath) {
			*ops = append(*ops, replaceOp(opPath, markArray(node)))
			return
		}
		for i, val := range node.Values {
			fromPatch(val, opPath+"/"+strconv.Itoa(i), set, ops, inValue)
		}
	case ir.ObjectType:
		if !inValue {
			op := node.Get("op")
			path := node.Get("path")
			val := node.Get("value")
			if op != nil && op.Type == ir.StringType &&
				path != nil && path.Type == ir.StringType && val != nil {
				if op.String == OpReplace || op.String == OpAdd {
					fromPatch(val, path.String, set, ops, true)
					return
				}
			}
		}
		for i, key := range node.Fields {
			next := key
			if inValue {
				next = opPath + "/" + key
			}
			fromPatch(node.Values[i], next, set, ops, inValue)
		}
	}
}

// markArray copies an array, prefixing every direct string element with
// the marker and leaving other elements untouched.
func markArray(node *ir.Node) *ir.Node {
	vals := make([]*ir.Node, len(node.Values))
	for i, val := range node.Values {
		if val.Type == ir.StringType {
			vals[i] = ir.FromString(Marker + val.String)
		} else {
			vals[i] = val.Clone()
		}
	}
	return ir.FromSlice(vals)
}

func replaceOp(path string, value *ir.Node) *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: "op", Val: ir.FromString(OpReplace)},
		{Key: "path", Val: ir.FromString(path)},
		{Key: "value", Val: value},
	})
}

// testGuard wraps each operation in a [test, op] batch so a failing
// precondition skips that edit without aborting the whole list.
func testGuard(ops Ops) Batches {
	batches := make(Batches, 0, len(ops))
	for _, op := range ops {
		test := ir.FromKeyVals([]ir.KeyVal{
			{Key: "op", Val: ir.FromString(OpTest)},
			{Key: "path", Val: op.Get("path").Clone()},
		})
		batches = append(batches, []*ir.Node{test, op})
	}
	return batches
}
