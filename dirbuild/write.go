package dirbuild

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/neki-mods/neki-lang/encode"
	"github.com/neki-mods/neki-lang/patchgen"

	jsonpatch "github.com/evanphx/json-patch"
)

// write serializes one generation result under the output directory.
// Fresh assets gain a .patch suffix; existing patch files keep their
// own name.
func (b *Build) write(f InputFile, data patchgen.Data) error {
	if err := validate(data); err != nil {
		return fmt.Errorf("%s: generated patch does not decode: %w", f.Rel, err)
	}
	rel := filepath.FromSlash(f.Rel)
	if !f.IsPatch {
		rel += ".patch"
	}
	outPath := filepath.Join(b.Output, rel)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return err
	}

	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(data.Node(), buf); err != nil {
		return err
	}
	buf.WriteByte('\n')
	return os.WriteFile(outPath, buf.Bytes(), 0644)
}

// validate checks that what we emit decodes as an RFC 6902 patch; for
// batched output each [test, replace] batch is its own patch document.
func validate(data patchgen.Data) error {
	switch x := data.(type) {
	case patchgen.Ops:
		return decodes(x)
	case patchgen.Batches:
		for _, batch := range x {
			if err := decodes(patchgen.Ops(batch)); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown patch data %T", data)
	}
}

func decodes(ops patchgen.Ops) error {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(ops.Node(), buf, encode.EncodeWire(true)); err != nil {
		return err
	}
	_, err := jsonpatch.DecodePatch(buf.Bytes())
	return err
}
