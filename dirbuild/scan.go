package dirbuild

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/neki-mods/neki-lang/debug"
)

// InputFile is a discovered asset file ready for processing.
type InputFile struct {
	Path    string // absolute or input-relative on-disk path
	Rel     string // slash-separated path relative to the input root
	Ext     string // extension, compound for patch files ("object.patch")
	IsPatch bool
}

// scan walks the input directory, keeping regular files that sit under
// a whitelisted top-level directory and whose extension is recognized
// by the pattern config. Results come back in walk order.
func (b *Build) scan() ([]InputFile, error) {
	var files []InputFile
	err := filepath.WalkDir(b.Input, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(b.Input, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !underWhitelist(rel, b.Config.Dirs) {
			return nil
		}
		ext, isPatch := ExtensionInfo(path)
		if !b.Config.Patterns.Has(ext) {
			return nil
		}
		if debug.Scan() {
			debug.Logf("scan: %s (ext=%s patch=%t)\n", rel, ext, isPatch)
		}
		files = append(files, InputFile{
			Path:    path,
			Rel:     rel,
			Ext:     ext,
			IsPatch: isPatch,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func underWhitelist(rel string, dirs []string) bool {
	for _, dir := range dirs {
		if rel == dir || strings.HasPrefix(rel, dir+"/") {
			return true
		}
	}
	return false
}

// ExtensionInfo returns the file's extension and whether it is a patch
// file. Patch files report the compound extension, so "door.object.patch"
// yields "object.patch"; a patch file with no inner extension stays
// "patch". Files without an extension yield "".
func ExtensionInfo(path string) (string, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	isPatch := ext == "patch"
	if isPatch {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if i := strings.LastIndex(stem, "."); i >= 0 {
			ext = stem[i+1:] + "." + ext
		}
	}
	return ext, isPatch
}
