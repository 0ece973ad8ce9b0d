package dirbuild

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/neki-mods/neki-lang/config"
	"github.com/neki-mods/neki-lang/parse"
	"github.com/neki-mods/neki-lang/pattern"
)

func TestExtensionInfo(t *testing.T) {
	pts := []struct {
		path    string
		ext     string
		isPatch bool
	}{
		{path: "items/torch.object", ext: "object"},
		{path: "items/torch.object.patch", ext: "object.patch", isPatch: true},
		{path: "a/b.c/file.item", ext: "item"},
		{path: "bare.patch", ext: "patch", isPatch: true},
		{path: "noext", ext: ""},
		{path: "dir.with.dots/noext", ext: ""},
		{path: "x.monstertype", ext: "monstertype"},
	}
	for _, pt := range pts {
		ext, isPatch := ExtensionInfo(filepath.FromSlash(pt.path))
		if ext != pt.ext || isPatch != pt.isPatch {
			t.Errorf("ExtensionInfo(%q) = (%q, %t), want (%q, %t)",
				pt.path, ext, isPatch, pt.ext, pt.isPatch)
		}
	}
}

func TestUnderWhitelist(t *testing.T) {
	dirs := []string{"items", "objects"}
	pts := []struct {
		rel  string
		want bool
	}{
		{rel: "items", want: true},
		{rel: "items/torch.object", want: true},
		{rel: "items/sub/deep.object", want: true},
		{rel: "itemsextra/x.object", want: false},
		{rel: "other/x.object", want: false},
		{rel: "objects/door.object", want: true},
	}
	for _, pt := range pts {
		if got := underWhitelist(pt.rel, dirs); got != pt.want {
			t.Errorf("underWhitelist(%q) = %t, want %t", pt.rel, got, pt.want)
		}
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	pats, err := pattern.New(map[string][]string{
		"object":       {`^/shortdescription$`},
		"object.patch": {`^/shortdescription$`},
	})
	if err != nil {
		t.Fatal(err)
	}
	return &config.Config{
		Dirs:     []string{"items", "objects"},
		Patterns: pats,
	}
}

func writeInput(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readOutput(t *testing.T, root, rel string) string {
	t.Helper()
	d, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatal(err)
	}
	return string(d)
}

func TestRun(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	writeInput(t, input, "items/torch.object",
		`{"shortdescription": "A torch", "price": 5} // relaxed`)
	writeInput(t, input, "objects/door/door.object.patch",
		`[{"op": "replace", "path": "/shortdescription", "value": "A door"}]`)
	writeInput(t, input, "items/plain.object",
		`{"price": 5}`)
	writeInput(t, input, "items/readme.txt", "not scanned")
	writeInput(t, input, "elsewhere/skipped.object",
		`{"shortdescription": "outside whitelist"}`)

	b := &Build{
		Input:   input,
		Output:  output,
		Workers: 2,
		Config:  testConfig(t),
	}
	stats, err := b.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Scanned != 3 {
		t.Errorf("Scanned = %d, want 3", stats.Scanned)
	}
	if stats.Written != 2 {
		t.Errorf("Written = %d, want 2", stats.Written)
	}

	got := readOutput(t, output, "items/torch.object.patch")
	if !strings.HasSuffix(got, "\n") {
		t.Error("output does not end with a newline")
	}
	gotNode, err := parse.Parse([]byte(got))
	if err != nil {
		t.Fatalf("output does not parse: %v", err)
	}
	wantNode, err := parse.Parse([]byte(
		`[{"op": "replace", "path": "/shortdescription", "value": "(T) A torch"}]`))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(wantNode, gotNode); d != "" {
		t.Errorf("torch output (-want +got):\n%s", d)
	}

	// an existing patch file keeps its own name
	got = readOutput(t, output, "objects/door/door.object.patch")
	gotNode, err = parse.Parse([]byte(got))
	if err != nil {
		t.Fatalf("door output does not parse: %v", err)
	}
	wantNode, err = parse.Parse([]byte(
		`[{"op": "replace", "path": "/shortdescription", "value": "(T) A door"}]`))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(wantNode, gotNode); d != "" {
		t.Errorf("door output (-want +got):\n%s", d)
	}

	// files with no matches produce no output
	if _, err := os.Stat(filepath.Join(output, "items", "plain.object.patch")); !os.IsNotExist(err) {
		t.Errorf("plain.object should not produce output, stat err = %v", err)
	}
}

func TestRunTestOps(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	writeInput(t, input, "items/torch.object",
		`{"shortdescription": "A torch"}`)

	b := &Build{
		Input:   input,
		Output:  output,
		TestOps: true,
		Config:  testConfig(t),
	}
	if _, err := b.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	got, err := parse.Parse([]byte(readOutput(t, output, "items/torch.object.patch")))
	if err != nil {
		t.Fatal(err)
	}
	want, err := parse.Parse([]byte(`[[
		{"op": "test", "path": "/shortdescription"},
		{"op": "replace", "path": "/shortdescription", "value": "(T) A torch"}
	]]`))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("batched output (-want +got):\n%s", d)
	}
}

func TestRunBadInput(t *testing.T) {
	b := &Build{
		Input:  filepath.Join(t.TempDir(), "does-not-exist"),
		Output: t.TempDir(),
		Config: testConfig(t),
	}
	if _, err := b.Run(context.Background()); err == nil {
		t.Fatal("expected error for missing input directory")
	}
}

func TestRunParseErrorNamesFile(t *testing.T) {
	input := t.TempDir()
	writeInput(t, input, "items/bad.object", `{"a": 1,}`)
	b := &Build{
		Input:  input,
		Output: t.TempDir(),
		Config: testConfig(t),
	}
	_, err := b.Run(context.Background())
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "bad.object") {
		t.Errorf("error %q does not name the failing file", err)
	}
	if !strings.Contains(err.Error(), "Superfluous trailing comma") {
		t.Errorf("error %q does not carry the parse message", err)
	}
}
