package fs

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func paths(files []*File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func TestCollect(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"package.json":            "{}",
		"src/index.ts":            "export {}",
		"src/components/App.tsx":  "<App/>",
		"node_modules/react/x.js": "ignored",
		"dist/bundle.js":          "ignored by file",
		"debug.log":               "ignored by option",
		"public/logo.png":         "\x89PNG\r\n\x1a\n\xff\xfe",
		IgnoreFileName:            "dist/\n",
	})

	files, err := Collect(root, WalkOptions{Ignore: []string{"node_modules/", "*.log"}})
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	want := []string{"package.json", "public/logo.png", "src/components/App.tsx", "src/index.ts"}
	if got := paths(files); !slices.Equal(got, want) {
		t.Fatalf("Collect() paths = %v, want %v", got, want)
	}

	for _, f := range files {
		wantBinary := f.Path == "public/logo.png"
		if f.Binary != wantBinary {
			t.Errorf("%s Binary = %v, want %v", f.Path, f.Binary, wantBinary)
		}
	}
	if files[3].Text() != "export {}" {
		t.Errorf("src/index.ts Text() = %q", files[3].Text())
	}
}

func TestCollect_SkipsSymlinks(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"real.txt": "x"})
	if err := os.Symlink(filepath.Join(root, "real.txt"), filepath.Join(root, "link.txt")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, err := Collect(root, WalkOptions{})
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if got := paths(files); !slices.Equal(got, []string{"real.txt"}) {
		t.Errorf("Collect() paths = %v, want [real.txt]", got)
	}
}

func TestCollect_Errors(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		if _, err := Collect(filepath.Join(t.TempDir(), "nope"), WalkOptions{}); err == nil {
			t.Error("Collect() expected error")
		}
	})

	t.Run("root is a file", func(t *testing.T) {
		root := t.TempDir()
		writeTree(t, root, map[string]string{"f": "x"})
		if _, err := Collect(filepath.Join(root, "f"), WalkOptions{}); err == nil {
			t.Error("Collect() expected error")
		}
	})

	t.Run("file too large", func(t *testing.T) {
		root := t.TempDir()
		writeTree(t, root, map[string]string{"big.bin": "0123456789"})
		if _, err := Collect(root, WalkOptions{MaxFileSize: 4}); err == nil {
			t.Error("Collect() expected size error")
		}
	})
}
