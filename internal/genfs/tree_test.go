package genfs_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"genfs/internal/genfs"
	"genfs/internal/model"
	"genfs/internal/testutil"
)

func fileRecords(paths ...string) []*model.File {
	out := make([]*model.File, len(paths))
	for i, p := range paths {
		out[i] = &model.File{Path: p, SizeBytes: int64(len(p)), MimeType: "text/plain"}
	}
	return out
}

// render flattens a tree into "path/" for directories and "path" for files,
// in traversal order.
func render(nodes []*genfs.TreeNode) []string {
	var out []string
	for _, n := range nodes {
		if n.Type == genfs.NodeTypeDirectory {
			out = append(out, n.Path+"/")
			out = append(out, render(n.Children)...)
		} else {
			out = append(out, n.Path)
		}
	}
	return out
}

func TestMaterialize(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		want  []string
	}{
		{
			name:  "directories before files, sorted by name",
			paths: []string{"z.txt", "src/b.ts", "a.txt", "src/a.ts", "lib/x.ts"},
			want:  []string{"lib/", "lib/x.ts", "src/", "src/a.ts", "src/b.ts", "a.txt", "z.txt"},
		},
		{
			name:  "nested directories",
			paths: []string{"a/b/c/d.txt", "a/e.txt", "a/b/f.txt"},
			want:  []string{"a/", "a/b/", "a/b/c/", "a/b/c/d.txt", "a/b/f.txt", "a/e.txt"},
		},
		{
			name:  "leading slashes and empty segments ignored",
			paths: []string{"/src//main.ts", "src/util.ts"},
			want:  []string{"src/", "src/main.ts", "src/util.ts"},
		},
		{
			name:  "ordering is byte-wise",
			paths: []string{"b.txt", "B.txt", "a.txt"},
			want:  []string{"B.txt", "a.txt", "b.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(genfs.Materialize(fileRecords(tt.paths...)))
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Materialize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMaterialize_NodeFields(t *testing.T) {
	tree := genfs.Materialize([]*model.File{
		{Path: "src/app.ts", SizeBytes: 42, MimeType: "text/typescript"},
	})

	if len(tree) != 1 {
		t.Fatalf("len(tree) = %d, want 1", len(tree))
	}
	dir := tree[0]
	if dir.Name != "src" || dir.Type != genfs.NodeTypeDirectory || dir.Size != nil || dir.MimeType != nil {
		t.Errorf("directory node = %+v", dir)
	}
	if len(dir.Children) != 1 {
		t.Fatalf("len(children) = %d, want 1", len(dir.Children))
	}
	file := dir.Children[0]
	if file.Name != "app.ts" || file.Path != "src/app.ts" || file.Type != genfs.NodeTypeFile {
		t.Errorf("file node = %+v", file)
	}
	if file.Size == nil || *file.Size != 42 {
		t.Errorf("file Size = %v, want 42", file.Size)
	}
	if file.MimeType == nil || *file.MimeType != "text/typescript" {
		t.Errorf("file MimeType = %v, want text/typescript", file.MimeType)
	}

	data, err := json.Marshal(file)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "children") {
		t.Errorf("file node JSON carries children: %s", data)
	}
}

func TestMaterialize_Empty(t *testing.T) {
	got := genfs.Materialize(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("Materialize(nil) = %#v, want empty slice", got)
	}
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	svc, _ := testutil.NewTestService(t, genfs.Options{})
	for _, p := range []string{"src/main.ts", "README.md", "src/components/Button.tsx"} {
		mustWrite(t, svc, "app", p, p)
	}
	mustWrite(t, svc, "other", "secret.txt", "x")

	tree, err := svc.List(ctx, "app", 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	got := strings.Join(render(tree), ",")
	want := "src/,src/components/,src/components/Button.tsx,src/main.ts,README.md"
	if got != want {
		t.Errorf("List() = %s, want %s", got, want)
	}

	empty, err := svc.List(ctx, "nobody", 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("List(empty app) = %#v, want empty slice", empty)
	}
}
