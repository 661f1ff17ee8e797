package genfs_test

import (
	"context"
	"errors"
	"testing"

	"genfs/internal/genfs"
	"genfs/internal/model"
	"genfs/internal/testutil"
)

func TestService_Read(t *testing.T) {
	ctx := context.Background()

	t.Run("returns head content", func(t *testing.T) {
		svc, _ := testutil.NewTestService(t, genfs.Options{})
		mustWrite(t, svc, "app", "index.html", "<p>old</p>")
		mustWrite(t, svc, "app", "index.html", "<p>new</p>")

		got, err := svc.Read(ctx, "app", "/index.html")
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if got.Content.IsBinary() {
			t.Error("text content read back as binary")
		}
		if string(got.Content.Data()) != "<p>new</p>" {
			t.Errorf("Content = %q, want <p>new</p>", got.Content.Data())
		}
		if got.Version.Version != 2 {
			t.Errorf("Version = %d, want 2", got.Version.Version)
		}
		if got.MimeType != got.File.MimeType {
			t.Errorf("MimeType = %q, want file mime type %q", got.MimeType, got.File.MimeType)
		}
	})

	t.Run("binary content round trips", func(t *testing.T) {
		svc, _ := testutil.NewTestService(t, genfs.Options{})
		payload := []byte{0xde, 0xad, 0xbe, 0xef}
		if _, err := svc.Write(ctx, genfs.WriteRequest{AppID: "app", Path: "x.bin", Content: genfs.BinaryContent(payload)}); err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		got, err := svc.Read(ctx, "app", "x.bin")
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if !got.Content.IsBinary() || string(got.Content.Bytes) != string(payload) {
			t.Errorf("Content = %+v, want binary %v", got.Content, payload)
		}
	})

	t.Run("empty text stays text", func(t *testing.T) {
		svc, _ := testutil.NewTestService(t, genfs.Options{})
		mustWrite(t, svc, "app", "empty.txt", "")

		got, err := svc.Read(ctx, "app", "empty.txt")
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if got.Content.IsBinary() || got.Content.Text == nil || *got.Content.Text != "" {
			t.Errorf("Content = %+v, want empty text", got.Content)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		svc, _ := testutil.NewTestService(t, genfs.Options{})

		if _, err := svc.Read(ctx, "app", "nope.ts"); !errors.Is(err, genfs.ErrNotFound) {
			t.Errorf("Read() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("file without head version", func(t *testing.T) {
		svc, db := testutil.NewTestService(t, genfs.Options{})
		now := testutil.FixedClock().Now()

		err := db.InTx(ctx, func(tx genfs.Tx) error {
			return tx.InsertFile(ctx, &model.File{
				ID: "orphan", AppID: "app", Path: "orphan.ts", CreatedAt: now, UpdatedAt: now,
			})
		})
		if err != nil {
			t.Fatalf("inserting file: %v", err)
		}

		if _, err := svc.Read(ctx, "app", "orphan.ts"); !errors.Is(err, genfs.ErrNoVersion) {
			t.Errorf("Read() error = %v, want ErrNoVersion", err)
		}
	})
}

func TestService_Rename(t *testing.T) {
	ctx := context.Background()

	t.Run("moves head content to new path", func(t *testing.T) {
		svc, db := testutil.NewTestService(t, genfs.Options{})
		if _, err := svc.Write(ctx, genfs.WriteRequest{
			AppID: "app", Path: "old.ts", Content: genfs.TextContent("body"), MimeType: "text/typescript", Actor: "agent-7",
		}); err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		res, err := svc.Rename(ctx, "app", "old.ts", "/new/place.ts")
		if err != nil {
			t.Fatalf("Rename() error = %v", err)
		}
		if res.File.Path != "new/place.ts" {
			t.Errorf("Path = %q, want new/place.ts", res.File.Path)
		}
		if res.Version.Version != 1 {
			t.Errorf("Version = %d, want 1", res.Version.Version)
		}
		if res.File.MimeType != "text/typescript" {
			t.Errorf("MimeType = %q, want text/typescript", res.File.MimeType)
		}
		if res.Version.CreatedBy != "agent-7" {
			t.Errorf("CreatedBy = %q, want agent-7", res.Version.CreatedBy)
		}

		got, err := svc.Read(ctx, "app", "new/place.ts")
		if err != nil || string(got.Content.Data()) != "body" {
			t.Errorf("Read(new) = %v, %v; want body", got, err)
		}
		if _, err := svc.Read(ctx, "app", "old.ts"); !errors.Is(err, genfs.ErrNotFound) {
			t.Errorf("Read(old) error = %v, want ErrNotFound", err)
		}

		files, _ := db.ListFiles(ctx, "app", 0)
		if len(files) != 1 {
			t.Errorf("file count after rename = %d, want 1", len(files))
		}
	})

	t.Run("onto existing path appends a version", func(t *testing.T) {
		svc, _ := testutil.NewTestService(t, genfs.Options{})
		mustWrite(t, svc, "app", "a.ts", "from a")
		target := mustWrite(t, svc, "app", "b.ts", "from b")

		res, err := svc.Rename(ctx, "app", "a.ts", "b.ts")
		if err != nil {
			t.Fatalf("Rename() error = %v", err)
		}
		if res.File.ID != target.File.ID {
			t.Error("rename onto existing path created a new file")
		}
		if res.Version.Version != 2 || res.Version.ParentVersionID != target.Version.ID {
			t.Errorf("Version = %d parent %q, want 2 parent %q", res.Version.Version, res.Version.ParentVersionID, target.Version.ID)
		}
	})

	t.Run("drops edges of the old file", func(t *testing.T) {
		svc, db := testutil.NewTestService(t, genfs.Options{})
		mustWrite(t, svc, "app", "lib.ts", "lib")
		mustWrite(t, svc, "app", "main.ts", "main")
		if _, err := svc.AddReference(ctx, "app", "main.ts", "lib.ts"); err != nil {
			t.Fatalf("AddReference() error = %v", err)
		}
		lib, _ := svc.Stat(ctx, "app", "lib.ts")

		res, err := svc.Rename(ctx, "app", "lib.ts", "lib2.ts")
		if err != nil {
			t.Fatalf("Rename() error = %v", err)
		}
		if len(res.ImpactedFileIDs) != 0 {
			t.Errorf("ImpactedFileIDs = %v, want none", res.ImpactedFileIDs)
		}

		ids, err := db.FindReferencingFileIDs(ctx, "app", lib.ID)
		if err != nil {
			t.Fatalf("FindReferencingFileIDs() error = %v", err)
		}
		if len(ids) != 0 {
			t.Errorf("edges to removed file remain: %v", ids)
		}
	})

	t.Run("onto itself is a no-op", func(t *testing.T) {
		svc, _ := testutil.NewTestService(t, genfs.Options{})
		w := mustWrite(t, svc, "app", "same.ts", "x")

		res, err := svc.Rename(ctx, "app", "same.ts", "/same.ts")
		if err != nil {
			t.Fatalf("Rename() error = %v", err)
		}
		if res.Version.ID != w.Version.ID {
			t.Error("self-rename created a version")
		}
	})

	t.Run("missing source", func(t *testing.T) {
		svc, _ := testutil.NewTestService(t, genfs.Options{})

		if _, err := svc.Rename(ctx, "app", "ghost.ts", "b.ts"); !errors.Is(err, genfs.ErrNotFound) {
			t.Errorf("Rename() error = %v, want ErrNotFound", err)
		}
		if _, err := svc.Read(ctx, "app", "b.ts"); !errors.Is(err, genfs.ErrNotFound) {
			t.Error("failed rename left a target file")
		}
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes file and versions", func(t *testing.T) {
		svc, db := testutil.NewTestService(t, genfs.Options{})
		w := mustWrite(t, svc, "app", "gone.ts", "1")
		mustWrite(t, svc, "app", "gone.ts", "2")

		if err := svc.Delete(ctx, "app", "gone.ts"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		if _, err := svc.Read(ctx, "app", "gone.ts"); !errors.Is(err, genfs.ErrNotFound) {
			t.Errorf("Read() after delete error = %v, want ErrNotFound", err)
		}
		versions, err := db.FindVersionsForFile(ctx, w.File.ID, 0)
		if err != nil {
			t.Fatalf("FindVersionsForFile() error = %v", err)
		}
		if len(versions) != 0 {
			t.Errorf("%d versions left after delete", len(versions))
		}
	})

	t.Run("rewrite after delete starts at version 1", func(t *testing.T) {
		svc, _ := testutil.NewTestService(t, genfs.Options{})
		mustWrite(t, svc, "app", "again.ts", "1")
		if err := svc.Delete(ctx, "app", "again.ts"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		res := mustWrite(t, svc, "app", "again.ts", "fresh")
		if res.Version.Version != 1 {
			t.Errorf("Version = %d, want 1", res.Version.Version)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		svc, _ := testutil.NewTestService(t, genfs.Options{})

		if err := svc.Delete(ctx, "app", "nope.ts"); !errors.Is(err, genfs.ErrNotFound) {
			t.Errorf("Delete() error = %v, want ErrNotFound", err)
		}
	})
}
