package local

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/model-registry/model-registry/internal/config"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := New(&config.LocalStorageConfig{BasePath: t.TempDir()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestUploadAndDownload(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	result, err := s.Upload(ctx, "models/m1/model.onnx", strings.NewReader("weights"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if result.Size != int64(len("weights")) {
		t.Errorf("Size = %d, want %d", result.Size, len("weights"))
	}
	if result.Checksum == "" {
		t.Error("expected non-empty checksum")
	}

	reader, err := s.Download(ctx, "models/m1/model.onnx")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "weights" {
		t.Errorf("content = %q, want weights", data)
	}
}

func TestUpload_OverwritesSameName(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	if _, err := s.Upload(ctx, "models/m1/model.onnx", strings.NewReader("old")); err != nil {
		t.Fatalf("first Upload: %v", err)
	}
	if _, err := s.Upload(ctx, "models/m1/model.onnx", strings.NewReader("new")); err != nil {
		t.Fatalf("second Upload: %v", err)
	}

	reader, err := s.Download(ctx, "models/m1/model.onnx")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	defer reader.Close()

	data, _ := io.ReadAll(reader)
	if string(data) != "new" {
		t.Errorf("content = %q, want new (last write wins)", data)
	}
}

func TestDownload_Missing(t *testing.T) {
	s := newTestStorage(t)
	if _, err := s.Download(context.Background(), "models/m1/missing.onnx"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestList(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	for name, content := range map[string]string{
		"model.onnx":    "weights",
		"metadata.yaml": "names:\n  0: building\n",
	} {
		if _, err := s.Upload(ctx, "models/m1/"+name, strings.NewReader(content)); err != nil {
			t.Fatalf("Upload %s: %v", name, err)
		}
	}

	files, err := s.List(ctx, "models/m1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("len(files) = %d, want 2", len(files))
	}

	byName := map[string]int64{}
	for _, f := range files {
		byName[f.Name] = f.Size
	}
	if byName["model.onnx"] != int64(len("weights")) {
		t.Errorf("model.onnx size = %d, want %d", byName["model.onnx"], len("weights"))
	}
}

func TestList_MissingDirectoryIsEmpty(t *testing.T) {
	s := newTestStorage(t)

	files, err := s.List(context.Background(), "models/never-uploaded")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected empty listing, got %d files", len(files))
	}
}

func TestDelete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	if _, err := s.Upload(ctx, "models/m1/model.onnx", strings.NewReader("weights")); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if err := s.Delete(ctx, "models/m1/model.onnx"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	exists, err := s.Exists(ctx, "models/m1/model.onnx")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Error("file still exists after delete")
	}

	// Deleting a missing file is not an error.
	if err := s.Delete(ctx, "models/m1/model.onnx"); err != nil {
		t.Errorf("Delete of missing file: %v", err)
	}
}

func TestDeleteAll(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	for _, name := range []string{"a.onnx", "b.pt", "metadata.yaml"} {
		if _, err := s.Upload(ctx, "models/m1/"+name, strings.NewReader("x")); err != nil {
			t.Fatalf("Upload: %v", err)
		}
	}

	if err := s.DeleteAll(ctx, "models/m1"); err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}

	files, err := s.List(ctx, "models/m1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected empty listing after DeleteAll, got %d files", len(files))
	}
}

func TestExists(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	exists, err := s.Exists(ctx, "models/m1/model.onnx")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Error("expected false for missing file")
	}

	if _, err := s.Upload(ctx, "models/m1/model.onnx", strings.NewReader("weights")); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	exists, err = s.Exists(ctx, "models/m1/model.onnx")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !exists {
		t.Error("expected true for uploaded file")
	}
}
