package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskStore_SaveAndServeURL(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "/uploads/")

	obj, err := store.Save(context.Background(), "attachments/candidate/10/1_ab_resume.pdf", strings.NewReader("body"))
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if obj.URL != "/uploads/attachments/candidate/10/1_ab_resume.pdf" {
		t.Errorf("URL = %q, want base url joined with the path", obj.URL)
	}
}

func TestDiskStore_WritesContent(t *testing.T) {
	root := t.TempDir()
	store := NewDiskStore(root, "/uploads")

	if _, err := store.Save(context.Background(), "a/b.txt", strings.NewReader("hello")); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(root, "a", "b.txt"))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(raw) != "hello" {
		t.Errorf("stored content = %q, want %q", raw, "hello")
	}
}

func TestDiskStore_DuplicatePathIsCodeDuplicate(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "/uploads")
	ctx := context.Background()

	if _, err := store.Save(ctx, "a/b.txt", strings.NewReader("one")); err != nil {
		t.Fatalf("first Save returned error: %v", err)
	}
	_, err := store.Save(ctx, "a/b.txt", strings.NewReader("two"))

	var serr *Error
	if !errors.As(err, &serr) || serr.Code != CodeDuplicate {
		t.Errorf("second Save err = %v, want *Error with CodeDuplicate", err)
	}
}
