package storage

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/origen-app/origen-server/internal/common"
)

func TestSaveAndReject(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	path, err := store.Save("receipt.pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Dir(path) != dir || filepath.Ext(path) != ".pdf" {
		t.Errorf("stored path %q not in %q with .pdf", path, dir)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "%PDF-1.4" {
		t.Errorf("stored content = %q, err = %v", data, err)
	}

	// two saves of the same name must not collide
	other, err := store.Save("receipt.pdf", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if other == path {
		t.Error("duplicate stored path")
	}

	if _, err := store.Save("notes.txt", strings.NewReader("hi")); !errors.Is(err, common.ErrInvalidInput) {
		t.Errorf("txt accepted, err = %v", err)
	}
}
