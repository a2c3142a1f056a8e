package config

import (
	"testing"

	"github.com/spf13/afero"
)

func TestReadIndexMissingFileReturnsDefault(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg, err := ReadIndex(fs, "/data/foo.cfg")
	if err != nil {
		t.Fatalf("ReadIndex: %v", err)
	}
	if !cfg.Tail {
		t.Fatalf("DefaultIndex().Tail = false, want true")
	}
}

func TestWriteIndexClearsRebuild(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := WriteIndex(fs, "/data/foo.cfg", Index{Rebuild: true, Tail: false}); err != nil {
		t.Fatalf("WriteIndex: %v", err)
	}
	cfg, err := ReadIndex(fs, "/data/foo.cfg")
	if err != nil {
		t.Fatalf("ReadIndex: %v", err)
	}
	if cfg.Rebuild {
		t.Fatalf("Rebuild = true, want cleared to false after write")
	}
	if cfg.Tail {
		t.Fatalf("Tail = true, want the persisted false")
	}
}
