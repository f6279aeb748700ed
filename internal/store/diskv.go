package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

// DiskSlots stores each slot as one file under a base directory.
type DiskSlots struct {
	d *diskv.Diskv
}

// NewDiskSlots opens (lazily creating) a slot store rooted at basePath.
// Slot keys map directly to file names, so they must be plain names.
func NewDiskSlots(basePath string) *DiskSlots {
	return &DiskSlots{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		TempDir:      filepath.Join(basePath, ".tmp"),
		CacheSizeMax: 8 * 1024 * 1024, // 8MB; a collection carries inline photos
	})}
}

func (s *DiskSlots) Get(_ context.Context, key string) (string, bool, error) {
	if !s.d.Has(key) {
		return "", false, nil
	}
	b, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("store.DiskSlots.Get: %w", err)
	}
	return string(b), true, nil
}

// Put replaces the slot file atomically (diskv writes to a temp file first).
func (s *DiskSlots) Put(_ context.Context, key, value string) error {
	if err := s.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("store.DiskSlots.Put: %w", err)
	}
	return nil
}
