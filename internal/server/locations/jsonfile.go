package locations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// JSONFileRepository stores the snapshot as a single pretty-printed JSON
// document, rewritten in full on every save. The write goes through a
// temporary file and a rename, so a failed save leaves the previous
// snapshot on disk untouched.
type JSONFileRepository struct {
	path string
}

func NewJSONFileRepository(path string) *JSONFileRepository {
	return &JSONFileRepository{path: path}
}

func (r *JSONFileRepository) Load(ctx context.Context) (*Snapshot, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Store not initialized yet.
			return &Snapshot{Locations: []Record{}}, nil
		}
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	snap := &Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	if snap.Locations == nil {
		snap.Locations = []Record{}
	}
	return snap, nil
}

func (r *JSONFileRepository) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.path, err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", r.path, err)
	}

	_, werr := tmp.Write(append(data, '\n'))
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		os.Remove(tmp.Name())
		if werr != nil {
			return fmt.Errorf("write %s: %w", r.path, werr)
		}
		return fmt.Errorf("close %s: %w", r.path, cerr)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}
