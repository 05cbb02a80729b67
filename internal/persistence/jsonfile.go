package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/terraincognita07/cyclia/internal/models"
)

// JSONFile persists the snapshot as a single indented JSON document, the
// original on-disk format of this tracker. A missing or unreadable file
// yields the default snapshot rather than an error; writes go through a
// temp file and rename so a failed save never clobbers the previous data.
type JSONFile struct {
	path     string
	defaults models.Settings
}

func NewJSONFile(path string, defaults models.Settings) *JSONFile {
	return &JSONFile{path: path, defaults: defaults}
}

func (j *JSONFile) Load() (models.Snapshot, error) {
	raw, err := os.ReadFile(j.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return emptySnapshot(j.defaults), nil
		}
		return emptySnapshot(j.defaults), fmt.Errorf("read snapshot file: %w", err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		// Corrupt data file: fall back to defaults instead of locking
		// the user out of the calendar.
		return emptySnapshot(j.defaults), nil
	}
	return normalize(snapshot, j.defaults), nil
}

func (j *JSONFile) Save(snapshot models.Snapshot) error {
	encoded, err := json.MarshalIndent(projectPeriods(snapshot), "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(j.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(j.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, j.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace snapshot file: %w", err)
	}
	return nil
}
