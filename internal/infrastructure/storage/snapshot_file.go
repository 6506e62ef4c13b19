package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"ChannelSnapshot/internal/domain"
	"ChannelSnapshot/internal/ports"
)

// SnapshotFile writes the snapshot artifact to a JSON file.
type SnapshotFile struct {
	path string
}

var _ ports.SnapshotWriter = (*SnapshotFile)(nil)

// NewSnapshotFile targets the given path; parent directories are created on write.
func NewSnapshotFile(path string) *SnapshotFile {
	return &SnapshotFile{path: path}
}

// Path returns the artifact location.
func (f *SnapshotFile) Path() string {
	return f.path
}

// WriteSnapshot replaces the artifact atomically: readers see either the old
// file or the complete new one.
func (f *SnapshotFile) WriteSnapshot(ctx context.Context, snapshot domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp snapshot: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot loads a previously written artifact.
func (f *SnapshotFile) ReadSnapshot() (domain.Snapshot, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return domain.Snapshot{}, fmt.Errorf("parse snapshot %s: %w", f.path, err)
	}
	return snapshot, nil
}

// EncodeSnapshot renders the artifact with two-space indentation. Empty
// playlist and video lists are written as [] rather than null.
func EncodeSnapshot(snapshot domain.Snapshot) ([]byte, error) {
	playlists := make([]domain.Playlist, len(snapshot.Playlists))
	for i, pl := range snapshot.Playlists {
		if pl.Videos == nil {
			pl.Videos = []domain.Video{}
		}
		playlists[i] = pl
	}
	snapshot.Playlists = playlists
	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return payload, nil
}
