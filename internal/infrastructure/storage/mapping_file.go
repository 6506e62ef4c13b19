package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"ChannelSnapshot/internal/domain"
	"ChannelSnapshot/internal/ports"
)

// MappingFile reads the playlist rank list from a JSON document shaped
// {"mapping": [{"id": "..."}, ...]}.
type MappingFile struct {
	path string
}

var _ ports.RankSource = (*MappingFile)(nil)

// NewMappingFile points the loader at path.
func NewMappingFile(path string) *MappingFile {
	return &MappingFile{path: path}
}

// LoadRanks returns the entries in file order.
func (m *MappingFile) LoadRanks(ctx context.Context) (domain.RankList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(m.path)
	if err != nil {
		return nil, fmt.Errorf("read mapping: %w", err)
	}

	var doc struct {
		Mapping domain.RankList `json:"mapping"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse mapping %s: %w", m.path, err)
	}

	for idx, entry := range doc.Mapping {
		if entry.ID == "" {
			return nil, &domain.ConfigurationError{
				Field:  "ordering.mappingPath",
				Reason: fmt.Sprintf("entry %d of %s has no id", idx, m.path),
			}
		}
	}
	return doc.Mapping, nil
}
