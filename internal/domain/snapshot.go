package domain

import "time"

// Snapshot is the single artifact produced by one pipeline run.
type Snapshot struct {
	Latest    *Video     `json:"latest"`
	Playlists []Playlist `json:"playlists"`
}

// RankEntry is one record of the externally maintained playlist order.
// Only the position of ID in the list matters.
type RankEntry struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
}

// RankList defines the canonical display order of playlists.
type RankList []RankEntry

// Positions maps every identifier to its first position in the list.
func (r RankList) Positions() map[string]int {
	positions := make(map[string]int, len(r))
	for idx, entry := range r {
		if _, ok := positions[entry.ID]; ok {
			continue
		}
		positions[entry.ID] = idx
	}
	return positions
}

// SnapshotRecord is a persisted snapshot run.
type SnapshotRecord struct {
	ID          string
	ChannelID   string
	Checksum    string
	Payload     []byte
	GeneratedAt time.Time
}
