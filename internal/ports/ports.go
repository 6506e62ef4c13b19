package ports

import (
	"context"
	"time"

	"ChannelSnapshot/internal/domain"
)

// ChannelSource pulls playlists and videos of a channel from the data API.
type ChannelSource interface {
	Playlists(ctx context.Context, channelID string, all bool) ([]domain.Playlist, error)
	PlaylistVideos(ctx context.Context, playlistID string) ([]domain.Video, error)
	LatestVideo(ctx context.Context, channelID string) (*domain.Video, error)
}

// ChannelResolver turns a handle or channel URL into a channel identifier.
type ChannelResolver interface {
	ResolveChannelID(ctx context.Context, ref string) (string, error)
}

// RankSource provides the externally maintained playlist order.
type RankSource interface {
	LoadRanks(ctx context.Context) (domain.RankList, error)
}

// SnapshotWriter persists the final artifact.
type SnapshotWriter interface {
	WriteSnapshot(ctx context.Context, snapshot domain.Snapshot) error
}

// SnapshotRepository keeps the history of generated snapshots.
type SnapshotRepository interface {
	LatestChecksum(ctx context.Context, channelID string) (string, bool, error)
	SaveSnapshot(ctx context.Context, record domain.SnapshotRecord) error
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
