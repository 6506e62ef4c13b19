package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"ChannelSnapshot/internal/domain"
	"ChannelSnapshot/internal/ports"
)

// PipelineDeps wires all driven adapters into the snapshot pipeline.
type PipelineDeps struct {
	Source  ports.ChannelSource
	Ranks   ports.RankSource
	Writer  ports.SnapshotWriter
	History ports.SnapshotRepository
	Logger  *slog.Logger

	// Concurrency bounds parallel playlist listings; values below 1 mean sequential.
	Concurrency int
	// AllPlaylists follows every page of the playlists listing.
	AllPlaylists bool
	// StrictOrdering rejects playlists missing from the rank list.
	StrictOrdering bool
	Now            func() time.Time
}

// Pipeline assembles the channel snapshot.
type Pipeline struct {
	source  ports.ChannelSource
	ranks   ports.RankSource
	writer  ports.SnapshotWriter
	history ports.SnapshotRepository
	logger  *slog.Logger

	concurrency    int
	allPlaylists   bool
	strictOrdering bool
	now            func() time.Time
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	concurrency := deps.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return &Pipeline{
		source:         deps.Source,
		ranks:          deps.Ranks,
		writer:         deps.Writer,
		history:        deps.History,
		logger:         deps.Logger,
		concurrency:    concurrency,
		allPlaylists:   deps.AllPlaylists,
		strictOrdering: deps.StrictOrdering,
		now:            now,
	}
}

// Build fetches playlists with their videos and the latest video, then orders
// playlists by the rank list. Any failure aborts the whole build.
func (p *Pipeline) Build(ctx context.Context, channelID string) (domain.Snapshot, error) {
	if p.source == nil {
		return domain.Snapshot{}, errors.New("pipeline: channel source is not configured")
	}

	var ranks domain.RankList
	if p.ranks != nil {
		loaded, err := p.ranks.LoadRanks(ctx)
		if err != nil {
			return domain.Snapshot{}, fmt.Errorf("load ranks: %w", err)
		}
		ranks = loaded
	}

	playlists, err := p.source.Playlists(ctx, channelID, p.allPlaylists)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("list playlists: %w", err)
	}
	p.debug("playlists listed", "channel", channelID, "count", len(playlists))

	if err := p.attachVideos(ctx, playlists); err != nil {
		return domain.Snapshot{}, err
	}

	latest, err := p.source.LatestVideo(ctx, channelID)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("latest video: %w", err)
	}

	sorted, unranked, err := SortPlaylists(playlists, ranks, p.strictOrdering)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("order playlists: %w", err)
	}
	if len(unranked) > 0 && p.logger != nil {
		p.logger.Warn("playlists missing from rank list, placed last", "ids", unranked)
	}

	return domain.Snapshot{Latest: latest, Playlists: sorted}, nil
}

// attachVideos fills every playlist's Videos in place. Each listing writes
// only its own slot, so results do not depend on completion order.
func (p *Pipeline) attachVideos(ctx context.Context, playlists []domain.Playlist) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i := range playlists {
		g.Go(func() error {
			videos, err := p.source.PlaylistVideos(gctx, playlists[i].ID)
			if err != nil {
				return fmt.Errorf("list videos of playlist %s: %w", playlists[i].ID, err)
			}
			playlists[i].Videos = videos
			p.debug("playlist videos attached", "playlist", playlists[i].ID, "videos", len(videos))
			return nil
		})
	}
	return g.Wait()
}

// Run builds the snapshot and persists it. Nothing is written when the build fails.
func (p *Pipeline) Run(ctx context.Context, channelID string) error {
	snapshot, err := p.Build(ctx, channelID)
	if err != nil {
		return err
	}

	if p.writer != nil {
		if err := p.writer.WriteSnapshot(ctx, snapshot); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
	}

	if p.history == nil {
		return nil
	}
	return p.record(ctx, channelID, snapshot)
}

func (p *Pipeline) record(ctx context.Context, channelID string, snapshot domain.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	sum := sha256.Sum256(payload)
	checksum := hex.EncodeToString(sum[:])

	previous, ok, err := p.history.LatestChecksum(ctx, channelID)
	if err != nil {
		return fmt.Errorf("load snapshot history: %w", err)
	}
	if ok && previous == checksum {
		p.debug("snapshot unchanged, history not updated", "channel", channelID)
		return nil
	}

	err = p.history.SaveSnapshot(ctx, domain.SnapshotRecord{
		ChannelID:   channelID,
		Checksum:    checksum,
		Payload:     payload,
		GeneratedAt: p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("save snapshot history: %w", err)
	}
	return nil
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
