package usecase

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"ChannelSnapshot/internal/domain"
)

type fakeSource struct {
	playlists []domain.Playlist
	videos    map[string][]domain.Video
	delays    map[string]time.Duration
	latest    *domain.Video
	failOn    string
	allSeen   bool

	inFlight atomic.Int32
	peak     atomic.Int32
}

func (f *fakeSource) Playlists(_ context.Context, _ string, all bool) ([]domain.Playlist, error) {
	f.allSeen = all
	return slices.Clone(f.playlists), nil
}

func (f *fakeSource) PlaylistVideos(ctx context.Context, playlistID string) ([]domain.Video, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		peak := f.peak.Load()
		if n <= peak || f.peak.CompareAndSwap(peak, n) {
			break
		}
	}

	if d := f.delays[playlistID]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if playlistID == f.failOn {
		return nil, &domain.TransportError{StatusCode: 500, Status: "Internal Server Error"}
	}
	return f.videos[playlistID], nil
}

func (f *fakeSource) LatestVideo(context.Context, string) (*domain.Video, error) {
	return f.latest, nil
}

type fakeRanks struct {
	ranks domain.RankList
	err   error
}

func (f fakeRanks) LoadRanks(context.Context) (domain.RankList, error) {
	return f.ranks, f.err
}

type fakeWriter struct {
	mu        sync.Mutex
	snapshots []domain.Snapshot
}

func (f *fakeWriter) WriteSnapshot(_ context.Context, snapshot domain.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshots = append(f.snapshots, snapshot)
	return nil
}

type fakeHistory struct {
	records []domain.SnapshotRecord
}

func (f *fakeHistory) LatestChecksum(_ context.Context, channelID string) (string, bool, error) {
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].ChannelID == channelID {
			return f.records[i].Checksum, true, nil
		}
	}
	return "", false, nil
}

func (f *fakeHistory) SaveSnapshot(_ context.Context, record domain.SnapshotRecord) error {
	f.records = append(f.records, record)
	return nil
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		playlists: playlistsOf("C", "A", "B"),
		videos: map[string][]domain.Video{
			"A": {{ID: "a1"}, {ID: "a2"}},
			"B": {{ID: "b1"}},
			"C": {{ID: "c1"}, {ID: "c2"}, {ID: "c3"}},
		},
		latest: &domain.Video{ID: "latest"},
	}
}

func TestPipelineBuild(t *testing.T) {
	t.Parallel()

	source := newFakeSource()
	p := NewPipeline(PipelineDeps{Source: source, Ranks: fakeRanks{ranks: ranksOf("B", "C", "A")}, AllPlaylists: true})

	snapshot, err := p.Build(context.Background(), "UC1")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	if got := playlistIDs(snapshot.Playlists); !slices.Equal(got, []string{"B", "C", "A"}) {
		t.Fatalf("unexpected order: %v", got)
	}
	if len(snapshot.Playlists[1].Videos) != 3 || snapshot.Playlists[1].Videos[2].ID != "c3" {
		t.Fatalf("videos not attached in order: %+v", snapshot.Playlists[1].Videos)
	}
	if snapshot.Latest == nil || snapshot.Latest.ID != "latest" {
		t.Fatalf("unexpected latest: %+v", snapshot.Latest)
	}
	if !source.allSeen {
		t.Fatal("AllPlaylists not forwarded to the source")
	}
}

func TestPipelineBuildWithoutLatest(t *testing.T) {
	t.Parallel()

	source := newFakeSource()
	source.latest = nil
	p := NewPipeline(PipelineDeps{Source: source, Ranks: fakeRanks{ranks: ranksOf("A", "B", "C")}})

	snapshot, err := p.Build(context.Background(), "UC1")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if snapshot.Latest != nil {
		t.Fatalf("expected nil latest, got %+v", snapshot.Latest)
	}
}

func TestPipelineConcurrentBuildKeepsRankOrder(t *testing.T) {
	t.Parallel()

	source := newFakeSource()
	source.delays = map[string]time.Duration{"C": 30 * time.Millisecond, "A": 10 * time.Millisecond}
	p := NewPipeline(PipelineDeps{Source: source, Ranks: fakeRanks{ranks: ranksOf("B", "C", "A")}, Concurrency: 3})

	snapshot, err := p.Build(context.Background(), "UC1")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	if got := playlistIDs(snapshot.Playlists); !slices.Equal(got, []string{"B", "C", "A"}) {
		t.Fatalf("unexpected order: %v", got)
	}
	for _, pl := range snapshot.Playlists {
		if len(pl.Videos) != len(source.videos[pl.ID]) || pl.Videos[0].ID != source.videos[pl.ID][0].ID {
			t.Fatalf("playlist %s got videos %+v", pl.ID, pl.Videos)
		}
	}
	if source.peak.Load() > 3 {
		t.Fatalf("concurrency limit exceeded: %d", source.peak.Load())
	}
}

func TestPipelineSequentialByDefault(t *testing.T) {
	t.Parallel()

	source := newFakeSource()
	source.delays = map[string]time.Duration{"C": 5 * time.Millisecond, "A": 5 * time.Millisecond, "B": 5 * time.Millisecond}
	p := NewPipeline(PipelineDeps{Source: source, Ranks: fakeRanks{ranks: ranksOf("A", "B", "C")}})

	if _, err := p.Build(context.Background(), "UC1"); err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if source.peak.Load() != 1 {
		t.Fatalf("expected sequential listings, peak=%d", source.peak.Load())
	}
}

func TestPipelineRunAbortsWithoutWriting(t *testing.T) {
	t.Parallel()

	source := newFakeSource()
	source.failOn = "A"
	writer := &fakeWriter{}
	history := &fakeHistory{}
	p := NewPipeline(PipelineDeps{Source: source, Ranks: fakeRanks{ranks: ranksOf("A", "B", "C")}, Writer: writer, History: history})

	err := p.Run(context.Background(), "UC1")
	var transportErr *domain.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if len(writer.snapshots) != 0 || len(history.records) != 0 {
		t.Fatal("nothing must be persisted after a failure")
	}
}

func TestPipelineRunRankErrorStopsBeforeFetching(t *testing.T) {
	t.Parallel()

	source := newFakeSource()
	boom := errors.New("mapping unreadable")
	p := NewPipeline(PipelineDeps{Source: source, Ranks: fakeRanks{err: boom}})

	if err := p.Run(context.Background(), "UC1"); !errors.Is(err, boom) {
		t.Fatalf("expected rank error, got %v", err)
	}
	if source.peak.Load() != 0 {
		t.Fatal("no playlist listing expected")
	}
}

func TestPipelineRunRecordsHistoryOnlyOnChange(t *testing.T) {
	t.Parallel()

	source := newFakeSource()
	writer := &fakeWriter{}
	history := &fakeHistory{}
	fixed := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	p := NewPipeline(PipelineDeps{
		Source:  source,
		Ranks:   fakeRanks{ranks: ranksOf("B", "C", "A")},
		Writer:  writer,
		History: history,
		Now:     func() time.Time { return fixed },
	})

	for range 2 {
		if err := p.Run(context.Background(), "UC1"); err != nil {
			t.Fatalf("Run error: %v", err)
		}
	}

	if len(writer.snapshots) != 2 {
		t.Fatalf("expected the artifact to be written twice, got %d", len(writer.snapshots))
	}
	if len(history.records) != 1 {
		t.Fatalf("identical runs must be recorded once, got %d", len(history.records))
	}
	if history.records[0].GeneratedAt != fixed || len(history.records[0].Checksum) != 64 {
		t.Fatalf("unexpected record: %+v", history.records[0])
	}

	source.latest = &domain.Video{ID: "newer"}
	if err := p.Run(context.Background(), "UC1"); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(history.records) != 2 {
		t.Fatalf("changed snapshot must be recorded, got %d records", len(history.records))
	}
}

func TestPipelineRequiresSource(t *testing.T) {
	t.Parallel()

	if _, err := NewPipeline(PipelineDeps{}).Build(context.Background(), "UC1"); err == nil {
		t.Fatal("expected error without source")
	}
}
