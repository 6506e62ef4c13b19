package youtube

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"ChannelSnapshot/internal/domain"
)

// VideoListOptions configures a detailed playlist listing.
type VideoListOptions struct {
	MaxResults int
	// OnPage observes every raw page after its videos are joined.
	OnPage func(Page[PlaylistItem])
}

// ListPlaylistVideosDetailed returns every video of a playlist in listing
// order, each enriched with its statistics.
func (c *Client) ListPlaylistVideosDetailed(ctx context.Context, playlistID string, opts VideoListOptions) ([]domain.Video, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = c.pageSize
	}

	fetch := func(ctx context.Context, pageToken string) (Page[PlaylistItem], error) {
		params := url.Values{}
		params.Set("part", "snippet,contentDetails")
		params.Set("playlistId", playlistID)
		params.Set("maxResults", strconv.Itoa(maxResults))
		params.Set("pageToken", pageToken)

		var page Page[PlaylistItem]
		if err := c.request(ctx, "playlistItems", params, &page); err != nil {
			return Page[PlaylistItem]{}, fmt.Errorf("playlist items %s: %w", playlistID, err)
		}
		return page, nil
	}

	videos := make([]domain.Video, 0)
	pages := 0
	for page, err := range Pages(ctx, fetch, c.maxPages) {
		if err != nil {
			return nil, err
		}
		pages++

		ids := make([]string, len(page.Items))
		for i, item := range page.Items {
			ids[i] = item.ContentDetails.VideoID
		}

		stats, err := c.fetchStats(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("playlist %s: %w", playlistID, err)
		}

		for _, item := range page.Items {
			videos = append(videos, joinVideo(item, stats))
		}

		if opts.OnPage != nil {
			opts.OnPage(page)
		}
	}

	c.debug("playlist videos listed", "playlist", playlistID, "pages", pages, "videos", len(videos))
	return videos, nil
}

// details is the resolved source of a video's fields: either the statistics
// lookup (enriched) or the playlist item alone (fallback, zero counters).
type details struct {
	origin  domain.Origin
	snippet ItemSnippet
	stats   VideoStatistics
}

func enrichedDetails(meta videoMeta) details {
	return details{origin: domain.OriginEnriched, snippet: meta.Snippet, stats: meta.Stats}
}

func fallbackDetails(item PlaylistItem) details {
	return details{origin: domain.OriginFallback, snippet: item.Snippet}
}

func resolveDetails(item PlaylistItem, stats map[string]videoMeta) details {
	if meta, ok := stats[item.ContentDetails.VideoID]; ok {
		return enrichedDetails(meta)
	}
	return fallbackDetails(item)
}

// joinVideo merges one playlist item with its statistics entry, if any.
func joinVideo(item PlaylistItem, stats map[string]videoMeta) domain.Video {
	d := resolveDetails(item, stats)

	publishedAt := d.snippet.PublishedAt
	if publishedAt == "" {
		publishedAt = item.ContentDetails.VideoPublishedAt
	}

	return newVideo(item.ContentDetails.VideoID, d, publishedAt)
}

func newVideo(id string, d details, publishedAt string) domain.Video {
	return domain.Video{
		ID:           id,
		URL:          domain.VideoURL(id),
		Title:        d.snippet.Title,
		Description:  d.snippet.Description,
		ViewCount:    int64(d.stats.ViewCount),
		LikeCount:    int64(d.stats.LikeCount),
		CommentCount: int64(d.stats.CommentCount),
		PublishedAt:  publishedAt,
		Origin:       d.origin,
	}
}
