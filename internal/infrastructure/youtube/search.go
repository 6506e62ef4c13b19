package youtube

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"ChannelSnapshot/internal/domain"
)

// SearchOptions mirrors the search endpoint's query parameters.
type SearchOptions struct {
	Query      string
	Order      string
	MaxResults int
	PageToken  string
	Part       string
	Type       string
}

// SearchVideos runs one search request restricted to a channel.
func (c *Client) SearchVideos(ctx context.Context, channelID string, opts SearchOptions) (Page[SearchResult], error) {
	params := url.Values{}
	params.Set("part", valueOr(opts.Part, "snippet"))
	params.Set("channelId", channelID)
	params.Set("type", valueOr(opts.Type, "video"))
	params.Set("order", valueOr(opts.Order, "date"))
	params.Set("q", opts.Query)

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = c.pageSize
	}
	params.Set("maxResults", strconv.Itoa(maxResults))
	if opts.PageToken != "" {
		params.Set("pageToken", opts.PageToken)
	}

	var page Page[SearchResult]
	if err := c.request(ctx, "search", params, &page); err != nil {
		return Page[SearchResult]{}, fmt.Errorf("search videos of %s: %w", channelID, err)
	}
	return page, nil
}

// GetLatestVideo returns the channel's most recent video, or nil when the
// search or the statistics lookup finds nothing.
func (c *Client) GetLatestVideo(ctx context.Context, channelID string) (*domain.Video, error) {
	page, err := c.SearchVideos(ctx, channelID, SearchOptions{Order: "date", MaxResults: 1})
	if err != nil {
		return nil, err
	}
	if len(page.Items) == 0 || page.Items[0].ID.VideoID == "" {
		c.debug("no latest video", "channel", channelID)
		return nil, nil
	}

	videoID := page.Items[0].ID.VideoID
	stats, err := c.fetchStats(ctx, []string{videoID})
	if err != nil {
		return nil, fmt.Errorf("latest video %s: %w", videoID, err)
	}

	meta, ok := stats[videoID]
	if !ok {
		return nil, nil
	}

	video := newVideo(videoID, enrichedDetails(meta), meta.Snippet.PublishedAt)
	return &video, nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
