package youtube

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"ChannelSnapshot/internal/domain"
)

// PlaylistOptions mirrors the playlists endpoint's query parameters.
type PlaylistOptions struct {
	Part       string
	MaxResults int
	PageToken  string
}

// ListPlaylists fetches a single raw page of a channel's playlists.
func (c *Client) ListPlaylists(ctx context.Context, channelID string, opts PlaylistOptions) (Page[PlaylistResource], error) {
	part := opts.Part
	if part == "" {
		part = "snippet,contentDetails"
	}
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = c.pageSize
	}

	params := url.Values{}
	params.Set("part", part)
	params.Set("channelId", channelID)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("pageToken", opts.PageToken)

	var page Page[PlaylistResource]
	if err := c.request(ctx, "playlists", params, &page); err != nil {
		return Page[PlaylistResource]{}, fmt.Errorf("list playlists of %s: %w", channelID, err)
	}
	return page, nil
}

// ListPlaylistsBasic projects the first page of a channel's playlists.
// It does not follow continuation tokens; pass opts.PageToken for later pages.
func (c *Client) ListPlaylistsBasic(ctx context.Context, channelID string, opts PlaylistOptions) ([]domain.Playlist, error) {
	page, err := c.ListPlaylists(ctx, channelID, opts)
	if err != nil {
		return nil, err
	}

	playlists := make([]domain.Playlist, 0, len(page.Items))
	for _, res := range page.Items {
		playlists = append(playlists, toPlaylist(res))
	}
	return playlists, nil
}

// ListAllPlaylists projects every page of a channel's playlists.
func (c *Client) ListAllPlaylists(ctx context.Context, channelID string, opts PlaylistOptions) ([]domain.Playlist, error) {
	fetch := func(ctx context.Context, pageToken string) (Page[PlaylistResource], error) {
		pageOpts := opts
		pageOpts.PageToken = pageToken
		return c.ListPlaylists(ctx, channelID, pageOpts)
	}

	resources, err := CollectAll(ctx, fetch, c.maxPages, nil)
	if err != nil {
		return nil, err
	}

	playlists := make([]domain.Playlist, 0, len(resources))
	for _, res := range resources {
		playlists = append(playlists, toPlaylist(res))
	}
	c.debug("playlists listed", "channel", channelID, "count", len(playlists))
	return playlists, nil
}

func toPlaylist(res PlaylistResource) domain.Playlist {
	return domain.Playlist{
		ID:             res.ID,
		URL:            domain.PlaylistURL(res.ID),
		Title:          res.Snippet.Title,
		Description:    res.Snippet.Description,
		ItemCount:      res.ContentDetails.ItemCount,
		Kind:           res.Kind,
		ETag:           res.ETag,
		Snippet:        res.Snippet,
		ContentDetails: res.ContentDetails,
		Status:         res.Status,
		Player:         res.Player,
		Localizations:  res.Localizations,
	}
}
