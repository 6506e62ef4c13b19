package youtube

import (
	"context"

	"ChannelSnapshot/internal/domain"
	"ChannelSnapshot/internal/ports"
)

var _ ports.ChannelSource = (*Client)(nil)

// Playlists lists the channel's playlists, following every page when all is set.
func (c *Client) Playlists(ctx context.Context, channelID string, all bool) ([]domain.Playlist, error) {
	if all {
		return c.ListAllPlaylists(ctx, channelID, PlaylistOptions{})
	}
	return c.ListPlaylistsBasic(ctx, channelID, PlaylistOptions{})
}

// PlaylistVideos lists a playlist's enriched videos.
func (c *Client) PlaylistVideos(ctx context.Context, playlistID string) ([]domain.Video, error) {
	return c.ListPlaylistVideosDetailed(ctx, playlistID, VideoListOptions{})
}

// LatestVideo returns the channel's most recent video or nil.
func (c *Client) LatestVideo(ctx context.Context, channelID string) (*domain.Video, error) {
	return c.GetLatestVideo(ctx, channelID)
}
