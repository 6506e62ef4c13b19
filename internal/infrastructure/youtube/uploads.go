package youtube

import (
	"context"
	"fmt"
	"net/url"

	"ChannelSnapshot/internal/domain"
)

// ListAllUploadedVideos lists every video of the channel's implicit uploads playlist.
func (c *Client) ListAllUploadedVideos(ctx context.Context, channelID string, opts VideoListOptions) ([]domain.Video, error) {
	uploadsID, err := c.uploadsPlaylistID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	return c.ListPlaylistVideosDetailed(ctx, uploadsID, opts)
}

func (c *Client) uploadsPlaylistID(ctx context.Context, channelID string) (string, error) {
	params := url.Values{}
	params.Set("part", "contentDetails")
	params.Set("id", channelID)

	var resp Page[channelResource]
	if err := c.request(ctx, "channels", params, &resp); err != nil {
		return "", fmt.Errorf("lookup channel %s: %w", channelID, err)
	}

	if len(resp.Items) == 0 || resp.Items[0].ContentDetails.RelatedPlaylists.Uploads == "" {
		return "", &domain.NotFoundError{Resource: "uploads playlist", ID: channelID}
	}
	return resp.Items[0].ContentDetails.RelatedPlaylists.Uploads, nil
}
