package youtube

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"ChannelSnapshot/internal/domain"
)

// ItemSnippet is the descriptive block shared by playlist items, videos and search hits.
type ItemSnippet struct {
	PublishedAt string `json:"publishedAt"`
	ChannelID   string `json:"channelId,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ItemContentDetails points a playlist item at its video.
type ItemContentDetails struct {
	VideoID          string `json:"videoId"`
	VideoPublishedAt string `json:"videoPublishedAt"`
}

// PlaylistItem is one raw entry of the playlistItems listing.
type PlaylistItem struct {
	ID             string             `json:"id"`
	Snippet        ItemSnippet        `json:"snippet"`
	ContentDetails ItemContentDetails `json:"contentDetails"`
}

// VideoStatistics holds the counters returned by the videos endpoint.
type VideoStatistics struct {
	ViewCount    count `json:"viewCount"`
	LikeCount    count `json:"likeCount"`
	CommentCount count `json:"commentCount"`
}

// VideoResource is one entry of the videos batch lookup.
type VideoResource struct {
	ID         string          `json:"id"`
	Snippet    ItemSnippet     `json:"snippet"`
	Statistics VideoStatistics `json:"statistics"`
}

// PlaylistResource is one raw entry of the playlists listing.
type PlaylistResource struct {
	Kind           string                        `json:"kind"`
	ETag           string                        `json:"etag"`
	ID             string                        `json:"id"`
	Snippet        domain.PlaylistSnippet        `json:"snippet"`
	ContentDetails domain.PlaylistContentDetails `json:"contentDetails"`
	Status         json.RawMessage               `json:"status,omitempty"`
	Player         json.RawMessage               `json:"player,omitempty"`
	Localizations  json.RawMessage               `json:"localizations,omitempty"`
}

// SearchResult is one hit of the search endpoint.
type SearchResult struct {
	ID struct {
		Kind    string `json:"kind"`
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet ItemSnippet `json:"snippet"`
}

type channelResource struct {
	ID             string `json:"id"`
	ContentDetails struct {
		RelatedPlaylists struct {
			Uploads string `json:"uploads"`
		} `json:"relatedPlaylists"`
	} `json:"contentDetails"`
}

// count decodes API counters leniently: the API sends them as strings, and
// anything absent, null, malformed or negative becomes zero.
type count int64

func (c *count) UnmarshalJSON(data []byte) error {
	*c = parseCount(string(data))
	return nil
}

func parseCount(raw string) count {
	value := strings.TrimSpace(raw)
	value = strings.TrimSpace(strings.Trim(value, `"`))
	if value == "" || value == "null" {
		return 0
	}

	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		if n < 0 {
			return 0
		}
		return count(n)
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= math.MaxInt64 {
		return count(math.MaxInt64)
	}
	return count(f)
}
