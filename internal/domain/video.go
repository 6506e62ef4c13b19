package domain

const (
	videoBaseURL    = "https://www.youtube.com/watch?v="
	playlistBaseURL = "https://www.youtube.com/playlist?list="
)

// VideoURL builds the public watch URL of a video.
func VideoURL(id string) string {
	return videoBaseURL + id
}

// PlaylistURL builds the public URL of a playlist.
func PlaylistURL(id string) string {
	return playlistBaseURL + id
}

// Origin tells which source a video's descriptive fields and counters came from.
type Origin string

const (
	// OriginEnriched means the statistics lookup returned an entry for the video.
	OriginEnriched Origin = "enriched"
	// OriginFallback means only the playlist item was available; counters are zero.
	OriginFallback Origin = "fallback"
)

// Video is a normalized video record, immutable once built. PublishedAt is
// the timestamp exactly as the API reported it.
type Video struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ViewCount    int64  `json:"viewCount"`
	LikeCount    int64  `json:"likeCount"`
	CommentCount int64  `json:"commentCount"`
	PublishedAt  string `json:"publishedAt"`
	Origin       Origin `json:"-"`
}
