package youtube

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// maxBatchIDs is the videos endpoint's limit on ids per request.
const maxBatchIDs = 50

type videoMeta struct {
	Snippet ItemSnippet
	Stats   VideoStatistics
}

// fetchStats looks up snippet and statistics for ids. Ids the service does not
// know are simply absent from the result.
func (c *Client) fetchStats(ctx context.Context, ids []string) (map[string]videoMeta, error) {
	wanted := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			wanted = append(wanted, id)
		}
	}

	stats := make(map[string]videoMeta, len(wanted))
	for start := 0; start < len(wanted); start += maxBatchIDs {
		end := min(start+maxBatchIDs, len(wanted))

		params := url.Values{}
		params.Set("part", "snippet,statistics")
		params.Set("id", strings.Join(wanted[start:end], ","))
		params.Set("maxResults", strconv.Itoa(maxBatchIDs))

		var resp Page[VideoResource]
		if err := c.request(ctx, "videos", params, &resp); err != nil {
			return nil, fmt.Errorf("video stats: %w", err)
		}
		for _, v := range resp.Items {
			stats[v.ID] = videoMeta{Snippet: v.Snippet, Stats: v.Statistics}
		}
	}

	c.debug("video stats fetched", "requested", len(wanted), "found", len(stats))
	return stats, nil
}
