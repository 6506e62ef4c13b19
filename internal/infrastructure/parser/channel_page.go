package parser

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ChannelSnapshot/internal/domain"
	"ChannelSnapshot/internal/ports"
)

const youtubeBaseURL = "https://www.youtube.com"

var (
	channelIDExpr   = regexp.MustCompile(`^UC[0-9A-Za-z_-]{22}$`)
	channelPathExpr = regexp.MustCompile(`/channel/(UC[0-9A-Za-z_-]{22})`)
)

// ChannelPageResolver finds a channel id by reading the public channel page
// of a handle (@name) or channel URL.
type ChannelPageResolver struct {
	client  *http.Client
	baseURL string
}

var _ ports.ChannelResolver = (*ChannelPageResolver)(nil)

// NewChannelPageResolver wires an HTTP client; a nil client gets a 20s timeout.
func NewChannelPageResolver(client *http.Client) *ChannelPageResolver {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &ChannelPageResolver{client: client, baseURL: youtubeBaseURL}
}

// ResolveChannelID returns ref unchanged when it already is a channel id.
func (r *ChannelPageResolver) ResolveChannelID(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", &domain.ConfigurationError{Field: "youtube.channelId", Reason: "channel reference is empty"}
	}
	if IsChannelID(ref) {
		return ref, nil
	}
	if m := channelPathExpr.FindStringSubmatch(ref); m != nil {
		return m[1], nil
	}

	pageURL, err := r.pageURL(ref)
	if err != nil {
		return "", err
	}

	doc, err := r.fetchDocument(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("channel %s: %w", ref, err)
	}

	id := parseChannelID(doc)
	if id == "" {
		return "", &domain.NotFoundError{Resource: "channel id", ID: ref}
	}
	return id, nil
}

// IsChannelID reports whether value has the shape of a channel id.
func IsChannelID(value string) bool {
	return channelIDExpr.MatchString(value)
}

func (r *ChannelPageResolver) pageURL(ref string) (string, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		if _, err := url.Parse(ref); err != nil {
			return "", fmt.Errorf("invalid channel url %s: %w", ref, err)
		}
		return ref, nil
	}

	handle := strings.TrimPrefix(ref, "@")
	return strings.TrimSuffix(r.baseURL, "/") + "/@" + url.PathEscape(handle), nil
}

func (r *ChannelPageResolver) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "ChannelSnapshot/1.0")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request channel page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &domain.NotFoundError{Resource: "channel page", ID: pageURL}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("channel page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse channel page: %w", err)
	}
	return doc, nil
}

func parseChannelID(doc *goquery.Document) string {
	for _, selector := range []string{`meta[itemprop="identifier"]`, `meta[itemprop="channelId"]`} {
		if content, ok := doc.Find(selector).First().Attr("content"); ok && IsChannelID(strings.TrimSpace(content)) {
			return strings.TrimSpace(content)
		}
	}

	links := []struct{ selector, attr string }{
		{`link[rel="canonical"]`, "href"},
		{`meta[property="og:url"]`, "content"},
	}
	for _, link := range links {
		href, _ := doc.Find(link.selector).First().Attr(link.attr)
		if m := channelPathExpr.FindStringSubmatch(href); m != nil {
			return m[1]
		}
	}
	return ""
}
