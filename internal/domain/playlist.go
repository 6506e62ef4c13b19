package domain

import "encoding/json"

// Thumbnail is one rendition of a playlist or video preview image.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// PlaylistSnippet mirrors the descriptive block returned by the listing endpoint.
type PlaylistSnippet struct {
	PublishedAt     string               `json:"publishedAt,omitempty"`
	ChannelID       string               `json:"channelId,omitempty"`
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	Thumbnails      map[string]Thumbnail `json:"thumbnails,omitempty"`
	ChannelTitle    string               `json:"channelTitle,omitempty"`
	DefaultLanguage string               `json:"defaultLanguage,omitempty"`
	Localized       *Localization        `json:"localized,omitempty"`
}

// Localization is a title and description in one language.
type Localization struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PlaylistContentDetails carries the item count reported by the API.
type PlaylistContentDetails struct {
	ItemCount int `json:"itemCount"`
}

// Playlist is one channel playlist. Videos is attached once by the pipeline.
// Status, Player and Localizations hold those parts verbatim when requested.
type Playlist struct {
	ID             string                 `json:"id"`
	URL            string                 `json:"url"`
	Title          string                 `json:"title"`
	Description    string                 `json:"description"`
	ItemCount      int                    `json:"itemCount"`
	Kind           string                 `json:"kind,omitempty"`
	ETag           string                 `json:"etag,omitempty"`
	Snippet        PlaylistSnippet        `json:"snippet"`
	ContentDetails PlaylistContentDetails `json:"contentDetails"`
	Status         json.RawMessage        `json:"status,omitempty"`
	Player         json.RawMessage        `json:"player,omitempty"`
	Localizations  json.RawMessage        `json:"localizations,omitempty"`
	Videos         []Video                `json:"videos"`
}
