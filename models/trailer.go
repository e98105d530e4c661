package models

import (
	"fmt"
	"strings"
)

// Video is a TMDB video record (trailer, teaser, clip, featurette...).
type Video struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Site        string `json:"site"`
	Type        string `json:"type"`
	Official    bool   `json:"official"`
	PublishedAt string `json:"published_at,omitempty"`
	Language    string `json:"iso_639_1"`
	Region      string `json:"iso_3166_1,omitempty"`
	Size        int    `json:"size,omitempty"`
}

// WatchURL returns the public page for the video, or "" for unknown hosts.
func (v Video) WatchURL() string {
	if v.Key == "" {
		return ""
	}
	switch strings.ToLower(v.Site) {
	case "youtube":
		return fmt.Sprintf("https://www.youtube.com/watch?v=%s", v.Key)
	case "vimeo":
		return fmt.Sprintf("https://vimeo.com/%s", v.Key)
	}
	return ""
}

// EmbedURL returns the embeddable player URL, or "" for unknown hosts.
func (v Video) EmbedURL() string {
	if v.Key == "" {
		return ""
	}
	switch strings.ToLower(v.Site) {
	case "youtube":
		return fmt.Sprintf("https://www.youtube.com/embed/%s", v.Key)
	case "vimeo":
		return fmt.Sprintf("https://player.vimeo.com/video/%s", v.Key)
	}
	return ""
}

// VideoList is the response of /{type}/{id}/videos.
type VideoList struct {
	ID      int64   `json:"id"`
	Results []Video `json:"results"`
}

// TrailerResponse is what the trailer endpoint returns. Trailer is nil when
// nothing playable was found; that is a normal outcome, not an error.
type TrailerResponse struct {
	MediaType string `json:"mediaType"`
	ID        int64  `json:"id"`
	Available bool   `json:"available"`
	Trailer   *Video `json:"trailer,omitempty"`
	WatchURL  string `json:"watchUrl,omitempty"`
	EmbedURL  string `json:"embedUrl,omitempty"`
}
