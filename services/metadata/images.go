package metadata

import "strings"

const (
	tmdbImageBaseURL = "https://image.tmdb.org/t/p"
	placeholderImage = "/placeholder-image.jpg"
)

// ImageKind selects a TMDB image size table.
type ImageKind string

const (
	ImagePoster   ImageKind = "poster"
	ImageBackdrop ImageKind = "backdrop"
	ImageProfile  ImageKind = "profile"
)

var imageSizes = map[ImageKind]map[string]string{
	ImagePoster: {
		"small":    "w185",
		"medium":   "w342",
		"large":    "w500",
		"original": "original",
	},
	ImageBackdrop: {
		"small":    "w300",
		"medium":   "w780",
		"large":    "w1280",
		"original": "original",
	},
	ImageProfile: {
		"small":    "w45",
		"medium":   "w185",
		"large":    "h632",
		"original": "original",
	},
}

// ParseImageKind maps a query value onto an ImageKind.
func ParseImageKind(value string) (ImageKind, bool) {
	kind := ImageKind(strings.ToLower(strings.TrimSpace(value)))
	_, ok := imageSizes[kind]
	return kind, ok
}

// ImageURL builds the CDN URL for a TMDB image path. Empty paths yield the
// placeholder; unknown sizes fall back to medium.
func ImageURL(path string, kind ImageKind, size string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return placeholderImage
	}
	sizes, ok := imageSizes[kind]
	if !ok {
		sizes = imageSizes[ImagePoster]
	}
	dim, ok := sizes[strings.ToLower(strings.TrimSpace(size))]
	if !ok {
		dim = sizes["medium"]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return tmdbImageBaseURL + "/" + dim + path
}
