package metadata

import (
	"cinelist/models"
)

const videoTypeTrailer = "Trailer"

// SelectBestTrailer picks the trailer to present from candidates.
//
// Tiers are tried in order and, within a tier, candidates in list order:
//  1. official trailer in each preferred language, in priority order
//  2. any official trailer
//  3. any trailer
//  4. the first candidate, only when fallbackToAny is set
//
// A nil result means no trailer is available.
func SelectBestTrailer(candidates []models.Video, preferred []string, fallbackToAny bool) *models.Video {
	if len(candidates) == 0 {
		return nil
	}

	for _, lang := range preferred {
		want := languageBase(lang)
		if want == "" {
			continue
		}
		for i := range candidates {
			v := &candidates[i]
			if v.Type == videoTypeTrailer && v.Official && v.Language == want {
				return v
			}
		}
	}

	for i := range candidates {
		if candidates[i].Type == videoTypeTrailer && candidates[i].Official {
			return &candidates[i]
		}
	}

	for i := range candidates {
		if candidates[i].Type == videoTypeTrailer {
			return &candidates[i]
		}
	}

	if fallbackToAny {
		return &candidates[0]
	}
	return nil
}

// officialTrailers keeps only official trailers, preserving order.
func officialTrailers(videos []models.Video) []models.Video {
	out := make([]models.Video, 0, len(videos))
	for _, v := range videos {
		if v.Type == videoTypeTrailer && v.Official {
			out = append(out, v)
		}
	}
	return out
}
