package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinelist/models"
)

func video(key, typ, lang string, official bool) models.Video {
	return models.Video{ID: key, Key: key, Site: "YouTube", Type: typ, Language: lang, Official: official}
}

func TestSelectBestTrailer(t *testing.T) {
	tests := []struct {
		name       string
		candidates []models.Video
		preferred  []string
		fallback   bool
		wantKey    string
	}{
		{
			name: "preferred language wins over list order",
			candidates: []models.Video{
				video("tr1", "Trailer", "tr", true),
				video("en1", "Trailer", "en", true),
			},
			preferred: []string{"en", "tr"},
			wantKey:   "en1",
		},
		{
			name: "preferred languages tried in priority order",
			candidates: []models.Video{
				video("en1", "Trailer", "en", true),
				video("tr1", "Trailer", "tr", true),
			},
			preferred: []string{"tr", "en"},
			wantKey:   "tr1",
		},
		{
			name: "region tags match the language base",
			candidates: []models.Video{
				video("de1", "Trailer", "de", true),
				video("tr1", "Trailer", "tr", true),
			},
			preferred: []string{"tr-TR"},
			wantKey:   "tr1",
		},
		{
			name: "any official trailer when no language matches",
			candidates: []models.Video{
				video("fr-unofficial", "Trailer", "fr", false),
				video("de1", "Trailer", "de", true),
			},
			preferred: []string{"tr", "en"},
			wantKey:   "de1",
		},
		{
			name: "unofficial trailer before other types",
			candidates: []models.Video{
				video("teaser", "Teaser", "en", true),
				video("fan", "Trailer", "en", false),
			},
			preferred: []string{"en"},
			wantKey:   "fan",
		},
		{
			name:       "teaser only with fallback",
			candidates: []models.Video{video("teaser", "Teaser", "en", true)},
			preferred:  []string{"en"},
			fallback:   true,
			wantKey:    "teaser",
		},
		{
			name:       "teaser only without fallback",
			candidates: []models.Video{video("teaser", "Teaser", "en", true)},
			preferred:  []string{"en"},
		},
		{
			name:      "empty list",
			preferred: []string{"en"},
			fallback:  true,
		},
		{
			name:       "type match is exact",
			candidates: []models.Video{video("lower", "trailer", "en", true)},
			preferred:  []string{"en"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SelectBestTrailer(tc.candidates, tc.preferred, tc.fallback)
			if tc.wantKey == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.wantKey, got.Key)
		})
	}
}

func TestSelectBestTrailerReturnsElementOfInput(t *testing.T) {
	candidates := []models.Video{video("a", "Clip", "en", false), video("b", "Trailer", "en", true)}
	got := SelectBestTrailer(candidates, nil, false)
	require.NotNil(t, got)
	assert.Same(t, &candidates[1], got)
}

func TestOfficialTrailers(t *testing.T) {
	in := []models.Video{
		video("a", "Trailer", "en", true),
		video("b", "Teaser", "en", true),
		video("c", "Trailer", "en", false),
		video("d", "Trailer", "tr", true),
	}
	got := officialTrailers(in)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Key)
	assert.Equal(t, "d", got[1].Key)
}
