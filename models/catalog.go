package models

// Page is the paged list envelope TMDB returns for every list endpoint.
type Page[T any] struct {
	Page         int `json:"page"`
	Results      []T `json:"results"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

// Genre is a TMDB genre id/name pair.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GenreList is the response of /genre/{type}/list.
type GenreList struct {
	Genres []Genre `json:"genres"`
}

// Movie is a movie list entry.
type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path,omitempty"`
	BackdropPath     string  `json:"backdrop_path,omitempty"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	Adult            bool    `json:"adult"`
	GenreIDs         []int64 `json:"genre_ids,omitempty"`
	OriginalLanguage string  `json:"original_language"`
	Video            bool    `json:"video"`
}

// TVShow is a TV list entry.
type TVShow struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	OriginalName     string  `json:"original_name"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path,omitempty"`
	BackdropPath     string  `json:"backdrop_path,omitempty"`
	FirstAirDate     string  `json:"first_air_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	Adult            bool    `json:"adult"`
	GenreIDs         []int64 `json:"genre_ids,omitempty"`
	OriginalLanguage string  `json:"original_language"`
}

// MediaItem is an entry of a mixed list (trending/all, search/multi). Movies
// fill Title/ReleaseDate, shows fill Name/FirstAirDate, people fill
// ProfilePath/KnownForDepartment.
type MediaItem struct {
	ID                 int64       `json:"id"`
	MediaType          string      `json:"media_type,omitempty"`
	Title              string      `json:"title,omitempty"`
	Name               string      `json:"name,omitempty"`
	Overview           string      `json:"overview,omitempty"`
	PosterPath         string      `json:"poster_path,omitempty"`
	BackdropPath       string      `json:"backdrop_path,omitempty"`
	ProfilePath        string      `json:"profile_path,omitempty"`
	ReleaseDate        string      `json:"release_date,omitempty"`
	FirstAirDate       string      `json:"first_air_date,omitempty"`
	VoteAverage        float64     `json:"vote_average,omitempty"`
	VoteCount          int         `json:"vote_count,omitempty"`
	Popularity         float64     `json:"popularity,omitempty"`
	Adult              bool        `json:"adult"`
	GenreIDs           []int64     `json:"genre_ids,omitempty"`
	OriginalLanguage   string      `json:"original_language,omitempty"`
	KnownForDepartment string      `json:"known_for_department,omitempty"`
	KnownFor           []MediaItem `json:"known_for,omitempty"`
}

// DisplayTitle returns the movie title or show/person name.
func (m MediaItem) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	return m.Name
}

// Person is a people list entry.
type Person struct {
	ID                 int64       `json:"id"`
	Name               string      `json:"name"`
	ProfilePath        string      `json:"profile_path,omitempty"`
	Adult              bool        `json:"adult"`
	KnownForDepartment string      `json:"known_for_department"`
	Popularity         float64     `json:"popularity"`
	KnownFor           []MediaItem `json:"known_for,omitempty"`
}

// ProductionCompany appears on movie and show details.
type ProductionCompany struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	LogoPath      string `json:"logo_path,omitempty"`
	OriginCountry string `json:"origin_country,omitempty"`
}

// SpokenLanguage appears on movie and show details.
type SpokenLanguage struct {
	ISO6391     string `json:"iso_639_1"`
	Name        string `json:"name"`
	EnglishName string `json:"english_name,omitempty"`
}

// MovieDetails is the response of /movie/{id}.
type MovieDetails struct {
	Movie
	Budget              int64               `json:"budget"`
	Revenue             int64               `json:"revenue"`
	Runtime             int                 `json:"runtime"`
	Status              string              `json:"status"`
	Tagline             string              `json:"tagline"`
	Homepage            string              `json:"homepage,omitempty"`
	IMDBID              string              `json:"imdb_id,omitempty"`
	Genres              []Genre             `json:"genres"`
	ProductionCompanies []ProductionCompany `json:"production_companies,omitempty"`
	SpokenLanguages     []SpokenLanguage    `json:"spoken_languages,omitempty"`
	Videos              *VideoList          `json:"videos,omitempty"`
}

// Season is a season summary on show details.
type Season struct {
	ID           int64   `json:"id"`
	AirDate      string  `json:"air_date"`
	EpisodeCount int     `json:"episode_count"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path,omitempty"`
	SeasonNumber int     `json:"season_number"`
	VoteAverage  float64 `json:"vote_average"`
}

// Network is a broadcaster on show details.
type Network struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	LogoPath      string `json:"logo_path,omitempty"`
	OriginCountry string `json:"origin_country,omitempty"`
}

// TVDetails is the response of /tv/{id}.
type TVDetails struct {
	TVShow
	EpisodeRunTime      []int               `json:"episode_run_time,omitempty"`
	Genres              []Genre             `json:"genres"`
	Homepage            string              `json:"homepage,omitempty"`
	InProduction        bool                `json:"in_production"`
	Languages           []string            `json:"languages,omitempty"`
	LastAirDate         string              `json:"last_air_date,omitempty"`
	Networks            []Network           `json:"networks,omitempty"`
	NumberOfEpisodes    int                 `json:"number_of_episodes"`
	NumberOfSeasons     int                 `json:"number_of_seasons"`
	OriginCountry       []string            `json:"origin_country,omitempty"`
	ProductionCompanies []ProductionCompany `json:"production_companies,omitempty"`
	Seasons             []Season            `json:"seasons,omitempty"`
	Status              string              `json:"status"`
	Tagline             string              `json:"tagline"`
	Type                string              `json:"type"`
}

// Episode is an entry of a season's episode list.
type Episode struct {
	ID             int64   `json:"id"`
	AirDate        string  `json:"air_date"`
	EpisodeNumber  int     `json:"episode_number"`
	Name           string  `json:"name"`
	Overview       string  `json:"overview"`
	ProductionCode string  `json:"production_code,omitempty"`
	Runtime        int     `json:"runtime"`
	SeasonNumber   int     `json:"season_number"`
	ShowID         int64   `json:"show_id"`
	StillPath      string  `json:"still_path,omitempty"`
	VoteAverage    float64 `json:"vote_average"`
	VoteCount      int     `json:"vote_count"`
}

// SeasonDetails is the response of /tv/{id}/season/{n}.
type SeasonDetails struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Overview     string    `json:"overview"`
	SeasonNumber int       `json:"season_number"`
	AirDate      string    `json:"air_date"`
	PosterPath   string    `json:"poster_path,omitempty"`
	Episodes     []Episode `json:"episodes"`
}

// CastMember is a cast credit.
type CastMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path,omitempty"`
	Order       int    `json:"order"`
}

// CrewMember is a crew credit.
type CrewMember struct {
	ID          int64   `json:"id"`
	CreditID    string  `json:"credit_id"`
	Name        string  `json:"name"`
	Job         string  `json:"job"`
	Department  string  `json:"department"`
	ProfilePath string  `json:"profile_path,omitempty"`
	Gender      int     `json:"gender,omitempty"`
	Popularity  float64 `json:"popularity,omitempty"`
}

// Credits is the response of /{type}/{id}/credits.
type Credits struct {
	ID   int64        `json:"id"`
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// PersonCredits is the response of /person/{id}/{movie|tv|combined}_credits.
type PersonCredits struct {
	Cast []MediaItem `json:"cast"`
	Crew []MediaItem `json:"crew"`
}

// ProfileImage is a person image.
type ProfileImage struct {
	FilePath    string  `json:"file_path"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`
}

// PersonDetails is the response of /person/{id} with images and
// combined_credits appended.
type PersonDetails struct {
	ID                 int64          `json:"id"`
	Name               string         `json:"name"`
	Biography          string         `json:"biography"`
	Birthday           string         `json:"birthday,omitempty"`
	Deathday           string         `json:"deathday,omitempty"`
	PlaceOfBirth       string         `json:"place_of_birth,omitempty"`
	ProfilePath        string         `json:"profile_path,omitempty"`
	KnownForDepartment string         `json:"known_for_department"`
	Popularity         float64        `json:"popularity"`
	IMDBID             string         `json:"imdb_id,omitempty"`
	AlsoKnownAs        []string       `json:"also_known_as,omitempty"`
	Images             *PersonImages  `json:"images,omitempty"`
	CombinedCredits    *PersonCredits `json:"combined_credits,omitempty"`
}

// PersonImages wraps a person's profile images.
type PersonImages struct {
	Profiles []ProfileImage `json:"profiles"`
}

// DiscoverQuery carries /discover filters. Zero values are omitted.
type DiscoverQuery struct {
	Page                 int     `json:"page,omitempty"`
	Genre                int64   `json:"genre,omitempty"`
	Year                 int     `json:"year,omitempty"`
	FirstAirDateYear     int     `json:"first_air_date_year,omitempty"`
	SortBy               string  `json:"sort_by,omitempty"`
	VoteAverageGTE       float64 `json:"vote_average_gte,omitempty"`
	VoteAverageLTE       float64 `json:"vote_average_lte,omitempty"`
	RuntimeGTE           int     `json:"with_runtime_gte,omitempty"`
	RuntimeLTE           int     `json:"with_runtime_lte,omitempty"`
	WithOriginalLanguage string  `json:"with_original_language,omitempty"`
}

// HomeBundle is the combined home-page payload.
type HomeBundle struct {
	Trending       []MediaItem       `json:"trending"`
	PopularMovies  []Movie           `json:"popularMovies"`
	PopularTV      []TVShow          `json:"popularTv"`
	TopRatedMovies []Movie           `json:"topRatedMovies"`
	Errors         map[string]string `json:"errors,omitempty"`
}

// Image is one entry of a title's image gallery.
type Image struct {
	FilePath    string  `json:"file_path"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`
	Language    string  `json:"iso_639_1,omitempty"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
}

// ImageSet is the response of /{type}/{id}/images.
type ImageSet struct {
	ID        int64   `json:"id"`
	Backdrops []Image `json:"backdrops"`
	Posters   []Image `json:"posters"`
	Logos     []Image `json:"logos"`
}

// WatchProvider is a streaming, rental or purchase service.
type WatchProvider struct {
	ProviderID      int64  `json:"provider_id"`
	ProviderName    string `json:"provider_name"`
	LogoPath        string `json:"logo_path,omitempty"`
	DisplayPriority int    `json:"display_priority"`
}

// RegionProviders groups providers for one country.
type RegionProviders struct {
	Link     string          `json:"link,omitempty"`
	Flatrate []WatchProvider `json:"flatrate,omitempty"`
	Free     []WatchProvider `json:"free,omitempty"`
	Ads      []WatchProvider `json:"ads,omitempty"`
	Rent     []WatchProvider `json:"rent,omitempty"`
	Buy      []WatchProvider `json:"buy,omitempty"`
}

// WatchProviders is where a title can be watched in one region. Available is
// false when TMDB lists nothing for the region.
type WatchProviders struct {
	ID        int64  `json:"id"`
	Region    string `json:"region"`
	Available bool   `json:"available"`
	RegionProviders
}
