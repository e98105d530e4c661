package metadata

import (
	"strings"

	"golang.org/x/text/language"
)

const (
	defaultLanguage  = "tr-TR"
	fallbackLanguage = "en-US"
)

// normalizeLanguage turns user input such as "en", "en_US" or "pt-br" into
// the language-REGION form TMDB expects. A bare language gets its most likely
// region. Empty input means English.
func normalizeLanguage(lang string) string {
	lang = strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
	if lang == "" {
		return fallbackLanguage
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return lang
	}
	base, _ := tag.Base()
	region, _ := tag.Region()
	if region.String() == "ZZ" {
		return base.String()
	}
	return base.String() + "-" + region.String()
}

// languageBase returns the ISO 639-1 part of a tag ("en-US" -> "en"). TMDB
// tags video records with iso_639_1 only.
func languageBase(lang string) string {
	lang = strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
	if lang == "" {
		return ""
	}
	tag, err := language.Parse(lang)
	if err != nil {
		lang = strings.ToLower(lang)
		if idx := strings.IndexByte(lang, '-'); idx > 0 {
			return lang[:idx]
		}
		return lang
	}
	base, _ := tag.Base()
	return base.String()
}

// languageRegion returns the ISO 3166-1 region for a tag, inferring one when
// the tag has none ("tr" -> "TR"). Unknown tags yield "".
func languageRegion(lang string) string {
	lang = strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
	if lang == "" {
		return ""
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return ""
	}
	region, conf := tag.Region()
	if conf == language.No || region.String() == "ZZ" {
		return ""
	}
	return region.String()
}

// preferredLanguages builds the trailer language priority for a UI language:
// the UI language first, English as the fallback.
func preferredLanguages(uiLanguage string) []string {
	primary := languageBase(uiLanguage)
	if primary == "" || primary == "en" {
		return []string{"en"}
	}
	return []string{primary, "en"}
}
