// Package normalize provides utilities for normalizing and sanitizing data.
package normalize

import (
	"strings"

	"golang.org/x/text/language"
)

// languageNameToCode maps common English language names to BCP 47 codes.
// x/text parses codes and locale tags but not display names, so names
// get a small lookup of their own before parsing.
//
//nolint:gochecknoglobals // Static lookup table for language normalization
var languageNameToCode = map[string]string{
	"english": "en", "spanish": "es", "french": "fr", "german": "de",
	"italian": "it", "portuguese": "pt", "dutch": "nl", "russian": "ru",
	"japanese": "ja", "chinese": "zh", "korean": "ko", "arabic": "ar",
	"hindi": "hi", "polish": "pl", "swedish": "sv", "norwegian": "no",
	"danish": "da", "finnish": "fi", "turkish": "tr", "greek": "el",
	"hebrew": "he", "czech": "cs", "hungarian": "hu", "romanian": "ro",
	"thai": "th", "vietnamese": "vi", "indonesian": "id", "malay": "ms",
	"ukrainian": "uk", "catalan": "ca", "croatian": "hr", "slovak": "sk",
	"bulgarian": "bg", "lithuanian": "lt", "latvian": "lv", "estonian": "et",
	"slovenian": "sl", "serbian": "sr", "persian": "fa", "farsi": "fa",
	"bengali": "bn", "tamil": "ta", "urdu": "ur", "welsh": "cy",
	"irish": "ga", "basque": "eu", "icelandic": "is", "tagalog": "tl",
}

// iso639_2B maps ISO 639-2/B (bibliographic) codes to ISO 639-1.
// BCP 47 only registers the terminological variants, so the parser
// rejects these even though they show up in the wild.
//
//nolint:gochecknoglobals // Static lookup table for language normalization
var iso639_2B = map[string]string{
	"ger": "de", "fre": "fr", "dut": "nl", "chi": "zh", "cze": "cs",
	"gre": "el", "per": "fa", "rum": "ro", "slo": "sk", "alb": "sq",
	"arm": "hy", "baq": "eu", "bur": "my", "geo": "ka", "ice": "is",
	"mac": "mk", "may": "ms", "tib": "bo", "wel": "cy",
}

// LanguageCode converts various language representations to ISO 639-1 codes.
// It handles:
//   - ISO 639-1 codes: "en" -> "en"
//   - ISO 639-2 codes: "eng" -> "en"
//   - Locale codes: "en-US", "en_GB" -> "en"
//   - Common language names: "English", "ENGLISH" -> "en"
//
// Returns empty string for unrecognized values.
func LanguageCode(raw string) string {
	if raw == "" {
		return ""
	}

	// Sanitize and normalize case.
	s := strings.ToLower(strings.TrimSpace(sanitizeString(raw)))
	if s == "" {
		return ""
	}

	// Language names first; the BCP 47 parser doesn't know them.
	if code, ok := languageNameToCode[s]; ok {
		return code
	}

	// Bibliographic 3-letter codes, also unknown to the parser.
	if code, ok := iso639_2B[s]; ok {
		return code
	}

	// Underscore locales ("en_GB") are common in metadata; BCP 47 wants hyphens.
	s = strings.ReplaceAll(s, "_", "-")

	tag, err := language.Parse(s)
	if err != nil {
		return ""
	}

	base, conf := tag.Base()
	if conf == language.No {
		return ""
	}
	code := base.String()
	// Base.String returns the shortest ISO 639 code; 3-letter codes mean
	// no two-letter equivalent exists, which is fine to surface as-is.
	return code
}

// sanitizeString removes null bytes from strings, which can cause
// issues in databases and JSON parsing.
func sanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 { // null byte
			return -1 // drop it
		}
		return r
	}, s)
}
