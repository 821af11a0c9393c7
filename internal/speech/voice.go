package speech

import "strings"

// Voice is a speech persona exposed by the platform.
type Voice struct {
	Name string `json:"name"`
	Lang string `json:"lang"`
	// ID is what the backend expects on its command line. Empty means Name.
	ID string `json:"id,omitempty"`
}

func (v Voice) id() string {
	if v.ID != "" {
		return v.ID
	}
	return v.Name
}

// SelectVoice picks the voice used for the chant. In order of preference:
//  1. an Australian-English voice (locale contains "en-AU" or the name
//     contains "australia")
//  2. the first voice whose locale begins with "en-"
//  3. the first voice in the list
//
// It returns false when voices is empty; speech then falls back to the
// platform default.
func SelectVoice(voices []Voice) (Voice, bool) {
	for _, v := range voices {
		if strings.Contains(normalizeLang(v.Lang), "en-au") ||
			strings.Contains(strings.ToLower(v.Name), "australia") {
			return v, true
		}
	}
	for _, v := range voices {
		if strings.HasPrefix(normalizeLang(v.Lang), "en-") {
			return v, true
		}
	}
	if len(voices) > 0 {
		return voices[0], true
	}
	return Voice{}, false
}

// FindVoice returns the voice whose name matches name case-insensitively.
func FindVoice(voices []Voice, name string) (Voice, bool) {
	if name == "" {
		return Voice{}, false
	}
	for _, v := range voices {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return Voice{}, false
}

// normalizeLang lowercases a locale tag and turns POSIX-style
// separators (en_AU) into BCP 47 ones (en-au).
func normalizeLang(lang string) string {
	return strings.ToLower(strings.ReplaceAll(lang, "_", "-"))
}
