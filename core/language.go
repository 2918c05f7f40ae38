package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
)

// Romanized Hindi markers used to separate Hinglish from plain English.
var hinglishMarkers = map[string]bool{
	"aur": true, "acha": true, "gaya": true, "kar": true, "nahi": true,
	"sab": true, "bhi": true, "kya": true, "masala": true, "paneer": true,
	"roti": true, "dal": true, "sabzi": true, "tadka": true, "ghee": true,
	"namak": true, "jaldi": true, "thoda": true, "zyada": true,
	"chahiye": true, "kaise": true, "banate": true,
}

// DetectLanguage assigns a language code to text: "hi" for predominantly
// Devanagari text, "hi-en" for Roman-script text carrying at least two
// romanized Hindi markers, "en" otherwise and "unknown" for empty text.
func DetectLanguage(text string) string {
	if strings.TrimSpace(text) == "" {
		return "unknown"
	}

	var letters, devanagari int
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if r >= 0x0900 && r <= 0x097F {
			devanagari++
		}
	}
	if letters == 0 {
		return "unknown"
	}
	if devanagari*3 >= letters {
		return "hi"
	}

	markers := 0
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if hinglishMarkers[strings.Trim(word, ".,!?;:'\"-()[]{}")] {
			markers++
			if markers >= 2 {
				return "hi-en"
			}
		}
	}
	return "en"
}

// LanguageAccepted reports whether code matches one of the accepted language
// codes. Codes are canonicalized through BCP 47 parsing where possible so
// that variants like "en-US" match "en"; codes that do not parse (the
// Hinglish marker "hi-en" among them) are compared case-insensitively.
func LanguageAccepted(code string, accepted []string) bool {
	for _, a := range accepted {
		if strings.EqualFold(code, a) {
			return true
		}
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		want, err := language.Parse(a)
		if err != nil {
			continue
		}
		base, _ := tag.Base()
		wantBase, _ := want.Base()
		if base == wantBase {
			return true
		}
	}
	return false
}
