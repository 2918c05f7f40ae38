package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"empty", "   ", "unknown"},
		{"digits only", "12345", "unknown"},
		{"plain english", "How long should I knead the dough for naan?", "en"},
		{"devanagari", "पनीर बटर मसाला कैसे बनाते हैं", "hi"},
		{"hinglish", "Paneer ko thoda fry kar lo aur masala add karo", "hi-en"},
		{"single marker stays english", "Add the paneer and simmer for ten minutes", "en"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, DetectLanguage(c.text))
		})
	}
}

func TestLanguageAccepted(t *testing.T) {
	accepted := []string{"en", "hi", "hi-en"}

	assert.True(t, LanguageAccepted("en", accepted))
	assert.True(t, LanguageAccepted("EN", accepted))
	assert.True(t, LanguageAccepted("en-US", accepted))
	assert.True(t, LanguageAccepted("hi-en", accepted))
	assert.False(t, LanguageAccepted("fr", accepted))
	assert.False(t, LanguageAccepted("unknown", accepted))
}
