// Package textutil provides the tokenization shared by the deduplication and
// tagging engines. Both consume the same token stream so that similarity
// scores and cluster keywords agree on what a term is.
package textutil

import "strings"

// Stop words filtered before building term vectors. English function words
// plus the romanized Hindi fillers and domain noise that dominate cooking
// text without carrying topic.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "how": true, "what": true, "can": true,
	"will": true, "your": true, "make": true, "add": true, "then": true,
	// romanized Hindi fillers
	"hai": true, "ka": true, "ki": true, "ke": true, "ko": true, "aur": true,
	"mein": true, "se": true, "bhi": true, "ya": true, "ek": true, "toh": true,
	// domain noise
	"recipe": true, "cook": true, "cooking": true, "minutes": true,
	"ingredients": true, "step": true,
}

// Tokenize splits text into lowercase terms, trims punctuation and drops
// stop words and terms shorter than minWordLength runes.
func Tokenize(text string, minWordLength int) []string {
	words := strings.Fields(text)
	tokens := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))
		if cleaned == "" || stopWords[cleaned] {
			continue
		}
		if len([]rune(cleaned)) < minWordLength {
			continue
		}
		tokens = append(tokens, cleaned)
	}

	return tokens
}

// TermFreq counts token occurrences.
func TermFreq(tokens []string) map[string]int {
	tf := make(map[string]int, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	return tf
}
