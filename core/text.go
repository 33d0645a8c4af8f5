package core

import "strings"

// Stop words to filter out when checking for verbatim containment
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true,
}

// TokenizeAndFilter splits text into words, lowercases, trims punctuation,
// and removes stop words.
func TokenizeAndFilter(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))
		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}

	return filtered
}

// ContainsAllWords checks if all words of needle (after stop-word filtering)
// appear in haystack. Used for keyword matching during hybrid search and for
// the exact-containment verification signal.
func ContainsAllWords(haystack, needle string) bool {
	needleWords := TokenizeAndFilter(needle)
	if len(needleWords) == 0 {
		return false
	}

	haystackWords := TokenizeAndFilter(haystack)
	wordSet := make(map[string]bool, len(haystackWords))
	for _, word := range haystackWords {
		wordSet[word] = true
	}

	for _, word := range needleWords {
		if !wordSet[word] {
			return false
		}
	}

	return true
}
