package services

import (
	"strings"
	"unicode/utf8"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// fuzzyThreshold is the minimum similarity for a fuzzy word match
const fuzzyThreshold = 0.7

// normalizeInput lowercases and strips diacritics
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

func containsNormalized(haystack, needle string) bool {
	return strings.Contains(normalizeInput(haystack), needle)
}

func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

// calculateSimilarity is 1 - distance/maxLen over runes
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

// fuzzyWordMatch reports whether any query word is close to any word of text
func fuzzyWordMatch(query, text string) bool {
	words := strings.Fields(normalizeInput(text))
	for _, q := range strings.Fields(query) {
		for _, w := range words {
			if calculateSimilarity(q, w) >= fuzzyThreshold {
				return true
			}
		}
	}
	return false
}
