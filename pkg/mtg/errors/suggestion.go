package errors

import (
	"fmt"
	"strings"
)

// SuggestKeyword suggests the expected keyword closest to an unrecognised word.
// It uses Levenshtein distance and only suggests when the word is at most
// two edits away, since rules-text keywords are short.
func SuggestKeyword(word string, expected []string) string {
	word = strings.ToLower(word)
	if word == "" || len(expected) == 0 {
		return ""
	}

	minDistance := 1000
	var bestMatch string

	for _, candidate := range expected {
		candidate = strings.ToLower(candidate)
		if candidate == word {
			return ""
		}
		dist := levenshteinDistance(word, candidate)
		if dist < minDistance {
			minDistance = dist
			bestMatch = candidate
		}
	}

	if minDistance <= 2 && minDistance < len(word) {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}
	return ""
}

// levenshteinDistance computes the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}
