// Package testutils provides shared helpers for constructing exam
// submissions in tests.
package testutils

import "strings"

// fillerWords cycle to pad generated essays to a target word count.
var fillerWords = []string{
	"students", "often", "find", "that", "regular", "practice",
	"improves", "their", "writing", "over", "time",
}

// EssayText builds a synthetic essay with exactly wordCount words. When
// signalWord is non-empty it replaces the first word, so heuristics that
// look for argument-signal words can be driven from tests.
func EssayText(wordCount int, signalWord string) string {
	if wordCount <= 0 {
		return ""
	}

	words := make([]string, wordCount)
	for i := range words {
		words[i] = fillerWords[i%len(fillerWords)]
	}
	if signalWord != "" {
		words[0] = signalWord
	}
	return strings.Join(words, " ")
}
