package session

import "strings"

// ScoreKeywords are the words that earn a point when they appear in a
// model reply, matched case-insensitively as substrings. This is a plain
// keyword rule, not grading: "tidak benar" also scores.
var ScoreKeywords = []string{"benar", "mantap"}

// Evaluate returns 1 if reply contains any score keyword, else 0.
func Evaluate(reply string) int {
	lower := strings.ToLower(reply)
	for _, kw := range ScoreKeywords {
		if strings.Contains(lower, kw) {
			return 1
		}
	}
	return 0
}
