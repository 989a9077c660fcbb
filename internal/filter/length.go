package filter

import "strings"

func WordCount(text string) int {
	return len(strings.Fields(text))
}

func PassesLength(text string, minWords int) bool {
	return WordCount(text) >= minWords
}

// LengthGate returns the segments with at least minWords words, in order.
func LengthGate(segments []string, minWords int) []string {
	var out []string
	for _, s := range segments {
		if PassesLength(s, minWords) {
			out = append(out, s)
		}
	}
	return out
}
