package chat

// vocabulary maps relationship words, including plurals, to the
// engine relation they query
var vocabulary = map[string]string{
	"father":       "father",
	"fathers":      "father",
	"mother":       "mother",
	"mothers":      "mother",
	"parent":       "parent",
	"parents":      "parent",
	"child":        "child",
	"children":     "child",
	"son":          "son",
	"sons":         "son",
	"daughter":     "daughter",
	"daughters":    "daughter",
	"sibling":      "sibling",
	"siblings":     "sibling",
	"brother":      "brother",
	"brothers":     "brother",
	"sister":       "sister",
	"sisters":      "sister",
	"grandparent":  "grandparent",
	"grandparents": "grandparent",
	"grandfather":  "grandfather",
	"grandmother":  "grandmother",
	"grandfathers": "grandfather",
	"grandmothers": "grandmother",
	"ancestor":     "ancestor",
	"ancestors":    "ancestor",
	"descendant":   "descendant",
	"descendants":  "descendant",
	"uncle":        "uncle",
	"uncles":       "uncle",
	"aunt":         "aunt",
	"aunts":        "aunt",
	"relative":     "relative",
	"relatives":    "relative",
}

// Closest maps a possibly misspelled relationship word to an engine
// relation, tolerating small typos so the conversation stays smooth.
// Returns "" when nothing is close enough
func Closest(word string) string {
	if rel, ok := vocabulary[word]; ok {
		return rel
	}

	best, bestScore := "", 0.0
	for candidate, rel := range vocabulary {
		d := levenshtein(word, candidate)
		longest := len(word)
		if len(candidate) > longest {
			longest = len(candidate)
		}
		if longest == 0 {
			continue
		}
		score := 1.0 - float64(d)/float64(longest)
		if score > bestScore {
			best, bestScore = rel, score
		}
	}
	if bestScore >= 0.7 {
		return best
	}
	return ""
}

// levenshtein computes the edit distance between two words
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
