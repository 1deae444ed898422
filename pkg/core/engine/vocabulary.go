package engine

import (
	"sort"
	"strings"
)

// Vocabulary is the canonical skill vocabulary, sorted by descending length
// then lexicographically. The order is load-bearing: the skill parser scans
// terms in this order so that longer terms always win over their substrings.
type Vocabulary []string

// vocabularySentinels are placeholder values that must never become
// vocabulary terms. Spreadsheet exports routinely produce them for blank
// cells.
var vocabularySentinels = map[string]bool{
	"":     true,
	"nan":  true,
	"none": true,
}

// BuildVocabulary extracts the canonical vocabulary from the required-skill
// strings of all demand rows. Terms are lower-cased, trimmed and
// deduplicated; blanks and sentinel values are dropped. The input is not
// mutated.
func BuildVocabulary(skills []string) Vocabulary {
	seen := make(map[string]bool, len(skills))
	vocab := make(Vocabulary, 0, len(skills))

	for _, raw := range skills {
		term := strings.ToLower(strings.TrimSpace(raw))
		if vocabularySentinels[term] || seen[term] {
			continue
		}
		seen[term] = true
		vocab = append(vocab, term)
	}

	// Longest first; ties alphabetical. This ordering is what makes the
	// greedy parse deterministic and longest-match.
	sort.Slice(vocab, func(i, j int) bool {
		if len(vocab[i]) != len(vocab[j]) {
			return len(vocab[i]) > len(vocab[j])
		}
		return vocab[i] < vocab[j]
	})

	return vocab
}

// Contains returns true if the given canonical term is in the vocabulary
func (v Vocabulary) Contains(term string) bool {
	for _, t := range v {
		if t == term {
			return true
		}
	}
	return false
}
