package engine

import "strings"

// ParseSkills segments a worker's raw skill text into canonical vocabulary
// terms using a greedy longest-match scan.
//
// The text is normalized (lower-cased, whitespace runs collapsed), then the
// vocabulary is scanned in its fixed longest-first order. The first term found
// as a substring is consumed: its occurrence is replaced with a single space,
// the text is re-normalized, and the scan restarts from the top of the
// vocabulary. Parsing stops when no term matches; leftover fragments are
// discarded.
//
// Identical input always yields an identical Skillset - the scan order is
// fixed by the vocabulary, not by any hashing.
func (v Vocabulary) ParseSkills(raw string) Skillset {
	text := normalizeText(raw)

	var matched []string
	consumed := make(map[string]bool)

	for text != "" {
		found := false
		for _, term := range v {
			// Terms longer than the remaining text cannot match
			if len(term) > len(text) {
				continue
			}
			idx := strings.Index(text, term)
			if idx < 0 {
				continue
			}

			if !consumed[term] {
				consumed[term] = true
				matched = append(matched, term)
			}

			// Remove the occurrence and restart the scan
			text = normalizeText(text[:idx] + " " + text[idx+len(term):])
			found = true
			break
		}
		if !found {
			break
		}
	}

	return NewSkillset(matched)
}

// normalizeText lower-cases the text and collapses whitespace runs to single
// spaces, trimming the ends
func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
