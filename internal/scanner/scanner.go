// Package scanner implements literal keyword matching over fetched paste
// content. Keywords are plain substrings; there is no wildcard or regex
// syntax, and matching is a pure function of its inputs.
package scanner

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Per keyword, only the first few occurrences get a contextual snippet.
// Occurrence counting itself is uncapped.
const maxDetailsPerKeyword = 3

// contextRadius is how many bytes of surrounding text a snippet includes
// on each side of a match.
const contextRadius = 50

// MatchDetail describes one occurrence of a keyword with surrounding context
// for human review.
type MatchDetail struct {
	Keyword  string `json:"keyword"`
	Position int    `json:"position"`
	Context  string `json:"context"`
}

// Result is the report produced by scanning one body of text.
type Result struct {
	MatchesFound     bool          `json:"matches_found"`
	MatchedKeywords  []string      `json:"matched_keywords"`
	MatchCount       int           `json:"match_count"`
	TotalOccurrences int           `json:"total_occurrences"`
	MatchDetails     []MatchDetail `json:"match_details"`
}

// Scan searches text for every keyword and reports which matched, how often,
// and where. Positions are byte offsets into the original text regardless of
// case folding. Empty text or an empty keyword list yields the zero result;
// no input is an error.
//
// Keywords are scanned in input order and duplicates are not collapsed; a
// repeated keyword rescans the same substring and its occurrences count
// again. MatchedKeywords is deduplicated and sorted.
func Scan(text string, keywords []string, caseSensitive bool) Result {
	res := Result{
		MatchedKeywords: []string{},
		MatchDetails:    []MatchDetail{},
	}
	if text == "" || len(keywords) == 0 {
		return res
	}

	seen := map[string]bool{}
	for _, keyword := range keywords {
		occurrences := findOccurrences(text, keyword, caseSensitive)
		if len(occurrences) == 0 {
			continue
		}

		if !seen[keyword] {
			seen[keyword] = true
			res.MatchedKeywords = append(res.MatchedKeywords, keyword)
		}
		res.TotalOccurrences += len(occurrences)

		for i, occ := range occurrences {
			if i >= maxDetailsPerKeyword {
				break
			}
			res.MatchDetails = append(res.MatchDetails, MatchDetail{
				Keyword:  keyword,
				Position: occ.pos,
				Context:  contextAround(text, occ.pos, occ.length),
			})
		}
	}

	sort.Strings(res.MatchedKeywords)
	res.MatchCount = len(res.MatchedKeywords)
	res.MatchesFound = res.MatchCount > 0
	return res
}

// occurrence is one non-overlapping hit of a keyword. pos and length are
// byte offsets into the original text; under case folding the matched span
// can be wider or narrower than the keyword itself.
type occurrence struct {
	pos    int
	length int
}

// findOccurrences returns every non-overlapping occurrence of needle in
// text. This is the sole matching primitive: the same finder serves
// counting, positions, and context extraction. Case-insensitive matching
// folds rune by rune over the original text so offsets stay anchored to
// the unmodified input even when folding changes a rune's encoded width.
func findOccurrences(text, needle string, caseSensitive bool) []occurrence {
	if needle == "" {
		return nil
	}

	if caseSensitive {
		var occurrences []occurrence
		for start := 0; start < len(text); {
			i := strings.Index(text[start:], needle)
			if i < 0 {
				break
			}
			pos := start + i
			occurrences = append(occurrences, occurrence{pos: pos, length: len(needle)})
			start = pos + len(needle)
		}
		return occurrences
	}

	var occurrences []occurrence
	for pos := 0; pos < len(text); {
		if n := foldedMatchLen(text[pos:], needle); n > 0 {
			occurrences = append(occurrences, occurrence{pos: pos, length: n})
			pos += n
			continue
		}
		_, size := utf8.DecodeRuneInString(text[pos:])
		pos += size
	}
	return occurrences
}

// foldedMatchLen reports how many bytes of s case-insensitively match the
// whole of needle, or 0 if s does not start with such a match.
func foldedMatchLen(s, needle string) int {
	i := 0
	for _, nr := range needle {
		r, size := utf8.DecodeRuneInString(s[i:])
		if size == 0 {
			return 0
		}
		if unicode.ToLower(r) != unicode.ToLower(nr) {
			return 0
		}
		i += size
	}
	return i
}

// contextAround extracts the snippet surrounding a match, clamped to the
// text bounds, with newlines collapsed to spaces.
func contextAround(text string, pos, matchLen int) string {
	start := pos - contextRadius
	if start < 0 {
		start = 0
	}
	end := pos + matchLen + contextRadius
	if end > len(text) {
		end = len(text)
	}
	if start > end {
		start = end
	}
	snippet := strings.ReplaceAll(text[start:end], "\n", " ")
	snippet = strings.ReplaceAll(snippet, "\r", " ")
	return "..." + strings.TrimSpace(snippet) + "..."
}
