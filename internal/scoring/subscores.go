package scoring

import (
	"strings"
	"unicode"
)

// SkillMatch is the result of comparing required skills against a candidate's.
// Matched and Missing hold normalized skill names in the order they appear in
// the requirement list.
type SkillMatch struct {
	Score   float64  `json:"score"`
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}

// ExperienceScore gives full credit for meeting the minimum and proportional
// credit below it. A minimum of 0 is no constraint.
func ExperienceScore(candidateYears float64, minYears int) float64 {
	if minYears <= 0 {
		return 1
	}
	if candidateYears <= 0 {
		return 0
	}
	return clamp01(candidateYears / float64(minYears))
}

// SkillScore is |matched| / |required| after normalization. An empty
// requirement list scores 1.
func SkillScore(required, candidate []string) SkillMatch {
	reqs := normalizeSkills(required)
	match := SkillMatch{Matched: []string{}, Missing: []string{}}
	if len(reqs) == 0 {
		match.Score = 1
		return match
	}

	have := make(map[string]bool, len(candidate))
	for _, s := range candidate {
		if n := NormalizeSkill(s); n != "" {
			have[n] = true
		}
	}

	for _, r := range reqs {
		if have[r] {
			match.Matched = append(match.Matched, r)
		} else {
			match.Missing = append(match.Missing, r)
		}
	}
	match.Score = float64(len(match.Matched)) / float64(len(reqs))
	return match
}

// ProjectScore is the fraction of required skills mentioned anywhere in the
// candidate's project descriptions. Skills are matched as whole token
// phrases, so "go" does not match "google" and "machine learning" matches
// across a line. No project text scores 0.
func ProjectScore(required, projects []string) float64 {
	tokens := tokenize(strings.Join(projects, "\n"))
	if len(tokens) == 0 {
		return 0
	}
	reqs := normalizeSkills(required)
	if len(reqs) == 0 {
		return 1
	}

	text := " " + strings.Join(tokens, " ") + " "
	hits := 0
	for _, r := range reqs {
		phrase := strings.Join(tokenize(r), " ")
		if phrase != "" && strings.Contains(text, " "+phrase+" ") {
			hits++
		}
	}
	return float64(hits) / float64(len(reqs))
}

// SemanticScore compares resume and job embeddings. available is false when
// either embedding is absent, in which case the score is 0.
func SemanticScore(resume, job []float64) (score float64, available bool, err error) {
	if len(resume) == 0 || len(job) == 0 {
		return 0, false, nil
	}
	score, err = CosineSimilarity(resume, job)
	if err != nil {
		return 0, false, err
	}
	return score, true, nil
}

// NormalizeSkill lower-cases, trims and collapses internal whitespace.
func NormalizeSkill(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// normalizeSkills normalizes and de-duplicates, keeping first-seen order.
func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		n := NormalizeSkill(s)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// tokenize splits lower-cased text into word tokens. Tech suffixes like
// "c++", "c#", "node.js" and "ci/cd" stay intact; trailing dots are dropped.
func tokenize(text string) []string {
	var tokens []string
	var word strings.Builder
	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if w != "" {
			tokens = append(tokens, w)
		}
	}
	for _, r := range strings.ToLower(text) {
		if isWordRune(r) {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

func isWordRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case '+', '#', '.', '/', '-', '_':
		return true
	}
	return false
}
