package story

import "strings"

// LintResult is a local, heuristic read on whether a story version
// follows the structural contract. It backs the judge-info display
// only; the authoritative check is the judge's Verdict.
type LintResult struct {
	Score  float64
	Issues []string
}

// Lint scans the story text for cheap-to-detect contract violations:
// too few paragraphs for the level, missing dialogue, no moral cue
// near the end.
func Lint(text string, level ReadingLevel, c Contract) LintResult {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return LintResult{Score: 0, Issues: []string{"empty_story"}}
	}

	score := 1.0
	issues := make([]string, 0, 4)

	paragraphs := countParagraphs(trimmed)
	if paragraphs < level.Profile().MinParagraphs {
		score -= 0.3
		issues = append(issues, "too_few_paragraphs")
	}

	if countDialogueLines(trimmed) < c.MinDialogueLines {
		score -= 0.35
		issues = append(issues, "missing_dialogue")
	}

	if c.RequireMoral && !hasMoralCue(trimmed) {
		score -= 0.25
		issues = append(issues, "no_moral_cue")
	}

	if score < 0 {
		score = 0
	}
	return LintResult{Score: score, Issues: issues}
}

func countParagraphs(text string) int {
	count := 0
	for _, block := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(block) != "" {
			count++
		}
	}
	return count
}

// countDialogueLines counts quoted speech segments, accepting both
// straight and curly quotation marks.
func countDialogueLines(text string) int {
	straight := strings.Count(text, `"`) / 2
	curly := strings.Count(text, "“") // opening curly quote
	if curly > straight {
		return curly
	}
	return straight
}

// hasMoralCue looks for moral-shaped phrasing in the closing third of
// the story.
func hasMoralCue(text string) bool {
	tail := text
	if len(text) > 3 {
		tail = text[len(text)*2/3:]
	}
	tail = strings.ToLower(tail)
	for _, cue := range []string{"moral", "learned", "remember", "always", "that night"} {
		if strings.Contains(tail, cue) {
			return true
		}
	}
	return false
}
