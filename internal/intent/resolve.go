package intent

import (
	"regexp"
	"strings"
)

// Action verbs stripped from the command before fuzzy title matching.
var resolveVerbRe = regexp.MustCompile(`\b(delete|remove|update|edit|complete|finish|done|mark)\b`)

// Candidate is one task considered for fuzzy resolution.
type Candidate struct {
	ID    int
	Title string
}

// CleanCommand lower-cases the command, removes the action verbs and
// collapses whitespace, leaving the part of the text that can name a task.
func CleanCommand(command string) string {
	lower := strings.ToLower(command)
	lower = resolveVerbRe.ReplaceAllString(lower, "")
	return strings.Join(strings.Fields(lower), " ")
}

// Score rates how well a task title matches the cleaned command text.
// Containment in either direction scores the longer of the two lengths;
// otherwise the score is the number of command tokens appearing as
// substrings of the title. Zero means no match.
func Score(title, cleaned string) int {
	titleLower := strings.ToLower(title)
	if strings.Contains(cleaned, titleLower) || strings.Contains(titleLower, cleaned) {
		if len(titleLower) > len(cleaned) {
			return len(titleLower)
		}
		return len(cleaned)
	}

	score := 0
	for _, word := range strings.Fields(cleaned) {
		if strings.Contains(titleLower, word) {
			score++
		}
	}
	return score
}

// ResolveTask picks the candidate with the strictly highest score against
// the command. Ties keep the first candidate encountered, in slice order.
// ok is false when no candidate scores above zero.
func ResolveTask(candidates []Candidate, command string) (id int, ok bool) {
	cleaned := CleanCommand(command)

	bestID, bestScore := 0, 0
	for _, c := range candidates {
		if s := Score(c.Title, cleaned); s > bestScore {
			bestScore = s
			bestID = c.ID
		}
	}
	if bestID == 0 {
		return 0, false
	}
	return bestID, true
}
