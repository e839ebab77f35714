package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultTitle is used when no title can be extracted from the command.
const DefaultTitle = "Untitled Task"

var (
	// "called 'title'", "named 'title'", "titled 'title'", "as 'title'"
	namedTitleRe = regexp.MustCompile(`(?i)(?:called|named|titled|as)['"]([^'"]+)['"]`)

	// "add task 'title'", "create 'title'" and similar
	verbTitleRe = regexp.MustCompile(`(?i)(?:add|create|make).*?(?:task|todo)?\s*['"]([^'"]+)['"]`)

	// Noise stripped before the positional title fallback. Substring match,
	// so these also vanish inside longer words.
	titleNoiseRe = regexp.MustCompile(`(?i)(add|create|make|task|todo|please|now)`)

	// Description cues, tried in order.
	descPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:with|and)\s+description\s+(.*)`),
		regexp.MustCompile(`(?i)description:\s*(.*)`),
		regexp.MustCompile(`(?i)-\s*(.*)`),
		regexp.MustCompile(`(?i):\s*(.*)`),
	}

	// Stopwords removed for the description fallback, word-bounded.
	descNoiseRe = regexp.MustCompile(`(?i)\b(add|create|make|new|task|todo|please|now|want|need|should)\b`)

	spaceRe = regexp.MustCompile(`\s+`)

	// Numbers following "task"/"id"/"number", or any bare integer.
	idRe = regexp.MustCompile(`(?i)\b(task|id|number)\s*(\d+)\b|\b(\d+)\b`)
)

// ExtractTitle pulls a task title out of the command. Quoted titles after a
// naming cue win, then quoted titles after a creation verb, then the first
// five words of the text with the creation noise stripped.
func ExtractTitle(command string) string {
	if m := namedTitleRe.FindStringSubmatch(command); m != nil {
		return m[1]
	}
	if m := verbTitleRe.FindStringSubmatch(command); m != nil {
		return m[1]
	}

	clean := strings.TrimSpace(titleNoiseRe.ReplaceAllString(command, ""))
	words := strings.Fields(clean)
	if len(words) == 0 {
		return DefaultTitle
	}
	if len(words) > 5 {
		words = words[:5]
	}
	return strings.TrimRight(strings.Join(words, " "), ".,!?")
}

// ExtractDescription pulls a description out of the command. Explicit cues
// ("with description ...", "description: ...", a dash, a colon) are tried
// first. Failing those, the text is stripped of stopwords and, when the
// remainder still contains the extracted title, the title is cut out and
// whatever is left becomes the description.
//
// The fallback is known to misbehave when the title is a short common word
// that matches unrelated text; that behavior is pinned by tests rather than
// guarded against.
func ExtractDescription(command string) string {
	for _, re := range descPatterns {
		if m := re.FindStringSubmatch(command); m != nil {
			return strings.TrimRight(strings.TrimSpace(m[1]), ".!?")
		}
	}

	cleaned := descNoiseRe.ReplaceAllString(command, "")
	cleaned = strings.TrimSpace(spaceRe.ReplaceAllString(cleaned, " "))

	title := ExtractTitle(command)
	if title == "" {
		return ""
	}
	if len(cleaned) > len(title) && strings.Contains(strings.ToLower(cleaned), strings.ToLower(title)) {
		// Containment is checked case-insensitively but removal is exact,
		// so a case mismatch leaves the text untouched.
		desc := strings.TrimSpace(strings.Replace(cleaned, title, "", 1))
		desc = strings.TrimLeft(desc, ":,- ")
		if desc != "" {
			return desc
		}
	}
	return ""
}

// ExtractID finds an explicit task id in the command. A number following
// "task", "id" or "number" is preferred; otherwise the first bare integer
// wins. Zero means no id was found.
func ExtractID(command string) int {
	for _, m := range idRe.FindAllStringSubmatch(command, -1) {
		if m[2] != "" {
			n, _ := strconv.Atoi(m[2])
			return n
		}
		if m[3] != "" {
			n, _ := strconv.Atoi(m[3])
			return n
		}
	}
	return 0
}
