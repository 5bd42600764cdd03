package segment

import "strings"

// knownHeadings is the reference set used to decide where a section ends.
// A line matching any of these (other than the current target aliases)
// closes the section being accumulated.
var knownHeadings = []string{
	"experience",
	"work experience",
	"employment",
	"employment history",
	"education",
	"skills",
	"technical skills",
	"projects",
	"certifications",
	"achievements",
	"summary",
	"objective",
	"contact",
	"references",
	"publications",
	"languages",
}

// Segment isolates the body of the first section whose heading matches one
// of aliases. The second return distinguishes "section not found" (false)
// from "section found but empty" (true with an empty body); callers rely on
// that for fallback logic.
//
// Scanning is a single top-to-bottom pass: the first matching alias wins,
// the first stopping heading wins, no backtracking.
func Segment(text string, aliases []string) (string, bool) {
	lines := strings.Split(text, "\n")

	inSection := false
	var body []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if !inSection {
			if rest, ok := matchAnyHeading(trimmed, aliases); ok {
				inSection = true
				// Inline content on the heading line itself
				// ("Skills: Python, React") belongs to the body.
				if rest != "" {
					body = append(body, rest)
				}
			}
			continue
		}

		if isStopHeading(trimmed, aliases) {
			break
		}
		body = append(body, line)
	}

	if !inSection {
		return "", false
	}
	return strings.TrimSpace(strings.Join(body, "\n")), true
}

// matchHeading reports whether line is a heading for alias: equal to it,
// or starting with "alias:" or "alias ", case-insensitively. The first
// return is whatever trails the alias on the same line.
func matchHeading(line, alias string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	l := strings.ToLower(trimmed)
	a := strings.ToLower(strings.TrimSpace(alias))
	if l == "" || a == "" {
		return "", false
	}
	if l == a {
		return "", true
	}
	if strings.HasPrefix(l, a+":") || strings.HasPrefix(l, a+" ") {
		return strings.TrimSpace(strings.TrimLeft(trimmed[len(a):], ": ")), true
	}
	return "", false
}

func matchesHeading(line, alias string) bool {
	_, ok := matchHeading(line, alias)
	return ok
}

func matchAnyHeading(line string, aliases []string) (string, bool) {
	for _, a := range aliases {
		if rest, ok := matchHeading(line, a); ok {
			return rest, ok
		}
	}
	return "", false
}

func matchesAnyHeading(line string, aliases []string) bool {
	_, ok := matchAnyHeading(line, aliases)
	return ok
}

func isStopHeading(line string, currentAliases []string) bool {
	for _, h := range knownHeadings {
		if !matchesHeading(line, h) {
			continue
		}
		if matchesAnyHeading(line, currentAliases) {
			continue
		}
		return true
	}
	return false
}
