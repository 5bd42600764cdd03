package resume

import (
	"strings"
	"time"

	"joblens/internal/segment"
)

// Field caps and length windows. List values outside their window are
// implausible as single line items and get discarded.
const (
	MaxSkills         = 60
	MaxEducation      = 5
	MaxProjects       = 8
	MaxCertifications = 8
)

type Resume struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Skills          []string `json:"skills"`
	Education       []string `json:"education"`
	ExperienceYears float64  `json:"experienceYears"`
	Projects        []string `json:"projects"`
	Certifications  []string `json:"certifications"`
}

var (
	skillsAliases    = []string{"skills", "technical skills", "skill set", "core competencies", "technologies"}
	educationAliases = []string{"education", "academic background", "qualifications", "academics"}
	projectAliases   = []string{"projects", "personal projects", "academic projects"}
	certAliases      = []string{"certifications", "certificates", "achievements", "awards"}
)

// Parse extracts structured fields from raw resume text. Extraction is
// best-effort: fields that cannot be resolved come back empty, never an
// error. The returned value is a fresh snapshot; re-parsing produces a new
// value rather than mutating a previous one.
func Parse(text string) Resume {
	return parseAt(text, time.Now().UTC())
}

func parseAt(text string, now time.Time) Resume {
	return Resume{
		Name:            extractName(text),
		Email:           extractEmail(text),
		Skills:          extractSkills(text),
		Education:       extractEducation(text),
		ExperienceYears: extractExperienceYears(text, now),
		Projects:        extractSectionItems(text, projectAliases, MaxProjects),
		Certifications:  extractSectionItems(text, certAliases, MaxCertifications),
	}
}

// extractName picks the first of the first 5 non-blank lines that looks
// like a person's name rather than contact info or a document header.
func extractName(text string) string {
	checked := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		checked++
		if checked > 5 {
			break
		}
		if looksLikeName(line) {
			return line
		}
	}
	return ""
}

func looksLikeName(line string) bool {
	if len(line) <= 2 || len(line) > 50 {
		return false
	}
	lower := strings.ToLower(line)
	for _, ind := range contactIndicators {
		if strings.Contains(lower, ind) {
			return false
		}
	}
	if phoneDigitsRe.MatchString(line) {
		return false
	}
	for _, w := range headerWords {
		if strings.HasPrefix(lower, w) {
			return false
		}
	}
	return true
}

func extractEmail(text string) string {
	return emailRe.FindString(text)
}

// extractSkills unions curated keyword matches with tokens split out of the
// skills section. The whole document is only scanned when no skills section
// exists at all.
func extractSkills(text string) []string {
	section, found := segment.Segment(text, skillsAliases)

	scanText := text
	if found {
		scanText = section
	}

	seen := make(map[string]struct{})
	out := make([]string, 0, 32)
	add := func(s string) {
		s = strings.ToLower(strings.TrimSpace(s))
		if len(s) <= 1 {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, kw := range MatchSkillKeywords(scanText) {
		add(kw)
	}

	if found {
		for _, tok := range skillSplitRe.Split(section, -1) {
			tok = skillTokenStripRe.ReplaceAllString(tok, "")
			tok = strings.TrimSpace(tok)
			if len(tok) > 1 && len(tok) < 40 {
				add(tok)
			}
		}
	}

	if len(out) > MaxSkills {
		out = out[:MaxSkills]
	}
	return out
}

func extractEducation(text string) []string {
	section, found := segment.Segment(text, educationAliases)
	if !found {
		return []string{}
	}

	out := make([]string, 0, MaxEducation)
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= 5 || len(line) >= 200 {
			continue
		}
		if !degreeRe.MatchString(line) {
			continue
		}
		out = append(out, line)
		if len(out) == MaxEducation {
			break
		}
	}
	return out
}

// extractSectionItems pulls bullet-stripped line items out of a section,
// used for both projects and certifications.
func extractSectionItems(text string, aliases []string, cap int) []string {
	section, found := segment.Segment(text, aliases)
	if !found {
		return []string{}
	}

	out := make([]string, 0, cap)
	for _, line := range strings.Split(section, "\n") {
		line = bulletPrefixRe.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if len(line) <= 5 || len(line) >= 150 {
			continue
		}
		out = append(out, line)
		if len(out) == cap {
			break
		}
	}
	return out
}
