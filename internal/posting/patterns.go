package posting

import (
	"fmt"
	"regexp"
	"strings"
)

// NotSpecified and NotDisclosed are the degrade-to defaults when no
// pattern matches the free text.
const (
	NotSpecified = "Not specified"
	NotDisclosed = "Not disclosed"
)

// experiencePattern formats its captures: two captures render "N-M years",
// one capture renders "N+ years".
type experiencePattern struct {
	re *regexp.Regexp
}

var experiencePatterns = []experiencePattern{
	{regexp.MustCompile(`(?i)(\d+)\s*(?:to|-|–)\s*(\d+)\s*\+?\s*(?:years?|yrs?)`)},
	{regexp.MustCompile(`(?i)(\d+)\s*\+\s*(?:years?|yrs?)\s*(?:of\s*)?(?:experience|exp)`)},
	{regexp.MustCompile(`(?i)experience\s*:?\s*(\d+)\s*\+?\s*(?:years?|yrs?)`)},
	{regexp.MustCompile(`(?i)minimum\s*(?:of\s*)?(\d+)\s*(?:years?|yrs?)`)},
	{regexp.MustCompile(`(?i)at\s*least\s*(\d+)\s*(?:years?|yrs?)`)},
}

// ParseExperienceRange recognizes experience requirements in free job text.
// First pattern to match wins.
func ParseExperienceRange(text string) string {
	for _, p := range experiencePatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		captures := nonEmptyCaptures(m)
		switch len(captures) {
		case 2:
			return fmt.Sprintf("%s-%s years", captures[0], captures[1])
		case 1:
			return fmt.Sprintf("%s+ years", captures[0])
		}
	}
	return NotSpecified
}

var salaryPatterns = []*regexp.Regexp{
	// ₹8,00,000 - ₹12,00,000 / 12-15 LPA style ranges.
	regexp.MustCompile(`(?i)₹\s*[\d,.]+\s*(?:-|–|to)\s*₹?\s*[\d,.]+\s*(?:lpa|lakhs?|lacs?|l|k|cr|per\s*annum|pa|/\s*(?:year|month|annum))?`),
	regexp.MustCompile(`(?i)[\d.]+\s*(?:-|–|to)\s*[\d.]+\s*(?:lpa|lakhs?|lacs?)`),
	// $90k-$120k/year style ranges.
	regexp.MustCompile(`(?i)\$\s*[\d,.]+\s*k?\s*(?:-|–|to)\s*\$?\s*[\d,.]+\s*k?\s*(?:/\s*(?:year|yr|month|mo)|per\s*(?:year|month|annum))?`),
	// Explicitly labeled amounts, taken verbatim to end of line.
	regexp.MustCompile(`(?i)(?:salary|compensation|stipend)\s*:\s*([^\n]+)`),
}

// ParseSalary recognizes pay information in free job text. The matched text
// is returned trimmed, verbatim.
func ParseSalary(text string) string {
	for _, re := range salaryPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		out := m[0]
		if len(m) > 1 && strings.TrimSpace(m[1]) != "" {
			out = m[1]
		}
		return strings.TrimSpace(out)
	}
	return NotDisclosed
}

func nonEmptyCaptures(m []string) []string {
	out := make([]string, 0, len(m)-1)
	for _, c := range m[1:] {
		if strings.TrimSpace(c) != "" {
			out = append(out, c)
		}
	}
	return out
}
