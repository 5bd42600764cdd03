package resume

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// Direct statements win over date-range inference, first match first.
	directExperienceRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\+?\s*years?\s*(?:of\s*)?(?:experience|exp|work)`),
		regexp.MustCompile(`(?i)experience\s*:?\s*(\d+(?:\.\d+)?)\s*\+?\s*years?`),
	}

	// "2019-2021", "2022 – present" and the like, en-dash or hyphen.
	yearRangeRe = regexp.MustCompile(`(?i)\b((?:19|20)\d{2})\s*[-–—]\s*((?:19|20)\d{2}|present|current)\b`)
)

// extractExperienceYears infers total experience. Direct "N years of
// experience" statements are authoritative; otherwise every YYYY-YYYY (or
// YYYY-present) range in the document is summed in months and rounded to
// the nearest year.
//
// Overlapping ranges are summed, not merged, so concurrent roles can
// overcount. That mirrors the upstream behavior deliberately; see DESIGN.md.
func extractExperienceYears(text string, now time.Time) float64 {
	for _, re := range directExperienceRes {
		if m := re.FindStringSubmatch(text); m != nil {
			v, err := strconv.ParseFloat(m[1], 64)
			if err == nil && v >= 0 {
				return v
			}
		}
	}

	months := 0
	for _, m := range yearRangeRe.FindAllStringSubmatch(text, -1) {
		start, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		end := now.Year()
		if !isPresentWord(m[2]) {
			end, err = strconv.Atoi(m[2])
			if err != nil {
				continue
			}
		}
		if end < start {
			continue
		}
		months += (end - start) * 12
	}
	if months == 0 {
		return 0
	}
	return math.Round(float64(months) / 12)
}

func isPresentWord(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "present" || s == "current"
}
