package posting

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"joblens/internal/resume"
)

// shortDescriptionLen is the threshold below which the primary description
// is considered truncated (lazy-loaded content still arriving) and gets the
// best fallback candidate merged in.
const shortDescriptionLen = 200

// Extract runs one extraction pass over rendered page HTML. The second
// return is false when no title is resolvable: absence, not an error, so
// live change detection can degrade to "no job detected".
func Extract(html, pageURL string, now time.Time) (Posting, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Posting{}, false
	}

	site := DetectSite(pageURL)
	sels := selectorsFor(site)

	title := cascadeText(doc, sels.title, genericSelectors.title)
	if title == "" {
		return Posting{}, false
	}

	company := cascadeText(doc, sels.company, genericSelectors.company)
	location := cascadeText(doc, sels.location, genericSelectors.location)

	description := extractDescription(doc, sels)
	if len(description) > MaxDescriptionLen {
		cut := MaxDescriptionLen
		for cut > 0 && !utf8.RuneStart(description[cut]) {
			cut--
		}
		description = description[:cut]
	}

	p := Posting{
		Title:       title,
		Company:     company,
		Location:    location,
		Experience:  ParseExperienceRange(description),
		Salary:      ParseSalary(description),
		Description: description,
		Skills:      resume.MatchSkillKeywords(description),
		Site:        site,
		URL:         strings.TrimSpace(pageURL),
		ExtractedAt: now,
	}
	return p, true
}

// cascadeText walks the site cascade, then the generic one, returning the
// first non-empty text.
func cascadeText(doc *goquery.Document, primary, fallback []string) string {
	if s := firstText(doc, primary); s != "" {
		return s
	}
	return firstText(doc, fallback)
}

func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		var text string
		if strings.HasPrefix(sel, "meta") {
			text, _ = node.Attr("content")
		} else {
			text = node.Text()
		}
		text = collapseSpace(text)
		if text != "" {
			return text
		}
	}
	return ""
}

// extractDescription takes the primary cascade result and, when it is
// suspiciously short, merges in the largest plausible content container so
// the description is never empty while any extractable text exists.
func extractDescription(doc *goquery.Document, sels siteSelectors) string {
	primary := cleanBlock(firstText(doc, sels.description))

	if len(primary) >= shortDescriptionLen {
		return primary
	}

	fallback := largestContentBlock(doc)
	if fallback == "" || fallback == primary {
		return primary
	}
	if primary == "" {
		return fallback
	}
	if strings.Contains(fallback, primary) {
		return fallback
	}
	return primary + "\n\n" + fallback
}

// largestContentBlock strips boilerplate and returns the biggest text block
// among generic description candidates, falling back to the whole body.
func largestContentBlock(doc *goquery.Document) string {
	for _, sel := range boilerplateSelectors {
		doc.Find(sel).Remove()
	}

	best := ""
	for _, sel := range genericSelectors.description {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			t := cleanBlock(s.Text())
			if len(t) > len(best) {
				best = t
			}
		})
	}
	if best == "" {
		best = cleanBlock(doc.Find("body").Text())
	}
	return best
}

var (
	spaceRunRe     = regexp.MustCompile(`[ \t]+`)
	blankLineRunRe = regexp.MustCompile(`\n{3,}`)
)

func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRunRe.ReplaceAllString(strings.ReplaceAll(s, "\u00a0", " "), " "))
}

// cleanBlock normalizes a multi-line text block: per-line space collapse,
// blank-line runs squeezed to one separator.
func cleanBlock(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = collapseSpace(l)
	}
	out := strings.Join(lines, "\n")
	out = blankLineRunRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
