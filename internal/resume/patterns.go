package resume

import (
	"regexp"
	"strings"
)

// skillCategory is one curated bucket of keywords. Matching is data-driven:
// adding a technology is a table change, not a control-flow change.
type skillCategory struct {
	name     string
	keywords []string
	re       *regexp.Regexp
}

var skillCategories = buildSkillCategories([]skillCategory{
	{name: "languages", keywords: []string{
		"python", "java", "javascript", "typescript", "golang", "go", "c++", "c#",
		"ruby", "php", "swift", "kotlin", "rust", "scala", "perl", "r", "matlab",
	}},
	{name: "frontend", keywords: []string{
		"html", "css", "react", "angular", "vue", "next.js", "nuxt", "svelte",
		"redux", "jquery", "bootstrap", "tailwind", "sass", "webpack",
	}},
	{name: "backend", keywords: []string{
		"node.js", "nodejs", "express", "django", "flask", "fastapi", "spring",
		"spring boot", "rails", "laravel", ".net", "gin", "fiber", "graphql", "grpc",
	}},
	{name: "databases", keywords: []string{
		"sql", "mysql", "postgresql", "postgres", "mongodb", "redis", "sqlite",
		"oracle", "cassandra", "dynamodb", "elasticsearch", "mariadb",
	}},
	{name: "cloud-devops", keywords: []string{
		"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "jenkins",
		"ansible", "ci/cd", "linux", "nginx", "kafka", "rabbitmq",
	}},
	{name: "ml-ai", keywords: []string{
		"machine learning", "deep learning", "tensorflow", "pytorch", "keras",
		"scikit-learn", "pandas", "numpy", "nlp", "opencv", "llm",
	}},
	{name: "tools", keywords: []string{
		"git", "github", "gitlab", "jira", "postman", "figma", "tableau",
		"power bi", "excel", "bash", "vim", "maven", "gradle",
	}},
})

func buildSkillCategories(cats []skillCategory) []skillCategory {
	out := make([]skillCategory, 0, len(cats))
	for _, c := range cats {
		parts := make([]string, 0, len(c.keywords))
		for _, kw := range c.keywords {
			parts = append(parts, keywordPattern(kw))
		}
		c.re = regexp.MustCompile(`(?i)(?:` + strings.Join(parts, "|") + `)`)
		out = append(out, c)
	}
	return out
}

// keywordPattern quotes a keyword for alternation. Word boundaries only
// apply next to word characters, so "c++"/".net" get boundaries only on
// the sides where \b is well defined.
func keywordPattern(kw string) string {
	q := regexp.QuoteMeta(kw)
	if isWordChar(kw[0]) {
		q = `\b` + q
	}
	if isWordChar(kw[len(kw)-1]) {
		q = q + `\b`
	}
	return q
}

func isWordChar(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// MatchSkillKeywords scans text against every category and returns the
// matched keywords, case-folded, deduplicated, in first-match order.
func MatchSkillKeywords(text string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, 16)
	for _, cat := range skillCategories {
		for _, m := range cat.re.FindAllString(text, -1) {
			k := strings.ToLower(strings.TrimSpace(m))
			if k == "" {
				continue
			}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	phoneDigitsRe = regexp.MustCompile(`\d{10}`)

	degreeRe = regexp.MustCompile(`(?i)\b(b\.?\s?tech|m\.?\s?tech|b\.?e|m\.?e|b\.?sc|m\.?sc|b\.?a|m\.?a|bca|mca|mba|ph\.?d|bachelor|master|doctorate|diploma|engineering|computer science|information technology)\b|\b(19|20)\d{2}\b`)

	bulletPrefixRe = regexp.MustCompile(`^[\s\-–—*•·▪◦‣>]+`)

	// splitter tokens keep word chars, whitespace and the few symbols that
	// appear in real technology names (".", "#", "+").
	skillTokenStripRe = regexp.MustCompile(`[^\w\s.#+]`)
	skillSplitRe      = regexp.MustCompile(`[,\n\t•·▪◦‣|]`)
)

var contactIndicators = []string{
	"@", "linkedin", "github", "twitter", "facebook",
	"phone", "mobile", "tel:", "email",
}

var headerWords = []string{"resume", "curriculum", "cv", "objective", "summary"}
