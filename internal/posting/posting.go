package posting

import (
	"net/url"
	"strings"
	"time"
)

type Site string

const (
	SiteLinkedIn    Site = "linkedin"
	SiteNaukri      Site = "naukri"
	SiteGeneric     Site = "generic"
	SiteUnsupported Site = "unsupported"
)

// MaxDescriptionLen hard-caps the description field.
const MaxDescriptionLen = 8000

// Posting is the structured record extracted from one pass over a job page.
// A new pass supersedes the previous value wholesale; the only cross-pass
// enrichment is the description-merge rule in extract.go.
type Posting struct {
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Experience  string    `json:"experience"`
	Salary      string    `json:"salary"`
	Description string    `json:"description"`
	Skills      []string  `json:"skills"`
	Site        Site      `json:"site"`
	URL         string    `json:"url"`
	ExtractedAt time.Time `json:"extractedAt"`
}

func DetectSite(rawURL string) Site {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return SiteUnsupported
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return SiteUnsupported
	}
	host := strings.ToLower(u.Host)
	switch {
	case strings.Contains(host, "linkedin.com"):
		return SiteLinkedIn
	case strings.Contains(host, "naukri.com"):
		return SiteNaukri
	default:
		return SiteGeneric
	}
}
