package detect

import (
	"regexp"
	"strings"

	"joblens/internal/posting"
)

// Site-native job ids parsed out of the URL. A native id is authoritative:
// two passes with the same id are the same job even when header fields
// drift between them (company often populates a beat after the title).
var (
	liViewRe   = regexp.MustCompile(`/jobs/view/(\d+)`)
	liSearchRe = regexp.MustCompile(`[?&]currentJobId=(\d+)`)
	nkJobRe    = regexp.MustCompile(`-(\d{6,})(?:[?#]|$)`)
)

// Identity derives the change-detection key for a posting. Without a native
// id any field drift (url, title, company) produces a different identity.
func Identity(p posting.Posting) string {
	u := strings.TrimSpace(p.URL)

	switch p.Site {
	case posting.SiteLinkedIn:
		if m := liViewRe.FindStringSubmatch(u); m != nil {
			return "li_view_" + m[1]
		}
		if m := liSearchRe.FindStringSubmatch(u); m != nil {
			return "li_search_" + m[1]
		}
	case posting.SiteNaukri:
		if m := nkJobRe.FindStringSubmatch(u); m != nil {
			return "nk_" + m[1]
		}
	}

	return strings.ToLower(u) + "|" +
		strings.ToLower(strings.TrimSpace(p.Title)) + "|" +
		strings.ToLower(strings.TrimSpace(p.Company))
}

// IsJobPageURL reports whether the URL still looks like a job page for a
// recognized site. Used to tell "job failed to extract yet" apart from
// "navigated away".
func IsJobPageURL(rawURL string) bool {
	u := strings.TrimSpace(rawURL)
	if u == "" {
		return false
	}
	switch posting.DetectSite(u) {
	case posting.SiteLinkedIn:
		return strings.Contains(u, "/jobs/") || liSearchRe.MatchString(u)
	case posting.SiteNaukri:
		return strings.Contains(u, "/job-listings") || nkJobRe.MatchString(u)
	default:
		return false
	}
}
