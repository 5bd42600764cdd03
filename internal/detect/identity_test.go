package detect

import (
	"testing"

	"joblens/internal/posting"
)

func TestIdentity_LinkedInSearchStableAcrossFieldDrift(t *testing.T) {
	url := "https://www.linkedin.com/jobs/search/?currentJobId=12345&keywords=go"

	first := posting.Posting{Site: posting.SiteLinkedIn, URL: url, Title: "Backend Engineer", Company: ""}
	second := posting.Posting{Site: posting.SiteLinkedIn, URL: url, Title: "Backend Engineer at Acme", Company: "Acme"}

	a, b := Identity(first), Identity(second)
	if a != "li_search_12345" {
		t.Fatalf("identity: got %q", a)
	}
	if a != b {
		t.Fatalf("identity must survive header field drift: %q vs %q", a, b)
	}
}

func TestIdentity_LinkedInViewBeatsSearch(t *testing.T) {
	p := posting.Posting{
		Site: posting.SiteLinkedIn,
		URL:  "https://www.linkedin.com/jobs/view/999?currentJobId=12345",
	}
	if got := Identity(p); got != "li_view_999" {
		t.Fatalf("got %q, want li_view_999", got)
	}
}

func TestIdentity_Naukri(t *testing.T) {
	p := posting.Posting{
		Site: posting.SiteNaukri,
		URL:  "https://www.naukri.com/job-listings-backend-engineer-acme-654321?src=search",
	}
	if got := Identity(p); got != "nk_654321" {
		t.Fatalf("got %q, want nk_654321", got)
	}
}

func TestIdentity_CompositeFallback(t *testing.T) {
	p := posting.Posting{
		Site:    posting.SiteGeneric,
		URL:     "https://Example.com/Jobs/1",
		Title:   " Engineer ",
		Company: "Acme",
	}
	if got := Identity(p); got != "https://example.com/jobs/1|engineer|acme" {
		t.Fatalf("got %q", got)
	}

	// Without a native id, any field drift changes the identity.
	p.Company = "Acme Corp"
	if Identity(p) == "https://example.com/jobs/1|engineer|acme" {
		t.Fatalf("composite identity must change when a field drifts")
	}
}

func TestIsJobPageURL(t *testing.T) {
	cases := []struct {
		url  string
		want bool
	}{
		{"https://www.linkedin.com/jobs/view/12345", true},
		{"https://www.linkedin.com/feed/?currentJobId=12345", true},
		{"https://www.linkedin.com/feed/", false},
		{"https://www.naukri.com/job-listings-backend-123456", true},
		{"https://www.naukri.com/", false},
		{"https://example.com/jobs/1", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsJobPageURL(tc.url); got != tc.want {
			t.Fatalf("IsJobPageURL(%q) = %t, want %t", tc.url, got, tc.want)
		}
	}
}
