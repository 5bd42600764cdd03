package posting

// Selector cascades per site, evaluated in priority order with the first
// non-empty text winning. Site markup shifts often; updating a cascade is a
// data change only.
type siteSelectors struct {
	title       []string
	company     []string
	location    []string
	description []string
}

var linkedinSelectors = siteSelectors{
	title: []string{
		".job-details-jobs-unified-top-card__job-title h1",
		".job-details-jobs-unified-top-card__job-title",
		".jobs-unified-top-card__job-title",
		"h1.t-24",
		".top-card-layout__title",
	},
	company: []string{
		".job-details-jobs-unified-top-card__company-name a",
		".job-details-jobs-unified-top-card__company-name",
		".jobs-unified-top-card__company-name",
		".topcard__org-name-link",
	},
	location: []string{
		".job-details-jobs-unified-top-card__primary-description-container span",
		".jobs-unified-top-card__bullet",
		".topcard__flavor--bullet",
	},
	description: []string{
		".jobs-description__content",
		".jobs-description-content__text",
		"#job-details",
		".description__text",
	},
}

var naukriSelectors = siteSelectors{
	title: []string{
		".styles_jd-header-title__rZwM1",
		"h1[class*='jd-header-title']",
		".jd-header-title",
	},
	company: []string{
		".styles_jd-header-comp-name__MvqAI a",
		"[class*='jd-header-comp-name'] a",
		".jd-header-comp-name",
	},
	location: []string{
		".styles_jhc__location__W_pVs",
		"[class*='jhc__location']",
		".loc",
	},
	description: []string{
		".styles_JDC__dang-inner-html__h0K4t",
		"[class*='dang-inner-html']",
		".job-desc",
		".dang-inner-html",
	},
}

// Generic fallback: structural heuristics rather than site classes.
var genericSelectors = siteSelectors{
	title: []string{
		"h1",
		"[class*='job-title']",
		"[class*='jobtitle']",
		"h2",
	},
	company: []string{
		"[itemprop='hiringOrganization']",
		"[class*='company-name']",
		"[class*='company']",
		"meta[property='og:site_name']",
	},
	location: []string{
		"[itemprop='jobLocation']",
		"[class*='job-location']",
		"[class*='location']",
	},
	description: []string{
		"[class*='job-description']",
		"[class*='jobdescription']",
		"[itemprop='description']",
		"[class*='description']",
		"article",
		"main",
	},
}

func selectorsFor(site Site) siteSelectors {
	switch site {
	case SiteLinkedIn:
		return linkedinSelectors
	case SiteNaukri:
		return naukriSelectors
	default:
		return genericSelectors
	}
}

// Boilerplate containers removed before measuring description candidates.
var boilerplateSelectors = []string{
	"script", "style", "noscript", "nav", "header", "footer", "aside",
	"[class*='navbar']", "[class*='sidebar']", "[class*='cookie']",
	"[class*='banner']",
}
