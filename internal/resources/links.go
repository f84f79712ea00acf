// Package resources maps question topics to official government portals so
// answers can point users at the authoritative source.
package resources

import "strings"

// Link is one official resource.
type Link struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Group is a titled set of links for one topic.
type Group struct {
	Title string `json:"title"`
	Links []Link `json:"links"`
}

var registration = Group{
	Title: "Society Registration",
	Links: []Link{
		{
			Name:        "Maharashtra State Cooperative Department",
			URL:         "https://cooperation.maharashtra.gov.in/",
			Description: "Official portal for cooperative societies registration",
		},
		{
			Name:        "Online Registration Portal",
			URL:         "https://cooperatives.maharashtra.gov.in/",
			Description: "Apply for new society registration online",
		},
	},
}

var audit = Group{
	Title: "Audit & Compliance",
	Links: []Link{
		{
			Name:        "Audit Guidelines",
			URL:         "https://cooperation.maharashtra.gov.in/content/audit",
			Description: "Official audit procedures and requirements",
		},
	},
}

var disputes = Group{
	Title: "Dispute Resolution",
	Links: []Link{
		{
			Name:        "Cooperative Court",
			URL:         "https://cooperation.maharashtra.gov.in/content/cooperative-court",
			Description: "File disputes and check case status",
		},
	},
}

var forms = Group{
	Title: "Forms & Documents",
	Links: []Link{
		{
			Name:        "Download Forms",
			URL:         "https://cooperation.maharashtra.gov.in/content/forms",
			Description: "All official forms for societies",
		},
	},
}

var general = Group{
	Title: "General Information",
	Links: []Link{
		{
			Name:        "MCS Act Full Text",
			URL:         "https://cooperation.maharashtra.gov.in/content/acts",
			Description: "Read the complete MCS Act online",
		},
		{
			Name:        "FAQs",
			URL:         "https://cooperation.maharashtra.gov.in/content/faqs",
			Description: "Frequently asked questions",
		},
	},
}

// topics pairs each group with the keywords that select it.
var topics = []struct {
	group    Group
	keywords []string
}{
	{registration, []string{"register", "registration", "form society", "start society", "new society", "forming", "formation"}},
	{audit, []string{"audit", "accounts", "financial", "auditor", "accounting", "books"}},
	{disputes, []string{"dispute", "conflict", "court", "case", "litigation", "arbitration", "complaint", "legal action"}},
	{forms, []string{"form", "application", "document", "download", "file", "submit"}},
}

// RelevantLinks returns the resource groups matching the question and the
// retrieved context. Matching is keyword-based and case-insensitive. When no
// topic matches, the general group is returned so the user always gets
// something useful.
func RelevantLinks(question, context string) []Group {
	combined := strings.ToLower(question) + " " + strings.ToLower(context)

	var groups []Group
	for _, t := range topics {
		for _, kw := range t.keywords {
			if strings.Contains(combined, kw) {
				groups = append(groups, t.group)
				break
			}
		}
	}
	if len(groups) == 0 {
		groups = append(groups, general)
	}
	return groups
}
