package answer

import (
	"fmt"
	"regexp"
)

// legalTerms maps common legal jargon to a plain-language gloss appended in
// brackets after the term. Order matters only for output stability.
var legalTerms = []struct {
	term  string
	gloss string
}{
	{"mutatis mutandis", "with necessary changes"},
	{"prima facie", "at first glance / on the surface"},
	{"ipso facto", "by that very fact / automatically"},
	{"bona fide", "genuine / in good faith"},
	{"caveat", "warning / condition"},
	{"suo moto", "on its own / without being asked"},
	{"ad hoc", "temporary / for this specific purpose"},
	{"quorum", "minimum number of members needed"},
	{"resolution", "official decision"},
	{"bylaws", "society rules"},
	{"AGM", "Annual General Meeting (yearly meeting of all members)"},
	{"nominee", "person appointed to represent"},
	{"proxy", "someone authorized to vote on your behalf"},
	{"arrears", "unpaid dues / pending payments"},
	{"audit", "official checking of accounts"},
}

type glossRule struct {
	term      string
	gloss     string
	match     *regexp.Regexp
	explained *regexp.Regexp
}

var glossRules = buildGlossRules()

func buildGlossRules() []glossRule {
	rules := make([]glossRule, len(legalTerms))
	for i, lt := range legalTerms {
		// Whole words only, so "audit" leaves "audited" alone.
		quoted := `\b` + regexp.QuoteMeta(lt.term) + `\b`
		rules[i] = glossRule{
			term:  lt.term,
			gloss: lt.gloss,
			match: regexp.MustCompile(`(?i)` + quoted),
			// Term already followed by a bracketed explanation.
			explained: regexp.MustCompile(`(?i)` + quoted + `\s*\([^)]*\)`),
		}
	}
	return rules
}

// SimplifyLegalTerms appends a plain-language gloss in brackets after each
// known legal term in text. Terms that already carry a bracketed explanation
// are left alone, so the function is idempotent.
func SimplifyLegalTerms(text string) string {
	out := text
	for _, r := range glossRules {
		if r.explained.MatchString(out) {
			continue
		}
		out = r.match.ReplaceAllStringFunc(out, func(found string) string {
			return fmt.Sprintf("%s (%s)", found, r.gloss)
		})
	}
	return out
}
