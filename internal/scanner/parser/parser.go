// Package parser classifies job-related emails into lifecycle statuses and
// extracts company/title fields from unstructured text. All functions are
// pure; a text that matches nothing yields the Unknown sentinels, never an
// empty string or an error.
package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	appdomain "jobtrack-backend/internal/application/domain"
)

// Sentinels returned when extraction fails. Distinct from empty: callers use
// them to refuse record creation and to trigger the LLM fallback.
const (
	UnknownCompany = "Unknown Company"
	UnknownTitle   = "Unknown Position"
)

// statusRule pairs a pattern with the status it signals. Rules are evaluated
// in order against the lower-cased subject+body and the first match wins.
// Terminal signals (OFFER, REJECTED) come first so that boilerplate like
// "thank you for interviewing, unfortunately..." resolves to the terminal
// status rather than INTERVIEW.
type statusRule struct {
	status  appdomain.Status
	pattern *regexp.Regexp
}

var statusRules = []statusRule{
	{appdomain.StatusOffer, regexp.MustCompile(`offer letter|pleased to offer|excited to offer|congratulations|welcome to the team`)},
	{appdomain.StatusRejected, regexp.MustCompile(`thank you for your interest|unfortunately|not moving forward|not to move forward|pursue other candidates|other applicants|not selected|decided not to proceed`)},
	{appdomain.StatusInterview, regexp.MustCompile(`interview|schedule a time|your availability|coding challenge|technical screen|phone screen`)},
	{appdomain.StatusApplied, regexp.MustCompile(`application received|application was received|successfully submitted|application confirmation|thank you for applying|application has been received`)},
}

// Classify maps an email to a lifecycle status. The boolean is false when no
// rule matches, meaning the message carries no application signal.
func Classify(subject, body string) (appdomain.Status, bool) {
	content := strings.ToLower(subject + " " + body)
	for _, rule := range statusRules {
		if rule.pattern.MatchString(content) {
			return rule.status, true
		}
	}
	return "", false
}

var knownCompanyRe = regexp.MustCompile(`(?i)\b(google|amazon|microsoft|meta|facebook|apple|netflix|tesla|uber|lyft|airbnb|stripe|spotify|twitter|linkedin|salesforce|oracle|adobe|nvidia|intel|ibm|cisco|paypal|ebay|snap|pinterest)\b`)

// capitalized phrase after a linking preposition, e.g. "your interview with
// Stripe Recruiting". The capital requirement is case-sensitive on purpose.
var companyAfterPrepRe = regexp.MustCompile(`(?:^|[\s,])(?i:from|at|with|for|to)\s+([A-Z][A-Za-z0-9&.]*(?:\s+[A-Z][A-Za-z0-9&.]*)*)`)

// leading capitalized phrase followed by a job keyword, e.g.
// "Jane Street Software Engineer - Application Received" -> "Jane Street".
var leadingCompanyRe = regexp.MustCompile(`^\s*([A-Z][A-Za-z0-9&.]*(?:\s+[A-Z][A-Za-z0-9&.]*)*?)\s+(?i:software|senior|junior|staff|principal|lead|product|data|machine|frontend|backend|full|devops|sre|cloud|security|mobile|web|engineer|developer|designer|scientist|analyst|manager|intern|consultant|programmer)\b`)

var leadingCapWordRe = regexp.MustCompile(`^\s*([A-Z][A-Za-z0-9&.]{2,})\b`)

// stray common words that a capitalized-phrase heuristic can mistake for a
// company name.
var companyStopWords = map[string]bool{
	"thank": true, "thanks": true, "your": true, "you": true, "our": true,
	"re": true, "fw": true, "fwd": true, "regarding": true, "update": true,
	"application": true, "interview": true, "job": true, "position": true,
	"offer": true, "hello": true, "dear": true, "the": true, "this": true,
	"congratulations": true, "invitation": true, "team": true, "new": true,
	"opportunity": true, "next": true, "important": true, "action": true,
}

// trailing tokens trimmed off a captured company phrase: org suffixes,
// lifecycle words and title keywords that leak into the capture.
var companyTrailingWords = map[string]bool{
	"team": true, "recruiting": true, "careers": true, "jobs": true,
	"hr": true, "talent": true, "hiring": true, "application": true,
	"applications": true, "position": true, "role": true, "interview": true,
	"invitation": true, "update": true, "engineer": true, "engineering": true,
	"developer": true, "designer": true, "scientist": true, "analyst": true,
	"manager": true, "software": true, "senior": true, "junior": true,
	"data": true, "product": true, "machine": true, "learning": true,
	"intern": true, "internship": true,
}

var freeMailProviders = map[string]bool{
	"gmail": true, "googlemail": true, "yahoo": true, "hotmail": true,
	"outlook": true, "icloud": true, "aol": true, "mail": true,
	"protonmail": true, "proton": true, "live": true, "msn": true,
	"gmx": true, "zoho": true,
}

// companyStrategy is one step of the ordered extraction chain. Keeping the
// chain as an explicit slice makes the tie-break order auditable per rule.
type companyStrategy struct {
	name string
	fn   func(sender, subject, body string) string
}

var companyStrategies = []companyStrategy{
	{"known-list-subject", func(_, subject, _ string) string {
		return matchKnownCompany(subject)
	}},
	{"preposition-subject", func(_, subject, _ string) string {
		return matchCompanyAfterPrep(subject)
	}},
	{"leading-phrase-subject", func(_, subject, _ string) string {
		if m := leadingCompanyRe.FindStringSubmatch(subject); m != nil {
			return trimCompanyTail(m[1])
		}
		return ""
	}},
	{"leading-word-subject", func(_, subject, _ string) string {
		if m := leadingCapWordRe.FindStringSubmatch(subject); m != nil {
			return m[1]
		}
		return ""
	}},
	{"sender-domain", func(sender, _, _ string) string {
		return companyFromSenderDomain(sender)
	}},
	{"preposition-full", func(_, subject, body string) string {
		return matchCompanyAfterPrep(subject + " " + body)
	}},
	{"known-list-full", func(_, subject, body string) string {
		return matchKnownCompany(subject + " " + body)
	}},
}

// ExtractCompany runs the company strategy chain, first non-trivial result
// wins. Returns the UnknownCompany sentinel when every strategy fails.
func ExtractCompany(sender, subject, body string) string {
	for _, strat := range companyStrategies {
		candidate := strings.Trim(strat.fn(sender, subject, body), ".,;:!? ")
		if candidate == "" {
			continue
		}
		normalized := TitleCase(candidate)
		if companyViable(normalized) {
			return normalized
		}
	}
	return UnknownCompany
}

func companyViable(company string) bool {
	if len(company) <= 2 {
		return false
	}
	return !companyStopWords[strings.ToLower(company)]
}

func matchKnownCompany(text string) string {
	if m := knownCompanyRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

func matchCompanyAfterPrep(text string) string {
	if m := companyAfterPrepRe.FindStringSubmatch(text); m != nil {
		return trimCompanyTail(m[1])
	}
	return ""
}

// trimCompanyTail drops trailing org-suffix / lifecycle / title tokens from a
// captured phrase, e.g. "Stripe Recruiting" -> "Stripe".
func trimCompanyTail(phrase string) string {
	words := strings.Fields(phrase)
	for len(words) > 0 {
		last := strings.ToLower(strings.Trim(words[len(words)-1], ".,;:!?"))
		if !companyTrailingWords[last] {
			break
		}
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

// companyFromSenderDomain derives a company from the sender address domain,
// e.g. "careers@google.com" -> "Google". Free-mail providers are excluded.
func companyFromSenderDomain(sender string) string {
	at := strings.LastIndex(sender, "@")
	if at < 0 {
		return ""
	}
	domain := strings.Trim(sender[at+1:], "> \t")
	labels := strings.Split(strings.ToLower(domain), ".")
	if len(labels) < 2 {
		return ""
	}
	// Skip mailer subdomains like mail.example.com or careers.example.com.
	first := labels[0]
	switch first {
	case "mail", "email", "careers", "jobs", "hire", "recruiting", "notifications", "no-reply", "noreply":
		if len(labels) > 2 {
			first = labels[1]
		}
	}
	if freeMailProviders[first] || len(first) <= 2 {
		return ""
	}
	return first
}

// job-title keywords and the modifier words they may be expanded with.
var titleKeywords = map[string]bool{
	"engineer": true, "developer": true, "designer": true, "scientist": true,
	"analyst": true, "manager": true, "consultant": true, "intern": true,
	"internship": true, "programmer": true, "architect": true, "sre": true,
	"devops": true,
}

var titleModifiers = map[string]bool{
	"senior": true, "junior": true, "staff": true, "principal": true,
	"lead": true, "associate": true, "sr": true, "jr": true, "ii": true,
	"iii": true, "software": true, "data": true, "product": true,
	"machine": true, "learning": true, "frontend": true, "backend": true,
	"front": true, "back": true, "end": true, "full": true, "stack": true,
	"cloud": true, "platform": true, "security": true, "mobile": true,
	"web": true, "ui": true, "ux": true, "qa": true, "test": true,
	"research": true, "ml": true, "ai": true, "site": true,
	"reliability": true, "embedded": true, "systems": true,
}

// lifecycle words trimmed off the tail of a title candidate.
var titleTrailingWords = map[string]bool{
	"interview": true, "interviews": true, "invitation": true, "invite": true,
	"application": true, "applications": true, "received": true,
	"confirmation": true, "confirmed": true, "update": true, "status": true,
	"thank": true, "thanks": true, "you": true, "your": true, "for": true,
	"applying": true, "at": true, "with": true, "position": true,
	"role": true, "opportunity": true, "opening": true, "next": true,
	"steps": true, "schedule": true, "offer": true, "letter": true,
	"rejection": true, "decision": true,
}

// boilerplate stripped from the front of a "<Title> at <Company>" capture.
var titleLeadingWords = map[string]bool{
	"your": true, "application": true, "for": true, "re": true, "fw": true,
	"fwd": true, "the": true, "regarding": true, "about": true,
	"update": true, "on": true, "invitation": true, "interview": true,
	"to": true, "a": true, "an": true, "thank": true, "thanks": true,
	"you": true, "as": true,
}

var titleAtCompanyRe = regexp.MustCompile(`([A-Za-z][A-Za-z0-9/+#\- ]{2,}?)\s+(?i:at)\s+[A-Z]`)

var labeledTitleRe = regexp.MustCompile(`(?i)\b(?:position|role|job)\s*[:\-]\s*([A-Za-z][A-Za-z0-9/+#\- ]+)`)

var titleSeparatorRe = regexp.MustCompile(`[-–—:|(,.]`)

type titleStrategy struct {
	name string
	fn   func(subject, body string) string
}

var titleStrategies = []titleStrategy{
	{"subject-after-company", func(subject, _ string) string {
		return titleAfterLeadingCompany(subject)
	}},
	{"title-at-company", func(subject, _ string) string {
		return titleBeforeAt(subject)
	}},
	{"keyword-subject", func(subject, _ string) string {
		return expandTitleKeyword(subject)
	}},
	{"keyword-full", func(subject, body string) string {
		return expandTitleKeyword(subject + " " + body)
	}},
	{"labeled-full", func(subject, body string) string {
		if m := labeledTitleRe.FindStringSubmatch(subject + " " + body); m != nil {
			return trimTitleTail(cutAtSeparator(m[1]))
		}
		return ""
	}},
}

// ExtractTitle runs the title strategy chain, first viable candidate wins.
// Returns the UnknownTitle sentinel when every strategy fails.
func ExtractTitle(subject, body string) string {
	for _, strat := range titleStrategies {
		candidate := strings.TrimSpace(strat.fn(subject, body))
		if candidate == "" {
			continue
		}
		normalized := TitleCase(candidate)
		if titleViable(normalized) {
			return normalized
		}
	}
	return UnknownTitle
}

var bareCapWordRe = regexp.MustCompile(`^[A-Z][a-z]+$`)

// titleViable rejects short candidates and single bare capitalized words,
// which are almost always a company or a stray subject token.
func titleViable(title string) bool {
	if len(title) <= 3 {
		return false
	}
	words := strings.Fields(title)
	if len(words) == 1 && bareCapWordRe.MatchString(title) {
		return false
	}
	return true
}

// capitalized phrase at the start of the post-company remainder. Keeps the
// strategy from swallowing lowercase boilerplate like "your application for".
var capitalizedPhraseRe = regexp.MustCompile(`^((?:[A-Z][A-Za-z0-9/&+#]*\s+)*[A-Z][A-Za-z0-9/&+#]*)`)

// titleAfterLeadingCompany handles subjects shaped like
// "<Company> <Title> - <lifecycle noise>", e.g.
// "Google Software Engineer - Application Received" -> "Software Engineer".
func titleAfterLeadingCompany(subject string) string {
	m := leadingCapWordRe.FindStringSubmatchIndex(subject)
	if m == nil {
		return ""
	}
	rest := strings.TrimSpace(subject[m[3]:])
	phrase := capitalizedPhraseRe.FindString(cutAtSeparator(rest))
	return trimTitleTail(phrase)
}

func titleBeforeAt(subject string) string {
	m := titleAtCompanyRe.FindStringSubmatch(subject)
	if m == nil {
		return ""
	}
	words := strings.Fields(m[1])
	for len(words) > 0 && titleLeadingWords[strings.ToLower(words[0])] {
		words = words[1:]
	}
	return strings.Join(words, " ")
}

// expandTitleKeyword finds the first job-title keyword in the text and grows
// it leftward over adjacent modifier words, so "Senior Machine Learning
// Engineer" is captured whole rather than just "Engineer".
func expandTitleKeyword(text string) string {
	words := strings.Fields(text)
	for i, word := range words {
		normalized := strings.ToLower(strings.Trim(word, ".,;:!?()"))
		if !titleKeywords[normalized] {
			continue
		}
		start := i
		for start > 0 {
			prev := strings.ToLower(strings.Trim(words[start-1], ".,;:!?()"))
			if !titleModifiers[prev] {
				break
			}
			start--
		}
		cleaned := make([]string, 0, i-start+1)
		for _, w := range words[start : i+1] {
			cleaned = append(cleaned, strings.Trim(w, ".,;:!?()"))
		}
		return strings.Join(cleaned, " ")
	}
	return ""
}

func cutAtSeparator(text string) string {
	if loc := titleSeparatorRe.FindStringIndex(text); loc != nil {
		return strings.TrimSpace(text[:loc[0]])
	}
	return strings.TrimSpace(text)
}

func trimTitleTail(phrase string) string {
	words := strings.Fields(phrase)
	for len(words) > 0 {
		last := strings.ToLower(strings.Trim(words[len(words)-1], ".,;:!?"))
		if !titleTrailingWords[last] {
			break
		}
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

// TitleCase lower-cases text then capitalizes the first letter of each
// whitespace-delimited word. This is the canonical display form; dedup
// comparisons remain case-insensitive on top of it.
func TitleCase(text string) string {
	words := strings.Fields(strings.ToLower(text))
	for i, word := range words {
		r, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(r)) + word[size:]
	}
	return strings.Join(words, " ")
}
