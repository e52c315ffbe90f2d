package utils

import (
	"regexp"
	"strings"

	"github.com/taxdesk/docintel/dto"
)

// UnknownDocumentType is the classification default when no catalog
// entry matches.
const UnknownDocumentType = "Unknown"

type sectionPattern struct {
	re      *regexp.Regexp
	docType string
	section string
}

// sectionCatalog maps Income-Tax Act section signatures to document
// types. Evaluated linearly in this order: every matching entry
// contributes its section label, and the first match decides the
// document type. Patterns are case-insensitive and tolerate arbitrary
// whitespace around parenthesised sub-sections.
var sectionCatalog = []sectionPattern{
	{regexp.MustCompile(`(?i)section\s*143\s*\(\s*1\s*\)`), "Intimation", "143(1)"},
	{regexp.MustCompile(`(?i)section\s*143\s*\(\s*2\s*\)`), "Scrutiny Notice", "143(2)"},
	{regexp.MustCompile(`(?i)section\s*143\s*\(\s*3\s*\)`), "Assessment Order", "143(3)"},
	{regexp.MustCompile(`(?i)section\s*144\b`), "Best Judgment Assessment", "144"},
	{regexp.MustCompile(`(?i)section\s*147\b`), "Income Escaping Assessment", "147"},
	{regexp.MustCompile(`(?i)section\s*148\b`), "Reassessment Notice", "148"},
	{regexp.MustCompile(`(?i)section\s*148A\b`), "Show Cause Notice", "148A"},
	{regexp.MustCompile(`(?i)section\s*154\b`), "Rectification Order", "154"},
	{regexp.MustCompile(`(?i)section\s*156\b`), "Demand Notice", "156"},
	{regexp.MustCompile(`(?i)section\s*245\b`), "Refund Adjustment Intimation", "245"},
	{regexp.MustCompile(`(?i)section\s*246A\b`), "Appeal", "246A"},
	{regexp.MustCompile(`(?i)section\s*250\b`), "Appellate Order", "250"},
	{regexp.MustCompile(`(?i)section\s*254\b`), "ITAT Order", "254"},
	{regexp.MustCompile(`(?i)section\s*263\b`), "Revision Order", "263"},
	{regexp.MustCompile(`(?i)section\s*264\b`), "Revision Order", "264"},
	{regexp.MustCompile(`(?i)section\s*271\b`), "Penalty Notice", "271"},
	{regexp.MustCompile(`(?i)section\s*274\b`), "Penalty Show Cause Notice", "274"},
}

// panRe matches the 10-character PAN format: 5 letters, 4 digits, 1 letter.
var panRe = regexp.MustCompile(`\b[A-Z]{5}[0-9]{4}[A-Z]\b`)

// assessmentYearRe matches "A.Y." / "AY" / "Assessment Year" followed
// by a YYYY-YY or YYYY-YYYY range; the hyphen may be an en-dash.
var assessmentYearRe = regexp.MustCompile(`(?i)\b(?:assessment\s+year|a\.?\s*y\.?)\s*[:.\-]?\s*((?:19|20)\d{2}\s*[-–]\s*\d{2}(?:\d{2})?)`)

// incomeTaxKeywords back the composite "is this an Income-Tax document"
// heuristic; two or more hits qualify even without a section match.
var incomeTaxKeywords = []*regexp.Regexp{
	regexp.MustCompile(`(?i)income[\s-]*tax`),
	regexp.MustCompile(`(?i)assessing\s+officer`),
	regexp.MustCompile(`(?i)centralized\s+processing\s+cent(?:re|er)|cpc[,\s]+bengaluru`),
	regexp.MustCompile(`(?i)central\s+board\s+of\s+direct\s+taxes|\bcbdt\b`),
	regexp.MustCompile(`(?i)total\s+income`),
	regexp.MustCompile(`(?i)assessment\s+year`),
	regexp.MustCompile(`(?i)permanent\s+account\s+number`),
	regexp.MustCompile(`(?i)notice\s+of\s+demand`),
	regexp.MustCompile(`(?i)return\s+of\s+income|\bitr\b`),
	regexp.MustCompile(`(?i)e-?filing`),
}

// DIN appears either behind a label or as a bare ITBA reference.
var (
	dinLabelRe = regexp.MustCompile(`(?i)\b(?:din\b|document\s+identification\s+n(?:o\b|umber\b)\.?)\s*[:\-]?\s*([A-Z0-9]+(?:/[A-Z0-9().\-]+)+)`)
	dinITBARe  = regexp.MustCompile(`\bITBA(?:/[A-Z0-9().\-]+)+`)
	yearSpace  = regexp.MustCompile(`\s+`)
)

// ClassifyText matches text against the Income-Tax section catalog and
// entity patterns. Pure function: empty input yields the all-default
// classification, never an error.
func ClassifyText(text string) dto.DocumentClassification {
	result := dto.DocumentClassification{
		Sections:        []string{},
		DocumentType:    UnknownDocumentType,
		PANNumbers:      []string{},
		AssessmentYears: []string{},
		DINNumbers:      []string{},
	}
	if text == "" {
		return result
	}

	for _, entry := range sectionCatalog {
		if entry.re.MatchString(text) {
			result.Sections = append(result.Sections, entry.section)
			if result.DocumentType == UnknownDocumentType {
				result.DocumentType = entry.docType
			}
		}
	}

	result.PANNumbers = dedupe(panRe.FindAllString(text, -1))

	for _, m := range assessmentYearRe.FindAllStringSubmatch(text, -1) {
		year := yearSpace.ReplaceAllString(m[1], "")
		result.AssessmentYears = appendUnique(result.AssessmentYears, year)
	}

	result.DINNumbers = ExtractDINs(text)

	keywordHits := 0
	for _, re := range incomeTaxKeywords {
		if re.MatchString(text) {
			keywordHits++
		}
	}
	result.IsIncomeTaxDocument = len(result.Sections) > 0 || keywordHits >= 2

	return result
}

// ExtractDINs returns Document Identification Numbers found in text,
// deduplicated in first-seen order.
func ExtractDINs(text string) []string {
	dins := []string{}
	for _, m := range dinLabelRe.FindAllStringSubmatch(text, -1) {
		dins = appendUnique(dins, strings.ToUpper(m[1]))
	}
	for _, m := range dinITBARe.FindAllString(text, -1) {
		dins = appendUnique(dins, strings.ToUpper(m))
	}
	return dins
}

func dedupe(values []string) []string {
	out := []string{}
	for _, v := range values {
		out = appendUnique(out, v)
	}
	return out
}

func appendUnique(values []string, v string) []string {
	for _, existing := range values {
		if existing == v {
			return values
		}
	}
	return append(values, v)
}
