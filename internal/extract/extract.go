// Package extract implements the heuristic field extraction applied to the
// text layer of an ingested delivery document. All matching is pure and
// deterministic; a field that cannot be found is nil, never an error.
package extract

import (
	"regexp"
	"strings"
)

// Result holds the structured fields recovered from unstructured text.
type Result struct {
	ZRD     *string
	Contact *string
	Address *string
}

// A matcher is one independent extraction strategy for a single field.
// It returns nil when the strategy does not apply to the text.
type matcher func(text string) *string

// Per-field strategies, tried in order; the first match wins.
var (
	zrdMatchers     = []matcher{matchLabeledZRD}
	contactMatchers = []matcher{matchLabeledContact}
	addressMatchers = []matcher{matchPostalCodeLine, matchStreetPattern}
)

// Fields runs all field strategies against the text.
func Fields(text string) Result {
	return Result{
		ZRD:     firstMatch(text, zrdMatchers),
		Contact: firstMatch(text, contactMatchers),
		Address: firstMatch(text, addressMatchers),
	}
}

func firstMatch(text string, matchers []matcher) *string {
	for _, m := range matchers {
		if v := m(text); v != nil {
			return v
		}
	}
	return nil
}

// Labeled ZRD token: "ZRD-4471", "ZRD: AB-99", "zrd 123456".
var zrdRe = regexp.MustCompile(`(?i)\bZRD[-:]?\s*([A-Za-z0-9][A-Za-z0-9-]{2,29})`)

func matchLabeledZRD(text string) *string {
	m := zrdRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return &m[1]
}

// Labeled contact name. The 80-char bound and the character class are kept
// exactly as the shipped heuristic had them; the class is digit-free, so the
// capture stops at house numbers following the name.
var contactRe = regexp.MustCompile(`(?i)\b(?:Ansprechpartner|Kontaktperson|Kontakt|Contact)[:\s]*([\p{L}][\p{L} .'-]{2,79})`)

func matchLabeledContact(text string) *string {
	m := contactRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	name := strings.TrimSpace(m[1])
	if name == "" {
		return nil
	}
	return &name
}

// A standalone five-digit token, treated as a postal code.
var postalCodeRe = regexp.MustCompile(`\b\d{5}\b`)

// matchPostalCodeLine returns the first line containing a postal code.
// Postal codes rarely appear outside addresses, and documents typically put
// the full address on one line, so this is the primary strategy.
func matchPostalCodeLine(text string) *string {
	for _, line := range strings.Split(text, "\n") {
		if postalCodeRe.MatchString(line) {
			trimmed := strings.TrimSpace(line)
			return &trimmed
		}
	}
	return nil
}

// Loose whole-text street pattern: street words, house number with optional
// letter, comma, postal code, city words. Tolerates addresses broken up by
// formatting artifacts of the text extraction.
var streetRe = regexp.MustCompile(`[\p{L}][\p{L} .-]*\s\d{1,4}[A-Za-z]?\s*,\s*\d{5}\s+[\p{L}][\p{L} -]*`)

func matchStreetPattern(text string) *string {
	m := streetRe.FindString(text)
	if m == "" {
		return nil
	}
	trimmed := strings.TrimSpace(m)
	return &trimmed
}
