package importer

import (
	"regexp"
	"strconv"
	"strings"

	"cardvault/pkg/models"
)

// Field extractors pull one card attribute out of free text (a listing
// title, a "Card Name" cell, or a full description line). Each is a pure
// best-effort function: the second return value reports whether anything
// was found, and callers fall back to documented defaults on a miss.

var (
	yearRe       = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	cardNumberRe = regexp.MustCompile(`#(\d+)`)
	priceRe      = regexp.MustCompile(`\$(\d+(?:\.\d{1,2})?)`)
)

// ExtractYear returns the first 4-digit token in 1900–2099. Range strings
// like "2023-2024" therefore resolve to the first season.
func ExtractYear(s string) (int, bool) {
	m := yearRe.FindString(s)
	if m == "" {
		return 0, false
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return year, true
}

// ExtractCardNumber returns the digits following a '#' token.
func ExtractCardNumber(s string) (string, bool) {
	m := cardNumberRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ExtractPrice returns the value of the first $-prefixed decimal token.
func ExtractPrice(s string) (float64, bool) {
	m := priceRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// nameStopwords are capitalized tokens that look like proper-name parts but
// belong to brand, set, grading, or hobby vocabulary. A capitalized pair
// containing any of them is skipped so "1996 Fleer Ultra Michael Jordan"
// resolves to "Michael Jordan" rather than "Fleer Ultra".
var nameStopwords = map[string]struct{}{
	"Topps": {}, "Panini": {}, "Fleer": {}, "Upper": {}, "Deck": {},
	"Bowman": {}, "Donruss": {}, "Chrome": {}, "Prizm": {}, "Ultra": {},
	"Select": {}, "Mosaic": {}, "Optic": {}, "Finest": {}, "Heritage": {},
	"Stadium": {}, "Club": {},
	"Gem": {}, "Mint": {}, "Near": {}, "Grade": {}, "Graded": {},
	"Rookie": {}, "Card": {}, "Base": {}, "Insert": {}, "Refractor": {},
}

var capitalizedWordRe = regexp.MustCompile(`^[A-Z][a-z]+[,.]?$`)

// ExtractPlayerName matches two consecutive capitalized words as a
// proper-name heuristic, walking every adjacent token pair so a name is
// found even right after a skipped brand word. If no acceptable pair
// exists it falls back to the first two whitespace-separated tokens.
func ExtractPlayerName(s string) (string, bool) {
	fields := strings.Fields(s)
	for i := 0; i+1 < len(fields); i++ {
		first := strings.Trim(fields[i], ",.")
		second := strings.Trim(fields[i+1], ",.")
		if !capitalizedWordRe.MatchString(fields[i]) || !capitalizedWordRe.MatchString(fields[i+1]) {
			continue
		}
		if _, skip := nameStopwords[first]; skip {
			continue
		}
		if _, skip := nameStopwords[second]; skip {
			continue
		}
		return first + " " + second, true
	}

	if len(fields) >= 2 {
		return fields[0] + " " + fields[1], true
	}
	if len(fields) == 1 {
		return fields[0], true
	}
	return "", false
}

// conditionPatterns is checked in order; the first match wins. Order
// matters: later patterns can be substrings of earlier ones (plain "mint"
// must come after "near mint" and the PSA 10 row).
var conditionPatterns = []struct {
	re   *regexp.Regexp
	cond models.Condition
}{
	{regexp.MustCompile(`(?i)\bpsa[\s-]*10\b|gem[\s-]*m(?:in)?t`), models.ConditionMint},
	{regexp.MustCompile(`(?i)\bpsa[\s-]*9(?:\.5)?\b|\bbgs[\s-]*9(?:\.5)?\b|\bnm[\s-]*mt\b|near[\s-]*mint|\bnm\b`), models.ConditionNearMint},
	{regexp.MustCompile(`(?i)\bpsa[\s-]*8\b|\bexcellent\b|\bex\b`), models.ConditionExcellent},
	{regexp.MustCompile(`(?i)\bpsa[\s-]*[67]\b|very[\s-]*good|\bvg\b`), models.ConditionVeryGood},
	{regexp.MustCompile(`(?i)\bpsa[\s-]*[45]\b|\bgood\b`), models.ConditionGood},
	{regexp.MustCompile(`(?i)\bpsa[\s-]*[123]\b|\bfair\b`), models.ConditionFair},
	{regexp.MustCompile(`(?i)\bpsa[\s-]*0\b|\bpoor\b`), models.ConditionPoor},
	{regexp.MustCompile(`(?i)\bmint\b`), models.ConditionMint},
}

// ExtractCondition tests the string against the ordered grading table,
// covering synonyms and PSA/BGS shorthand.
func ExtractCondition(s string) (models.Condition, bool) {
	for _, p := range conditionPatterns {
		if p.re.MatchString(s) {
			return p.cond, true
		}
	}
	return "", false
}

var sportPatterns = []struct {
	re    *regexp.Regexp
	sport models.Sport
}{
	{regexp.MustCompile(`(?i)\bbasketball\b|\bnba\b|\bhoops\b`), models.SportBasketball},
	{regexp.MustCompile(`(?i)\bbaseball\b|\bmlb\b|\bdiamond\b`), models.SportBaseball},
	{regexp.MustCompile(`(?i)\bfootball\b|\bnfl\b|\bgridiron\b`), models.SportFootball},
	{regexp.MustCompile(`(?i)\bhockey\b|\bnhl\b|\bpuck\b`), models.SportHockey},
	{regexp.MustCompile(`(?i)\bsoccer\b|\bfifa\b|\bmls\b`), models.SportSoccer},
}

// ExtractSport tests the string against the sport keyword table; the first
// match wins.
func ExtractSport(s string) (models.Sport, bool) {
	for _, p := range sportPatterns {
		if p.re.MatchString(s) {
			return p.sport, true
		}
	}
	return "", false
}

var (
	brandRe = regexp.MustCompile(`(?i)\b(topps|panini|fleer|upper deck|bowman|donruss)\b`)
	setRe   = regexp.MustCompile(`^\s*([A-Z][a-z]+)\b`)

	canonicalBrands = map[string]string{
		"topps":      "Topps",
		"panini":     "Panini",
		"fleer":      "Fleer",
		"upper deck": "Upper Deck",
		"bowman":     "Bowman",
		"donruss":    "Donruss",
	}
)

// ExtractBrand matches the fixed manufacturer vocabulary, case-insensitive.
// A capitalized word immediately after the brand is interpreted as the
// card-set name ("Fleer Ultra" -> brand Fleer, set Ultra).
func ExtractBrand(s string) (brand, set string, ok bool) {
	loc := brandRe.FindStringIndex(s)
	if loc == nil {
		return "", "", false
	}

	brand = canonicalBrands[strings.ToLower(s[loc[0]:loc[1]])]
	if m := setRe.FindStringSubmatch(s[loc[1]:]); m != nil {
		set = m[1]
	}
	return brand, set, true
}
