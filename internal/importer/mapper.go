package importer

import (
	"math"
	"strconv"
	"strings"
	"time"

	"cardvault/pkg/models"
)

// MapRow turns one RawRow plus a ColumnMapping into exactly one
// CandidateCard. It never fails: any unreadable field degrades to its
// documented default, and validation is deferred to the batch importer.
func MapRow(row models.RawRow, mapping models.ColumnMapping) models.CandidateCard {
	get := func(field string) string {
		col, ok := mapping[field]
		if !ok {
			return ""
		}
		return strings.TrimSpace(row[col])
	}

	// Best free-text source for extractor fallbacks, in priority order:
	// listing title, card name, then the notes/features column.
	freeText := get(models.FieldTitle)
	if freeText == "" {
		freeText = get(models.FieldCardName)
	}
	if freeText == "" {
		freeText = get(models.FieldNotes)
	}

	var c models.CandidateCard

	c.PlayerName = get(models.FieldPlayerName)
	if c.PlayerName == "" {
		if name, ok := ExtractPlayerName(firstNonEmpty(get(models.FieldTitle), get(models.FieldCardName))); ok {
			c.PlayerName = name
		}
	}
	if c.PlayerName == "" {
		c.PlayerName = models.UnknownPlayer
	}

	c.Sport = resolveSport(get(models.FieldSport), freeText)
	c.Year = resolveYear(get(models.FieldYear), freeText)
	c.Condition = resolveCondition(get(models.FieldCondition), freeText)

	c.Brand = get(models.FieldBrand)
	c.CardSet = get(models.FieldCardSet)
	if c.Brand == "" {
		if brand, set, ok := ExtractBrand(freeText); ok {
			c.Brand = brand
			if c.CardSet == "" {
				c.CardSet = set
			}
		}
	}

	c.CardNumber = strings.TrimPrefix(get(models.FieldCardNumber), "#")
	if c.CardNumber == "" {
		if num, ok := ExtractCardNumber(freeText); ok {
			c.CardNumber = num
		}
	}

	c.Team = get(models.FieldTeam)
	c.Notes = get(models.FieldNotes)

	c.FrontImageURL, c.BackImageURL = splitImageURLs(get(models.FieldImageURL))
	if front := get(models.FieldFrontImage); c.FrontImageURL == "" && looksLikeURL(front) {
		c.FrontImageURL = front
	}
	if back := get(models.FieldBackImage); c.BackImageURL == "" && looksLikeURL(back) {
		c.BackImageURL = back
	}

	// Prices come only from mapped columns in the bulk path; free text is
	// not consulted (the text-line importer differs on purpose).
	c.PurchasePrice = parseMoney(get(models.FieldPurchasePrice))
	c.CurrentValue = parseMoney(get(models.FieldCurrentValue))

	return c
}

func resolveSport(cell, freeText string) models.Sport {
	if s, ok := ExtractSport(cell); ok {
		return s
	}
	if s, ok := ExtractSport(freeText); ok {
		return s
	}
	return models.DefaultSport
}

func resolveYear(cell, freeText string) int {
	if y, ok := ExtractYear(cell); ok {
		return y
	}
	if y, ok := ExtractYear(freeText); ok {
		return y
	}
	return currentYear()
}

func currentYear() int { return time.Now().Year() }

func resolveCondition(cell, freeText string) models.Condition {
	if c, ok := ExtractCondition(cell); ok {
		return c
	}
	if c, ok := ExtractCondition(freeText); ok {
		return c
	}
	return models.DefaultCondition
}

// splitImageURLs handles a single column holding pipe-delimited URLs: the
// first surviving segment is the front image, the second the back.
func splitImageURLs(raw string) (front, back string) {
	if raw == "" {
		return "", ""
	}
	var urls []string
	for _, seg := range strings.Split(raw, "|") {
		if seg = strings.TrimSpace(seg); seg != "" {
			urls = append(urls, seg)
		}
	}
	if len(urls) > 0 {
		front = urls[0]
	}
	if len(urls) > 1 {
		back = urls[1]
	}
	return front, back
}

func looksLikeURL(s string) bool {
	return strings.Contains(s, "http://") || strings.Contains(s, "https://")
}

// parseMoney coerces a cell to a non-negative amount, defaulting to 0 on
// any parse failure.
func parseMoney(raw string) float64 {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
	raw = strings.ReplaceAll(raw, ",", "")
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
