package importer

import (
	"context"
	"strings"

	"cardvault/pkg/models"
)

// ParseTextLines parses a freeform blob with one card description per line.
// Every extractor runs independently against the line; the line itself is
// kept verbatim as notes. Prices stay at 0 here — the text path does not
// guess values.
func ParseTextLines(text string) []models.CandidateCard {
	var out []models.CandidateCard
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, candidateFromLine(line))
	}
	return out
}

// ImportText runs the text-line pipeline and feeds the same per-row
// persistence contract as the column-mapped batch.
func ImportText(ctx context.Context, creator CardCreator, text string) models.ImportReport {
	return PersistCandidates(ctx, creator, ParseTextLines(text))
}

func candidateFromLine(line string) models.CandidateCard {
	c := models.CandidateCard{
		Sport:     models.DefaultSport,
		Condition: models.DefaultCondition,
		Year:      currentYear(),
		Notes:     line,
	}

	if name, ok := ExtractPlayerName(line); ok {
		c.PlayerName = name
	} else {
		c.PlayerName = models.UnknownPlayer
	}
	if year, ok := ExtractYear(line); ok {
		c.Year = year
	}
	if cond, ok := ExtractCondition(line); ok {
		c.Condition = cond
	}
	if sport, ok := ExtractSport(line); ok {
		c.Sport = sport
	}
	if brand, set, ok := ExtractBrand(line); ok {
		c.Brand = brand
		c.CardSet = set
	}
	if num, ok := ExtractCardNumber(line); ok {
		c.CardNumber = num
	}

	return c
}
