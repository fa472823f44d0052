package importer

import (
	"context"
	"strings"

	"cardvault/pkg/models"
)

// eBay export column vocabulary (fixed by eBay's seller file format).
const (
	ebayColTitle       = "Title"
	ebayColConditionID = "ConditionID"
	ebayColPlayer      = "C:Player/Athlete"
	ebayColSport       = "C:Sport"
	ebayColYear        = "C:Year Manufactured"
	ebayColBrand       = "C:Manufacturer"
	ebayColSet         = "C:Set"
	ebayColCardNumber  = "C:Card Number"
	ebayColTeam        = "C:Team"
	ebayColPicURL      = "PicURL"
	ebayColPrice       = "StartPrice"
)

// ebayConditions maps eBay numeric condition IDs to card grades. This table
// is separate from the free-text grading table on purpose: the IDs describe
// listing condition, not grading-service shorthand.
var ebayConditions = map[string]models.Condition{
	"1000": models.ConditionNew,       // New
	"1500": models.ConditionNew,       // New other
	"2750": models.ConditionNearMint,  // Like New
	"3000": models.ConditionExcellent, // Used
	"4000": models.ConditionVeryGood,  // Very Good
	"5000": models.ConditionGood,      // Good
	"6000": models.ConditionFair,      // Acceptable
	"7000": models.ConditionPoor,      // For parts or not working
}

// MapEBayRow normalizes one row of an eBay export. Structured C: columns
// win; blanks fall back to free-text extraction from the Title.
func MapEBayRow(row models.RawRow) models.CandidateCard {
	get := func(col string) string { return strings.TrimSpace(row[col]) }
	title := get(ebayColTitle)

	var c models.CandidateCard

	c.PlayerName = get(ebayColPlayer)
	if c.PlayerName == "" {
		if name, ok := ExtractPlayerName(title); ok {
			c.PlayerName = name
		} else {
			c.PlayerName = models.UnknownPlayer
		}
	}

	c.Sport = resolveSport(get(ebayColSport), title)
	c.Year = resolveYear(get(ebayColYear), title)

	c.Brand = get(ebayColBrand)
	c.CardSet = get(ebayColSet)
	if c.Brand == "" {
		if brand, set, ok := ExtractBrand(title); ok {
			c.Brand = brand
			if c.CardSet == "" {
				c.CardSet = set
			}
		}
	}

	c.CardNumber = strings.TrimPrefix(get(ebayColCardNumber), "#")
	if c.CardNumber == "" {
		if num, ok := ExtractCardNumber(title); ok {
			c.CardNumber = num
		}
	}

	c.Team = get(ebayColTeam)
	c.Notes = title

	if cond, ok := ebayConditions[get(ebayColConditionID)]; ok {
		c.Condition = cond
	} else {
		c.Condition = resolveCondition("", title)
	}

	c.FrontImageURL, c.BackImageURL = splitImageURLs(get(ebayColPicURL))
	c.CurrentValue = parseMoney(get(ebayColPrice))

	return c
}

// ImportEBayRows runs the eBay mapping over a parsed export and persists
// the results through the shared batch contract.
func ImportEBayRows(ctx context.Context, creator CardCreator, rows []models.RawRow) models.ImportReport {
	candidates := make([]models.CandidateCard, 0, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(row[ebayColTitle]) == "" && strings.TrimSpace(row[ebayColPicURL]) == "" {
			continue
		}
		candidates = append(candidates, MapEBayRow(row))
	}
	return PersistCandidates(ctx, creator, candidates)
}
