package importer

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"cardvault/pkg/models"
)

// CardCreator is the persistence collaborator of the batch importer.
type CardCreator interface {
	Create(ctx context.Context, c models.CandidateCard) (models.Card, error)
}

// ImportRows drives the row mapper over every raw row with per-row
// isolation: one row's failure never aborts the batch. A nil mapping means
// the default template columns.
func ImportRows(ctx context.Context, creator CardCreator, rows []models.RawRow, mapping models.ColumnMapping) models.ImportReport {
	if mapping == nil {
		mapping = models.DefaultColumnMapping()
	}

	candidates := make([]models.CandidateCard, 0, len(rows))
	for _, row := range rows {
		if !worthMapping(row, mapping) {
			continue
		}
		candidates = append(candidates, MapRow(row, mapping))
	}

	return PersistCandidates(ctx, creator, candidates)
}

// PersistCandidates validates and persists every candidate, dispatching to
// the store concurrently. Results keep input order (pinned by index, not by
// completion), and persistence errors are recorded per row.
func PersistCandidates(ctx context.Context, creator CardCreator, candidates []models.CandidateCard) models.ImportReport {
	results := make([]models.ImportResult, len(candidates))

	var wg sync.WaitGroup
	for i, cand := range candidates {
		wg.Add(1)
		go func(i int, cand models.CandidateCard) {
			defer wg.Done()
			results[i] = persistOne(ctx, creator, i, cand)
		}(i, cand)
	}
	wg.Wait()

	report := models.ImportReport{Results: results}
	report.Summarize()
	return report
}

func persistOne(ctx context.Context, creator CardCreator, idx int, cand models.CandidateCard) models.ImportResult {
	if err := ValidateCandidate(cand); err != nil {
		echo := cand
		return models.ImportResult{
			Row:       idx,
			Error:     fmt.Sprintf("%s: %v", resultName(cand), err),
			Candidate: &echo,
		}
	}

	card, err := creator.Create(ctx, cand)
	if err != nil {
		echo := cand
		return models.ImportResult{
			Row:       idx,
			Error:     fmt.Sprintf("%s: save failed: %v", resultName(cand), err),
			Candidate: &echo,
		}
	}

	return models.ImportResult{Row: idx, Success: true, Card: &card}
}

// ValidateCandidate applies the relaxed batch validation: only the player
// name and the enumerated fields are enforced, everything else already
// carries safe defaults from the mapper.
func ValidateCandidate(c models.CandidateCard) error {
	if strings.TrimSpace(c.PlayerName) == "" {
		return fmt.Errorf("player name is required")
	}
	if !c.Sport.Valid() {
		return fmt.Errorf("invalid sport %q", c.Sport)
	}
	if !c.Condition.Valid() {
		return fmt.Errorf("invalid condition %q", c.Condition)
	}
	return nil
}

// NormalizeCandidate fills the defaults the row mapper would have supplied.
// Used by the direct-JSON import path, which bypasses mapping.
func NormalizeCandidate(c models.CandidateCard) models.CandidateCard {
	if strings.TrimSpace(c.PlayerName) == "" {
		c.PlayerName = models.UnknownPlayer
	}
	if c.Sport == "" {
		c.Sport = models.DefaultSport
	}
	if c.Condition == "" {
		c.Condition = models.DefaultCondition
	}
	if c.Year == 0 {
		c.Year = currentYear()
	}
	if c.PurchasePrice < 0 {
		c.PurchasePrice = 0
	}
	if c.CurrentValue < 0 {
		c.CurrentValue = 0
	}
	return c
}

// worthMapping drops spreadsheet artifacts (blank rows, merged-cell
// remnants): a row must carry either a name-bearing cell or an
// image/number-bearing cell to be mapped at all.
func worthMapping(row models.RawRow, mapping models.ColumnMapping) bool {
	hasValue := func(field string) bool {
		col, ok := mapping[field]
		return ok && strings.TrimSpace(row[col]) != ""
	}
	if hasValue(models.FieldPlayerName) || hasValue(models.FieldCardName) || hasValue(models.FieldTitle) {
		return true
	}
	return hasValue(models.FieldImageURL) || hasValue(models.FieldCardNumber)
}

func resultName(c models.CandidateCard) string {
	if strings.TrimSpace(c.PlayerName) == "" {
		return "Unknown"
	}
	return c.PlayerName
}
