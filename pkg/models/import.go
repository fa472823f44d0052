package models

import "fmt"

// RawRow is one parsed record from an uploaded spreadsheet, keyed by column
// name. It is produced by the sheet parsers and never leaks past the row
// mapper.
type RawRow map[string]string

// Canonical field names used as ColumnMapping keys.
const (
	FieldPlayerName    = "playerName"
	FieldCardName      = "cardName"
	FieldTitle         = "title"
	FieldSport         = "sport"
	FieldYear          = "year"
	FieldBrand         = "brand"
	FieldCardSet       = "cardSet"
	FieldCardNumber    = "cardNumber"
	FieldTeam          = "team"
	FieldCondition     = "condition"
	FieldNotes         = "notes"
	FieldImageURL      = "imageURL"
	FieldFrontImage    = "frontImage"
	FieldBackImage     = "backImage"
	FieldPurchasePrice = "purchasePrice"
	FieldCurrentValue  = "currentValue"
)

// ColumnMapping associates canonical card fields with source column names.
// It is read-only during a batch.
type ColumnMapping map[string]string

// DefaultColumnMapping covers the column vocabulary of the stock
// collection-template spreadsheet.
func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{
		FieldPlayerName:    "Player Name",
		FieldCardName:      "Card Name",
		FieldSport:         "Sport",
		FieldYear:          "Season",
		FieldBrand:         "Brand",
		FieldCardSet:       "Card Set",
		FieldCardNumber:    "Card Number",
		FieldCondition:     "Condition",
		FieldTeam:          "Team",
		FieldNotes:         "Features",
		FieldImageURL:      "IMAGE URL",
		FieldFrontImage:    "Front Image",
		FieldBackImage:     "Back Image",
		FieldPurchasePrice: "Purchase Price",
		FieldCurrentValue:  "Current Value",
	}
}

// ImportResult is the per-row outcome of a batch import. Failures echo the
// mapped candidate for diagnostics.
type ImportResult struct {
	Row       int            `json:"row"`
	Success   bool           `json:"success"`
	Card      *Card          `json:"card,omitempty"`
	Error     string         `json:"error,omitempty"`
	Candidate *CandidateCard `json:"candidate,omitempty"`
}

// ImportReport aggregates a whole batch, results in input order.
type ImportReport struct {
	Message  string         `json:"message"`
	Imported int            `json:"imported"`
	Failed   int            `json:"failed"`
	Results  []ImportResult `json:"results"`
}

// Summarize fills Message and the counters from Results.
func (r *ImportReport) Summarize() {
	r.Imported, r.Failed = 0, 0
	for _, res := range r.Results {
		if res.Success {
			r.Imported++
		} else {
			r.Failed++
		}
	}
	r.Message = fmt.Sprintf("%d imported, %d failed", r.Imported, r.Failed)
}
