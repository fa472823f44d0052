package models

import "time"

// Sport is the enumerated category a card belongs to.
type Sport string

const (
	SportBaseball   Sport = "baseball"
	SportBasketball Sport = "basketball"
	SportFootball   Sport = "football"
	SportHockey     Sport = "hockey"
	SportSoccer     Sport = "soccer"
)

// DefaultSport is used whenever a source carries no recognizable sport.
const DefaultSport = SportSoccer

func (s Sport) Valid() bool {
	switch s {
	case SportBaseball, SportBasketball, SportFootball, SportHockey, SportSoccer:
		return true
	}
	return false
}

// Condition is the enumerated physical grade of a card.
type Condition string

const (
	ConditionMint      Condition = "mint"
	ConditionNearMint  Condition = "nearMint"
	ConditionExcellent Condition = "excellent"
	ConditionVeryGood  Condition = "veryGood"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
	ConditionPoor      Condition = "poor"
	ConditionNew       Condition = "new"
)

// DefaultCondition is used whenever a source carries no recognizable grade.
const DefaultCondition = ConditionNew

func (c Condition) Valid() bool {
	switch c {
	case ConditionMint, ConditionNearMint, ConditionExcellent, ConditionVeryGood,
		ConditionGood, ConditionFair, ConditionPoor, ConditionNew:
		return true
	}
	return false
}

// UnknownPlayer is the sentinel player name assigned when no source column
// or extractor yields a name.
const UnknownPlayer = "Unknown Player"

// PricePoint is one observed value of a card at a point in time.
type PricePoint struct {
	Value float64   `json:"value"`
	At    time.Time `json:"at"`
}

// CandidateCard is the normalized, default-filled card record produced by
// the import pipeline prior to persistence. After mapping it always carries
// a non-empty player name, a valid sport, and a valid condition.
type CandidateCard struct {
	PlayerName    string    `json:"player_name"`
	Sport         Sport     `json:"sport"`
	Year          int       `json:"year"`
	Brand         string    `json:"brand,omitempty"`
	CardSet       string    `json:"card_set,omitempty"`
	CardNumber    string    `json:"card_number,omitempty"`
	Team          string    `json:"team,omitempty"`
	Condition     Condition `json:"condition"`
	Notes         string    `json:"notes,omitempty"`
	FrontImageURL string    `json:"front_image_url,omitempty"`
	BackImageURL  string    `json:"back_image_url,omitempty"`
	PurchasePrice float64   `json:"purchase_price"`
	CurrentValue  float64   `json:"current_value"`
}

// Card is the persisted entity. The store assigns the id and seeds the
// price history with a single point taken from CurrentValue at creation.
type Card struct {
	ID int64 `json:"id"`
	CandidateCard
	PriceHistory []PricePoint `json:"price_history"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
