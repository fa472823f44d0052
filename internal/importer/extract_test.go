package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cardvault/pkg/models"
)

func TestExtractYear(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   int
		wantOK bool
	}{
		{"title with year", "2003 Topps Chrome #23", 2003, true},
		{"year mid-string", "Jordan rookie 1986 Fleer", 1986, true},
		{"first of several", "1996-1997 season reprint 2005", 1996, true},
		{"range string", "2023-2024", 2023, true},
		{"no year", "no year here", 0, false},
		{"out of range century", "card from 1850", 0, false},
		{"five digit number", "lot 20231", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractYear(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestExtractCardNumber(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"hash number", "Jordan #45 PSA 10", "45", true},
		{"hash at end", "1989 Upper Deck Griffey #1", "1", true},
		{"no hash", "Jordan 45", "", false},
		{"hash without digits", "promo # card", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractCardNumber(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{"dollars and cents", "Sold for $125.50 shipped", 125.50, true},
		{"whole dollars", "$40 OBO", 40, true},
		{"no price", "trade only", 0, false},
		{"bare number", "125.50", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractPrice(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestExtractPlayerName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"plain name", "Michael Jordan rookie", "Michael Jordan", true},
		{"brand words skipped", "1996 Fleer Ultra Michael Jordan #23", "Michael Jordan", true},
		{"grading words skipped", "Gem Mint Ken Griffey", "Ken Griffey", true},
		{"fallback first two tokens", "lebron james 2003", "lebron james", true},
		{"single token fallback", "Pele", "Pele", true},
		{"empty string", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractPlayerName(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractConditionOrdering(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   models.Condition
		wantOK bool
	}{
		{"psa 10 gem mint", "PSA 10 Gem Mint", models.ConditionMint, true},
		{"bgs near mint", "BGS 9.5 Near Mint", models.ConditionNearMint, true},
		{"near mint not plain mint", "near mint condition", models.ConditionNearMint, true},
		{"plain mint", "Mint condition", models.ConditionMint, true},
		{"gem mt shorthand", "GEM MT grading note", models.ConditionMint, true},
		{"nm-mt shorthand", "NM-MT corners", models.ConditionNearMint, true},
		{"psa 9", "PSA 9 slab", models.ConditionNearMint, true},
		{"psa 8", "PSA 8", models.ConditionExcellent, true},
		{"ex shorthand", "EX card", models.ConditionExcellent, true},
		{"psa 7", "PSA 7", models.ConditionVeryGood, true},
		{"psa 6", "psa-6", models.ConditionVeryGood, true},
		{"psa 5", "PSA 5", models.ConditionGood, true},
		{"psa 4", "PSA 4", models.ConditionGood, true},
		{"psa 2", "PSA 2", models.ConditionFair, true},
		{"psa 1", "PSA 1", models.ConditionFair, true},
		{"psa 0", "PSA 0", models.ConditionPoor, true},
		{"poor keyword", "poor shape", models.ConditionPoor, true},
		{"no grade", "nice card", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractCondition(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractSport(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   models.Sport
		wantOK bool
	}{
		{"nba keyword", "NBA Finals insert", models.SportBasketball, true},
		{"hoops keyword", "91 Hoops", models.SportBasketball, true},
		{"mlb keyword", "MLB All-Star", models.SportBaseball, true},
		{"nfl keyword", "NFL rookie", models.SportFootball, true},
		{"nhl keyword", "NHL Young Guns", models.SportHockey, true},
		{"mls keyword", "MLS debut", models.SportSoccer, true},
		{"no keyword", "1996 Fleer Ultra Michael Jordan", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractSport(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractBrand(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantBrand string
		wantSet   string
		wantOK    bool
	}{
		{"brand with set", "1996 Fleer Ultra Michael Jordan", "Fleer", "Ultra", true},
		{"topps chrome", "2003 Topps Chrome #23", "Topps", "Chrome", true},
		{"case insensitive", "2020 PANINI prizm", "Panini", "", true},
		{"two word brand", "1989 Upper Deck Griffey", "Upper Deck", "Griffey", true},
		{"no brand", "generic promo card", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			brand, set, ok := ExtractBrand(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantBrand, brand)
			assert.Equal(t, tt.wantSet, set)
		})
	}
}
