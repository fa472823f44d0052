package importer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardvault/pkg/models"
	"cardvault/pkg/store"
)

func TestMapEBayRowStructuredColumns(t *testing.T) {
	row := models.RawRow{
		"Title":               "1996 Fleer Ultra Michael Jordan #23 PSA 10",
		"ConditionID":         "2750",
		"C:Player/Athlete":    "Michael Jordan",
		"C:Sport":             "Basketball",
		"C:Year Manufactured": "1996",
		"C:Manufacturer":      "Fleer",
		"C:Set":               "Ultra",
		"C:Card Number":       "23",
		"C:Team":              "Chicago Bulls",
		"PicURL":              "http://front.jpg|http://back.jpg",
		"StartPrice":          "149.99",
	}

	c := MapEBayRow(row)

	assert.Equal(t, "Michael Jordan", c.PlayerName)
	assert.Equal(t, models.SportBasketball, c.Sport)
	assert.Equal(t, 1996, c.Year)
	assert.Equal(t, "Fleer", c.Brand)
	assert.Equal(t, "Ultra", c.CardSet)
	assert.Equal(t, "23", c.CardNumber)
	assert.Equal(t, "Chicago Bulls", c.Team)
	// The ID table wins over the PSA shorthand in the title.
	assert.Equal(t, models.ConditionNearMint, c.Condition)
	assert.Equal(t, "http://front.jpg", c.FrontImageURL)
	assert.Equal(t, "http://back.jpg", c.BackImageURL)
	assert.InDelta(t, 149.99, c.CurrentValue, 0.001)
}

func TestMapEBayRowTitleFallback(t *testing.T) {
	row := models.RawRow{
		"Title": "2003 Topps Chrome Dwyane Wade #115 NBA rookie NM-MT",
	}

	c := MapEBayRow(row)

	assert.Equal(t, "Dwyane Wade", c.PlayerName)
	assert.Equal(t, models.SportBasketball, c.Sport)
	assert.Equal(t, 2003, c.Year)
	assert.Equal(t, "Topps", c.Brand)
	assert.Equal(t, "Chrome", c.CardSet)
	assert.Equal(t, "115", c.CardNumber)
	assert.Equal(t, models.ConditionNearMint, c.Condition)
	assert.Equal(t, row["Title"], c.Notes)
}

func TestMapEBayRowUnknownConditionID(t *testing.T) {
	row := models.RawRow{
		"Title":       "1990 Donruss Nolan Ryan",
		"ConditionID": "424242",
	}

	c := MapEBayRow(row)
	assert.Equal(t, models.DefaultCondition, c.Condition)
}

func TestEBayConditionTable(t *testing.T) {
	tests := []struct {
		id   string
		want models.Condition
	}{
		{"1000", models.ConditionNew},
		{"1500", models.ConditionNew},
		{"2750", models.ConditionNearMint},
		{"3000", models.ConditionExcellent},
		{"4000", models.ConditionVeryGood},
		{"5000", models.ConditionGood},
		{"6000", models.ConditionFair},
		{"7000", models.ConditionPoor},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := ebayConditions[tt.id]
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImportEBayRowsSkipsEmpty(t *testing.T) {
	rows := []models.RawRow{
		{"Title": "1996 Fleer Ultra Michael Jordan #23"},
		{"Title": "", "PicURL": ""},
		{"PicURL": "http://pic.jpg"},
	}

	st := store.NewMemory()
	report := ImportEBayRows(context.Background(), st, rows)

	assert.Len(t, report.Results, 2)
	assert.Equal(t, 2, report.Imported)
}
