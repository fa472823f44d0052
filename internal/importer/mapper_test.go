package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardvault/pkg/models"
)

func TestMapRowFullyMappedColumns(t *testing.T) {
	row := models.RawRow{
		"Player Name":    "Michael Jordan",
		"Sport":          "Basketball",
		"Season":         "1996",
		"Brand":          "Fleer",
		"Card Set":       "Ultra",
		"Card Number":    "#23",
		"Condition":      "near mint",
		"Team":           "Chicago Bulls",
		"Features":       "holo finish",
		"IMAGE URL":      "http://a.jpg | http://b.jpg",
		"Purchase Price": "$12.50",
		"Current Value":  "45",
	}

	c := MapRow(row, models.DefaultColumnMapping())

	assert.Equal(t, "Michael Jordan", c.PlayerName)
	assert.Equal(t, models.SportBasketball, c.Sport)
	assert.Equal(t, 1996, c.Year)
	assert.Equal(t, "Fleer", c.Brand)
	assert.Equal(t, "Ultra", c.CardSet)
	assert.Equal(t, "23", c.CardNumber)
	assert.Equal(t, models.ConditionNearMint, c.Condition)
	assert.Equal(t, "Chicago Bulls", c.Team)
	assert.Equal(t, "holo finish", c.Notes)
	assert.Equal(t, "http://a.jpg", c.FrontImageURL)
	assert.Equal(t, "http://b.jpg", c.BackImageURL)
	assert.InDelta(t, 12.50, c.PurchasePrice, 0.001)
	assert.InDelta(t, 45.0, c.CurrentValue, 0.001)
}

func TestMapRowNeverFailsAndDefaults(t *testing.T) {
	tests := []struct {
		name string
		row  models.RawRow
	}{
		{"empty row", models.RawRow{}},
		{"garbage cells", models.RawRow{"Season": "???", "Current Value": "NaN", "Sport": "curling"}},
		{"nil-ish values", models.RawRow{"Player Name": "   ", "Condition": " "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := MapRow(tt.row, models.DefaultColumnMapping())

			assert.NotEmpty(t, c.PlayerName)
			assert.True(t, c.Sport.Valid(), "sport %q", c.Sport)
			assert.True(t, c.Condition.Valid(), "condition %q", c.Condition)
			assert.Equal(t, models.UnknownPlayer, c.PlayerName)
			assert.Equal(t, models.DefaultSport, c.Sport)
			assert.Equal(t, models.DefaultCondition, c.Condition)
			assert.Equal(t, time.Now().Year(), c.Year)
			assert.Zero(t, c.PurchasePrice)
			assert.Zero(t, c.CurrentValue)
		})
	}
}

func TestMapRowPlayerNameFromCardName(t *testing.T) {
	row := models.RawRow{
		"Card Name": "1986 Fleer Michael Jordan Rookie",
	}
	c := MapRow(row, models.DefaultColumnMapping())
	assert.Equal(t, "Michael Jordan", c.PlayerName)
	assert.Equal(t, 1986, c.Year)
	assert.Equal(t, "Fleer", c.Brand)
}

func TestMapRowYearRange(t *testing.T) {
	row := models.RawRow{
		"Player Name": "Luka Doncic",
		"Season":      "2023-2024",
	}
	c := MapRow(row, models.DefaultColumnMapping())
	assert.Equal(t, 2023, c.Year)
}

func TestMapRowImageHandling(t *testing.T) {
	mapping := models.DefaultColumnMapping()

	t.Run("pipe delimited", func(t *testing.T) {
		c := MapRow(models.RawRow{
			"Player Name": "A B",
			"IMAGE URL":   "http://a.jpg | http://b.jpg",
		}, mapping)
		assert.Equal(t, "http://a.jpg", c.FrontImageURL)
		assert.Equal(t, "http://b.jpg", c.BackImageURL)
	})

	t.Run("single url no pipe", func(t *testing.T) {
		c := MapRow(models.RawRow{
			"Player Name": "A B",
			"IMAGE URL":   "http://only.jpg",
		}, mapping)
		assert.Equal(t, "http://only.jpg", c.FrontImageURL)
		assert.Empty(t, c.BackImageURL)
	})

	t.Run("explicit columns fill blanks only", func(t *testing.T) {
		c := MapRow(models.RawRow{
			"Player Name": "A B",
			"IMAGE URL":   "http://front.jpg",
			"Front Image": "http://ignored.jpg",
			"Back Image":  "https://back.jpg",
		}, mapping)
		assert.Equal(t, "http://front.jpg", c.FrontImageURL)
		assert.Equal(t, "https://back.jpg", c.BackImageURL)
	})

	t.Run("explicit column must look like a url", func(t *testing.T) {
		c := MapRow(models.RawRow{
			"Player Name": "A B",
			"Front Image": "IMG_1234.jpg",
		}, mapping)
		assert.Empty(t, c.FrontImageURL)
	})
}

func TestMapRowBulkPathIgnoresFreeTextPrices(t *testing.T) {
	// Prices come only from mapped columns during bulk import; the $99
	// in the features text must not leak into either money field.
	row := models.RawRow{
		"Player Name": "Wayne Gretzky",
		"Features":    "bought for $99 at a show",
	}
	c := MapRow(row, models.DefaultColumnMapping())
	require.Zero(t, c.PurchasePrice)
	require.Zero(t, c.CurrentValue)
}

func TestMapRowCustomMapping(t *testing.T) {
	mapping := models.ColumnMapping{
		models.FieldPlayerName:   "athlete",
		models.FieldYear:         "yr",
		models.FieldCurrentValue: "value",
	}
	row := models.RawRow{
		"athlete": "Mia Hamm",
		"yr":      "1999",
		"value":   "33.10",
	}

	c := MapRow(row, mapping)
	assert.Equal(t, "Mia Hamm", c.PlayerName)
	assert.Equal(t, 1999, c.Year)
	assert.InDelta(t, 33.10, c.CurrentValue, 0.001)
	assert.Equal(t, models.DefaultSport, c.Sport)
}
