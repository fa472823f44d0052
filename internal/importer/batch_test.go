package importer

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardvault/pkg/models"
	"cardvault/pkg/store"
)

// flakyCreator fails Create for a chosen set of player names and otherwise
// delegates to the in-memory store.
type flakyCreator struct {
	store  *store.Memory
	mu     sync.Mutex
	failOn map[string]bool
	calls  int
}

func (f *flakyCreator) Create(ctx context.Context, c models.CandidateCard) (models.Card, error) {
	f.mu.Lock()
	f.calls++
	fail := f.failOn[c.PlayerName]
	f.mu.Unlock()

	if fail {
		return models.Card{}, fmt.Errorf("simulated store outage")
	}
	return f.store.Create(ctx, c)
}

func rowsForPlayers(names ...string) []models.RawRow {
	rows := make([]models.RawRow, len(names))
	for i, name := range names {
		rows[i] = models.RawRow{"Player Name": name}
	}
	return rows
}

func TestImportRowsBatchIsolation(t *testing.T) {
	names := make([]string, 10)
	for i := range names {
		names[i] = fmt.Sprintf("Player Number%d", i+1)
	}

	creator := &flakyCreator{
		store:  store.NewMemory(),
		failOn: map[string]bool{"Player Number5": true},
	}

	report := ImportRows(context.Background(), creator, rowsForPlayers(names...), nil)

	assert.Equal(t, 9, report.Imported)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, "9 imported, 1 failed", report.Message)
	require.Len(t, report.Results, 10)

	// Results stay pinned to input order regardless of completion order.
	for i, res := range report.Results {
		assert.Equal(t, i, res.Row)
		if i == 4 {
			assert.False(t, res.Success)
			require.NotNil(t, res.Candidate, "failures echo the mapped candidate")
			assert.Equal(t, "Player Number5", res.Candidate.PlayerName)
			assert.Contains(t, res.Error, "Player Number5")
			continue
		}
		assert.True(t, res.Success, "row %d should survive row 5's failure", i)
		require.NotNil(t, res.Card)
		assert.Equal(t, names[i], res.Card.PlayerName)
	}
}

func TestImportRowsPreFilterDropsEmptyRows(t *testing.T) {
	rows := []models.RawRow{
		{"Player Name": "Michael Jordan"},
		{},                                // blank spreadsheet row
		{"Team": "Bulls"},                 // no name, image, or number
		{"IMAGE URL": "http://a.jpg"},     // image-bearing rows survive
		{"Card Number": "23"},             // number-bearing rows survive
		{"Player Name": "  ", "Team": ""}, // whitespace only
	}

	st := store.NewMemory()
	report := ImportRows(context.Background(), st, rows, nil)

	assert.Len(t, report.Results, 3)
	assert.Equal(t, 3, report.Imported)
	assert.Equal(t, "3 imported, 0 failed", report.Message)
}

func TestImportRowsValidationFailure(t *testing.T) {
	st := store.NewMemory()
	candidates := []models.CandidateCard{
		{PlayerName: "Good Row", Sport: models.SportHockey, Condition: models.ConditionMint},
		{PlayerName: "Bad Sport", Sport: "rowing", Condition: models.ConditionMint},
	}

	report := PersistCandidates(context.Background(), st, candidates)

	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 1, report.Failed)
	assert.True(t, report.Results[0].Success)
	assert.False(t, report.Results[1].Success)
	assert.Contains(t, report.Results[1].Error, "Bad Sport")
	assert.Contains(t, report.Results[1].Error, "invalid sport")
}

// Importing the same file twice duplicates every card: there is no dedup
// key, by design.
func TestImportRowsNoDedup(t *testing.T) {
	rows := rowsForPlayers("Michael Jordan", "Larry Bird")
	st := store.NewMemory()

	first := ImportRows(context.Background(), st, rows, nil)
	second := ImportRows(context.Background(), st, rows, nil)
	require.Equal(t, 2, first.Imported)
	require.Equal(t, 2, second.Imported)

	all, err := st.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestImportRowsNilMappingUsesDefault(t *testing.T) {
	st := store.NewMemory()
	rows := []models.RawRow{{"Player Name": "Diego Maradona", "Sport": "soccer"}}

	report := ImportRows(context.Background(), st, rows, nil)

	require.Equal(t, 1, report.Imported)
	assert.Equal(t, "Diego Maradona", report.Results[0].Card.PlayerName)
	assert.Equal(t, models.SportSoccer, report.Results[0].Card.Sport)
}

func TestNormalizeCandidate(t *testing.T) {
	c := NormalizeCandidate(models.CandidateCard{CurrentValue: -3})

	assert.Equal(t, models.UnknownPlayer, c.PlayerName)
	assert.Equal(t, models.DefaultSport, c.Sport)
	assert.Equal(t, models.DefaultCondition, c.Condition)
	assert.NotZero(t, c.Year)
	assert.Zero(t, c.CurrentValue)
	assert.NoError(t, ValidateCandidate(c))
}
