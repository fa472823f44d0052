package store

import (
	"context"
	"errors"

	"cardvault/pkg/models"
)

// ErrNotFound is returned when a card id does not exist.
var ErrNotFound = errors.New("card not found")

// Query narrows and pages a card listing.
type Query struct {
	Q         string // keyword search in player name / brand / team
	Sport     models.Sport
	Condition models.Condition
	Limit     int
	Offset    int
}

// CardStore is the persistence collaborator of the import pipeline and the
// CRUD handlers. Implementations must tolerate concurrent calls.
type CardStore interface {
	Create(ctx context.Context, c models.CandidateCard) (models.Card, error)
	Get(ctx context.Context, id int64) (models.Card, error)
	List(ctx context.Context, q Query) ([]models.Card, int, error)
	All(ctx context.Context) ([]models.Card, error)
	Update(ctx context.Context, id int64, c models.CandidateCard) (models.Card, error)
	AppendPrice(ctx context.Context, id int64, p models.PricePoint) (models.Card, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
	Close() error
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
