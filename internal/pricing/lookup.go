package pricing

import (
	"hash/fnv"
	"math"
	"time"

	"cardvault/pkg/models"
)

// Service fabricates market values. There is no real price retrieval: the
// estimate drifts deterministically around the card's current value so that
// repeated lookups on the same day return the same number.
type Service struct {
	now func() time.Time
}

func NewService() *Service {
	return &Service{now: time.Now}
}

// Estimate produces the next price point for a card. The drift is within
// ±10% of the current value, keyed by card id and calendar day. Cards with
// no value yet get a small baseline so the history has somewhere to go.
func (s *Service) Estimate(card models.Card) models.PricePoint {
	now := s.now().UTC()

	base := card.CurrentValue
	if base <= 0 {
		base = 1
	}

	h := fnv.New64a()
	day := now.Format("2006-01-02")
	_, _ = h.Write([]byte(day))
	var buf [8]byte
	id := uint64(card.ID)
	for i := 0; i < 8; i++ {
		buf[i] = byte(id >> (8 * i))
	}
	_, _ = h.Write(buf[:])

	// Map the hash onto [-0.10, +0.10].
	drift := (float64(h.Sum64()%2001) - 1000) / 10000
	value := math.Round(base*(1+drift)*100) / 100

	return models.PricePoint{Value: value, At: now}
}
