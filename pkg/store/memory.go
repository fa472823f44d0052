package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"cardvault/pkg/models"
)

// Memory is the default CardStore: a mutex-guarded map with a monotonic id
// counter. Re-importing the same data creates duplicate cards; there is no
// dedup key.
type Memory struct {
	mu     sync.Mutex
	nextID int64
	cards  map[int64]models.Card
}

func NewMemory() *Memory {
	return &Memory{
		nextID: 1,
		cards:  make(map[int64]models.Card),
	}
}

func (m *Memory) Create(ctx context.Context, c models.CandidateCard) (models.Card, error) {
	now := time.Now().UTC()
	m.mu.Lock()
	defer m.mu.Unlock()

	card := models.Card{
		ID:            m.nextID,
		CandidateCard: c,
		PriceHistory:  []models.PricePoint{{Value: c.CurrentValue, At: now}},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	m.nextID++
	m.cards[card.ID] = card
	return card, nil
}

func (m *Memory) Get(ctx context.Context, id int64) (models.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	card, ok := m.cards[id]
	if !ok {
		return models.Card{}, ErrNotFound
	}
	return cloneCard(card), nil
}

func (m *Memory) List(ctx context.Context, q Query) ([]models.Card, int, error) {
	limit, offset := clampPage(q.Limit, q.Offset)

	all, err := m.All(ctx)
	if err != nil {
		return nil, 0, err
	}

	matched := all[:0]
	for _, card := range all {
		if matches(card, q) {
			matched = append(matched, card)
		}
	}

	total := len(matched)
	if offset >= total {
		return []models.Card{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (m *Memory) All(ctx context.Context) ([]models.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Card, 0, len(m.cards))
	for _, card := range m.cards {
		out = append(out, cloneCard(card))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) Update(ctx context.Context, id int64, c models.CandidateCard) (models.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	card, ok := m.cards[id]
	if !ok {
		return models.Card{}, ErrNotFound
	}
	card.CandidateCard = c
	card.UpdatedAt = time.Now().UTC()
	m.cards[id] = card
	return cloneCard(card), nil
}

func (m *Memory) AppendPrice(ctx context.Context, id int64, p models.PricePoint) (models.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	card, ok := m.cards[id]
	if !ok {
		return models.Card{}, ErrNotFound
	}
	card.PriceHistory = append(card.PriceHistory, p)
	card.CurrentValue = p.Value
	card.UpdatedAt = time.Now().UTC()
	m.cards[id] = card
	return cloneCard(card), nil
}

func (m *Memory) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cards[id]; !ok {
		return ErrNotFound
	}
	delete(m.cards, id)
	return nil
}

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) Close() error { return nil }

func matches(card models.Card, q Query) bool {
	if q.Sport != "" && card.Sport != q.Sport {
		return false
	}
	if q.Condition != "" && card.Condition != q.Condition {
		return false
	}
	if kw := strings.ToLower(strings.TrimSpace(q.Q)); kw != "" {
		hay := strings.ToLower(card.PlayerName + " " + card.Brand + " " + card.Team)
		if !strings.Contains(hay, kw) {
			return false
		}
	}
	return true
}

// cloneCard copies the price history so callers cannot mutate stored state.
func cloneCard(card models.Card) models.Card {
	history := make([]models.PricePoint, len(card.PriceHistory))
	copy(history, card.PriceHistory)
	card.PriceHistory = history
	return card
}
