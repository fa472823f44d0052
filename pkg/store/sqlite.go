package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"cardvault/pkg/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS cards (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  player_name TEXT NOT NULL,
  sport TEXT NOT NULL,
  year INTEGER NOT NULL,
  brand TEXT,
  card_set TEXT,
  card_number TEXT,
  team TEXT,
  condition TEXT NOT NULL,
  notes TEXT,
  front_image_url TEXT,
  back_image_url TEXT,
  purchase_price REAL NOT NULL DEFAULT 0,
  current_value REAL NOT NULL DEFAULT 0,
  price_history TEXT NOT NULL DEFAULT '[]', -- JSON array as text
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL
);
`

// SQLite is the optional persistent CardStore, selected by setting
// CARDVAULT_DB_PATH. Price history is stored as JSON text.
type SQLite struct {
	db *sql.DB
}

// DefaultDBPath is where the CLIs keep the collection when no path is given.
func DefaultDBPath() string {
	if p := os.Getenv("CARDVAULT_DB_PATH"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return filepath.Join(home, ".cardvault", "data.db")
}

func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma foreign_keys: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma journal_mode: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Create(ctx context.Context, c models.CandidateCard) (models.Card, error) {
	now := time.Now().UTC()
	history := []models.PricePoint{{Value: c.CurrentValue, At: now}}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return models.Card{}, fmt.Errorf("marshal price history: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO cards (
			player_name, sport, year, brand, card_set, card_number, team,
			condition, notes, front_image_url, back_image_url,
			purchase_price, current_value, price_history, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		c.PlayerName, string(c.Sport), c.Year,
		nullString(c.Brand), nullString(c.CardSet), nullString(c.CardNumber), nullString(c.Team),
		string(c.Condition), nullString(c.Notes),
		nullString(c.FrontImageURL), nullString(c.BackImageURL),
		c.PurchasePrice, c.CurrentValue, string(historyJSON), now, now,
	)
	if err != nil {
		return models.Card{}, fmt.Errorf("insert card: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Card{}, fmt.Errorf("last insert id: %w", err)
	}

	return models.Card{
		ID:            id,
		CandidateCard: c,
		PriceHistory:  history,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

const selectCols = `
	SELECT id, player_name, sport, year, brand, card_set, card_number, team,
	       condition, notes, front_image_url, back_image_url,
	       purchase_price, current_value, price_history, created_at, updated_at
	FROM cards
`

func (s *SQLite) Get(ctx context.Context, id int64) (models.Card, error) {
	row := s.db.QueryRowContext(ctx, selectCols+` WHERE id = ?`, id)
	card, err := scanCard(row)
	if err == sql.ErrNoRows {
		return models.Card{}, ErrNotFound
	}
	if err != nil {
		return models.Card{}, fmt.Errorf("get card: %w", err)
	}
	return card, nil
}

func (s *SQLite) List(ctx context.Context, q Query) ([]models.Card, int, error) {
	limit, offset := clampPage(q.Limit, q.Offset)
	where, args := buildWhere(q)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count cards: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		selectCols+where+` ORDER BY id ASC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	out := make([]models.Card, 0, limit)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan card: %w", err)
		}
		out = append(out, card)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows err: %w", err)
	}
	return out, total, nil
}

func (s *SQLite) All(ctx context.Context) ([]models.Card, error) {
	rows, err := s.db.QueryContext(ctx, selectCols+` ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("all cards: %w", err)
	}
	defer rows.Close()

	var out []models.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		out = append(out, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (s *SQLite) Update(ctx context.Context, id int64, c models.CandidateCard) (models.Card, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE cards SET
			player_name = ?, sport = ?, year = ?, brand = ?, card_set = ?,
			card_number = ?, team = ?, condition = ?, notes = ?,
			front_image_url = ?, back_image_url = ?,
			purchase_price = ?, current_value = ?, updated_at = ?
		WHERE id = ?
	`,
		c.PlayerName, string(c.Sport), c.Year,
		nullString(c.Brand), nullString(c.CardSet), nullString(c.CardNumber), nullString(c.Team),
		string(c.Condition), nullString(c.Notes),
		nullString(c.FrontImageURL), nullString(c.BackImageURL),
		c.PurchasePrice, c.CurrentValue, now, id,
	)
	if err != nil {
		return models.Card{}, fmt.Errorf("update card: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Card{}, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *SQLite) AppendPrice(ctx context.Context, id int64, p models.PricePoint) (models.Card, error) {
	card, err := s.Get(ctx, id)
	if err != nil {
		return models.Card{}, err
	}

	history := append(card.PriceHistory, p)
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return models.Card{}, fmt.Errorf("marshal price history: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		UPDATE cards SET price_history = ?, current_value = ?, updated_at = ?
		WHERE id = ?
	`, string(historyJSON), p.Value, time.Now().UTC(), id); err != nil {
		return models.Card{}, fmt.Errorf("append price: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *SQLite) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *SQLite) Close() error { return s.db.Close() }

func buildWhere(q Query) (string, []any) {
	var where []string
	var args []any

	if kw := strings.ToLower(strings.TrimSpace(q.Q)); kw != "" {
		where = append(where, `(LOWER(player_name) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(team) LIKE ?)`)
		pat := "%" + kw + "%"
		args = append(args, pat, pat, pat)
	}
	if q.Sport != "" {
		where = append(where, `sport = ?`)
		args = append(args, string(q.Sport))
	}
	if q.Condition != "" {
		where = append(where, `condition = ?`)
		args = append(args, string(q.Condition))
	}

	if len(where) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

type scannable interface {
	Scan(dest ...any) error
}

func scanCard(row scannable) (models.Card, error) {
	var (
		card        models.Card
		sport       string
		condition   string
		brand       sql.NullString
		cardSet     sql.NullString
		cardNumber  sql.NullString
		team        sql.NullString
		notes       sql.NullString
		frontImage  sql.NullString
		backImage   sql.NullString
		historyJSON string
	)

	err := row.Scan(
		&card.ID, &card.PlayerName, &sport, &card.Year,
		&brand, &cardSet, &cardNumber, &team,
		&condition, &notes, &frontImage, &backImage,
		&card.PurchasePrice, &card.CurrentValue, &historyJSON,
		&card.CreatedAt, &card.UpdatedAt,
	)
	if err != nil {
		return models.Card{}, err
	}

	card.Sport = models.Sport(sport)
	card.Condition = models.Condition(condition)
	card.Brand = brand.String
	card.CardSet = cardSet.String
	card.CardNumber = cardNumber.String
	card.Team = team.String
	card.Notes = notes.String
	card.FrontImageURL = frontImage.String
	card.BackImageURL = backImage.String

	_ = json.Unmarshal([]byte(historyJSON), &card.PriceHistory)
	return card, nil
}

func nullString(raw string) sql.NullString {
	if raw == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: raw, Valid: true}
}
