package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"cardvault/pkg/models"
	"cardvault/pkg/store"
)

func main() {
	var (
		out    = flag.String("out", "data/cards.csv", "output CSV path")
		dbPath = flag.String("db", store.DefaultDBPath(), "sqlite database path")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := store.OpenSQLite(*dbPath)
	if err != nil {
		log.Fatalf("open db failed: %v", err)
	}
	defer st.Close()

	if err := exportCards(ctx, st, *out); err != nil {
		log.Fatalf("export failed: %v", err)
	}
	log.Printf("✅ exported cards to %s", *out)
}

func exportCards(ctx context.Context, st store.CardStore, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"Player Name", "Sport", "Season", "Brand", "Card Set", "Card Number",
		"Team", "Condition", "Features", "IMAGE URL", "Purchase Price", "Current Value",
	}); err != nil {
		return err
	}

	all, err := st.All(ctx)
	if err != nil {
		return err
	}

	for _, card := range all {
		if err := w.Write([]string{
			card.PlayerName,
			string(card.Sport),
			strconv.Itoa(card.Year),
			card.Brand,
			card.CardSet,
			card.CardNumber,
			card.Team,
			string(card.Condition),
			card.Notes,
			joinImageURLs(card),
			strconv.FormatFloat(card.PurchasePrice, 'f', 2, 64),
			strconv.FormatFloat(card.CurrentValue, 'f', 2, 64),
		}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// joinImageURLs writes the pipe-delimited form the importer understands, so
// an exported file round-trips.
func joinImageURLs(card models.Card) string {
	switch {
	case card.FrontImageURL != "" && card.BackImageURL != "":
		return card.FrontImageURL + " | " + card.BackImageURL
	case card.FrontImageURL != "":
		return card.FrontImageURL
	default:
		return card.BackImageURL
	}
}
