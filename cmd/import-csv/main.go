package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"cardvault/internal/importer"
	"cardvault/pkg/models"
	"cardvault/pkg/store"
)

func main() {
	var (
		in          = flag.String("file", "data/cards.csv", "input CSV path")
		mappingPath = flag.String("mapping", "", "optional JSON column-mapping file")
		dbPath      = flag.String("db", store.DefaultDBPath(), "sqlite database path")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := store.OpenSQLite(*dbPath)
	if err != nil {
		log.Fatalf("open db failed: %v", err)
	}
	defer st.Close()

	mapping, err := loadMapping(*mappingPath)
	if err != nil {
		log.Fatalf("load mapping failed: %v", err)
	}

	f, err := os.Open(*in)
	if err != nil {
		log.Fatalf("open %s: %v", *in, err)
	}
	defer f.Close()

	rows, err := importer.ParseCSVRows(f)
	if err != nil {
		log.Fatalf("parse %s: %v", *in, err)
	}

	report := importer.ImportRows(ctx, st, rows, mapping)
	for _, res := range report.Results {
		if !res.Success {
			log.Printf("row %d: %s", res.Row, res.Error)
		}
	}
	log.Printf("✅ %s from %s into %s", report.Message, *in, *dbPath)
}

func loadMapping(path string) (models.ColumnMapping, error) {
	if path == "" {
		return nil, nil // ImportRows falls back to the default template
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var mapping models.ColumnMapping
	if err := json.Unmarshal(b, &mapping); err != nil {
		return nil, err
	}
	return mapping, nil
}
