package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"cardvault/pkg/models"
)

// ParseCSVRows reads an uploaded CSV into RawRows keyed by the header row.
// Ragged rows are tolerated; completely empty records are skipped.
func ParseCSVRows(r io.Reader) ([]models.RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = cleanHeader(header)

	var rows []models.RawRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if row := rowFromRecord(header, record); row != nil {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// ParseXLSXRows reads the first sheet of an Excel workbook into RawRows.
func ParseXLSXRows(r io.Reader) ([]models.RawRow, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	records, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := cleanHeader(records[0])
	var rows []models.RawRow
	for _, record := range records[1:] {
		if row := rowFromRecord(header, record); row != nil {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func cleanHeader(header []string) []string {
	out := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff") // BOM on the first cell
		out[i] = strings.TrimSpace(name)
	}
	return out
}

func rowFromRecord(header, record []string) models.RawRow {
	row := make(models.RawRow, len(header))
	empty := true
	for i, name := range header {
		if name == "" || i >= len(record) {
			continue
		}
		val := strings.TrimSpace(record[i])
		row[name] = val
		if val != "" {
			empty = false
		}
	}
	if empty {
		return nil
	}
	return row
}
