package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/69GliTcH/SimpliFin/pkg/spending"
)

// RenderCSV writes the records as CSV with a fixed header row. Amounts use
// plain decimal notation; dates use mm/dd/yyyy, with an empty cell for
// records without a valid timestamp.
func RenderCSV(records []spending.Record) (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Name", "Amount", "Category", "Date"}); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, record := range records {
		date := ""
		if record.HasValidTimestamp() {
			date = record.CreatedAt.Format("01/02/2006")
		}
		row := []string{
			record.Name,
			formatAmount(record.Amount),
			string(record.DisplayCategory()),
			date,
		}
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.String(), nil
}

func formatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
