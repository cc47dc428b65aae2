// Package export writes stored transactions to CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"hsouza/julius/internal/logging"
	"hsouza/julius/internal/models"

	"github.com/gocarina/gocsv"
)

// TransactionRow maps one stored transaction onto the CSV columns.
type TransactionRow struct {
	Date        string `csv:"data"`
	Description string `csv:"descricao"`
	Original    string `csv:"descricao_original"`
	Amount      string `csv:"valor"`
	Direction   string `csv:"tipo"`
	Category    string `csv:"categoria"`
	Merchant    string `csv:"estabelecimento"`
	Installment string `csv:"parcela"`
}

// Exporter writes transaction CSV files with a configurable delimiter.
type Exporter struct {
	delimiter rune
	logger    logging.Logger
}

// New creates an Exporter. A zero delimiter falls back to the comma.
func New(delimiter rune, logger logging.Logger) *Exporter {
	if delimiter == 0 {
		delimiter = ','
	}
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Exporter{delimiter: delimiter, logger: logger}
}

// WriteCSV writes the transactions to csvFile, creating directories as
// needed.
func (e *Exporter) WriteCSV(transactions []models.StoredTransaction, csvFile string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	e.logger.Info("Writing transactions to CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			e.logger.Warn("Failed to close file",
				logging.Field{Key: logging.FieldError, Value: err.Error()})
		}
	}()

	rows := make([]TransactionRow, len(transactions))
	for i, t := range transactions {
		rows[i] = TransactionRow{
			Date:        t.DateRaw,
			Description: t.Description,
			Original:    t.DescriptionOriginal,
			Amount:      t.Amount.StringFixed(2),
			Direction:   t.Direction,
			Category:    string(t.Category),
			Merchant:    t.Merchant,
			Installment: t.InstallmentInfo,
		}
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = e.delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	e.logger.Info("Successfully wrote transactions to CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})

	return nil
}
