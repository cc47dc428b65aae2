// Package export handles the CSV export command
package export

import (
	"hsouza/julius/cmd/root"
	"hsouza/julius/internal/database"
	exportcsv "hsouza/julius/internal/export"
	"hsouza/julius/internal/models"

	"github.com/spf13/cobra"
)

var (
	outputFile string
	cardName   string
	category   string
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored transactions to CSV",
	Long:  `Export writes the stored transactions to a CSV file, optionally scoped to one card or category.`,
	Run:   exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "transacoes.csv", "Output CSV file")
	Cmd.Flags().StringVarP(&cardName, "card", "c", "", "Only export transactions of this card")
	Cmd.Flags().StringVar(&category, "category", "", "Only export transactions of this category")
}

func exportFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()

	db, err := root.OpenDatabase()
	if err != nil {
		logger.Fatalf("Error opening database: %v", err)
	}
	defer db.Close()

	filter := database.TransactionFilter{}
	if cardName != "" {
		card, err := db.GetCardByName(cardName)
		if err != nil {
			logger.Fatalf("Error looking up card: %v", err)
		}
		if card == nil {
			logger.Fatalf("Unknown card: %s", cardName)
		}
		filter.CardID = card.ID
	}
	if category != "" {
		c := models.Category(category)
		if !c.IsValid() {
			logger.Fatalf("Unknown category: %s", category)
		}
		filter.Category = c
	}

	transactions, err := db.ListTransactions(filter)
	if err != nil {
		logger.Fatalf("Error reading transactions: %v", err)
	}
	if transactions == nil {
		transactions = []models.StoredTransaction{}
	}

	exporter := exportcsv.New([]rune(root.Cfg.Export.Delimiter)[0], logger)
	if err := exporter.WriteCSV(transactions, outputFile); err != nil {
		logger.Fatalf("Export failed: %v", err)
	}

	logger.Infof("Exported %d transactions to %s", len(transactions), outputFile)
}
