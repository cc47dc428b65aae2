// Package ingest handles the statement ingestion command
package ingest

import (
	"context"

	"hsouza/julius/cmd/root"
	"hsouza/julius/internal/extractor"
	ingestsvc "hsouza/julius/internal/ingest"
	"hsouza/julius/internal/pdftext"
	"hsouza/julius/internal/vectorindex"

	"github.com/spf13/cobra"
)

var (
	filePath string
	cardName string
	year     int
	force    bool
)

// Cmd represents the ingest command
var Cmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest a PDF statement into the database",
	Long: `Ingest extracts transactions and invoice figures from a Nubank PDF
statement, normalizes and categorizes them, and stores everything under the
given card. Statements already ingested are detected and skipped.`,
	Run: ingestFunc,
}

func init() {
	Cmd.Flags().StringVarP(&filePath, "file", "f", "", "Path to the PDF statement")
	Cmd.Flags().StringVarP(&cardName, "card", "c", "", "Card the statement belongs to")
	Cmd.Flags().IntVarP(&year, "year", "y", 0, "Reference year for statement dates (default: current year)")
	Cmd.Flags().BoolVar(&force, "force", false, "Ingest even if the statement is a duplicate")
	_ = Cmd.MarkFlagRequired("file")
	_ = Cmd.MarkFlagRequired("card")
}

func ingestFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()

	db, err := root.OpenDatabase()
	if err != nil {
		logger.Fatalf("Error opening database: %v", err)
	}
	defer db.Close()

	norm, err := root.NewNormalizer()
	if err != nil {
		logger.Fatalf("Error loading categorization rules: %v", err)
	}

	service := ingestsvc.NewService(db,
		extractor.New(pdftext.NewPDFPageSource(), logger),
		norm, vectorindex.NewMemoryIndex(), logger)

	result, err := service.Ingest(context.Background(), ingestsvc.Options{
		FilePath:      filePath,
		CardName:      cardName,
		ReferenceYear: year,
		Force:         force,
	})
	if err != nil {
		logger.Fatalf("Ingestion failed: %v", err)
	}

	if result.Duplicate != nil && result.Statement == nil {
		logger.Infof("Statement already ingested (%s match), nothing to do. Use --force to re-import.",
			result.Duplicate.Reason)
		return
	}

	logger.Infof("Ingested statement %d: %d transactions stored, %d lines skipped, %d dropped",
		result.Statement.ID, result.Stats.Kept, result.SkippedLines, result.Stats.Dropped)
}
