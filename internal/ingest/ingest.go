// Package ingest orchestrates statement ingestion: extraction,
// normalization, duplicate detection and atomic persistence, followed by
// the document-index feed.
package ingest

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hsouza/julius/internal/database"
	"hsouza/julius/internal/dateutils"
	"hsouza/julius/internal/extractor"
	"hsouza/julius/internal/logging"
	"hsouza/julius/internal/models"
	"hsouza/julius/internal/normalizer"
	"hsouza/julius/internal/parsererror"
	"hsouza/julius/internal/vectorindex"

	"github.com/shopspring/decimal"
)

// Options controls one ingestion run.
type Options struct {
	FilePath string
	CardName string
	// ReferenceYear resolves the statement's day-month date tokens.
	// Zero means the current year.
	ReferenceYear int
	// Force ingests even when a duplicate is found.
	Force bool
}

// Result reports what one ingestion run did. When Duplicate is set and
// the run was not forced, nothing was persisted.
type Result struct {
	Statement    *models.Statement
	Transactions []models.Transaction
	Stats        models.NormalizationStats
	SkippedLines int
	Duplicate    *models.DuplicateMatch
}

// Service wires the ingestion pipeline together.
type Service struct {
	db         *database.DB
	extractor  *extractor.Extractor
	normalizer *normalizer.Normalizer
	index      vectorindex.DocumentIndex
	logger     logging.Logger
}

// NewService creates an ingestion service. The index may be nil when no
// document index is configured.
func NewService(db *database.DB, ext *extractor.Extractor, norm *normalizer.Normalizer, index vectorindex.DocumentIndex, logger logging.Logger) *Service {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Service{
		db:         db,
		extractor:  ext,
		normalizer: norm,
		index:      index,
		logger:     logger,
	}
}

// Ingest runs the full pipeline for one statement file.
func (s *Service) Ingest(ctx context.Context, opts Options) (*Result, error) {
	if opts.CardName == "" {
		return nil, fmt.Errorf("card name is required")
	}
	referenceYear := opts.ReferenceYear
	if referenceYear == 0 {
		referenceYear = time.Now().Year()
	}

	fileHash, err := hashFile(opts.FilePath)
	if err != nil {
		return nil, &parsererror.ValidationError{
			FilePath: opts.FilePath,
			Reason:   "statement file unreadable",
			Err:      err,
		}
	}
	fileName := filepath.Base(opts.FilePath)

	s.logger.Info("Ingesting statement",
		logging.Field{Key: logging.FieldFile, Value: fileName},
		logging.Field{Key: logging.FieldCard, Value: opts.CardName})

	extraction, err := s.extractor.Extract(opts.FilePath)
	if err != nil {
		return nil, fmt.Errorf("extracting statement: %w", err)
	}
	if len(extraction.Lines) == 0 && extraction.Summary.PeriodStartToken == "" {
		return nil, &parsererror.DataExtractionError{
			FilePath:  opts.FilePath,
			FieldName: "transactions",
			Reason:    "no transaction lines or statement period found",
			Msg:       "document does not look like a card statement",
		}
	}

	transactions, stats := s.normalizer.Normalize(extraction.Lines, referenceYear)
	stats.LogSummary(s.logger, fileName)

	periodStart := resolveToken(extraction.Summary.PeriodStartToken, referenceYear)
	periodEnd := resolveToken(extraction.Summary.PeriodEndToken, referenceYear)

	card, err := s.db.GetOrCreateCard(opts.CardName)
	if err != nil {
		return nil, fmt.Errorf("resolving card: %w", err)
	}

	result := &Result{
		Transactions: transactions,
		Stats:        stats,
		SkippedLines: extraction.SkippedLines,
	}

	duplicate, err := FindDuplicate(s.db, card.ID, fileHash, fileName, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("checking for duplicates: %w", err)
	}
	if duplicate != nil {
		result.Duplicate = duplicate
		if duplicate.HashDiffers {
			s.logger.Warn("Statement file name already ingested with different content",
				logging.Field{Key: logging.FieldFile, Value: fileName},
				logging.Field{Key: logging.FieldStatement, Value: duplicate.StatementID})
		}
		if !opts.Force {
			s.logger.Info("Skipping duplicate statement",
				logging.Field{Key: logging.FieldFile, Value: fileName},
				logging.Field{Key: logging.FieldReason, Value: duplicate.Reason})
			return result, nil
		}
		s.logger.Warn("Re-ingesting duplicate statement",
			logging.Field{Key: logging.FieldFile, Value: fileName},
			logging.Field{Key: logging.FieldReason, Value: duplicate.Reason})
	}

	stmt := &models.Statement{
		CardID:         card.ID,
		FileName:       fileName,
		FileHash:       fileHash,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		Summary:        extraction.Summary,
		CategoryTotals: categoryTotals(transactions),
	}

	if err := s.db.IngestStatement(stmt, transactions); err != nil {
		return nil, fmt.Errorf("persisting statement: %w", err)
	}
	result.Statement = stmt

	if s.index != nil {
		docs := vectorindex.Documents(*stmt, transactions)
		if err := s.index.Add(ctx, docs); err != nil {
			// The statement is already committed; index feed failures
			// must not undo the ingestion.
			s.logger.Warn("Document index feed failed",
				logging.Field{Key: logging.FieldStatement, Value: stmt.ID},
				logging.Field{Key: logging.FieldError, Value: err.Error()})
		}
	}

	s.logger.Info("Statement ingested",
		logging.Field{Key: logging.FieldStatement, Value: stmt.ID},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
		logging.Field{Key: logging.FieldSkipped, Value: extraction.SkippedLines})

	return result, nil
}

func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:]), nil
}

func resolveToken(token string, referenceYear int) *time.Time {
	if token == "" {
		return nil
	}
	date, err := dateutils.ParseStatementDate(token, referenceYear)
	if err != nil {
		return nil
	}
	return &date
}

// categoryTotals sums expense amounts per category.
func categoryTotals(transactions []models.Transaction) map[models.Category]decimal.Decimal {
	totals := make(map[models.Category]decimal.Decimal)
	for _, t := range transactions {
		if !t.IsExpense() {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}
	if len(totals) == 0 {
		return nil
	}
	return totals
}
