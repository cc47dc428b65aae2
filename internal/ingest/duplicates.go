package ingest

import (
	"time"

	"hsouza/julius/internal/database"
	"hsouza/julius/internal/models"
)

// FindDuplicate checks whether a statement was already ingested for the
// card. Checks run in precedence order: content hash first, then file
// name, then billing period. A file-name match whose stored hash differs
// from the incoming one is still a duplicate, flagged so callers can warn
// that the content changed.
func FindDuplicate(db *database.DB, cardID int64, fileHash, fileName string, periodStart, periodEnd *time.Time) (*models.DuplicateMatch, error) {
	id, err := db.FindStatementByHash(cardID, fileHash)
	if err != nil {
		return nil, err
	}
	if id != 0 {
		return &models.DuplicateMatch{
			Reason:      models.DuplicateReasonFileHash,
			StatementID: id,
		}, nil
	}

	id, storedHash, err := db.FindStatementByFileName(cardID, fileName)
	if err != nil {
		return nil, err
	}
	if id != 0 {
		return &models.DuplicateMatch{
			Reason:      models.DuplicateReasonFilename,
			StatementID: id,
			HashDiffers: storedHash != fileHash,
		}, nil
	}

	id, err = db.FindStatementByPeriod(cardID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	if id != 0 {
		return &models.DuplicateMatch{
			Reason:      models.DuplicateReasonStatementPeriod,
			StatementID: id,
		}, nil
	}
	return nil, nil
}
