package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"hsouza/julius/internal/dateutils"
	"hsouza/julius/internal/models"

	"github.com/shopspring/decimal"
)

// FindStatementByHash looks for a statement of the given card with the
// same file content hash, returning 0 when none exists
func (db *DB) FindStatementByHash(cardID int64, fileHash string) (int64, error) {
	return db.findStatement(`
		SELECT id FROM statements WHERE card_id = ? AND file_hash = ?`,
		cardID, fileHash)
}

// FindStatementByFileName looks for a statement of the given card with
// the same file name, returning its id and stored hash
func (db *DB) FindStatementByFileName(cardID int64, fileName string) (int64, string, error) {
	var id int64
	var hash string
	err := db.QueryRow(`
		SELECT id, file_hash FROM statements WHERE card_id = ? AND file_name = ?`,
		cardID, fileName).Scan(&id, &hash)
	if err == sql.ErrNoRows {
		return 0, "", nil
	}
	if err != nil {
		return 0, "", fmt.Errorf("query statement by file name: %w", err)
	}
	return id, hash, nil
}

// FindStatementByPeriod looks for a statement of the given card covering
// the same billing period, returning 0 when none exists
func (db *DB) FindStatementByPeriod(cardID int64, periodStart, periodEnd *time.Time) (int64, error) {
	if periodStart == nil || periodEnd == nil {
		return 0, nil
	}
	return db.findStatement(`
		SELECT id FROM statements WHERE card_id = ? AND period_start = ? AND period_end = ?`,
		cardID, dateutils.ToISODate(*periodStart), dateutils.ToISODate(*periodEnd))
}

func (db *DB) findStatement(query string, args ...any) (int64, error) {
	var id int64
	err := db.QueryRow(query, args...).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query statement: %w", err)
	}
	return id, nil
}

// ListStatements returns all statements of a card, newest period first
func (db *DB) ListStatements(cardID int64) ([]models.Statement, error) {
	rows, err := db.Query(`
		SELECT id, card_id, file_name, file_hash, period_start, period_end,
		       previous_invoice, payment_received, total_purchases, other_charges,
		       total_due, used_limit, available_limit, total_limit,
		       next_closing_date, next_invoice_balance, total_open_balance,
		       category_totals_json, ingested_at
		FROM statements WHERE card_id = ?
		ORDER BY period_start DESC, id DESC`, cardID)
	if err != nil {
		return nil, fmt.Errorf("query statements: %w", err)
	}
	defer rows.Close()

	var statements []models.Statement
	for rows.Next() {
		stmt, err := scanStatement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan statement: %w", err)
		}
		statements = append(statements, *stmt)
	}
	return statements, rows.Err()
}

func scanStatement(rows *sql.Rows) (*models.Statement, error) {
	var stmt models.Statement
	var periodStart, periodEnd, totalsJSON sql.NullString
	var prev, payment, purchases, other, due, used, available, total, nextClosing, nextBalance, openBalance sql.NullString

	err := rows.Scan(&stmt.ID, &stmt.CardID, &stmt.FileName, &stmt.FileHash,
		&periodStart, &periodEnd,
		&prev, &payment, &purchases, &other, &due, &used, &available, &total,
		&nextClosing, &nextBalance, &openBalance,
		&totalsJSON, &stmt.IngestedAt)
	if err != nil {
		return nil, err
	}

	if periodStart.Valid {
		t, err := dateutils.ParseISODate(periodStart.String)
		if err != nil {
			return nil, err
		}
		stmt.PeriodStart = &t
	}
	if periodEnd.Valid {
		t, err := dateutils.ParseISODate(periodEnd.String)
		if err != nil {
			return nil, err
		}
		stmt.PeriodEnd = &t
	}

	for _, f := range []struct {
		src sql.NullString
		dst **decimal.Decimal
	}{
		{prev, &stmt.Summary.PreviousInvoice},
		{payment, &stmt.Summary.PaymentReceived},
		{purchases, &stmt.Summary.TotalPurchases},
		{other, &stmt.Summary.OtherCharges},
		{due, &stmt.Summary.TotalDue},
		{used, &stmt.Summary.UsedLimit},
		{available, &stmt.Summary.AvailableLimit},
		{total, &stmt.Summary.TotalLimit},
		{nextBalance, &stmt.Summary.NextInvoiceBalance},
		{openBalance, &stmt.Summary.TotalOpenBalance},
	} {
		d, err := nullToDecimal(f.src)
		if err != nil {
			return nil, err
		}
		*f.dst = d
	}
	if nextClosing.Valid {
		stmt.Summary.NextClosingToken = nextClosing.String
	}

	if totalsJSON.Valid && totalsJSON.String != "" {
		if err := json.Unmarshal([]byte(totalsJSON.String), &stmt.CategoryTotals); err != nil {
			return nil, fmt.Errorf("decode category totals: %w", err)
		}
	}
	return &stmt, nil
}

func insertStatement(tx *sql.Tx, stmt *models.Statement) error {
	var periodStart, periodEnd any
	if stmt.PeriodStart != nil {
		periodStart = dateutils.ToISODate(*stmt.PeriodStart)
	}
	if stmt.PeriodEnd != nil {
		periodEnd = dateutils.ToISODate(*stmt.PeriodEnd)
	}

	var totalsJSON any
	if len(stmt.CategoryTotals) > 0 {
		data, err := json.Marshal(stmt.CategoryTotals)
		if err != nil {
			return fmt.Errorf("encode category totals: %w", err)
		}
		totalsJSON = string(data)
	}

	var nextClosing any
	if stmt.Summary.NextClosingToken != "" {
		nextClosing = stmt.Summary.NextClosingToken
	}

	result, err := tx.Exec(`
		INSERT INTO statements (card_id, file_name, file_hash, period_start, period_end,
			previous_invoice, payment_received, total_purchases, other_charges,
			total_due, used_limit, available_limit, total_limit,
			next_closing_date, next_invoice_balance, total_open_balance,
			category_totals_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stmt.CardID, stmt.FileName, stmt.FileHash, periodStart, periodEnd,
		decimalToNull(stmt.Summary.PreviousInvoice),
		decimalToNull(stmt.Summary.PaymentReceived),
		decimalToNull(stmt.Summary.TotalPurchases),
		decimalToNull(stmt.Summary.OtherCharges),
		decimalToNull(stmt.Summary.TotalDue),
		decimalToNull(stmt.Summary.UsedLimit),
		decimalToNull(stmt.Summary.AvailableLimit),
		decimalToNull(stmt.Summary.TotalLimit),
		nextClosing,
		decimalToNull(stmt.Summary.NextInvoiceBalance),
		decimalToNull(stmt.Summary.TotalOpenBalance),
		totalsJSON,
	)
	if err != nil {
		return fmt.Errorf("insert statement: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get statement id: %w", err)
	}
	stmt.ID = id
	return nil
}

// DeleteStatement removes a statement and, via cascade, its transactions
func (db *DB) DeleteStatement(id int64) error {
	_, err := db.Exec(`DELETE FROM statements WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete statement: %w", err)
	}
	return nil
}

// IngestStatement persists a statement with its transactions atomically.
// The card's limits are refreshed from the statement summary in the same
// transaction; any failure rolls everything back.
func (db *DB) IngestStatement(stmt *models.Statement, transactions []models.Transaction) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if stmt.Summary.UsedLimit != nil || stmt.Summary.AvailableLimit != nil || stmt.Summary.TotalLimit != nil {
		_, err := tx.Exec(`
			UPDATE cards SET used_limit = ?, available_limit = ?, total_limit = ?
			WHERE id = ?`,
			decimalToNull(stmt.Summary.UsedLimit),
			decimalToNull(stmt.Summary.AvailableLimit),
			decimalToNull(stmt.Summary.TotalLimit),
			stmt.CardID,
		)
		if err != nil {
			return fmt.Errorf("update card limits: %w", err)
		}
	}

	if err := insertStatement(tx, stmt); err != nil {
		return err
	}

	if err := insertTransactions(tx, stmt.ID, transactions); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit statement: %w", err)
	}
	return nil
}
