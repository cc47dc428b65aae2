package database

import (
	"database/sql"
	"fmt"
	"strings"

	"hsouza/julius/internal/models"

	"github.com/shopspring/decimal"
)

// TransactionFilter narrows transaction queries. Zero values mean
// "no constraint"; amount bounds compare the stored decimal as a number.
// MinAmount and MaxAmount are inclusive; MinAmountExclusive is strict and
// serves as the noise floor for spending queries.
type TransactionFilter struct {
	CardID             int64
	Category           models.Category
	Direction          string
	MinAmount          *decimal.Decimal
	MinAmountExclusive *decimal.Decimal
	MaxAmount          *decimal.Decimal
	Limit              int
}

func insertTransactions(tx *sql.Tx, statementID int64, transactions []models.Transaction) error {
	stmt, err := tx.Prepare(`
		INSERT INTO transactions (statement_id, date, description, description_original,
			amount, direction, category, merchant, is_installment, installment_info)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare transaction insert: %w", err)
	}
	defer stmt.Close()

	for i := range transactions {
		t := &transactions[i]
		result, err := stmt.Exec(statementID,
			t.Date.Format("2006-01-02"),
			t.Description, t.DescriptionOriginal,
			t.Amount.String(), t.Direction,
			string(t.Category), t.Merchant,
			t.IsInstallment, t.InstallmentInfo,
		)
		if err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("get transaction id: %w", err)
		}
		t.ID = id
		t.StatementID = statementID
	}
	return nil
}

// ListTransactions returns stored transactions matching the filter,
// newest first. Dates come back as raw ISO strings on the DateRaw field;
// callers resolve them so unparseable records can be counted, not lost.
func (db *DB) ListTransactions(filter TransactionFilter) ([]models.StoredTransaction, error) {
	query := strings.Builder{}
	query.WriteString(`
		SELECT t.id, t.statement_id, t.date, t.description, t.description_original,
		       t.amount, t.direction, t.category, t.merchant, t.is_installment, t.installment_info
		FROM transactions t`)

	var conditions []string
	var args []any

	if filter.CardID != 0 {
		query.WriteString(` JOIN statements s ON s.id = t.statement_id`)
		conditions = append(conditions, "s.card_id = ?")
		args = append(args, filter.CardID)
	}
	if filter.Category != "" {
		conditions = append(conditions, "t.category = ?")
		args = append(args, string(filter.Category))
	}
	if filter.Direction != "" {
		conditions = append(conditions, "t.direction = ?")
		args = append(args, filter.Direction)
	}
	if filter.MinAmount != nil {
		conditions = append(conditions, "CAST(t.amount AS REAL) >= ?")
		args = append(args, filter.MinAmount.InexactFloat64())
	}
	if filter.MinAmountExclusive != nil {
		conditions = append(conditions, "CAST(t.amount AS REAL) > ?")
		args = append(args, filter.MinAmountExclusive.InexactFloat64())
	}
	if filter.MaxAmount != nil {
		conditions = append(conditions, "CAST(t.amount AS REAL) <= ?")
		args = append(args, filter.MaxAmount.InexactFloat64())
	}

	if len(conditions) > 0 {
		query.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	query.WriteString(" ORDER BY t.date DESC, t.id DESC")
	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := db.Query(query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.StoredTransaction
	for rows.Next() {
		var t models.StoredTransaction
		var amount string
		err := rows.Scan(&t.ID, &t.StatementID, &t.DateRaw,
			&t.Description, &t.DescriptionOriginal,
			&amount, &t.Direction, &t.Category, &t.Merchant,
			&t.IsInstallment, &t.InstallmentInfo)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse stored amount %q: %w", amount, err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// CountTransactions returns the number of stored transactions, optionally
// scoped to one card
func (db *DB) CountTransactions(cardID int64) (int, error) {
	query := `SELECT COUNT(*) FROM transactions`
	var args []any
	if cardID != 0 {
		query = `SELECT COUNT(*) FROM transactions t JOIN statements s ON s.id = t.statement_id WHERE s.card_id = ?`
		args = append(args, cardID)
	}

	var count int
	if err := db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}
