package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawTransactionLine is one transaction line recognized on a statement
// page, before normalization. DateToken keeps the statement's own "DD MON"
// form; Amount carries the statement's sign.
type RawTransactionLine struct {
	DateToken   string
	Description string
	Amount      decimal.Decimal
	Page        int
}

// Transaction is a normalized card transaction ready for storage and
// querying. Amount is always positive; Direction tells charges from
// payments and refunds.
type Transaction struct {
	ID                  int64
	StatementID         int64
	Date                time.Time
	Description         string
	DescriptionOriginal string
	Amount              decimal.Decimal
	Direction           string
	Category            Category
	Merchant            string
	IsInstallment       bool
	InstallmentInfo     string
}

// IsExpense reports whether the transaction is a charge on the card.
func (t Transaction) IsExpense() bool {
	return t.Direction == DirectionDebit
}

// StoredTransaction is a transaction as read back from storage. The date
// stays in its raw ISO form so query code can resolve it per record and
// count the unresolvable ones instead of failing the whole result.
type StoredTransaction struct {
	ID                  int64
	StatementID         int64
	DateRaw             string
	Description         string
	DescriptionOriginal string
	Amount              decimal.Decimal
	Direction           string
	Category            Category
	Merchant            string
	IsInstallment       bool
	InstallmentInfo     string
}

// IsExpense reports whether the stored transaction is a charge.
func (t StoredTransaction) IsExpense() bool {
	return t.Direction == DirectionDebit
}
