package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementSummary holds the invoice-level figures printed on a statement.
// Every field is optional: a nil pointer or empty token means the anchor
// phrase was not found on the document, which is different from a value of
// zero. PaymentReceived and OtherCharges are stored negated, matching how
// they offset the invoice total. Date tokens keep the document's own form
// ("21 AGO"); the year is resolved at ingestion time.
type StatementSummary struct {
	PreviousInvoice    *decimal.Decimal
	PaymentReceived    *decimal.Decimal
	TotalPurchases     *decimal.Decimal
	OtherCharges       *decimal.Decimal
	TotalDue           *decimal.Decimal
	UsedLimit          *decimal.Decimal
	AvailableLimit     *decimal.Decimal
	TotalLimit         *decimal.Decimal
	NextInvoiceBalance *decimal.Decimal
	TotalOpenBalance   *decimal.Decimal
	PeriodStartToken   string
	PeriodEndToken     string
	NextClosingToken   string
}

// Statement is a stored, ingested statement file for a card. Period dates
// are the summary's period tokens resolved against the reference year.
type Statement struct {
	ID             int64
	CardID         int64
	FileName       string
	FileHash       string
	PeriodStart    *time.Time
	PeriodEnd      *time.Time
	Summary        StatementSummary
	CategoryTotals map[Category]decimal.Decimal
	IngestedAt     time.Time
}

// Card is a registered credit card that statements belong to. Limits are
// refreshed from the latest ingested statement.
type Card struct {
	ID             int64
	Name           string
	LastDigits     string
	UsedLimit      *decimal.Decimal
	AvailableLimit *decimal.Decimal
	TotalLimit     *decimal.Decimal
}

// ExtractionResult is everything pulled from one statement document.
type ExtractionResult struct {
	Lines        []RawTransactionLine
	Summary      StatementSummary
	SkippedLines int
}

// DuplicateMatch describes why an incoming statement was flagged as
// already ingested. Reason is one of the DuplicateReason constants.
type DuplicateMatch struct {
	Reason      string
	StatementID int64
	HashDiffers bool
}
