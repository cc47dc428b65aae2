package models

import (
	"github.com/shopspring/decimal"
)

// QueryType identifies a supported structured financial query.
type QueryType string

const (
	QueryLargestExpenses      QueryType = "largest_expenses"
	QueryTotalSpending        QueryType = "total_spending"
	QueryTransactionsByAmount QueryType = "transactions_by_amount"
	QueryRecentTransactions   QueryType = "recent_transactions"
	QuerySpendingByCategory   QueryType = "spending_by_category"
)

// DefaultQueryLimit bounds list-shaped results when the question does not
// name a count.
const DefaultQueryLimit = 5

// FinancialQuery is a fully parameterized structured query, produced
// either by the pattern router or by the LLM fallback.
type FinancialQuery struct {
	Type      QueryType
	Period    string
	Limit     int
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	Category  Category
}

// Result shapes.
const (
	ResultShapeList        = "list"
	ResultShapeAggregation = "aggregation"
)

// Aggregation is the numeric summary produced by aggregation-shaped
// queries. Mean is zero when Count is zero.
type Aggregation struct {
	Sum   decimal.Decimal
	Count int
	Mean  decimal.Decimal
}

// QueryResult is the outcome of executing a FinancialQuery. Exactly one
// of Transactions or Aggregation is populated, per Shape. SkippedDates
// counts records whose stored date could not be parsed and were excluded
// from period filtering.
type QueryResult struct {
	Shape        string
	Transactions []Transaction
	Aggregation  *Aggregation
	ByCategory   map[Category]decimal.Decimal
	SkippedDates int
}
