// Package queryexec executes structured financial queries against the
// repository and shapes the results for the assistant.
package queryexec

import (
	"sort"
	"time"

	"hsouza/julius/internal/database"
	"hsouza/julius/internal/dateutils"
	"hsouza/julius/internal/logging"
	"hsouza/julius/internal/models"
	"hsouza/julius/internal/parsererror"

	"github.com/shopspring/decimal"
)

// minExpenseAmount is the strict noise floor for spending queries: an
// amount must exceed it to count as an expense.
var minExpenseAmount = decimal.NewFromFloat(0.01)

// Executor runs FinancialQuery values against the database.
type Executor struct {
	db     *database.DB
	logger logging.Logger
	now    func() time.Time
}

// New creates an Executor.
func New(db *database.DB, logger logging.Logger) *Executor {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Executor{db: db, logger: logger, now: time.Now}
}

// Execute runs one structured query. An unknown query type yields an
// UnsupportedQueryError; callers treat that as a recoverable outcome.
func (e *Executor) Execute(query models.FinancialQuery) (*models.QueryResult, error) {
	switch query.Type {
	case models.QueryLargestExpenses:
		return e.largestExpenses(query)
	case models.QueryTotalSpending:
		return e.totalSpending(query)
	case models.QueryTransactionsByAmount:
		return e.transactionsByAmount(query)
	case models.QueryRecentTransactions:
		return e.recentTransactions(query)
	case models.QuerySpendingByCategory:
		return e.spendingByCategory(query)
	default:
		return nil, &parsererror.UnsupportedQueryError{QueryType: string(query.Type)}
	}
}

func (e *Executor) largestExpenses(query models.FinancialQuery) (*models.QueryResult, error) {
	filter := database.TransactionFilter{
		Direction: models.DirectionDebit,
		Category:  query.Category,
		MaxAmount: query.MaxAmount,
	}
	if query.MinAmount != nil && query.MinAmount.GreaterThan(minExpenseAmount) {
		filter.MinAmount = query.MinAmount
	} else {
		filter.MinAmountExclusive = &minExpenseAmount
	}

	transactions, skipped, err := e.fetch(filter, query.Period)
	if err != nil {
		return nil, err
	}

	// Stable sort: equal amounts keep their retrieval order.
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Amount.GreaterThan(transactions[j].Amount)
	})
	transactions = truncate(transactions, limitOrDefault(query.Limit))

	return &models.QueryResult{
		Shape:        models.ResultShapeList,
		Transactions: transactions,
		SkippedDates: skipped,
	}, nil
}

func (e *Executor) totalSpending(query models.FinancialQuery) (*models.QueryResult, error) {
	transactions, skipped, err := e.fetch(database.TransactionFilter{
		Direction:          models.DirectionDebit,
		Category:           query.Category,
		MinAmountExclusive: &minExpenseAmount,
	}, query.Period)
	if err != nil {
		return nil, err
	}

	agg := models.Aggregation{Count: len(transactions)}
	for _, t := range transactions {
		agg.Sum = agg.Sum.Add(t.Amount)
	}
	if agg.Count > 0 {
		agg.Mean = agg.Sum.Div(decimal.NewFromInt(int64(agg.Count))).Round(2)
	}

	return &models.QueryResult{
		Shape:        models.ResultShapeAggregation,
		Aggregation:  &agg,
		SkippedDates: skipped,
	}, nil
}

func (e *Executor) transactionsByAmount(query models.FinancialQuery) (*models.QueryResult, error) {
	transactions, skipped, err := e.fetch(database.TransactionFilter{
		Category:  query.Category,
		MinAmount: query.MinAmount,
		MaxAmount: query.MaxAmount,
	}, query.Period)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Amount.GreaterThan(transactions[j].Amount)
	})
	transactions = truncate(transactions, limitOrDefault(query.Limit))

	return &models.QueryResult{
		Shape:        models.ResultShapeList,
		Transactions: transactions,
		SkippedDates: skipped,
	}, nil
}

func (e *Executor) recentTransactions(query models.FinancialQuery) (*models.QueryResult, error) {
	transactions, skipped, err := e.fetch(database.TransactionFilter{
		Category:           query.Category,
		MinAmountExclusive: &minExpenseAmount,
		MaxAmount:          query.MaxAmount,
	}, query.Period)
	if err != nil {
		return nil, err
	}

	// Newest first; same-day transactions ordered by amount, largest first.
	sort.SliceStable(transactions, func(i, j int) bool {
		if !transactions[i].Date.Equal(transactions[j].Date) {
			return transactions[i].Date.After(transactions[j].Date)
		}
		return transactions[i].Amount.GreaterThan(transactions[j].Amount)
	})
	transactions = truncate(transactions, limitOrDefault(query.Limit))

	return &models.QueryResult{
		Shape:        models.ResultShapeList,
		Transactions: transactions,
		SkippedDates: skipped,
	}, nil
}

func (e *Executor) spendingByCategory(query models.FinancialQuery) (*models.QueryResult, error) {
	transactions, skipped, err := e.fetch(database.TransactionFilter{
		Direction:          models.DirectionDebit,
		MinAmountExclusive: &minExpenseAmount,
	}, query.Period)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[models.Category]decimal.Decimal)
	for _, t := range transactions {
		byCategory[t.Category] = byCategory[t.Category].Add(t.Amount)
	}

	return &models.QueryResult{
		Shape:        models.ResultShapeAggregation,
		ByCategory:   byCategory,
		SkippedDates: skipped,
	}, nil
}

// fetch loads transactions matching the filter and applies the period
// window in memory. Dates are parsed per record: a record whose stored
// date cannot be parsed is skipped and counted, never guessed.
func (e *Executor) fetch(filter database.TransactionFilter, period string) ([]models.Transaction, int, error) {
	var start, end time.Time
	var hasPeriod bool
	if period != "" {
		var err error
		start, end, err = dateutils.ResolvePeriod(period, e.now())
		if err != nil {
			return nil, 0, err
		}
		hasPeriod = true
	}

	stored, err := e.db.ListTransactions(filter)
	if err != nil {
		return nil, 0, err
	}

	transactions := make([]models.Transaction, 0, len(stored))
	skipped := 0
	for _, s := range stored {
		date, err := dateutils.ParseISODate(s.DateRaw)
		if err != nil {
			skipped++
			e.logger.Debug("Skipping record with unparseable date",
				logging.Field{Key: "date", Value: s.DateRaw})
			continue
		}
		if hasPeriod && !dateutils.WithinRange(date, start, end) {
			continue
		}
		transactions = append(transactions, models.Transaction{
			ID:                  s.ID,
			StatementID:         s.StatementID,
			Date:                date,
			Description:         s.Description,
			DescriptionOriginal: s.DescriptionOriginal,
			Amount:              s.Amount,
			Direction:           s.Direction,
			Category:            s.Category,
			Merchant:            s.Merchant,
			IsInstallment:       s.IsInstallment,
			InstallmentInfo:     s.InstallmentInfo,
		})
	}
	return transactions, skipped, nil
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return models.DefaultQueryLimit
	}
	return limit
}

func truncate(transactions []models.Transaction, limit int) []models.Transaction {
	if len(transactions) > limit {
		return transactions[:limit]
	}
	return transactions
}
