package vectorindex

import (
	"context"
	"testing"
	"time"

	"hsouza/julius/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionDocument(t *testing.T) {
	tx := models.Transaction{
		Date:        time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
		Description: "Ifood Ifood Br",
		Amount:      decimal.NewFromFloat(45.9),
	}

	assert.Equal(t,
		"Transaction on 2025-01-15: Ifood Ifood Br | Amount: R$45.90",
		TransactionDocument(tx))
}

func TestStatementDocument(t *testing.T) {
	start := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.February, 5, 0, 0, 0, 0, time.UTC)
	total := decimal.NewFromFloat(165.90)

	stmt := models.Statement{
		PeriodStart: &start,
		PeriodEnd:   &end,
		Summary: models.StatementSummary{
			TotalPurchases:   &total,
			NextClosingToken: "05 MAR 2025",
		},
		CategoryTotals: map[models.Category]decimal.Decimal{
			models.CategoryFoodDelivery: decimal.NewFromFloat(45.90),
		},
	}

	doc := StatementDocument(stmt)
	assert.Contains(t, doc, "Statement Period: 2025-01-06 to 2025-02-05")
	assert.Contains(t, doc, "Total Purchases: R$165.90")
	assert.Contains(t, doc, "food_delivery=R$45.90")
	assert.Contains(t, doc, "Next Payment Due: 05 MAR 2025")
}

func TestDocumentsIncludesStatementBlob(t *testing.T) {
	stmt := models.Statement{}
	transactions := []models.Transaction{
		{Date: time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), Description: "A", Amount: decimal.NewFromInt(10)},
		{Date: time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC), Description: "B", Amount: decimal.NewFromInt(20)},
	}

	docs := Documents(stmt, transactions)
	assert.Len(t, docs, 3)
}

func TestMemoryIndex(t *testing.T) {
	index := NewMemoryIndex()

	err := index.Add(context.Background(), []string{
		"Transaction on 2025-01-15: Ifood Ifood Br | Amount: R$45.90",
		"Transaction on 2025-01-20: Posto Shell Centro | Amount: R$120.00",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, index.Len())

	matches := index.Search("IFOOD", 5)
	require.Len(t, matches, 1)
	assert.Contains(t, matches[0], "Ifood")

	assert.Empty(t, index.Search("nubank", 5))
}
