package normalizer

import (
	"testing"

	"hsouza/julius/internal/logging"
	"hsouza/julius/internal/models"
	"hsouza/julius/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	n, err := New(nil, &logging.MockLogger{})
	require.NoError(t, err)
	return n
}

func TestCategorize(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		name        string
		description string
		expected    models.Category
	}{
		{
			name:        "ifood is food delivery",
			description: "IFOOD *IFOOD BR",
			expected:    models.CategoryFoodDelivery,
		},
		{
			name:        "uber eats beats uber",
			description: "UBER EATS SAO PAULO",
			expected:    models.CategoryFoodDelivery,
		},
		{
			name:        "plain uber is transport",
			description: "UBER *TRIP",
			expected:    models.CategoryTransport,
		},
		{
			name:        "posto is fuel",
			description: "POSTO SHELL CENTRO",
			expected:    models.CategoryFuel,
		},
		{
			name:        "accented keyword still matches",
			description: "FARMÁCIA PAGUE MENOS",
			expected:    models.CategoryHealth,
		},
		{
			name:        "case insensitive",
			description: "netflix.com",
			expected:    models.CategoryEntertainment,
		},
		{
			name:        "supermarket",
			description: "SUPERMERCADO EXTRA SP",
			expected:    models.CategoryGroceries,
		},
		{
			name:        "unknown lands on others",
			description: "ZXQW PAGAMENTOS",
			expected:    models.CategoryOthers,
		},
		{
			name:        "empty description",
			description: "",
			expected:    models.CategoryOthers,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Categorize(tt.description))
		})
	}
}

func TestCategorizeFirstMatchWins(t *testing.T) {
	mock := &store.MockRuleStore{
		Rules: store.RulesConfig{
			Categories: []store.CategoryRule{
				{Category: models.CategoryRestaurants, Keywords: []string{"pizzaria"}},
				{Category: models.CategoryFoodDelivery, Keywords: []string{"pizzaria"}},
			},
		},
	}
	n, err := New(mock, &logging.MockLogger{})
	require.NoError(t, err)

	// both rules match; the earlier one in the table must win
	assert.Equal(t, models.CategoryRestaurants, n.Categorize("PIZZARIA DO ZE"))
}

func TestExtractMerchant(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		name        string
		description string
		expected    string
	}{
		{
			name:        "known merchant ifood",
			description: "IFOOD *IFOOD BR",
			expected:    "iFood",
		},
		{
			name:        "uber eats before uber",
			description: "UBER EATS RESTAURANTE",
			expected:    "Uber Eats",
		},
		{
			name:        "plain uber",
			description: "UBER *TRIP HELP.UBER.COM",
			expected:    "Uber",
		},
		{
			name:        "posto shell maps to shell",
			description: "POSTO SHELL CENTRO",
			expected:    "Shell",
		},
		{
			name:        "corporate suffix stripped",
			description: "PADARIA IMPERIO LTDA",
			expected:    "Padaria Imperio",
		},
		{
			name:        "trailing state code stripped",
			description: "RESTAURANTE BOM PRATO SP",
			expected:    "Restaurante Bom Prato",
		},
		{
			name:        "clipped to three tokens",
			description: "LIVRARIA CULTURA DO CENTRO NOVO",
			expected:    "Livraria Cultura do",
		},
		{
			name:        "empty description",
			description: "",
			expected:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.ExtractMerchant(tt.description))
		})
	}
}

func TestDetectInstallment(t *testing.T) {
	tests := []struct {
		name         string
		description  string
		expectedFlag bool
		expectedInfo string
	}{
		{
			name:         "well-formed marker",
			description:  "magazine luiza 2/6",
			expectedFlag: true,
			expectedInfo: "2/6",
		},
		{
			name:         "first of many",
			description:  "loja abc 1/12",
			expectedFlag: true,
			expectedInfo: "1/12",
		},
		{
			name:         "current above total rejected",
			description:  "loja abc 7/6",
			expectedFlag: false,
			expectedInfo: "",
		},
		{
			name:         "single installment rejected",
			description:  "loja abc 1/1",
			expectedFlag: false,
			expectedInfo: "",
		},
		{
			name:         "parcela stem flags without info",
			description:  "compra parcelada loja abc",
			expectedFlag: true,
			expectedInfo: "",
		},
		{
			name:         "no marker",
			description:  "ifood br",
			expectedFlag: false,
			expectedInfo: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag, info := DetectInstallment(tt.description)
			assert.Equal(t, tt.expectedFlag, flag)
			assert.Equal(t, tt.expectedInfo, info)
		})
	}
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "Ifood Ifood Br", CleanDescription("IFOOD  *IFOOD   BR"))
	assert.Equal(t, "Posto Shell Centro", CleanDescription("POSTO SHELL -- CENTRO"))
}

func TestNormalizeLine(t *testing.T) {
	n := newTestNormalizer(t)

	line := models.RawTransactionLine{
		DateToken:   "15 JAN",
		Description: "IFOOD *IFOOD BR",
		Amount:      decimal.NewFromFloat(45.90),
		Page:        1,
	}

	tx, err := n.NormalizeLine(line, 2025)
	require.NoError(t, err)

	assert.Equal(t, "2025-01-15", tx.Date.Format("2006-01-02"))
	assert.Equal(t, "Ifood Ifood Br", tx.Description)
	assert.Equal(t, "IFOOD *IFOOD BR", tx.DescriptionOriginal)
	assert.True(t, decimal.NewFromFloat(45.90).Equal(tx.Amount))
	assert.Equal(t, models.DirectionDebit, tx.Direction)
	assert.Equal(t, models.CategoryFoodDelivery, tx.Category)
	assert.Equal(t, "iFood", tx.Merchant)
	assert.False(t, tx.IsInstallment)
}

func TestNormalizeLineNegativeAmount(t *testing.T) {
	n := newTestNormalizer(t)

	line := models.RawTransactionLine{
		DateToken:   "10 FEV",
		Description: "Estorno compra",
		Amount:      decimal.NewFromFloat(-59.90),
	}

	tx, err := n.NormalizeLine(line, 2025)
	require.NoError(t, err)

	// stored amount is always positive; the direction carries the sign
	assert.True(t, decimal.NewFromFloat(59.90).Equal(tx.Amount))
	assert.Equal(t, models.DirectionCredit, tx.Direction)
	assert.False(t, tx.IsExpense())
}

func TestNormalizeDropsBadDates(t *testing.T) {
	n := newTestNormalizer(t)

	lines := []models.RawTransactionLine{
		{DateToken: "15 JAN", Description: "IFOOD *IFOOD BR", Amount: decimal.NewFromFloat(45.90)},
		{DateToken: "15 XYZ", Description: "LINHA RUIM", Amount: decimal.NewFromFloat(10.00)},
		{DateToken: "20 JAN", Description: "POSTO SHELL CENTRO", Amount: decimal.NewFromFloat(120.00)},
	}

	transactions, stats := n.Normalize(lines, 2025)

	assert.Len(t, transactions, 2)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Kept)
	assert.Equal(t, 1, stats.Dropped)
}

func TestNormalizeCountsFallbacks(t *testing.T) {
	n := newTestNormalizer(t)

	lines := []models.RawTransactionLine{
		{DateToken: "15 JAN", Description: "ZXQW PAGAMENTOS", Amount: decimal.NewFromFloat(10.00)},
	}

	transactions, stats := n.Normalize(lines, 2025)
	require.Len(t, transactions, 1)
	assert.Equal(t, models.CategoryOthers, transactions[0].Category)
	assert.Equal(t, 1, stats.Fallbacks)
}

func TestNormalizeEndToEndScenario(t *testing.T) {
	n := newTestNormalizer(t)

	lines := []models.RawTransactionLine{
		{DateToken: "15 JAN", Description: "IFOOD *IFOOD BR", Amount: decimal.NewFromFloat(45.90)},
		{DateToken: "20 JAN", Description: "POSTO SHELL CENTRO", Amount: decimal.NewFromFloat(120.00)},
	}

	transactions, stats := n.Normalize(lines, 2025)
	require.Len(t, transactions, 2)
	assert.Equal(t, 2, stats.Kept)

	assert.Equal(t, "2025-01-15", transactions[0].Date.Format("2006-01-02"))
	assert.Equal(t, models.CategoryFoodDelivery, transactions[0].Category)
	assert.Equal(t, "iFood", transactions[0].Merchant)

	assert.Equal(t, "2025-01-20", transactions[1].Date.Format("2006-01-02"))
	assert.Equal(t, models.CategoryFuel, transactions[1].Category)
	assert.Equal(t, "Shell", transactions[1].Merchant)
}
