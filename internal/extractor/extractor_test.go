package extractor

import (
	"errors"
	"testing"

	"hsouza/julius/internal/logging"
	"hsouza/julius/internal/pdftext"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `Nubank Fatura
Período vigente: 01 JAN a 31 JAN
15 JAN IFOOD *IFOOD BR R$ 45,90
20 JAN POSTO SHELL CENTRO R$ 120,00
22 JAN Compra em 3 vez de R$ 50,00
23 JAN Entrada parcelamento R$ 30,00
01 JAN - a 31 JAN resumo do período R$ 999,99
linha sem data R$ 10,00
25 JAN transferência sem valor
`

const summaryPage = `Resumo da fatura
Fatura anterior R$ 1.200,50
Pagamento recebido −R$ 1.200,50
Total de compras de todos os cartões, incluindo adicionais R$ 165,90
Outros lançamentos R$ 15,00
Total a pagar R$ 180,90
Limite total R$ 500,00 R$ 4.500,00
Fechamento da próxima fatura 27 FEV 2025
Saldo em aberto da próxima fatura R$ 75,00
Saldo em aberto total R$ 255,90
`

func newTestExtractor(pages []string) *Extractor {
	return New(pdftext.NewMockPageSource(pages, nil), &logging.MockLogger{})
}

func TestExtractTransactions(t *testing.T) {
	e := newTestExtractor([]string{samplePage})
	result, err := e.Extract("fatura.pdf")
	require.NoError(t, err)

	require.Len(t, result.Lines, 2)

	first := result.Lines[0]
	assert.Equal(t, "15 JAN", first.DateToken)
	assert.Equal(t, "IFOOD *IFOOD BR", first.Description)
	assert.True(t, decimal.NewFromFloat(45.90).Equal(first.Amount))
	assert.Equal(t, 1, first.Page)

	second := result.Lines[1]
	assert.Equal(t, "20 JAN", second.DateToken)
	assert.Equal(t, "POSTO SHELL CENTRO", second.Description)
	assert.True(t, decimal.NewFromFloat(120.00).Equal(second.Amount))
}

func TestExtractSkipsInstallmentOffersAndRanges(t *testing.T) {
	e := newTestExtractor([]string{samplePage})
	result, err := e.Extract("fatura.pdf")
	require.NoError(t, err)

	for _, line := range result.Lines {
		assert.NotContains(t, line.Description, "vez")
		assert.NotContains(t, line.Description, "resumo")
	}
}

func TestExtractNegativeAmount(t *testing.T) {
	page := "10 FEV Estorno compra R$ -59,90\n"
	e := newTestExtractor([]string{page})
	result, err := e.Extract("fatura.pdf")
	require.NoError(t, err)

	require.Len(t, result.Lines, 1)
	assert.True(t, decimal.NewFromFloat(-59.90).Equal(result.Lines[0].Amount))
}

func TestExtractMultiplePages(t *testing.T) {
	pages := []string{
		"15 JAN IFOOD *IFOOD BR R$ 45,90\n",
		"20 JAN POSTO SHELL CENTRO R$ 120,00\n",
	}
	e := newTestExtractor(pages)
	result, err := e.Extract("fatura.pdf")
	require.NoError(t, err)

	require.Len(t, result.Lines, 2)
	assert.Equal(t, 1, result.Lines[0].Page)
	assert.Equal(t, 2, result.Lines[1].Page)
}

func TestExtractEmptyDocument(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
	}{
		{name: "no pages", pages: nil},
		{name: "blank page", pages: []string{""}},
		{name: "text without transactions", pages: []string{"apenas texto\nsem lançamentos\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestExtractor(tt.pages)
			result, err := e.Extract("fatura.pdf")
			require.NoError(t, err)
			assert.Empty(t, result.Lines)
		})
	}
}

func TestExtractSourceError(t *testing.T) {
	e := New(pdftext.NewMockPageSource(nil, errors.New("unreadable")), &logging.MockLogger{})
	_, err := e.Extract("fatura.pdf")
	assert.Error(t, err)
}

func TestExtractSummary(t *testing.T) {
	e := newTestExtractor([]string{samplePage, summaryPage})
	result, err := e.Extract("fatura.pdf")
	require.NoError(t, err)

	s := result.Summary

	require.NotNil(t, s.PreviousInvoice)
	assert.True(t, decimal.NewFromFloat(1200.50).Equal(*s.PreviousInvoice))

	// payments and other charges offset the invoice, so they come out negated
	require.NotNil(t, s.PaymentReceived)
	assert.True(t, decimal.NewFromFloat(-1200.50).Equal(*s.PaymentReceived))
	require.NotNil(t, s.OtherCharges)
	assert.True(t, decimal.NewFromFloat(-15.00).Equal(*s.OtherCharges))

	require.NotNil(t, s.TotalPurchases)
	assert.True(t, decimal.NewFromFloat(165.90).Equal(*s.TotalPurchases))
	require.NotNil(t, s.TotalDue)
	assert.True(t, decimal.NewFromFloat(180.90).Equal(*s.TotalDue))

	require.NotNil(t, s.UsedLimit)
	assert.True(t, decimal.NewFromFloat(500.00).Equal(*s.UsedLimit))
	require.NotNil(t, s.AvailableLimit)
	assert.True(t, decimal.NewFromFloat(4500.00).Equal(*s.AvailableLimit))
	require.NotNil(t, s.TotalLimit)
	assert.True(t, decimal.NewFromFloat(5000.00).Equal(*s.TotalLimit))

	require.NotNil(t, s.NextInvoiceBalance)
	assert.True(t, decimal.NewFromFloat(75.00).Equal(*s.NextInvoiceBalance))
	require.NotNil(t, s.TotalOpenBalance)
	assert.True(t, decimal.NewFromFloat(255.90).Equal(*s.TotalOpenBalance))

	assert.Equal(t, "01 JAN", s.PeriodStartToken)
	assert.Equal(t, "31 JAN", s.PeriodEndToken)
	assert.Equal(t, "27 FEV 2025", s.NextClosingToken)
}

func TestExtractSummaryAbsentFields(t *testing.T) {
	e := newTestExtractor([]string{"15 JAN IFOOD R$ 45,90\n"})
	result, err := e.Extract("fatura.pdf")
	require.NoError(t, err)

	s := result.Summary
	// absent anchors mean nil, never zero
	assert.Nil(t, s.PreviousInvoice)
	assert.Nil(t, s.PaymentReceived)
	assert.Nil(t, s.TotalDue)
	assert.Nil(t, s.UsedLimit)
	assert.Empty(t, s.PeriodStartToken)
	assert.Empty(t, s.NextClosingToken)
}
