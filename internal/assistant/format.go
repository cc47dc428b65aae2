package assistant

import (
	"fmt"
	"strings"

	"hsouza/julius/internal/currencyutils"
	"hsouza/julius/internal/models"

	"github.com/shopspring/decimal"
)

// Canned Portuguese replies for degraded outcomes. Users never see a raw
// error.
const (
	msgApology       = "Desculpe, não consegui processar sua pergunta agora. Tente novamente em instantes."
	msgNotUnderstood = "Não entendi sua pergunta. Tente algo como \"quais foram meus maiores gastos?\" ou \"quanto gastei este mês?\"."
	msgNoResults     = "Nenhuma transação encontrada para os critérios informados."
)

// FormatResult renders a query result as a Portuguese answer.
func FormatResult(result *models.QueryResult) string {
	switch {
	case result.ByCategory != nil:
		return formatByCategory(result.ByCategory)
	case result.Aggregation != nil:
		return formatAggregation(*result.Aggregation)
	default:
		return formatList(result.Transactions)
	}
}

func formatList(transactions []models.Transaction) string {
	if len(transactions) == 0 {
		return msgNoResults
	}

	var b strings.Builder
	if len(transactions) == 1 {
		b.WriteString("Encontrei 1 transação:\n")
	} else {
		fmt.Fprintf(&b, "Encontrei %d transações:\n", len(transactions))
	}

	for _, t := range transactions {
		fmt.Fprintf(&b, "- %s: %s", t.Date.Format("02/01/2006"), t.Description)
		if t.Merchant != "" && t.Merchant != t.Description {
			fmt.Fprintf(&b, " (%s)", t.Merchant)
		}
		fmt.Fprintf(&b, " — %s", currencyutils.FormatBRLWithSymbol(t.Amount))
		if !t.IsExpense() {
			b.WriteString(" (crédito)")
		}
		if t.IsInstallment && t.InstallmentInfo != "" {
			fmt.Fprintf(&b, " [parcela %s]", t.InstallmentInfo)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatAggregation(agg models.Aggregation) string {
	if agg.Count == 0 {
		return "Nenhum gasto encontrado no período."
	}
	return fmt.Sprintf("Você gastou %s em %d transações (média de %s por transação).",
		currencyutils.FormatBRLWithSymbol(agg.Sum),
		agg.Count,
		currencyutils.FormatBRLWithSymbol(agg.Mean))
}

func formatByCategory(byCategory map[models.Category]decimal.Decimal) string {
	if len(byCategory) == 0 {
		return msgNoResults
	}

	var total decimal.Decimal
	var b strings.Builder
	b.WriteString("Gastos por categoria:\n")
	for _, category := range models.AllCategories {
		amount, ok := byCategory[category]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", category.Label(), currencyutils.FormatBRLWithSymbol(amount))
		total = total.Add(amount)
	}
	fmt.Fprintf(&b, "Total: %s", currencyutils.FormatBRLWithSymbol(total))
	return b.String()
}
