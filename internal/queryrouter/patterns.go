package queryrouter

import (
	"regexp"

	"hsouza/julius/internal/models"
)

// pattern is one recognizable Portuguese question family. Keywords are
// stored pre-normalized (lowercase, accents stripped) and matched against
// the normalized question; the first pattern whose keyword hits wins.
type pattern struct {
	name      string
	keywords  []string
	queryType models.QueryType
	shape     string
	limit     int
	// defaultMinAmount applies when the question names no value.
	defaultMinAmount int
}

// Patterns are ordered: more specific families come before the catch-all
// period listing. Matching cost is zero API calls.
var patterns = []pattern{
	{
		name:      "maiores_gastos",
		keywords:  []string{"maiores gastos", "maiores despesas", "mais gastei", "maior gasto", "gastos mais altos"},
		queryType: models.QueryLargestExpenses,
		shape:     models.ResultShapeList,
		limit:     10,
	},
	{
		name:      "total_gasto",
		keywords:  []string{"quanto gastei", "total gasto", "soma dos gastos", "valor total", "total de gastos"},
		queryType: models.QueryTotalSpending,
		shape:     models.ResultShapeAggregation,
	},
	{
		name:      "ultimas_transacoes",
		keywords:  []string{"ultimas transacoes", "ultimos gastos", "transacoes recentes", "gastos recentes"},
		queryType: models.QueryRecentTransactions,
		shape:     models.ResultShapeList,
		limit:     15,
	},
	{
		name:             "gastos_acima_valor",
		keywords:         []string{"gastos acima", "transacoes acima", "maior que", "superior a", "mais de"},
		queryType:        models.QueryTransactionsByAmount,
		shape:            models.ResultShapeList,
		limit:            15,
		defaultMinAmount: 100,
	},
	{
		name:      "transacoes_periodo",
		keywords:  []string{"transacoes", "compras", "gastos do", "movimentacao", "atividade"},
		queryType: models.QueryRecentTransactions,
		shape:     models.ResultShapeList,
		limit:     20,
	},
}

// periodTerms map Portuguese time expressions onto relative periods.
// Scanned in order; the first hit wins.
var periodTerms = []struct {
	term   string
	period string
}{
	{"mes passado", "last_month"},
	{"ultimo mes", "last_month"},
	{"mes anterior", "last_month"},

	{"este mes", "this_month"},
	{"neste mes", "this_month"},
	{"mes atual", "this_month"},
	{"esse mes", "this_month"},

	{"ultimos 30 dias", "last_30_days"},
	{"30 dias", "last_30_days"},
}

// valuePatterns recognize monetary thresholds ("acima de R$ 100",
// "maior que 50 reais"). The captured amount uses the Brazilian decimal
// comma.
var valuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`acima de r?\$?\s*(\d+(?:,\d{2})?)`),
	regexp.MustCompile(`maior que r?\$?\s*(\d+(?:,\d{2})?)`),
	regexp.MustCompile(`superior a r?\$?\s*(\d+(?:,\d{2})?)`),
	regexp.MustCompile(`mais de r?\$?\s*(\d+(?:,\d{2})?)`),
	regexp.MustCompile(`r?\$?\s*(\d+(?:,\d{2})?) ou mais`),
}
