package assistant

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"hsouza/julius/internal/cache"
	"hsouza/julius/internal/costs"
	"hsouza/julius/internal/database"
	"hsouza/julius/internal/logging"
	"hsouza/julius/internal/models"
	"hsouza/julius/internal/parsererror"
	"hsouza/julius/internal/queryexec"
	"hsouza/julius/internal/queryrouter"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	plan  *queryrouter.Plan
	err   error
	calls int
}

func (s *stubGenerator) Generate(_ context.Context, _ string) (*queryrouter.Plan, error) {
	s.calls++
	return s.plan, s.err
}

func newTestAssistant(t *testing.T, generator queryrouter.Generator) *Assistant {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "julius.db"))
	require.NoError(t, err)
	require.NoError(t, db.Init())
	t.Cleanup(func() { db.Close() })

	card, err := db.GetOrCreateCard("nubank")
	require.NoError(t, err)

	stmt := &models.Statement{CardID: card.ID, FileName: "fatura.pdf", FileHash: "hash"}
	transactions := []models.Transaction{
		{
			Date:        time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
			Description: "Ifood Ifood Br",
			Amount:      decimal.NewFromFloat(45.90),
			Direction:   models.DirectionDebit,
			Category:    models.CategoryFoodDelivery,
			Merchant:    "iFood",
		},
		{
			Date:        time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC),
			Description: "Posto Shell Centro",
			Amount:      decimal.NewFromFloat(120.00),
			Direction:   models.DirectionDebit,
			Category:    models.CategoryFuel,
			Merchant:    "Shell",
		},
	}
	require.NoError(t, db.IngestStatement(stmt, transactions))

	return New(
		queryrouter.New(&logging.MockLogger{}),
		generator,
		queryexec.New(db, &logging.MockLogger{}),
		cache.New(10, time.Minute),
		costs.NewTracker(),
		&logging.MockLogger{},
	)
}

func TestAskPatternMatched(t *testing.T) {
	a := newTestAssistant(t, nil)

	answer := a.Ask(context.Background(), "Quais foram meus maiores gastos?")
	assert.Contains(t, answer, "Posto Shell Centro")
	assert.Contains(t, answer, "R$ 120,00")
	assert.Contains(t, answer, "R$ 45,90")

	stats := a.Stats()
	assert.Equal(t, 1, stats.PatternMatches)
	assert.Zero(t, stats.LLMCalls)
}

func TestAskAnswersFromCacheOnRepeat(t *testing.T) {
	a := newTestAssistant(t, nil)

	first := a.Ask(context.Background(), "Quanto gastei?")
	// Accent and casing variants hit the same cache entry.
	second := a.Ask(context.Background(), "QUANTO GASTEI?")
	assert.Equal(t, first, second)

	stats := a.Stats()
	assert.Equal(t, 1, stats.PatternMatches)
	assert.Equal(t, 1, stats.CacheHits)
}

func TestAskAggregation(t *testing.T) {
	a := newTestAssistant(t, nil)

	answer := a.Ask(context.Background(), "Quanto gastei?")
	assert.Contains(t, answer, "R$ 165,90")
	assert.Contains(t, answer, "2 transações")
}

func TestAskUnmatchedWithoutGenerator(t *testing.T) {
	a := newTestAssistant(t, nil)

	answer := a.Ask(context.Background(), "Qual é a previsão do tempo?")
	assert.Equal(t, msgNotUnderstood, answer)
	assert.Zero(t, a.Stats().LLMCalls)
}

func TestAskFallsBackToGenerator(t *testing.T) {
	gen := &stubGenerator{
		plan: &queryrouter.Plan{
			Pattern: "llm",
			Query:   models.FinancialQuery{Type: models.QueryLargestExpenses, Limit: 1},
			Shape:   models.ResultShapeList,
			APICost: 1,
		},
	}
	a := newTestAssistant(t, gen)

	answer := a.Ask(context.Background(), "Qual foi minha despesa mais cara do cartão de crédito?")
	assert.Contains(t, answer, "Posto Shell Centro")
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, 1, a.Stats().LLMCalls)
}

func TestAskGeneratorInvalidReply(t *testing.T) {
	gen := &stubGenerator{
		err: &parsererror.QueryGenerationError{Question: "q", Reason: "unsupported query_type"},
	}
	a := newTestAssistant(t, gen)

	answer := a.Ask(context.Background(), "pergunta misteriosa")
	assert.Equal(t, msgNotUnderstood, answer)
}

func TestAskGeneratorTransportFailure(t *testing.T) {
	gen := &stubGenerator{
		err: &parsererror.QueryGenerationError{Question: "q", Reason: "gemini api call failed", Err: errors.New("timeout")},
	}
	a := newTestAssistant(t, gen)

	answer := a.Ask(context.Background(), "pergunta misteriosa")
	assert.Equal(t, msgApology, answer)
}

func TestSessionIDsAreUnique(t *testing.T) {
	a := newTestAssistant(t, nil)
	b := newTestAssistant(t, nil)
	assert.NotEqual(t, a.SessionID(), b.SessionID())
	assert.NotEmpty(t, a.SessionID())
}
