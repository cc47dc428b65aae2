package queryrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"hsouza/julius/internal/logging"
	"hsouza/julius/internal/models"
	"hsouza/julius/internal/parsererror"

	"github.com/google/generative-ai-go/genai"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"
)

const llmPrompt = `Pergunta: %s

Converta a pergunta em uma consulta financeira estruturada.

Responda SOMENTE com JSON neste formato:
{"query_type": "...", "period": "...", "limit": 5, "min_amount": null, "max_amount": null, "category": null}

query_type deve ser um de: largest_expenses, total_spending, transactions_by_amount, recent_transactions, spending_by_category.
period deve ser um de: last_month, this_month, last_30_days, ou null.
category deve ser uma de: %s, ou null.
Valores monetários em número decimal com ponto.`

// llmReply is the JSON schema the model must produce.
type llmReply struct {
	QueryType string   `json:"query_type"`
	Period    *string  `json:"period"`
	Limit     int      `json:"limit"`
	MinAmount *float64 `json:"min_amount"`
	MaxAmount *float64 `json:"max_amount"`
	Category  *string  `json:"category"`
}

var supportedPeriods = map[string]bool{
	"last_month":   true,
	"this_month":   true,
	"last_30_days": true,
}

var supportedQueryTypes = map[models.QueryType]bool{
	models.QueryLargestExpenses:      true,
	models.QueryTotalSpending:        true,
	models.QueryTransactionsByAmount: true,
	models.QueryRecentTransactions:   true,
	models.QuerySpendingByCategory:   true,
}

// Generator produces a Plan for questions the pattern table cannot
// answer. Implementations carry one API call of cost.
type Generator interface {
	Generate(ctx context.Context, question string) (*Plan, error)
}

// LLMGenerator is the Gemini-backed Generator.
type LLMGenerator struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
	logger  logging.Logger
}

// NewLLMGenerator connects to the Gemini API.
func NewLLMGenerator(ctx context.Context, apiKey, modelName string, timeout time.Duration, logger logging.Logger) (*LLMGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	if logger == nil {
		logger = &logging.MockLogger{}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &LLMGenerator{
		client:  client,
		model:   client.GenerativeModel(modelName),
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Close releases the underlying client.
func (g *LLMGenerator) Close() error {
	return g.client.Close()
}

// Generate asks the model for a structured query. The call is bounded by
// the configured timeout; a reply that does not validate against the
// schema yields a QueryGenerationError, never a half-parsed plan.
func (g *LLMGenerator) Generate(ctx context.Context, question string) (*Plan, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt := fmt.Sprintf(llmPrompt, question, categoryList())

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, &parsererror.QueryGenerationError{
			Question: question,
			Reason:   "gemini api call failed",
			Err:      err,
		}
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, &parsererror.QueryGenerationError{
			Question: question,
			Reason:   "empty model response",
		}
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	plan, err := ParseReply(question, responseText)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("LLM generated query",
		logging.Field{Key: logging.FieldQuestion, Value: question},
		logging.Field{Key: logging.FieldQueryType, Value: string(plan.Query.Type)})

	return plan, nil
}

// ParseReply validates a model reply against the structured query schema.
func ParseReply(question, responseText string) (*Plan, error) {
	var reply llmReply
	if err := json.Unmarshal([]byte(stripCodeFences(responseText)), &reply); err != nil {
		return nil, &parsererror.QueryGenerationError{
			Question: question,
			Reason:   "model reply is not valid JSON",
			Err:      err,
		}
	}

	queryType := models.QueryType(reply.QueryType)
	if !supportedQueryTypes[queryType] {
		return nil, &parsererror.QueryGenerationError{
			Question: question,
			Reason:   fmt.Sprintf("unsupported query_type %q", reply.QueryType),
		}
	}

	query := models.FinancialQuery{Type: queryType, Limit: reply.Limit}
	if query.Limit <= 0 {
		query.Limit = models.DefaultQueryLimit
	}

	if reply.Period != nil && *reply.Period != "" {
		if !supportedPeriods[*reply.Period] {
			return nil, &parsererror.QueryGenerationError{
				Question: question,
				Reason:   fmt.Sprintf("unsupported period %q", *reply.Period),
			}
		}
		query.Period = *reply.Period
	}

	if reply.MinAmount != nil {
		d := decimal.NewFromFloat(*reply.MinAmount)
		query.MinAmount = &d
	}
	if reply.MaxAmount != nil {
		d := decimal.NewFromFloat(*reply.MaxAmount)
		query.MaxAmount = &d
	}

	if reply.Category != nil && *reply.Category != "" {
		category := models.Category(*reply.Category)
		if !category.IsValid() {
			return nil, &parsererror.QueryGenerationError{
				Question: question,
				Reason:   fmt.Sprintf("unknown category %q", *reply.Category),
			}
		}
		query.Category = category
	}

	shape := models.ResultShapeList
	if queryType == models.QueryTotalSpending || queryType == models.QuerySpendingByCategory {
		shape = models.ResultShapeAggregation
	}

	return &Plan{
		Pattern: "llm",
		Query:   query,
		Shape:   shape,
		APICost: 1,
	}, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func categoryList() string {
	names := make([]string, len(models.AllCategories))
	for i, c := range models.AllCategories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
