// Package queryrouter turns Portuguese financial questions into structured
// queries. A fixed pattern table answers the common question families at
// zero API cost; everything else goes to the LLM fallback.
package queryrouter

import (
	"strings"

	"hsouza/julius/internal/logging"
	"hsouza/julius/internal/models"
	"hsouza/julius/internal/textutils"

	"github.com/shopspring/decimal"
)

// Plan is a fully parameterized query ready for execution. APICost is 0
// when the pattern table resolved the question and 1 when the LLM did.
type Plan struct {
	Pattern string
	Query   models.FinancialQuery
	Shape   string
	APICost int
}

// Router matches questions against the pattern table.
type Router struct {
	logger logging.Logger
}

// New creates a Router.
func New(logger logging.Logger) *Router {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Router{logger: logger}
}

// NormalizeQuestion lowers the question and strips accents so keyword
// matching and cache keys see one canonical form.
func NormalizeQuestion(question string) string {
	return textutils.Normalize(strings.TrimSpace(question))
}

// Route matches a question against the pattern table. It returns nil when
// no pattern applies and the caller should fall back to the LLM.
func (r *Router) Route(question string) *Plan {
	normalized := NormalizeQuestion(question)

	period := extractPeriod(normalized)
	minAmount := extractMinAmount(normalized)

	for _, p := range patterns {
		for _, keyword := range p.keywords {
			if !strings.Contains(normalized, keyword) {
				continue
			}

			query := models.FinancialQuery{
				Type:   p.queryType,
				Period: period,
				Limit:  p.limit,
			}
			if minAmount != nil {
				query.MinAmount = minAmount
			} else if p.defaultMinAmount > 0 {
				d := decimal.NewFromInt(int64(p.defaultMinAmount))
				query.MinAmount = &d
			}

			r.logger.Debug("Question matched pattern",
				logging.Field{Key: logging.FieldPattern, Value: p.name},
				logging.Field{Key: logging.FieldQueryType, Value: string(p.queryType)})

			return &Plan{
				Pattern: p.name,
				Query:   query,
				Shape:   p.shape,
				APICost: 0,
			}
		}
	}
	return nil
}

// extractPeriod finds a relative time expression in the normalized
// question.
func extractPeriod(normalized string) string {
	for _, t := range periodTerms {
		if strings.Contains(normalized, t.term) {
			return t.period
		}
	}
	return ""
}

// extractMinAmount finds a monetary threshold in the normalized question.
func extractMinAmount(normalized string) *decimal.Decimal {
	for _, re := range valuePatterns {
		m := re.FindStringSubmatch(normalized)
		if m == nil {
			continue
		}
		amount, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", "."))
		if err != nil {
			continue
		}
		return &amount
	}
	return nil
}
