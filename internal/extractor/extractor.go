// Package extractor turns the text of a Nubank credit-card statement into
// raw transaction lines and an invoice summary. It works on per-page text
// supplied by a pdftext.PageSource, so the recognition rules can be tested
// against plain strings.
package extractor

import (
	"regexp"
	"strings"

	"hsouza/julius/internal/currencyutils"
	"hsouza/julius/internal/logging"
	"hsouza/julius/internal/models"
	"hsouza/julius/internal/pdftext"
	"hsouza/julius/internal/textutils"

	"github.com/shopspring/decimal"
)

// Line recognition patterns. A transaction line starts with a "DD MON"
// token and carries an "R$" amount somewhere after it.
var (
	datePatternRe   = regexp.MustCompile(`^(\d{2}\s\w{3})\b`)
	amountPatternRe = regexp.MustCompile(`R\$\s*(-?[\d\.]+,\d{2})`)
	dateRangeRe     = regexp.MustCompile(`\d{2}\s\w{3}\s*-\s*a\s*\d{2}\s\w{3}`)
)

// Summary anchor patterns. Each invoice figure hangs off one fixed phrase;
// a missing phrase leaves the field nil rather than zero.
var (
	previousInvoiceRe = regexp.MustCompile(`Fatura anterior\s*R\$\s*(-?[\d\.]+,\d{2})`)
	paymentReceivedRe = regexp.MustCompile(`Pagamento recebido\s*−?R\$\s*(-?[\d\.]+,\d{2})`)
	totalPurchasesRe  = regexp.MustCompile(`Total de compras de todos os cartões,.*?R\$\s*(-?[\d\.]+,\d{2})`)
	otherChargesRe    = regexp.MustCompile(`Outros lançamentos\s*−?R\$\s*(-?[\d\.]+,\d{2})`)
	totalDueRe        = regexp.MustCompile(`Total a pagar\s*R\$\s*(-?[\d\.]+,\d{2})`)
	periodRe          = regexp.MustCompile(`Período vigente:\s*(\d+\s+\w+)\s+a\s+(\d+\s+\w+)`)
	limitsRe          = regexp.MustCompile(`Limite total\s+R\$\s*([\d\.]+,\d{2})\s+R\$\s*([\d\.]+,\d{2})`)
	nextClosingRe     = regexp.MustCompile(`Fechamento da próxima fatura\s*(\d+\s+\w+\s+\d{4})`)
	nextBalanceRe     = regexp.MustCompile(`Saldo em aberto da próxima fatura\s*R\$\s*(-?[\d\.]+,\d{2})`)
	totalOpenRe       = regexp.MustCompile(`Saldo em aberto total\s*R\$\s*(-?[\d\.]+,\d{2})`)
)

// Extractor recognizes transactions and summary figures on statement text.
type Extractor struct {
	source pdftext.PageSource
	logger logging.Logger
}

// New creates an Extractor reading pages from the given source.
func New(source pdftext.PageSource, logger logging.Logger) *Extractor {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Extractor{source: source, logger: logger}
}

// Extract pulls every recognizable transaction line and the invoice
// summary out of the statement at pdfPath. A statement with no
// recognizable lines yields empty collections, not an error.
func (e *Extractor) Extract(pdfPath string) (models.ExtractionResult, error) {
	pages, err := e.source.ExtractPages(pdfPath)
	if err != nil {
		return models.ExtractionResult{}, err
	}

	result := e.ExtractFromPages(pages)

	e.logger.Info("Statement extraction finished",
		logging.Field{Key: logging.FieldFile, Value: pdfPath},
		logging.Field{Key: logging.FieldCount, Value: len(result.Lines)},
		logging.Field{Key: logging.FieldSkipped, Value: result.SkippedLines})

	return result, nil
}

// ExtractFromPages runs the recognition rules over already-extracted page
// text.
func (e *Extractor) ExtractFromPages(pages []string) models.ExtractionResult {
	result := models.ExtractionResult{}

	for pageNum, text := range pages {
		for _, line := range strings.Split(text, "\n") {
			lower := strings.ToLower(line)

			// Installment plan offers and period headers carry
			// dates and amounts but are not transactions.
			if strings.Contains(lower, "vez") ||
				strings.Contains(lower, "entrada") ||
				dateRangeRe.MatchString(line) {
				continue
			}

			dateMatch := datePatternRe.FindStringSubmatchIndex(line)
			amountMatch := amountPatternRe.FindStringSubmatchIndex(line)
			if dateMatch == nil || amountMatch == nil {
				continue
			}

			amountStr := line[amountMatch[2]:amountMatch[3]]
			amount, err := currencyutils.ParseBRL(amountStr)
			if err != nil {
				result.SkippedLines++
				e.logger.Debug("Skipping line with malformed amount",
					logging.Field{Key: "line", Value: line},
					logging.Field{Key: logging.FieldError, Value: err.Error()})
				continue
			}

			description := textutils.CollapseWhitespace(line[dateMatch[1]:amountMatch[0]])

			result.Lines = append(result.Lines, models.RawTransactionLine{
				DateToken:   line[dateMatch[2]:dateMatch[3]],
				Description: description,
				Amount:      amount,
				Page:        pageNum + 1,
			})
		}
	}

	result.Summary = extractSummary(strings.Join(pages, "\n\n"))
	return result
}

// extractSummary pulls the invoice-level figures out of the concatenated
// statement text. Payment received and other charges offset the invoice,
// so they are stored negated.
func extractSummary(text string) models.StatementSummary {
	summary := models.StatementSummary{}

	summary.PreviousInvoice = matchAmount(previousInvoiceRe, text, false)
	summary.PaymentReceived = matchAmount(paymentReceivedRe, text, true)
	summary.TotalPurchases = matchAmount(totalPurchasesRe, text, false)
	summary.OtherCharges = matchAmount(otherChargesRe, text, true)
	summary.TotalDue = matchAmount(totalDueRe, text, false)
	summary.NextInvoiceBalance = matchAmount(nextBalanceRe, text, false)
	summary.TotalOpenBalance = matchAmount(totalOpenRe, text, false)

	if m := limitsRe.FindStringSubmatch(text); m != nil {
		used, errUsed := currencyutils.ParseBRL(m[1])
		available, errAvail := currencyutils.ParseBRL(m[2])
		if errUsed == nil && errAvail == nil {
			total := used.Add(available)
			summary.UsedLimit = &used
			summary.AvailableLimit = &available
			summary.TotalLimit = &total
		}
	}

	if m := periodRe.FindStringSubmatch(text); m != nil {
		summary.PeriodStartToken = m[1]
		summary.PeriodEndToken = m[2]
	}
	if m := nextClosingRe.FindStringSubmatch(text); m != nil {
		summary.NextClosingToken = m[1]
	}

	return summary
}

func matchAmount(re *regexp.Regexp, text string, negate bool) *decimal.Decimal {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	amount, err := currencyutils.ParseBRL(m[1])
	if err != nil {
		return nil
	}
	if negate {
		amount = amount.Neg()
	}
	return &amount
}
