// Package normalizer turns raw statement lines into normalized, categorized
// transactions: ISO dates, cleaned descriptions, canonical merchants,
// taxonomy categories and installment flags.
package normalizer

import (
	"fmt"
	"regexp"
	"strings"

	"hsouza/julius/internal/dateutils"
	"hsouza/julius/internal/logging"
	"hsouza/julius/internal/models"
	"hsouza/julius/internal/store"
	"hsouza/julius/internal/textutils"
)

var (
	installmentRe = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})\b`)
	clutterRe     = regexp.MustCompile(`[*\-]{1,}`)

	// Corporate suffixes stripped from merchant names.
	corporateSuffixes = []string{"ltda", "s.a.", "s/a", "sa", "eireli", "epp", "me"}

	// Brazilian state codes that trail merchant names on card descriptions.
	stateCodes = map[string]bool{
		"ac": true, "al": true, "ap": true, "am": true, "ba": true,
		"ce": true, "df": true, "es": true, "go": true, "ma": true,
		"mt": true, "ms": true, "mg": true, "pa": true, "pb": true,
		"pr": true, "pe": true, "pi": true, "rj": true, "rn": true,
		"rs": true, "ro": true, "rr": true, "sc": true, "sp": true,
		"se": true, "to": true,
	}
)

// Normalizer applies the categorization and cleanup rules to raw lines.
type Normalizer struct {
	categoryRules []store.CategoryRule
	merchantRules []store.MerchantRule
	logger        logging.Logger
}

// New creates a Normalizer. Rules come from the store when a rules file is
// present; otherwise the built-in tables apply.
func New(ruleStore store.RuleStoreReader, logger logging.Logger) (*Normalizer, error) {
	if logger == nil {
		logger = &logging.MockLogger{}
	}

	categoryRules := defaultCategoryRules
	merchantRules := defaultMerchantRules

	if ruleStore != nil {
		rules, err := ruleStore.LoadRules()
		if err != nil {
			return nil, fmt.Errorf("loading categorization rules: %w", err)
		}
		if len(rules.Categories) > 0 {
			categoryRules = rules.Categories
		}
		if len(rules.Merchants) > 0 {
			merchantRules = rules.Merchants
		}
	}

	return &Normalizer{
		categoryRules: categoryRules,
		merchantRules: merchantRules,
		logger:        logger,
	}, nil
}

// Normalize converts raw lines into transactions, resolving dates against
// the reference year. Lines whose date cannot be resolved are dropped and
// counted, never guessed.
func (n *Normalizer) Normalize(lines []models.RawTransactionLine, referenceYear int) ([]models.Transaction, models.NormalizationStats) {
	stats := models.NormalizationStats{Total: len(lines)}
	transactions := make([]models.Transaction, 0, len(lines))

	for _, line := range lines {
		tx, err := n.NormalizeLine(line, referenceYear)
		if err != nil {
			stats.Dropped++
			n.logger.Debug("Dropping unnormalizable line",
				logging.Field{Key: "date_token", Value: line.DateToken},
				logging.Field{Key: logging.FieldError, Value: err.Error()})
			continue
		}
		if tx.Category == models.CategoryOthers {
			stats.Fallbacks++
		}
		transactions = append(transactions, tx)
		stats.Kept++
	}

	return transactions, stats
}

// NormalizeLine converts a single raw line into a transaction.
func (n *Normalizer) NormalizeLine(line models.RawTransactionLine, referenceYear int) (models.Transaction, error) {
	date, err := dateutils.ParseStatementDate(line.DateToken, referenceYear)
	if err != nil {
		return models.Transaction{}, err
	}

	description := CleanDescription(line.Description)
	normalized := textutils.Normalize(line.Description)

	direction := models.DirectionDebit
	amount := line.Amount
	if amount.IsNegative() {
		direction = models.DirectionCredit
		amount = amount.Abs()
	}

	isInstallment, installmentInfo := DetectInstallment(normalized)

	return models.Transaction{
		Date:                date,
		Description:         description,
		DescriptionOriginal: line.Description,
		Amount:              amount,
		Direction:           direction,
		Category:            n.Categorize(line.Description),
		Merchant:            n.ExtractMerchant(line.Description),
		IsInstallment:       isInstallment,
		InstallmentInfo:     installmentInfo,
	}, nil
}

// Categorize maps a description onto the taxonomy. Rules are evaluated in
// table order against the accent-stripped lowercased description; the
// first keyword hit wins and anything unmatched lands on others.
func (n *Normalizer) Categorize(description string) models.Category {
	normalized := textutils.Normalize(description)

	for _, rule := range n.categoryRules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(normalized, keyword) {
				return rule.Category
			}
		}
	}
	return models.CategoryOthers
}

// ExtractMerchant derives a merchant name from a description. Known
// merchants match first, in table order; otherwise the description is
// stripped of card clutter, corporate suffixes and a trailing state code,
// and trimmed to at most three title-cased tokens.
func (n *Normalizer) ExtractMerchant(description string) string {
	normalized := textutils.Normalize(description)

	for _, rule := range n.merchantRules {
		if strings.Contains(normalized, rule.Pattern) {
			return rule.Name
		}
	}

	words := strings.Fields(clutterRe.ReplaceAllString(normalized, " "))

	// Drop installment markers and trailing state codes.
	filtered := words[:0]
	for _, w := range words {
		if installmentRe.MatchString(w) {
			continue
		}
		filtered = append(filtered, w)
	}
	if len(filtered) > 1 && stateCodes[filtered[len(filtered)-1]] {
		filtered = filtered[:len(filtered)-1]
	}

	// Strip corporate suffixes.
	for len(filtered) > 1 {
		last := filtered[len(filtered)-1]
		stripped := false
		for _, suffix := range corporateSuffixes {
			if last == suffix {
				filtered = filtered[:len(filtered)-1]
				stripped = true
				break
			}
		}
		if !stripped {
			break
		}
	}

	if len(filtered) > 3 {
		filtered = filtered[:3]
	}
	if len(filtered) == 0 {
		return ""
	}
	return textutils.TitleCase(strings.Join(filtered, " "))
}

// CleanDescription normalizes whitespace and removes card-slip clutter
// from a description, title-casing the result.
func CleanDescription(description string) string {
	cleaned := clutterRe.ReplaceAllString(description, " ")
	cleaned = textutils.CollapseWhitespace(cleaned)
	return textutils.TitleCase(cleaned)
}

// DetectInstallment recognizes installment purchases. A well-formed
// "k/N" marker (k<=N, N>1) yields exact info; a bare "parcela" mention
// flags the transaction without info.
func DetectInstallment(normalizedDescription string) (bool, string) {
	if m := installmentRe.FindStringSubmatch(normalizedDescription); m != nil {
		var current, total int
		fmt.Sscanf(m[1], "%d", &current)
		fmt.Sscanf(m[2], "%d", &total)
		if total > 1 && current >= 1 && current <= total {
			return true, fmt.Sprintf("%d/%d", current, total)
		}
	}

	if strings.Contains(normalizedDescription, "parcela") {
		return true, ""
	}
	return false, ""
}
