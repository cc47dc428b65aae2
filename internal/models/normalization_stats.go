package models

import (
	"hsouza/julius/internal/logging"
)

// NormalizationStats tracks how many raw statement lines survived
// normalization for one ingested document.
type NormalizationStats struct {
	Total     int // Raw lines recognized on the statement
	Kept      int // Lines normalized into transactions
	Dropped   int // Lines dropped (unparseable date, malformed amount)
	Fallbacks int // Transactions that fell through to the others category
}

// LogSummary logs a summary of normalization statistics.
func (ns NormalizationStats) LogSummary(logger logging.Logger, fileName string) {
	if logger == nil {
		return
	}

	logger.Info("Normalization summary",
		logging.Field{Key: logging.FieldFile, Value: fileName},
		logging.Field{Key: "total_lines", Value: ns.Total},
		logging.Field{Key: "kept", Value: ns.Kept},
		logging.Field{Key: "dropped", Value: ns.Dropped},
		logging.Field{Key: "category_fallbacks", Value: ns.Fallbacks},
		logging.Field{Key: "keep_rate", Value: ns.KeepRate()},
	)
}

// KeepRate calculates the share of recognized lines kept, as a percentage.
func (ns NormalizationStats) KeepRate() float64 {
	if ns.Total == 0 {
		return 0.0
	}
	return float64(ns.Kept) / float64(ns.Total) * 100.0
}
