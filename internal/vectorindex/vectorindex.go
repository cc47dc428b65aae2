// Package vectorindex defines the boundary to the document index that
// backs knowledge-base style questions. Only the document formats and the
// feed interface live here; the index itself is pluggable.
package vectorindex

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"hsouza/julius/internal/models"
)

// DocumentIndex receives text documents for later retrieval.
type DocumentIndex interface {
	Add(ctx context.Context, documents []string) error
}

// TransactionDocument renders one transaction as an indexable text blob.
func TransactionDocument(t models.Transaction) string {
	return fmt.Sprintf("Transaction on %s: %s | Amount: R$%s",
		t.Date.Format("2006-01-02"), t.Description, t.Amount.StringFixed(2))
}

// StatementDocument renders the statement-level summary as one blob.
func StatementDocument(stmt models.Statement) string {
	var b strings.Builder

	periodStart, periodEnd := "?", "?"
	if stmt.PeriodStart != nil {
		periodStart = stmt.PeriodStart.Format("2006-01-02")
	}
	if stmt.PeriodEnd != nil {
		periodEnd = stmt.PeriodEnd.Format("2006-01-02")
	}
	fmt.Fprintf(&b, "Statement Period: %s to %s\n", periodStart, periodEnd)

	if stmt.Summary.TotalPurchases != nil {
		fmt.Fprintf(&b, "Total Purchases: R$%s\n", stmt.Summary.TotalPurchases.StringFixed(2))
	}
	if len(stmt.CategoryTotals) > 0 {
		fmt.Fprintf(&b, "Categories:")
		for _, category := range models.AllCategories {
			if total, ok := stmt.CategoryTotals[category]; ok {
				fmt.Fprintf(&b, " %s=R$%s", category, total.StringFixed(2))
			}
		}
		b.WriteString("\n")
	}
	if stmt.Summary.NextClosingToken != "" {
		fmt.Fprintf(&b, "Next Payment Due: %s\n", stmt.Summary.NextClosingToken)
	}
	return b.String()
}

// Documents builds the full document set for an ingested statement.
func Documents(stmt models.Statement, transactions []models.Transaction) []string {
	docs := make([]string, 0, len(transactions)+1)
	for _, t := range transactions {
		docs = append(docs, TransactionDocument(t))
	}
	docs = append(docs, StatementDocument(stmt))
	return docs
}

// MemoryIndex is an in-process DocumentIndex for local runs and tests.
type MemoryIndex struct {
	mu   sync.Mutex
	docs []string
}

// NewMemoryIndex creates an empty in-memory index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{}
}

// Add appends documents to the index.
func (m *MemoryIndex) Add(_ context.Context, documents []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = append(m.docs, documents...)
	return nil
}

// Len returns the number of stored documents.
func (m *MemoryIndex) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

// Search returns up to limit documents containing the normalized needle.
// A plain substring scan stands in for similarity search.
func (m *MemoryIndex) Search(needle string, limit int) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	needle = strings.ToLower(needle)
	var matches []string
	for _, doc := range m.docs {
		if strings.Contains(strings.ToLower(doc), needle) {
			matches = append(matches, doc)
			if limit > 0 && len(matches) >= limit {
				break
			}
		}
	}
	return matches
}
