// Package ask handles the question-answering command
package ask

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hsouza/julius/cmd/root"
	"hsouza/julius/internal/assistant"
	"hsouza/julius/internal/cache"
	"hsouza/julius/internal/costs"
	"hsouza/julius/internal/queryexec"
	"hsouza/julius/internal/queryrouter"

	"github.com/spf13/cobra"
)

var showStats bool

// Cmd represents the ask command
var Cmd = &cobra.Command{
	Use:   "ask [pergunta]",
	Short: "Ask Julius a question about your spending",
	Long: `Ask answers Portuguese questions about your stored transactions, such as
"quais foram meus maiores gastos?" or "quanto gastei este mês?". Common
questions are answered locally; with AI enabled, other questions fall back
to the configured Gemini model.`,
	Args: cobra.MinimumNArgs(1),
	Run:  askFunc,
}

func init() {
	Cmd.Flags().BoolVar(&showStats, "stats", false, "Print session usage counters after the answer")
}

func askFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()

	db, err := root.OpenDatabase()
	if err != nil {
		logger.Fatalf("Error opening database: %v", err)
	}
	defer db.Close()

	var generator queryrouter.Generator
	if root.Cfg.AI.Enabled {
		llm, err := queryrouter.NewLLMGenerator(
			context.Background(),
			root.Cfg.AI.APIKey,
			root.Cfg.AI.Model,
			time.Duration(root.Cfg.AI.TimeoutSeconds)*time.Second,
			logger,
		)
		if err != nil {
			logger.Fatalf("Error initializing Gemini client: %v", err)
		}
		defer llm.Close()
		generator = llm
	}

	tracker := costs.NewTracker()
	a := assistant.New(
		queryrouter.New(logger),
		generator,
		queryexec.New(db, logger),
		cache.New(root.Cfg.Cache.Capacity, time.Duration(root.Cfg.Cache.TTLMinutes)*time.Minute),
		tracker,
		logger,
	)

	question := strings.Join(args, " ")
	fmt.Println(a.Ask(context.Background(), question))

	if showStats {
		stats := a.Stats()
		fmt.Println()
		fmt.Printf("Perguntas: %d | Cache: %d | Padrões: %d | LLM: %d | Economia: %s\n",
			stats.TotalQuestions, stats.CacheHits, stats.PatternMatches, stats.LLMCalls, stats.Savings)
	}
}
