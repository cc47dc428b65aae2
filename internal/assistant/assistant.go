// Package assistant is the conversational front of Julius: it takes a
// Portuguese question, resolves it through cache, pattern router or LLM
// fallback, executes the resulting query and answers in Portuguese.
package assistant

import (
	"context"
	"errors"

	"hsouza/julius/internal/cache"
	"hsouza/julius/internal/costs"
	"hsouza/julius/internal/logging"
	"hsouza/julius/internal/parsererror"
	"hsouza/julius/internal/queryexec"
	"hsouza/julius/internal/queryrouter"

	"github.com/google/uuid"
)

// Assistant orchestrates question answering for one session.
type Assistant struct {
	sessionID string
	router    *queryrouter.Router
	generator queryrouter.Generator
	executor  *queryexec.Executor
	cache     *cache.ResponseCache
	tracker   *costs.Tracker
	logger    logging.Logger
}

// New creates an Assistant with a fresh session id. The generator may be
// nil when the LLM fallback is disabled; unmatched questions then get a
// clarification answer instead of an API call.
func New(router *queryrouter.Router, generator queryrouter.Generator, executor *queryexec.Executor, responseCache *cache.ResponseCache, tracker *costs.Tracker, logger logging.Logger) *Assistant {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Assistant{
		sessionID: uuid.New().String(),
		router:    router,
		generator: generator,
		executor:  executor,
		cache:     responseCache,
		tracker:   tracker,
		logger:    logger,
	}
}

// SessionID identifies this conversation; cache entries and stats are
// scoped to it.
func (a *Assistant) SessionID() string {
	return a.sessionID
}

// Stats returns the session's usage counters.
func (a *Assistant) Stats() costs.Stats {
	return a.tracker.Snapshot()
}

// Ask answers a Portuguese question. It never returns an error: any
// failure degrades to a canned Portuguese reply.
func (a *Assistant) Ask(ctx context.Context, question string) string {
	key := cache.Key(question, a.sessionID)
	if answer, ok := a.cache.Get(key); ok {
		a.tracker.RecordCacheHit()
		a.logger.Debug("Answering from cache",
			logging.Field{Key: logging.FieldCacheKey, Value: key})
		return answer
	}

	plan := a.router.Route(question)
	if plan != nil {
		a.tracker.RecordPatternMatch()
	} else {
		if a.generator == nil {
			return msgNotUnderstood
		}

		a.tracker.RecordLLMCall()
		generated, err := a.generator.Generate(ctx, question)
		if err != nil {
			a.logger.Warn("LLM query generation failed",
				logging.Field{Key: logging.FieldQuestion, Value: question},
				logging.Field{Key: logging.FieldError, Value: err.Error()})

			var genErr *parsererror.QueryGenerationError
			if errors.As(err, &genErr) && genErr.Err == nil {
				// The model answered but with an invalid plan; asking
				// again phrased differently may work.
				return msgNotUnderstood
			}
			return msgApology
		}
		plan = generated
	}

	result, err := a.executor.Execute(plan.Query)
	if err != nil {
		var unsupported *parsererror.UnsupportedQueryError
		if errors.As(err, &unsupported) {
			return msgNotUnderstood
		}
		a.logger.Error("Query execution failed",
			logging.Field{Key: logging.FieldQueryType, Value: string(plan.Query.Type)},
			logging.Field{Key: logging.FieldError, Value: err.Error()})
		return msgApology
	}

	answer := FormatResult(result)
	a.cache.Set(key, answer)
	return answer
}
