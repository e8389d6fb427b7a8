// Package resolver converts a free-text customer message plus chat history
// into a structured list of suggested catalog products. It orchestrates the
// external generation path and degrades to the deterministic local matcher
// whenever that path is unavailable or fails.
package resolver

import (
	"context"
	"errors"
	"time"

	stderrors "catalog-assistant/internal/common/errors"
	"catalog-assistant/internal/common/logger"
	"catalog-assistant/internal/common/metrics"
	"catalog-assistant/internal/common/observability"
	"catalog-assistant/internal/models"
	"catalog-assistant/internal/resolver/generation"
	"catalog-assistant/internal/resolver/localmatch"
	"catalog-assistant/internal/resolver/prompt"
	"catalog-assistant/internal/resolver/recovery"
)

// Path labels identify which pipeline produced the final result.
const (
	PathGeneration = "generation"
	PathLocal      = "local"
	PathApology    = "apology"
)

// transportApology is the canned reply for generation transport failures.
const transportApology = "I'm sorry, I couldn't process your order request just now. Please try again in a moment."

// ContextBuilder assembles the catalog context for one customer.
type ContextBuilder interface {
	Build(ctx context.Context, customerID string) (*models.CatalogContext, error)
}

// Generator invokes the external text-generation service.
type Generator interface {
	Generate(ctx context.Context, system string, messages []models.ChatMessage) (string, error)
}

// Request is one inbound resolution call. Requests are stateless and share
// nothing with each other.
type Request struct {
	RequestID   string
	CustomerID  string
	Message     string
	ChatHistory []models.ChatMessage
}

type Resolver struct {
	contexts  ContextBuilder
	generator Generator
	obs       *observability.Observability
	logger    logger.Logger
}

func New(contexts ContextBuilder, generator Generator, obs *observability.Observability, log logger.Logger) *Resolver {
	return &Resolver{
		contexts:  contexts,
		generator: generator,
		obs:       obs,
		logger:    log,
	}
}

// Resolve runs the full pipeline. Once the catalog context is available,
// every downstream failure degrades to a best-effort textual response: the
// returned error is non-nil only when the authorized product set cannot be
// fetched.
func (r *Resolver) Resolve(ctx context.Context, req Request) (models.ResolutionResult, error) {
	start := time.Now()
	log := r.logger.With(map[string]interface{}{
		"requestId":  req.RequestID,
		"customerId": req.CustomerID,
	})

	catalog, err := r.contexts.Build(ctx, req.CustomerID)
	if err != nil {
		metrics.StageFailures.WithLabelValues("context-build", string(stderrors.ErrCodeCatalogFetchFailed)).Inc()
		log.Error("catalog context build failed", map[string]interface{}{
			"stage": "context-build",
			"error": err.Error(),
		})
		return models.ResolutionResult{}, err
	}

	result, path := r.resolveWithCatalog(ctx, req, catalog, log)
	result.Normalize(recovery.GenericApology)

	metrics.ResolutionsTotal.WithLabelValues(path).Inc()
	metrics.ResolutionDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	if r.obs != nil {
		r.obs.RecordResolution(ctx, path)
		r.obs.RecordDuration(ctx, time.Since(start), path)
	}

	log.Info("resolution complete", map[string]interface{}{
		"path":        path,
		"suggestions": len(result.SuggestedProducts),
		"durationMs":  time.Since(start).Milliseconds(),
	})

	return result, nil
}

func (r *Resolver) resolveWithCatalog(ctx context.Context, req Request, catalog *models.CatalogContext, log logger.Logger) (models.ResolutionResult, string) {
	system := prompt.SystemInstructions(catalog)
	messages := prompt.Messages(req.ChatHistory, req.Message)

	raw, err := r.generator.Generate(ctx, system, messages)
	switch {
	case errors.Is(err, generation.ErrNotConfigured):
		log.Info("generation not configured, using local matcher", map[string]interface{}{
			"stage": "generation",
		})
		return localmatch.Resolve(req.Message, catalog.Products), PathLocal

	case err != nil:
		metrics.StageFailures.WithLabelValues("generation", string(stderrors.ErrCodeGenerationTransportError)).Inc()
		log.Warn("generation call failed, returning canned apology", map[string]interface{}{
			"stage": "generation",
			"error": err.Error(),
		})
		return models.ResolutionResult{
			AIResponse:        transportApology,
			SuggestedProducts: []models.SuggestedProduct{},
		}, PathApology
	}

	result, tier := recovery.Recover(raw)
	metrics.RecoveryTierUsed.WithLabelValues(tier).Inc()
	if tier != recovery.TierRegex {
		log.Warn("generator violated the response contract", map[string]interface{}{
			"stage": "recovery",
			"tier":  tier,
		})
	}
	if tier == recovery.TierExhausted {
		metrics.StageFailures.WithLabelValues("recovery", string(stderrors.ErrCodeRecoveryExhausted)).Inc()
		return result, PathApology
	}

	return result, PathGeneration
}
