// Package service contains the business logic layer.
//
// This file orchestrates a print action: the quota gate runs before the
// print document generator, and a rejected batch never produces a
// document.
package service

import (
	"context"
	"log/slog"

	"github.com/shokunin-apps/label-shokunin/internal/domain"
	"github.com/shokunin-apps/label-shokunin/internal/metrics"
	"github.com/shokunin-apps/label-shokunin/internal/printdoc"
)

// PrintService builds quota-gated print documents.
type PrintService interface {
	// Print reserves quota for the batch and builds the print document.
	// When the quota check rejects, the document is nil and the result
	// carries the rejection; that is an outcome, not an error.
	Print(ctx context.Context, shop string, in printdoc.Input) (*printdoc.Document, domain.UsageResult, error)

	// Preview builds the document without touching the quota. Used by
	// preview surfaces that never reach physical media.
	Preview(ctx context.Context, in printdoc.Input) (*printdoc.Document, error)
}

type printService struct {
	usage     UsageService
	generator *printdoc.Generator
	logger    *slog.Logger
}

// NewPrintService creates a new PrintService.
func NewPrintService(usage UsageService, generator *printdoc.Generator, logger *slog.Logger) PrintService {
	return &printService{
		usage:     usage,
		generator: generator,
		logger:    logger,
	}
}

func (s *printService) Print(ctx context.Context, shop string, in printdoc.Input) (*printdoc.Document, domain.UsageResult, error) {
	const op = "print.print"

	// Validate the batch before touching the counter so a malformed
	// request can never consume quota.
	if len(in.Products) == 0 {
		return nil, domain.UsageResult{}, domain.Invalid(op, "no products selected")
	}
	if in.Template == nil && in.Preset == nil {
		return nil, domain.UsageResult{}, domain.Invalid(op, "a template or printer preset is required")
	}

	result, err := s.usage.CheckAndIncrement(ctx, shop, len(in.Products))
	if err != nil {
		metrics.PrintBatches.WithLabelValues("error").Inc()
		return nil, domain.UsageResult{}, err
	}
	if !result.Allowed {
		metrics.PrintBatches.WithLabelValues("rejected").Inc()
		return nil, result, nil
	}

	doc, err := s.generator.Build(in)
	if err != nil {
		// Inputs were validated above; a build failure here is a bug.
		metrics.PrintBatches.WithLabelValues("error").Inc()
		return nil, result, err
	}

	renderErrors := 0
	for _, l := range doc.Labels {
		if l.RenderError != "" {
			renderErrors++
		}
	}
	if renderErrors > 0 {
		metrics.BarcodeRenderErrors.Add(float64(renderErrors))
	}

	metrics.PrintBatches.WithLabelValues("ok").Inc()
	s.logger.Info("print document built",
		"shop", shop,
		"document_id", doc.ID,
		"labels", len(doc.Labels),
		"render_errors", renderErrors,
		"mode", doc.Page.Mode,
	)
	return doc, result, nil
}

func (s *printService) Preview(_ context.Context, in printdoc.Input) (*printdoc.Document, error) {
	return s.generator.Build(in)
}
