package analysis

import (
	"context"

	"github.com/kirillkom/customs-intake/internal/core/domain"
	"github.com/kirillkom/customs-intake/internal/core/ports"
	"github.com/kirillkom/customs-intake/internal/infrastructure/resilience"
)

const (
	operationAnalyzeDocument    = "analyze document"
	operationAnalyzeEligibility = "analyze eligibility"
)

// GuardedDocumentAnalyzer retries temporary failures of the wrapped analyzer
// behind a circuit breaker.
type GuardedDocumentAnalyzer struct {
	next     ports.DocumentAnalyzer
	executor *resilience.Executor
}

func NewGuardedDocumentAnalyzer(next ports.DocumentAnalyzer, executor *resilience.Executor) *GuardedDocumentAnalyzer {
	return &GuardedDocumentAnalyzer{next: next, executor: executor}
}

func (g *GuardedDocumentAnalyzer) Analyze(ctx context.Context, file domain.FileDescriptor) (domain.Document, error) {
	doc, err := resilience.Do(ctx, g.executor, operationAnalyzeDocument, func(ctx context.Context) (domain.Document, error) {
		return g.next.Analyze(ctx, file)
	}, resilience.ClassifyDomainError)
	return doc, wrapOpenCircuit(operationAnalyzeDocument, err)
}

type GuardedEligibilityAnalyzer struct {
	next     ports.EligibilityAnalyzer
	executor *resilience.Executor
}

func NewGuardedEligibilityAnalyzer(next ports.EligibilityAnalyzer, executor *resilience.Executor) *GuardedEligibilityAnalyzer {
	return &GuardedEligibilityAnalyzer{next: next, executor: executor}
}

func (g *GuardedEligibilityAnalyzer) Analyze(ctx context.Context, draft domain.DeclarationDraft) (domain.EligibilityAnalysis, error) {
	analysis, err := resilience.Do(ctx, g.executor, operationAnalyzeEligibility, func(ctx context.Context) (domain.EligibilityAnalysis, error) {
		return g.next.Analyze(ctx, draft)
	}, resilience.ClassifyDomainError)
	return analysis, wrapOpenCircuit(operationAnalyzeEligibility, err)
}

// wrapOpenCircuit marks breaker rejections as temporary.
func wrapOpenCircuit(operation string, err error) error {
	if err == nil {
		return nil
	}
	if resilience.IsCircuitOpen(err) && !domain.IsKind(err, domain.ErrTemporary) {
		return domain.WrapError(domain.ErrTemporary, operation, err)
	}
	return err
}
