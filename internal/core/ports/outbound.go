package ports

import (
	"context"
	"time"

	"github.com/kirillkom/customs-intake/internal/core/domain"
)

// DocumentAnalyzer turns an uploaded file into an analyzed document.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, file domain.FileDescriptor) (domain.Document, error)
}

// EligibilityAnalyzer assesses preferential-tariff eligibility of a draft.
type EligibilityAnalyzer interface {
	Analyze(ctx context.Context, draft domain.DeclarationDraft) (domain.EligibilityAnalysis, error)
}

// DeclarationRegistry keeps declarations submitted during the process lifetime.
type DeclarationRegistry interface {
	Save(ctx context.Context, decl domain.Declaration) error
	Get(ctx context.Context, id string) (domain.Declaration, error)
	List(ctx context.Context) ([]domain.Declaration, error)
}

// CustomsCatalog serves the read-only records shown to traders and inspectors.
type CustomsCatalog interface {
	RiskAssessments(ctx context.Context) ([]domain.RiskAssessment, error)
	Verifications(ctx context.Context) ([]domain.DocumentVerification, error)
	Controls(ctx context.Context) ([]domain.CustomsControl, error)
	TraderStats(ctx context.Context) (domain.TraderStats, error)
	CustomsStats(ctx context.Context) (domain.CustomsStats, error)
	TraderAlerts(ctx context.Context) ([]domain.Alert, error)
	CustomsAlerts(ctx context.Context) ([]domain.Alert, error)
	RecentDeclarations(ctx context.Context) ([]domain.DeclarationSummary, error)
	PriorityDeclarations(ctx context.Context) ([]domain.PriorityDeclaration, error)
}

type AnalysisKind string

const (
	AnalysisDocument    AnalysisKind = "document"
	AnalysisEligibility AnalysisKind = "eligibility"
)

// IntakeObserver receives intake lifecycle events. Calls come from the
// session goroutines and must not block.
type IntakeObserver interface {
	SessionOpened()
	AnalysisStarted(kind AnalysisKind)
	AnalysisFinished(kind AnalysisKind, elapsed time.Duration)
	DocumentAnalyzed(doc domain.Document)
	DeclarationSubmitted(decl domain.Declaration)
}

type Clock interface {
	Now() time.Time
}

// IDGenerator issues record IDs and declaration registration numbers.
type IDGenerator interface {
	NewID() string
	NextDeclarationNumber(at time.Time) string
}
