package ports

import (
	"context"

	"github.com/kirillkom/customs-intake/internal/core/domain"
)

// IntakeWizard is the inbound contract of one declaration intake session.
type IntakeWizard interface {
	CurrentStep(ctx context.Context) (domain.Step, error)
	Phase(ctx context.Context) (domain.AnalysisPhase, error)
	Draft(ctx context.Context) (domain.DeclarationDraft, error)
	Advance(ctx context.Context) error
	GoBack(ctx context.Context) error
	UpdateField(ctx context.Context, field domain.DraftField, value string) error
	AddDocuments(ctx context.Context, files ...domain.FileDescriptor) error
	RunEligibilityAnalysis(ctx context.Context) error
	Wait(ctx context.Context) error
	Submit(ctx context.Context) (domain.Declaration, error)
	Close()
}

// ReviewReader is the read model behind the dashboards and inspector views.
type ReviewReader interface {
	RiskAssessments(ctx context.Context) ([]domain.RiskAssessment, error)
	RiskAssessment(ctx context.Context, declarationID string) (domain.RiskAssessment, error)
	RiskSummary(ctx context.Context) (map[domain.RiskLevel]int, error)
	Verifications(ctx context.Context) ([]domain.DocumentVerification, error)
	Controls(ctx context.Context, status domain.ControlStatus) ([]domain.CustomsControl, error)
	ControlSummary(ctx context.Context) (domain.ControlSummary, error)
	TraderDashboard(ctx context.Context) (domain.TraderDashboard, error)
	CustomsDashboard(ctx context.Context) (domain.CustomsDashboard, error)
}
