package catalog

import (
	"context"
	"slices"

	"github.com/kirillkom/customs-intake/internal/core/domain"
)

// Dataset holds every record the catalog serves.
type Dataset struct {
	RiskAssessments []domain.RiskAssessment
	Verifications   []domain.DocumentVerification
	Controls        []domain.CustomsControl
	TraderStats     domain.TraderStats
	CustomsStats    domain.CustomsStats
	TraderAlerts    []domain.Alert
	CustomsAlerts   []domain.Alert
	Recent          []domain.DeclarationSummary
	Priority        []domain.PriorityDeclaration
}

// Catalog serves a fixed dataset. Every read returns fresh copies, so
// callers may sort or edit what they get.
type Catalog struct {
	data Dataset
}

func New(data Dataset) *Catalog {
	return &Catalog{data: data}
}

func NewSample() *Catalog {
	return New(SampleDataset())
}

func (c *Catalog) RiskAssessments(ctx context.Context) ([]domain.RiskAssessment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.RiskAssessment, len(c.data.RiskAssessments))
	for i, a := range c.data.RiskAssessments {
		a.RecommendedControls = slices.Clone(a.RecommendedControls)
		out[i] = a
	}
	return out, nil
}

func (c *Catalog) Verifications(ctx context.Context) ([]domain.DocumentVerification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.DocumentVerification, len(c.data.Verifications))
	for i, v := range c.data.Verifications {
		v.Findings = slices.Clone(v.Findings)
		v.Document.Alerts = slices.Clone(v.Document.Alerts)
		out[i] = v
	}
	return out, nil
}

func (c *Catalog) Controls(ctx context.Context) ([]domain.CustomsControl, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.CustomsControl, len(c.data.Controls))
	for i, ctrl := range c.data.Controls {
		findings := make([]domain.ControlFinding, len(ctrl.Findings))
		for j, f := range ctrl.Findings {
			f.Evidence = slices.Clone(f.Evidence)
			findings[j] = f
		}
		ctrl.Findings = findings
		if ctrl.CompletedAt != nil {
			at := *ctrl.CompletedAt
			ctrl.CompletedAt = &at
		}
		if ctrl.PenaltyAmount != nil {
			amount := *ctrl.PenaltyAmount
			ctrl.PenaltyAmount = &amount
		}
		out[i] = ctrl
	}
	return out, nil
}

func (c *Catalog) TraderStats(ctx context.Context) (domain.TraderStats, error) {
	return c.data.TraderStats, ctx.Err()
}

func (c *Catalog) CustomsStats(ctx context.Context) (domain.CustomsStats, error) {
	return c.data.CustomsStats, ctx.Err()
}

func (c *Catalog) TraderAlerts(ctx context.Context) ([]domain.Alert, error) {
	return slices.Clone(c.data.TraderAlerts), ctx.Err()
}

func (c *Catalog) CustomsAlerts(ctx context.Context) ([]domain.Alert, error) {
	return slices.Clone(c.data.CustomsAlerts), ctx.Err()
}

func (c *Catalog) RecentDeclarations(ctx context.Context) ([]domain.DeclarationSummary, error) {
	return slices.Clone(c.data.Recent), ctx.Err()
}

func (c *Catalog) PriorityDeclarations(ctx context.Context) ([]domain.PriorityDeclaration, error) {
	return slices.Clone(c.data.Priority), ctx.Err()
}
