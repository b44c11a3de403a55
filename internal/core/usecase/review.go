package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/kirillkom/customs-intake/internal/core/domain"
	"github.com/kirillkom/customs-intake/internal/core/ports"
)

// ReviewService is the read side shared by the trader and inspector views.
type ReviewService struct {
	catalog  ports.CustomsCatalog
	registry ports.DeclarationRegistry
}

var _ ports.ReviewReader = (*ReviewService)(nil)

func NewReviewService(catalog ports.CustomsCatalog, registry ports.DeclarationRegistry) *ReviewService {
	return &ReviewService{
		catalog:  catalog,
		registry: registry,
	}
}

// RiskAssessments lists assessments, riskiest first.
func (uc *ReviewService) RiskAssessments(ctx context.Context) ([]domain.RiskAssessment, error) {
	assessments, err := uc.catalog.RiskAssessments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list risk assessments: %w", err)
	}
	slices.SortStableFunc(assessments, func(a, b domain.RiskAssessment) int {
		if c := cmp.Compare(b.OverallRisk.Rank(), a.OverallRisk.Rank()); c != 0 {
			return c
		}
		return cmp.Compare(a.DeclarationID, b.DeclarationID)
	})
	return assessments, nil
}

func (uc *ReviewService) RiskAssessment(ctx context.Context, declarationID string) (domain.RiskAssessment, error) {
	id := strings.TrimSpace(declarationID)
	if id == "" {
		return domain.RiskAssessment{}, domain.WrapError(domain.ErrInvalidInput, "get risk assessment", fmt.Errorf("declaration id is required"))
	}
	assessments, err := uc.catalog.RiskAssessments(ctx)
	if err != nil {
		return domain.RiskAssessment{}, fmt.Errorf("list risk assessments: %w", err)
	}
	for _, a := range assessments {
		if strings.EqualFold(a.DeclarationID, id) {
			return a, nil
		}
	}
	return domain.RiskAssessment{}, domain.WrapError(domain.ErrNotFound, "get risk assessment", fmt.Errorf("declaration %s", id))
}

// RiskSummary counts assessments per overall level. Every level is present.
func (uc *ReviewService) RiskSummary(ctx context.Context) (map[domain.RiskLevel]int, error) {
	assessments, err := uc.catalog.RiskAssessments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list risk assessments: %w", err)
	}
	summary := make(map[domain.RiskLevel]int, len(domain.RiskLevels()))
	for _, level := range domain.RiskLevels() {
		summary[level] = 0
	}
	for _, a := range assessments {
		summary[a.OverallRisk]++
	}
	return summary, nil
}

func (uc *ReviewService) Verifications(ctx context.Context) ([]domain.DocumentVerification, error) {
	verifications, err := uc.catalog.Verifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("list verifications: %w", err)
	}
	return verifications, nil
}

// Controls lists physical controls, optionally filtered by status. An empty
// status returns all of them.
func (uc *ReviewService) Controls(ctx context.Context, status domain.ControlStatus) ([]domain.CustomsControl, error) {
	if status != "" && !status.Valid() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "list controls", fmt.Errorf("unknown control status %q", status))
	}
	controls, err := uc.catalog.Controls(ctx)
	if err != nil {
		return nil, fmt.Errorf("list controls: %w", err)
	}
	if status == "" {
		return controls, nil
	}
	filtered := make([]domain.CustomsControl, 0, len(controls))
	for _, c := range controls {
		if c.Status == status {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func (uc *ReviewService) ControlSummary(ctx context.Context) (domain.ControlSummary, error) {
	controls, err := uc.catalog.Controls(ctx)
	if err != nil {
		return domain.ControlSummary{}, fmt.Errorf("list controls: %w", err)
	}
	var summary domain.ControlSummary
	for _, c := range controls {
		switch c.Status {
		case domain.ControlScheduled:
			summary.Scheduled++
		case domain.ControlInProgress:
			summary.InProgress++
		case domain.ControlCompleted:
			summary.Completed++
			if c.Decision == domain.DecisionRelease {
				summary.Released++
			}
		}
	}
	return summary, nil
}

// TraderDashboard merges the sample counters with the declarations submitted
// by this process.
func (uc *ReviewService) TraderDashboard(ctx context.Context) (domain.TraderDashboard, error) {
	stats, err := uc.catalog.TraderStats(ctx)
	if err != nil {
		return domain.TraderDashboard{}, fmt.Errorf("load trader stats: %w", err)
	}
	alerts, err := uc.catalog.TraderAlerts(ctx)
	if err != nil {
		return domain.TraderDashboard{}, fmt.Errorf("load trader alerts: %w", err)
	}
	recent, err := uc.catalog.RecentDeclarations(ctx)
	if err != nil {
		return domain.TraderDashboard{}, fmt.Errorf("load recent declarations: %w", err)
	}
	submitted, err := uc.submitted(ctx)
	if err != nil {
		return domain.TraderDashboard{}, err
	}

	for _, decl := range submitted {
		stats.DeclarationsInProgress++
		stats.MonthlySavings = stats.MonthlySavings.Add(decl.PreferentialSavings)
	}
	return domain.TraderDashboard{
		Stats:     stats,
		Alerts:    alerts,
		Recent:    recent,
		Submitted: submitted,
	}, nil
}

func (uc *ReviewService) CustomsDashboard(ctx context.Context) (domain.CustomsDashboard, error) {
	stats, err := uc.catalog.CustomsStats(ctx)
	if err != nil {
		return domain.CustomsDashboard{}, fmt.Errorf("load customs stats: %w", err)
	}
	priority, err := uc.catalog.PriorityDeclarations(ctx)
	if err != nil {
		return domain.CustomsDashboard{}, fmt.Errorf("load priority declarations: %w", err)
	}
	alerts, err := uc.catalog.CustomsAlerts(ctx)
	if err != nil {
		return domain.CustomsDashboard{}, fmt.Errorf("load customs alerts: %w", err)
	}
	submitted, err := uc.submitted(ctx)
	if err != nil {
		return domain.CustomsDashboard{}, err
	}

	stats.DeclarationsPending += len(submitted)
	return domain.CustomsDashboard{
		Stats:     stats,
		Priority:  priority,
		Alerts:    alerts,
		Submitted: submitted,
	}, nil
}

func (uc *ReviewService) submitted(ctx context.Context) ([]domain.Declaration, error) {
	if uc.registry == nil {
		return nil, nil
	}
	decls, err := uc.registry.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list submitted declarations: %w", err)
	}
	return decls, nil
}
