package simulated

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kirillkom/customs-intake/internal/core/domain"
	"github.com/kirillkom/customs-intake/internal/core/ports"
)

var hundred = decimal.NewFromInt(100)

// EligibilityProfile is the fixed outcome of the simulated AfCFTA check.
// Rates are in percent.
type EligibilityProfile struct {
	Eligible               bool
	NormalTariffRate       decimal.Decimal
	PreferentialTariffRate decimal.Decimal
	DeclaredValue          decimal.Decimal
	Currency               string
}

func DefaultEligibilityProfile() EligibilityProfile {
	return EligibilityProfile{
		Eligible:               true,
		NormalTariffRate:       decimal.NewFromInt(20),
		PreferentialTariffRate: decimal.Zero,
		DeclaredValue:          decimal.NewFromInt(2_500_000),
		Currency:               "USD",
	}
}

// SavingsPercent is the tariff points saved; zero when not eligible.
func (p EligibilityProfile) SavingsPercent() decimal.Decimal {
	if !p.Eligible {
		return decimal.Zero
	}
	diff := p.NormalTariffRate.Sub(p.PreferentialTariffRate)
	if diff.IsNegative() {
		return decimal.Zero
	}
	return diff
}

func (p EligibilityProfile) Savings() decimal.Decimal {
	return p.DeclaredValue.Mul(p.SavingsPercent()).Div(hundred).Round(2)
}

type EligibilityAnalyzer struct {
	profile EligibilityProfile
	clock   ports.Clock
}

func NewEligibilityAnalyzer(profile EligibilityProfile, clock ports.Clock) *EligibilityAnalyzer {
	return &EligibilityAnalyzer{profile: profile, clock: clock}
}

// Analyze returns the profile outcome whatever the draft holds.
func (a *EligibilityAnalyzer) Analyze(ctx context.Context, _ domain.DeclarationDraft) (domain.EligibilityAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return domain.EligibilityAnalysis{}, err
	}
	p := a.profile
	return domain.EligibilityAnalysis{
		Eligible:               p.Eligible,
		SavingsAmount:          p.Savings(),
		SavingsPercent:         p.SavingsPercent(),
		NormalTariffRate:       p.NormalTariffRate,
		PreferentialTariffRate: p.PreferentialTariffRate,
		Requirements: domain.EligibilityRequirements{
			CertificateOfOrigin:       p.Eligible,
			RegionalContent:           p.Eligible,
			SubstantialTransformation: p.Eligible,
		},
		AnalyzedAt: a.clock.Now(),
	}, nil
}
