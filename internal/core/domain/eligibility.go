package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EligibilityAnalysis is the AfCFTA preferential-tariff assessment of a draft.
// Rates and percentages are expressed in percent.
type EligibilityAnalysis struct {
	Eligible               bool                    `json:"eligible"`
	SavingsAmount          decimal.Decimal         `json:"savings_amount"`
	SavingsPercent         decimal.Decimal         `json:"savings_percent"`
	NormalTariffRate       decimal.Decimal         `json:"normal_tariff_rate"`
	PreferentialTariffRate decimal.Decimal         `json:"preferential_tariff_rate"`
	Requirements           EligibilityRequirements `json:"requirements"`
	AnalyzedAt             time.Time               `json:"analyzed_at"`
}

type EligibilityRequirements struct {
	CertificateOfOrigin       bool `json:"certificate_of_origin"`
	RegionalContent           bool `json:"regional_content"`
	SubstantialTransformation bool `json:"substantial_transformation"`
}

func (r EligibilityRequirements) AllMet() bool {
	return r.CertificateOfOrigin && r.RegionalContent && r.SubstantialTransformation
}
