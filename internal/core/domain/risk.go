package domain

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Upper bounds (inclusive) of the low, medium and high buckets.
const (
	RiskLowMax    = 0.3
	RiskMediumMax = 0.6
	RiskHighMax   = 0.8
)

// BucketRisk maps a score to its risk level. Scores outside [0,1] are not
// clamped; NaN lands in critical.
func BucketRisk(score float64) RiskLevel {
	switch {
	case score <= RiskLowMax:
		return RiskLow
	case score <= RiskMediumMax:
		return RiskMedium
	case score <= RiskHighMax:
		return RiskHigh
	default:
		return RiskCritical
	}
}

func (l RiskLevel) Rank() int {
	switch l {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	case RiskCritical:
		return 4
	default:
		return 0
	}
}

func (l RiskLevel) Valid() bool {
	return l.Rank() > 0
}

func RiskLevels() []RiskLevel {
	return []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskCritical}
}

type RiskFactors struct {
	ImporterHistory      float64 `json:"importer_history"`
	ProductRisk          float64 `json:"product_risk"`
	OriginCountry        float64 `json:"origin_country"`
	ValueConsistency     float64 `json:"value_consistency"`
	DocumentAuthenticity float64 `json:"document_authenticity"`
}

// RiskFactor is one named factor score, in display order.
type RiskFactor struct {
	Name  string    `json:"name"`
	Label string    `json:"label"`
	Score float64   `json:"score"`
	Level RiskLevel `json:"level"`
}

func (f RiskFactors) List() []RiskFactor {
	factor := func(name, label string, score float64) RiskFactor {
		return RiskFactor{Name: name, Label: label, Score: score, Level: BucketRisk(score)}
	}
	return []RiskFactor{
		factor("importer_history", "Importer history", f.ImporterHistory),
		factor("product_risk", "Product risk", f.ProductRisk),
		factor("origin_country", "Origin country", f.OriginCountry),
		factor("value_consistency", "Value consistency", f.ValueConsistency),
		factor("document_authenticity", "Document authenticity", f.DocumentAuthenticity),
	}
}

type RiskAssessment struct {
	DeclarationID       string      `json:"declaration_id"`
	OverallRisk         RiskLevel   `json:"overall_risk"`
	Factors             RiskFactors `json:"factors"`
	RecommendedControls []string    `json:"recommended_controls"`
	Confidence          float64     `json:"confidence"`
}
