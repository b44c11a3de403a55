package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type VerificationStatus string

const (
	VerificationPending          VerificationStatus = "pending"
	VerificationInReview         VerificationStatus = "in_review"
	VerificationApproved         VerificationStatus = "approved"
	VerificationRejected         VerificationStatus = "rejected"
	VerificationRequiresPhysical VerificationStatus = "requires_physical"
)

type FindingType string

const (
	FindingDiscrepancy FindingType = "discrepancy"
	FindingMissingInfo FindingType = "missing_info"
	FindingSuspicious  FindingType = "suspicious"
	FindingCompliant   FindingType = "compliant"
	FindingWarning     FindingType = "warning"
)

type RecommendedAction string

const (
	ActionApprove        RecommendedAction = "approve"
	ActionPhysicalExam   RecommendedAction = "physical_exam"
	ActionReject         RecommendedAction = "reject"
	ActionAdditionalDocs RecommendedAction = "additional_docs"
)

type VerificationFinding struct {
	Type         FindingType `json:"type"`
	Field        string      `json:"field"`
	Description  string      `json:"description"`
	Severity     RiskLevel   `json:"severity"`
	AutoDetected bool        `json:"auto_detected"`
}

// DocumentVerification is an inspector's review of one declared document.
type DocumentVerification struct {
	ID                string                `json:"id"`
	DeclarationID     string                `json:"declaration_id"`
	Importer          string                `json:"importer"`
	Document          Document              `json:"document"`
	Status            VerificationStatus    `json:"status"`
	Findings          []VerificationFinding `json:"findings"`
	RiskScore         float64               `json:"risk_score"`
	RecommendedAction RecommendedAction     `json:"recommended_action"`
	Notes             string                `json:"notes,omitempty"`
}

// WorstSeverity is the highest finding severity, low when there are none.
func (v DocumentVerification) WorstSeverity() RiskLevel {
	worst := RiskLow
	for _, f := range v.Findings {
		if f.Severity.Rank() > worst.Rank() {
			worst = f.Severity
		}
	}
	return worst
}

type ControlType string

const (
	ControlDocumentary ControlType = "documentary"
	ControlPhysical    ControlType = "physical"
	ControlScanner     ControlType = "scanner"
	ControlLaboratory  ControlType = "laboratory"
)

type ControlStatus string

const (
	ControlScheduled  ControlStatus = "scheduled"
	ControlInProgress ControlStatus = "in_progress"
	ControlCompleted  ControlStatus = "completed"
	ControlCancelled  ControlStatus = "cancelled"
)

type ControlDecision string

const (
	DecisionRelease ControlDecision = "release"
	DecisionHold    ControlDecision = "hold"
	DecisionSeize   ControlDecision = "seize"
	DecisionPenalty ControlDecision = "penalty"
)

type FindingImpact string

const (
	ImpactNone     FindingImpact = "none"
	ImpactMinor    FindingImpact = "minor"
	ImpactMajor    FindingImpact = "major"
	ImpactCritical FindingImpact = "critical"
)

type ControlFinding struct {
	Category    string        `json:"category"`
	Description string        `json:"description"`
	Evidence    []string      `json:"evidence"`
	Impact      FindingImpact `json:"impact"`
}

type CustomsControl struct {
	ID              string           `json:"id"`
	DeclarationID   string           `json:"declaration_id"`
	Type            ControlType      `json:"type"`
	Status          ControlStatus    `json:"status"`
	AssignedOfficer string           `json:"assigned_officer"`
	ScheduledAt     time.Time        `json:"scheduled_at"`
	CompletedAt     *time.Time       `json:"completed_at,omitempty"`
	Findings        []ControlFinding `json:"findings"`
	Decision        ControlDecision  `json:"decision"`
	PenaltyAmount   *decimal.Decimal `json:"penalty_amount,omitempty"`
}

type ControlSummary struct {
	Scheduled  int `json:"scheduled"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Released   int `json:"released"`
}

// Alert is a dashboard notice. Priority reuses the risk scale.
type Alert struct {
	ID       int       `json:"id"`
	Kind     string    `json:"kind"`
	Message  string    `json:"message"`
	Priority RiskLevel `json:"priority"`
	Age      string    `json:"age,omitempty"`
}

type DeclarationSummary struct {
	ID       string          `json:"id"`
	Product  string          `json:"product"`
	Value    decimal.Decimal `json:"value"`
	Currency string          `json:"currency"`
	Status   string          `json:"status"`
	Savings  decimal.Decimal `json:"savings"`
}

type PriorityDeclaration struct {
	ID       string          `json:"id"`
	Importer string          `json:"importer"`
	Product  string          `json:"product"`
	Value    decimal.Decimal `json:"value"`
	Currency string          `json:"currency"`
	Risk     RiskLevel       `json:"risk"`
	Status   string          `json:"status"`
	Deadline string          `json:"deadline"`
}

type TraderStats struct {
	DeclarationsInProgress int             `json:"declarations_in_progress"`
	EligibilityAlerts      int             `json:"eligibility_alerts"`
	DocumentsPending       int             `json:"documents_pending"`
	MonthlySavings         decimal.Decimal `json:"monthly_savings"`
}

type CustomsStats struct {
	DeclarationsPending int `json:"declarations_pending"`
	ControlsInProgress  int `json:"controls_in_progress"`
	RiskAlerts          int `json:"risk_alerts"`
	ValidationsToday    int `json:"validations_today"`
}

type TraderDashboard struct {
	Stats     TraderStats          `json:"stats"`
	Alerts    []Alert              `json:"alerts"`
	Recent    []DeclarationSummary `json:"recent"`
	Submitted []Declaration        `json:"submitted"`
}

type CustomsDashboard struct {
	Stats     CustomsStats          `json:"stats"`
	Priority  []PriorityDeclaration `json:"priority"`
	Alerts    []Alert               `json:"alerts"`
	Submitted []Declaration         `json:"submitted"`
}

func (s ControlStatus) Valid() bool {
	switch s {
	case ControlScheduled, ControlInProgress, ControlCompleted, ControlCancelled:
		return true
	default:
		return false
	}
}
