package domain

// Step is a page of the intake wizard.
type Step int

const (
	StepInfo Step = iota + 1
	StepDocuments
	StepEligibility
)

func (s Step) String() string {
	switch s {
	case StepInfo:
		return "info"
	case StepDocuments:
		return "documents"
	case StepEligibility:
		return "eligibility"
	default:
		return "unknown"
	}
}

func (s Step) Next() (Step, bool) {
	if s < StepInfo || s >= StepEligibility {
		return s, false
	}
	return s + 1, true
}

func (s Step) Previous() (Step, bool) {
	if s <= StepInfo || s > StepEligibility {
		return s, false
	}
	return s - 1, true
}

// AnalysisPhase is the second axis of the wizard state.
type AnalysisPhase string

const (
	PhaseDraftIncomplete AnalysisPhase = "draft-incomplete"
	PhaseAnalysisPending AnalysisPhase = "analysis-pending"
	PhaseAnalysisReady   AnalysisPhase = "analysis-ready"
)
