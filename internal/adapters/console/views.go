package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kirillkom/customs-intake/internal/core/domain"
)

// Renderer turns domain records into terminal text.
type Renderer struct {
	styles Styles
}

func NewRenderer(styles Styles) *Renderer {
	return &Renderer{styles: styles}
}

func (r *Renderer) table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.styles.Muted).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.styles.Header
			}
			return r.styles.Cell
		})
	return t.String()
}

func (r *Renderer) risk(level domain.RiskLevel) string {
	return lipgloss.NewStyle().Foreground(RiskColor(string(level))).Bold(true).Render(strings.ToUpper(string(level)))
}

func (r *Renderer) Step(step domain.Step, phase domain.AnalysisPhase) string {
	labels := []string{"1. Declaration info", "2. Documents", "3. Eligibility"}
	parts := make([]string, len(labels))
	for i, label := range labels {
		switch {
		case domain.Step(i+1) == step:
			parts[i] = r.styles.Label.Render("[" + label + "]")
		case domain.Step(i+1) < step:
			parts[i] = r.styles.Success.Render(label)
		default:
			parts[i] = r.styles.Muted.Render(label)
		}
	}
	return strings.Join(parts, "  >  ") + "  " + r.styles.Muted.Render("("+string(phase)+")")
}

func (r *Renderer) Draft(draft domain.DeclarationDraft) string {
	rows := [][]string{
		{"Importer", draft.Importer},
		{"Address", draft.Address},
		{"Regime", draft.Regime},
		{"Discharge port", draft.DischargePort},
		{"Origin country", draft.OriginCountry},
		{"Currency", draft.Currency},
	}
	return r.styles.Title.Render("Declaration info") + "\n" + r.table([]string{"Field", "Value"}, rows)
}

func (r *Renderer) Documents(docs []domain.Document) string {
	if len(docs) == 0 {
		return r.styles.Muted.Render("No documents yet.")
	}
	rows := make([][]string, 0, len(docs))
	for _, doc := range docs {
		status := string(doc.Status)
		if doc.Status == domain.DocumentError {
			status = r.styles.Danger.Render(status)
		}
		rows = append(rows, []string{doc.Name, doc.Type.Label(), status, formatPercent(doc.Confidence), strings.Join(doc.Alerts, "; ")})
	}
	return r.styles.Title.Render("Documents") + "\n" + r.table([]string{"File", "Type", "Status", "Confidence", "Alerts"}, rows)
}

func (r *Renderer) Eligibility(analysis *domain.EligibilityAnalysis, currency string) string {
	if analysis == nil {
		return r.styles.Muted.Render("Eligibility analysis not available.")
	}
	verdict := r.styles.Danger.Render("Not eligible for the AfCFTA preferential tariff")
	if analysis.Eligible {
		verdict = r.styles.Success.Render("Eligible for the AfCFTA preferential tariff")
	}
	rows := [][]string{
		{"Normal tariff", analysis.NormalTariffRate.String() + "%"},
		{"AfCFTA tariff", analysis.PreferentialTariffRate.String() + "%"},
		{"Savings", formatMoney(analysis.SavingsAmount, currency) + " (" + analysis.SavingsPercent.String() + "%)"},
		{"Certificate of origin", checkmark(analysis.Requirements.CertificateOfOrigin)},
		{"Regional content", checkmark(analysis.Requirements.RegionalContent)},
		{"Substantial transformation", checkmark(analysis.Requirements.SubstantialTransformation)},
	}
	return r.styles.Title.Render("Eligibility") + "\n" + verdict + "\n" + r.table([]string{"Item", "Value"}, rows)
}

func (r *Renderer) Declaration(decl domain.Declaration) string {
	var b strings.Builder
	b.WriteString(r.styles.Success.Render("Declaration submitted"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", r.styles.Label.Render("Number:"), decl.Number)
	fmt.Fprintf(&b, "%s %s\n", r.styles.Label.Render("Importer:"), decl.Importer)
	fmt.Fprintf(&b, "%s %s\n", r.styles.Label.Render("Total value:"), formatMoney(decl.TotalValue, decl.Currency))
	fmt.Fprintf(&b, "%s %s\n", r.styles.Label.Render("AfCFTA savings:"), formatMoney(decl.PreferentialSavings, decl.Currency))
	fmt.Fprintf(&b, "%s %d\n", r.styles.Label.Render("Documents:"), len(decl.Documents))
	fmt.Fprintf(&b, "%s %s", r.styles.Label.Render("Submitted at:"), decl.CreatedAt.Format("02/01/2006 15:04"))
	return r.styles.Card.Render(b.String())
}

func (r *Renderer) Timeline(stages []domain.TimelineStage) string {
	lines := make([]string, 0, len(stages))
	for _, stage := range stages {
		var marker string
		switch stage.Status {
		case domain.StageCompleted:
			marker = r.styles.Success.Render("[x]")
		case domain.StageCurrent:
			marker = r.styles.Warning.Render("[>]")
		default:
			marker = r.styles.Muted.Render("[ ]")
		}
		lines = append(lines, fmt.Sprintf("%s %s  %s", marker, stage.Name, r.styles.Muted.Render(stage.When)))
	}
	return r.styles.Title.Render("Tracking") + "\n" + strings.Join(lines, "\n")
}

func (r *Renderer) Progress(percent int) string {
	return fmt.Sprintf("Clearance progress: %d%%", percent)
}

func (r *Renderer) Bucket(score float64, level domain.RiskLevel) string {
	return fmt.Sprintf("%-8g %s", score, r.risk(level))
}
