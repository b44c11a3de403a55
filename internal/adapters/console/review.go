package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kirillkom/customs-intake/internal/core/domain"
)

func (r *Renderer) RiskAssessments(assessments []domain.RiskAssessment, summary map[domain.RiskLevel]int) string {
	rows := make([][]string, 0, len(assessments))
	for _, a := range assessments {
		rows = append(rows, []string{
			a.DeclarationID,
			r.risk(a.OverallRisk),
			formatPercent(a.Confidence),
			strconv.Itoa(len(a.RecommendedControls)),
		})
	}
	counts := make([]string, 0, len(domain.RiskLevels()))
	for _, level := range domain.RiskLevels() {
		counts = append(counts, fmt.Sprintf("%s %d", r.risk(level), summary[level]))
	}
	return r.styles.Title.Render("Risk analysis") + "\n" +
		strings.Join(counts, "   ") + "\n" +
		r.table([]string{"Declaration", "Overall risk", "Confidence", "Controls"}, rows)
}

func (r *Renderer) RiskAssessment(a domain.RiskAssessment) string {
	rows := make([][]string, 0, 5)
	for _, f := range a.Factors.List() {
		rows = append(rows, []string{f.Label, fmt.Sprintf("%.0f%%", f.Score*100), r.risk(f.Level)})
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.styles.Title.Render("Risk assessment "+a.DeclarationID))
	fmt.Fprintf(&b, "%s %s   %s %s\n", r.styles.Label.Render("Overall:"), r.risk(a.OverallRisk), r.styles.Label.Render("Confidence:"), formatPercent(a.Confidence))
	b.WriteString(r.table([]string{"Factor", "Score", "Level"}, rows))
	b.WriteString("\n")
	b.WriteString(r.styles.Heading.Render("Recommended controls"))
	for _, c := range a.RecommendedControls {
		b.WriteString("\n  - " + c)
	}
	return b.String()
}

func (r *Renderer) Verifications(verifications []domain.DocumentVerification) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render(fmt.Sprintf("Document verification (%d pending)", len(verifications))))
	for _, v := range verifications {
		b.WriteString("\n")
		var card strings.Builder
		fmt.Fprintf(&card, "%s  %s\n", r.styles.Label.Render(v.Document.Name), r.styles.Muted.Render(v.DeclarationID+" - "+v.Importer))
		fmt.Fprintf(&card, "Confidence %s  Status %s  Action %s  Worst %s",
			formatPercent(v.Document.Confidence), v.Status, v.RecommendedAction, r.risk(v.WorstSeverity()))
		for _, f := range v.Findings {
			fmt.Fprintf(&card, "\n  [%s] %s: %s", f.Type, f.Field, f.Description)
		}
		b.WriteString(r.styles.Card.Render(card.String()))
	}
	return b.String()
}

func (r *Renderer) Controls(controls []domain.CustomsControl, summary domain.ControlSummary) string {
	rows := make([][]string, 0, len(controls))
	for _, c := range controls {
		rows = append(rows, []string{
			c.ID,
			c.DeclarationID,
			string(c.Type),
			string(c.Status),
			c.AssignedOfficer,
			c.ScheduledAt.Format("02/01/2006 15:04"),
			strings.ToUpper(string(c.Decision)),
			strconv.Itoa(len(c.Findings)),
		})
	}
	counts := fmt.Sprintf("scheduled %d   in progress %d   completed %d   released %d",
		summary.Scheduled, summary.InProgress, summary.Completed, summary.Released)
	return r.styles.Title.Render("Physical controls") + "\n" + counts + "\n" +
		r.table([]string{"Control", "Declaration", "Type", "Status", "Officer", "Scheduled", "Decision", "Findings"}, rows)
}

func (r *Renderer) alerts(alerts []domain.Alert) string {
	lines := make([]string, 0, len(alerts))
	for _, a := range alerts {
		line := fmt.Sprintf("%s %s", r.risk(a.Priority), a.Message)
		if a.Age != "" {
			line += r.styles.Muted.Render("  " + a.Age)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) submitted(decls []domain.Declaration) string {
	if len(decls) == 0 {
		return ""
	}
	rows := make([][]string, 0, len(decls))
	for _, d := range decls {
		rows = append(rows, []string{d.Number, d.Importer, formatMoney(d.TotalValue, d.Currency), string(d.Status), formatMoney(d.PreferentialSavings, d.Currency)})
	}
	return "\n" + r.styles.Heading.Render("Submitted this session") + "\n" +
		r.table([]string{"Number", "Importer", "Value", "Status", "Savings"}, rows)
}

func (r *Renderer) TraderDashboard(d domain.TraderDashboard) string {
	stats := fmt.Sprintf("In progress %d   AfCFTA alerts %d   Documents pending %d   Savings this month %s",
		d.Stats.DeclarationsInProgress, d.Stats.EligibilityAlerts, d.Stats.DocumentsPending, formatMoney(d.Stats.MonthlySavings, "USD"))
	rows := make([][]string, 0, len(d.Recent))
	for _, s := range d.Recent {
		rows = append(rows, []string{s.ID, s.Product, formatMoney(s.Value, s.Currency), s.Status, formatMoney(s.Savings, s.Currency)})
	}
	return r.styles.Title.Render("Trader dashboard") + "\n" + stats + "\n\n" +
		r.styles.Heading.Render("Alerts") + "\n" + r.alerts(d.Alerts) + "\n\n" +
		r.styles.Heading.Render("Recent declarations") + "\n" +
		r.table([]string{"Declaration", "Product", "Value", "Status", "Savings"}, rows) +
		r.submitted(d.Submitted)
}

func (r *Renderer) CustomsDashboard(d domain.CustomsDashboard) string {
	stats := fmt.Sprintf("Pending %d   Controls in progress %d   Risk alerts %d   Validated today %d",
		d.Stats.DeclarationsPending, d.Stats.ControlsInProgress, d.Stats.RiskAlerts, d.Stats.ValidationsToday)
	rows := make([][]string, 0, len(d.Priority))
	for _, p := range d.Priority {
		rows = append(rows, []string{p.ID, p.Importer, p.Product, formatMoney(p.Value, p.Currency), r.risk(p.Risk), p.Status, p.Deadline})
	}
	return r.styles.Title.Render("Customs dashboard") + "\n" + stats + "\n\n" +
		r.styles.Heading.Render("Priority declarations") + "\n" +
		r.table([]string{"Declaration", "Importer", "Product", "Value", "Risk", "Status", "Deadline"}, rows) + "\n\n" +
		r.styles.Heading.Render("Alerts") + "\n" + r.alerts(d.Alerts) +
		r.submitted(d.Submitted)
}
