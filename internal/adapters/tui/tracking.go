// Package tui holds the interactive terminal views of the portal.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kirillkom/customs-intake/internal/core/domain"
)

// lingerDelay keeps the finished view on screen before quitting.
const lingerDelay = 1500 * time.Millisecond

type progressMsg int

type progressClosedMsg struct{}

type lingerDoneMsg struct{}

// TrackingModel shows the clearance stages of a declaration and a progress
// bar fed by a channel of percentages.
type TrackingModel struct {
	number  string
	stages  []domain.TimelineStage
	updates <-chan int
	bar     progress.Model
	percent int
	done    bool

	titleStyle lipgloss.Style
	doneStyle  lipgloss.Style
	mutedStyle lipgloss.Style
}

func NewTrackingModel(number string, stages []domain.TimelineStage, updates <-chan int) TrackingModel {
	return TrackingModel{
		number:     number,
		stages:     stages,
		updates:    updates,
		bar:        progress.New(progress.WithDefaultGradient()),
		titleStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1565C0")),
		doneStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("#2E7D32")).Bold(true),
		mutedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#78909C")),
	}
}

func waitForProgress(updates <-chan int) tea.Cmd {
	return func() tea.Msg {
		value, ok := <-updates
		if !ok {
			return progressClosedMsg{}
		}
		return progressMsg(value)
	}
}

func linger() tea.Cmd {
	return tea.Tick(lingerDelay, func(time.Time) tea.Msg { return lingerDoneMsg{} })
}

func (m TrackingModel) Init() tea.Cmd {
	return waitForProgress(m.updates)
}

func (m TrackingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.bar.Width = max(10, min(msg.Width-4, 60))
	case progressMsg:
		m.percent = int(msg)
		if m.percent >= 100 {
			m.done = true
			return m, linger()
		}
		return m, waitForProgress(m.updates)
	case progressClosedMsg:
		m.done = true
		return m, linger()
	case lingerDoneMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m TrackingModel) View() string {
	var b strings.Builder
	b.WriteString(m.titleStyle.Render("Tracking " + m.number))
	b.WriteString("\n\n")
	for _, stage := range m.stages {
		marker := "[ ]"
		switch stage.Status {
		case domain.StageCompleted:
			marker = "[x]"
		case domain.StageCurrent:
			marker = "[>]"
		}
		fmt.Fprintf(&b, "%s %s  %s\n", marker, stage.Name, m.mutedStyle.Render(stage.When))
	}
	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(float64(m.percent) / 100))
	b.WriteString("\n")
	if m.done {
		b.WriteString(m.doneStyle.Render(fmt.Sprintf("Clearance %d%%", m.percent)))
	} else {
		b.WriteString(m.mutedStyle.Render(fmt.Sprintf("Clearance %d%%  (q to quit)", m.percent)))
	}
	b.WriteString("\n")
	return b.String()
}

// RunTracking runs the tracking view until progress completes, the user
// quits or ctx ends.
func RunTracking(ctx context.Context, model TrackingModel, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run tracking view: %w", err)
	}
	return nil
}
