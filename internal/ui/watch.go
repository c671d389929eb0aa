package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rawwerks/syshealth/internal/config"
	"github.com/rawwerks/syshealth/internal/model"
	"github.com/rawwerks/syshealth/internal/sampler"
)

// watchModel re-runs the one-shot pipeline at a fixed interval and
// renders the same report the summary prints.
type watchModel struct {
	smp    *sampler.Sampler
	th     config.Thresholds
	opts   config.Options
	latest *model.Report
}

// Messages
type (
	tickMsg   struct{}
	sampleMsg model.Report
)

// sampleCmd runs a full sample off the update loop; the CPU sampler's
// 200ms counter gap rides inside it.
func (m watchModel) sampleCmd() tea.Cmd {
	return func() tea.Msg {
		return sampleMsg(m.smp.Sample(context.Background()))
	}
}

func (m watchModel) tickCmd() tea.Cmd {
	return tea.Tick(m.opts.Interval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m watchModel) Init() tea.Cmd { return m.sampleCmd() }

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case sampleMsg:
		rep := model.Report(msg)
		m.latest = &rep
		return m, m.tickCmd()
	case tickMsg:
		return m, m.sampleCmd()
	}
	return m, nil
}

func (m watchModel) View() string {
	if m.latest == nil {
		return "sampling...\n"
	}
	body := RenderReport(*m.latest, m.th, m.opts.Color)
	footer := legendStyle.Render("refreshing every " + m.opts.Interval.String() + "  |  q to quit")
	return body + footer + "\n"
}

// RunWatch drives the live view until the user quits.
func RunWatch(logger *zap.Logger, th config.Thresholds, opts config.Options) error {
	m := watchModel{
		smp:  sampler.New(logger),
		th:   th,
		opts: opts,
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
