package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskflow/taskflow/internal/query"
	"github.com/taskflow/taskflow/internal/stats"
	"github.com/taskflow/taskflow/internal/store"
	"github.com/taskflow/taskflow/internal/ui/styles"
)

const productivityWindow = 7

// DashboardView shows the derived statistics for the whole collection
type DashboardView struct {
	store  *store.Store
	styles *styles.Styles
	width  int
	height int
}

// NewDashboardView creates the dashboard view
func NewDashboardView(st *store.Store) *DashboardView {
	return &DashboardView{
		store:  st,
		styles: styles.NewStyles(),
	}
}

// Restyle rebuilds styles after a theme change
func (v *DashboardView) Restyle() {
	v.styles = styles.NewStyles()
}

// Capturing is always false; the dashboard takes no text input
func (v *DashboardView) Capturing() bool {
	return false
}

func (v *DashboardView) Init() tea.Cmd {
	return nil
}

func (v *DashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		v.width = msg.Width
		v.height = msg.Height
	}
	return v, nil
}

// View renders the dashboard from a fresh snapshot
func (v *DashboardView) View() string {
	s := v.styles
	now := time.Now()
	tasks := v.store.Tasks()

	summary := stats.Summarize(tasks, now)
	counts := lipgloss.JoinHorizontal(lipgloss.Top,
		v.statBox("Total", summary.Total, s.Title),
		v.statBox("Done", summary.Completed, s.PriorityLow),
		v.statBox("Pending", summary.Pending, s.PriorityMedium),
		v.statBox("Overdue", summary.Overdue, s.PriorityHigh),
	)

	breakdown := stats.PriorityBreakdown(tasks)
	prioLine := fmt.Sprintf("%s %d  %s %d  %s %d",
		s.PriorityHigh.Render("high"), breakdown.High,
		s.PriorityMedium.Render("medium"), breakdown.Medium,
		s.PriorityLow.Render("low"), breakdown.Low,
	)

	var insights []string
	for _, finding := range stats.Insights(tasks, now) {
		insights = append(insights, "• "+finding)
	}

	dueToday := ""
	if due := query.DueOn(tasks, now); len(due) > 0 {
		names := make([]string, 0, len(due))
		for _, t := range due {
			names = append(names, t.Title)
		}
		dueToday = s.PriorityMedium.Render(fmt.Sprintf("Due today: %s", strings.Join(names, ", ")))
	}

	var recent []string
	for _, t := range query.Recent(tasks, 5) {
		state := s.TitleMuted.Render("pending")
		if t.Completed {
			state = s.PriorityLow.Render("done")
		}
		recent = append(recent, fmt.Sprintf("%s  %s", state, t.Title))
	}
	if len(recent) == 0 {
		recent = append(recent, s.TitleMuted.Render("No recent tasks"))
	}

	sections := []string{
		s.Title.Render("Dashboard"),
		"",
		counts,
		"",
	}
	if dueToday != "" {
		sections = append(sections, dueToday, "")
	}
	sections = append(sections,
		s.TitleMuted.Render("Open tasks by priority"),
		prioLine,
		"",
		s.TitleMuted.Render(fmt.Sprintf("Completed, last %d days", productivityWindow)),
		v.renderProductivity(stats.Productivity(tasks, productivityWindow, now)),
		"",
		s.TitleMuted.Render("Insights"),
		strings.Join(insights, "\n"),
		"",
		s.TitleMuted.Render("Recent tasks"),
		strings.Join(recent, "\n"),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return styles.CenterView(content, v.width, v.height)
}

func (v *DashboardView) statBox(label string, value int, valueStyle lipgloss.Style) string {
	return v.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Center,
		valueStyle.Render(fmt.Sprintf("%d", value)),
		v.styles.TitleMuted.Render(label),
	))
}

// renderProductivity draws a small vertical bar per day, oldest first
func (v *DashboardView) renderProductivity(series []stats.DayCount) string {
	peak := 1
	for _, d := range series {
		if d.Completed > peak {
			peak = d.Completed
		}
	}

	bars := make([]string, 0, len(series))
	for _, d := range series {
		height := d.Completed * 4 / peak
		var bar string
		switch {
		case d.Completed == 0:
			bar = "▁"
		case height <= 1:
			bar = "▂"
		case height == 2:
			bar = "▄"
		case height == 3:
			bar = "▆"
		default:
			bar = "█"
		}
		bars = append(bars, fmt.Sprintf("%s %s %d", v.styles.TitleMuted.Render(d.Label), bar, d.Completed))
	}
	return strings.Join(bars, "\n")
}
