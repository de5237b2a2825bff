package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/ecotrack/internal/engine"
	"github.com/rshade/ecotrack/internal/greenit"
	"github.com/rshade/ecotrack/internal/greenops"
)

// View renders the active tab (Bubble Tea interface).
func (m DashboardModel) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}

	var body string
	switch m.tab {
	case TabTracker:
		body = m.renderTracker()
	case TabActivities:
		body = m.renderActivities()
	case TabGreenIT:
		body = m.renderGreenIT()
	case TabLedger:
		body = m.renderLedger()
	case TabRecommendations:
		body = m.renderRecommendations()
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(BoxStyle.Width(m.width - borderPadding).Render(body))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m DashboardModel) renderTabs() string {
	tabs := make([]string, 0, numTabs)
	for t := range Tab(numTabs) {
		if t == m.tab {
			tabs = append(tabs, ActiveTabStyle.Render(t.String()))
		} else {
			tabs = append(tabs, TabStyle.Render(t.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m DashboardModel) renderTracker() string {
	snap := m.data.Tracker
	s := snap.Stats

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("ECOTRACKER · " + strings.ToUpper(snap.User.Name)))
	b.WriteString("\n\n")
	field(&b, "Carbon this month", m.nf.Float(s.TotalCarbon, 2)+" kg CO2")
	field(&b, "Energy this month", m.nf.Float(s.TotalEnergy, 2)+" kWh")
	field(&b, "Savings", m.nf.Float(s.TotalSavings, 2)+" kg CO2")
	field(&b, "Eco score", fmt.Sprintf("%d/100", s.EcoScore))
	if snap.Goal.Goal > 0 {
		field(&b, "Goal", fmt.Sprintf("%s %s%% %s",
			progressBar(snap.Goal.Percentage, healthStyle(snap.Goal.Health)),
			m.nf.Float(snap.Goal.Percentage, 1),
			healthStyle(snap.Goal.Health).Render(strings.ToUpper(string(snap.Goal.Health)))))
	} else {
		field(&b, "Goal", SubtleStyle.Render("not set"))
	}
	field(&b, "Level", fmt.Sprintf("%d %s · %d XP · %d day streak", snap.Level, snap.LevelName, snap.XP, snap.Streak))
	if m.data.Equivalency != "" {
		b.WriteString(InfoStyle.Render(m.data.Equivalency))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HeaderStyle.Render("BY CATEGORY"))
	if snap.Breakdown.IsPlaceholder {
		b.WriteString(SubtleStyle.Render("  sample values"))
	}
	b.WriteString("\n")
	total := snap.Breakdown.Total()
	for _, bk := range snap.Breakdown.Buckets {
		pct := 0.0
		if total > 0 {
			pct = bk.Carbon / total * 100
		}
		fmt.Fprintf(&b, "  %-14s %s %s\n", bk.Label, progressBar(pct, OKStyle), m.nf.Float(bk.Carbon, 2))
	}

	if len(snap.Challenges) > 0 {
		b.WriteString("\n")
		b.WriteString(HeaderStyle.Render("CHALLENGES"))
		b.WriteString("\n")
		for _, c := range snap.Challenges {
			mark := " "
			if c.Completed {
				mark = OKStyle.Render("✓")
			}
			fmt.Fprintf(&b, "%s %-30s %s\n", mark, c.Title, progressBar(c.Progress, OKStyle))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m DashboardModel) renderActivities() string {
	if m.activities.Len() == 0 {
		return SubtleStyle.Render("No activities yet. Add one with: ecotrack activity add <category> <value>")
	}
	header := HeaderStyle.Render(fmt.Sprintf("ACTIVITIES (%d)", m.activities.Len()))
	return header + "\n" + m.activities.View()
}

func (m DashboardModel) renderGreenIT() string {
	snap := m.data.GreenIT
	t := snap.Totals

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("GREEN IT"))
	b.WriteString("\n\n")
	field(&b, "Energy", m.nf.Float(t.Energy, 0)+" kWh/month")
	field(&b, "Carbon", m.nf.Float(t.Carbon, 0)+" kg CO2/month ("+snap.SidebarCarbon+")")
	field(&b, "Cost", m.nf.Float(t.Cost, 2)+" "+snap.Settings.Currency+"/month")
	field(&b, "Efficiency", m.nf.Float(t.Efficiency, 0)+"%")
	field(&b, "Slots", fmt.Sprintf("%d/%d", t.Slots, len(greenit.Slots())))

	if len(snap.Status) > 0 {
		b.WriteString("\n")
		b.WriteString(HeaderStyle.Render("INFRASTRUCTURE"))
		b.WriteString("\n")
		for _, s := range snap.Status {
			fmt.Fprintf(&b, "  %-24s %s %3d%% %s\n",
				s.Label, progressBar(float64(s.Utilization), loadStyle(s.Level)), s.Utilization, s.Level)
		}
	}

	b.WriteString("\n")
	b.WriteString(HeaderStyle.Render("ENERGY SPLIT"))
	if snap.Split.IsPlaceholder {
		b.WriteString(SubtleStyle.Render("  sample values"))
	}
	b.WriteString("\n")
	shares := snap.Split.Share()
	for i, p := range snap.Split.Parts {
		fmt.Fprintf(&b, "  %-24s %s %s%%\n", p.Label, progressBar(shares[i], InfoStyle), m.nf.Float(shares[i], 1))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m DashboardModel) renderLedger() string {
	if len(m.data.GreenIT.Transactions) == 0 {
		return SubtleStyle.Render("No calculations recorded yet. Run: ecotrack greenit calc <slot>")
	}
	header := HeaderStyle.Render(fmt.Sprintf("LEDGER (%d of %d)",
		len(m.data.GreenIT.Transactions), m.data.GreenIT.TransactionCount))
	return header + "\n" + m.ledger.View()
}

func (m DashboardModel) renderRecommendations() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("FOR YOU"))
	b.WriteString("\n")
	for _, r := range m.data.Tracker.Recommendations {
		fmt.Fprintf(&b, "%s %s\n  %s\n  %s\n",
			r.Icon, ValueStyle.Render(r.Title), r.Description, LabelStyle.Render("Impact: "+r.Impact))
	}

	b.WriteString("\n")
	b.WriteString(HeaderStyle.Render("GREEN IT PRACTICES"))
	b.WriteString("\n")
	for _, p := range m.data.GreenIT.Practices {
		fmt.Fprintf(&b, "%s %s %s\n", p.Icon, ValueStyle.Render(p.Title), LabelStyle.Render("· "+p.Savings))
	}
	return strings.TrimRight(b.String(), "\n")
}

func field(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s %s\n", LabelStyle.Render(fmt.Sprintf("%-18s", label+":")), value)
}

func progressBar(pct float64, style lipgloss.Style) string {
	capped := min(max(pct, 0), 100)
	filled := int(capped / 100 * barWidth)
	return style.Render(strings.Repeat("█", filled)) + LabelStyle.Render(strings.Repeat("░", barWidth-filled))
}

func healthStyle(h engine.GoalHealth) lipgloss.Style {
	switch h {
	case engine.HealthOK:
		return OKStyle
	case engine.HealthWarning:
		return WarningStyle
	case engine.HealthCritical, engine.HealthExceeded:
		return CriticalStyle
	default:
		return SubtleStyle
	}
}

func loadStyle(level string) lipgloss.Style {
	switch level {
	case greenit.LoadHigh:
		return CriticalStyle
	case greenit.LoadMedium:
		return WarningStyle
	default:
		return OKStyle
	}
}

// RunDashboard runs the dashboard until the user quits or ctx is cancelled.
func RunDashboard(ctx context.Context, data DashboardData, nf *greenops.Formatter) error {
	p := tea.NewProgram(
		NewDashboardModel(ctx, data, nf),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
