package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/socialgraph/pkg/visualization"
)

const (
	gridCols = 60
	gridRows = 18
)

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("🎓 Campus Social Graph"))
	s.WriteString("\n\n")

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch m.currentView {
	case dashboardView:
		s.WriteString(m.renderDashboard())
	case studentsView:
		s.WriteString(m.renderStudents())
	case exploreView:
		s.WriteString(m.renderExplore())
	case graphView:
		s.WriteString(m.renderGraph())
	case influenceView:
		s.WriteString(m.renderInfluence())
	}

	if m.message != "" {
		s.WriteString("\n\n")
		if m.messageErr {
			s.WriteString(errorStyle.Render("✗ " + m.message))
		} else {
			s.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return s.String()
}

func (m model) renderTabs() string {
	renderedTabs := make([]string, 0, len(viewNames))
	for i, tab := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, tab)
		if view(i) == m.currentView {
			renderedTabs = append(renderedTabs, activeTabStyle.Render(label))
		} else {
			renderedTabs = append(renderedTabs, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)
}

func (m model) renderDashboard() string {
	uptime := time.Since(m.startTime).Round(time.Second)

	statsContent := fmt.Sprintf(`📊 Statistics
━━━━━━━━━━━━━━━
Students:     %d
Friendships:  %d
Avg friends:  %.2f
Density:      %.3f
Isolated:     %d
Communities:  %d
Uptime:       %s`,
		m.stats.StudentCount,
		m.stats.FriendshipCount,
		m.stats.AverageFriends,
		m.stats.Density,
		m.stats.IsolatedStudents,
		len(m.communities.Communities),
		uptime,
	)

	var categories strings.Builder
	categories.WriteString("🏫 Categories\n━━━━━━━━━━━━━━━")
	if len(m.stats.ByCategory) == 0 {
		categories.WriteString("\nNo students yet")
	}
	for _, c := range m.stats.ByCategory {
		fmt.Fprintf(&categories, "\n%-16s %3d", c.Category, c.Count)
	}

	var popular strings.Builder
	popular.WriteString("⭐ Most Popular\n━━━━━━━━━━━━━━━")
	for _, p := range m.stats.MostPopular {
		fmt.Fprintf(&popular, "\n%-16s %3d", p.Name, p.Friends)
	}

	return contentStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		statsBoxStyle.Render(statsContent),
		statsBoxStyle.Render(categories.String()),
		statsBoxStyle.Render(popular.String()),
	))
}

func (m model) renderStudents() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Student Browser"))
	s.WriteString("\n\n")
	s.WriteString(m.studentTable.View())
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Navigate with ↑/↓ • Press 'r' to refresh"))

	return contentStyle.Render(s.String())
}

func (m model) renderExplore() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Explore"))
	s.WriteString("\n\n")
	s.WriteString(m.input.View())
	s.WriteString("\n\n")

	if m.output != "" {
		s.WriteString(m.output)
		s.WriteString("\n")
	} else {
		s.WriteString(helpStyle.Render("Examples:\n"))
		s.WriteString(helpStyle.Render("  friends A\n"))
		s.WriteString(helpStyle.Render("  path A D\n"))
		s.WriteString(helpStyle.Render("  recommend A\n"))
		s.WriteString(helpStyle.Render("  show A\n"))
	}

	return contentStyle.Render(s.String())
}

func (m model) renderGraph() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Network Layout"))
	s.WriteString("\n\n")
	s.WriteString(graphBoxStyle.Render(m.generateGraphViz()))

	return contentStyle.Render(s.String())
}

// generateGraphViz plots a spring layout onto a character grid. Each
// student is drawn as its community number.
func (m model) generateGraphViz() string {
	if m.stats.StudentCount == 0 {
		return "No students to visualize\n\nLoad or generate a network first!"
	}

	cfg := &visualization.LayoutConfig{Width: 100, Height: 100, Iterations: 50, Seed: 1}
	viz, err := m.svc.Layout(string(visualization.KindSpring), cfg)
	if err != nil {
		return "Layout failed: " + err.Error()
	}

	grid := make([][]rune, gridRows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", gridCols))
	}
	for id, cell := range visualization.Grid(viz.Positions, cfg.Width, cfg.Height, gridCols, gridRows) {
		mark := '•'
		if c, ok := viz.Communities[id]; ok && c < 10 {
			mark = rune('0' + c)
		}
		grid[cell[1]][cell[0]] = mark
	}

	var s strings.Builder
	fmt.Fprintf(&s, "%d students, %d friendships, %d communities\n\n",
		m.stats.StudentCount, m.stats.FriendshipCount, len(m.communities.Communities))
	for _, row := range grid {
		s.WriteString(string(row))
		s.WriteString("\n")
	}
	return s.String()
}

func (m model) renderInfluence() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Influence Ranking"))
	s.WriteString("\n\n")

	if len(m.influence) == 0 {
		s.WriteString(helpStyle.Render("No data available\n\nAdd students and friendships to see analytics!"))
		return contentStyle.Render(s.String())
	}

	top := m.influence[0].Total
	for i, score := range m.influence {
		name := score.StudentID
		if st, err := m.svc.Student(score.StudentID); err == nil {
			name = st.Name
		}
		bar := strings.Repeat("█", score.Total*30/max(top, 1))
		fmt.Fprintf(&s, "  %2d. %-22s %3d %s\n", i+1, name, score.Total, bar)
	}

	return contentStyle.Render(s.String())
}
