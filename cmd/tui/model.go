package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/socialgraph/pkg/algorithms"
	"github.com/dd0wney/socialgraph/pkg/service"
	"github.com/dd0wney/socialgraph/pkg/storage"
)

type view int

const (
	dashboardView view = iota
	studentsView
	exploreView
	graphView
	influenceView

	viewCount = 5
)

var viewNames = []string{"Dashboard", "Students", "Explore", "Graph", "Influence"}

type model struct {
	svc          *service.Service
	currentView  view
	input        textinput.Model
	studentTable table.Model
	help         help.Model
	keys         keyMap
	width        int
	height       int
	message      string
	messageErr   bool
	output       string
	startTime    time.Time

	stats       storage.Statistics
	communities *algorithms.CommunityDetectionResult
	influence   []algorithms.InfluenceScore
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func initialModel(svc *service.Service) model {
	ti := textinput.New()
	ti.Placeholder = "path A B"
	ti.CharLimit = 200
	ti.Width = 60

	columns := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Name", Width: 22},
		{Title: "Category", Width: 14},
		{Title: "Friends", Width: 8},
		{Title: "Community", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorInfo).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(colorOnBrand).
		Background(colorAccent).
		Bold(false)
	t.SetStyles(s)

	m := model{
		svc:          svc,
		currentView:  dashboardView,
		input:        ti,
		studentTable: t,
		help:         help.New(),
		keys:         keys,
		startTime:    time.Now(),
	}
	m.refresh()
	return m
}

// refresh recomputes statistics, communities, influence and the student
// table.
func (m *model) refresh() {
	m.stats = m.svc.Statistics()
	m.communities = m.svc.Communities("")
	m.influence = m.svc.Influence(10)

	rows := make([]table.Row, 0, m.stats.StudentCount)
	for _, s := range m.svc.Students() {
		friends, _ := m.svc.Friends(s.ID)
		community := "-"
		if c, ok := m.communities.NodeCommunity[s.ID]; ok {
			community = strconv.Itoa(c)
		}
		rows = append(rows, table.Row{s.ID, s.Name, s.Category, strconv.Itoa(len(friends)), community})
	}
	m.studentTable.SetRows(rows)
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tickCmd(),
	)
}

func (m *model) switchView(v view) {
	m.currentView = v
	if v == exploreView {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		m.stats = m.svc.Statistics()
		return m, tickCmd()

	case tea.KeyMsg:
		typing := m.currentView == exploreView && msg.Type == tea.KeyRunes
		switch {
		case msg.Type == tea.KeyCtrlC:
			return m, tea.Quit

		case !typing && key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.switchView((m.currentView + 1) % viewCount)
			return m, nil

		case key.Matches(msg, m.keys.ShiftTab):
			m.switchView((m.currentView + viewCount - 1) % viewCount)
			return m, nil

		case !typing && key.Matches(msg, m.keys.Refresh):
			m.refresh()
			m.message, m.messageErr = "Analytics refreshed", false
			return m, nil

		case !typing && len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] < '1'+viewCount:
			m.switchView(view(msg.Runes[0] - '1'))
			return m, nil

		case key.Matches(msg, m.keys.Enter):
			if m.currentView == exploreView {
				m.explore()
				return m, nil
			}
		}
	}

	// Update focused component
	switch m.currentView {
	case exploreView:
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	case studentsView:
		m.studentTable, cmd = m.studentTable.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// explore runs the command typed in the Explore view.
func (m *model) explore() {
	parts := strings.Fields(m.input.Value())
	if len(parts) == 0 {
		m.message, m.messageErr = "Command cannot be empty", true
		return
	}

	start := time.Now()
	out, err := m.runExplore(strings.ToLower(parts[0]), parts[1:])
	if err != nil {
		m.message, m.messageErr = err.Error(), true
		m.output = ""
		return
	}
	m.output = out
	m.message = fmt.Sprintf("%s done in %s", parts[0], time.Since(start).Round(time.Microsecond))
	m.messageErr = false
}

func (m *model) runExplore(command string, args []string) (string, error) {
	need := func(n int, usage string) error {
		if len(args) < n {
			return fmt.Errorf("usage: %s", usage)
		}
		return nil
	}

	var b strings.Builder
	switch command {
	case "friends":
		if err := need(1, "friends <id>"); err != nil {
			return "", err
		}
		friends, err := m.svc.Friends(args[0])
		if err != nil {
			return "", err
		}
		if len(friends) == 0 {
			return args[0] + " has no friends yet", nil
		}
		for _, f := range friends {
			fmt.Fprintf(&b, "%-8s %-22s %s\n", f.ID, f.Name, f.Weight)
		}

	case "path":
		if err := need(2, "path <from> <to>"); err != nil {
			return "", err
		}
		path, err := m.svc.ShortestPath(args[0], args[1])
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%s (%d hops)", strings.Join(path, " → "), len(path)-1)

	case "recommend":
		if err := need(1, "recommend <id>"); err != nil {
			return "", err
		}
		if _, err := m.svc.Student(args[0]); err != nil {
			return "", err
		}
		recs := m.svc.Recommend(args[0], 5)
		if len(recs) == 0 {
			return "No suggestions for " + args[0], nil
		}
		for i, r := range recs {
			fmt.Fprintf(&b, "%d. %-8s score %.2f via %s\n", i+1, r.StudentID, r.Score, strings.Join(r.MutualFriends, ", "))
		}

	case "show":
		if err := need(1, "show <id>"); err != nil {
			return "", err
		}
		sr, err := m.svc.StudentReport(args[0])
		if err != nil {
			return "", err
		}
		if err := sr.WriteText(&b); err != nil {
			return "", err
		}

	default:
		return "", fmt.Errorf("unknown command %q (friends, path, recommend, show)", command)
	}
	return b.String(), nil
}
