package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/averix/kanvas/internal/app"
	"github.com/averix/kanvas/internal/errs"
	"github.com/averix/kanvas/internal/model"
	"github.com/averix/kanvas/internal/ui/theme"
	"github.com/averix/kanvas/internal/ui/views"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// boardOpenedMsg is sent after the access check and column seeding
type boardOpenedMsg struct {
	board model.Board
}

// RootModel is the main application model that manages views
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	width  int
	height int

	// Signed-in user, nil while on the login screen
	user *model.User

	currentView   View
	loginView     views.LoginView
	dashboardView views.DashboardView
	kanbanView    views.KanbanView
	shareView     views.ShareView
	helpVisible   bool

	statusMsg string
	errorMsg  string
}

// NewRootModel creates a new root model. A persisted session is
// resumed so the dashboard appears directly.
func NewRootModel(application *app.App) RootModel {
	h := help.New()
	h.ShowAll = false

	m := RootModel{
		app:           application,
		keys:          DefaultKeyMap(),
		help:          h,
		currentView:   ViewLogin,
		loginView:     views.NewLoginView(application.Sessions),
		dashboardView: views.NewDashboardView(application.Dash, application.Store),
		kanbanView:    views.NewKanbanView(application.Store),
		shareView:     views.NewShareView(application.Access),
	}

	if u, err := application.Sessions.Current(); err == nil && u != nil {
		m = m.startSession(*u)
	}

	return m
}

// startSession threads the user through the views and lands on the dashboard
func (m RootModel) startSession(u model.User) RootModel {
	m.user = &u
	m.dashboardView = m.dashboardView.SetUser(u)
	m.shareView = m.shareView.SetUser(u)
	m.currentView = ViewDashboard
	return m
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	if m.currentView == ViewDashboard {
		return m.dashboardView.Init()
	}
	return m.loginView.Init()
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Reserve space for header and footer
		contentHeight := m.height - 4
		m.loginView = m.loginView.SetSize(m.width, contentHeight)
		m.dashboardView = m.dashboardView.SetSize(m.width, contentHeight)
		m.kanbanView = m.kanbanView.SetSize(m.width, contentHeight)
		m.shareView = m.shareView.SetSize(m.width, contentHeight)

	case tea.KeyMsg:
		// Clear status/error on any keypress
		m.statusMsg = ""
		m.errorMsg = ""

		isInputMode := m.isInputMode()

		// Global keybindings
		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, but 'q' only quits when not in input mode
			if msg.String() == "ctrl+c" || !isInputMode {
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.ThemeCycle):
			m.cycleTheme()
			return m, nil
		}

		if m.user != nil {
			switch {
			case key.Matches(msg, m.keys.Logout):
				return m.logout()
			}
		}

		// Skip other global keys when in input mode
		if isInputMode {
			break
		}

		if m.user != nil {
			switch {
			case key.Matches(msg, m.keys.Help):
				m.helpVisible = !m.helpVisible
				m.help.ShowAll = m.helpVisible
				return m, nil

			case key.Matches(msg, m.keys.DashboardView):
				m.currentView = ViewDashboard
				return m, m.dashboardView.Init()

			case key.Matches(msg, m.keys.BoardView):
				if m.kanbanView.HasBoard() {
					m.currentView = ViewBoard
					return m, m.kanbanView.Init()
				}
				m.statusMsg = "Open a board from the dashboard first"
				return m, nil

			case key.Matches(msg, m.keys.ShareView):
				return m.openSharing()
			}
		}

	case views.SessionStartedMsg:
		m = m.startSession(msg.User)
		return m, m.dashboardView.Init()

	case views.OpenBoardRequest:
		return m, m.openBoard(msg.Board)

	case boardOpenedMsg:
		if m.user != nil {
			m.kanbanView = m.kanbanView.SetBoard(msg.board, *m.user)
			m.currentView = ViewBoard
			return m, m.kanbanView.Init()
		}
		return m, nil

	case views.CloseBoardRequest:
		m.currentView = ViewDashboard
		return m, m.dashboardView.Init()

	case ErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil

	case StatusMsg:
		m.statusMsg = msg.Message
		return m, nil

	case ThemeChangedMsg:
		m.statusMsg = fmt.Sprintf("Theme: %s", msg.ThemeName)
		return m, nil
	}

	// Delegate to current view
	switch m.currentView {
	case ViewLogin:
		newView, cmd := m.loginView.Update(msg)
		m.loginView = newView.(views.LoginView)
		cmds = append(cmds, cmd)
	case ViewDashboard:
		newView, cmd := m.dashboardView.Update(msg)
		m.dashboardView = newView.(views.DashboardView)
		cmds = append(cmds, cmd)
	case ViewBoard:
		newView, cmd := m.kanbanView.Update(msg)
		m.kanbanView = newView.(views.KanbanView)
		cmds = append(cmds, cmd)
	case ViewShare:
		newView, cmd := m.shareView.Update(msg)
		m.shareView = newView.(views.ShareView)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// isInputMode reports whether the active view is capturing text
func (m RootModel) isInputMode() bool {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.IsInputMode()
	case ViewDashboard:
		return m.dashboardView.IsInputMode()
	case ViewBoard:
		return m.kanbanView.IsInputMode()
	case ViewShare:
		return m.shareView.IsInputMode()
	}
	return false
}

// openBoard verifies access before handing the board to the kanban
// view. A board with no columns gets the default set on first open.
func (m RootModel) openBoard(board model.Board) tea.Cmd {
	if m.user == nil {
		return nil
	}
	viewer := *m.user
	svc := m.app.Access
	st := m.app.Store
	log := m.app.Log

	return func() tea.Msg {
		if err := svc.Authorize(viewer, board.UserID); err != nil {
			if errors.Is(err, errs.ErrUnauthorized) {
				log.Warn("board access denied",
					zap.String("board", board.ID),
					zap.String("viewer", viewer.ID))
				return StatusMsg{Message: "You don't have access to this board"}
			}
			return ErrorMsg{Err: err}
		}
		if _, err := st.EnsureDefaultColumns(board.ID); err != nil {
			return ErrorMsg{Err: err}
		}
		return boardOpenedMsg{board: board}
	}
}

// openSharing switches to the share view, which only owners manage.
// Users who merely received access are pointed back to the owner.
func (m RootModel) openSharing() (tea.Model, tea.Cmd) {
	if m.user == nil {
		return m, nil
	}
	isMember, err := m.app.Access.IsMember(*m.user)
	if err != nil {
		m.errorMsg = err.Error()
		return m, nil
	}
	if isMember {
		m.statusMsg = "Sharing is managed by the board owner"
		return m, nil
	}
	m.currentView = ViewShare
	return m, m.shareView.Init()
}

// logout ends the session and returns to the login screen
func (m RootModel) logout() (tea.Model, tea.Cmd) {
	if err := m.app.Sessions.Logout(); err != nil {
		m.errorMsg = err.Error()
		return m, nil
	}
	m.user = nil
	m.helpVisible = false
	m.kanbanView = views.NewKanbanView(m.app.Store).SetSize(m.width, m.height-4)
	m.loginView = m.loginView.Reset()
	m.currentView = ViewLogin
	return m, m.loginView.Init()
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())

	contentHeight := m.height - 4
	if m.errorMsg != "" || m.statusMsg != "" {
		contentHeight--
	}
	var content string

	if m.helpVisible {
		content = m.renderHelp(contentHeight)
	} else {
		switch m.currentView {
		case ViewLogin:
			content = m.loginView.View()
		case ViewDashboard:
			content = m.dashboardView.View()
		case ViewBoard:
			content = m.kanbanView.View()
		case ViewShare:
			content = m.shareView.View()
		}
	}

	// Ensure content fills available space
	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)

	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("kanvas")

	viewStyle := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)

	viewName := m.currentView.String()
	if m.currentView == ViewBoard && m.kanbanView.HasBoard() {
		viewName = m.kanbanView.BoardName()
	}
	viewIndicator := viewStyle.Render(fmt.Sprintf("[%s]", viewName))

	var rightSide string
	if m.user != nil {
		rightSide = viewStyle.Render(m.user.Email) + viewStyle.Render(fmt.Sprintf("theme: %s", t.Name))
	} else {
		rightSide = viewStyle.Render(fmt.Sprintf("theme: %s", t.Name))
	}

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, title, viewIndicator)

	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if gap < 0 {
		gap = 0
	}

	return leftSide + strings.Repeat(" ", gap) + rightSide
}

// renderFooter renders the footer/status bar
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	key := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	var statusLine string
	if m.errorMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Error).Render(m.errorMsg)
	} else if m.statusMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg)
	}

	var line1, line2 string

	switch m.currentView {
	case ViewLogin:
		line1 = key("tab", "next field") + sep +
			key("enter", "submit") + sep +
			key("C-n", "sign in/up") + sep +
			key("ctrl+c", "quit")

	case ViewDashboard:
		if m.dashboardView.IsInputMode() {
			line1 = key("enter", "confirm") + sep + key("esc", "cancel")
		} else {
			line1 = key("enter", "open board") + sep +
				key("a", "add") + sep +
				key("r", "rename") + sep +
				key("c", "color") + sep +
				key("d", "del")
			line2 = key("1-3", "views") + sep +
				key("C-l", "log out") + sep +
				key("ctrl+t", "theme") + sep +
				key("?", "help")
		}

	case ViewBoard:
		if m.kanbanView.IsInputMode() {
			line1 = key("enter", "confirm") + sep + key("esc", "cancel")
		} else {
			line1 = key("h/l", "columns") + sep +
				key("j/k", "navigate") + sep +
				key("H/L", "move card") + sep +
				key("a", "add") + sep +
				key("p", "priority")
			line2 = key("esc", "dashboard") + sep +
				key("ctrl+t", "theme") + sep +
				key("?", "help")
		}

	case ViewShare:
		if m.shareView.IsInputMode() {
			line1 = key("enter", "confirm") + sep + key("esc", "cancel")
		} else {
			line1 = key("a", "share") + sep +
				key("d", "revoke") + sep +
				key("j/k", "navigate")
			line2 = key("1-3", "views") + sep +
				key("ctrl+t", "theme") + sep +
				key("?", "help")
		}
	}

	var lines []string
	if statusLine != "" {
		lines = append(lines, statusLine)
	}
	if line1 != "" {
		lines = append(lines, line1)
	}
	if line2 != "" {
		lines = append(lines, line2)
	}

	return strings.Join(lines, "\n")
}

// renderHelp renders the help overlay
func (m RootModel) renderHelp(height int) string {
	t := theme.Current.Theme

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Secondary).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Foreground).
		Bold(true).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(t.Subtle)

	var b strings.Builder

	b.WriteString(titleStyle.Render("Kanvas Help"))
	b.WriteString("\n\n")

	section := func(title string, entries [][]string) {
		b.WriteString(sectionStyle.Render(title))
		b.WriteString("\n")
		for _, kv := range entries {
			b.WriteString(keyStyle.Render(kv[0]))
			b.WriteString(descStyle.Render(kv[1]))
			b.WriteString("\n")
		}
	}

	section("Navigation", [][]string{
		{"↑/k ↓/j", "Navigate up/down"},
		{"←/h →/l", "Switch columns"},
		{"g / G", "Go to top/bottom"},
	})

	section("Dashboard", [][]string{
		{"enter", "Open board"},
		{"a", "Create board"},
		{"r", "Rename board"},
		{"c", "Cycle board color"},
		{"d", "Delete board (with confirm)"},
	})

	section("Board", [][]string{
		{"a", "Add card to column"},
		{"A", "Add column"},
		{"enter", "Edit card title"},
		{"H / L", "Move card left/right"},
		{"p", "Cycle priority"},
		{"d", "Delete card (with confirm)"},
		{"esc", "Back to dashboard"},
	})

	section("Sharing", [][]string{
		{"a", "Share your boards with someone"},
		{"d", "Revoke access"},
	})

	section("Views", [][]string{
		{"1", "Dashboard"},
		{"2", "Last opened board"},
		{"3", "Sharing"},
		{"?", "Toggle this help"},
	})

	section("System", [][]string{
		{"ctrl+t", "Cycle theme"},
		{"C-l", "Log out"},
		{"q / ctrl+c", "Quit"},
	})

	b.WriteString("\n")
	b.WriteString(descStyle.Render("Press ? or esc to close"))

	return b.String()
}

// cycleTheme cycles through available themes
func (m *RootModel) cycleTheme() {
	themes := theme.Available()
	current := theme.Current.Theme.Name

	for i, t := range themes {
		if t.Name == current {
			next := themes[(i+1)%len(themes)]
			theme.SetTheme(next)
			m.statusMsg = fmt.Sprintf("Theme: %s", next.Name)
			return
		}
	}
}
