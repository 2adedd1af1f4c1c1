package views

import (
	"fmt"
	"strings"

	"github.com/averix/kanvas/internal/dash"
	"github.com/averix/kanvas/internal/model"
	"github.com/averix/kanvas/internal/store"
	"github.com/averix/kanvas/internal/ui/theme"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// OpenBoardRequest asks the root model to open a board.
// Access is checked there before the board view takes over.
type OpenBoardRequest struct {
	Board model.Board
}

type dashErrorMsg struct{ err error }

type dashLoadedMsg struct {
	boards []model.Board
	stats  dash.Stats
}

// DashMode represents the current input mode
type DashMode int

const (
	DashModeNormal DashMode = iota
	DashModeAdd
	DashModeRename
	DashModeConfirmDelete
)

// DashboardView lists the boards a user can reach plus summary stats
type DashboardView struct {
	agg   *dash.Aggregator
	store *store.Store
	user  model.User

	width  int
	height int

	boards []model.Board
	stats  dash.Stats
	cursor int
	scroll int

	mode      DashMode
	textInput textinput.Model

	renameBoardID string
	deleteBoardID string

	statusMsg string
}

// NewDashboardView creates a new dashboard view
func NewDashboardView(agg *dash.Aggregator, st *store.Store) DashboardView {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 128

	return DashboardView{
		agg:       agg,
		store:     st,
		textInput: ti,
	}
}

// SetUser sets the signed-in user and resets navigation state
func (v DashboardView) SetUser(u model.User) DashboardView {
	v.user = u
	v.cursor = 0
	v.scroll = 0
	v.mode = DashModeNormal
	v.statusMsg = ""
	return v
}

// Init initializes the dashboard view
func (v DashboardView) Init() tea.Cmd {
	return v.loadDashboard()
}

// SetSize sets the view dimensions
func (v DashboardView) SetSize(width, height int) DashboardView {
	v.width = width
	v.height = height
	return v
}

// loadDashboard loads accessible boards and aggregate stats
func (v DashboardView) loadDashboard() tea.Cmd {
	agg := v.agg
	user := v.user
	return func() tea.Msg {
		boards, err := agg.AccessibleBoards(user)
		if err != nil {
			return dashErrorMsg{err: err}
		}
		stats, err := agg.Stats(user)
		if err != nil {
			return dashErrorMsg{err: err}
		}
		return dashLoadedMsg{boards: boards, stats: stats}
	}
}

// Update handles messages
func (v DashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashLoadedMsg:
		v.boards = msg.boards
		v.stats = msg.stats
		if v.cursor >= len(v.boards) {
			v.cursor = len(v.boards) - 1
		}
		if v.cursor < 0 {
			v.cursor = 0
		}
		return v, nil

	case dashErrorMsg:
		v.statusMsg = msg.err.Error()
		return v, nil

	case boardChangedMsg:
		return v, v.loadDashboard()

	case tea.KeyMsg:
		switch v.mode {
		case DashModeAdd:
			return v.handleAddMode(msg)
		case DashModeRename:
			return v.handleRenameMode(msg)
		case DashModeConfirmDelete:
			return v.handleConfirmDeleteMode(msg)
		default:
			return v.handleNormalMode(msg)
		}
	}

	return v, nil
}

// boardChangedMsg signals that a board mutation completed
type boardChangedMsg struct{}

// handleNormalMode handles keys in normal mode
func (v DashboardView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if v.cursor < len(v.boards)-1 {
			v.cursor++
			v.ensureCursorVisible()
		}
		return v, nil

	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
			v.ensureCursorVisible()
		}
		return v, nil

	case "g":
		v.cursor = 0
		v.scroll = 0
		return v, nil

	case "G":
		if len(v.boards) > 0 {
			v.cursor = len(v.boards) - 1
			v.ensureCursorVisible()
		}
		return v, nil

	case "enter", "o":
		if b, ok := v.selectedBoard(); ok {
			board := *b
			return v, func() tea.Msg { return OpenBoardRequest{Board: board} }
		}
		return v, nil

	case "a":
		v.mode = DashModeAdd
		v.textInput.SetValue("")
		v.textInput.Placeholder = "New board..."
		v.textInput.Focus()
		return v, nil

	case "r":
		if b, ok := v.selectedBoard(); ok {
			if !v.ownsBoard(*b) {
				v.statusMsg = "Only the owner can rename this board"
				return v, nil
			}
			v.mode = DashModeRename
			v.renameBoardID = b.ID
			v.textInput.SetValue(b.Name)
			v.textInput.Placeholder = ""
			v.textInput.Focus()
			v.textInput.CursorEnd()
		}
		return v, nil

	case "c":
		if b, ok := v.selectedBoard(); ok {
			if !v.ownsBoard(*b) {
				v.statusMsg = "Only the owner can recolor this board"
				return v, nil
			}
			return v, v.cycleColor(*b)
		}
		return v, nil

	case "d":
		if b, ok := v.selectedBoard(); ok {
			if !v.ownsBoard(*b) {
				v.statusMsg = "Only the owner can delete this board"
				return v, nil
			}
			v.deleteBoardID = b.ID
			v.mode = DashModeConfirmDelete
		}
		return v, nil
	}

	return v, nil
}

// handleAddMode handles keys in add mode
func (v DashboardView) handleAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(v.textInput.Value())
		if name != "" {
			v.mode = DashModeNormal
			v.textInput.Blur()
			return v, v.createBoard(name)
		}
		return v, nil
	case "esc":
		v.mode = DashModeNormal
		v.textInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(msg)
	return v, cmd
}

// handleRenameMode handles keys in rename mode
func (v DashboardView) handleRenameMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(v.textInput.Value())
		if name != "" && v.renameBoardID != "" {
			v.mode = DashModeNormal
			v.textInput.Blur()
			boardID := v.renameBoardID
			v.renameBoardID = ""
			return v, v.renameBoard(boardID, name)
		}
		return v, nil
	case "esc":
		v.mode = DashModeNormal
		v.textInput.Blur()
		v.renameBoardID = ""
		return v, nil
	}

	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(msg)
	return v, cmd
}

// handleConfirmDeleteMode handles keys in delete confirmation mode
func (v DashboardView) handleConfirmDeleteMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = DashModeNormal
		boardID := v.deleteBoardID
		v.deleteBoardID = ""
		return v, v.deleteBoard(boardID)
	case "n", "N", "esc":
		v.mode = DashModeNormal
		v.deleteBoardID = ""
		return v, nil
	}
	return v, nil
}

// selectedBoard returns the board under the cursor
func (v *DashboardView) selectedBoard() (*model.Board, bool) {
	if len(v.boards) == 0 || v.cursor >= len(v.boards) {
		return nil, false
	}
	return &v.boards[v.cursor], true
}

// ownsBoard reports whether the signed-in user owns the board
func (v *DashboardView) ownsBoard(b model.Board) bool {
	return b.UserID == v.user.ID
}

// ensureCursorVisible adjusts scroll to keep cursor in view
func (v *DashboardView) ensureCursorVisible() {
	visible := v.visibleItemCount()
	if visible <= 0 {
		visible = 5
	}
	if v.cursor >= v.scroll+visible {
		v.scroll = v.cursor - visible + 1
	}
	if v.cursor < v.scroll {
		v.scroll = v.cursor
	}
}

// visibleItemCount returns how many board rows fit on screen.
// The stats row takes 4 lines, headers and footer 4 more.
func (v *DashboardView) visibleItemCount() int {
	available := v.height - 8
	if available < 1 {
		return 1
	}
	return available
}

// createBoard creates a board with the default color
func (v DashboardView) createBoard(name string) tea.Cmd {
	st := v.store
	ownerID := v.user.ID
	return func() tea.Msg {
		if _, err := st.CreateBoard(name, model.ColorBlue, ownerID); err != nil {
			return dashErrorMsg{err: err}
		}
		return boardChangedMsg{}
	}
}

// renameBoard renames a board, keeping its color
func (v DashboardView) renameBoard(boardID, name string) tea.Cmd {
	st := v.store
	return func() tea.Msg {
		b, err := st.BoardByID(boardID)
		if err != nil {
			return dashErrorMsg{err: err}
		}
		if b == nil {
			return boardChangedMsg{}
		}
		if err := st.UpdateBoard(boardID, name, b.Color); err != nil {
			return dashErrorMsg{err: err}
		}
		return boardChangedMsg{}
	}
}

// cycleColor advances the board accent to the next palette entry
func (v DashboardView) cycleColor(b model.Board) tea.Cmd {
	st := v.store
	return func() tea.Msg {
		colors := model.Colors()
		next := colors[0]
		for i, c := range colors {
			if c == model.NormalizeColor(b.Color) {
				next = colors[(i+1)%len(colors)]
				break
			}
		}
		if err := st.UpdateBoard(b.ID, b.Name, next); err != nil {
			return dashErrorMsg{err: err}
		}
		return boardChangedMsg{}
	}
}

// deleteBoard deletes a board and everything on it
func (v DashboardView) deleteBoard(boardID string) tea.Cmd {
	st := v.store
	return func() tea.Msg {
		if err := st.DeleteBoard(boardID); err != nil {
			return dashErrorMsg{err: err}
		}
		return boardChangedMsg{}
	}
}

// View renders the dashboard
func (v DashboardView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme
	styles := theme.Current.Styles

	var sections []string

	// Stats cards
	cardStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 2).
		Width(18)
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	labelStyle := styles.Label

	boardsCard := cardStyle.Render(
		valueStyle.Render(fmt.Sprintf("%d", v.stats.BoardCount)) + "\n" +
			labelStyle.Render("Boards"),
	)
	cardsCard := cardStyle.Render(
		valueStyle.Render(fmt.Sprintf("%d", v.stats.TotalCards)) + "\n" +
			labelStyle.Render("Cards"),
	)
	doneCard := cardStyle.Render(
		valueStyle.Render(fmt.Sprintf("%d", v.stats.CompletedCards)) + "\n" +
			labelStyle.Render("Completed"),
	)
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, boardsCard, cardsCard, doneCard))

	// Board list
	sections = append(sections, styles.Title.Render(fmt.Sprintf("Boards (%d)", len(v.boards))))

	visible := v.visibleItemCount()
	start := v.scroll
	end := start + visible
	if start > len(v.boards) {
		start = len(v.boards)
	}
	if end > len(v.boards) {
		end = len(v.boards)
	}

	var rows []string
	if v.scroll > 0 {
		rows = append(rows, labelStyle.Render(fmt.Sprintf("↑ %d more", v.scroll)))
	}
	for i := start; i < end; i++ {
		b := v.boards[i]
		rows = append(rows, v.renderBoardRow(b, i == v.cursor))
	}
	if end < len(v.boards) {
		rows = append(rows, labelStyle.Render(fmt.Sprintf("↓ %d more", len(v.boards)-end)))
	}
	if len(v.boards) == 0 {
		rows = append(rows, styles.Subtitle.Render("No boards yet. Press 'a' to create one."))
	}
	sections = append(sections, strings.Join(rows, "\n"))

	// Footer based on mode
	inputStyle := styles.InputFocused.Width(v.width - 4)
	switch v.mode {
	case DashModeAdd:
		sections = append(sections, inputStyle.Render("Board name: "+v.textInput.View()))
	case DashModeRename:
		sections = append(sections, inputStyle.Render("Rename: "+v.textInput.View()))
	case DashModeConfirmDelete:
		name := ""
		if b, ok := v.selectedBoard(); ok {
			name = b.Name
		}
		confirm := lipgloss.NewStyle().Foreground(t.Error).Bold(true)
		sections = append(sections, confirm.Render(fmt.Sprintf("Delete '%s' and all its cards? (y/n)", name)))
	default:
		if v.statusMsg != "" {
			sections = append(sections, lipgloss.NewStyle().Foreground(t.Info).Render(v.statusMsg))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderBoardRow renders one board entry
func (v DashboardView) renderBoardRow(b model.Board, selected bool) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	rowStyle := styles.CardNormal
	if selected {
		rowStyle = styles.CardSelected
	}

	dot := lipgloss.NewStyle().
		Foreground(t.BoardColor(string(b.Color))).
		Render("●")

	maxNameLen := v.width - 30
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	name := truncate(b.Name, maxNameLen)

	meta := fmt.Sprintf(" %d cards", b.CardCount)
	if b.CardCount == 1 {
		meta = " 1 card"
	}
	metaStr := styles.Label.Render(meta)

	shared := ""
	if b.UserID != v.user.ID {
		shared = styles.Subtitle.Render(" (shared)")
	}

	return rowStyle.Render(fmt.Sprintf("%s %s%s%s", dot, name, metaStr, shared))
}

// IsInputMode returns whether the view is in input mode
func (v DashboardView) IsInputMode() bool {
	return v.mode == DashModeAdd ||
		v.mode == DashModeRename ||
		v.mode == DashModeConfirmDelete
}
