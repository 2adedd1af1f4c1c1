package views

import (
	"fmt"
	"strings"

	"github.com/averix/kanvas/internal/model"
	"github.com/averix/kanvas/internal/store"
	"github.com/averix/kanvas/internal/ui/theme"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CloseBoardRequest asks the root model to return to the dashboard.
type CloseBoardRequest struct{}

type kanbanErrorMsg struct{ err error }

type kanbanLoadedMsg struct {
	columns []model.Column
	cards   [][]model.Card
}

// cardChangedMsg signals that a card mutation completed
type cardChangedMsg struct{}

// KanbanMode represents the current input mode
type KanbanMode int

const (
	KanbanModeNormal KanbanMode = iota
	KanbanModeAdd
	KanbanModeAddColumn
	KanbanModeEdit
	KanbanModeConfirmDelete
)

// KanbanView renders one board as columns of cards
type KanbanView struct {
	store  *store.Store
	width  int
	height int

	board  model.Board
	viewer model.User
	opened bool

	// Columns and their cards, parallel slices ordered by column order
	columns []model.Column
	cards   [][]model.Card

	// Navigation state
	currentColumn int
	cursorRow     int
	columnScroll  []int

	// Input mode
	mode      KanbanMode
	textInput textinput.Model

	editCardID   string
	deleteCardID string

	statusMsg string
}

// NewKanbanView creates a new kanban view
func NewKanbanView(st *store.Store) KanbanView {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256

	return KanbanView{
		store:     st,
		textInput: ti,
	}
}

// SetBoard points the view at a board and resets navigation state
func (v KanbanView) SetBoard(board model.Board, viewer model.User) KanbanView {
	v.board = board
	v.viewer = viewer
	v.opened = true
	v.columns = nil
	v.cards = nil
	v.currentColumn = 0
	v.cursorRow = 0
	v.columnScroll = nil
	v.mode = KanbanModeNormal
	v.statusMsg = ""
	return v
}

// HasBoard reports whether a board has been opened
func (v KanbanView) HasBoard() bool {
	return v.opened
}

// BoardName returns the open board's name
func (v KanbanView) BoardName() string {
	return v.board.Name
}

// Init initializes the kanban view
func (v KanbanView) Init() tea.Cmd {
	if !v.opened {
		return nil
	}
	return v.loadBoard()
}

// SetSize sets the view dimensions
func (v KanbanView) SetSize(width, height int) KanbanView {
	v.width = width
	v.height = height
	return v
}

// loadBoard loads the board's columns and their cards in order
func (v KanbanView) loadBoard() tea.Cmd {
	st := v.store
	boardID := v.board.ID
	return func() tea.Msg {
		columns, err := st.ColumnsByBoard(boardID)
		if err != nil {
			return kanbanErrorMsg{err: err}
		}
		cards := make([][]model.Card, len(columns))
		for i, col := range columns {
			cs, err := st.CardsByColumn(col.ID)
			if err != nil {
				return kanbanErrorMsg{err: err}
			}
			cards[i] = cs
		}
		return kanbanLoadedMsg{columns: columns, cards: cards}
	}
}

// Update handles messages
func (v KanbanView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case kanbanLoadedMsg:
		v.columns = msg.columns
		v.cards = msg.cards
		if len(v.columnScroll) != len(v.columns) {
			v.columnScroll = make([]int, len(v.columns))
		}
		if v.currentColumn >= len(v.columns) {
			v.currentColumn = 0
		}
		v.clampCursor()
		return v, nil

	case kanbanErrorMsg:
		v.statusMsg = msg.err.Error()
		return v, nil

	case cardChangedMsg:
		return v, v.loadBoard()

	case tea.KeyMsg:
		switch v.mode {
		case KanbanModeAdd:
			return v.handleAddMode(msg)
		case KanbanModeAddColumn:
			return v.handleAddColumnMode(msg)
		case KanbanModeEdit:
			return v.handleEditMode(msg)
		case KanbanModeConfirmDelete:
			return v.handleConfirmDeleteMode(msg)
		default:
			return v.handleNormalMode(msg)
		}
	}

	return v, nil
}

// handleNormalMode handles keys in normal mode
func (v KanbanView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	// Column navigation
	case "h", "left":
		if v.currentColumn > 0 {
			v.currentColumn--
			v.clampCursor()
		}
		return v, nil

	case "l", "right":
		if v.currentColumn < len(v.columns)-1 {
			v.currentColumn++
			v.clampCursor()
		}
		return v, nil

	// Row navigation
	case "j", "down":
		if v.cursorRow < len(v.currentCards())-1 {
			v.cursorRow++
			v.ensureCursorVisible()
		}
		return v, nil

	case "k", "up":
		if v.cursorRow > 0 {
			v.cursorRow--
			v.ensureCursorVisible()
		}
		return v, nil

	case "g":
		v.cursorRow = 0
		if v.currentColumn < len(v.columnScroll) {
			v.columnScroll[v.currentColumn] = 0
		}
		return v, nil

	case "G":
		if cards := v.currentCards(); len(cards) > 0 {
			v.cursorRow = len(cards) - 1
			v.ensureCursorVisible()
		}
		return v, nil

	// Move card between columns
	case "H":
		return v, v.moveCard(-1)

	case "L":
		return v, v.moveCard(1)

	// Add card
	case "a":
		if len(v.columns) == 0 {
			return v, nil
		}
		v.mode = KanbanModeAdd
		v.textInput.SetValue("")
		v.textInput.Placeholder = "New card..."
		v.textInput.Focus()
		return v, nil

	// Add column at the end of the board
	case "A":
		v.mode = KanbanModeAddColumn
		v.textInput.SetValue("")
		v.textInput.Placeholder = "New column..."
		v.textInput.Focus()
		return v, nil

	// Edit card title
	case "enter":
		if card, ok := v.selectedCard(); ok {
			v.mode = KanbanModeEdit
			v.editCardID = card.ID
			v.textInput.SetValue(card.Title)
			v.textInput.Placeholder = ""
			v.textInput.Focus()
			v.textInput.CursorEnd()
		}
		return v, nil

	// Delete card
	case "d":
		if card, ok := v.selectedCard(); ok {
			v.deleteCardID = card.ID
			v.mode = KanbanModeConfirmDelete
		}
		return v, nil

	// Cycle priority
	case "p":
		return v, v.cyclePriority()

	// Back to dashboard
	case "esc":
		return v, func() tea.Msg { return CloseBoardRequest{} }
	}

	return v, nil
}

// handleAddMode handles keys in add mode
func (v KanbanView) handleAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := strings.TrimSpace(v.textInput.Value())
		if title != "" {
			v.mode = KanbanModeNormal
			v.textInput.Blur()
			return v, v.createCard(title)
		}
		return v, nil
	case "esc":
		v.mode = KanbanModeNormal
		v.textInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(msg)
	return v, cmd
}

// handleAddColumnMode handles keys while naming a new column
func (v KanbanView) handleAddColumnMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(v.textInput.Value())
		if name != "" {
			v.mode = KanbanModeNormal
			v.textInput.Blur()
			return v, v.createColumn(name)
		}
		return v, nil
	case "esc":
		v.mode = KanbanModeNormal
		v.textInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(msg)
	return v, cmd
}

// handleEditMode handles keys in edit mode
func (v KanbanView) handleEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := strings.TrimSpace(v.textInput.Value())
		if title != "" && v.editCardID != "" {
			v.mode = KanbanModeNormal
			v.textInput.Blur()
			cardID := v.editCardID
			v.editCardID = ""
			return v, v.updateCardTitle(cardID, title)
		}
		return v, nil
	case "esc":
		v.mode = KanbanModeNormal
		v.textInput.Blur()
		v.editCardID = ""
		return v, nil
	}

	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(msg)
	return v, cmd
}

// handleConfirmDeleteMode handles keys in delete confirmation mode
func (v KanbanView) handleConfirmDeleteMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = KanbanModeNormal
		cardID := v.deleteCardID
		v.deleteCardID = ""
		return v, v.deleteCard(cardID)
	case "n", "N", "esc":
		v.mode = KanbanModeNormal
		v.deleteCardID = ""
		return v, nil
	}
	return v, nil
}

// currentCards returns the cards of the active column
func (v *KanbanView) currentCards() []model.Card {
	if v.currentColumn >= len(v.cards) {
		return nil
	}
	return v.cards[v.currentColumn]
}

// selectedCard returns the card under the cursor
func (v *KanbanView) selectedCard() (*model.Card, bool) {
	cards := v.currentCards()
	if len(cards) == 0 || v.cursorRow >= len(cards) {
		return nil, false
	}
	return &cards[v.cursorRow], true
}

// clampCursor ensures cursor is valid for current column
func (v *KanbanView) clampCursor() {
	cards := v.currentCards()
	if v.cursorRow >= len(cards) {
		if len(cards) > 0 {
			v.cursorRow = len(cards) - 1
		} else {
			v.cursorRow = 0
		}
	}
	v.ensureCursorVisible()
}

// ensureCursorVisible adjusts scroll to keep cursor in view
func (v *KanbanView) ensureCursorVisible() {
	if v.currentColumn >= len(v.columnScroll) {
		return
	}
	visibleItems := v.visibleItemCount()
	if visibleItems <= 0 {
		visibleItems = 5
	}

	col := v.currentColumn
	if v.cursorRow >= v.columnScroll[col]+visibleItems {
		v.columnScroll[col] = v.cursorRow - visibleItems + 1
	}
	if v.cursorRow < v.columnScroll[col] {
		v.columnScroll[col] = v.cursorRow
	}
}

// visibleItemCount returns how many cards fit in the column height.
// Header row, border, and scroll indicators eat seven lines.
func (v *KanbanView) visibleItemCount() int {
	availableHeight := v.height - 7
	if availableHeight < 1 {
		return 1
	}
	return availableHeight
}

// moveCard moves the current card to an adjacent column
func (v KanbanView) moveCard(direction int) tea.Cmd {
	card, ok := v.selectedCard()
	if !ok {
		return nil
	}

	target := v.currentColumn + direction
	if target < 0 || target >= len(v.columns) {
		return nil
	}

	st := v.store
	cardID := card.ID
	toColumnID := v.columns[target].ID

	return func() tea.Msg {
		if err := st.MoveCard(cardID, toColumnID); err != nil {
			return kanbanErrorMsg{err: err}
		}
		return cardChangedMsg{}
	}
}

// createCard creates a new card at the end of the current column
func (v KanbanView) createCard(title string) tea.Cmd {
	if v.currentColumn >= len(v.columns) {
		return nil
	}

	st := v.store
	boardID := v.board.ID
	columnID := v.columns[v.currentColumn].ID
	author := v.viewer.Name

	return func() tea.Msg {
		if _, err := st.CreateCard(boardID, columnID, title, "", model.PriorityLow, nil, author); err != nil {
			return kanbanErrorMsg{err: err}
		}
		return cardChangedMsg{}
	}
}

// createColumn appends a column to the board
func (v KanbanView) createColumn(name string) tea.Cmd {
	st := v.store
	boardID := v.board.ID
	return func() tea.Msg {
		if _, err := st.CreateColumn(boardID, name); err != nil {
			return kanbanErrorMsg{err: err}
		}
		return cardChangedMsg{}
	}
}

// updateCardTitle updates a card's title, keeping its other fields
func (v KanbanView) updateCardTitle(cardID, title string) tea.Cmd {
	st := v.store
	return func() tea.Msg {
		card, err := st.CardByID(cardID)
		if err != nil {
			return kanbanErrorMsg{err: err}
		}
		if card == nil {
			return cardChangedMsg{}
		}
		if err := st.UpdateCard(cardID, title, card.Description, card.Priority, card.DueDate); err != nil {
			return kanbanErrorMsg{err: err}
		}
		return cardChangedMsg{}
	}
}

// deleteCard deletes a card
func (v KanbanView) deleteCard(cardID string) tea.Cmd {
	st := v.store
	return func() tea.Msg {
		if err := st.DeleteCard(cardID); err != nil {
			return kanbanErrorMsg{err: err}
		}
		return cardChangedMsg{}
	}
}

// cyclePriority cycles the priority of the current card
func (v KanbanView) cyclePriority() tea.Cmd {
	card, ok := v.selectedCard()
	if !ok {
		return nil
	}

	// Cycle: low -> medium -> high -> low
	var next model.Priority
	switch card.Priority {
	case model.PriorityLow:
		next = model.PriorityMedium
	case model.PriorityMedium:
		next = model.PriorityHigh
	default:
		next = model.PriorityLow
	}

	st := v.store
	cardID := card.ID
	title := card.Title
	description := card.Description
	dueDate := card.DueDate

	return func() tea.Msg {
		if err := st.UpdateCard(cardID, title, description, next, dueDate); err != nil {
			return kanbanErrorMsg{err: err}
		}
		return cardChangedMsg{}
	}
}

// View renders the kanban board
func (v KanbanView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme

	if len(v.columns) == 0 {
		return lipgloss.NewStyle().
			Foreground(t.Subtle).
			Italic(true).
			Render("No columns on this board yet.")
	}

	// Responsive layout: show 2 columns when narrow
	numVisibleCols := len(v.columns)
	if numVisibleCols > 4 {
		numVisibleCols = 4
	}
	if v.width < 120 && numVisibleCols > 2 {
		numVisibleCols = 2
	}

	// Window of visible columns containing the current one
	startCol := 0
	if v.currentColumn >= numVisibleCols {
		startCol = v.currentColumn - numVisibleCols + 1
	}
	endCol := startCol + numVisibleCols
	if endCol > len(v.columns) {
		endCol = len(v.columns)
		startCol = endCol - numVisibleCols
		if startCol < 0 {
			startCol = 0
		}
	}

	colWidth := (v.width - 4) / numVisibleCols
	if colWidth < 25 {
		colWidth = 25
	}

	headerStyle := func(col model.Column, active bool) lipgloss.Style {
		fg := t.Info
		if col.IsDone() {
			fg = t.Success
		}
		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(fg).
			Width(colWidth).
			Align(lipgloss.Center)
		if active {
			s = s.Background(t.Highlight)
		}
		return s
	}

	columnStyle := lipgloss.NewStyle().
		Width(colWidth).
		Height(v.height - 3).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border)

	// Render headers
	var headers []string
	for i := startCol; i < endCol; i++ {
		col := v.columns[i]
		header := fmt.Sprintf("%s (%d)", col.Name, len(v.cards[i]))
		headers = append(headers, headerStyle(col, i == v.currentColumn).Render(header))
	}
	headerRow := lipgloss.JoinHorizontal(lipgloss.Top, headers...)

	// Render columns
	visibleItems := v.visibleItemCount()
	var cols []string
	for i := startCol; i < endCol; i++ {
		cards := v.cards[i]
		isActiveCol := i == v.currentColumn
		scrollOffset := v.columnScroll[i]

		startIdx := scrollOffset
		endIdx := scrollOffset + visibleItems
		if startIdx > len(cards) {
			startIdx = len(cards)
		}
		if endIdx > len(cards) {
			endIdx = len(cards)
		}

		var items []string

		if scrollOffset > 0 {
			items = append(items, lipgloss.NewStyle().
				Foreground(t.Subtle).
				Width(colWidth-4).
				Align(lipgloss.Center).
				Render(fmt.Sprintf("↑ %d more", scrollOffset)))
		}

		for j := startIdx; j < endIdx; j++ {
			card := cards[j]
			isSelected := isActiveCol && j == v.cursorRow
			items = append(items, v.renderCard(card, v.columns[i], isSelected, colWidth))
		}

		if endIdx < len(cards) {
			items = append(items, lipgloss.NewStyle().
				Foreground(t.Subtle).
				Width(colWidth-4).
				Align(lipgloss.Center).
				Render(fmt.Sprintf("↓ %d more", len(cards)-endIdx)))
		}

		content := strings.Join(items, "\n")
		if len(cards) == 0 {
			content = lipgloss.NewStyle().
				Foreground(t.Subtle).
				Italic(true).
				Render("(empty)")
		}

		cs := columnStyle
		if isActiveCol {
			cs = cs.BorderForeground(t.Primary)
		}
		cols = append(cols, cs.Render(content))
	}
	columnsRow := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	// Footer based on mode
	var footer string
	inputStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1).
		Width(v.width - 4)

	switch v.mode {
	case KanbanModeAdd:
		footer = inputStyle.Render("Add card: " + v.textInput.View())
	case KanbanModeAddColumn:
		footer = inputStyle.Render("Add column: " + v.textInput.View())
	case KanbanModeEdit:
		footer = inputStyle.Render("Edit: " + v.textInput.View())
	case KanbanModeConfirmDelete:
		title := ""
		if card, ok := v.selectedCard(); ok {
			title = card.Title
		}
		footer = lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true).
			Render(fmt.Sprintf("Delete '%s'? (y/n)", title))
	default:
		hints := "h/l: column • j/k: nav • H/L: move • a: add card • A: add column • enter: edit • d: del • p: priority • esc: dashboard"
		if v.statusMsg != "" {
			hints = v.statusMsg
		}
		footer = lipgloss.NewStyle().Foreground(t.Subtle).Render(hints)
	}

	return lipgloss.JoinVertical(lipgloss.Left, headerRow, columnsRow, footer)
}

// renderCard renders a single card line
func (v KanbanView) renderCard(card model.Card, col model.Column, selected bool, colWidth int) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	cardStyle := lipgloss.NewStyle().
		Width(colWidth-4).
		Padding(0, 1).
		Foreground(t.Foreground)
	if selected {
		cardStyle = cardStyle.Background(t.Highlight)
	}
	if col.IsDone() {
		cardStyle = cardStyle.Foreground(t.Subtle).Strikethrough(true)
	}

	// Priority indicator
	priorityChar := ""
	priorityStyle := lipgloss.NewStyle()
	switch model.NormalizePriority(card.Priority) {
	case model.PriorityHigh:
		priorityChar = priorityStyle.Foreground(t.PriorityHigh).Render("▲")
	case model.PriorityMedium:
		priorityChar = priorityStyle.Foreground(t.PriorityMedium).Render("●")
	case model.PriorityLow:
		priorityChar = priorityStyle.Foreground(t.PriorityLow).Render("▽")
	}

	// Due date indicator
	var dueStr string
	dueLen := 0
	if card.DueDate != nil && !col.IsDone() {
		label := card.DueDate.Format("Jan 2")
		dueStyle := styles.DueDate
		if card.IsOverdue() {
			dueStyle = lipgloss.NewStyle().Foreground(t.Error)
			label = "overdue"
		} else if card.DueIn() > 3 {
			dueStyle = styles.Label
		}
		dueStr = " " + dueStyle.Render(label)
		dueLen = len(label) + 1
	}

	// First assignee, shown as @name
	var assigneeStr string
	assigneeLen := 0
	if len(card.Assignees) > 0 {
		label := "@" + card.Assignees[0]
		if len(card.Assignees) > 1 {
			label = fmt.Sprintf("@%s +%d", card.Assignees[0], len(card.Assignees)-1)
		}
		assigneeStr = " " + lipgloss.NewStyle().Foreground(t.Secondary).Render(label)
		assigneeLen = len(label) + 1
	}

	maxTitleLen := colWidth - 8 - dueLen - assigneeLen
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	title := truncate(card.Title, maxTitleLen)

	return cardStyle.Render(fmt.Sprintf("%s %s%s%s", priorityChar, title, dueStr, assigneeStr))
}

// IsInputMode returns whether the view is in input mode
func (v KanbanView) IsInputMode() bool {
	return v.mode == KanbanModeAdd ||
		v.mode == KanbanModeAddColumn ||
		v.mode == KanbanModeEdit ||
		v.mode == KanbanModeConfirmDelete
}
