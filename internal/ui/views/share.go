package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/averix/kanvas/internal/access"
	"github.com/averix/kanvas/internal/errs"
	"github.com/averix/kanvas/internal/model"
	"github.com/averix/kanvas/internal/ui/theme"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type shareErrorMsg struct{ err error }

type shareLoadedMsg struct {
	members []model.Member
}

// membersChangedMsg signals that a grant mutation completed
type membersChangedMsg struct{}

// ShareMode represents the current input mode
type ShareMode int

const (
	ShareModeNormal ShareMode = iota
	ShareModeAddName
	ShareModeAddEmail
	ShareModeConfirmRevoke
)

// ShareView manages the people a user has shared their boards with
type ShareView struct {
	access *access.Service
	owner  model.User

	width  int
	height int

	members []model.Member
	cursor  int

	mode      ShareMode
	textInput textinput.Model

	// Name captured in the first add step
	pendingName string

	revokeEmail string
	statusMsg   string
}

// NewShareView creates a new share view
func NewShareView(svc *access.Service) ShareView {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 128

	return ShareView{
		access:    svc,
		textInput: ti,
	}
}

// SetUser sets the signed-in owner whose grants are managed
func (v ShareView) SetUser(u model.User) ShareView {
	v.owner = u
	v.cursor = 0
	v.mode = ShareModeNormal
	v.statusMsg = ""
	return v
}

// Init initializes the share view
func (v ShareView) Init() tea.Cmd {
	return v.loadMembers()
}

// SetSize sets the view dimensions
func (v ShareView) SetSize(width, height int) ShareView {
	v.width = width
	v.height = height
	return v
}

// loadMembers loads the owner's grant list
func (v ShareView) loadMembers() tea.Cmd {
	svc := v.access
	ownerID := v.owner.ID
	return func() tea.Msg {
		members, err := svc.Members(ownerID)
		if err != nil {
			return shareErrorMsg{err: err}
		}
		return shareLoadedMsg{members: members}
	}
}

// Update handles messages
func (v ShareView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case shareLoadedMsg:
		v.members = msg.members
		if v.cursor >= len(v.members) {
			v.cursor = len(v.members) - 1
		}
		if v.cursor < 0 {
			v.cursor = 0
		}
		return v, nil

	case shareErrorMsg:
		v.statusMsg = shareErrorText(msg.err)
		return v, nil

	case membersChangedMsg:
		return v, v.loadMembers()

	case tea.KeyMsg:
		switch v.mode {
		case ShareModeAddName:
			return v.handleAddNameMode(msg)
		case ShareModeAddEmail:
			return v.handleAddEmailMode(msg)
		case ShareModeConfirmRevoke:
			return v.handleConfirmRevokeMode(msg)
		default:
			return v.handleNormalMode(msg)
		}
	}

	return v, nil
}

// handleNormalMode handles keys in normal mode
func (v ShareView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if v.cursor < len(v.members)-1 {
			v.cursor++
		}
		return v, nil

	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil

	case "a":
		v.mode = ShareModeAddName
		v.textInput.SetValue("")
		v.textInput.Placeholder = "Name (optional)"
		v.textInput.Focus()
		return v, nil

	case "d":
		if len(v.members) > 0 && v.cursor < len(v.members) {
			v.revokeEmail = v.members[v.cursor].Email
			v.mode = ShareModeConfirmRevoke
		}
		return v, nil
	}

	return v, nil
}

// handleAddNameMode captures the optional display name
func (v ShareView) handleAddNameMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v.pendingName = strings.TrimSpace(v.textInput.Value())
		v.mode = ShareModeAddEmail
		v.textInput.SetValue("")
		v.textInput.Placeholder = "Email"
		return v, nil
	case "esc":
		v.mode = ShareModeNormal
		v.textInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(msg)
	return v, cmd
}

// handleAddEmailMode captures the email and grants access
func (v ShareView) handleAddEmailMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		email := strings.TrimSpace(v.textInput.Value())
		if email != "" {
			v.mode = ShareModeNormal
			v.textInput.Blur()
			name := v.pendingName
			v.pendingName = ""
			return v, v.grant(name, email)
		}
		return v, nil
	case "esc":
		v.mode = ShareModeNormal
		v.textInput.Blur()
		v.pendingName = ""
		return v, nil
	}

	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(msg)
	return v, cmd
}

// handleConfirmRevokeMode handles keys in revoke confirmation mode
func (v ShareView) handleConfirmRevokeMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = ShareModeNormal
		email := v.revokeEmail
		v.revokeEmail = ""
		return v, v.revoke(email)
	case "n", "N", "esc":
		v.mode = ShareModeNormal
		v.revokeEmail = ""
		return v, nil
	}
	return v, nil
}

// grant adds a member to the owner's grant list
func (v ShareView) grant(name, email string) tea.Cmd {
	svc := v.access
	owner := v.owner
	return func() tea.Msg {
		if _, err := svc.Grant(owner, name, email); err != nil {
			return shareErrorMsg{err: err}
		}
		return membersChangedMsg{}
	}
}

// revoke removes a member from the owner's grant list
func (v ShareView) revoke(email string) tea.Cmd {
	svc := v.access
	ownerID := v.owner.ID
	return func() tea.Msg {
		if err := svc.Revoke(ownerID, email); err != nil {
			return shareErrorMsg{err: err}
		}
		return membersChangedMsg{}
	}
}

// shareErrorText maps grant errors to user-facing text
func shareErrorText(err error) string {
	switch {
	case errors.Is(err, errs.ErrInvalidEmail):
		return "That doesn't look like a valid email address"
	case errors.Is(err, errs.ErrSelfGrant):
		return "You already have access to your own boards"
	case errors.Is(err, errs.ErrDuplicateGrant):
		return "This person already has access"
	default:
		return err.Error()
	}
}

// View renders the share view
func (v ShareView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme
	styles := theme.Current.Styles

	var sections []string
	sections = append(sections, styles.Title.Render(fmt.Sprintf("Shared With (%d)", len(v.members))))
	sections = append(sections, styles.Label.Render("People below can open every board you own."))
	sections = append(sections, "")

	if len(v.members) == 0 {
		sections = append(sections, styles.Subtitle.Render("Nobody yet. Press 'a' to share your boards."))
	}

	for i, m := range v.members {
		rowStyle := styles.CardNormal
		if i == v.cursor {
			rowStyle = styles.CardSelected
		}

		initial := lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Render("(" + m.Initial() + ")")
		emailStr := styles.Label.Render(" <" + m.Email + ">")

		sections = append(sections, rowStyle.Render(fmt.Sprintf("%s %s%s", initial, m.Name, emailStr)))
	}

	sections = append(sections, "")

	// Footer based on mode
	inputStyle := styles.InputFocused.Width(v.width - 4)
	switch v.mode {
	case ShareModeAddName:
		sections = append(sections, inputStyle.Render("Name: "+v.textInput.View()))
	case ShareModeAddEmail:
		sections = append(sections, inputStyle.Render("Email: "+v.textInput.View()))
	case ShareModeConfirmRevoke:
		confirm := lipgloss.NewStyle().Foreground(t.Error).Bold(true)
		sections = append(sections, confirm.Render(fmt.Sprintf("Revoke access for %s? (y/n)", v.revokeEmail)))
	default:
		hints := "j/k: nav • a: share with someone • d: revoke"
		if v.statusMsg != "" {
			hints = v.statusMsg
		}
		sections = append(sections, styles.Label.Render(hints))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// IsInputMode returns whether the view is in input mode
func (v ShareView) IsInputMode() bool {
	return v.mode == ShareModeAddName ||
		v.mode == ShareModeAddEmail ||
		v.mode == ShareModeConfirmRevoke
}
