package views

import (
	"errors"
	"strings"

	"github.com/averix/kanvas/internal/errs"
	"github.com/averix/kanvas/internal/model"
	"github.com/averix/kanvas/internal/session"
	"github.com/averix/kanvas/internal/ui/theme"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SessionStartedMsg is emitted when sign-in or sign-up succeeds.
// The root model reacts by switching to the dashboard.
type SessionStartedMsg struct {
	User model.User
}

type loginErrorMsg struct{ err error }

// LoginMode toggles between the sign-in and sign-up forms
type LoginMode int

const (
	LoginModeSignIn LoginMode = iota
	LoginModeSignUp
)

// Field indices into LoginView.inputs
const (
	loginFieldName = iota
	loginFieldEmail
	loginFieldPassword
	loginFieldCount
)

// LoginView collects credentials and establishes a session
type LoginView struct {
	sessions *session.Manager
	width    int
	height   int

	mode     LoginMode
	inputs   [loginFieldCount]textinput.Model
	focusIdx int

	errMsg  string
	working bool
}

// NewLoginView creates a new login view
func NewLoginView(sessions *session.Manager) LoginView {
	v := LoginView{sessions: sessions}

	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 64

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	v.inputs[loginFieldName] = name
	v.inputs[loginFieldEmail] = email
	v.inputs[loginFieldPassword] = password

	v.focusIdx = loginFieldEmail
	v.inputs[loginFieldEmail].Focus()

	return v
}

// Init initializes the login view
func (v LoginView) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize sets the view dimensions
func (v LoginView) SetSize(width, height int) LoginView {
	v.width = width
	v.height = height
	return v
}

// Reset clears the form, used after logout
func (v LoginView) Reset() LoginView {
	for i := range v.inputs {
		v.inputs[i].SetValue("")
		v.inputs[i].Blur()
	}
	v.mode = LoginModeSignIn
	v.errMsg = ""
	v.working = false
	v.focusIdx = loginFieldEmail
	v.inputs[loginFieldEmail].Focus()
	return v
}

// firstField returns the first visible field for the current mode
func (v LoginView) firstField() int {
	if v.mode == LoginModeSignUp {
		return loginFieldName
	}
	return loginFieldEmail
}

// Update handles messages
func (v LoginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginErrorMsg:
		v.working = false
		v.errMsg = loginErrorText(msg.err)
		return v, nil

	case tea.KeyMsg:
		if v.working {
			return v, nil
		}

		switch msg.String() {
		case "tab", "down":
			return v.moveFocus(1), nil

		case "shift+tab", "up":
			return v.moveFocus(-1), nil

		case "ctrl+n":
			// Toggle between sign-in and sign-up
			if v.mode == LoginModeSignIn {
				v.mode = LoginModeSignUp
			} else {
				v.mode = LoginModeSignIn
			}
			v.errMsg = ""
			return v.setFocus(v.firstField()), nil

		case "enter":
			if v.focusIdx == loginFieldPassword {
				return v.submit()
			}
			return v.moveFocus(1), nil
		}
	}

	var cmd tea.Cmd
	v.inputs[v.focusIdx], cmd = v.inputs[v.focusIdx].Update(msg)
	return v, cmd
}

// moveFocus shifts focus to an adjacent visible field
func (v LoginView) moveFocus(direction int) LoginView {
	first := v.firstField()
	idx := v.focusIdx + direction
	if idx < first {
		idx = loginFieldPassword
	}
	if idx > loginFieldPassword {
		idx = first
	}
	return v.setFocus(idx)
}

// setFocus focuses one field and blurs the rest
func (v LoginView) setFocus(idx int) LoginView {
	for i := range v.inputs {
		if i == idx {
			v.inputs[i].Focus()
		} else {
			v.inputs[i].Blur()
		}
	}
	v.focusIdx = idx
	return v
}

// submit validates the form and runs the session operation
func (v LoginView) submit() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(v.inputs[loginFieldName].Value())
	email := strings.TrimSpace(v.inputs[loginFieldEmail].Value())
	password := v.inputs[loginFieldPassword].Value()

	if email == "" || password == "" {
		v.errMsg = "Email and password are required"
		return v, nil
	}
	if v.mode == LoginModeSignUp && name == "" {
		v.errMsg = "Name is required"
		return v, nil
	}

	v.errMsg = ""
	v.working = true
	mode := v.mode
	sessions := v.sessions

	return v, func() tea.Msg {
		var (
			user *model.User
			err  error
		)
		if mode == LoginModeSignUp {
			user, err = sessions.Register(name, email, password)
		} else {
			user, err = sessions.Login(email, password)
		}
		if err != nil {
			return loginErrorMsg{err: err}
		}
		return SessionStartedMsg{User: *user}
	}
}

// loginErrorText maps session errors to user-facing text
func loginErrorText(err error) string {
	switch {
	case errors.Is(err, errs.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, errs.ErrDuplicateEmail):
		return "An account with this email already exists"
	default:
		return err.Error()
	}
}

// View renders the login form
func (v LoginView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme
	styles := theme.Current.Styles

	title := "Sign In"
	action := "sign in"
	toggleHint := "C-n: create an account"
	if v.mode == LoginModeSignUp {
		title = "Create Account"
		action = "sign up"
		toggleHint = "C-n: back to sign in"
	}

	var lines []string
	lines = append(lines, styles.Title.Render(title))

	fieldStyle := func(focused bool) lipgloss.Style {
		if focused {
			return styles.InputFocused.Width(40)
		}
		return styles.Input.Width(40)
	}

	if v.mode == LoginModeSignUp {
		lines = append(lines, fieldStyle(v.focusIdx == loginFieldName).Render(v.inputs[loginFieldName].View()))
	}
	lines = append(lines, fieldStyle(v.focusIdx == loginFieldEmail).Render(v.inputs[loginFieldEmail].View()))
	lines = append(lines, fieldStyle(v.focusIdx == loginFieldPassword).Render(v.inputs[loginFieldPassword].View()))

	if v.errMsg != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Error).Render(v.errMsg))
	}
	if v.working {
		lines = append(lines, styles.Label.Render("Working..."))
	}

	hints := "tab: next field • enter: " + action + " • " + toggleHint
	lines = append(lines, styles.Label.Render(hints))

	form := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, form)
}

// IsInputMode returns whether the view is in input mode
func (v LoginView) IsInputMode() bool {
	return true
}
