package model

import (
	"encoding/json"
	"strings"
)

// Member is one authorization grant entry: a person allowed to view
// the owning user's boards, identified by email.
type Member struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UnmarshalJSON accepts both the canonical {name,email} shape and the
// legacy bare-string shape, where an entry was just the email. Legacy
// entries get a name derived from the email's local part; storage is
// not rewritten until the owner's list next mutates.
func (m *Member) UnmarshalJSON(data []byte) error {
	var email string
	if err := json.Unmarshal(data, &email); err == nil {
		m.Email = email
		m.Name = emailLocalPart(email)
		return nil
	}

	type canonical Member
	var c canonical
	if err := json.Unmarshal(data, &c); err != nil {
		return err
	}
	*m = Member(c)
	return nil
}

// Matches reports whether the grant covers the given email.
// Comparison is case-insensitive everywhere emails meet.
func (m Member) Matches(email string) bool {
	return strings.EqualFold(m.Email, email)
}

// Initial returns the display initial for avatars.
func (m Member) Initial() string {
	if m.Name == "" {
		return "?"
	}
	r := []rune(m.Name)
	return strings.ToUpper(string(r[0]))
}

func emailLocalPart(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
