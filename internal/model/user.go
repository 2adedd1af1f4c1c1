package model

import "strings"

// User is a registered account. Accounts are append-only: there is no
// profile editing and no deletion.
//
// Passwords are stored in the clear. That is the behavior this tool
// replaces and it is kept as-is; the store is private to one machine.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Initial returns the display initial for avatars.
func (u User) Initial() string {
	if u.Name == "" {
		return "?"
	}
	r := []rune(u.Name)
	return strings.ToUpper(string(r[0]))
}
