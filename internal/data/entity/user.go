package entity

import (
	"net/url"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func Roles() []Role {
	return []Role{RoleUser, RoleAdmin}
}

func ParseRole(value string) (Role, bool) {
	for _, r := range Roles() {
		if string(r) == value {
			return r, true
		}
	}
	return "", false
}

// ParseRolesFromForm extracts the selected role checkboxes from a submitted
// form, the same way ParseGenresFromForm does for genres. Unrecognized keys
// are ignored, never an error.
func ParseRolesFromForm(form url.Values) []Role {
	var selected []Role
	for _, r := range Roles() {
		if _, ok := form[string(r)]; ok {
			selected = append(selected, r)
		}
	}
	return selected
}

type User struct {
	BaseSimple
	Username     string `db:"username"`
	PasswordHash string `db:"password"`
	Active       bool   `db:"is_active"`

	// Roles is loaded from the user_roles table alongside the user row.
	Roles []Role `db:"-"`
}

func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
