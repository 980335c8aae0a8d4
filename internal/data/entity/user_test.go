package entity

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRolesFromForm(t *testing.T) {
	form := url.Values{
		"USER":      {"on"},
		"ADMIN":     {"on"},
		"SUPERUSER": {"on"}, // not a role, ignored
	}

	assert.Equal(t, []Role{RoleUser, RoleAdmin}, ParseRolesFromForm(form))
	assert.Empty(t, ParseRolesFromForm(url.Values{}))
}

func TestHasRole(t *testing.T) {
	user := &User{Roles: []Role{RoleUser}}

	assert.True(t, user.HasRole(RoleUser))
	assert.False(t, user.HasRole(RoleAdmin))
}
