package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"safety_reports/internal/models"
)

func userWithRole(id uint, role string) *models.User {
	return &models.User{ID: id, Profile: &models.UserProfile{UserID: id, Role: role}}
}

func TestCanModerateInvestigations(t *testing.T) {
	tests := []struct {
		name  string
		actor *models.User
		want  bool
	}{
		{"regular", userWithRole(1, models.RoleRegular), false},
		{"investigator", userWithRole(2, models.RoleInvestigator), true},
		{"admin", userWithRole(3, models.RoleAdmin), true},
		{"no profile", &models.User{ID: 4}, false},
		{"no actor", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanModerateInvestigations(tt.actor))
		})
	}
}

func TestCanMutateComment(t *testing.T) {
	comment := &models.Comment{ID: 10, AuthorID: 1}

	for _, role := range []string{models.RoleRegular, models.RoleInvestigator, models.RoleAdmin} {
		assert.True(t, CanMutateComment(userWithRole(1, role), comment), role)
		assert.False(t, CanMutateComment(userWithRole(2, role), comment), role)
	}
	assert.False(t, CanMutateComment(nil, comment))
	assert.False(t, CanMutateComment(userWithRole(1, models.RoleRegular), nil))
}

func TestCanAdministerUsers(t *testing.T) {
	assert.True(t, CanAdministerUsers(userWithRole(1, models.RoleAdmin)))
	assert.False(t, CanAdministerUsers(userWithRole(2, models.RoleInvestigator)))
	assert.False(t, CanAdministerUsers(userWithRole(3, models.RoleRegular)))
	assert.False(t, CanAdministerUsers(&models.User{ID: 4}))
	assert.False(t, CanAdministerUsers(nil))
}
