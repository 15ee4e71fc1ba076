package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserProfileRoles(t *testing.T) {
	tests := []struct {
		role         string
		investigator bool
		admin        bool
		label        string
	}{
		{RoleRegular, false, false, "Regular User"},
		{RoleInvestigator, true, false, "Investigator"},
		{RoleAdmin, true, true, "Administrator"},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			p := &UserProfile{Role: tt.role}
			assert.Equal(t, tt.investigator, p.IsInvestigator())
			assert.Equal(t, tt.admin, p.IsAdmin())
			assert.Equal(t, tt.label, p.RoleLabel())
			assert.True(t, ValidRole(tt.role))
		})
	}
	assert.False(t, ValidRole("superuser"))
}

func TestStringers(t *testing.T) {
	user := &User{Email: "test@example.com"}
	profile := &UserProfile{Role: RoleRegular, User: user}
	assert.Equal(t, "test@example.com - Regular User", profile.String())

	report := &SafetyReport{Place: "Test Airport", Date: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "Safety Report - Test Airport on 2025-01-15", report.String())

	comment := &Comment{Author: user, Report: report}
	assert.Equal(t, "Comment by test@example.com on Test Airport", comment.String())
}

func TestReportStatusPresentation(t *testing.T) {
	r := &SafetyReport{InvestigationStatus: "investigating"}
	assert.Equal(t, "warning", r.StatusPresentation().Color)

	r.InvestigationStatus = "bogus"
	assert.Equal(t, "primary", r.StatusPresentation().Color)
}
