// Package policy decides what an actor may do.
package policy

import "safety_reports/internal/models"

// CanModerateInvestigations reports whether actor may change a report's
// investigation status. A missing actor or profile is denied.
func CanModerateInvestigations(actor *models.User) bool {
	if actor == nil || actor.Profile == nil {
		return false
	}
	return actor.Profile.IsInvestigator()
}

// CanMutateComment reports whether actor may edit or delete c. Only the
// author may; roles grant nothing here.
func CanMutateComment(actor *models.User, c *models.Comment) bool {
	if actor == nil || c == nil {
		return false
	}
	return actor.ID != 0 && actor.ID == c.AuthorID
}

// CanAdministerUsers reports whether actor may change roles or delete users.
func CanAdministerUsers(actor *models.User) bool {
	return actor != nil && actor.Profile != nil && actor.Profile.IsAdmin()
}
