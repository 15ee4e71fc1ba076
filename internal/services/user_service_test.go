package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safety_reports/internal/models"
)

func TestRegisterCreatesProfile(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db, nil, nil)

	u := mustRegister(t, users, "testuser")
	require.NotNil(t, u.Profile)
	assert.Equal(t, models.RoleRegular, u.Profile.Role)
	assert.NotEqual(t, "testpass123", u.Password)

	var profiles int64
	require.NoError(t, db.Model(&models.UserProfile{}).Where("user_id = ?", u.ID).Count(&profiles).Error)
	assert.Equal(t, int64(1), profiles)
}

func TestRegisterRejectsDuplicatesAndBadInput(t *testing.T) {
	users := NewUserService(newTestDB(t), nil, nil)
	ctx := context.Background()
	mustRegister(t, users, "testuser")

	_, err := users.Register(ctx, RegisterInput{Username: "testuser", Email: "other@example.com", Password: "testpass123"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = users.Register(ctx, RegisterInput{Username: "someone", Email: "TESTUSER@example.com", Password: "testpass123"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = users.Register(ctx, RegisterInput{Username: "x", Email: "not-an-email", Password: "short"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "password")
}

func TestAuthenticate(t *testing.T) {
	users := NewUserService(newTestDB(t), nil, nil)
	ctx := context.Background()
	registered := mustRegister(t, users, "testuser")

	u, err := users.Authenticate(ctx, "testuser", "testpass123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
	require.NotNil(t, u.Profile)

	_, err = users.Authenticate(ctx, "testuser", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = users.Authenticate(ctx, "nobody", "testpass123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSetRole(t *testing.T) {
	users := NewUserService(newTestDB(t), nil, nil)
	u := mustRegister(t, users, "testuser")

	updated := mustSetRole(t, users, u, models.RoleInvestigator)
	assert.True(t, updated.Profile.IsInvestigator())

	actor, err := users.FindActor(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleInvestigator, actor.Profile.Role)

	_, err = users.SetRole(context.Background(), u.ID, "superuser")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = users.SetRole(context.Background(), 9999, models.RoleAdmin)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	db := newTestDB(t)
	inv := &fakeInvalidator{}
	users := NewUserService(db, nil, inv)
	comments := NewCommentService(db)
	ctx := context.Background()

	author := mustRegister(t, users, "author")
	other := mustRegister(t, users, "other")
	now := time.Now()

	own := seedReport(t, db, author, "Author Airport", "waiting", now)
	foreign := seedReport(t, db, other, "Other Airport", "waiting", now)

	_, err := comments.Add(ctx, other, own.ID, "other on author's report")
	require.NoError(t, err)
	_, err = comments.Add(ctx, author, foreign.ID, "author on other's report")
	require.NoError(t, err)
	kept, err := comments.Add(ctx, other, foreign.ID, "other on own report")
	require.NoError(t, err)

	require.NoError(t, users.DeleteUser(ctx, author.ID))
	assert.Equal(t, 1, inv.calls)

	var n int64
	db.Model(&models.SafetyReport{}).Count(&n)
	assert.Equal(t, int64(1), n)
	db.Model(&models.UserProfile{}).Where("user_id = ?", author.ID).Count(&n)
	assert.Equal(t, int64(0), n)

	var left []models.Comment
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, kept.ID, left[0].ID)

	assert.ErrorIs(t, users.DeleteUser(ctx, author.ID), ErrNotFound)
}

func TestBootstrapAdmins(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	existing := mustRegister(t, NewUserService(db, nil, nil), "founder")
	mustRegister(t, NewUserService(db, nil, nil), "someone")

	users := NewUserService(db, nil, nil).WithBootstrapAdmins([]string{"founder", " ops ", "", "ghost"})

	promoted, err := users.PromoteAdmins(ctx, []string{"founder", "ghost", ""})
	require.NoError(t, err)
	assert.Equal(t, 1, promoted)

	actor, err := users.FindActor(ctx, existing.ID)
	require.NoError(t, err)
	assert.True(t, actor.Profile.IsAdmin())

	// already an admin, nothing to change
	promoted, err = users.PromoteAdmins(ctx, []string{"founder"})
	require.NoError(t, err)
	assert.Equal(t, 0, promoted)

	ops := mustRegister(t, users, "ops")
	assert.Equal(t, models.RoleAdmin, ops.Profile.Role)
	other := mustRegister(t, users, "newcomer")
	assert.Equal(t, models.RoleRegular, other.Profile.Role)
}
