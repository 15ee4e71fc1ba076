package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"safety_reports/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.UserProfile{}, &models.SafetyReport{}, &models.Comment{}))
	return db
}

func mustRegister(t *testing.T, users *UserService, username string) *models.User {
	t.Helper()
	u, err := users.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "testpass123",
	})
	require.NoError(t, err)
	return u
}

func mustSetRole(t *testing.T, users *UserService, u *models.User, role string) *models.User {
	t.Helper()
	updated, err := users.SetRole(context.Background(), u.ID, role)
	require.NoError(t, err)
	return updated
}

// seedReport inserts a report directly, with an explicit creation time so
// ordering assertions do not depend on clock resolution.
func seedReport(t *testing.T, db *gorm.DB, author *models.User, place, st string, createdAt time.Time) *models.SafetyReport {
	t.Helper()
	r := &models.SafetyReport{
		AuthorID:            author.ID,
		Place:               place,
		Date:                time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Time:                "14:30:00",
		Description:         "Test description for " + place,
		InvestigationStatus: st,
		CreatedAt:           createdAt,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

type fakeInvalidator struct{ calls int }

func (f *fakeInvalidator) Invalidate(context.Context) { f.calls++ }
