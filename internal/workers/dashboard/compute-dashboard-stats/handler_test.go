// internal/workers/dashboard/compute-dashboard-stats/handler_test.go
package computedashboardstats

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"cofound-workers/internal/common/logger"
	"cofound-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func createTestConfig() *Config {
	return &Config{Timeout: 30 * time.Second}
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	return db, mock
}

func createTestProfile() *models.Profile {
	return &models.Profile{
		ID:          "user-1",
		FullName:    "Asha Verma",
		University:  "MIT",
		Bio:         "building a climate tech startup from my dorm room",
		Skills:      []string{"Go"},
		Interests:   []string{"AI"},
		Role:        models.RoleLookingForCofounder,
		LinkedinURL: "https://linkedin.com/in/asha",
		AvatarURL:   "https://cdn.example.com/asha.png",
		IsOnboarded: true,
	}
}

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl.WithFields(map[string]interface{}{"error": err})
}

func newTestLogger(t *testing.T) logger.Logger {
	return &testLogger{t: t}
}

func expectCounts(mock sqlmock.Sqlmock, userID string, candidates, goals, connections int) {
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM profiles`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(candidates))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM goals`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(goals))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM connections`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(connections))
}

func TestHandler_Execute_WithProvidedProfile(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	expectCounts(mock, "user-1", 24, 2, 5)

	handler := NewHandler(createTestConfig(), db, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		UserID:  "user-1",
		Profile: createTestProfile(),
	})

	assert.NoError(t, err)
	assert.Equal(t, 100, output.ProfileCompleteness)
	assert.Equal(t, 24, output.CandidateCount)
	assert.Equal(t, 2, output.ActiveGoals)
	assert.Equal(t, 5, output.AcceptedConnections)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_PartialProfile(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	expectCounts(mock, "user-2", 10, 0, 0)

	handler := NewHandler(createTestConfig(), db, newTestLogger(t))

	// Only name, role, and skills filled: 3 of 8 checks, 37.5 rounds to 38.
	output, err := handler.Execute(context.Background(), &Input{
		UserID: "user-2",
		Profile: &models.Profile{
			FullName: "Dev Patel",
			Role:     models.RoleReadyToJoin,
			Skills:   []string{"Rust"},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 38, output.ProfileCompleteness)
	assert.Equal(t, 10, output.CandidateCount)
	assert.Zero(t, output.ActiveGoals)
	assert.Zero(t, output.AcceptedConnections)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_ProfileNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, full_name").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)
	expectCounts(mock, "ghost", 3, 0, 0)

	handler := NewHandler(createTestConfig(), db, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{UserID: "ghost"})

	assert.NoError(t, err)
	assert.Zero(t, output.ProfileCompleteness)
	assert.Equal(t, 3, output.CandidateCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_MissingUserID(t *testing.T) {
	db, _ := setupMockDB(t)
	defer db.Close()

	handler := NewHandler(createTestConfig(), db, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{})

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrStatsComputeFailed)
	assert.Nil(t, output)
}

func TestHandler_Execute_CountQueryFails(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM profiles`).
		WithArgs("user-1").
		WillReturnError(sql.ErrConnDone)

	handler := NewHandler(createTestConfig(), db, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		UserID:  "user-1",
		Profile: createTestProfile(),
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrStatsComputeFailed)
	assert.Nil(t, output)
	assert.NoError(t, mock.ExpectationsWereMet())
}
