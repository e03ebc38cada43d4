// internal/workers/profiles/validate-profile-data/handler_test.go
package validateprofiledata

import (
	"context"
	"testing"
	"time"

	"cofound-workers/internal/common/logger"
	"cofound-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig() *Config {
	return &Config{Timeout: 10 * time.Second}
}

func validProfile() *models.Profile {
	return &models.Profile{
		ID:          "user-1",
		FullName:    "Asha Verma",
		University:  "MIT",
		Bio:         "building a climate tech startup from my dorm room",
		Skills:      []string{"Go", "Design"},
		Interests:   []string{"AI"},
		Role:        models.RoleLookingForCofounder,
		LinkedinURL: "https://linkedin.com/in/asha",
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

func newTestHandler(t *testing.T) *Handler {
	handler, err := NewHandler(createTestConfig(), newTestLogger(t))
	require.NoError(t, err)
	return handler
}

func TestHandler_Execute_ValidProfile(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{Profile: validProfile()})

	assert.NoError(t, err)
	assert.True(t, output.Valid)
	assert.Empty(t, output.Errors)
}

func TestHandler_Execute_MinimalProfile(t *testing.T) {
	handler := newTestHandler(t)

	// Only the required fields: still valid, just incomplete.
	output, err := handler.Execute(context.Background(), &Input{
		Profile: &models.Profile{
			FullName: "Dev Patel",
			Role:     models.RoleReadyToJoin,
		},
	})

	assert.NoError(t, err)
	assert.True(t, output.Valid)
	assert.Empty(t, output.Errors)
}

func TestHandler_Execute_MissingRequiredFields(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		Profile: &models.Profile{Bio: "no name, no role"},
	})

	assert.NoError(t, err)
	assert.False(t, output.Valid)
	require.Len(t, output.Errors, 2)
	assert.Contains(t, output.Errors[0], "fullName")
	assert.Contains(t, output.Errors[1], "role")
}

func TestHandler_Execute_UnknownRole(t *testing.T) {
	handler := newTestHandler(t)

	profile := validProfile()
	profile.Role = "Just browsing"

	output, err := handler.Execute(context.Background(), &Input{Profile: profile})

	assert.NoError(t, err)
	assert.False(t, output.Valid)
	require.Len(t, output.Errors, 1)
	assert.Contains(t, output.Errors[0], "role")
}

func TestHandler_Execute_MalformedURL(t *testing.T) {
	handler := newTestHandler(t)

	profile := validProfile()
	profile.WebsiteURL = "not a url at all"

	output, err := handler.Execute(context.Background(), &Input{Profile: profile})

	assert.NoError(t, err)
	assert.False(t, output.Valid)
	require.Len(t, output.Errors, 1)
	assert.Contains(t, output.Errors[0], "websiteUrl")
}

func TestHandler_Execute_EmptyURLsIgnored(t *testing.T) {
	handler := newTestHandler(t)

	// Blank social links count as absent rather than malformed.
	profile := validProfile()
	profile.LinkedinURL = ""
	profile.TwitterURL = ""
	profile.WebsiteURL = ""
	profile.AvatarURL = ""

	output, err := handler.Execute(context.Background(), &Input{Profile: profile})

	assert.NoError(t, err)
	assert.True(t, output.Valid)
}

func TestHandler_Execute_BioTooLong(t *testing.T) {
	handler := newTestHandler(t)

	profile := validProfile()
	long := make([]byte, 2001)
	for i := range long {
		long[i] = 'a'
	}
	profile.Bio = string(long)

	output, err := handler.Execute(context.Background(), &Input{Profile: profile})

	assert.NoError(t, err)
	assert.False(t, output.Valid)
	require.Len(t, output.Errors, 1)
	assert.Contains(t, output.Errors[0], "bio")
}

func TestHandler_Execute_MissingProfile(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{})

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Nil(t, output)
}
