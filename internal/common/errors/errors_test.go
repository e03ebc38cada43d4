// internal/common/errors/errors_test.go
package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardError_Error(t *testing.T) {
	err := NewProfileNotFoundError("user-1")

	assert.Equal(t, ErrCodeProfileNotFound, err.Code)
	assert.Contains(t, err.Error(), "PROFILE_NOT_FOUND")
	assert.Contains(t, err.Details, "user-1")
	assert.False(t, err.Retryable)
}

func TestConvertToBPMNError(t *testing.T) {
	stdErr := NewRankingFailedError(fmt.Errorf("candidate pool query failed"))

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "RANKING_FAILED", bpmnErr.Code)
	assert.True(t, bpmnErr.Retryable)
	assert.Equal(t, 3, bpmnErr.Retries)
	assert.Equal(t, "RANKING_FAILED", bpmnErr.ErrorVariables["originalErrorCode"])
	assert.NotEmpty(t, bpmnErr.ErrorVariables["timestamp"])
}

func TestConvertToBPMNError_NonRetryableGetsZeroRetries(t *testing.T) {
	stdErr := NewInvalidQueryTypeError("drop-tables")

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "INVALID_QUERY_TYPE", bpmnErr.Code)
	assert.False(t, bpmnErr.Retryable)
	assert.Zero(t, bpmnErr.Retries)
}

func TestConvertToBPMNError_UnmappedCodeFallsBack(t *testing.T) {
	stdErr := NewBusinessRuleError("duplicate connection request", "already pending")

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "BUSINESS_RULE_VIOLATION", bpmnErr.Code)
}

func TestBPMNError_ToErrorVariables(t *testing.T) {
	bpmnErr := &BPMNError{
		Code:      "SEARCH_TIMEOUT",
		Message:   "Elasticsearch query timeout",
		Retryable: true,
		ErrorVariables: map[string]interface{}{
			"index": "profiles",
		},
	}

	vars := bpmnErr.ToErrorVariables()

	assert.Equal(t, "SEARCH_TIMEOUT", vars["errorCode"])
	assert.Equal(t, true, vars["retryable"])
	assert.Equal(t, "profiles", vars["index"])
}

func TestGetRetryCount(t *testing.T) {
	tests := []struct {
		code    ErrorCode
		retries int
	}{
		{ErrCodeDatabaseConnectionFailed, 3},
		{ErrCodeRankingFailed, 3},
		{ErrCodeStatsComputeFailed, 3},
		{ErrCodeNotificationSendFailed, 3},
		{ErrCodeQueryTimeout, 2},
		{ErrCodeSearchTimeout, 2},
		{ErrCodeProfileNotFound, 0},
		{ErrCodeMatchScoreFailed, 0},
		{ErrCodeTemplateNotFound, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.retries, GetRetryCount(tt.code))
		})
	}
}

func TestIsRetryableErrorCode(t *testing.T) {
	assert.True(t, IsRetryableErrorCode(ErrCodeSearchQueryFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeProfileValidationFailed))
}

func TestGetErrorCategory(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		category string
	}{
		{ErrCodeProfileNotFound, "PROFILE"},
		{ErrCodeProfileValidationFailed, "PROFILE"},
		{ErrCodeMatchScoreFailed, "MATCHING"},
		{ErrCodeRankingFailed, "MATCHING"},
		{ErrCodeStatsComputeFailed, "MATCHING"},
		{ErrCodeTemplateNotFound, "TEMPLATE"},
		{ErrCodeDatabaseConnectionFailed, "DATABASE"},
		{ErrCodeQueryTimeout, "DATABASE"},
		{ErrCodeInvalidQueryType, "DATABASE"},
		{ErrCodeSearchTimeout, "SEARCH"},
		{ErrCodeIndexNotFound, "SEARCH"},
		{ErrCodeNotificationSendFailed, "NOTIFICATION"},
		{ErrorCode("SOMETHING_ELSE"), "OTHER"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.category, GetErrorCategory(tt.code))
		})
	}
}
