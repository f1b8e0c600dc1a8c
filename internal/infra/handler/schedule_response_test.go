package handler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-reminder-alarm/internal/app"
	"github.com/KasumiMercury/primind-reminder-alarm/internal/infra/handler"
)

func TestFromScheduleOutputNormalizesToUTC(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	fireAt := time.Date(2025, 3, 1, 9, 30, 0, 0, jst)

	response := handler.FromScheduleOutput(app.ScheduleOutput{
		ReminderID: "r-1",
		Scheduled:  true,
		FireAt:     &fireAt,
	})

	require.NotNil(t, response.FireAt)
	assert.Equal(t, time.UTC, response.FireAt.Location())
	assert.True(t, fireAt.Equal(*response.FireAt))
	assert.Equal(t, jst, fireAt.Location())
}

func TestFromJobsOutputEmpty(t *testing.T) {
	response := handler.FromJobsOutput(app.JobsOutput{})

	assert.NotNil(t, response.Jobs)
	assert.Empty(t, response.Jobs)
	assert.Equal(t, int32(0), response.Count)
}
