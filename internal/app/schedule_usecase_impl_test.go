package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-reminder-alarm/internal/app"
	"github.com/KasumiMercury/primind-reminder-alarm/internal/domain"
	"github.com/KasumiMercury/primind-reminder-alarm/internal/testutil"
)

type fakeFollowUps struct {
	acknowledged map[domain.ReminderID][]domain.UserID
	removed      []domain.UserID
	pending      bool
}

func (f *fakeFollowUps) Acknowledge(reminderID domain.ReminderID, userID domain.UserID) bool {
	if f.acknowledged == nil {
		f.acknowledged = make(map[domain.ReminderID][]domain.UserID)
	}

	f.acknowledged[reminderID] = append(f.acknowledged[reminderID], userID)

	return f.pending
}

func (f *fakeFollowUps) CancelFollowUpsForMember(_ domain.FamilyID, userID domain.UserID) int {
	f.removed = append(f.removed, userID)

	return 2
}

type useCaseFixture struct {
	useCase   app.ScheduleUseCase
	scheduler *app.Scheduler
	repo      *memoryReminders
	followUps *fakeFollowUps
}

func setupUseCaseTest(t *testing.T) *useCaseFixture {
	t.Helper()

	repo := newMemoryReminders()
	scheduler := newTestScheduler(repo, testutil.NewFakeClock(monday), newRecordingNotifier())
	followUps := &fakeFollowUps{}

	t.Cleanup(func() {
		_ = scheduler.Shutdown(context.Background())
	})

	return &useCaseFixture{
		useCase:   app.NewScheduleUseCase(repo, scheduler, followUps),
		scheduler: scheduler,
		repo:      repo,
		followUps: followUps,
	}
}

func TestScheduleSuccess(t *testing.T) {
	f := setupUseCaseTest(t)

	r := f.repo.put(countdownParams(monday, time.Hour, 0))

	output, err := f.useCase.Schedule(context.Background(), app.ScheduleInput{ReminderID: r.ID().String()})

	require.NoError(t, err)
	assert.Equal(t, r.ID().String(), output.ReminderID)
	assert.True(t, output.Scheduled)
	require.NotNil(t, output.FireAt)
	assert.Equal(t, monday.Add(time.Hour), *output.FireAt)
	assert.Equal(t, 1, f.scheduler.Len())
}

func TestScheduleErrors(t *testing.T) {
	emptyWeekly := domain.ReminderParams{
		ID:             domain.NewReminderID(),
		DogID:          newDogID(),
		FamilyID:       newFamilyID(),
		Action:         domain.ActionWalk,
		Type:           domain.ReminderTypeWeekly,
		IsEnabled:      true,
		ExecutionBasis: monday,
		Weekly:         domain.WeeklyComponents{Hour: 9},
	}

	tests := []struct {
		name        string
		stored      []domain.ReminderParams
		reminderID  string
		expectedErr error
		field       string
	}{
		{
			name:        "malformed id",
			reminderID:  "not-a-uuid",
			expectedErr: app.ErrValidation,
			field:       "reminder_id",
		},
		{
			name:        "reminder missing from storage",
			reminderID:  domain.NewReminderID().String(),
			expectedErr: app.ErrNotFound,
		},
		{
			name:        "weekly reminder without weekdays",
			stored:      []domain.ReminderParams{emptyWeekly},
			reminderID:  emptyWeekly.ID.String(),
			expectedErr: app.ErrValidation,
			field:       "weekdays",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupUseCaseTest(t)

			for _, p := range tt.stored {
				f.repo.put(p)
			}

			_, err := f.useCase.Schedule(context.Background(), app.ScheduleInput{ReminderID: tt.reminderID})

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expectedErr)

			if tt.field != "" {
				var validationErr *app.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, tt.field, validationErr.Field)
			}

			assert.Equal(t, 0, f.scheduler.Len())
		})
	}
}

func TestScheduleStorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := domain.NewMockReminderRepository(ctrl)
	repo.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))

	scheduler := newTestScheduler(repo, testutil.NewFakeClock(monday), newRecordingNotifier())
	useCase := app.NewScheduleUseCase(repo, scheduler, &fakeFollowUps{})

	_, err := useCase.Schedule(context.Background(), app.ScheduleInput{ReminderID: domain.NewReminderID().String()})

	require.Error(t, err)
	assert.ErrorIs(t, err, app.ErrInternalError)
}

func TestRescheduleDisabledReminderCancels(t *testing.T) {
	f := setupUseCaseTest(t)

	params := countdownParams(monday, time.Hour, 0)

	_, err := f.useCase.Schedule(context.Background(), app.ScheduleInput{ReminderID: f.repo.put(params).ID().String()})
	require.NoError(t, err)

	params.IsEnabled = false
	f.repo.put(params)

	output, err := f.useCase.Reschedule(context.Background(), app.ScheduleInput{ReminderID: params.ID.String()})

	require.NoError(t, err)
	assert.False(t, output.Scheduled)
	assert.Nil(t, output.FireAt)
	assert.Equal(t, 0, f.scheduler.Len())
}

func TestRescheduleIsIdempotent(t *testing.T) {
	f := setupUseCaseTest(t)

	r := f.repo.put(countdownParams(monday, time.Hour, 0))
	input := app.ScheduleInput{ReminderID: r.ID().String()}

	first, err := f.useCase.Reschedule(context.Background(), input)
	require.NoError(t, err)

	second, err := f.useCase.Reschedule(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.scheduler.Len())
}

func TestRescheduleAfterShutdown(t *testing.T) {
	f := setupUseCaseTest(t)

	r := f.repo.put(countdownParams(monday, time.Hour, 0))

	require.NoError(t, f.scheduler.Shutdown(context.Background()))

	_, err := f.useCase.Reschedule(context.Background(), app.ScheduleInput{ReminderID: r.ID().String()})

	assert.ErrorIs(t, err, app.ErrShuttingDown)
}

func TestCancelIsIdempotent(t *testing.T) {
	f := setupUseCaseTest(t)

	r := f.repo.put(countdownParams(monday, time.Hour, 0))

	_, err := f.useCase.Schedule(context.Background(), app.ScheduleInput{ReminderID: r.ID().String()})
	require.NoError(t, err)

	input := app.CancelInput{ReminderID: r.ID().String()}

	first, err := f.useCase.Cancel(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, first.Cancelled)

	second, err := f.useCase.Cancel(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, second.Cancelled)

	_, err = f.useCase.Cancel(context.Background(), app.CancelInput{ReminderID: "bad"})
	assert.ErrorIs(t, err, app.ErrValidation)
}

func TestAcknowledge(t *testing.T) {
	f := setupUseCaseTest(t)
	f.followUps.pending = true

	reminderID := domain.NewReminderID()
	userID := newUserID()

	output, err := f.useCase.Acknowledge(context.Background(), app.AcknowledgeInput{
		ReminderID: reminderID.String(),
		UserID:     userID.String(),
	})

	require.NoError(t, err)
	assert.True(t, output.FollowUpPending)
	assert.Equal(t, []domain.UserID{userID}, f.followUps.acknowledged[reminderID])

	_, err = f.useCase.Acknowledge(context.Background(), app.AcknowledgeInput{
		ReminderID: reminderID.String(),
		UserID:     "someone",
	})

	var validationErr *app.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "user_id", validationErr.Field)
}

func TestRemoveMember(t *testing.T) {
	f := setupUseCaseTest(t)

	userID := newUserID()

	output, err := f.useCase.RemoveMember(context.Background(), app.RemoveMemberInput{
		FamilyID: newFamilyID().String(),
		UserID:   userID.String(),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, output.FollowUpsAffected)
	assert.Equal(t, []domain.UserID{userID}, f.followUps.removed)

	_, err = f.useCase.RemoveMember(context.Background(), app.RemoveMemberInput{
		FamilyID: "family",
		UserID:   userID.String(),
	})

	assert.ErrorIs(t, err, app.ErrValidation)
}

func TestListJobs(t *testing.T) {
	f := setupUseCaseTest(t)

	later := f.repo.put(countdownParams(monday, 2*time.Hour, 0))
	sooner := f.repo.put(countdownParams(monday, time.Hour, 0))

	for _, r := range []*domain.Reminder{later, sooner} {
		_, err := f.useCase.Schedule(context.Background(), app.ScheduleInput{ReminderID: r.ID().String()})
		require.NoError(t, err)
	}

	output, err := f.useCase.ListJobs(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int32(2), output.Count)
	assert.Equal(t, sooner.ID().String(), output.Jobs[0].ReminderID)
	assert.Equal(t, monday.Add(time.Hour), output.Jobs[0].FireAt)
	assert.Equal(t, later.ID().String(), output.Jobs[1].ReminderID)
}
