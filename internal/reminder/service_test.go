package reminder

import (
	"testing"
	"time"

	"carecalendar-api/internal/common"
	"carecalendar-api/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestService(t *testing.T) (ReminderService, *MockReminderRepository, *events.MockEventBus) {
	logger := zaptest.NewLogger(t)
	repo := NewMockReminderRepository()
	bus := events.NewMockEventBus()
	bus.SetSynchronousMode(true)
	return NewReminderService(bus, logger, repo), repo, bus
}

func TestReminderService_CreateReminder(t *testing.T) {
	tests := []struct {
		name          string
		params        CreateReminderParams
		expectedTitle string
		expectedError bool
	}{
		{
			name: "creates reminder with supplied fields",
			params: CreateReminderParams{
				OwnerID:   "1",
				Title:     "Doctor",
				StartTime: "2024-01-10T09:00:00Z",
			},
			expectedTitle: "Doctor",
		},
		{
			name: "empty title defaults to New Reminder",
			params: CreateReminderParams{
				OwnerID:   "1",
				Title:     "",
				StartTime: "2024-01-10T09:00:00Z",
			},
			expectedTitle: DefaultTitle,
		},
		{
			name: "whitespace title defaults to New Reminder",
			params: CreateReminderParams{
				OwnerID:   "1",
				Title:     "   ",
				StartTime: "2024-01-10T09:00:00Z",
			},
			expectedTitle: DefaultTitle,
		},
		{
			name: "unparseable start time fails validation",
			params: CreateReminderParams{
				OwnerID:   "1",
				Title:     "Doctor",
				StartTime: "next tuesday",
			},
			expectedError: true,
		},
		{
			name: "missing start time fails validation",
			params: CreateReminderParams{
				OwnerID: "1",
				Title:   "Doctor",
			},
			expectedError: true,
		},
		{
			name: "missing owner fails validation",
			params: CreateReminderParams{
				Title:     "Doctor",
				StartTime: "2024-01-10T09:00:00Z",
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newTestService(t)

			reminder, err := service.CreateReminder(tt.params)

			if tt.expectedError {
				require.Error(t, err)
				assert.True(t, common.IsValidationError(err))
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, reminder.ID)
			assert.Equal(t, tt.params.OwnerID, reminder.OwnerID)
			assert.Equal(t, tt.expectedTitle, reminder.Title)

			expected, _ := time.Parse(time.RFC3339, tt.params.StartTime)
			assert.True(t, reminder.StartTime.Equal(expected))
		})
	}
}

func TestReminderService_CreateReminder_PublishesEvent(t *testing.T) {
	service, _, bus := newTestService(t)

	reminder, err := service.CreateReminder(CreateReminderParams{
		OwnerID:   "1",
		ChatID:    "chat1",
		Title:     "Stretch",
		StartTime: "2024-03-01T08:00:00Z",
	})
	require.NoError(t, err)

	published := bus.GetPublishedEvents(events.TopicReminderCreated)
	require.Len(t, published, 1)

	event, ok := published[0].(events.ReminderCreated)
	require.True(t, ok)
	assert.Equal(t, reminder.ID.String(), event.ReminderID)
	assert.Equal(t, "1", event.OwnerID)
	assert.Equal(t, "chat1", event.ChatID)
	assert.Equal(t, "Stretch", event.Title)
}

func TestReminderService_CreateThenList_RoundTrip(t *testing.T) {
	service, _, _ := newTestService(t)

	created, err := service.CreateReminder(CreateReminderParams{
		OwnerID:   "1",
		Title:     "Doctor",
		StartTime: "2024-01-10T09:00:00Z",
	})
	require.NoError(t, err)

	listed, err := service.GetReminders("1", "", "")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
	assert.Equal(t, "Doctor", listed[0].Title)
	assert.True(t, listed[0].StartTime.Equal(created.StartTime))
}

func TestReminderService_GetReminders_DateWindow(t *testing.T) {
	service, _, _ := newTestService(t)

	mustCreate := func(title, startTime string) *Reminder {
		r, err := service.CreateReminder(CreateReminderParams{
			OwnerID:   "1",
			Title:     title,
			StartTime: startTime,
		})
		require.NoError(t, err)
		return r
	}

	mustCreate("Before", "2023-12-31T23:59:59Z")
	lower := mustCreate("Lower bound", "2024-01-01T00:00:00Z")
	middle := mustCreate("Doctor", "2024-01-10T09:00:00Z")
	upper := mustCreate("Upper bound", "2024-01-31T00:00:00Z")
	mustCreate("After", "2024-01-31T00:00:01Z")

	t.Run("window is inclusive on both bounds", func(t *testing.T) {
		listed, err := service.GetReminders("1", "2024-01-01T00:00:00Z", "2024-01-31T00:00:00Z")
		require.NoError(t, err)
		require.Len(t, listed, 3)
		assert.Equal(t, lower.ID, listed[0].ID)
		assert.Equal(t, middle.ID, listed[1].ID)
		assert.Equal(t, upper.ID, listed[2].ID)
	})

	t.Run("open-ended lower bound", func(t *testing.T) {
		listed, err := service.GetReminders("1", "", "2024-01-01T00:00:00Z")
		require.NoError(t, err)
		assert.Len(t, listed, 2)
	})

	t.Run("open-ended upper bound", func(t *testing.T) {
		listed, err := service.GetReminders("1", "2024-01-31T00:00:00Z", "")
		require.NoError(t, err)
		assert.Len(t, listed, 2)
	})

	t.Run("no bounds returns everything", func(t *testing.T) {
		listed, err := service.GetReminders("1", "", "")
		require.NoError(t, err)
		assert.Len(t, listed, 5)
	})

	t.Run("malformed bound fails validation", func(t *testing.T) {
		_, err := service.GetReminders("1", "januari", "")
		require.Error(t, err)
		assert.True(t, common.IsValidationError(err))
	})

	t.Run("other owners are not visible", func(t *testing.T) {
		listed, err := service.GetReminders("2", "", "")
		require.NoError(t, err)
		assert.Empty(t, listed)
	})
}

func TestReminderService_GetReminders_Ordering(t *testing.T) {
	service, _, _ := newTestService(t)

	// Created deliberately out of order
	for _, startTime := range []string{
		"2024-05-03T10:00:00Z",
		"2024-05-01T10:00:00Z",
		"2024-05-02T10:00:00Z",
	} {
		_, err := service.CreateReminder(CreateReminderParams{
			OwnerID:   "1",
			Title:     "Walk",
			StartTime: startTime,
		})
		require.NoError(t, err)
	}

	listed, err := service.GetReminders("1", "", "")
	require.NoError(t, err)
	require.Len(t, listed, 3)

	for i := 1; i < len(listed); i++ {
		assert.False(t, listed[i].StartTime.Before(listed[i-1].StartTime),
			"reminders must be ordered by start time ascending")
	}
}

func TestReminderService_UpdateReminder(t *testing.T) {
	service, _, _ := newTestService(t)

	created, err := service.CreateReminder(CreateReminderParams{
		OwnerID:   "1",
		Title:     "Doctor",
		StartTime: "2024-01-10T09:00:00Z",
	})
	require.NoError(t, err)

	t.Run("updating title leaves start time unchanged", func(t *testing.T) {
		newTitle := "X"
		updated, err := service.UpdateReminder(created.ID, UpdateReminderParams{Title: &newTitle})
		require.NoError(t, err)
		assert.Equal(t, "X", updated.Title)
		assert.True(t, updated.StartTime.Equal(created.StartTime))
	})

	t.Run("updating start time leaves title unchanged", func(t *testing.T) {
		newStart := "2024-02-01T12:00:00Z"
		updated, err := service.UpdateReminder(created.ID, UpdateReminderParams{StartTime: &newStart})
		require.NoError(t, err)
		assert.Equal(t, "X", updated.Title)

		expected, _ := time.Parse(time.RFC3339, newStart)
		assert.True(t, updated.StartTime.Equal(expected))
	})

	t.Run("empty update returns the current row", func(t *testing.T) {
		current, err := service.UpdateReminder(created.ID, UpdateReminderParams{})
		require.NoError(t, err)
		assert.Equal(t, created.ID, current.ID)
	})

	t.Run("invalid start time fails validation", func(t *testing.T) {
		bad := "not-a-time"
		_, err := service.UpdateReminder(created.ID, UpdateReminderParams{StartTime: &bad})
		require.Error(t, err)
		assert.True(t, common.IsValidationError(err))
	})

	t.Run("unknown id is a not found error", func(t *testing.T) {
		title := "X"
		_, err := service.UpdateReminder("nonexistent-id", UpdateReminderParams{Title: &title})
		require.Error(t, err)
		assert.True(t, common.IsNotFoundError(err))
	})
}

func TestReminderService_DeleteReminder(t *testing.T) {
	service, _, _ := newTestService(t)

	created, err := service.CreateReminder(CreateReminderParams{
		OwnerID:   "1",
		Title:     "Doctor",
		StartTime: "2024-01-10T09:00:00Z",
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteReminder(created.ID))

	listed, err := service.GetReminders("1", "", "")
	require.NoError(t, err)
	for _, r := range listed {
		assert.NotEqual(t, created.ID, r.ID, "deleted reminder must not be listed")
	}

	t.Run("deleting twice is a not found error", func(t *testing.T) {
		err := service.DeleteReminder(created.ID)
		require.Error(t, err)
		assert.True(t, common.IsNotFoundError(err))
	})
}
