package reminder

import (
	"testing"
	"time"

	"carecalendar-api/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database with the calendar
// schema migrated, so the repository is exercised against real SQL.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, RunMigrations(db))
	return db
}

func newTestReminder(ownerID common.UserID, title string, startTime time.Time) *Reminder {
	return &Reminder{
		ID:        common.ReminderID(common.NewID()),
		OwnerID:   ownerID,
		Title:     title,
		StartTime: startTime,
	}
}

func TestGormReminderRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReminderRepository(db, zaptest.NewLogger(t))

	startTime := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	created := newTestReminder("1", "Doctor", startTime)

	require.NoError(t, repo.Create(created))

	fetched, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, common.UserID("1"), fetched.OwnerID)
	assert.Equal(t, "Doctor", fetched.Title)
	assert.True(t, fetched.StartTime.Equal(startTime))
}

func TestGormReminderRepository_Create_Validation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReminderRepository(db, zaptest.NewLogger(t))

	tests := []struct {
		name     string
		reminder *Reminder
	}{
		{
			name:     "missing owner",
			reminder: &Reminder{ID: common.ReminderID(common.NewID()), Title: "x", StartTime: time.Now()},
		},
		{
			name:     "missing title",
			reminder: &Reminder{ID: common.ReminderID(common.NewID()), OwnerID: "1", StartTime: time.Now()},
		},
		{
			name:     "missing start time",
			reminder: &Reminder{ID: common.ReminderID(common.NewID()), OwnerID: "1", Title: "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(tt.reminder)
			require.Error(t, err)
			assert.True(t, common.IsValidationError(err))
		})
	}
}

func TestGormReminderRepository_GetByOwner_WindowAndOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReminderRepository(db, zaptest.NewLogger(t))

	times := []time.Time{
		time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC),
	}
	for _, ts := range times {
		require.NoError(t, repo.Create(newTestReminder("1", "Walk", ts)))
	}
	require.NoError(t, repo.Create(newTestReminder("2", "Other owner", times[0])))

	t.Run("inclusive window", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

		listed, err := repo.GetByOwner("1", ReminderFilter{StartDate: &start, EndDate: &end})
		require.NoError(t, err)
		require.Len(t, listed, 3)

		// Both bounds are included and results come back sorted
		assert.True(t, listed[0].StartTime.Equal(start))
		assert.True(t, listed[2].StartTime.Equal(end))
		for i := 1; i < len(listed); i++ {
			assert.False(t, listed[i].StartTime.Before(listed[i-1].StartTime))
		}
	})

	t.Run("no filter returns all rows for owner", func(t *testing.T) {
		listed, err := repo.GetByOwner("1", ReminderFilter{})
		require.NoError(t, err)
		assert.Len(t, listed, 4)
	})

	t.Run("equal start times break ties by id", func(t *testing.T) {
		ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		require.NoError(t, repo.Create(newTestReminder("3", "A", ts)))
		require.NoError(t, repo.Create(newTestReminder("3", "B", ts)))

		first, err := repo.GetByOwner("3", ReminderFilter{})
		require.NoError(t, err)
		second, err := repo.GetByOwner("3", ReminderFilter{})
		require.NoError(t, err)

		require.Len(t, first, 2)
		assert.Equal(t, first[0].ID, second[0].ID, "ordering must be deterministic")
		assert.True(t, first[0].ID < first[1].ID)
	})
}

func TestGormReminderRepository_UpdateFields(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReminderRepository(db, zaptest.NewLogger(t))

	startTime := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	created := newTestReminder("1", "Doctor", startTime)
	require.NoError(t, repo.Create(created))

	err := repo.UpdateFields(created.ID, map[string]interface{}{"title": "Dentist"})
	require.NoError(t, err)

	fetched, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dentist", fetched.Title)
	assert.True(t, fetched.StartTime.Equal(startTime), "unrelated fields must be untouched")

	t.Run("unknown id", func(t *testing.T) {
		err := repo.UpdateFields("nonexistent-id", map[string]interface{}{"title": "X"})
		require.Error(t, err)
		assert.True(t, common.IsNotFoundError(err))
	})
}

func TestGormReminderRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReminderRepository(db, zaptest.NewLogger(t))

	created := newTestReminder("1", "Doctor", time.Now().UTC())
	require.NoError(t, repo.Create(created))

	require.NoError(t, repo.Delete(created.ID))

	_, err := repo.GetByID(created.ID)
	require.Error(t, err)
	assert.True(t, common.IsNotFoundError(err))

	err = repo.Delete(created.ID)
	require.Error(t, err)
	assert.True(t, common.IsNotFoundError(err))
}
