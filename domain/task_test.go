package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftcheck/backend/domain"
)

func at(hour, minute int) time.Time {
	loc := time.FixedZone("", 7*3600)
	return time.Date(2026, 8, 29, hour, minute, 0, 0, loc)
}

func deadline(hour, minute int) *domain.DayTime {
	return &domain.DayTime{Hour: hour, Minute: minute}
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name        string
		isCompleted bool
		deadline    *domain.DayTime
		now         time.Time
		want        domain.Status
	}{
		{"completed before deadline", true, deadline(10, 0), at(9, 0), domain.StatusDone},
		{"completed past deadline stays done", true, deadline(10, 0), at(12, 0), domain.StatusDone},
		{"completed without deadline", true, nil, at(12, 0), domain.StatusDone},
		{"open without deadline never late", false, nil, at(23, 59), domain.StatusPending},
		{"open before deadline", false, deadline(10, 0), at(9, 59), domain.StatusPending},
		{"open exactly at deadline", false, deadline(10, 0), at(10, 0), domain.StatusPending},
		{"open one minute past deadline", false, deadline(10, 0), at(10, 1), domain.StatusLate},
		{"open hours past deadline", false, deadline(10, 0), at(18, 30), domain.StatusLate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DeriveStatus(tt.isCompleted, tt.deadline, tt.now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveStatusIgnoresSeconds(t *testing.T) {
	loc := time.FixedZone("", 7*3600)
	now := time.Date(2026, 8, 29, 10, 0, 59, 0, loc)
	got := domain.DeriveStatus(false, deadline(10, 0), now)
	assert.Equal(t, domain.StatusPending, got, "same minute is not past the deadline")
}

func TestTaskRefresh(t *testing.T) {
	task := &domain.Task{
		Title:    "Check fridge temperature",
		Deadline: deadline(9, 0),
		Status:   domain.StatusPending,
	}

	task.Refresh(at(9, 30))
	assert.Equal(t, domain.StatusLate, task.Status)

	task.IsCompleted = true
	task.Refresh(at(9, 30))
	assert.Equal(t, domain.StatusDone, task.Status)

	task.IsCompleted = false
	task.Refresh(at(8, 59))
	assert.Equal(t, domain.StatusPending, task.Status)
}

func TestParseDayTime(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		dt, err := domain.ParseDayTime("09:30")
		require.NoError(t, err)
		assert.Equal(t, 9, dt.Hour)
		assert.Equal(t, 30, dt.Minute)
		assert.Equal(t, "09:30", dt.String())
	})

	t.Run("midnight and end of day", func(t *testing.T) {
		for _, s := range []string{"00:00", "23:59"} {
			_, err := domain.ParseDayTime(s)
			assert.NoError(t, err, s)
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, s := range []string{"", "9:30", "0930", "09-30", "24:00", "12:60", "ab:cd", "09:30:00"} {
			_, err := domain.ParseDayTime(s)
			require.Error(t, err, s)
			assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid), s)
		}
	})
}

func TestDayTimeJSON(t *testing.T) {
	task := domain.Task{Title: "Wipe tables", Deadline: deadline(10, 5)}

	raw, err := json.Marshal(task)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"deadline":"10:05"`)

	var decoded domain.Task
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.NotNil(t, decoded.Deadline)
	assert.Equal(t, 10, decoded.Deadline.Hour)
	assert.Equal(t, 5, decoded.Deadline.Minute)

	var bad domain.Task
	err = json.Unmarshal([]byte(`{"deadline":"25:00"}`), &bad)
	assert.Error(t, err)
}
