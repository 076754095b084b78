package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Status is the derived lifecycle label of a task at a given instant.
// It is recomputed from the completion flag and the deadline on every
// read; the persisted status column is only a denormalized hint.
type Status string

const (
	StatusPending Status = "pending"
	StatusLate    Status = "late"
	StatusDone    Status = "done"
)

// Department is the staff group a checklist task belongs to.
type Department string

const (
	DepartmentKitchen Department = "kitchen"
	DepartmentService Department = "service"
)

func (d Department) Valid() bool {
	return d == DepartmentKitchen || d == DepartmentService
}

// Task represents one recurring checklist item.
type Task struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Department      Department `json:"department"`
	Deadline        *DayTime   `json:"deadline,omitempty"`
	Status          Status     `json:"status"`
	IsCompleted     bool       `json:"is_completed"`
	CompletedBy     string     `json:"completed_by,omitempty"`
	CompletedByName string     `json:"completed_by_name,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	ProofImage      string     `json:"proof_image,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Refresh recomputes the derived status against the given wall-clock time.
func (t *Task) Refresh(now time.Time) {
	if t == nil {
		return
	}
	t.Status = DeriveStatus(t.IsCompleted, t.Deadline, now)
}

// DeriveStatus maps the persisted completion state and the optional
// daily deadline to a status. Completion always wins, even past the
// deadline. A task whose deadline equals the current minute is still
// pending; only strictly later clock times are late.
func DeriveStatus(isCompleted bool, deadline *DayTime, now time.Time) Status {
	if isCompleted {
		return StatusDone
	}
	if deadline == nil {
		return StatusPending
	}
	if minutesOfDay(now) > deadline.Minutes() {
		return StatusLate
	}
	return StatusPending
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// DayTime is a time of day with minute precision and no date component.
// Deadlines are interpreted against the current day on every read.
type DayTime struct {
	Hour   int
	Minute int
}

// ParseDayTime parses a 24h "HH:MM" string.
func ParseDayTime(s string) (DayTime, error) {
	var dt DayTime
	if len(s) != 5 || s[2] != ':' {
		return dt, WrapError(ErrCodeInvalid, "deadline must be HH:MM", fmt.Errorf("got %q", s))
	}
	hour, errH := strconv.Atoi(s[:2])
	minute, errM := strconv.Atoi(s[3:])
	if errH != nil || errM != nil {
		return dt, NewError(ErrCodeInvalid, fmt.Sprintf("deadline %q is not numeric", s))
	}
	dt.Hour, dt.Minute = hour, minute
	if dt.Hour < 0 || dt.Hour > 23 || dt.Minute < 0 || dt.Minute > 59 {
		return dt, NewError(ErrCodeInvalid, fmt.Sprintf("deadline %q out of range", s))
	}
	return dt, nil
}

// Minutes returns the offset from local midnight.
func (d DayTime) Minutes() int {
	return d.Hour*60 + d.Minute
}

func (d DayTime) String() string {
	return fmt.Sprintf("%02d:%02d", d.Hour, d.Minute)
}

func (d DayTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *DayTime) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return NewError(ErrCodeInvalid, "deadline must be a string")
	}
	parsed, err := ParseDayTime(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
