package validation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taskhive/internal/model"
	"taskhive/internal/validation"
)

var testNow = time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC)

func intPtr(n int) *int { return &n }

func TestValidateRecurring_Valid(t *testing.T) {
	in := validation.RecurringInput{
		Frequency:   model.FreqWeekly,
		Interval:    2,
		DaysOfWeek:  []int{1, 3, 5},
		NextDueDate: time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, validation.ValidateRecurring(in, validation.OpCreate, testNow).Empty())
}

func TestValidateRecurring_Frequency(t *testing.T) {
	in := validation.RecurringInput{Frequency: "hourly", Interval: 1}
	errs := validation.ValidateRecurring(in, validation.OpCreate, testNow)
	assert.Contains(t, errs, "frequency")
}

func TestValidateRecurring_IntervalBounds(t *testing.T) {
	in := validation.RecurringInput{Frequency: model.FreqDaily, Interval: 0}
	assert.Contains(t, validation.ValidateRecurring(in, validation.OpCreate, testNow), "interval")

	in.Interval = 366
	assert.Contains(t, validation.ValidateRecurring(in, validation.OpCreate, testNow), "interval")
}

func TestValidateRecurring_WeeklyDays(t *testing.T) {
	in := validation.RecurringInput{Frequency: model.FreqWeekly, Interval: 1}

	// Missing days for a weekly schedule.
	errs := validation.ValidateRecurring(in, validation.OpUpdate, testNow)
	assert.Contains(t, errs, "days_of_week")

	// Out of range.
	in.DaysOfWeek = []int{0, 3}
	errs = validation.ValidateRecurring(in, validation.OpUpdate, testNow)
	assert.Contains(t, errs, "days_of_week")

	// Duplicates.
	in.DaysOfWeek = []int{2, 2}
	errs = validation.ValidateRecurring(in, validation.OpUpdate, testNow)
	assert.Contains(t, errs, "days_of_week")
}

func TestValidateRecurring_MonthlyDayOfMonth(t *testing.T) {
	in := validation.RecurringInput{Frequency: model.FreqMonthly, Interval: 1}

	errs := validation.ValidateRecurring(in, validation.OpUpdate, testNow)
	assert.Contains(t, errs, "day_of_month")

	in.DayOfMonth = intPtr(32)
	errs = validation.ValidateRecurring(in, validation.OpUpdate, testNow)
	assert.Contains(t, errs, "day_of_month")
}

func TestValidateRecurring_DayOfMonthAgainstDueMonth(t *testing.T) {
	// Day 30 cannot occur in the month the next occurrence lands in (February).
	in := validation.RecurringInput{
		Frequency:   model.FreqMonthly,
		Interval:    1,
		DayOfMonth:  intPtr(30),
		NextDueDate: time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC),
	}
	errs := validation.ValidateRecurring(in, validation.OpUpdate, testNow)
	assert.Contains(t, errs, "day_of_month")

	// The same day is fine when the due month has 31 days.
	in.NextDueDate = time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	assert.True(t, validation.ValidateRecurring(in, validation.OpUpdate, testNow).Empty())

	// Leap-year February still caps at 29.
	in.DayOfMonth = intPtr(29)
	in.NextDueDate = time.Date(2028, time.February, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, validation.ValidateRecurring(in, validation.OpUpdate, testNow).Empty())
}

func TestValidateRecurring_NextDueDateNotPast(t *testing.T) {
	in := validation.RecurringInput{
		Frequency:   model.FreqDaily,
		Interval:    1,
		NextDueDate: testNow.AddDate(0, 0, -1),
	}

	// Rejected on create.
	errs := validation.ValidateRecurring(in, validation.OpCreate, testNow)
	assert.Contains(t, errs, "next_due_date")

	// Tolerated on update so stale schedules stay editable.
	assert.True(t, validation.ValidateRecurring(in, validation.OpUpdate, testNow).Empty())

	// Today itself is acceptable on create.
	in.NextDueDate = time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	assert.True(t, validation.ValidateRecurring(in, validation.OpCreate, testNow).Empty())
}

func TestValidateRecurring_EndDateAfterNextDue(t *testing.T) {
	end := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	in := validation.RecurringInput{
		Frequency:   model.FreqDaily,
		Interval:    1,
		NextDueDate: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     &end,
	}
	errs := validation.ValidateRecurring(in, validation.OpCreate, testNow)
	assert.Contains(t, errs, "end_date")

	later := end.AddDate(0, 1, 0)
	in.EndDate = &later
	assert.True(t, validation.ValidateRecurring(in, validation.OpCreate, testNow).Empty())
}
