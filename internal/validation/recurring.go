package validation

import (
	"fmt"
	"time"

	"taskhive/internal/model"
)

// RecurringInput carries the schedule fields of a recurring task create or
// update, after static binding has already typed them.
type RecurringInput struct {
	Frequency   model.Frequency
	Interval    int
	DaysOfWeek  []int
	DayOfMonth  *int
	NextDueDate time.Time
	EndDate     *time.Time
}

// ValidateRecurring applies the calendar rules that binding tags cannot
// express: conditional requirements and the day-of-month bound against the
// month actually containing next_due_date.
func ValidateRecurring(in RecurringInput, op Operation, now time.Time) Errors {
	errs := Errors{}

	switch in.Frequency {
	case model.FreqDaily, model.FreqWeekly, model.FreqMonthly, model.FreqYearly:
	default:
		errs.Add("frequency", "The selected frequency is invalid.")
	}

	if in.Interval < 1 || in.Interval > 365 {
		errs.Add("interval", "The interval must be between 1 and 365.")
	}

	if in.Frequency == model.FreqWeekly {
		if len(in.DaysOfWeek) == 0 {
			errs.Add("days_of_week", "The days of week field is required when frequency is weekly.")
		}
		seen := make(map[int]bool, len(in.DaysOfWeek))
		for _, d := range in.DaysOfWeek {
			if d < 1 || d > 7 {
				errs.Add("days_of_week", "Each day of week must be between 1 and 7.")
				break
			}
			if seen[d] {
				errs.Add("days_of_week", "The days of week field has duplicate values.")
				break
			}
			seen[d] = true
		}
	}

	if in.Frequency == model.FreqMonthly {
		if in.DayOfMonth == nil {
			errs.Add("day_of_month", "The day of month field is required when frequency is monthly.")
		} else if *in.DayOfMonth < 1 || *in.DayOfMonth > 31 {
			errs.Add("day_of_month", "The day of month must be between 1 and 31.")
		} else if !in.NextDueDate.IsZero() {
			if max := daysInMonth(in.NextDueDate); *in.DayOfMonth > max {
				errs.Add("day_of_month", fmt.Sprintf("The day of month may not be greater than %d for the month of the next due date.", max))
			}
		}
	}

	if op == OpCreate && !in.NextDueDate.IsZero() {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if in.NextDueDate.Before(today) {
			errs.Add("next_due_date", "The next due date must be a date on or after today.")
		}
	}

	if in.EndDate != nil && !in.NextDueDate.IsZero() && !in.EndDate.After(in.NextDueDate) {
		errs.Add("end_date", "The end date must be after the next due date.")
	}

	return errs
}

func daysInMonth(t time.Time) int {
	// Day zero of the following month is the last day of t's month.
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
