package models

import (
	"testing"
	"time"

	"github.com/guregu/null/v5"
	"github.com/stretchr/testify/assert"
)

func TestRecurringTransferScheduleValidate(t *testing.T) {
	start := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	tts := []struct {
		name     string
		schedule RecurringTransferSchedule
		valid    bool
	}{
		{
			name: "weekly with day of week",
			schedule: RecurringTransferSchedule{
				Frequency: RecurringWeekly,
				StartDate: start,
				DayOfWeek: null.Int32From(1),
			},
			valid: true,
		},
		{
			name: "weekly without day of week",
			schedule: RecurringTransferSchedule{
				Frequency: RecurringWeekly,
				StartDate: start,
			},
			valid: false,
		},
		{
			name: "biweekly with out of range day of week",
			schedule: RecurringTransferSchedule{
				Frequency: RecurringBiweekly,
				StartDate: start,
				DayOfWeek: null.Int32From(7),
			},
			valid: false,
		},
		{
			name: "monthly with day of month",
			schedule: RecurringTransferSchedule{
				Frequency:  RecurringMonthly,
				StartDate:  start,
				DayOfMonth: null.Int32From(28),
			},
			valid: true,
		},
		{
			name: "monthly with day of month past 28",
			schedule: RecurringTransferSchedule{
				Frequency:  RecurringMonthly,
				StartDate:  start,
				DayOfMonth: null.Int32From(31),
			},
			valid: false,
		},
		{
			name: "unknown frequency",
			schedule: RecurringTransferSchedule{
				Frequency: RecurringFrequency("daily"),
				StartDate: start,
			},
			valid: false,
		},
		{
			name: "end date before start date",
			schedule: RecurringTransferSchedule{
				Frequency:  RecurringMonthly,
				StartDate:  start,
				DayOfMonth: null.Int32From(15),
				EndDate:    null.TimeFrom(start.AddDate(0, -1, 0)),
			},
			valid: false,
		},
		{
			name: "end date after start date",
			schedule: RecurringTransferSchedule{
				Frequency:  RecurringMonthly,
				StartDate:  start,
				DayOfMonth: null.Int32From(15),
				EndDate:    null.TimeFrom(start.AddDate(1, 0, 0)),
			},
			valid: true,
		},
	}

	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schedule.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, BadParameterError)
			}
		})
	}
}

func TestRecurringFrequencyFrom(t *testing.T) {
	frequency, err := RecurringFrequencyFrom("biweekly")
	assert.NoError(t, err)
	assert.Equal(t, RecurringBiweekly, frequency)

	_, err = RecurringFrequencyFrom("daily")
	assert.ErrorIs(t, err, BadParameterError)
}
