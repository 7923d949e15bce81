package models

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"
)

type RecurringFrequency string

const (
	RecurringWeekly   RecurringFrequency = "weekly"
	RecurringBiweekly RecurringFrequency = "biweekly"
	RecurringMonthly  RecurringFrequency = "monthly"
)

func RecurringFrequencyFrom(s string) (RecurringFrequency, error) {
	switch RecurringFrequency(s) {
	case RecurringWeekly, RecurringBiweekly, RecurringMonthly:
		return RecurringFrequency(s), nil
	}
	return "", errors.Wrapf(BadParameterError, "unknown recurring frequency %q", s)
}

// RecurringTransferSchedule describes a provider-side recurring transfer.
// Individual occurrences are not modeled locally; they are fetched from the
// provider when queried.
type RecurringTransferSchedule struct {
	Frequency   RecurringFrequency
	StartDate   time.Time
	EndDate     null.Time
	DayOfWeek   null.Int32 // weekly/biweekly: 0 (Sunday) through 6
	DayOfMonth  null.Int32 // monthly: 1 through 28
	Description string
}

func (s RecurringTransferSchedule) Validate() error {
	switch s.Frequency {
	case RecurringWeekly, RecurringBiweekly:
		if !s.DayOfWeek.Valid {
			return errors.Wrap(BadParameterError, "day_of_week is required for weekly and biweekly schedules")
		}
		if s.DayOfWeek.Int32 < 0 || s.DayOfWeek.Int32 > 6 {
			return errors.Wrap(BadParameterError, "day_of_week must be between 0 and 6")
		}
	case RecurringMonthly:
		if !s.DayOfMonth.Valid {
			return errors.Wrap(BadParameterError, "day_of_month is required for monthly schedules")
		}
		if s.DayOfMonth.Int32 < 1 || s.DayOfMonth.Int32 > 28 {
			return errors.Wrap(BadParameterError, "day_of_month must be between 1 and 28")
		}
	default:
		return errors.Wrapf(BadParameterError, "unknown recurring frequency %q", s.Frequency)
	}
	if s.EndDate.Valid && !s.EndDate.Time.After(s.StartDate) {
		return errors.Wrap(BadParameterError, "end_date must be after start_date")
	}
	return nil
}

// RecurringTransferHandle is the provider's acknowledgement of a schedule.
type RecurringTransferHandle struct {
	RecurringTransferId string
	Schedule            RecurringTransferSchedule
}

type RecurringTransferIntent struct {
	AccessRef    string
	AccountRef   string
	AmountCents  int64
	Counterparty CounterpartyIdentity
	Schedule     RecurringTransferSchedule
	ContractId   string
	MerchantId   null.String
	OriginatorId null.String
}

// RecurringResult mirrors PaymentResult for schedule creation.
type RecurringResult struct {
	Success             bool
	RecurringTransferId string
	Message             string
}
