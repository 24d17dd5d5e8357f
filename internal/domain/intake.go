package domain

import (
	"fmt"
	"time"
)

// Layouts used for the derived date and time-of-day fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "03:04 PM"
)

// IntakeRecord is one logged beverage event. Records are immutable once stored.
type IntakeRecord struct {
	ID        int64
	Date      string
	Time      string
	Amount    float64
	DrinkType *string
}

// NewIntakeRecord builds an unsaved record stamped with the given instant.
// The ID is left zero; the storage engine assigns it.
func NewIntakeRecord(now time.Time, amount float64, drinkType *string) IntakeRecord {
	return IntakeRecord{
		Date:      FormatDate(now),
		Time:      FormatTime(now),
		Amount:    amount,
		DrinkType: drinkType,
	}
}

// DailyTotal aggregates the records logged on one calendar date.
type DailyTotal struct {
	Date   string
	Amount float64
	Count  int
}

// FormatDate renders t as an ISO 8601 calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatTime renders t as a 12-hour clock time with an AM/PM marker.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// ParseDate validates an ISO 8601 calendar date and returns it unchanged.
func ParseDate(s string) (string, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", fmt.Errorf("parse date %q: %w", s, err)
	}
	return s, nil
}

// TotalOf sums the amounts of records that fall on the given date.
func TotalOf(date string, records []IntakeRecord) DailyTotal {
	total := DailyTotal{Date: date}
	for _, r := range records {
		if r.Date != date {
			continue
		}
		total.Amount += r.Amount
		total.Count++
	}
	return total
}
