package intake

import (
	"context"
	"fmt"

	"github.com/heartmarshall/intakelog/internal/domain"
)

// History returns the logged records in insertion order, optionally
// restricted to one date.
func (s *Service) History(ctx context.Context, input HistoryInput) ([]domain.IntakeRecord, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.Date == "" {
		records, err := s.store.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("list intake: %w", err)
		}
		return records, nil
	}

	records, err := s.store.ListByDate(ctx, input.Date)
	if err != nil {
		return nil, fmt.Errorf("list intake by date: %w", err)
	}
	return records, nil
}

// TotalForDate sums the amounts logged on date. An empty date means today
// in the configured zone.
func (s *Service) TotalForDate(ctx context.Context, date string) (domain.DailyTotal, error) {
	if date == "" {
		date = s.today()
	}

	records, err := s.History(ctx, HistoryInput{Date: date})
	if err != nil {
		return domain.DailyTotal{}, err
	}

	return domain.TotalOf(date, records), nil
}
