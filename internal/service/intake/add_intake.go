package intake

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/intakelog/internal/domain"
)

// Add validates the input and logs one drink. Invalid input never reaches
// the store.
func (s *Service) Add(ctx context.Context, input AddInput) (*domain.IntakeRecord, error) {
	if err := input.validate(s.rules.RequireDrinkType, s.rules.MaxAmount); err != nil {
		return nil, err
	}

	drinkType := s.drinkTypeOrDefault(input.DrinkType)

	rec, err := s.store.Insert(ctx, input.Amount, drinkType)
	if err != nil {
		return nil, fmt.Errorf("insert intake: %w", err)
	}

	attrs := []any{
		slog.Int64("record_id", rec.ID),
		slog.Float64("amount", rec.Amount),
	}
	if rec.DrinkType != nil {
		attrs = append(attrs, slog.String("drink_type", *rec.DrinkType))
	}
	s.log.DebugContext(ctx, "intake added", attrs...)

	return rec, nil
}

// drinkTypeOrDefault normalizes the label. Without one, the configured
// default applies; with no default the record stores NULL.
func (s *Service) drinkTypeOrDefault(drinkType *string) *string {
	if drinkType != nil {
		if normalized := domain.NormalizeDrinkType(*drinkType); normalized != "" {
			return &normalized
		}
	}
	if def := domain.NormalizeDrinkType(s.rules.DefaultDrinkType); def != "" {
		return &def
	}
	return nil
}
