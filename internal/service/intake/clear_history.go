package intake

import (
	"context"
	"fmt"
	"log/slog"
)

// Clear wipes the whole history and returns the number of removed records.
func (s *Service) Clear(ctx context.Context) (int, error) {
	deleted, err := s.store.ClearAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear intake: %w", err)
	}

	s.log.DebugContext(ctx, "intake history cleared", slog.Int("deleted_count", deleted))

	return deleted, nil
}
