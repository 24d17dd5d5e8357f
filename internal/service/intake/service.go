package intake

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/intakelog/internal/config"
	"github.com/heartmarshall/intakelog/internal/domain"
)

// MaxDrinkTypeLength bounds the stored drink label.
const MaxDrinkTypeLength = 64

type recordStore interface {
	Insert(ctx context.Context, amount float64, drinkType *string) (*domain.IntakeRecord, error)
	ListAll(ctx context.Context) ([]domain.IntakeRecord, error)
	ListByDate(ctx context.Context, date string) ([]domain.IntakeRecord, error)
	ClearAll(ctx context.Context) (int, error)
}

// Service runs the add-and-review workflow on top of the record store.
type Service struct {
	store recordStore
	log   *slog.Logger
	rules config.IntakeConfig
	now   func() time.Time
	loc   *time.Location
}

// NewService creates a new Intake service.
func NewService(
	log *slog.Logger,
	store recordStore,
	rules config.IntakeConfig,
) *Service {
	loc := rules.Location
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		store: store,
		log:   log.With("service", "intake"),
		rules: rules,
		now:   time.Now,
		loc:   loc,
	}
}

// Unit is the display unit for amounts.
func (s *Service) Unit() string {
	return s.rules.Unit
}

// today returns the current calendar date in the configured zone.
func (s *Service) today() string {
	return domain.FormatDate(s.now().In(s.loc))
}
