package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/intakelog/internal/domain"
	"github.com/heartmarshall/intakelog/internal/service/intake"
)

// intakeServiceMock is a mock implementation of intakeService.
type intakeServiceMock struct {
	AddFunc          func(ctx context.Context, input intake.AddInput) (*domain.IntakeRecord, error)
	HistoryFunc      func(ctx context.Context, input intake.HistoryInput) ([]domain.IntakeRecord, error)
	ClearFunc        func(ctx context.Context) (int, error)
	TotalForDateFunc func(ctx context.Context, date string) (domain.DailyTotal, error)
	UnitFunc         func() string

	mu    sync.Mutex
	calls struct {
		Add          []intake.AddInput
		History      []intake.HistoryInput
		Clear        int
		TotalForDate []string
	}
}

func (mock *intakeServiceMock) Add(ctx context.Context, input intake.AddInput) (*domain.IntakeRecord, error) {
	if mock.AddFunc == nil {
		panic("intakeServiceMock.AddFunc: method is nil but intakeService.Add was just called")
	}
	mock.mu.Lock()
	mock.calls.Add = append(mock.calls.Add, input)
	mock.mu.Unlock()
	return mock.AddFunc(ctx, input)
}

// AddCalls gets all the calls that were made to Add.
func (mock *intakeServiceMock) AddCalls() []intake.AddInput {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	return mock.calls.Add
}

func (mock *intakeServiceMock) History(ctx context.Context, input intake.HistoryInput) ([]domain.IntakeRecord, error) {
	if mock.HistoryFunc == nil {
		panic("intakeServiceMock.HistoryFunc: method is nil but intakeService.History was just called")
	}
	mock.mu.Lock()
	mock.calls.History = append(mock.calls.History, input)
	mock.mu.Unlock()
	return mock.HistoryFunc(ctx, input)
}

// HistoryCalls gets all the calls that were made to History.
func (mock *intakeServiceMock) HistoryCalls() []intake.HistoryInput {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	return mock.calls.History
}

func (mock *intakeServiceMock) Clear(ctx context.Context) (int, error) {
	if mock.ClearFunc == nil {
		panic("intakeServiceMock.ClearFunc: method is nil but intakeService.Clear was just called")
	}
	mock.mu.Lock()
	mock.calls.Clear++
	mock.mu.Unlock()
	return mock.ClearFunc(ctx)
}

func (mock *intakeServiceMock) TotalForDate(ctx context.Context, date string) (domain.DailyTotal, error) {
	if mock.TotalForDateFunc == nil {
		panic("intakeServiceMock.TotalForDateFunc: method is nil but intakeService.TotalForDate was just called")
	}
	mock.mu.Lock()
	mock.calls.TotalForDate = append(mock.calls.TotalForDate, date)
	mock.mu.Unlock()
	return mock.TotalForDateFunc(ctx, date)
}

// TotalForDateCalls gets all the calls that were made to TotalForDate.
func (mock *intakeServiceMock) TotalForDateCalls() []string {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	return mock.calls.TotalForDate
}

func (mock *intakeServiceMock) Unit() string {
	if mock.UnitFunc == nil {
		return "oz"
	}
	return mock.UnitFunc()
}
