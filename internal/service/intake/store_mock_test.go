package intake

import (
	"context"
	"sync"

	"github.com/heartmarshall/intakelog/internal/domain"
)

// recordStoreMock is a mock implementation of recordStore.
type recordStoreMock struct {
	InsertFunc     func(ctx context.Context, amount float64, drinkType *string) (*domain.IntakeRecord, error)
	ListAllFunc    func(ctx context.Context) ([]domain.IntakeRecord, error)
	ListByDateFunc func(ctx context.Context, date string) ([]domain.IntakeRecord, error)
	ClearAllFunc   func(ctx context.Context) (int, error)

	calls struct {
		Insert []struct {
			Ctx       context.Context
			Amount    float64
			DrinkType *string
		}
		ListAll []struct {
			Ctx context.Context
		}
		ListByDate []struct {
			Ctx  context.Context
			Date string
		}
		ClearAll []struct {
			Ctx context.Context
		}
	}
	lockInsert     sync.RWMutex
	lockListAll    sync.RWMutex
	lockListByDate sync.RWMutex
	lockClearAll   sync.RWMutex
}

// Insert calls InsertFunc.
func (mock *recordStoreMock) Insert(ctx context.Context, amount float64, drinkType *string) (*domain.IntakeRecord, error) {
	if mock.InsertFunc == nil {
		panic("recordStoreMock.InsertFunc: method is nil but recordStore.Insert was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		Amount    float64
		DrinkType *string
	}{Ctx: ctx, Amount: amount, DrinkType: drinkType}
	mock.lockInsert.Lock()
	mock.calls.Insert = append(mock.calls.Insert, callInfo)
	mock.lockInsert.Unlock()
	return mock.InsertFunc(ctx, amount, drinkType)
}

// InsertCalls gets all the calls that were made to Insert.
func (mock *recordStoreMock) InsertCalls() []struct {
	Ctx       context.Context
	Amount    float64
	DrinkType *string
} {
	mock.lockInsert.RLock()
	defer mock.lockInsert.RUnlock()
	return mock.calls.Insert
}

// ListAll calls ListAllFunc.
func (mock *recordStoreMock) ListAll(ctx context.Context) ([]domain.IntakeRecord, error) {
	if mock.ListAllFunc == nil {
		panic("recordStoreMock.ListAllFunc: method is nil but recordStore.ListAll was just called")
	}
	mock.lockListAll.Lock()
	mock.calls.ListAll = append(mock.calls.ListAll, struct{ Ctx context.Context }{Ctx: ctx})
	mock.lockListAll.Unlock()
	return mock.ListAllFunc(ctx)
}

// ListAllCalls gets all the calls that were made to ListAll.
func (mock *recordStoreMock) ListAllCalls() []struct{ Ctx context.Context } {
	mock.lockListAll.RLock()
	defer mock.lockListAll.RUnlock()
	return mock.calls.ListAll
}

// ListByDate calls ListByDateFunc.
func (mock *recordStoreMock) ListByDate(ctx context.Context, date string) ([]domain.IntakeRecord, error) {
	if mock.ListByDateFunc == nil {
		panic("recordStoreMock.ListByDateFunc: method is nil but recordStore.ListByDate was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Date string
	}{Ctx: ctx, Date: date}
	mock.lockListByDate.Lock()
	mock.calls.ListByDate = append(mock.calls.ListByDate, callInfo)
	mock.lockListByDate.Unlock()
	return mock.ListByDateFunc(ctx, date)
}

// ListByDateCalls gets all the calls that were made to ListByDate.
func (mock *recordStoreMock) ListByDateCalls() []struct {
	Ctx  context.Context
	Date string
} {
	mock.lockListByDate.RLock()
	defer mock.lockListByDate.RUnlock()
	return mock.calls.ListByDate
}

// ClearAll calls ClearAllFunc.
func (mock *recordStoreMock) ClearAll(ctx context.Context) (int, error) {
	if mock.ClearAllFunc == nil {
		panic("recordStoreMock.ClearAllFunc: method is nil but recordStore.ClearAll was just called")
	}
	mock.lockClearAll.Lock()
	mock.calls.ClearAll = append(mock.calls.ClearAll, struct{ Ctx context.Context }{Ctx: ctx})
	mock.lockClearAll.Unlock()
	return mock.ClearAllFunc(ctx)
}

// ClearAllCalls gets all the calls that were made to ClearAll.
func (mock *recordStoreMock) ClearAllCalls() []struct{ Ctx context.Context } {
	mock.lockClearAll.RLock()
	defer mock.lockClearAll.RUnlock()
	return mock.calls.ClearAll
}
