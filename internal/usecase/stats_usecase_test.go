package usecase

import (
	"context"
	"testing"
	"time"

	"jayam-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMonthlyStats_Aggregation(t *testing.T) {
	orders := []domain.Order{
		{
			ID:          "a",
			TotalAmount: 250,
			Products: []domain.OrderItem{
				{ProductID: "p1", Name: "Rotavator", Price: 100, Quantity: 2},
				{ProductID: "p2", Name: "Sprayer", Price: 50, Quantity: 1},
			},
		},
		{
			ID:          "b",
			TotalAmount: 50,
			Products: []domain.OrderItem{
				{ProductID: "p2", Name: "Sprayer", Price: 50, Quantity: 1},
			},
		},
	}
	repo := &fakeOrderRepo{
		GetDeliveredInRangeFunc: func(ctx context.Context, start, end time.Time) ([]domain.Order, error) {
			return orders, nil
		},
	}

	uc := NewStatsUsecase(repo, &fakeProductRepo{}, newFakeCache(), time.Minute)
	stats, err := uc.GetMonthlyStats(context.Background(), 6, 2026)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalDeliveredOrders)
	assert.Equal(t, 300.0, stats.TotalRevenue)

	require.Len(t, stats.MonthlySales, 2)
	// Sorted by quantity desc
	assert.Equal(t, "Rotavator", stats.MonthlySales[0].Name)
	assert.Equal(t, 2, stats.MonthlySales[0].Quantity)
	assert.Equal(t, 200.0, stats.MonthlySales[0].Revenue)
	assert.Equal(t, "Sprayer", stats.MonthlySales[1].Name)
	assert.Equal(t, 2, stats.MonthlySales[1].Quantity)
	assert.Equal(t, 100.0, stats.MonthlySales[1].Revenue)
}

func TestGetMonthlyStats_CalendarBounds(t *testing.T) {
	var gotStart, gotEnd time.Time
	repo := &fakeOrderRepo{
		GetDeliveredInRangeFunc: func(ctx context.Context, start, end time.Time) ([]domain.Order, error) {
			gotStart, gotEnd = start, end
			return nil, nil
		},
	}

	uc := NewStatsUsecase(repo, &fakeProductRepo{}, newFakeCache(), time.Minute)
	_, err := uc.GetMonthlyStats(context.Background(), 12, 2026)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), gotStart)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), gotEnd)
}

func TestGetMonthlyStats_LegacySnapshotFallback(t *testing.T) {
	orders := []domain.Order{
		{
			ID:          "a",
			TotalAmount: 200,
			Products:    []domain.OrderItem{{ProductID: "p1", Quantity: 2}}, // pre-snapshot order
		},
	}
	repo := &fakeOrderRepo{
		GetDeliveredInRangeFunc: func(ctx context.Context, start, end time.Time) ([]domain.Order, error) {
			return orders, nil
		},
	}
	products := &fakeProductRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Product, error) {
			return &domain.Product{ID: id, Name: "Live Tiller", Price: 100}, nil
		},
	}

	uc := NewStatsUsecase(repo, products, newFakeCache(), time.Minute)
	stats, err := uc.GetMonthlyStats(context.Background(), 3, 2026)
	require.NoError(t, err)

	require.Len(t, stats.MonthlySales, 1)
	assert.Equal(t, "Live Tiller", stats.MonthlySales[0].Name)
	assert.Equal(t, 200.0, stats.MonthlySales[0].Revenue)
}

func TestGetMonthlyStats_RevenueMatchesBreakdown(t *testing.T) {
	// A pre-snapshot order whose stored total disagrees with the
	// fallback price. The headline must still equal the sum of rows.
	orders := []domain.Order{
		{
			ID:          "a",
			TotalAmount: 500,
			Products:    []domain.OrderItem{{ProductID: "p1", Quantity: 2}},
		},
	}
	repo := &fakeOrderRepo{
		GetDeliveredInRangeFunc: func(ctx context.Context, start, end time.Time) ([]domain.Order, error) {
			return orders, nil
		},
	}
	products := &fakeProductRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Product, error) {
			return &domain.Product{ID: id, Name: "Live Tiller", Price: 100}, nil
		},
	}

	uc := NewStatsUsecase(repo, products, newFakeCache(), time.Minute)
	stats, err := uc.GetMonthlyStats(context.Background(), 3, 2026)
	require.NoError(t, err)

	require.Len(t, stats.MonthlySales, 1)
	assert.Equal(t, 200.0, stats.MonthlySales[0].Revenue)
	assert.Equal(t, 200.0, stats.TotalRevenue)
}

func TestGetMonthlyStats_Cached(t *testing.T) {
	calls := 0
	repo := &fakeOrderRepo{
		GetDeliveredInRangeFunc: func(ctx context.Context, start, end time.Time) ([]domain.Order, error) {
			calls++
			return nil, nil
		},
	}

	uc := NewStatsUsecase(repo, &fakeProductRepo{}, newFakeCache(), time.Minute)
	_, err := uc.GetMonthlyStats(context.Background(), 5, 2026)
	require.NoError(t, err)
	_, err = uc.GetMonthlyStats(context.Background(), 5, 2026)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}

func TestGetMonthlyStats_Validation(t *testing.T) {
	uc := NewStatsUsecase(&fakeOrderRepo{}, &fakeProductRepo{}, newFakeCache(), time.Minute)

	var ve *domain.ValidationError
	_, err := uc.GetMonthlyStats(context.Background(), 0, 2026)
	require.ErrorAs(t, err, &ve)
	_, err = uc.GetMonthlyStats(context.Background(), 13, 2026)
	require.ErrorAs(t, err, &ve)
	_, err = uc.GetMonthlyStats(context.Background(), 6, 1870)
	require.ErrorAs(t, err, &ve)
}
