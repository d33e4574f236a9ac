package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"jayam-backend/internal/domain"
	"jayam-backend/pkg/cache"
)

// ProductSales is one row of the monthly breakdown.
type ProductSales struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// MonthlyStats aggregates delivered orders for one calendar month.
type MonthlyStats struct {
	Month                int            `json:"month"`
	Year                 int            `json:"year"`
	TotalDeliveredOrders int            `json:"totalDeliveredOrders"`
	TotalRevenue         float64        `json:"totalRevenue"`
	MonthlySales         []ProductSales `json:"monthlySales"`
}

type StatsUsecase struct {
	orderRepo   domain.OrderRepository
	productRepo domain.ProductRepository
	cache       cache.CacheService
	cacheTTL    time.Duration
}

func NewStatsUsecase(orderRepo domain.OrderRepository, productRepo domain.ProductRepository, cache cache.CacheService, cacheTTL time.Duration) *StatsUsecase {
	return &StatsUsecase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

// GetMonthlyStats computes the delivered-order aggregate for the given
// calendar month. Orders are bucketed by order date; products are keyed
// by the name snapshotted at checkout so renamed or deleted catalog rows
// do not rewrite history.
func (uc *StatsUsecase) GetMonthlyStats(ctx context.Context, month, year int) (*MonthlyStats, error) {
	if month < 1 || month > 12 {
		return nil, domain.Validationf("month must be between 1 and 12")
	}
	if year < 2000 || year > 2100 {
		return nil, domain.Validationf("invalid year: %d", year)
	}

	cacheKey := fmt.Sprintf("stats:monthly:%04d-%02d", year, month)
	if val, found := uc.cache.Get(cacheKey); found {
		return val.(*MonthlyStats), nil
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	orders, err := uc.orderRepo.GetDeliveredInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	stats := &MonthlyStats{
		Month:        month,
		Year:         year,
		MonthlySales: []ProductSales{},
	}

	perProduct := map[string]*ProductSales{}
	for _, order := range orders {
		stats.TotalDeliveredOrders++

		for _, item := range order.Products {
			name, price := item.Name, item.Price
			if name == "" || price == 0 {
				// Orders placed before snapshots carried name/price.
				// Fall back to the live catalog row when it still exists.
				if product, perr := uc.productRepo.GetByID(ctx, item.ProductID); perr == nil {
					if name == "" {
						name = product.Name
					}
					if price == 0 {
						price = product.Price
					}
				}
			}
			if name == "" {
				name = item.ProductID
			}

			row, ok := perProduct[name]
			if !ok {
				row = &ProductSales{Name: name}
				perProduct[name] = row
			}
			// Total revenue sums the same per-item values as the
			// breakdown so the rows always add up to the headline.
			lineTotal := price * float64(item.Quantity)
			stats.TotalRevenue += lineTotal

			row.Quantity += item.Quantity
			row.Revenue += lineTotal
		}
	}

	for _, row := range perProduct {
		stats.MonthlySales = append(stats.MonthlySales, *row)
	}
	sort.Slice(stats.MonthlySales, func(i, j int) bool {
		a, b := stats.MonthlySales[i], stats.MonthlySales[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		return a.Name < b.Name
	})

	uc.cache.Set(cacheKey, stats, uc.cacheTTL)
	return stats, nil
}
