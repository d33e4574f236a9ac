package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jayam-backend/internal/domain"
	"jayam-backend/internal/usecase"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrderRepo struct {
	orders map[string]*domain.Order
}

func (s *stubOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	s.orders[order.ID] = order
	return nil
}

func (s *stubOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if o, ok := s.orders[id]; ok {
		return o, nil
	}
	return nil, domain.NotFoundf("order %s not found", id)
}

func (s *stubOrderRepo) GetAll(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	out := []domain.Order{}
	for _, o := range s.orders {
		if filter.Email != "" && !strings.EqualFold(o.User.Email, filter.Email) {
			continue
		}
		if filter.ReturnRequestsOnly && o.ReturnRequest == nil {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (s *stubOrderRepo) Update(ctx context.Context, order *domain.Order) error {
	if _, ok := s.orders[order.ID]; !ok {
		return domain.NotFoundf("order %s not found", order.ID)
	}
	s.orders[order.ID] = order
	return nil
}

func (s *stubOrderRepo) GetDeliveredInRange(ctx context.Context, start, end time.Time) ([]domain.Order, error) {
	out := []domain.Order{}
	for _, o := range s.orders {
		if o.Status == domain.OrderStatusDelivered && !o.OrderDate.Before(start) && o.OrderDate.Before(end) {
			out = append(out, *o)
		}
	}
	return out, nil
}

type stubProductRepo struct {
	domain.ProductRepository
	products map[string]*domain.Product
}

func (s *stubProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, domain.NotFoundf("product %s not found", id)
}

type noopTx struct{}

func (noopTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func withUser(r *http.Request, user *domain.User) *http.Request {
	ctx := context.WithValue(r.Context(), domain.UserContextKey, user)
	return r.WithContext(ctx)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestCancelOrder_StatusCodes(t *testing.T) {
	delivered := time.Now().Add(-48 * time.Hour)
	repo := &stubOrderRepo{orders: map[string]*domain.Order{
		"fresh": {
			ID:        "fresh",
			User:      domain.OrderUser{Email: "raman@example.com"},
			Status:    domain.OrderStatusPending,
			OrderDate: time.Now().Add(-time.Hour),
		},
		"old": {
			ID:        "old",
			User:      domain.OrderUser{Email: "raman@example.com"},
			Status:    domain.OrderStatusPending,
			OrderDate: time.Now().Add(-30 * time.Hour),
		},
		"done": {
			ID:           "done",
			User:         domain.OrderUser{Email: "raman@example.com"},
			Status:       domain.OrderStatusDelivered,
			OrderDate:    time.Now().Add(-72 * time.Hour),
			DeliveryDate: &delivered,
		},
	}}
	uc := usecase.NewOrderUsecase(repo, &stubProductRepo{}, noopTx{})
	h := NewOrderHandler(uc)

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/v1/orders/{id}", h.CancelOrder)

	owner := &domain.User{ID: "u1", Email: "raman@example.com"}

	cases := []struct {
		name    string
		orderID string
		user    *domain.User
		want    int
	}{
		{"within window", "fresh", owner, http.StatusOK},
		{"past window", "old", owner, http.StatusBadRequest},
		{"not pending", "done", owner, http.StatusBadRequest},
		{"unknown order", "ghost", owner, http.StatusNotFound},
		{"foreign order", "fresh", &domain.User{ID: "u2", Email: "x@y.com"}, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Reset status mutated by prior subtests
			repo.orders["fresh"].Status = domain.OrderStatusPending

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/orders/"+tc.orderID, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, withUser(req, tc.user))
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestPlaceOrder_BadProductReturns400WithID(t *testing.T) {
	repo := &stubOrderRepo{orders: map[string]*domain.Order{}}
	products := &stubProductRepo{products: map[string]*domain.Product{
		"p1": {ID: "p1", Name: "Tiller", Price: 100},
	}}
	uc := usecase.NewOrderUsecase(repo, products, noopTx{})
	h := NewOrderHandler(uc)

	payload := `{"user":{"name":"Raman","email":"raman@example.com","address":"12 Farm Rd","phone":"987"},"products":[{"productId":"ghost","quantity":1}],"paymentMethod":"cod"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/place", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.PlaceOrder(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["error"], "ghost")
	assert.Empty(t, repo.orders)
}

func TestMonthlyStats_EndToEnd(t *testing.T) {
	may := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	repo := &stubOrderRepo{orders: map[string]*domain.Order{
		"a": {
			ID: "a", Status: domain.OrderStatusDelivered, OrderDate: may, TotalAmount: 250,
			Products: []domain.OrderItem{
				{ProductID: "p1", Name: "Rotavator", Price: 100, Quantity: 2},
				{ProductID: "p2", Name: "Sprayer", Price: 50, Quantity: 1},
			},
		},
		"b": {ID: "b", Status: domain.OrderStatusPending, OrderDate: may, TotalAmount: 999},
	}}
	uc := usecase.NewStatsUsecase(repo, &stubProductRepo{}, noopCache{}, time.Minute)
	h := NewAdminStatsHandler(uc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/statistics?month=5&year=2026", nil)
	rec := httptest.NewRecorder()
	h.GetMonthlyStats(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var stats usecase.MonthlyStats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
	assert.Equal(t, 1, stats.TotalDeliveredOrders)
	assert.Equal(t, 250.0, stats.TotalRevenue)
	require.Len(t, stats.MonthlySales, 2)
	assert.Equal(t, "Rotavator", stats.MonthlySales[0].Name)
}

func TestMonthlyStats_MissingParams(t *testing.T) {
	uc := usecase.NewStatsUsecase(&stubOrderRepo{orders: map[string]*domain.Order{}}, &stubProductRepo{}, noopCache{}, time.Minute)
	h := NewAdminStatsHandler(uc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/statistics?month=5", nil)
	rec := httptest.NewRecorder()
	h.GetMonthlyStats(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMonthlyStats_InvalidMonth(t *testing.T) {
	uc := usecase.NewStatsUsecase(&stubOrderRepo{orders: map[string]*domain.Order{}}, &stubProductRepo{}, noopCache{}, time.Minute)
	h := NewAdminStatsHandler(uc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/statistics?month=13&year=2026", nil)
	rec := httptest.NewRecorder()
	h.GetMonthlyStats(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// noopCache never stores anything.
type noopCache struct{}

func (noopCache) Get(key string) (interface{}, bool)                 { return nil, false }
func (noopCache) Set(key string, value interface{}, d time.Duration) {}
func (noopCache) Delete(key string)                                  {}
func (noopCache) Flush()                                             {}
