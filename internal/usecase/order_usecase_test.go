package usecase

import (
	"context"
	"testing"
	"time"

	"jayam-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBuyer = domain.OrderUser{
	Name:    "Raman",
	Email:   "raman@example.com",
	Address: "12 Farm Road",
	Phone:   "9876543210",
}

func catalogWith(products map[string]domain.Product) *fakeProductRepo {
	return &fakeProductRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Product, error) {
			if p, ok := products[id]; ok {
				return &p, nil
			}
			return nil, domain.NotFoundf("product %s not found", id)
		},
	}
}

func TestPlaceOrder_SnapshotsAndTotals(t *testing.T) {
	products := map[string]domain.Product{
		"p1": {ID: "p1", Name: "Rotavator", Price: 45000},
		"p2": {ID: "p2", Name: "Sprayer", Price: 1500},
	}
	var created *domain.Order
	orderRepo := &fakeOrderRepo{
		CreateFunc: func(ctx context.Context, order *domain.Order) error {
			created = order
			return nil
		},
	}

	uc := NewOrderUsecase(orderRepo, catalogWith(products), fakeTxManager{})
	order, err := uc.PlaceOrder(context.Background(), testBuyer, []PlaceOrderItem{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 3},
	}, domain.PaymentMethodCOD)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, 45000.0+3*1500.0, order.TotalAmount)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, domain.PaymentStatusPending, order.PaymentStatus)
	require.Len(t, order.Products, 2)
	assert.Equal(t, "Rotavator", order.Products[0].Name)
	assert.Equal(t, 45000.0, order.Products[0].Price)
}

func TestPlaceOrder_NonCODIsPaid(t *testing.T) {
	products := map[string]domain.Product{"p1": {ID: "p1", Name: "Tiller", Price: 100}}
	uc := NewOrderUsecase(&fakeOrderRepo{}, catalogWith(products), fakeTxManager{})

	order, err := uc.PlaceOrder(context.Background(), testBuyer, []PlaceOrderItem{{ProductID: "p1", Quantity: 1}}, domain.PaymentMethodUPI)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, order.PaymentStatus)
}

func TestPlaceOrder_UnknownProductFailsWhole(t *testing.T) {
	products := map[string]domain.Product{"p1": {ID: "p1", Name: "Tiller", Price: 100}}
	createCalls := 0
	orderRepo := &fakeOrderRepo{
		CreateFunc: func(ctx context.Context, order *domain.Order) error {
			createCalls++
			return nil
		},
	}

	uc := NewOrderUsecase(orderRepo, catalogWith(products), fakeTxManager{})
	_, err := uc.PlaceOrder(context.Background(), testBuyer, []PlaceOrderItem{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "ghost", Quantity: 1},
	}, domain.PaymentMethodCOD)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Msg, "ghost", "error must name the offending product id")
	assert.Zero(t, createCalls, "nothing may be created on a failed order")
}

func TestPlaceOrder_Validation(t *testing.T) {
	uc := NewOrderUsecase(&fakeOrderRepo{}, &fakeProductRepo{}, fakeTxManager{})

	var ve *domain.ValidationError

	_, err := uc.PlaceOrder(context.Background(), domain.OrderUser{Name: "x"}, []PlaceOrderItem{{ProductID: "p1", Quantity: 1}}, domain.PaymentMethodCOD)
	require.ErrorAs(t, err, &ve)

	_, err = uc.PlaceOrder(context.Background(), testBuyer, nil, domain.PaymentMethodCOD)
	require.ErrorAs(t, err, &ve)

	_, err = uc.PlaceOrder(context.Background(), testBuyer, []PlaceOrderItem{{ProductID: "p1", Quantity: 1}}, domain.PaymentMethod("cheque"))
	require.ErrorAs(t, err, &ve)

	_, err = uc.PlaceOrder(context.Background(), testBuyer, []PlaceOrderItem{{ProductID: "p1", Quantity: 0}}, domain.PaymentMethodCOD)
	require.ErrorAs(t, err, &ve)
}

func repoWithOrder(order *domain.Order) (*fakeOrderRepo, *int) {
	updates := 0
	return &fakeOrderRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			if id == order.ID {
				return order, nil
			}
			return nil, domain.NotFoundf("order %s not found", id)
		},
		UpdateFunc: func(ctx context.Context, o *domain.Order) error {
			updates++
			return nil
		},
	}, &updates
}

func TestCancelOrder_OwnerWithinWindow(t *testing.T) {
	order := &domain.Order{
		ID:        "ord-1",
		User:      testBuyer,
		Status:    domain.OrderStatusPending,
		OrderDate: time.Now().Add(-time.Hour),
	}
	repo, updates := repoWithOrder(order)
	uc := NewOrderUsecase(repo, &fakeProductRepo{}, fakeTxManager{})

	got, err := uc.CancelOrder(context.Background(), "ord-1", "raman@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, got.Status)
	assert.Equal(t, 1, *updates)
}

func TestCancelOrder_NonOwnerGetsNotFound(t *testing.T) {
	order := &domain.Order{
		ID:        "ord-1",
		User:      testBuyer,
		Status:    domain.OrderStatusPending,
		OrderDate: time.Now(),
	}
	repo, updates := repoWithOrder(order)
	uc := NewOrderUsecase(repo, &fakeProductRepo{}, fakeTxManager{})

	_, err := uc.CancelOrder(context.Background(), "ord-1", "someone@else.com")
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Zero(t, *updates)
}

func TestSubmitReturn_OwnerEmailCaseInsensitive(t *testing.T) {
	delivered := time.Now().Add(-48 * time.Hour)
	order := &domain.Order{
		ID:           "ord-1",
		User:         testBuyer,
		Status:       domain.OrderStatusDelivered,
		DeliveryDate: &delivered,
	}
	repo, updates := repoWithOrder(order)
	uc := NewOrderUsecase(repo, &fakeProductRepo{}, fakeTxManager{})

	got, err := uc.SubmitReturn(context.Background(), "ord-1", "RAMAN@example.com", domain.ReturnTypeReturn, "broken handle")
	require.NoError(t, err)
	require.NotNil(t, got.ReturnRequest)
	assert.Equal(t, 1, *updates)
}

func TestSubmitReturn_ReasonRequired(t *testing.T) {
	uc := NewOrderUsecase(&fakeOrderRepo{}, &fakeProductRepo{}, fakeTxManager{})
	_, err := uc.SubmitReturn(context.Background(), "ord-1", "raman@example.com", domain.ReturnTypeReturn, "")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestAdvanceStatus_PersistsAndStampsDelivery(t *testing.T) {
	order := &domain.Order{ID: "ord-1", Status: domain.OrderStatusProcessing}
	repo, updates := repoWithOrder(order)
	uc := NewOrderUsecase(repo, &fakeProductRepo{}, fakeTxManager{})

	got, err := uc.AdvanceStatus(context.Background(), "ord-1", domain.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, got.Status)
	assert.NotNil(t, got.DeliveryDate)
	assert.Equal(t, 1, *updates)
}

func TestResetOrderDates(t *testing.T) {
	old := time.Now().Add(-90 * 24 * time.Hour)
	order := &domain.Order{ID: "ord-1", Status: domain.OrderStatusDelivered, OrderDate: old}
	repo, _ := repoWithOrder(order)
	uc := NewOrderUsecase(repo, &fakeProductRepo{}, fakeTxManager{})

	got, err := uc.ResetOrderDates(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.True(t, got.OrderDate.After(old))
	require.NotNil(t, got.DeliveryDate, "delivered order without a delivery date gets one stamped")
}

func TestListOrders_RejectsUnknownStatusFilter(t *testing.T) {
	uc := NewOrderUsecase(&fakeOrderRepo{}, &fakeProductRepo{}, fakeTxManager{})
	_, err := uc.ListOrders(context.Background(), domain.OrderFilter{Status: "unknown"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
}
