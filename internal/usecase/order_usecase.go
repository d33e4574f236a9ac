package usecase

import (
	"context"
	"strings"
	"time"

	"jayam-backend/internal/domain"
	"jayam-backend/pkg/logger"
)

type OrderUsecase struct {
	orderRepo   domain.OrderRepository
	productRepo domain.ProductRepository
	txManager   domain.TransactionManager
}

func NewOrderUsecase(repo domain.OrderRepository, pRepo domain.ProductRepository, txManager domain.TransactionManager) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:   repo,
		productRepo: pRepo,
		txManager:   txManager,
	}
}

// PlaceOrderItem is one requested line of a checkout.
type PlaceOrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// PlaceOrder validates the buyer and every requested product, snapshots
// names and prices from the live catalog, and creates the order in one
// transaction. Any unknown product fails the whole order; nothing is
// created partially.
func (u *OrderUsecase) PlaceOrder(ctx context.Context, user domain.OrderUser, items []PlaceOrderItem, paymentMethod domain.PaymentMethod) (*domain.Order, error) {
	if user.Name == "" || user.Email == "" || user.Address == "" || user.Phone == "" {
		return nil, domain.Validationf("missing required user information")
	}
	if len(items) == 0 {
		return nil, domain.Validationf("no products in order")
	}
	if !paymentMethod.Valid() {
		return nil, domain.Validationf("invalid payment method")
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, domain.Validationf("invalid quantity for product %s", item.ProductID)
		}
	}

	order := &domain.Order{
		User:          user,
		Status:        domain.OrderStatusPending,
		PaymentMethod: paymentMethod,
		OrderDate:     time.Now(),
	}

	// Non-COD checkouts are treated as paid at the gateway before the
	// order reaches us.
	if paymentMethod == domain.PaymentMethodCOD {
		order.PaymentStatus = domain.PaymentStatusPending
	} else {
		order.PaymentStatus = domain.PaymentStatusPaid
	}

	err := u.txManager.Do(ctx, func(ctx context.Context) error {
		total := 0.0
		for _, item := range items {
			product, err := u.productRepo.GetByID(ctx, item.ProductID)
			if err != nil {
				if _, ok := domain.AsNotFound(err); ok {
					return domain.Validationf("invalid product ID: %s", item.ProductID)
				}
				return err
			}
			order.Products = append(order.Products, domain.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				Price:     product.Price,
				Quantity:  item.Quantity,
			})
			total += product.Price * float64(item.Quantity)
		}
		order.TotalAmount = total
		return u.orderRepo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return u.orderRepo.GetByID(ctx, id)
}

// GetMyOrders lists the orders placed under the given email, newest first.
func (u *OrderUsecase) GetMyOrders(ctx context.Context, email string) ([]domain.Order, error) {
	if email == "" {
		return nil, domain.Validationf("email is required")
	}
	return u.orderRepo.GetAll(ctx, domain.OrderFilter{Email: strings.ToLower(email)})
}

// ListOrders is the admin listing with optional filters.
func (u *OrderUsecase) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.Validationf("invalid status: %s", filter.Status)
	}
	return u.orderRepo.GetAll(ctx, filter)
}

// AdvanceStatus applies an admin status change. Jumps off the expected
// forward path are applied anyway but logged so they can be audited.
func (u *OrderUsecase) AdvanceStatus(ctx context.Context, id string, target domain.OrderStatus) (*domain.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := order.Status
	offPath, err := order.Advance(target, time.Now())
	if err != nil {
		return nil, err
	}
	if offPath {
		logger.Warn().
			Str("order_id", order.ID).
			Str("from", string(from)).
			Str("to", string(target)).
			Msg("Order status moved off the expected path")
	}

	if err := u.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// CancelOrder is the customer-side cancellation. Ownership is checked by
// the order's snapshot email; non-owners get a not-found so order IDs
// cannot be probed.
func (u *OrderUsecase) CancelOrder(ctx context.Context, id, requesterEmail string) (*domain.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(order.User.Email, requesterEmail) {
		return nil, domain.NotFoundf("order %s not found", id)
	}

	if err := order.Cancel(time.Now()); err != nil {
		return nil, err
	}
	if err := u.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// SubmitReturn attaches the single allowed return/replacement request to
// a delivered order owned by the requester.
func (u *OrderUsecase) SubmitReturn(ctx context.Context, id, requesterEmail string, typ domain.ReturnType, reason string) (*domain.Order, error) {
	if reason == "" {
		return nil, domain.Validationf("a reason is required")
	}

	order, err := u.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(order.User.Email, requesterEmail) {
		return nil, domain.NotFoundf("order %s not found", id)
	}

	if err := order.SubmitReturnRequest(typ, reason, time.Now()); err != nil {
		return nil, err
	}
	if err := u.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ResolveReturn advances the embedded request through the admin
// resolution flow (approved, picked, completed, rejected).
func (u *OrderUsecase) ResolveReturn(ctx context.Context, id string, target domain.ReturnStatus, adminResponse string, pickedDate *time.Time) (*domain.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.ResolveReturnRequest(target, adminResponse, pickedDate, time.Now()); err != nil {
		return nil, err
	}
	if err := u.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ResetOrderDates refreshes an order's dates for demo environments: the
// order date becomes now, and delivered orders missing a delivery date
// get one stamped.
func (u *OrderUsecase) ResetOrderDates(ctx context.Context, id string) (*domain.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order.OrderDate = now
	if order.Status == domain.OrderStatusDelivered && order.DeliveryDate == nil {
		order.DeliveryDate = &now
	}

	if err := u.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
