package domain

import (
	"context"
	"time"
)

// TransactionManager runs fn inside one storage transaction.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// OrderUser is the customer contact snapshot embedded in an order at
// checkout time. It is intentionally decoupled from the live User row.
type OrderUser struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// OrderItem carries the product name and price as they were at order
// time; later catalog edits must not reprice history.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// ReturnRequest is embedded in its order as a sub-document; there is at
// most one per order, ever.
type ReturnRequest struct {
	Type          ReturnType   `json:"type"`
	Reason        string       `json:"reason"`
	Status        ReturnStatus `json:"status"`
	RequestDate   time.Time    `json:"requestDate"`
	AdminResponse string       `json:"adminResponse,omitempty"`
	PickedDate    *time.Time   `json:"pickedDate,omitempty"`
}

type Order struct {
	ID            string         `json:"id"`
	User          OrderUser      `json:"user"`
	Products      []OrderItem    `json:"products"`
	TotalAmount   float64        `json:"totalAmount"`
	Status        OrderStatus    `json:"status"`
	PaymentMethod PaymentMethod  `json:"paymentMethod"`
	PaymentStatus PaymentStatus  `json:"paymentStatus"`
	OrderDate     time.Time      `json:"orderDate"`
	DeliveryDate  *time.Time     `json:"deliveryDate,omitempty"`
	ReturnRequest *ReturnRequest `json:"returnRequest,omitempty"`
}

type OrderFilter struct {
	// ReturnRequestsOnly narrows to delivered orders whose embedded
	// return/replacement request is still pending.
	ReturnRequestsOnly bool
	Status             OrderStatus
	Email              string
}

type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	GetAll(ctx context.Context, filter OrderFilter) ([]Order, error)
	// Update persists the mutable head of the order: status, payment
	// status, order/delivery dates and the embedded return request.
	// Last write wins; there is no optimistic concurrency control.
	Update(ctx context.Context, order *Order) error
	GetDeliveredInRange(ctx context.Context, start, end time.Time) ([]Order, error)
}
