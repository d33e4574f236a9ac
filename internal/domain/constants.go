package domain

import "time"

// Order Statuses
const (
	OrderStatusPending               OrderStatus = "pending"
	OrderStatusProcessing            OrderStatus = "processing"
	OrderStatusDelivered             OrderStatus = "delivered"
	OrderStatusCancelled             OrderStatus = "cancelled"
	OrderStatusReturnApproved        OrderStatus = "return_approved"
	OrderStatusReplacementApproved   OrderStatus = "replacement_approved"
	OrderStatusReturnInProgress      OrderStatus = "return_in_progress"
	OrderStatusReplacementInProgress OrderStatus = "replacement_in_progress"
	OrderStatusReturned              OrderStatus = "returned"
	OrderStatusReplaced              OrderStatus = "replaced"
)

// Payment Statuses
const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Payment Methods
const (
	PaymentMethodCOD  PaymentMethod = "cod"
	PaymentMethodUPI  PaymentMethod = "upi"
	PaymentMethodCard PaymentMethod = "card"
)

// Return Request Types
const (
	ReturnTypeReturn      ReturnType = "return"
	ReturnTypeReplacement ReturnType = "replacement"
)

// Return Request Statuses
const (
	ReturnStatusPending   ReturnStatus = "pending"
	ReturnStatusApproved  ReturnStatus = "approved"
	ReturnStatusRejected  ReturnStatus = "rejected"
	ReturnStatusPicked    ReturnStatus = "picked"
	ReturnStatusCompleted ReturnStatus = "completed"
)

// Business windows
const (
	CancelWindow      = 24 * time.Hour
	ReturnWindow      = 14 * 24 * time.Hour
	ReplacementWindow = 30 * 24 * time.Hour
)

// List Exports for API
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusReturnApproved,
	OrderStatusReplacementApproved,
	OrderStatusReturnInProgress,
	OrderStatusReplacementInProgress,
	OrderStatusReturned,
	OrderStatusReplaced,
}

var PaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusPaid,
	PaymentStatusFailed,
	PaymentStatusRefunded,
}

var PaymentMethods = []PaymentMethod{
	PaymentMethodCOD,
	PaymentMethodUPI,
	PaymentMethodCard,
}

func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (m PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

func (t ReturnType) Valid() bool {
	return t == ReturnTypeReturn || t == ReturnTypeReplacement
}
