package domain

import (
	"time"
)

// The order lifecycle is one explicit transition table shared by the
// admin status flow and the return-request flow, instead of guards
// scattered across handlers.

// forwardEdges lists the expected forward path. Admin advances outside
// the table are still applied (admins need to correct mistakes) but the
// caller is told so it can flag the jump.
var forwardEdges = map[OrderStatus][]OrderStatus{
	OrderStatusPending:               {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing:            {OrderStatusDelivered},
	OrderStatusDelivered:             {OrderStatusReturnApproved, OrderStatusReplacementApproved},
	OrderStatusReturnApproved:        {OrderStatusReturnInProgress, OrderStatusDelivered},
	OrderStatusReplacementApproved:   {OrderStatusReplacementInProgress, OrderStatusDelivered},
	OrderStatusReturnInProgress:      {OrderStatusReturned},
	OrderStatusReplacementInProgress: {OrderStatusReplaced},
}

// IsForwardTransition reports whether from -> to is a listed edge.
func IsForwardTransition(from, to OrderStatus) bool {
	for _, next := range forwardEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Advance applies an admin status change. The base path is permissive:
// any known status is accepted, and offPath reports whether the jump
// left the listed forward edges. Reaching delivered stamps the delivery
// date exactly once.
func (o *Order) Advance(target OrderStatus, now time.Time) (offPath bool, err error) {
	if !target.Valid() {
		return false, Validationf("invalid status: %s", target)
	}

	offPath = o.Status != target && !IsForwardTransition(o.Status, target)
	o.Status = target

	if target == OrderStatusDelivered && o.DeliveryDate == nil {
		d := now
		o.DeliveryDate = &d
	}
	return offPath, nil
}

// Cancel is the customer-side transition: pending orders only, within
// 24 hours of placement. Cancelled is terminal; the row is kept.
func (o *Order) Cancel(now time.Time) error {
	if o.Status != OrderStatusPending {
		return Preconditionf("only pending orders can be cancelled")
	}
	if now.Sub(o.OrderDate) > CancelWindow {
		return Preconditionf("orders can only be cancelled within 24 hours of placing")
	}
	o.Status = OrderStatusCancelled
	return nil
}

// SubmitReturnRequest attaches the one allowed return/replacement
// request to a delivered order. The window is measured from the
// delivery date; a delivery date in the future leaves the full window.
func (o *Order) SubmitReturnRequest(typ ReturnType, reason string, now time.Time) error {
	if !typ.Valid() {
		return Validationf("invalid request type: %s", typ)
	}
	if o.Status != OrderStatusDelivered {
		return Preconditionf("only delivered orders can be returned or replaced")
	}
	if o.ReturnRequest != nil {
		return Preconditionf("a return/replacement request already exists for this order")
	}

	if o.DeliveryDate != nil {
		elapsed := now.Sub(*o.DeliveryDate)
		if typ == ReturnTypeReturn && elapsed > ReturnWindow {
			return Preconditionf("return requests must be made within 14 days of delivery")
		}
		if typ == ReturnTypeReplacement && elapsed > ReplacementWindow {
			return Preconditionf("replacement requests must be made within 30 days of delivery")
		}
	}

	o.ReturnRequest = &ReturnRequest{
		Type:        typ,
		Reason:      reason,
		Status:      ReturnStatusPending,
		RequestDate: now,
	}
	return nil
}

// returnResolution is one row of the admin resolution table: the order
// status the request's type maps to, plus the side effects to apply.
type returnResolution struct {
	next            func(t ReturnType) OrderStatus
	fromPending     bool
	needsResponse   bool
	defaultResponse string
	stampPicked     bool
	refundOnReturn  bool
}

var returnResolutions = map[ReturnStatus]returnResolution{
	ReturnStatusApproved: {
		next: func(t ReturnType) OrderStatus {
			if t == ReturnTypeReturn {
				return OrderStatusReturnApproved
			}
			return OrderStatusReplacementApproved
		},
		fromPending:     true,
		defaultResponse: "Request approved",
	},
	ReturnStatusPicked: {
		next: func(t ReturnType) OrderStatus {
			if t == ReturnTypeReturn {
				return OrderStatusReturnInProgress
			}
			return OrderStatusReplacementInProgress
		},
		stampPicked: true,
	},
	ReturnStatusCompleted: {
		next: func(t ReturnType) OrderStatus {
			if t == ReturnTypeReturn {
				return OrderStatusReturned
			}
			return OrderStatusReplaced
		},
		refundOnReturn: true,
	},
	ReturnStatusRejected: {
		next:          func(ReturnType) OrderStatus { return OrderStatusDelivered },
		fromPending:   true,
		needsResponse: true,
	},
}

// ResolveReturnRequest advances the embedded request and applies the
// matching order-status side effects from the resolution table.
func (o *Order) ResolveReturnRequest(target ReturnStatus, adminResponse string, pickedDate *time.Time, now time.Time) error {
	if o.ReturnRequest == nil {
		return NotFoundf("no return request found for this order")
	}

	res, ok := returnResolutions[target]
	if !ok {
		return Validationf("invalid status provided")
	}
	if res.fromPending && o.ReturnRequest.Status != ReturnStatusPending {
		return Preconditionf("request has already been %s", o.ReturnRequest.Status)
	}
	if res.needsResponse && adminResponse == "" {
		return Validationf("a rejection reason is required")
	}

	req := o.ReturnRequest
	req.Status = target

	if adminResponse != "" {
		req.AdminResponse = adminResponse
	} else if res.defaultResponse != "" {
		req.AdminResponse = res.defaultResponse
	}

	if res.stampPicked {
		picked := now
		if pickedDate != nil {
			picked = *pickedDate
		}
		req.PickedDate = &picked
	}

	o.Status = res.next(req.Type)
	if res.refundOnReturn && req.Type == ReturnTypeReturn {
		o.PaymentStatus = PaymentStatusRefunded
	}
	return nil
}
