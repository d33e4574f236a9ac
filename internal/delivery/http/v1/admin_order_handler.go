package v1

import (
	"net/http"
	"time"

	"jayam-backend/internal/domain"
	"jayam-backend/internal/usecase"
	"jayam-backend/pkg/utils"

	"github.com/goccy/go-json"
)

type AdminOrderHandler struct {
	orderUC *usecase.OrderUsecase
}

func NewAdminOrderHandler(uc *usecase.OrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{orderUC: uc}
}

func (h *AdminOrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	filter := domain.OrderFilter{
		ReturnRequestsOnly: r.URL.Query().Get("returnRequests") == "true",
		Status:             domain.OrderStatus(r.URL.Query().Get("status")),
		Email:              r.URL.Query().Get("email"),
	}

	orders, err := h.orderUC.ListOrders(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, orders)
}

func (h *AdminOrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderUC.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, order)
}

type advanceStatusReq struct {
	Status domain.OrderStatus `json:"status"`
}

func (h *AdminOrderHandler) AdvanceStatus(w http.ResponseWriter, r *http.Request) {
	var req advanceStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orderUC.AdvanceStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, order)
}

type resolveReturnReq struct {
	Status        domain.ReturnStatus `json:"status"`
	AdminResponse string              `json:"adminResponse"`
	PickedDate    *time.Time          `json:"pickedDate"`
}

func (h *AdminOrderHandler) ResolveReturn(w http.ResponseWriter, r *http.Request) {
	var req resolveReturnReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orderUC.ResolveReturn(r.Context(), r.PathValue("id"), req.Status, req.AdminResponse, req.PickedDate)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, order)
}

type resetDatesReq struct {
	OrderID string `json:"orderId"`
}

// ResetOrderDates refreshes an order's dates so demo data stays inside
// the cancel/return windows.
func (h *AdminOrderHandler) ResetOrderDates(w http.ResponseWriter, r *http.Request) {
	var req resetDatesReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orderUC.ResetOrderDates(r.Context(), req.OrderID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Order dates updated successfully",
		"order":   order,
	})
}
