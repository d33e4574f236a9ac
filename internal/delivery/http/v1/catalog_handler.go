package v1

import (
	"net/http"

	"jayam-backend/internal/domain"
	"jayam-backend/internal/usecase"
	"jayam-backend/pkg/utils"

	"github.com/goccy/go-json"
)

type CatalogHandler struct {
	catalogUC *usecase.CatalogUsecase
}

func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalogUC: uc}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := domain.ProductFilter{
		Category: r.URL.Query().Get("category"),
		Query:    r.URL.Query().Get("q"),
	}

	products, err := h.catalogUC.GetProducts(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	product, err := h.catalogUC.GetProduct(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	limit := utils.ParseInt(r.URL.Query().Get("limit"), 50)

	reviews, err := h.catalogUC.GetReviews(r.Context(), id, limit)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reviews)
}

type addReviewReq struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *CatalogHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req addReviewReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	review := &domain.Review{
		ProductID: r.PathValue("id"),
		UserID:    user.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	created, err := h.catalogUC.AddReview(r.Context(), review)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, created)
}
