package domain

import (
	"context"
	"time"
)

type Product struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	Category       string    `json:"category"`
	Stock          int       `json:"stock"`
	Images         []string  `json:"images"`
	Colors         []string  `json:"colors"`
	Rating         float64   `json:"rating"`       // derived, mean of reviews
	TotalReviews   int       `json:"totalReviews"` // derived count
	Specifications JSONB     `json:"specifications"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"` // 1-5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type ProductFilter struct {
	Category string
	Query    string
}

type ProductRepository interface {
	GetAll(ctx context.Context, filter ProductFilter) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)

	// Admin Management
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id string) error
	// UpdateRating replaces the derived rating/review-count pair.
	UpdateRating(ctx context.Context, id string, rating float64, totalReviews int) error

	// Reviews
	CreateReview(ctx context.Context, review *Review) error
	GetReviews(ctx context.Context, productID string, limit int) ([]Review, error)
	HasUserReview(ctx context.Context, productID, userID string) (bool, error)
}
