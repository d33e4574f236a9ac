package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"jayam-backend/internal/domain"
	"jayam-backend/pkg/cache"
)

type CatalogUsecase struct {
	productRepo domain.ProductRepository
	userRepo    domain.UserRepository
	txManager   domain.TransactionManager
	cache       cache.CacheService
	cacheTTL    time.Duration
}

func NewCatalogUsecase(productRepo domain.ProductRepository, userRepo domain.UserRepository, txManager domain.TransactionManager, cache cache.CacheService, cacheTTL time.Duration) *CatalogUsecase {
	return &CatalogUsecase{
		productRepo: productRepo,
		userRepo:    userRepo,
		txManager:   txManager,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

func (uc *CatalogUsecase) GetProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	cacheKey := fmt.Sprintf("products:all:%s:%s", filter.Category, filter.Query)
	if val, found := uc.cache.Get(cacheKey); found {
		return val.([]domain.Product), nil
	}

	products, err := uc.productRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	uc.cache.Set(cacheKey, products, uc.cacheTTL)
	return products, nil
}

func (uc *CatalogUsecase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	cacheKey := "products:" + id
	if val, found := uc.cache.Get(cacheKey); found {
		return val.(*domain.Product), nil
	}

	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.cache.Set(cacheKey, product, uc.cacheTTL)
	return product, nil
}

// --- Admin Management ---

func (uc *CatalogUsecase) CreateProduct(ctx context.Context, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return err
	}
	uc.invalidateProduct(product.ID)
	return nil
}

func (uc *CatalogUsecase) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return err
	}
	uc.invalidateProduct(product.ID)
	return nil
}

func (uc *CatalogUsecase) DeleteProduct(ctx context.Context, id string) error {
	if err := uc.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidateProduct(id)
	return nil
}

func validateProduct(p *domain.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return domain.Validationf("product name is required")
	}
	if p.Price <= 0 {
		return domain.Validationf("product price must be positive")
	}
	if p.Stock < 0 {
		return domain.Validationf("product stock cannot be negative")
	}
	if len(p.Images) == 0 {
		return domain.Validationf("product requires at least one image")
	}
	if len(p.Colors) == 0 {
		return domain.Validationf("product requires at least one color")
	}
	return nil
}

// --- Reviews ---

func (uc *CatalogUsecase) GetReviews(ctx context.Context, productID string, limit int) ([]domain.Review, error) {
	if _, err := uc.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return uc.productRepo.GetReviews(ctx, productID, limit)
}

// AddReview records one review per user per product and refreshes the
// product's derived rating, all inside one transaction so the stored
// mean never drifts from the review rows.
func (uc *CatalogUsecase) AddReview(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	if review.Rating < 1 || review.Rating > 5 {
		return nil, domain.Validationf("rating must be between 1 and 5")
	}
	comment := strings.TrimSpace(review.Comment)
	if n := utf8.RuneCountInString(comment); n < 3 || n > 1000 {
		return nil, domain.Validationf("comment must be between 3 and 1000 characters")
	}
	review.Comment = comment

	if review.UserName == "" {
		user, err := uc.userRepo.GetByID(ctx, review.UserID)
		if err != nil {
			return nil, err
		}
		review.UserName = user.Username
	}

	err := uc.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := uc.productRepo.GetByID(ctx, review.ProductID); err != nil {
			return err
		}

		exists, err := uc.productRepo.HasUserReview(ctx, review.ProductID, review.UserID)
		if err != nil {
			return err
		}
		if exists {
			return domain.Preconditionf("you have already reviewed this product")
		}

		if err := uc.productRepo.CreateReview(ctx, review); err != nil {
			return err
		}

		reviews, err := uc.productRepo.GetReviews(ctx, review.ProductID, 0)
		if err != nil {
			return err
		}
		rating := meanRating(reviews)
		return uc.productRepo.UpdateRating(ctx, review.ProductID, rating, len(reviews))
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateProduct(review.ProductID)
	return review, nil
}

// meanRating is the arithmetic mean rounded to one decimal place.
func meanRating(reviews []domain.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*10) / 10
}

func (uc *CatalogUsecase) invalidateProduct(id string) {
	uc.cache.Delete("products:" + id)
	// Listing keys vary by filter; flushing is cheaper than tracking them,
	// and product edits can shift the legacy-order stats fallback too.
	uc.cache.Flush()
}
