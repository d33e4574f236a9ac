package usecase

import (
	"context"
	"time"

	"jayam-backend/internal/domain"
)

// Hand-rolled fakes with overridable funcs, one per repository port.

type fakeOrderRepo struct {
	CreateFunc              func(ctx context.Context, order *domain.Order) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.Order, error)
	GetAllFunc              func(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	UpdateFunc              func(ctx context.Context, order *domain.Order) error
	GetDeliveredInRangeFunc func(ctx context.Context, start, end time.Time) ([]domain.Order, error)
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, order)
	}
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, id)
	}
	return nil, domain.NotFoundf("order %s not found", id)
}

func (f *fakeOrderRepo) GetAll(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if f.GetAllFunc != nil {
		return f.GetAllFunc(ctx, filter)
	}
	return nil, nil
}

func (f *fakeOrderRepo) Update(ctx context.Context, order *domain.Order) error {
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, order)
	}
	return nil
}

func (f *fakeOrderRepo) GetDeliveredInRange(ctx context.Context, start, end time.Time) ([]domain.Order, error) {
	if f.GetDeliveredInRangeFunc != nil {
		return f.GetDeliveredInRangeFunc(ctx, start, end)
	}
	return nil, nil
}

type fakeProductRepo struct {
	GetAllFunc        func(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	GetByIDFunc       func(ctx context.Context, id string) (*domain.Product, error)
	CreateFunc        func(ctx context.Context, product *domain.Product) error
	UpdateFunc        func(ctx context.Context, product *domain.Product) error
	DeleteFunc        func(ctx context.Context, id string) error
	UpdateRatingFunc  func(ctx context.Context, id string, rating float64, totalReviews int) error
	CreateReviewFunc  func(ctx context.Context, review *domain.Review) error
	GetReviewsFunc    func(ctx context.Context, productID string, limit int) ([]domain.Review, error)
	HasUserReviewFunc func(ctx context.Context, productID, userID string) (bool, error)
}

func (f *fakeProductRepo) GetAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	if f.GetAllFunc != nil {
		return f.GetAllFunc(ctx, filter)
	}
	return nil, nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, id)
	}
	return nil, domain.NotFoundf("product %s not found", id)
}

func (f *fakeProductRepo) Create(ctx context.Context, product *domain.Product) error {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, product)
	}
	return nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *domain.Product) error {
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, product)
	}
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id string) error {
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	return nil
}

func (f *fakeProductRepo) UpdateRating(ctx context.Context, id string, rating float64, totalReviews int) error {
	if f.UpdateRatingFunc != nil {
		return f.UpdateRatingFunc(ctx, id, rating, totalReviews)
	}
	return nil
}

func (f *fakeProductRepo) CreateReview(ctx context.Context, review *domain.Review) error {
	if f.CreateReviewFunc != nil {
		return f.CreateReviewFunc(ctx, review)
	}
	return nil
}

func (f *fakeProductRepo) GetReviews(ctx context.Context, productID string, limit int) ([]domain.Review, error) {
	if f.GetReviewsFunc != nil {
		return f.GetReviewsFunc(ctx, productID, limit)
	}
	return nil, nil
}

func (f *fakeProductRepo) HasUserReview(ctx context.Context, productID, userID string) (bool, error) {
	if f.HasUserReviewFunc != nil {
		return f.HasUserReviewFunc(ctx, productID, userID)
	}
	return false, nil
}

type fakeUserRepo struct {
	CreateFunc       func(ctx context.Context, user *domain.User) error
	GetByEmailFunc   func(ctx context.Context, email string) (*domain.User, error)
	GetByIDFunc      func(ctx context.Context, id string) (*domain.User, error)
	MarkVerifiedFunc func(ctx context.Context, id string) error
	DeleteFunc       func(ctx context.Context, id string) error
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, user)
	}
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.GetByEmailFunc != nil {
		return f.GetByEmailFunc(ctx, email)
	}
	return nil, domain.NotFoundf("user not found")
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, id)
	}
	return nil, domain.NotFoundf("user not found")
}

func (f *fakeUserRepo) MarkVerified(ctx context.Context, id string) error {
	if f.MarkVerifiedFunc != nil {
		return f.MarkVerifiedFunc(ctx, id)
	}
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	return nil
}

// fakeTxManager runs the callback without a real transaction.
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeMailer records sent codes and can be forced to fail.
type fakeMailer struct {
	Sent    []string
	FailAll bool
	Err     error
}

func (f *fakeMailer) SendOTP(ctx context.Context, email, code string) error {
	if f.FailAll {
		if f.Err != nil {
			return f.Err
		}
		return context.DeadlineExceeded
	}
	f.Sent = append(f.Sent, code)
	return nil
}

// fakeCache is a plain map with no expiry.
type fakeCache struct {
	items map[string]interface{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: map[string]interface{}{}}
}

func (c *fakeCache) Get(key string) (interface{}, bool) {
	v, ok := c.items[key]
	return v, ok
}

func (c *fakeCache) Set(key string, value interface{}, _ time.Duration) {
	c.items[key] = value
}

func (c *fakeCache) Delete(key string) {
	delete(c.items, key)
}

func (c *fakeCache) Flush() {
	c.items = map[string]interface{}{}
}
