package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jayam-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type productRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) domain.ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, description, price, category, stock, images, colors, rating, total_reviews, specifications, created_at, updated_at`

func (r *productRepository) GetAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	q := querierFromContext(ctx, r.db)

	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}
	argNum := 1

	if filter.Category != "" {
		query += fmt.Sprintf(` AND category = $%d`, argNum)
		args = append(args, filter.Category)
		argNum++
	}
	if filter.Query != "" {
		query += fmt.Sprintf(` AND (name ILIKE $%d OR description ILIKE $%d)`, argNum, argNum)
		args = append(args, "%"+filter.Query+"%")
		argNum++
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if !validUUID(id) {
		return nil, domain.NotFoundf("product %s not found", id)
	}
	q := querierFromContext(ctx, r.db)

	row := q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundf("product %s not found", id)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	q := querierFromContext(ctx, r.db)

	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := q.Exec(ctx, `
		INSERT INTO products (id, name, description, price, category, stock, images, colors, rating, total_reviews, specifications, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		product.ID, product.Name, product.Description, product.Price, product.Category,
		product.Stock, product.Images, product.Colors, product.Rating, product.TotalReviews,
		product.Specifications, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	q := querierFromContext(ctx, r.db)

	product.UpdatedAt = time.Now()

	tag, err := q.Exec(ctx, `
		UPDATE products
		SET name = $2, description = $3, price = $4, category = $5, stock = $6,
		    images = $7, colors = $8, specifications = $9, updated_at = $10
		WHERE id = $1`,
		product.ID, product.Name, product.Description, product.Price, product.Category,
		product.Stock, product.Images, product.Colors, product.Specifications, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("product %s not found", product.ID)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	if !validUUID(id) {
		return domain.NotFoundf("product %s not found", id)
	}
	q := querierFromContext(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("product %s not found", id)
	}
	return nil
}

func (r *productRepository) UpdateRating(ctx context.Context, id string, rating float64, totalReviews int) error {
	q := querierFromContext(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE products SET rating = $2, total_reviews = $3, updated_at = now() WHERE id = $1`,
		id, rating, totalReviews,
	)
	if err != nil {
		return fmt.Errorf("update product rating: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("product %s not found", id)
	}
	return nil
}

func (r *productRepository) CreateReview(ctx context.Context, review *domain.Review) error {
	q := querierFromContext(ctx, r.db)

	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}

	_, err := q.Exec(ctx, `
		INSERT INTO reviews (id, product_id, user_id, user_name, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		review.ID, review.ProductID, review.UserID, review.UserName, review.Rating,
		review.Comment, review.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *productRepository) GetReviews(ctx context.Context, productID string, limit int) ([]domain.Review, error) {
	q := querierFromContext(ctx, r.db)

	query := `
		SELECT id, product_id, user_id, user_name, rating, comment, created_at
		FROM reviews WHERE product_id = $1
		ORDER BY created_at DESC`
	args := []any{productID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.UserName, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *productRepository) HasUserReview(ctx context.Context, productID, userID string) (bool, error) {
	q := querierFromContext(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM reviews WHERE product_id = $1 AND user_id = $2)`,
		productID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check review: %w", err)
	}
	return exists, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p     domain.Product
		specs []byte
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Stock,
		&p.Images, &p.Colors, &p.Rating, &p.TotalReviews, &specs, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(specs) > 0 {
		if err := json.Unmarshal(specs, &p.Specifications); err != nil {
			return nil, fmt.Errorf("unmarshal specifications: %w", err)
		}
	}
	return &p, nil
}
