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

type orderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) domain.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, user_snapshot, total_amount, status, payment_method, payment_status, order_date, delivery_date, return_request`

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	q := querierFromContext(ctx, r.db)

	if order.ID == "" {
		order.ID = uuid.NewString()
	}

	snapshot, err := json.Marshal(order.User)
	if err != nil {
		return fmt.Errorf("marshal user snapshot: %w", err)
	}

	var returnReq []byte
	if order.ReturnRequest != nil {
		returnReq, err = json.Marshal(order.ReturnRequest)
		if err != nil {
			return fmt.Errorf("marshal return request: %w", err)
		}
	}

	_, err = q.Exec(ctx, `
		INSERT INTO orders (id, user_snapshot, total_amount, status, payment_method, payment_status, order_date, delivery_date, return_request)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		order.ID, snapshot, order.TotalAmount, order.Status, order.PaymentMethod,
		order.PaymentStatus, order.OrderDate, order.DeliveryDate, returnReq,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Products {
		_, err = q.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, name, price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.NewString(), order.ID, item.ProductID, item.Name, item.Price, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if !validUUID(id) {
		return nil, domain.NotFoundf("order %s not found", id)
	}
	q := querierFromContext(ctx, r.db)

	row := q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundf("order %s not found", id)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	items, err := r.loadItems(ctx, q, []string{order.ID})
	if err != nil {
		return nil, err
	}
	order.Products = items[order.ID]

	return order, nil
}

func (r *orderRepository) GetAll(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	q := querierFromContext(ctx, r.db)

	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	args := []any{}
	argNum := 1

	if filter.ReturnRequestsOnly {
		query += ` AND status = 'delivered' AND return_request ->> 'status' = 'pending'`
	}
	if filter.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argNum)
		args = append(args, filter.Status)
		argNum++
	}
	if filter.Email != "" {
		query += fmt.Sprintf(` AND user_snapshot ->> 'email' = $%d`, argNum)
		args = append(args, filter.Email)
		argNum++
	}
	query += ` ORDER BY order_date DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}

	return r.attachItems(ctx, q, orders)
}

func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	q := querierFromContext(ctx, r.db)

	var returnReq []byte
	if order.ReturnRequest != nil {
		var err error
		returnReq, err = json.Marshal(order.ReturnRequest)
		if err != nil {
			return fmt.Errorf("marshal return request: %w", err)
		}
	}

	tag, err := q.Exec(ctx, `
		UPDATE orders
		SET status = $2, payment_status = $3, order_date = $4, delivery_date = $5, return_request = $6
		WHERE id = $1`,
		order.ID, order.Status, order.PaymentStatus, order.OrderDate, order.DeliveryDate, returnReq,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("order %s not found", order.ID)
	}

	return nil
}

func (r *orderRepository) GetDeliveredInRange(ctx context.Context, start, end time.Time) ([]domain.Order, error) {
	q := querierFromContext(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE status = $1 AND order_date >= $2 AND order_date < $3
		ORDER BY order_date`,
		domain.OrderStatusDelivered, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("list delivered orders: %w", err)
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}

	return r.attachItems(ctx, q, orders)
}

// --- Scan helpers ---

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o         domain.Order
		snapshot  []byte
		returnReq []byte
	)
	err := row.Scan(&o.ID, &snapshot, &o.TotalAmount, &o.Status, &o.PaymentMethod,
		&o.PaymentStatus, &o.OrderDate, &o.DeliveryDate, &returnReq)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(snapshot, &o.User); err != nil {
		return nil, fmt.Errorf("unmarshal user snapshot: %w", err)
	}
	if len(returnReq) > 0 {
		var rr domain.ReturnRequest
		if err := json.Unmarshal(returnReq, &rr); err != nil {
			return nil, fmt.Errorf("unmarshal return request: %w", err)
		}
		o.ReturnRequest = &rr
	}
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *orderRepository) loadItems(ctx context.Context, q querier, orderIDs []string) (map[string][]domain.OrderItem, error) {
	if len(orderIDs) == 0 {
		return map[string][]domain.OrderItem{}, nil
	}

	rows, err := q.Query(ctx, `
		SELECT order_id, product_id, name, price, quantity
		FROM order_items WHERE order_id = ANY($1::uuid[])`,
		orderIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	items := map[string][]domain.OrderItem{}
	for rows.Next() {
		var (
			orderID string
			item    domain.OrderItem
		)
		if err := rows.Scan(&orderID, &item.ProductID, &item.Name, &item.Price, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items[orderID] = append(items[orderID], item)
	}
	return items, rows.Err()
}

func (r *orderRepository) attachItems(ctx context.Context, q querier, orders []domain.Order) ([]domain.Order, error) {
	ids := make([]string, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
	}
	items, err := r.loadItems(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Products = items[orders[i].ID]
	}
	return orders, nil
}
